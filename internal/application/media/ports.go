package media

import (
	"context"
	"time"
)

// Storage puerto hacia el emisor externo de URLs prefirmadas. Por este
// sistema nunca circulan los bytes del objeto: solo se piden URLs de
// subida/descarga con vencimiento.
type Storage interface {
	PresignUpload(ctx context.Context, key, contentType string, ttl time.Duration) (string, error)
	PresignDownload(ctx context.Context, key string, ttl time.Duration) (string, error)
}
