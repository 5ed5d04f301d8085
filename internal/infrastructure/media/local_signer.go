// Package media provee una implementación de desarrollo del puerto
// media.Storage. En producción las URLs prefirmadas las emite el
// almacenamiento externo; este firmante local solo existe para que el
// flujo completo funcione sin credenciales de nube.
package media

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"time"

	appmedia "github.com/tu-usuario/academia-pro/internal/application/media"
)

var _ appmedia.Storage = (*LocalSigner)(nil)

// LocalSigner firma URLs contra un endpoint base con HMAC-SHA256.
type LocalSigner struct {
	baseURL string
	secret  []byte
}

func NewLocalSigner(baseURL, secret string) *LocalSigner {
	return &LocalSigner{baseURL: baseURL, secret: []byte(secret)}
}

// PresignUpload emite una URL de subida firmada con vencimiento.
func (s *LocalSigner) PresignUpload(_ context.Context, key, contentType string, ttl time.Duration) (string, error) {
	return s.sign("PUT", key, contentType, ttl)
}

// PresignDownload emite una URL de descarga firmada con vencimiento.
func (s *LocalSigner) PresignDownload(_ context.Context, key string, ttl time.Duration) (string, error) {
	return s.sign("GET", key, "", ttl)
}

func (s *LocalSigner) sign(method, key, contentType string, ttl time.Duration) (string, error) {
	if key == "" {
		return "", fmt.Errorf("media: key vacía")
	}
	expires := time.Now().Add(ttl).Unix()
	mac := hmac.New(sha256.New, s.secret)
	fmt.Fprintf(mac, "%s\n%s\n%d", method, key, expires)
	q := url.Values{}
	q.Set("expires", fmt.Sprintf("%d", expires))
	q.Set("signature", hex.EncodeToString(mac.Sum(nil)))
	if contentType != "" {
		q.Set("content_type", contentType)
	}
	return fmt.Sprintf("%s/%s?%s", s.baseURL, url.PathEscape(key), q.Encode()), nil
}
