// Package media emite URLs prefirmadas para el almacén de objetos externo.
package media

import (
	"context"
	"time"

	"github.com/tu-usuario/academia-pro/internal/application/dto"
	"github.com/tu-usuario/academia-pro/internal/domain"
)

// UseCase pass-through hacia el Storage externo con TTL de la aplicación.
type UseCase struct {
	storage Storage
	ttl     time.Duration
}

// NewUseCase construye el caso de uso con el TTL configurado.
func NewUseCase(storage Storage, ttl time.Duration) *UseCase {
	return &UseCase{storage: storage, ttl: ttl}
}

// Presign emite una URL prefirmada de subida o descarga para key.
func (uc *UseCase) Presign(ctx context.Context, in dto.PresignRequest) (*dto.PresignResponse, error) {
	var (
		url string
		err error
	)
	switch in.Operation {
	case "upload":
		url, err = uc.storage.PresignUpload(ctx, in.Key, in.ContentType, uc.ttl)
	case "download":
		url, err = uc.storage.PresignDownload(ctx, in.Key, uc.ttl)
	default:
		return nil, domain.ErrInvalidInput
	}
	if err != nil {
		return nil, err
	}
	return &dto.PresignResponse{URL: url, ExpiresAt: time.Now().Add(uc.ttl)}, nil
}
