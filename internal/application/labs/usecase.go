// Package labs aprovisiona sesiones de laboratorio contra el proveedor
// externo, con el feature flag del batch como única regla propia.
package labs

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/academia-pro/internal/application/dto"
	"github.com/tu-usuario/academia-pro/internal/domain"
	"github.com/tu-usuario/academia-pro/internal/domain/repository"
)

// UseCase pass-through hacia el Provisioner, con chequeo del flag de labs.
type UseCase struct {
	prov      Provisioner
	batchRepo repository.BatchRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(prov Provisioner, batchRepo repository.BatchRepository) *UseCase {
	return &UseCase{prov: prov, batchRepo: batchRepo}
}

// StartSession aprovisiona una sesión para el batch. Rechaza con
// domain.ErrLabDisabled si el batch no tiene el feature de labs activo.
func (uc *UseCase) StartSession(ctx context.Context, batchID, orgID string, in dto.StartLabSessionRequest) (*dto.LabSessionResponse, error) {
	b, err := uc.batchRepo.GetByID(ctx, batchID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	if b == nil || b.OrganizationID != orgID {
		return nil, domain.ErrNotFound
	}
	if !b.LabEnabled {
		return nil, domain.ErrLabDisabled
	}
	s, err := uc.prov.Provision(ctx, in.BlueprintID, time.Duration(in.DurationMinutes)*time.Minute)
	if err != nil {
		return nil, err
	}
	return &dto.LabSessionResponse{URL: s.URL, ExpiresAt: s.ExpiresAt}, nil
}
