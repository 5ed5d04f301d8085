package dto

import "time"

// StartLabSessionRequest entrada para aprovisionar una sesión de laboratorio
// contra el proveedor externo.
type StartLabSessionRequest struct {
	BlueprintID     string `json:"blueprint_id" validate:"required"`
	DurationMinutes int    `json:"duration_minutes" validate:"required,min=1"`
}

// LabSessionResponse sesión aprovisionada: URL de acceso + expiración.
type LabSessionResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// PresignRequest entrada para pedir una URL prefirmada de media.
type PresignRequest struct {
	Key         string `json:"key" validate:"required"`
	ContentType string `json:"content_type" validate:"omitempty"`
	// Operation: "upload" o "download".
	Operation string `json:"operation" validate:"required,oneof=upload download"`
}

// PresignResponse URL prefirmada emitida por el almacén externo.
type PresignResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}
