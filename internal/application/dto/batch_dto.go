package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TrainingConfigDTO agenda de entrenamiento.
type TrainingConfigDTO struct {
	Days      []string `json:"days" validate:"required,min=1"`
	StartTime string   `json:"start_time" validate:"required"`
	EndTime   string   `json:"end_time" validate:"required"`
}

// LabConfigDTO configuración de laboratorio; solo aplican los campos del
// modo declarado en AccessMode.
type LabConfigDTO struct {
	AccessMode string           `json:"access_mode" validate:"required,oneof=FIXED QUOTA DATE_RANGE"`
	FixedHours *decimal.Decimal `json:"fixed_hours,omitempty"`
	QuotaHours *decimal.Decimal `json:"quota_hours,omitempty"`
	StartDate  *time.Time       `json:"start_date,omitempty"`
	EndDate    *time.Time       `json:"end_date,omitempty"`
}

// AssessmentConfigDTO ventana de evaluación enviada por el caller. Con
// training activo el servidor la descarta y fuerza TRAINER_MANAGED.
type AssessmentConfigDTO struct {
	StartAt *time.Time `json:"start_at,omitempty"`
	EndAt   *time.Time `json:"end_at,omitempty"`
}

// AssessmentResponseDTO configuración de evaluación normalizada.
type AssessmentResponseDTO struct {
	Mode    string     `json:"mode"`
	Status  string     `json:"status"`
	StartAt *time.Time `json:"start_at,omitempty"`
	EndAt   *time.Time `json:"end_at,omitempty"`
}

// CreateBatchRequest entrada para crear un batch (y su Program 1:1).
type CreateBatchRequest struct {
	OrganizationID string    `json:"organization_id" validate:"required,uuid"`
	Name           string    `json:"name" validate:"required,min=1,max=200"`
	StartDate      time.Time `json:"start_date" validate:"required"`
	EndDate        time.Time `json:"end_date" validate:"required"`

	TrainingEnabled   bool                 `json:"training_enabled"`
	LabEnabled        bool                 `json:"lab_enabled"`
	AssessmentEnabled bool                 `json:"assessment_enabled"`
	Training          *TrainingConfigDTO   `json:"training,omitempty"`
	Lab               *LabConfigDTO        `json:"lab,omitempty"`
	Assessment        *AssessmentConfigDTO `json:"assessment,omitempty"`
}

// UpdateBatchRequest entrada para actualizar un batch. El estado propuesto
// completo pasa por el MISMO validador que la creación. OwnerID se aplica
// con independencia de las reglas de flags.
type UpdateBatchRequest struct {
	Name      string    `json:"name" validate:"required,min=1,max=200"`
	StartDate time.Time `json:"start_date" validate:"required"`
	EndDate   time.Time `json:"end_date" validate:"required"`
	Status    string    `json:"status" validate:"omitempty,oneof=PLANNED ACTIVE UPCOMING COMPLETED"`
	OwnerID   *string   `json:"owner_id,omitempty"`

	TrainingEnabled   bool                 `json:"training_enabled"`
	LabEnabled        bool                 `json:"lab_enabled"`
	AssessmentEnabled bool                 `json:"assessment_enabled"`
	Training          *TrainingConfigDTO   `json:"training,omitempty"`
	Lab               *LabConfigDTO        `json:"lab,omitempty"`
	Assessment        *AssessmentConfigDTO `json:"assessment,omitempty"`
}

// BatchResponse salida de un batch con su configuración normalizada.
type BatchResponse struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	ProgramID      string    `json:"program_id"`
	Name           string    `json:"name"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	Status         string    `json:"status"`
	OwnerID        *string   `json:"owner_id,omitempty"`

	TrainingEnabled   bool                   `json:"training_enabled"`
	LabEnabled        bool                   `json:"lab_enabled"`
	AssessmentEnabled bool                   `json:"assessment_enabled"`
	Training          *TrainingConfigDTO     `json:"training,omitempty"`
	Lab               *LabConfigDTO          `json:"lab,omitempty"`
	Assessment        *AssessmentResponseDTO `json:"assessment,omitempty"`

	// Warnings de calidad de datos aceptados tal cual (ej. modo de lab sin
	// sub-campos). Solo presentes en la respuesta de create/update.
	Warnings []string `json:"warnings,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BatchListResponse listado paginado de batches.
type BatchListResponse struct {
	Items []BatchResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// ProgramResponse salida de un program (contenedor de contenido).
type ProgramResponse struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	Title          string    `json:"title"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ProgramListResponse listado paginado de programs.
type ProgramListResponse struct {
	Items []ProgramResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
