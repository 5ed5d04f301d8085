package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados válidos para Batch.
const (
	BatchStatusPlanned   = "PLANNED"
	BatchStatusActive    = "ACTIVE"
	BatchStatusUpcoming  = "UPCOMING"
	BatchStatusCompleted = "COMPLETED"
)

// Modos de acceso a laboratorios (LabConfig.AccessMode).
const (
	LabModeFixed     = "FIXED"      // horas fijas por sesión
	LabModeQuota     = "QUOTA"      // bolsa de horas por alumno
	LabModeDateRange = "DATE_RANGE" // acceso libre dentro de un rango de fechas
)

// Modos de evaluación (AssessmentConfig.Mode).
const (
	AssessmentModeTrainerManaged = "TRAINER_MANAGED" // el instructor agenda (hay training)
	AssessmentModeAdminManaged   = "ADMIN_MANAGED"   // ventana fijada por el administrador
)

// Estados de agenda de evaluación (AssessmentConfig.Status).
const (
	AssessmentStatusPendingTrainer = "PENDING_TRAINER"
	AssessmentStatusScheduled      = "SCHEDULED"
)

// TrainingConfig agenda de entrenamiento: días de la semana + horario.
type TrainingConfig struct {
	Days      []string // ej. ["Mon","Wed"]; no vacío si training está activo
	StartTime string   // "HH:MM"
	EndTime   string   // "HH:MM"
}

// LabConfig configuración de laboratorio como variante etiquetada por
// AccessMode; solo los campos del modo declarado son relevantes.
type LabConfig struct {
	AccessMode string           // FIXED | QUOTA | DATE_RANGE
	FixedHours *decimal.Decimal // FIXED: horas por sesión
	QuotaHours *decimal.Decimal // QUOTA: bolsa total de horas
	StartDate  *time.Time       // DATE_RANGE
	EndDate    *time.Time       // DATE_RANGE
}

// AssessmentConfig configuración de evaluación. Con training activo el modo
// se fuerza a TRAINER_MANAGED/PENDING_TRAINER y la ventana se descarta.
type AssessmentConfig struct {
	Mode    string // TRAINER_MANAGED | ADMIN_MANAGED
	Status  string // PENDING_TRAINER | SCHEDULED
	StartAt *time.Time
	EndAt   *time.Time
}

// Batch representa la entrega programada de un Program a una cohorte.
// Los tres feature flags son independientes pero su combinación está
// restringida por el validador de configuración (internal/domain/batch).
// Nunca se elimina físicamente desde este núcleo.
type Batch struct {
	ID             string
	OrganizationID string
	ProgramID      string
	Name           string
	StartDate      time.Time
	EndDate        time.Time
	Status         string  // ver constantes BatchStatus*
	OwnerID        *string // User líder opcional (instructor responsable)

	TrainingEnabled   bool
	LabEnabled        bool
	AssessmentEnabled bool
	Training          *TrainingConfig   // nil si TrainingEnabled es false
	Lab               *LabConfig        // nil si LabEnabled es false
	Assessment        *AssessmentConfig // nil si AssessmentEnabled es false

	CreatedAt time.Time
	UpdatedAt time.Time
}
