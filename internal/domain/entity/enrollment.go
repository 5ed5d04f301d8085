package entity

import "time"

// Estados válidos para Enrollment.
const (
	EnrollmentStatusActive    = "ACTIVE"
	EnrollmentStatusDropped   = "DROPPED"
	EnrollmentStatusCompleted = "COMPLETED"
)

// Enrollment vincula un User con un Batch. Invariante: a lo sumo una
// matrícula por par (UserID, BatchID); los reintentos son no-ops
// idempotentes, nunca duplicados ni errores. Una matrícula DROPPED no se
// reactiva al re-enviar la fila (ver decisión en DESIGN.md).
type Enrollment struct {
	ID         string
	UserID     string
	BatchID    string
	Status     string // ACTIVE, DROPPED, COMPLETED
	EnrolledAt time.Time
	UpdatedAt  time.Time
}
