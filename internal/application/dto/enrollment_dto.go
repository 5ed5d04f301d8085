package dto

import "time"

// EnrollRow fila de matrícula: email + nombre, rol opcional (LEARNER por defecto).
type EnrollRow struct {
	Email string `json:"email" validate:"required"`
	Name  string `json:"name" validate:"required"`
	Role  string `json:"role" validate:"omitempty,oneof=ORG_ADMIN INSTRUCTOR LEARNER GUEST"`
}

// EnrollRequest cuerpo de matrícula (atómica o best-effort) para un batch.
type EnrollRequest struct {
	Rows []EnrollRow `json:"rows" validate:"required,min=1"`
}

// ReconcileResponse resultado de la matrícula atómica: o todas las filas
// quedaron aplicadas o ninguna.
type ReconcileResponse struct {
	Processed int `json:"processed"` // filas procesadas en esta llamada
	Enrolled  int `json:"enrolled"`  // matrículas NUEVAS creadas (0 en re-ejecución idéntica)
}

// BulkEnrollResponse contadores agregados de la matrícula best-effort.
// Las filas ya confirmadas NO se revierten cuando una posterior falla.
type BulkEnrollResponse struct {
	Success  int      `json:"success"`
	Failed   int      `json:"failed"`
	NewUsers int      `json:"new_users"`
	Existing int      `json:"existing"`
	Failures []string `json:"failures,omitempty"` // "email: motivo" por fila fallida
}

// EnrollmentResponse salida de una matrícula.
type EnrollmentResponse struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	BatchID    string    `json:"batch_id"`
	Status     string    `json:"status"`
	EnrolledAt time.Time `json:"enrolled_at"`
}

// EnrollmentListResponse listado paginado de matrículas.
type EnrollmentListResponse struct {
	Items []EnrollmentResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}
