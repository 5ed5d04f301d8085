package enrollment

import (
	"fmt"
	"strings"
)

// RowIssue detalle por fila rechazada: índice + email + motivo, suficiente
// para que el caller corrija y reenvíe exactamente el subconjunto fallido.
type RowIssue struct {
	Index  int
	Email  string
	Reason string
}

func (i RowIssue) String() string {
	return fmt.Sprintf("fila %d (%s): %s", i.Index, i.Email, i.Reason)
}

// ValidationError filas sintácticamente inválidas: la llamada completa
// falla sin procesar ninguna fila (VALIDATION_FAILED).
type ValidationError struct {
	Issues []RowIssue
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, i := range e.Issues {
		parts = append(parts, i.String())
	}
	return "filas inválidas: " + strings.Join(parts, "; ")
}

// ConflictError emails que ya pertenecen a un usuario de OTRA organización.
// Frontera dura de seguridad de tenancy, nunca una advertencia
// (CROSS_ORG_CONFLICT).
type ConflictError struct {
	Emails []string
}

func (e *ConflictError) Error() string {
	return "emails de otra organización: " + strings.Join(e.Emails, ", ")
}
