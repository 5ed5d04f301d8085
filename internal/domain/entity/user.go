package entity

import "time"

// Roles válidos para User (jerarquía de privilegios, de mayor a menor).
const (
	RoleSuperAdmin = "SUPER_ADMIN"
	RoleOrgAdmin   = "ORG_ADMIN"
	RoleInstructor = "INSTRUCTOR"
	RoleLearner    = "LEARNER"
	RoleGuest      = "GUEST"
)

// User representa un usuario del sistema. Pertenece exactamente a una
// Organization y su email es único a nivel GLOBAL (todas las organizaciones):
// una segunda organización nunca puede registrar un email que ya pertenece
// a otra. Un usuario jamás se reasigna silenciosamente de organización.
type User struct {
	ID             string
	OrganizationID string
	Email          string
	PasswordHash   string // bcrypt; en altas por matrícula es una credencial placeholder
	Name           string
	Role           string // ver constantes Role*
	Status         string // active, inactive, suspended
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
