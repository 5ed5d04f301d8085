package entity

import "time"

// Estados válidos para Organization.
const (
	OrgStatusActive    = "active"
	OrgStatusSuspended = "suspended"
)

// Organization es el tenant raíz: todo User, Program y Batch pertenece a
// exactamente una organización y nada cruza esa frontera.
type Organization struct {
	ID        string
	Name      string
	Domain    *string // dominio de email único, opcional
	Status    string  // active, suspended
	CreatedAt time.Time
	UpdatedAt time.Time
}
