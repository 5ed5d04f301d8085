// Package authz centraliza la verificación de privilegios. Es el único
// punto que conoce la jerarquía de roles: los casos de uso reciben el Gate
// inyectado y lo consultan UNA vez por operación, nunca por rama.
package authz

import "github.com/tu-usuario/academia-pro/internal/domain/entity"

// Tier nivel de privilegio; mayor valor = más privilegio.
type Tier int

const (
	TierGuest Tier = iota
	TierLearner
	TierInstructor
	TierOrgAdmin
	TierSuperAdmin
)

// Gate contrato mínimo de autorización para los casos de uso.
type Gate interface {
	// HasPrivilege informa si el rol alcanza el tier requerido.
	HasPrivilege(role string, required Tier) bool
}

// RoleGate implementación basada en la jerarquía estática de roles.
type RoleGate struct{}

// NewRoleGate construye el gate por defecto.
func NewRoleGate() RoleGate { return RoleGate{} }

// HasPrivilege compara el tier del rol contra el requerido.
func (RoleGate) HasPrivilege(role string, required Tier) bool {
	return TierForRole(role) >= required
}

// TierForRole mapea un rol a su tier. Roles desconocidos cuentan como GUEST.
func TierForRole(role string) Tier {
	switch role {
	case entity.RoleSuperAdmin:
		return TierSuperAdmin
	case entity.RoleOrgAdmin:
		return TierOrgAdmin
	case entity.RoleInstructor:
		return TierInstructor
	case entity.RoleLearner:
		return TierLearner
	default:
		return TierGuest
	}
}
