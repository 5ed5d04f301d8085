package dto

import "time"

// CreateUserRequest entrada para alta administrativa de un usuario
// (password en texto, se hashea en el caso de uso).
type CreateUserRequest struct {
	OrganizationID string `json:"organization_id" validate:"required,uuid"`
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=8"`
	Name           string `json:"name" validate:"required,min=1,max=200"`
	Role           string `json:"role" validate:"required,oneof=SUPER_ADMIN ORG_ADMIN INSTRUCTOR LEARNER GUEST"`
}

// UpdateUserRequest entrada para actualizar nombre y/o rol. Nunca cambia
// la organización de pertenencia.
type UpdateUserRequest struct {
	Name string `json:"name" validate:"omitempty,min=1,max=200"`
	Role string `json:"role" validate:"omitempty,oneof=SUPER_ADMIN ORG_ADMIN INSTRUCTOR LEARNER GUEST"`
}

// RegisterRequest entrada para registro (auth).
type RegisterRequest struct {
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=8"`
	OrganizationID string `json:"organization_id" validate:"required,uuid"`
	Name           string `json:"name" validate:"omitempty,max=200"`
	Role           string `json:"role" validate:"omitempty,oneof=ORG_ADMIN INSTRUCTOR LEARNER GUEST"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	Role           string    `json:"role"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// UserListResponse listado paginado de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
