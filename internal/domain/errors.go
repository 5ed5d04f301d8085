package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("privilegio insuficiente")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrCrossOrgConflict   = errors.New("el email pertenece a otra organización")
	ErrLabDisabled        = errors.New("el batch no tiene laboratorios activos")
	ErrPersistence        = errors.New("error de persistencia")
)
