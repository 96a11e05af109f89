package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrConflict            = errors.New("conflicto con el estado actual")
	ErrBaseBillNotPositive = errors.New("el cobro base debe ser mayor que cero")
)
