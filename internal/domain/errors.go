package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrPurchaseInFlight  = errors.New("ya hay una compra en curso")
	ErrUnauthorized      = errors.New("no autorizado")
)
