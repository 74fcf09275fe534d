package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrInventoryMissing  = errors.New("no existe registro de inventario para producto y talla")
)

// StockError identifica la línea (producto + talla) que impidió un descuento de inventario.
// errors.Is(err, ErrInsufficientStock) o ErrInventoryMissing según el caso.
type StockError struct {
	ProductID string
	SizeID    string
	Requested int
	Available int
	Missing   bool
}

func (e *StockError) Error() string {
	if e.Missing {
		return fmt.Sprintf("%s: producto %s talla %s", ErrInventoryMissing.Error(), e.ProductID, e.SizeID)
	}
	return fmt.Sprintf("%s: producto %s talla %s (solicitado %d, disponible %d)",
		ErrInsufficientStock.Error(), e.ProductID, e.SizeID, e.Requested, e.Available)
}

func (e *StockError) Unwrap() error {
	if e.Missing {
		return ErrInventoryMissing
	}
	return ErrInsufficientStock
}

// ValidationError rechazo estructurado que nombra el campo o entidad inválida.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// Invalid construye un ValidationError.
func Invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
