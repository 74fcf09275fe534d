package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados válidos del carrito. El historial es de solo inserción.
const (
	CartStateActivo    = "activo"
	CartStatePendiente = "pendiente"
	CartStatePagado    = "pagado"
	CartStateEnviado   = "enviado"
	CartStateEntregado = "entregado"
	CartStateCancelado = "cancelado"
)

// ValidCartState indica si s pertenece a la enumeración de estados.
func ValidCartState(s string) bool {
	switch s {
	case CartStateActivo, CartStatePendiente, CartStatePagado,
		CartStateEnviado, CartStateEntregado, CartStateCancelado:
		return true
	}
	return false
}

// Cart carrito de compras. UserID vacío = carrito sin dueño, que solo un admin o la
// conciliación de pagos pueden tocar.
// StockReserved indica que el checkout ya descontó inventario por sus ítems.
type Cart struct {
	ID            string
	UserID        string
	Active        bool
	StockReserved bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CartState fila del historial de estados del carrito.
type CartState struct {
	ID        string
	CartID    string
	State     string
	Note      string
	CreatedAt time.Time
}

// CartItem línea del carrito, única por (CartID, ProductID, SizeID).
// UnitPrice y Subtotal se calculan al escribir con el precio vigente del producto.
type CartItem struct {
	ID        string
	CartID    string
	ProductID string
	SizeID    string
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}
