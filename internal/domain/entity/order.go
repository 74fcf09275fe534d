package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order pedido. Settled = pagado. StockCommitted = el inventario ya fue descontado
// (por checkout del carrito o por ConfirmOrder).
type Order struct {
	ID             string
	UserID         string
	CartID         string
	Total          decimal.Decimal
	Settled        bool
	StockCommitted bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// OrderLine relación pedido-producto con talla, cantidad y precio.
type OrderLine struct {
	ID        string
	OrderID   string
	ProductID string
	SizeID    string
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}
