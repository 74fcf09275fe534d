package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AddItemRequest body para POST /api/carts/:id/items.
type AddItemRequest struct {
	ProductID string `json:"product_id" valid:"required"`
	SizeID    string `json:"size_id" valid:"required"`
	Quantity  int    `json:"quantity"`
}

// CartItemResponse línea del carrito.
type CartItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	SizeID    string          `json:"size_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// CartResponse carrito con su estado actual y líneas.
type CartResponse struct {
	ID            string             `json:"id"`
	UserID        string             `json:"user_id,omitempty"`
	Active        bool               `json:"active"`
	StockReserved bool               `json:"stock_reserved"`
	State         string             `json:"state"`
	Items         []CartItemResponse `json:"items"`
	Total         decimal.Decimal    `json:"total"`
	CreatedAt     time.Time          `json:"created_at"`
}

// ChangeStateRequest body para POST /api/carts/:id/states.
type ChangeStateRequest struct {
	State string `json:"state" valid:"required"`
	Note  string `json:"note"`
}

// CartStateResponse entrada del historial.
type CartStateResponse struct {
	State     string    `json:"state"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// OrderLineResponse línea de pedido.
type OrderLineResponse struct {
	ProductID string          `json:"product_id"`
	SizeID    string          `json:"size_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// OrderResponse pedido.
type OrderResponse struct {
	ID             string              `json:"id"`
	UserID         string              `json:"user_id,omitempty"`
	CartID         string              `json:"cart_id"`
	Total          decimal.Decimal     `json:"total"`
	Settled        bool                `json:"settled"`
	StockCommitted bool                `json:"stock_committed"`
	Lines          []OrderLineResponse `json:"lines"`
	CreatedAt      time.Time           `json:"created_at"`
}
