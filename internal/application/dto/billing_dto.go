package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceLineResponse línea de factura.
type InvoiceLineResponse struct {
	ProductID   string          `json:"product_id"`
	SizeID      string          `json:"size_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// InvoiceResponse factura con detalle.
type InvoiceResponse struct {
	ID            string                `json:"id"`
	OrderID       string                `json:"order_id"`
	Number        string                `json:"number"`
	IssuedAt      time.Time             `json:"issued_at"`
	Subtotal      decimal.Decimal       `json:"subtotal"`
	Tax           decimal.Decimal       `json:"tax"`
	Total         decimal.Decimal       `json:"total"`
	Currency      string                `json:"currency"`
	PaymentMethod string                `json:"payment_method"`
	TransactionID string                `json:"transaction_id"`
	Lines         []InvoiceLineResponse `json:"lines"`
}
