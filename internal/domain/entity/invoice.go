package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice factura, uno a uno con Order.
type Invoice struct {
	ID            string
	OrderID       string
	Number        string
	IssuedAt      time.Time
	Subtotal      decimal.Decimal
	Tax           decimal.Decimal
	Total         decimal.Decimal
	Currency      string
	PaymentMethod string
	TransactionID string
	CreatedAt     time.Time
}

// InvoiceLine línea de factura. ProductName queda como snapshot.
type InvoiceLine struct {
	ID          string
	InvoiceID   string
	ProductID   string
	SizeID      string
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}
