package dto

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// PaymentNotificationRequest notificación de la pasarela (POST /api/webhooks/payments).
// ExternalReference es el ID del carrito.
type PaymentNotificationRequest struct {
	TransactionID     string          `json:"transaction_id" valid:"required"`
	Status            string          `json:"status" valid:"required"`
	StatusDetail      string          `json:"status_detail"`
	ExternalReference string          `json:"external_reference" valid:"required"`
	Amount            decimal.Decimal `json:"amount"`
	Currency          string          `json:"currency"`
	PaymentMethod     string          `json:"payment_method"`
	Raw               json.RawMessage `json:"-"`
}

// PaymentResultResponse resultado de la conciliación.
type PaymentResultResponse struct {
	PaymentID      string `json:"payment_id"`
	TransactionID  string `json:"transaction_id"`
	Status         string `json:"status"`
	InternalStatus string `json:"internal_status"`
	CartID         string `json:"cart_id"`
	OrderID        string `json:"order_id,omitempty"`
	InvoiceID      string `json:"invoice_id,omitempty"`
	Replayed       bool   `json:"replayed"`
}
