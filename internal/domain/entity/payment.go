package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Estados internos de pago (traducción del estado de la pasarela).
const (
	PaymentStatusPaid       = "paid"
	PaymentStatusPending    = "pending"
	PaymentStatusRejected   = "rejected"
	PaymentStatusCancelled  = "cancelled"
	PaymentStatusRefunded   = "refunded"
	PaymentStatusChargeback = "chargeback"
)

// Payment notificación de la pasarela, única por TransactionID.
// Status guarda el estado externo tal como llegó; InternalStatus su traducción.
type Payment struct {
	ID             string
	TransactionID  string
	Status         string
	InternalStatus string
	StatusDetail   string
	Amount         decimal.Decimal
	Currency       string
	PaymentMethod  string
	RawPayload     json.RawMessage
	CartID         string
	OrderID        string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
