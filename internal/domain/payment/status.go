// Package payment traduce los estados de la pasarela de pago al modelo interno.
package payment

import (
	"strings"

	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain/entity"
)

var statusMap = map[string]string{
	"approved":     entity.PaymentStatusPaid,
	"pending":      entity.PaymentStatusPending,
	"in_process":   entity.PaymentStatusPending,
	"rejected":     entity.PaymentStatusRejected,
	"cancelled":    entity.PaymentStatusCancelled,
	"refunded":     entity.PaymentStatusRefunded,
	"charged_back": entity.PaymentStatusChargeback,
}

// MapStatus traduce el estado externo. Un estado desconocido o vacío se trata como pendiente
// para no perder la notificación.
func MapStatus(external string) string {
	if s, ok := statusMap[strings.ToLower(strings.TrimSpace(external))]; ok {
		return s
	}
	return entity.PaymentStatusPending
}

// CartStateFor estado de carrito que se agrega al historial para un estado interno de pago.
func CartStateFor(internal string) string {
	switch internal {
	case entity.PaymentStatusPaid:
		return entity.CartStatePagado
	case entity.PaymentStatusPending:
		return entity.CartStatePendiente
	default:
		return entity.CartStateCancelado
	}
}

// RestoresStock indica si el estado interno devuelve el stock reservado del carrito.
func RestoresStock(internal string) bool {
	return internal == entity.PaymentStatusRejected || internal == entity.PaymentStatusCancelled
}

// rank orden de avance de un pago: pendiente, resuelto (pagado, rechazado, cancelado) y
// posterior al pago (reembolso, contracargo).
func rank(internal string) int {
	switch internal {
	case entity.PaymentStatusPending:
		return 0
	case entity.PaymentStatusRefunded, entity.PaymentStatusChargeback:
		return 2
	default:
		return 1
	}
}

// Supersedes indica si una notificación con estado interno next debe aplicarse sobre un pago
// que ya está en current. Un pago nunca retrocede ni salta entre estados del mismo nivel,
// así una notificación vieja que llega fuera de orden no tiene efectos.
func Supersedes(current, next string) bool {
	if current == "" {
		return true
	}
	return rank(next) > rank(current)
}
