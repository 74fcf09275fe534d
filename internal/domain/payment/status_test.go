package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain/entity"
)

func TestMapStatus(t *testing.T) {
	cases := map[string]string{
		"approved":     entity.PaymentStatusPaid,
		"APPROVED ":    entity.PaymentStatusPaid,
		"pending":      entity.PaymentStatusPending,
		"in_process":   entity.PaymentStatusPending,
		"rejected":     entity.PaymentStatusRejected,
		"cancelled":    entity.PaymentStatusCancelled,
		"refunded":     entity.PaymentStatusRefunded,
		"charged_back": entity.PaymentStatusChargeback,
		"":             entity.PaymentStatusPending,
		"authorized":   entity.PaymentStatusPending,
	}
	for in, want := range cases {
		assert.Equal(t, want, MapStatus(in), "estado %q", in)
	}
}

func TestCartStateFor(t *testing.T) {
	assert.Equal(t, entity.CartStatePagado, CartStateFor(entity.PaymentStatusPaid))
	assert.Equal(t, entity.CartStatePendiente, CartStateFor(entity.PaymentStatusPending))
	assert.Equal(t, entity.CartStateCancelado, CartStateFor(entity.PaymentStatusRejected))
	assert.Equal(t, entity.CartStateCancelado, CartStateFor(entity.PaymentStatusChargeback))
}

func TestRestoresStock(t *testing.T) {
	assert.True(t, RestoresStock(entity.PaymentStatusRejected))
	assert.True(t, RestoresStock(entity.PaymentStatusCancelled))
	assert.False(t, RestoresStock(entity.PaymentStatusRefunded))
	assert.False(t, RestoresStock(entity.PaymentStatusPaid))
}

func TestSupersedes(t *testing.T) {
	assert.True(t, Supersedes("", entity.PaymentStatusPending))
	assert.True(t, Supersedes(entity.PaymentStatusPending, entity.PaymentStatusPaid))
	assert.True(t, Supersedes(entity.PaymentStatusPending, entity.PaymentStatusRejected))
	assert.True(t, Supersedes(entity.PaymentStatusPaid, entity.PaymentStatusRefunded))
	assert.True(t, Supersedes(entity.PaymentStatusPaid, entity.PaymentStatusChargeback))

	assert.False(t, Supersedes(entity.PaymentStatusPaid, entity.PaymentStatusPending))
	assert.False(t, Supersedes(entity.PaymentStatusPending, entity.PaymentStatusPending))
	assert.False(t, Supersedes(entity.PaymentStatusRejected, entity.PaymentStatusPaid))
	assert.False(t, Supersedes(entity.PaymentStatusRefunded, entity.PaymentStatusPaid))
	assert.False(t, Supersedes(entity.PaymentStatusCancelled, entity.PaymentStatusPending))
}
