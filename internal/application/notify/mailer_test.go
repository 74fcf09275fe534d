package notify_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/application/notify"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain/entity"
)

type captureSender struct {
	msgs []notify.Message
	err  error
}

func (s *captureSender) Send(_ context.Context, msg notify.Message) error {
	if s.err != nil {
		return s.err
	}
	s.msgs = append(s.msgs, msg)
	return nil
}

func TestSend_FiltraDirecciones(t *testing.T) {
	s := &captureSender{}
	m := notify.NewMailer(s, "", zerolog.Nop())
	n := m.Send(context.Background(), notify.Message{To: []string{"a@example.com", "no-es-correo", " A@example.com ", ""}, Subject: "x"})
	assert.Equal(t, 1, n)
	require.Len(t, s.msgs, 1)
	assert.Equal(t, []string{"a@example.com"}, s.msgs[0].To)
}

func TestSend_RespaldoYDescarte(t *testing.T) {
	s := &captureSender{}
	withFallback := notify.NewMailer(s, "ops@example.com", zerolog.Nop())
	assert.Equal(t, 1, withFallback.Send(context.Background(), notify.Message{To: []string{"mal"}, Subject: "x"}))
	assert.Equal(t, []string{"ops@example.com"}, s.msgs[0].To)

	none := notify.NewMailer(s, "", zerolog.Nop())
	assert.Equal(t, 0, none.Send(context.Background(), notify.Message{Subject: "x"}))
	assert.Len(t, s.msgs, 1)
}

func TestSend_ErrorDelSenderNoSePropaga(t *testing.T) {
	m := notify.NewMailer(&captureSender{err: errors.New("smtp caído")}, "", zerolog.Nop())
	assert.Equal(t, 0, m.Send(context.Background(), notify.Message{To: []string{"a@example.com"}}))
}

func TestSendReceipt_Factura(t *testing.T) {
	s := &captureSender{}
	m := notify.NewMailer(s, "", zerolog.Nop())
	inv := &entity.Invoice{Number: "FAC-ABCD1234", Subtotal: decimal.NewFromInt(100), Tax: decimal.NewFromInt(19), Total: decimal.NewFromInt(119)}
	r := notify.InvoiceReceipt{
		Email:   "ana@example.com",
		Invoice: inv,
		Lines:   []*entity.InvoiceLine{{ProductName: "Camiseta <XL>", Quantity: 1, UnitPrice: decimal.NewFromInt(100), Subtotal: decimal.NewFromInt(100)}},
	}
	assert.Equal(t, 1, m.SendReceipt(context.Background(), r))
	require.Len(t, s.msgs, 1)
	msg := s.msgs[0]
	assert.Equal(t, "Factura FAC-ABCD1234", msg.Subject)
	assert.Contains(t, msg.Text, "Camiseta <XL>")
	assert.Contains(t, msg.HTML, "Camiseta &lt;XL&gt;")
	assert.Contains(t, msg.Text, "119.00")
}

func TestRenderStockAlert(t *testing.T) {
	msg, err := notify.RenderStockAlert([]string{"admin@example.com"}, notify.StockAlertMail{InventoryID: "inv-1", ProductName: "Buzo", SizeName: "L", Stock: 2, Threshold: 5})
	require.NoError(t, err)
	assert.Equal(t, "Alerta de stock: Buzo (L)", msg.Subject)
	assert.Contains(t, msg.Text, "Buzo")
}
