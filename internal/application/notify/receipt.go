package notify

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain/entity"
)

// ReceiptLine renglón de un comprobante.
type ReceiptLine struct {
	Description string
	Quantity    int
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}

// Receipt comprobante enviable por correo (pedido o factura).
type Receipt interface {
	RecipientEmail() string
	Subject() string
	LineItems() []ReceiptLine
	Totals() []Amount
}

// Amount renglón de totales ("Subtotal", "IVA", "Total").
type Amount struct {
	Label string
	Value decimal.Decimal
}

// OrderReceipt confirmación de pedido pagado.
type OrderReceipt struct {
	Email string
	Order *entity.Order
	Lines []*entity.OrderLine
	Names map[string]string // producto -> nombre
}

func (r OrderReceipt) RecipientEmail() string { return r.Email }

func (r OrderReceipt) Subject() string {
	return fmt.Sprintf("Confirmación de pedido %s", shortID(r.Order.ID))
}

func (r OrderReceipt) LineItems() []ReceiptLine {
	out := make([]ReceiptLine, 0, len(r.Lines))
	for _, l := range r.Lines {
		out = append(out, ReceiptLine{Description: nameOr(r.Names, l.ProductID), Quantity: l.Quantity, UnitPrice: l.UnitPrice, Subtotal: l.Subtotal})
	}
	return out
}

func (r OrderReceipt) Totals() []Amount {
	return []Amount{{Label: "Total", Value: r.Order.Total}}
}

// InvoiceReceipt factura emitida.
type InvoiceReceipt struct {
	Email   string
	Invoice *entity.Invoice
	Lines   []*entity.InvoiceLine
}

func (r InvoiceReceipt) RecipientEmail() string { return r.Email }

func (r InvoiceReceipt) Subject() string { return "Factura " + r.Invoice.Number }

func (r InvoiceReceipt) LineItems() []ReceiptLine {
	out := make([]ReceiptLine, 0, len(r.Lines))
	for _, l := range r.Lines {
		out = append(out, ReceiptLine{Description: l.ProductName, Quantity: l.Quantity, UnitPrice: l.UnitPrice, Subtotal: l.Subtotal})
	}
	return out
}

func (r InvoiceReceipt) Totals() []Amount {
	return []Amount{
		{Label: "Subtotal", Value: r.Invoice.Subtotal},
		{Label: "Impuestos", Value: r.Invoice.Tax},
		{Label: "Total", Value: r.Invoice.Total},
	}
}

// SendReceipt renderiza y envía el comprobante a su destinatario.
func (m *Mailer) SendReceipt(ctx context.Context, r Receipt) int {
	msg, err := RenderReceipt(r)
	if err != nil {
		m.log.Error().Err(err).Str("subject", r.Subject()).Msg("no se pudo renderizar el comprobante")
		return 0
	}
	return m.Send(ctx, msg)
}

func nameOr(names map[string]string, id string) string {
	if n, ok := names[id]; ok && n != "" {
		return n
	}
	return "Producto " + shortID(id)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
