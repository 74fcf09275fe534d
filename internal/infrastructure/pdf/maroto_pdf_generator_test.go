package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appbilling "github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/application/billing"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain/entity"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "999", formatMoney("999"))
	assert.Equal(t, "25.000", formatMoney("25000"))
	assert.Equal(t, "1.000.000", formatMoney("1000000"))
	assert.Equal(t, "$119.000", money(decimal.NewFromInt(119000)))
	assert.Equal(t, "-$1.500", money(decimal.NewFromInt(-1500)))
}

func TestGenerateInvoicePDF(t *testing.T) {
	g := NewMarotoPDFGenerator()
	doc := appbilling.InvoiceDocument{
		Issuer: "Tienda Test",
		Invoice: &entity.Invoice{
			ID: "inv-1", OrderID: "ord-1", Number: "FAC-1A2B3C4D",
			IssuedAt: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
			Subtotal: decimal.NewFromInt(100000), Tax: decimal.Zero, Total: decimal.NewFromInt(100000),
			Currency: "COP", PaymentMethod: "mercadopago", TransactionID: "tx-99",
		},
		Lines: []*entity.InvoiceLine{{
			ProductID: "p1", SizeID: "s1", ProductName: "Camiseta",
			Quantity: 2, UnitPrice: decimal.NewFromInt(50000), Subtotal: decimal.NewFromInt(100000),
		}},
		CustomerName: "Ana",
	}

	out, err := g.GenerateInvoicePDF(context.Background(), doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))

	_, err = g.GenerateInvoicePDF(context.Background(), appbilling.InvoiceDocument{})
	assert.Error(t, err)
}
