package billing_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/application/billing"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain/entity"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain/repository"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/infrastructure/memory/memtest"
)

type fakePDF struct{ doc billing.InvoiceDocument }

func (g *fakePDF) GenerateInvoicePDF(_ context.Context, doc billing.InvoiceDocument) ([]byte, error) {
	g.doc = doc
	return []byte("%PDF-fake"), nil
}

func paidOrder(t *testing.T, f *memtest.Fixture) *entity.Order {
	t.Helper()
	ctx := context.Background()
	f.Product(t, "p1", "Camiseta", 50000)
	f.User(t, "u-1", "ana@example.com", entity.RoleCliente)
	o := &entity.Order{ID: "o1", UserID: "u-1", CartID: "c1", Total: decimal.NewFromInt(150000), Settled: true, CreatedAt: f.Now, UpdatedAt: f.Now}
	st := f.DB.Store()
	require.NoError(t, st.Orders().Create(ctx, o))
	require.NoError(t, st.Orders().CreateLine(ctx, &entity.OrderLine{
		ID: "l1", OrderID: "o1", ProductID: "p1", SizeID: memtest.SizeM, Quantity: 3,
		UnitPrice: decimal.NewFromInt(50000), Subtotal: decimal.NewFromInt(150000),
	}))
	return o
}

func TestIssueForOrder_IdempotentePorPedido(t *testing.T) {
	f := memtest.New(t)
	order := paidOrder(t, f)
	issuer := billing.NewIssuer(billing.Config{TaxRate: decimal.RequireFromString("0.19"), Currency: "COP", PaymentMethod: "mercadopago"})

	var first, second *entity.Invoice
	err := f.DB.RunInTx(context.Background(), func(tx repository.Store) error {
		var created bool
		var err error
		first, created, err = issuer.IssueForOrder(context.Background(), tx, order, "tx-1")
		require.True(t, created)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, "28500", first.Tax.String())
	assert.Equal(t, "178500", first.Total.String())
	assert.Regexp(t, `^FAC-[0-9A-F]{8}$`, first.Number)

	err = f.DB.RunInTx(context.Background(), func(tx repository.Store) error {
		var created bool
		var err error
		second, created, err = issuer.IssueForOrder(context.Background(), tx, order, "tx-1")
		assert.False(t, created)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestIssueForOrder_SinImpuestoPorDefecto(t *testing.T) {
	f := memtest.New(t)
	order := paidOrder(t, f)
	issuer := billing.NewIssuer(billing.Config{})

	err := f.DB.RunInTx(context.Background(), func(tx repository.Store) error {
		inv, _, err := issuer.IssueForOrder(context.Background(), tx, order, "tx-1")
		if err != nil {
			return err
		}
		assert.True(t, inv.Tax.IsZero())
		assert.Equal(t, "150000", inv.Total.String())
		return nil
	})
	require.NoError(t, err)
}

func TestInvoiceNumber(t *testing.T) {
	assert.Equal(t, "FAC-1A2B3C4D", billing.InvoiceNumber("FAC", "1a2b3c4d-0000-4000-8000-000000000000"))
	assert.Equal(t, "T-AB", billing.InvoiceNumber("T", "ab"))
}

func TestUseCase_GetYPDF(t *testing.T) {
	f := memtest.New(t)
	order := paidOrder(t, f)
	issuer := billing.NewIssuer(billing.Config{Currency: "COP"})
	var inv *entity.Invoice
	require.NoError(t, f.DB.RunInTx(context.Background(), func(tx repository.Store) error {
		var err error
		inv, _, err = issuer.IssueForOrder(context.Background(), tx, order, "tx-1")
		return err
	}))

	gen := &fakePDF{}
	uc := billing.NewUseCase(f.DB.Store(), gen, "Tienda Test")
	ctx := context.Background()

	got, err := uc.GetInvoice(ctx, inv.ID)
	require.NoError(t, err)
	require.Len(t, got.Lines, 1)
	assert.Equal(t, "Camiseta", got.Lines[0].ProductName)

	byOrder, err := uc.GetByOrder(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, inv.ID, byOrder.ID)

	pdf, name, err := uc.InvoicePDF(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-fake", string(pdf))
	assert.Equal(t, "factura_"+inv.Number+".pdf", name)
	assert.Equal(t, "ana@example.com", gen.doc.CustomerEmail)
	assert.Equal(t, "Tienda Test", gen.doc.Issuer)

	_, _, err = uc.InvoicePDF(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.GetByOrder(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
