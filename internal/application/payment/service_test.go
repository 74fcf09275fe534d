package payment_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/application/billing"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/application/cart"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/application/dto"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/application/inventory"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/application/notify"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/application/payment"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/application/reports"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain/entity"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/infrastructure/memory/memtest"
)

type fakeSender struct {
	mu   sync.Mutex
	sent []notify.Message
}

func (s *fakeSender) Send(_ context.Context, msg notify.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, msg)
	return nil
}

type env struct {
	f      *memtest.Fixture
	carts  *cart.Service
	svc    *payment.Service
	sender *fakeSender
	actor  cart.Actor
}

func setup(t *testing.T) *env {
	t.Helper()
	f := memtest.New(t)
	f.Product(t, "p1", "Camiseta", 50000)
	f.Product(t, "p2", "Buzo", 100000)
	f.Stock(t, "p1", memtest.SizeM, 10)
	f.Stock(t, "p2", memtest.SizeL, 3)
	f.User(t, "u-1", "ana@example.com", entity.RoleCliente)

	sender := &fakeSender{}
	mailer := notify.NewMailer(sender, "", zerolog.Nop())
	issuer := billing.NewIssuer(billing.Config{TaxRate: decimal.RequireFromString("0.19"), Currency: "COP", PaymentMethod: "mercadopago", Prefix: "FAC"})
	return &env{
		f:      f,
		carts:  cart.NewService(f.DB, f.DB.Store(), nil, zerolog.Nop()),
		svc:    payment.NewService(f.DB, f.DB.Store(), issuer, nil, mailer, zerolog.Nop()),
		sender: sender,
		actor:  cart.Actor{UserID: "u-1", Role: entity.RoleCliente},
	}
}

// cartWithItems carrito con 2×p1/M y 1×p2/L (total 200000).
func (e *env) cartWithItems(t *testing.T, checkout bool) string {
	t.Helper()
	ctx := context.Background()
	c, err := e.carts.CreateCart(ctx, e.actor)
	require.NoError(t, err)
	_, err = e.carts.AddItem(ctx, e.actor, c.ID, dto.AddItemRequest{ProductID: "p1", SizeID: memtest.SizeM, Quantity: 2})
	require.NoError(t, err)
	_, err = e.carts.AddItem(ctx, e.actor, c.ID, dto.AddItemRequest{ProductID: "p2", SizeID: memtest.SizeL, Quantity: 1})
	require.NoError(t, err)
	if checkout {
		_, err = e.carts.Checkout(ctx, e.actor, c.ID)
		require.NoError(t, err)
	}
	return c.ID
}

func notification(cartID, tx, status string) dto.PaymentNotificationRequest {
	return dto.PaymentNotificationRequest{
		TransactionID:     tx,
		Status:            status,
		ExternalReference: cartID,
		Amount:            decimal.NewFromInt(238000),
		Currency:          "COP",
		PaymentMethod:     "credit_card",
		Raw:               []byte(`{"id":"` + tx + `"}`),
	}
}

func TestReconcile_AprobadoTrasCheckout(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	cartID := e.cartWithItems(t, true)
	require.Equal(t, 8, e.f.StockOf(t, "p1", memtest.SizeM))

	res, err := e.svc.Reconcile(ctx, notification(cartID, "tx-1", "approved"))
	require.NoError(t, err)
	assert.False(t, res.Replayed)
	assert.Equal(t, entity.PaymentStatusPaid, res.InternalStatus)
	require.NotEmpty(t, res.OrderID)
	require.NotEmpty(t, res.InvoiceID)

	st := e.f.DB.Store()
	order, err := st.Orders().GetByID(ctx, res.OrderID)
	require.NoError(t, err)
	assert.True(t, order.Settled)
	assert.True(t, order.StockCommitted, "la reserva del checkout pasa al pedido")
	assert.Equal(t, "200000", order.Total.String())

	c, err := st.Carts().GetByID(ctx, cartID)
	require.NoError(t, err)
	assert.False(t, c.Active)
	assert.False(t, c.StockReserved)

	inv, err := st.Invoices().GetByID(ctx, res.InvoiceID)
	require.NoError(t, err)
	assert.Equal(t, "200000", inv.Subtotal.String())
	assert.Equal(t, "38000", inv.Tax.String())
	assert.Equal(t, "238000", inv.Total.String())
	assert.Equal(t, "tx-1", inv.TransactionID)
	assert.Regexp(t, `^FAC-[0-9A-F]{8}$`, inv.Number)

	lines, err := st.Invoices().ListLines(ctx, inv.ID)
	require.NoError(t, err)
	assert.Len(t, lines, 2)

	states, err := st.Carts().ListStates(ctx, cartID)
	require.NoError(t, err)
	last := states[len(states)-1]
	assert.Equal(t, entity.CartStatePagado, last.State)
	assert.Equal(t, entity.PaymentStatusPaid, last.Note)

	assert.Equal(t, 8, e.f.StockOf(t, "p1", memtest.SizeM), "el pago no vuelve a descontar")
	require.Len(t, e.sender.sent, 1)
	assert.Equal(t, []string{"ana@example.com"}, e.sender.sent[0].To)
}

func TestReconcile_RepeticionSinEfectos(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	cartID := e.cartWithItems(t, true)

	first, err := e.svc.Reconcile(ctx, notification(cartID, "tx-1", "approved"))
	require.NoError(t, err)
	states, err := e.f.DB.Store().Carts().ListStates(ctx, cartID)
	require.NoError(t, err)

	again, err := e.svc.Reconcile(ctx, notification(cartID, "tx-1", "approved"))
	require.NoError(t, err)
	assert.True(t, again.Replayed)
	assert.Equal(t, first.OrderID, again.OrderID)
	assert.Equal(t, first.InvoiceID, again.InvoiceID)
	assert.Equal(t, first.PaymentID, again.PaymentID)

	after, err := e.f.DB.Store().Carts().ListStates(ctx, cartID)
	require.NoError(t, err)
	assert.Len(t, after, len(states))
	assert.Len(t, e.sender.sent, 1)
}

func TestReconcile_RechazadoDevuelveReserva(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	cartID := e.cartWithItems(t, true)
	require.Equal(t, 2, e.f.StockOf(t, "p2", memtest.SizeL))

	res, err := e.svc.Reconcile(ctx, notification(cartID, "tx-2", "rejected"))
	require.NoError(t, err)
	assert.Empty(t, res.OrderID)
	assert.Equal(t, 10, e.f.StockOf(t, "p1", memtest.SizeM))
	assert.Equal(t, 3, e.f.StockOf(t, "p2", memtest.SizeL))

	c, err := e.f.DB.Store().Carts().GetByID(ctx, cartID)
	require.NoError(t, err)
	assert.False(t, c.StockReserved)

	// un cancelado posterior no vuelve a sumar
	again, err := e.svc.Reconcile(ctx, notification(cartID, "tx-2", "cancelled"))
	require.NoError(t, err)
	assert.True(t, again.Replayed)
	assert.Equal(t, 10, e.f.StockOf(t, "p1", memtest.SizeM))

	states, err := e.f.DB.Store().Carts().ListStates(ctx, cartID)
	require.NoError(t, err)
	assert.Equal(t, entity.CartStateCancelado, states[len(states)-1].State)
}

func TestReconcile_AprobadoSinCheckoutQuedaPorConfirmar(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	cartID := e.cartWithItems(t, false)

	res, err := e.svc.Reconcile(ctx, notification(cartID, "tx-3", "approved"))
	require.NoError(t, err)
	order, err := e.f.DB.Store().Orders().GetByID(ctx, res.OrderID)
	require.NoError(t, err)
	assert.False(t, order.StockCommitted)
	assert.Equal(t, 10, e.f.StockOf(t, "p1", memtest.SizeM))

	uc := inventory.NewUseCase(e.f.DB, e.f.DB.Store(), nil, zerolog.Nop())
	require.NoError(t, uc.ConfirmOrder(ctx, res.OrderID))
	assert.Equal(t, 8, e.f.StockOf(t, "p1", memtest.SizeM))
	assert.Equal(t, 2, e.f.StockOf(t, "p2", memtest.SizeL))
}

func TestReconcile_PendienteLuegoAprobado(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	cartID := e.cartWithItems(t, true)

	res, err := e.svc.Reconcile(ctx, notification(cartID, "tx-4", "in_process"))
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPending, res.InternalStatus)
	assert.Empty(t, res.OrderID)

	res, err = e.svc.Reconcile(ctx, notification(cartID, "tx-4", "approved"))
	require.NoError(t, err)
	assert.False(t, res.Replayed)
	assert.NotEmpty(t, res.InvoiceID)
}

func TestReconcile_Errores(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	_, err := e.svc.Reconcile(ctx, notification("no-existe", "tx-5", "approved"))
	assert.ErrorIs(t, err, domain.ErrNotFound, "una referencia que no es uuid no llega a la base")

	_, err = e.svc.Reconcile(ctx, notification(uuid.New().String(), "tx-5", "approved"))
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = e.svc.Reconcile(ctx, notification("", "tx-5", "approved"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	a := e.cartWithItems(t, false)
	b := e.cartWithItems(t, false)
	_, err = e.svc.Reconcile(ctx, notification(a, "tx-6", "pending"))
	require.NoError(t, err)
	_, err = e.svc.Reconcile(ctx, notification(b, "tx-6", "approved"))
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestReconcile_PendienteAtrasadoNoRetrocedeElPago(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	cartID := e.cartWithItems(t, true)

	_, err := e.svc.Reconcile(ctx, notification(cartID, "tx-7", "pending"))
	require.NoError(t, err)
	paid, err := e.svc.Reconcile(ctx, notification(cartID, "tx-7", "approved"))
	require.NoError(t, err)
	states, err := e.f.DB.Store().Carts().ListStates(ctx, cartID)
	require.NoError(t, err)

	// la pasarela reenvía la notificación pendiente después del pago
	late, err := e.svc.Reconcile(ctx, notification(cartID, "tx-7", "pending"))
	require.NoError(t, err)
	assert.True(t, late.Replayed)
	assert.Equal(t, paid.OrderID, late.OrderID)
	assert.Equal(t, paid.InvoiceID, late.InvoiceID)

	after, err := e.f.DB.Store().Carts().ListStates(ctx, cartID)
	require.NoError(t, err)
	require.Len(t, after, len(states))
	assert.Equal(t, entity.CartStatePagado, after[len(after)-1].State)

	p, err := e.f.DB.Store().Payments().GetByTransactionForUpdate(ctx, "tx-7")
	require.NoError(t, err)
	assert.Equal(t, "approved", p.Status)
	assert.Equal(t, entity.PaymentStatusPaid, p.InternalStatus)

	day := time.Now().UTC().Format("2006-01-02")
	rep, err := reports.NewService(e.f.DB, e.f.DB.Store(), zerolog.Nop()).
		Build(ctx, dto.BuildReportRequest{Start: day, End: day, OnlyApproved: true})
	require.NoError(t, err)
	assert.Equal(t, 1, rep.TicketCount)
}

func TestReconcile_EstadoEnMayusculasCuentaComoAprobado(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	cartID := e.cartWithItems(t, true)

	res, err := e.svc.Reconcile(ctx, notification(cartID, "tx-8", "APPROVED"))
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPaid, res.InternalStatus)
	require.NotEmpty(t, res.InvoiceID)

	day := time.Now().UTC().Format("2006-01-02")
	rep, err := reports.NewService(e.f.DB, e.f.DB.Store(), zerolog.Nop()).
		Build(ctx, dto.BuildReportRequest{Start: day, End: day, OnlyApproved: true})
	require.NoError(t, err)
	assert.Equal(t, 1, rep.TicketCount)
	assert.Equal(t, 3, rep.TotalItems)
}

func TestReconcile_RechazadoSinRegistroDeInventarioEsNoOp(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	cartID := e.cartWithItems(t, true)
	require.Equal(t, 8, e.f.StockOf(t, "p1", memtest.SizeM))

	// un cambio de grupo de tallas borra los registros de p2
	n, err := e.f.DB.Store().Inventory().DeleteByProducts(ctx, []string{"p2"})
	require.NoError(t, err)
	require.Positive(t, n)

	_, err = e.svc.Reconcile(ctx, notification(cartID, "tx-9", "rejected"))
	require.NoError(t, err)
	assert.Equal(t, 10, e.f.StockOf(t, "p1", memtest.SizeM))

	assert.Equal(t, -1, e.f.StockOf(t, "p2", memtest.SizeL), "sin registro no se recrea")

	c, err := e.f.DB.Store().Carts().GetByID(ctx, cartID)
	require.NoError(t, err)
	assert.False(t, c.StockReserved)
}
