package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/application/dto"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/application/inventory"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain/entity"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/infrastructure/memory/memtest"
)

type recordingWatcher struct {
	mu   sync.Mutex
	seen []*entity.InventoryRecord
}

func (w *recordingWatcher) Observe(_ context.Context, records []*entity.InventoryRecord) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.seen = append(w.seen, records...)
}

func newOrder(t *testing.T, f *memtest.Fixture, id string, lines ...entity.OrderLine) {
	t.Helper()
	ctx := context.Background()
	st := f.DB.Store()
	require.NoError(t, st.Orders().Create(ctx, &entity.Order{ID: id, CartID: "cart-" + id, Total: decimal.Zero, CreatedAt: f.Now, UpdatedAt: f.Now}))
	for i := range lines {
		l := lines[i]
		l.ID = id + "-line-" + string(rune('a'+i))
		l.OrderID = id
		require.NoError(t, st.Orders().CreateLine(ctx, &l))
	}
}

func TestConfirmOrder_DescuentaYMarcaComprometido(t *testing.T) {
	f := memtest.New(t)
	f.Product(t, "p1", "Camiseta", 50000)
	f.Stock(t, "p1", memtest.SizeM, 10)
	newOrder(t, f, "o1", entity.OrderLine{ProductID: "p1", SizeID: memtest.SizeM, Quantity: 3})

	w := &recordingWatcher{}
	uc := inventory.NewUseCase(f.DB, f.DB.Store(), w, zerolog.Nop())
	require.NoError(t, uc.ConfirmOrder(context.Background(), "o1"))
	assert.Equal(t, 7, f.StockOf(t, "p1", memtest.SizeM))
	require.Len(t, w.seen, 1)
	assert.Equal(t, 7, w.seen[0].EffectiveStock())

	err := uc.ConfirmOrder(context.Background(), "o1")
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 7, f.StockOf(t, "p1", memtest.SizeM))
}

func TestConfirmOrder_SinDescuentoParcial(t *testing.T) {
	f := memtest.New(t)
	f.Product(t, "p1", "Camiseta", 50000)
	f.Product(t, "p2", "Buzo", 80000)
	f.Stock(t, "p1", memtest.SizeM, 10)
	f.Stock(t, "p2", memtest.SizeL, 2)
	newOrder(t, f, "o1",
		entity.OrderLine{ProductID: "p1", SizeID: memtest.SizeM, Quantity: 3},
		entity.OrderLine{ProductID: "p2", SizeID: memtest.SizeL, Quantity: 5},
	)

	uc := inventory.NewUseCase(f.DB, f.DB.Store(), nil, zerolog.Nop())
	err := uc.ConfirmOrder(context.Background(), "o1")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var se *domain.StockError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "p2", se.ProductID)
	assert.Equal(t, memtest.SizeL, se.SizeID)
	assert.Equal(t, 5, se.Requested)
	assert.Equal(t, 2, se.Available)

	assert.Equal(t, 10, f.StockOf(t, "p1", memtest.SizeM), "ninguna línea debe descontarse")
	assert.Equal(t, 2, f.StockOf(t, "p2", memtest.SizeL))

	order, err := f.DB.Store().Orders().GetByID(context.Background(), "o1")
	require.NoError(t, err)
	assert.False(t, order.StockCommitted)
}

func TestConfirmOrder_RegistroInexistente(t *testing.T) {
	f := memtest.New(t)
	f.Product(t, "p1", "Camiseta", 50000)
	newOrder(t, f, "o1", entity.OrderLine{ProductID: "p1", SizeID: memtest.SizeS, Quantity: 1})

	uc := inventory.NewUseCase(f.DB, f.DB.Store(), nil, zerolog.Nop())
	err := uc.ConfirmOrder(context.Background(), "o1")
	assert.ErrorIs(t, err, domain.ErrInventoryMissing)
}

func TestConfirmOrder_ConcurrenteNuncaNegativo(t *testing.T) {
	f := memtest.New(t)
	f.Product(t, "p1", "Camiseta", 50000)
	f.Stock(t, "p1", memtest.SizeM, 10)
	const orders = 8
	for i := 0; i < orders; i++ {
		newOrder(t, f, string(rune('a'+i)), entity.OrderLine{ProductID: "p1", SizeID: memtest.SizeM, Quantity: 3})
	}

	uc := inventory.NewUseCase(f.DB, f.DB.Store(), nil, zerolog.Nop())
	var (
		wg sync.WaitGroup
		mu sync.Mutex
		ok int
	)
	for i := 0; i < orders; i++ {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			err := uc.ConfirmOrder(context.Background(), id)
			if err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, domain.ErrInsufficientStock)
		}(string(rune('a' + i)))
	}
	wg.Wait()

	assert.Equal(t, 3, ok)
	assert.Equal(t, 1, f.StockOf(t, "p1", memtest.SizeM))
}

func TestAdjustStock(t *testing.T) {
	f := memtest.New(t)
	f.Product(t, "p1", "Camiseta", 50000)
	rec := f.Stock(t, "p1", memtest.SizeM, 10)

	w := &recordingWatcher{}
	uc := inventory.NewUseCase(f.DB, f.DB.Store(), w, zerolog.Nop())
	stock, min := 3, 4
	out, err := uc.AdjustStock(context.Background(), rec.ID, dto.AdjustStockRequest{StockForSize: &stock, MinStock: &min})
	require.NoError(t, err)
	assert.Equal(t, 3, out.EffectiveStock)
	assert.Equal(t, 4, out.MinStock)
	assert.Len(t, w.seen, 1)

	neg := -1
	_, err = uc.AdjustStock(context.Background(), rec.ID, dto.AdjustStockRequest{StockForSize: &neg})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.AdjustStock(context.Background(), "nope", dto.AdjustStockRequest{StockForSize: &stock})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListByProduct_OrdenPorTalla(t *testing.T) {
	f := memtest.New(t)
	f.Product(t, "p1", "Camiseta", 50000)
	f.Stock(t, "p1", memtest.SizeL, 1)
	f.Stock(t, "p1", memtest.SizeS, 2)

	uc := inventory.NewUseCase(f.DB, f.DB.Store(), nil, zerolog.Nop())
	list, err := uc.ListByProduct(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, memtest.SizeS, list[0].SizeID)
	assert.Equal(t, memtest.SizeL, list[1].SizeID)
}
