package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain/repository"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNormalizeRange(t *testing.T) {
	s, e := NormalizeRange(date(2024, 1, 1), date(2024, 1, 1))
	assert.Equal(t, date(2024, 1, 1), s)
	assert.Equal(t, date(2024, 1, 2), e)

	s, e = NormalizeRange(date(2024, 3, 10), date(2024, 3, 1))
	assert.Equal(t, date(2024, 3, 1), s)
	assert.Equal(t, date(2024, 3, 10), e)

	s, e = NormalizeRange(time.Date(2024, 1, 1, 15, 30, 0, 0, time.UTC), date(2024, 1, 5))
	assert.Equal(t, date(2024, 1, 1), s)
	assert.Equal(t, date(2024, 1, 5), e)
}

func sale(id string, qty int, revenue int64) repository.ProductSales {
	return repository.ProductSales{ProductID: id, ProductName: "prod-" + id, Quantity: qty, Revenue: decimal.NewFromInt(revenue), Tickets: 1}
}

func TestRank_DesempatePorIngresoYProducto(t *testing.T) {
	lines := []repository.ProductSales{
		sale("c", 5, 100),
		sale("b", 5, 150),
		sale("a", 1, 20),
		sale("d", 1, 20),
		sale("e", 0, 0),
	}
	top, bottom := Rank(lines)
	require.NotNil(t, top)
	require.NotNil(t, bottom)
	assert.Equal(t, "b", top.ProductID, "empate en cantidad: gana mayor ingreso")
	assert.Equal(t, "a", bottom.ProductID, "empate total: gana el menor product id")
}

func TestRank_SinVentas(t *testing.T) {
	top, bottom := Rank([]repository.ProductSales{sale("x", 0, 0)})
	assert.Nil(t, top)
	assert.Nil(t, bottom)
}

func TestTotals(t *testing.T) {
	rev, items := Totals([]repository.ProductSales{sale("a", 2, 30), sale("b", 3, 70)})
	assert.True(t, rev.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, 5, items)
}
