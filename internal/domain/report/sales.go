// Package report contiene las reglas del reporte de ventas por rango.
package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain/repository"
)

// NormalizeRange lleva ambas fechas a medianoche UTC, las intercambia si start > end y,
// si quedan iguales, extiende end un día. El rango resultante es [start, end).
func NormalizeRange(start, end time.Time) (time.Time, time.Time) {
	start, end = day(start), day(end)
	if start.After(end) {
		start, end = end, start
	}
	if start.Equal(end) {
		end = start.AddDate(0, 0, 1)
	}
	return start, end
}

func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Totals suma ingresos y unidades de todas las líneas.
func Totals(lines []repository.ProductSales) (decimal.Decimal, int) {
	revenue := decimal.Zero
	items := 0
	for _, l := range lines {
		revenue = revenue.Add(l.Revenue)
		items += l.Quantity
	}
	return revenue, items
}

// Rank devuelve el producto más vendido y el menos vendido (cantidad > 0).
// Empates: más vendido por mayor ingreso, menos vendido por menor ingreso; después, menor ProductID.
func Rank(lines []repository.ProductSales) (top, bottom *repository.ProductSales) {
	for i := range lines {
		l := &lines[i]
		if l.Quantity <= 0 {
			continue
		}
		if top == nil || better(l, top) {
			top = l
		}
		if bottom == nil || worse(l, bottom) {
			bottom = l
		}
	}
	return top, bottom
}

func better(a, b *repository.ProductSales) bool {
	if a.Quantity != b.Quantity {
		return a.Quantity > b.Quantity
	}
	if !a.Revenue.Equal(b.Revenue) {
		return a.Revenue.GreaterThan(b.Revenue)
	}
	return a.ProductID < b.ProductID
}

func worse(a, b *repository.ProductSales) bool {
	if a.Quantity != b.Quantity {
		return a.Quantity < b.Quantity
	}
	if !a.Revenue.Equal(b.Revenue) {
		return a.Revenue.LessThan(b.Revenue)
	}
	return a.ProductID < b.ProductID
}
