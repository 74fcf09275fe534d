package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo. El stock se maneja por talla en InventoryRecord.
type Product struct {
	ID            string
	SubcategoryID string
	Name          string
	Slug          string
	Description   string
	Price         decimal.Decimal // precio unitario, siempre entero positivo
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
