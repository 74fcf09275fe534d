package entity

import "time"

// DefaultMinStock umbral usado cuando el registro no tiene uno propio.
const DefaultMinStock = 5

// InventoryRecord stock de un producto en una talla. Único por (ProductID, SizeID).
// StockForSize es el conteo autoritativo; Quantity queda como valor general heredado.
type InventoryRecord struct {
	ID           string
	ProductID    string
	SizeID       string
	Quantity     int
	StockForSize *int
	MinStock     int
	UpdatedAt    time.Time
}

// EffectiveStock devuelve StockForSize si está definido, si no Quantity.
func (r *InventoryRecord) EffectiveStock() int {
	if r.StockForSize != nil {
		return *r.StockForSize
	}
	return r.Quantity
}

// Threshold devuelve el umbral de alerta del registro; def cuando no tiene min_stock propio.
func (r *InventoryRecord) Threshold(def int) int {
	if r.MinStock > 0 {
		return r.MinStock
	}
	return def
}

// SetStockForSize reemplaza el puntero para no compartir memoria con copias previas.
func (r *InventoryRecord) SetStockForSize(v int) {
	r.StockForSize = &v
}

// Clone copia profunda del registro.
func (r *InventoryRecord) Clone() *InventoryRecord {
	if r == nil {
		return nil
	}
	cp := *r
	if r.StockForSize != nil {
		v := *r.StockForSize
		cp.StockForSize = &v
	}
	return &cp
}
