package dto

import "time"

// InventoryRecordResponse stock de un producto en una talla.
type InventoryRecordResponse struct {
	ID             string    `json:"id"`
	ProductID      string    `json:"product_id"`
	SizeID         string    `json:"size_id"`
	Quantity       int       `json:"quantity"`
	StockForSize   *int      `json:"stock_for_size"`
	EffectiveStock int       `json:"effective_stock"`
	MinStock       int       `json:"min_stock"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// AdjustStockRequest body para PUT /api/inventory/:id. Campos nil no cambian.
type AdjustStockRequest struct {
	StockForSize *int `json:"stock_for_size,omitempty"`
	MinStock     *int `json:"min_stock,omitempty"`
}

// StockAlertResponse alerta persistente sin resolver.
type StockAlertResponse struct {
	ID          string    `json:"id"`
	InventoryID string    `json:"inventory_id"`
	ProductID   string    `json:"product_id"`
	SizeID      string    `json:"size_id"`
	Type        string    `json:"type"`
	Stock       int       `json:"stock"`
	Threshold   int       `json:"threshold"`
	CreatedAt   time.Time `json:"created_at"`
}
