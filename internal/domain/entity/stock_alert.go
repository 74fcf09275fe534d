package entity

import "time"

// Tipos de alerta persistente.
const (
	StockAlertOut = "stock_out"
	StockAlertLow = "stock_low"
)

// StockAlert alerta durable; a lo sumo una sin resolver por registro de inventario.
type StockAlert struct {
	ID          string
	InventoryID string
	ProductID   string
	SizeID      string
	Type        string
	Stock       int
	Threshold   int
	Resolved    bool
	CreatedAt   time.Time
	ResolvedAt  *time.Time
}

// StockNotification aviso interno, único por (Type, InventoryID, ProductID, SizeID).
type StockNotification struct {
	ID          string
	Type        string
	InventoryID string
	ProductID   string
	SizeID      string
	Message     string
	CreatedAt   time.Time
}
