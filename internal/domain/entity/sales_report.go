package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesReport cabecera del reporte de ventas por rango [Start, End).
// Se identifica por la tupla (Start, End, OnlyApproved).
type SalesReport struct {
	ID           string
	Start        time.Time
	End          time.Time
	OnlyApproved bool
	TotalRevenue decimal.Decimal
	TotalItems   int
	TicketCount  int

	TopProductID      string
	TopProductName    string
	TopQuantity       int
	TopRevenue        decimal.Decimal
	BottomProductID   string
	BottomProductName string
	BottomQuantity    int
	BottomRevenue     decimal.Decimal

	CreatedAt time.Time
}

// SalesReportLine agregado por producto.
type SalesReportLine struct {
	ID          string
	ReportID    string
	ProductID   string
	ProductName string
	Quantity    int
	Revenue     decimal.Decimal
	Tickets     int
}
