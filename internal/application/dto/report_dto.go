package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// BuildReportRequest body para POST /api/reports/sales. Fechas en formato YYYY-MM-DD.
type BuildReportRequest struct {
	Start        string `json:"start" valid:"required"`
	End          string `json:"end" valid:"required"`
	OnlyApproved bool   `json:"only_approved"`
}

// ReportProductResponse snapshot de producto destacado.
type ReportProductResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// ReportLineResponse ventas de un producto en el rango.
type ReportLineResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Revenue     decimal.Decimal `json:"revenue"`
	Tickets     int             `json:"tickets"`
}

// SalesReportResponse reporte de ventas por rango [start, end).
type SalesReportResponse struct {
	ID           string                 `json:"id"`
	Start        time.Time              `json:"start"`
	End          time.Time              `json:"end"`
	OnlyApproved bool                   `json:"only_approved"`
	TotalRevenue decimal.Decimal        `json:"total_revenue"`
	TotalItems   int                    `json:"total_items"`
	TicketCount  int                    `json:"ticket_count"`
	Top          *ReportProductResponse `json:"top_product,omitempty"`
	Bottom       *ReportProductResponse `json:"bottom_product,omitempty"`
	Lines        []ReportLineResponse   `json:"lines"`
	CreatedAt    time.Time              `json:"created_at"`
}
