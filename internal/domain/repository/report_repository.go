package repository

import (
	"context"
	"time"

	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ProductSales agregado de líneas de factura por producto.
type ProductSales struct {
	ProductID   string
	ProductName string
	Quantity    int
	Revenue     decimal.Decimal
	Tickets     int
}

// ReportRepository puerto para el reporte de ventas por rango.
type ReportRepository interface {
	// DeleteByRange elimina el reporte (cabecera y líneas) de la tupla exacta.
	DeleteByRange(ctx context.Context, start, end time.Time, onlyApproved bool) error
	// AggregateSales agrupa líneas de factura con fecha en [start, end) por producto,
	// ordenadas por ProductID, y devuelve además el total de facturas distintas.
	AggregateSales(ctx context.Context, start, end time.Time, onlyApproved bool) ([]ProductSales, int, error)
	Create(ctx context.Context, report *entity.SalesReport) error
	CreateLine(ctx context.Context, line *entity.SalesReportLine) error
	GetByID(ctx context.Context, id string) (*entity.SalesReport, error)
	ListLines(ctx context.Context, reportID string) ([]*entity.SalesReportLine, error)
}
