package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain/entity"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo agregación de ventas por rango y persistencia de reportes.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// DeleteByRange elimina el reporte previo para la misma tupla (las líneas caen por cascada).
func (r *ReportRepo) DeleteByRange(ctx context.Context, start, end time.Time, onlyApproved bool) error {
	query := `DELETE FROM sales_reports WHERE start_date = $1 AND end_date = $2 AND only_approved = $3`
	if _, err := r.q.Exec(ctx, query, start, end, onlyApproved); err != nil {
		return fmt.Errorf("delete sales report: %w", err)
	}
	return nil
}

// AggregateSales agrupa por producto las líneas de facturas emitidas en [start, end).
// Con onlyApproved solo cuentan facturas cuyo pago quedó con estado interno paid.
func (r *ReportRepo) AggregateSales(ctx context.Context, start, end time.Time, onlyApproved bool) ([]repository.ProductSales, int, error) {
	const filter = `
	WHERE i.issued_at >= $1 AND i.issued_at < $2
	  AND (NOT $3::boolean OR EXISTS (
	      SELECT 1 FROM payments pay
	      WHERE pay.transaction_id = i.transaction_id AND pay.internal_status = 'paid'))`

	const query = `
	SELECT
	    l.product_id,
	    COALESCE(p.name, MAX(l.product_name))   AS product_name,
	    SUM(l.quantity)                         AS quantity,
	    SUM(l.subtotal)                         AS revenue,
	    COUNT(DISTINCT i.id)                    AS tickets
	FROM invoices i
	JOIN invoice_lines l ON l.invoice_id = i.id
	LEFT JOIN products p ON p.id = l.product_id` + filter + `
	GROUP BY l.product_id, p.name
	ORDER BY l.product_id`

	rows, err := r.q.Query(ctx, query, start, end, onlyApproved)
	if err != nil {
		return nil, 0, fmt.Errorf("reports.AggregateSales: %w", err)
	}
	defer rows.Close()

	var results []repository.ProductSales
	for rows.Next() {
		var row repository.ProductSales
		if err := rows.Scan(&row.ProductID, &row.ProductName, &row.Quantity, &row.Revenue, &row.Tickets); err != nil {
			return nil, 0, fmt.Errorf("reports.AggregateSales scan: %w", err)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	const ticketsQuery = `
	SELECT COUNT(DISTINCT i.id)
	FROM invoices i
	JOIN invoice_lines l ON l.invoice_id = i.id` + filter

	var tickets int
	if err := r.q.QueryRow(ctx, ticketsQuery, start, end, onlyApproved).Scan(&tickets); err != nil {
		return nil, 0, fmt.Errorf("reports.AggregateSales tickets: %w", err)
	}
	return results, tickets, nil
}

const reportColumns = `id, start_date, end_date, only_approved, total_revenue, total_items, ticket_count,
	top_product_id, top_product_name, top_quantity, top_revenue,
	bottom_product_id, bottom_product_name, bottom_quantity, bottom_revenue, created_at`

func (r *ReportRepo) Create(ctx context.Context, rep *entity.SalesReport) error {
	query := `
		INSERT INTO sales_reports (` + reportColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		rep.ID, rep.Start, rep.End, rep.OnlyApproved, rep.TotalRevenue, rep.TotalItems, rep.TicketCount,
		nullIfEmpty(rep.TopProductID), rep.TopProductName, rep.TopQuantity, rep.TopRevenue,
		nullIfEmpty(rep.BottomProductID), rep.BottomProductName, rep.BottomQuantity, rep.BottomRevenue,
		rep.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert sales report: %w", domain.ErrDuplicate)
		}
		return fmt.Errorf("insert sales report: %w", err)
	}
	return nil
}

func (r *ReportRepo) CreateLine(ctx context.Context, l *entity.SalesReportLine) error {
	query := `
		INSERT INTO sales_report_lines (id, report_id, product_id, product_name, quantity, revenue, tickets)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, l.ID, l.ReportID, l.ProductID, l.ProductName, l.Quantity, l.Revenue, l.Tickets)
	if err != nil {
		return fmt.Errorf("insert sales report line: %w", err)
	}
	return nil
}

func (r *ReportRepo) GetByID(ctx context.Context, id string) (*entity.SalesReport, error) {
	var rep entity.SalesReport
	var topID, bottomID *string
	err := r.q.QueryRow(ctx, `SELECT `+reportColumns+` FROM sales_reports WHERE id = $1`, id).Scan(
		&rep.ID, &rep.Start, &rep.End, &rep.OnlyApproved, &rep.TotalRevenue, &rep.TotalItems, &rep.TicketCount,
		&topID, &rep.TopProductName, &rep.TopQuantity, &rep.TopRevenue,
		&bottomID, &rep.BottomProductName, &rep.BottomQuantity, &rep.BottomRevenue, &rep.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sales report: %w", err)
	}
	rep.TopProductID = derefString(topID)
	rep.BottomProductID = derefString(bottomID)
	return &rep, nil
}

func (r *ReportRepo) ListLines(ctx context.Context, reportID string) ([]*entity.SalesReportLine, error) {
	query := `
		SELECT id, report_id, product_id, product_name, quantity, revenue, tickets
		FROM sales_report_lines WHERE report_id = $1
		ORDER BY product_id`
	rows, err := r.q.Query(ctx, query, reportID)
	if err != nil {
		return nil, fmt.Errorf("list sales report lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.SalesReportLine
	for rows.Next() {
		var l entity.SalesReportLine
		if err := rows.Scan(&l.ID, &l.ReportID, &l.ProductID, &l.ProductName, &l.Quantity, &l.Revenue, &l.Tickets); err != nil {
			return nil, err
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
