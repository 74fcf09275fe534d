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

var _ repository.StockAlertRepository = (*StockAlertRepo)(nil)

// StockAlertRepo alertas persistentes de stock y notificaciones in-app.
type StockAlertRepo struct {
	q Querier
}

// NewStockAlertRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockAlertRepository(q Querier) *StockAlertRepo {
	return &StockAlertRepo{q: q}
}

const stockAlertColumns = `id, inventory_id, product_id, size_id, type, stock, threshold, resolved, created_at, resolved_at`

func scanStockAlert(row pgx.Row) (*entity.StockAlert, error) {
	var a entity.StockAlert
	err := row.Scan(&a.ID, &a.InventoryID, &a.ProductID, &a.SizeID, &a.Type, &a.Stock, &a.Threshold,
		&a.Resolved, &a.CreatedAt, &a.ResolvedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// GetActive alerta sin resolver del registro, nil si no hay.
func (r *StockAlertRepo) GetActive(ctx context.Context, inventoryID string) (*entity.StockAlert, error) {
	query := `SELECT ` + stockAlertColumns + ` FROM stock_alerts WHERE inventory_id = $1 AND NOT resolved FOR UPDATE`
	a, err := scanStockAlert(r.q.QueryRow(ctx, query, inventoryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get active stock alert: %w", err)
	}
	return a, nil
}

func (r *StockAlertRepo) Create(ctx context.Context, a *entity.StockAlert) error {
	query := `
		INSERT INTO stock_alerts (` + stockAlertColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query, a.ID, a.InventoryID, a.ProductID, a.SizeID, a.Type, a.Stock, a.Threshold,
		a.Resolved, a.CreatedAt, a.ResolvedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert stock alert: %w", domain.ErrDuplicate)
		}
		return fmt.Errorf("insert stock alert: %w", err)
	}
	return nil
}

func (r *StockAlertRepo) Resolve(ctx context.Context, id string, at time.Time) error {
	tag, err := r.q.Exec(ctx, `UPDATE stock_alerts SET resolved = TRUE, resolved_at = $2 WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("resolve stock alert: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *StockAlertRepo) ListActive(ctx context.Context) ([]*entity.StockAlert, error) {
	rows, err := r.q.Query(ctx, `SELECT `+stockAlertColumns+` FROM stock_alerts WHERE NOT resolved ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list stock alerts: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockAlert
	for rows.Next() {
		a, err := scanStockAlert(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// CreateNotification inserta la notificación salvo que ya exista para (tipo, registro, producto, talla).
func (r *StockAlertRepo) CreateNotification(ctx context.Context, n *entity.StockNotification) (bool, error) {
	query := `
		INSERT INTO stock_notifications (id, type, inventory_id, product_id, size_id, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (type, inventory_id, product_id, size_id) DO NOTHING`
	tag, err := r.q.Exec(ctx, query, n.ID, n.Type, n.InventoryID, n.ProductID, n.SizeID, n.Message, n.CreatedAt)
	if err != nil {
		return false, fmt.Errorf("insert stock notification: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
