package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain/entity"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo registros de inventario por producto y talla (usable con pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

const inventoryColumns = `id, product_id, size_id, quantity, stock_for_size, min_stock, updated_at`

func scanInventory(row pgx.Row) (*entity.InventoryRecord, error) {
	var rec entity.InventoryRecord
	if err := row.Scan(&rec.ID, &rec.ProductID, &rec.SizeID, &rec.Quantity, &rec.StockForSize, &rec.MinStock, &rec.UpdatedAt); err != nil {
		return nil, err
	}
	return &rec, nil
}

// CreateIfMissing inserta el registro si el par (producto, talla) no existe; false si ya existía.
func (r *InventoryRepo) CreateIfMissing(ctx context.Context, rec *entity.InventoryRecord) (bool, error) {
	query := `
		INSERT INTO inventory (` + inventoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (product_id, size_id) DO NOTHING`
	tag, err := r.q.Exec(ctx, query,
		rec.ID, rec.ProductID, rec.SizeID, rec.Quantity, rec.StockForSize, rec.MinStock, rec.UpdatedAt)
	if err != nil {
		return false, fmt.Errorf("insert inventory: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *InventoryRepo) GetByID(ctx context.Context, id string) (*entity.InventoryRecord, error) {
	return r.get(ctx, `SELECT `+inventoryColumns+` FROM inventory WHERE id = $1`, id)
}

// GetForUpdate obtiene el registro y bloquea la fila (SELECT FOR UPDATE). nil si no existe.
func (r *InventoryRepo) GetForUpdate(ctx context.Context, productID, sizeID string) (*entity.InventoryRecord, error) {
	query := `
		SELECT ` + inventoryColumns + `
		FROM inventory WHERE product_id = $1 AND size_id = $2
		FOR UPDATE`
	return r.get(ctx, query, productID, sizeID)
}

func (r *InventoryRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.InventoryRecord, error) {
	return r.get(ctx, `SELECT `+inventoryColumns+` FROM inventory WHERE id = $1 FOR UPDATE`, id)
}

func (r *InventoryRepo) get(ctx context.Context, query string, args ...any) (*entity.InventoryRecord, error) {
	rec, err := scanInventory(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return rec, nil
}

func (r *InventoryRepo) Update(ctx context.Context, rec *entity.InventoryRecord) error {
	query := `
		UPDATE inventory
		SET quantity = $2, stock_for_size = $3, min_stock = $4, updated_at = $5
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, rec.ID, rec.Quantity, rec.StockForSize, rec.MinStock, rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update inventory: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *InventoryRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.InventoryRecord, error) {
	query := `
		SELECT i.id, i.product_id, i.size_id, i.quantity, i.stock_for_size, i.min_stock, i.updated_at
		FROM inventory i
		JOIN sizes s ON s.id = i.size_id
		WHERE i.product_id = $1
		ORDER BY s.sort_order, s.name`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryRecord
	for rows.Next() {
		rec, err := scanInventory(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}

// DeleteByProducts elimina todos los registros de los productos dados y devuelve cuántos borró.
func (r *InventoryRepo) DeleteByProducts(ctx context.Context, productIDs []string) (int, error) {
	if len(productIDs) == 0 {
		return 0, nil
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM inventory WHERE product_id = ANY($1)`, productIDs)
	if err != nil {
		return 0, fmt.Errorf("delete inventory: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
