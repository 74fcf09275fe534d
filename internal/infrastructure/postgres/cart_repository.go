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

var _ repository.CartRepository = (*CartRepo)(nil)

// CartRepo carritos, historial de estados y líneas (usable con pool o tx).
type CartRepo struct {
	q Querier
}

// NewCartRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCartRepository(q Querier) *CartRepo {
	return &CartRepo{q: q}
}

const cartColumns = `id, user_id, active, stock_reserved, created_at, updated_at`

func (r *CartRepo) Create(ctx context.Context, c *entity.Cart) error {
	query := `INSERT INTO carts (` + cartColumns + `) VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, c.ID, nullIfEmpty(c.UserID), c.Active, c.StockReserved, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("insert cart: %w", domain.ErrUserNotFound)
		}
		return fmt.Errorf("insert cart: %w", err)
	}
	return nil
}

func (r *CartRepo) GetByID(ctx context.Context, id string) (*entity.Cart, error) {
	return r.get(ctx, `SELECT `+cartColumns+` FROM carts WHERE id = $1`, id)
}

// GetForUpdate bloquea el carrito (SELECT FOR UPDATE); serializa checkout y notificaciones de pago.
func (r *CartRepo) GetForUpdate(ctx context.Context, id string) (*entity.Cart, error) {
	return r.get(ctx, `SELECT `+cartColumns+` FROM carts WHERE id = $1 FOR UPDATE`, id)
}

func (r *CartRepo) get(ctx context.Context, query, id string) (*entity.Cart, error) {
	var c entity.Cart
	var userID *string
	err := r.q.QueryRow(ctx, query, id).Scan(&c.ID, &userID, &c.Active, &c.StockReserved, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}
	c.UserID = derefString(userID)
	return &c, nil
}

func (r *CartRepo) Update(ctx context.Context, c *entity.Cart) error {
	query := `UPDATE carts SET active = $2, stock_reserved = $3, updated_at = $4 WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, c.ID, c.Active, c.StockReserved, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update cart: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AppendState agrega una fila al historial; el historial nunca se modifica.
func (r *CartRepo) AppendState(ctx context.Context, s *entity.CartState) error {
	query := `INSERT INTO cart_states (id, cart_id, state, note, created_at) VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.q.Exec(ctx, query, s.ID, s.CartID, s.State, s.Note, s.CreatedAt); err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("insert cart state: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("insert cart state: %w", err)
	}
	return nil
}

func (r *CartRepo) ListStates(ctx context.Context, cartID string) ([]*entity.CartState, error) {
	query := `
		SELECT id, cart_id, state, note, created_at
		FROM cart_states WHERE cart_id = $1
		ORDER BY created_at, seq`
	rows, err := r.q.Query(ctx, query, cartID)
	if err != nil {
		return nil, fmt.Errorf("list cart states: %w", err)
	}
	defer rows.Close()
	var list []*entity.CartState
	for rows.Next() {
		var s entity.CartState
		if err := rows.Scan(&s.ID, &s.CartID, &s.State, &s.Note, &s.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// UpsertItem inserta la línea o reemplaza cantidad y precios si (carrito, producto, talla) ya existe.
func (r *CartRepo) UpsertItem(ctx context.Context, item *entity.CartItem) error {
	query := `
		INSERT INTO cart_items (id, cart_id, product_id, size_id, quantity, unit_price, subtotal, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (cart_id, product_id, size_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, unit_price = EXCLUDED.unit_price,
		              subtotal = EXCLUDED.subtotal, updated_at = EXCLUDED.updated_at
		RETURNING id, created_at`
	err := r.q.QueryRow(ctx, query,
		item.ID, item.CartID, item.ProductID, item.SizeID, item.Quantity, item.UnitPrice, item.Subtotal,
		item.CreatedAt, item.UpdatedAt,
	).Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("upsert cart item: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("upsert cart item: %w", err)
	}
	return nil
}

func (r *CartRepo) DeleteItem(ctx context.Context, cartID, itemID string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM cart_items WHERE id = $1 AND cart_id = $2`, itemID, cartID)
	if err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CartRepo) ListItems(ctx context.Context, cartID string) ([]*entity.CartItem, error) {
	query := `
		SELECT id, cart_id, product_id, size_id, quantity, unit_price, subtotal, created_at, updated_at
		FROM cart_items WHERE cart_id = $1
		ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query, cartID)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	defer rows.Close()
	var list []*entity.CartItem
	for rows.Next() {
		var it entity.CartItem
		if err := rows.Scan(&it.ID, &it.CartID, &it.ProductID, &it.SizeID, &it.Quantity,
			&it.UnitPrice, &it.Subtotal, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}
