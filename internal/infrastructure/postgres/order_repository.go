package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain/entity"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain/repository"
)

var (
	_ repository.OrderRepository   = (*OrderRepo)(nil)
	_ repository.PaymentRepository = (*PaymentRepo)(nil)
)

// OrderRepo pedidos y sus líneas (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, user_id, cart_id, total, settled, stock_committed, created_at, updated_at`

func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	query := `INSERT INTO orders (` + orderColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		o.ID, nullIfEmpty(o.UserID), o.CartID, o.Total, o.Settled, o.StockCommitted, o.CreatedAt, o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	return r.get(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
}

func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.get(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1 FOR UPDATE`, id)
}

// FindForCart busca el pedido con la misma clave natural (usuario, carrito, total).
func (r *OrderRepo) FindForCart(ctx context.Context, userID, cartID string, total decimal.Decimal) (*entity.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE user_id IS NOT DISTINCT FROM $1 AND cart_id = $2 AND total = $3
		ORDER BY created_at LIMIT 1
		FOR UPDATE`
	return r.get(ctx, query, nullIfEmpty(userID), cartID, total)
}

func (r *OrderRepo) get(ctx context.Context, query string, args ...any) (*entity.Order, error) {
	var o entity.Order
	var userID *string
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&o.ID, &userID, &o.CartID, &o.Total, &o.Settled, &o.StockCommitted, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	o.UserID = derefString(userID)
	return &o, nil
}

func (r *OrderRepo) Update(ctx context.Context, o *entity.Order) error {
	query := `UPDATE orders SET total = $2, settled = $3, stock_committed = $4, updated_at = $5 WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, o.ID, o.Total, o.Settled, o.StockCommitted, o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *OrderRepo) CreateLine(ctx context.Context, l *entity.OrderLine) error {
	query := `
		INSERT INTO order_lines (id, order_id, product_id, size_id, quantity, unit_price, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, l.ID, l.OrderID, l.ProductID, l.SizeID, l.Quantity, l.UnitPrice, l.Subtotal)
	if err != nil {
		return fmt.Errorf("insert order line: %w", err)
	}
	return nil
}

func (r *OrderRepo) ListLines(ctx context.Context, orderID string) ([]*entity.OrderLine, error) {
	query := `
		SELECT id, order_id, product_id, size_id, quantity, unit_price, subtotal
		FROM order_lines WHERE order_id = $1
		ORDER BY seq`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.OrderLine
	for rows.Next() {
		var l entity.OrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ProductID, &l.SizeID, &l.Quantity, &l.UnitPrice, &l.Subtotal); err != nil {
			return nil, err
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// PaymentRepo pagos recibidos de la pasarela, uno por transaction_id.
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

// GetByTransactionForUpdate bloquea el pago existente; nil si es la primera notificación.
func (r *PaymentRepo) GetByTransactionForUpdate(ctx context.Context, transactionID string) (*entity.Payment, error) {
	query := `
		SELECT id, transaction_id, status, internal_status, status_detail, amount, currency, payment_method, raw_payload,
		       cart_id, order_id, created_at, updated_at
		FROM payments WHERE transaction_id = $1
		FOR UPDATE`
	var p entity.Payment
	var cartID, orderID *string
	err := r.q.QueryRow(ctx, query, transactionID).Scan(
		&p.ID, &p.TransactionID, &p.Status, &p.InternalStatus, &p.StatusDetail, &p.Amount, &p.Currency, &p.PaymentMethod,
		&p.RawPayload, &cartID, &orderID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	p.CartID = derefString(cartID)
	p.OrderID = derefString(orderID)
	return &p, nil
}

// Upsert inserta o actualiza el pago por transaction_id; devuelve en p el id y created_at persistidos.
func (r *PaymentRepo) Upsert(ctx context.Context, p *entity.Payment) error {
	query := `
		INSERT INTO payments (id, transaction_id, status, internal_status, status_detail, amount, currency,
		                      payment_method, raw_payload, cart_id, order_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (transaction_id) DO UPDATE SET
			status = EXCLUDED.status,
			internal_status = EXCLUDED.internal_status,
			status_detail = EXCLUDED.status_detail,
			amount = EXCLUDED.amount,
			currency = EXCLUDED.currency,
			payment_method = EXCLUDED.payment_method,
			raw_payload = EXCLUDED.raw_payload,
			cart_id = EXCLUDED.cart_id,
			order_id = EXCLUDED.order_id,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at`
	raw := []byte(p.RawPayload)
	if len(raw) == 0 {
		raw = []byte("{}")
	}
	err := r.q.QueryRow(ctx, query,
		p.ID, p.TransactionID, p.Status, p.InternalStatus, p.StatusDetail, p.Amount, p.Currency, p.PaymentMethod,
		raw, nullIfEmpty(p.CartID), nullIfEmpty(p.OrderID), p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert payment: %w", err)
	}
	return nil
}
