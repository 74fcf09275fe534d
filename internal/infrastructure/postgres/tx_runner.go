package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain/repository"
)

var (
	_ repository.TxRunner = (*TxRunner)(nil)
	_ repository.Store    = (*Store)(nil)
)

// Store agrupa los repositorios construidos sobre un mismo Querier (pool o tx).
type Store struct {
	q Querier
}

// NewStore construye el conjunto de repositorios. Pasar pool o tx.
func NewStore(q Querier) *Store {
	return &Store{q: q}
}

func (s *Store) Categories() repository.CategoryRepository { return NewCategoryRepository(s.q) }
func (s *Store) Subcategories() repository.SubcategoryRepository {
	return NewSubcategoryRepository(s.q)
}
func (s *Store) Sizes() repository.SizeRepository             { return NewSizeRepository(s.q) }
func (s *Store) Products() repository.ProductRepository       { return NewProductRepository(s.q) }
func (s *Store) Inventory() repository.InventoryRepository    { return NewInventoryRepository(s.q) }
func (s *Store) Carts() repository.CartRepository             { return NewCartRepository(s.q) }
func (s *Store) Orders() repository.OrderRepository           { return NewOrderRepository(s.q) }
func (s *Store) Payments() repository.PaymentRepository       { return NewPaymentRepository(s.q) }
func (s *Store) Invoices() repository.InvoiceRepository       { return NewInvoiceRepository(s.q) }
func (s *Store) StockAlerts() repository.StockAlertRepository { return NewStockAlertRepository(s.q) }
func (s *Store) Reports() repository.ReportRepository         { return NewReportRepository(s.q) }
func (s *Store) Users() repository.UserRepository             { return NewUserRepository(s.q) }

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunInTx inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) RunInTx(ctx context.Context, fn func(tx repository.Store) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewStore(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
