package repository

import "context"

// Store agrupa los repositorios atados a una misma conexión o transacción.
type Store interface {
	Categories() CategoryRepository
	Subcategories() SubcategoryRepository
	Sizes() SizeRepository
	Products() ProductRepository
	Inventory() InventoryRepository
	Carts() CartRepository
	Orders() OrderRepository
	Payments() PaymentRepository
	Invoices() InvoiceRepository
	StockAlerts() StockAlertRepository
	Reports() ReportRepository
	Users() UserRepository
}

// TxRunner ejecuta fn dentro de una transacción con repositorios atados a ella.
// Si fn devuelve error se hace rollback de todo; si no, commit.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(tx Store) error) error
}
