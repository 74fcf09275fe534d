// Package memory implementa los repositorios en memoria del proceso.
// Sirve como backend de desarrollo (STORAGE_DRIVER=memory) y para las pruebas de casos de uso.
// Una transacción toma un bloqueo global y restaura una copia del estado si falla.
package memory

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain/entity"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain/repository"
)

// DB almacén en memoria.
type DB struct {
	mu sync.Mutex
	st *state
}

var (
	_ repository.TxRunner = (*DB)(nil)
	_ repository.Store    = (*store)(nil)
)

// New crea un almacén vacío.
func New() *DB {
	return &DB{st: newState()}
}

// Store devuelve repositorios fuera de transacción; cada operación toma el bloqueo.
func (db *DB) Store() repository.Store {
	return &store{db: db}
}

// RunInTx ejecuta fn con el bloqueo global tomado; si fn falla (o entra en pánico) el estado vuelve
// a la copia tomada al inicio. fn no debe usar db.Store() porque el bloqueo no es reentrante.
func (db *DB) RunInTx(ctx context.Context, fn func(tx repository.Store) error) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	db.mu.Lock()
	defer db.mu.Unlock()

	snapshot := db.st.clone()
	defer func() {
		if r := recover(); r != nil {
			db.st = snapshot
			panic(r)
		}
		if err != nil {
			db.st = snapshot
		}
	}()
	return fn(&store{db: db, inTx: true})
}

type store struct {
	db   *DB
	inTx bool
}

func (s *store) do(fn func(st *state) error) error {
	if !s.inTx {
		s.db.mu.Lock()
		defer s.db.mu.Unlock()
	}
	return fn(s.db.st)
}

func (s *store) Categories() repository.CategoryRepository       { return categoryRepo{s} }
func (s *store) Subcategories() repository.SubcategoryRepository { return subcategoryRepo{s} }
func (s *store) Sizes() repository.SizeRepository                { return sizeRepo{s} }
func (s *store) Products() repository.ProductRepository          { return productRepo{s} }
func (s *store) Inventory() repository.InventoryRepository       { return inventoryRepo{s} }
func (s *store) Carts() repository.CartRepository                { return cartRepo{s} }
func (s *store) Orders() repository.OrderRepository              { return orderRepo{s} }
func (s *store) Payments() repository.PaymentRepository          { return paymentRepo{s} }
func (s *store) Invoices() repository.InvoiceRepository          { return invoiceRepo{s} }
func (s *store) StockAlerts() repository.StockAlertRepository    { return stockAlertRepo{s} }
func (s *store) Reports() repository.ReportRepository            { return reportRepo{s} }
func (s *store) Users() repository.UserRepository                { return userRepo{s} }

type state struct {
	categories    map[string]entity.Category
	subcategories map[string]entity.Subcategory
	sizeGroups    map[string]entity.SizeGroup
	sizes         map[string]entity.Size
	products      map[string]entity.Product
	inventory     map[string]*entity.InventoryRecord
	carts         map[string]entity.Cart
	cartStates    []entity.CartState
	cartItems     map[string]entity.CartItem
	orders        map[string]entity.Order
	orderLines    []entity.OrderLine
	payments      map[string]entity.Payment // por TransactionID
	invoices      map[string]entity.Invoice
	invoiceLines  []entity.InvoiceLine
	alerts        map[string]entity.StockAlert
	notifications map[string]entity.StockNotification
	reports       map[string]entity.SalesReport
	reportLines   []entity.SalesReportLine
	users         map[string]entity.User
}

func newState() *state {
	return &state{
		categories:    map[string]entity.Category{},
		subcategories: map[string]entity.Subcategory{},
		sizeGroups:    map[string]entity.SizeGroup{},
		sizes:         map[string]entity.Size{},
		products:      map[string]entity.Product{},
		inventory:     map[string]*entity.InventoryRecord{},
		carts:         map[string]entity.Cart{},
		cartItems:     map[string]entity.CartItem{},
		orders:        map[string]entity.Order{},
		payments:      map[string]entity.Payment{},
		invoices:      map[string]entity.Invoice{},
		alerts:        map[string]entity.StockAlert{},
		notifications: map[string]entity.StockNotification{},
		reports:       map[string]entity.SalesReport{},
		users:         map[string]entity.User{},
	}
}

func (st *state) clone() *state {
	cp := &state{
		categories:    cloneMap(st.categories),
		subcategories: cloneMap(st.subcategories),
		sizeGroups:    cloneMap(st.sizeGroups),
		sizes:         cloneMap(st.sizes),
		products:      cloneMap(st.products),
		inventory:     make(map[string]*entity.InventoryRecord, len(st.inventory)),
		carts:         cloneMap(st.carts),
		cartStates:    append([]entity.CartState(nil), st.cartStates...),
		cartItems:     cloneMap(st.cartItems),
		orders:        cloneMap(st.orders),
		orderLines:    append([]entity.OrderLine(nil), st.orderLines...),
		payments:      make(map[string]entity.Payment, len(st.payments)),
		invoices:      cloneMap(st.invoices),
		invoiceLines:  append([]entity.InvoiceLine(nil), st.invoiceLines...),
		alerts:        cloneMap(st.alerts),
		notifications: cloneMap(st.notifications),
		reports:       cloneMap(st.reports),
		reportLines:   append([]entity.SalesReportLine(nil), st.reportLines...),
		users:         cloneMap(st.users),
	}
	for k, v := range st.inventory {
		cp.inventory[k] = v.Clone()
	}
	for k, v := range st.payments {
		v.RawPayload = append(json.RawMessage(nil), v.RawPayload...)
		cp.payments[k] = v
	}
	return cp
}

func cloneMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// sortByCreated ordena por fecha de creación y luego por ID para tener un orden estable.
func sortByCreated[T any](items []*T, created func(*T) time.Time, id func(*T) string) {
	sort.Slice(items, func(i, j int) bool {
		ci, cj := created(items[i]), created(items[j])
		if !ci.Equal(cj) {
			return ci.Before(cj)
		}
		return id(items[i]) < id(items[j])
	})
}
