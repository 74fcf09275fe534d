// Package cart carrito de compras con historial de estados y checkout que reserva stock.
package cart

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/application/dto"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/application/inventory"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain/entity"
	domaininv "github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain/inventory"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain/repository"
)

// Actor quien ejecuta la operación; un cliente solo ve sus propios carritos.
type Actor struct {
	UserID string
	Role   string
}

func (a Actor) canAccess(c *entity.Cart) bool {
	return a.Role == entity.RoleAdmin || (c.UserID != "" && c.UserID == a.UserID)
}

// Service casos de uso del carrito.
type Service struct {
	tx      repository.TxRunner
	store   repository.Store
	watcher inventory.StockWatcher
	log     zerolog.Logger
	now     func() time.Time
}

// NewService construye el servicio. watcher nil = sin alertas.
func NewService(tx repository.TxRunner, store repository.Store, watcher inventory.StockWatcher, log zerolog.Logger) *Service {
	if watcher == nil {
		watcher = inventory.NopWatcher{}
	}
	return &Service{tx: tx, store: store, watcher: watcher, log: log, now: time.Now}
}

// CreateCart abre un carrito activo para el usuario y registra el estado "activo".
func (s *Service) CreateCart(ctx context.Context, actor Actor) (*dto.CartResponse, error) {
	now := s.now()
	c := &entity.Cart{ID: uuid.New().String(), UserID: actor.UserID, Active: true, CreatedAt: now, UpdatedAt: now}
	err := s.tx.RunInTx(ctx, func(tx repository.Store) error {
		if err := tx.Carts().Create(ctx, c); err != nil {
			return err
		}
		return tx.Carts().AppendState(ctx, newState(c.ID, entity.CartStateActivo, "", now))
	})
	if err != nil {
		return nil, err
	}
	return s.view(ctx, s.store, c)
}

// GetCart carrito con líneas y estado actual.
func (s *Service) GetCart(ctx context.Context, actor Actor, cartID string) (*dto.CartResponse, error) {
	c, err := s.load(ctx, s.store, actor, cartID, false)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, s.store, c)
}

// AddItem agrega unidades de un producto en una talla. La talla debe tener registro de inventario
// para el producto. Si la línea ya existe se suman las cantidades; el precio se toma del producto.
func (s *Service) AddItem(ctx context.Context, actor Actor, cartID string, in dto.AddItemRequest) (*dto.CartResponse, error) {
	if in.Quantity <= 0 {
		return nil, domain.Invalid("quantity", "la cantidad debe ser mayor que cero")
	}
	if in.ProductID == "" {
		return nil, domain.Invalid("product_id", "requerido")
	}
	if in.SizeID == "" {
		return nil, domain.Invalid("size_id", "requerido")
	}
	var c *entity.Cart
	err := s.tx.RunInTx(ctx, func(tx repository.Store) error {
		var err error
		c, err = s.load(ctx, tx, actor, cartID, true)
		if err != nil {
			return err
		}
		if err := editable(c); err != nil {
			return err
		}
		product, err := tx.Products().GetByID(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.Invalid("product_id", "el producto no existe")
		}
		rec, err := tx.Inventory().GetForUpdate(ctx, in.ProductID, in.SizeID)
		if err != nil {
			return err
		}
		if rec == nil {
			return domain.Invalid("size_id", "la talla no está disponible para el producto")
		}

		qty := in.Quantity
		items, err := tx.Carts().ListItems(ctx, c.ID)
		if err != nil {
			return err
		}
		for _, it := range items {
			if it.ProductID == in.ProductID && it.SizeID == in.SizeID {
				qty += it.Quantity
			}
		}
		now := s.now()
		item := &entity.CartItem{
			ID:        uuid.New().String(),
			CartID:    c.ID,
			ProductID: in.ProductID,
			SizeID:    in.SizeID,
			Quantity:  qty,
			UnitPrice: product.Price,
			Subtotal:  product.Price.Mul(decimal.NewFromInt(int64(qty))),
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.Carts().UpsertItem(ctx, item); err != nil {
			return err
		}
		c.UpdatedAt = now
		return tx.Carts().Update(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	return s.view(ctx, s.store, c)
}

// RemoveItem quita una línea del carrito.
func (s *Service) RemoveItem(ctx context.Context, actor Actor, cartID, itemID string) (*dto.CartResponse, error) {
	var c *entity.Cart
	err := s.tx.RunInTx(ctx, func(tx repository.Store) error {
		var err error
		c, err = s.load(ctx, tx, actor, cartID, true)
		if err != nil {
			return err
		}
		if err := editable(c); err != nil {
			return err
		}
		return tx.Carts().DeleteItem(ctx, c.ID, itemID)
	})
	if err != nil {
		return nil, err
	}
	return s.view(ctx, s.store, c)
}

// ChangeState agrega un estado al historial. Solo se aceptan los estados de la enumeración;
// el historial nunca se reescribe.
func (s *Service) ChangeState(ctx context.Context, actor Actor, cartID string, in dto.ChangeStateRequest) (*dto.CartStateResponse, error) {
	if !entity.ValidCartState(in.State) {
		return nil, domain.Invalid("state", fmt.Sprintf("estado %q no válido", in.State))
	}
	st := newState(cartID, in.State, in.Note, s.now())
	err := s.tx.RunInTx(ctx, func(tx repository.Store) error {
		if _, err := s.load(ctx, tx, actor, cartID, true); err != nil {
			return err
		}
		return tx.Carts().AppendState(ctx, st)
	})
	if err != nil {
		return nil, err
	}
	return &dto.CartStateResponse{State: st.State, Note: st.Note, CreatedAt: st.CreatedAt}, nil
}

// History historial de estados en orden cronológico.
func (s *Service) History(ctx context.Context, actor Actor, cartID string) ([]dto.CartStateResponse, error) {
	if _, err := s.load(ctx, s.store, actor, cartID, false); err != nil {
		return nil, err
	}
	states, err := s.store.Carts().ListStates(ctx, cartID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CartStateResponse, 0, len(states))
	for _, st := range states {
		out = append(out, dto.CartStateResponse{State: st.State, Note: st.Note, CreatedAt: st.CreatedAt})
	}
	return out, nil
}

// Checkout reserva el stock de todas las líneas (todo o nada) y deja el carrito pendiente de pago.
// Si alguna línea no alcanza devuelve *domain.StockError y el carrito queda como estaba.
func (s *Service) Checkout(ctx context.Context, actor Actor, cartID string) (*dto.CartResponse, error) {
	var (
		c       *entity.Cart
		written []*entity.InventoryRecord
	)
	err := s.tx.RunInTx(ctx, func(tx repository.Store) error {
		var err error
		c, err = s.load(ctx, tx, actor, cartID, true)
		if err != nil {
			return err
		}
		if err := editable(c); err != nil {
			return err
		}
		items, err := tx.Carts().ListItems(ctx, c.ID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return domain.Invalid("items", "el carrito está vacío")
		}
		now := s.now()
		written, err = inventory.Deduct(ctx, tx.Inventory(), Lines(items), now)
		if err != nil {
			return err
		}
		c.StockReserved = true
		c.UpdatedAt = now
		if err := tx.Carts().Update(ctx, c); err != nil {
			return err
		}
		return tx.Carts().AppendState(ctx, newState(c.ID, entity.CartStatePendiente, "checkout", now))
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("cart_id", c.ID).Int("records", len(written)).Msg("checkout: stock reservado")
	s.watcher.Observe(ctx, written)
	return s.view(ctx, s.store, c)
}

// GetOrder pedido con sus líneas. El cliente solo ve los pedidos de sus carritos.
func (s *Service) GetOrder(ctx context.Context, actor Actor, orderID string) (*dto.OrderResponse, error) {
	o, err := s.store.Orders().GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	if actor.Role != entity.RoleAdmin && (o.UserID == "" || o.UserID != actor.UserID) {
		return nil, domain.ErrForbidden
	}
	lines, err := s.store.Orders().ListLines(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	out := &dto.OrderResponse{
		ID:             o.ID,
		UserID:         o.UserID,
		CartID:         o.CartID,
		Total:          o.Total,
		Settled:        o.Settled,
		StockCommitted: o.StockCommitted,
		Lines:          make([]dto.OrderLineResponse, 0, len(lines)),
		CreatedAt:      o.CreatedAt,
	}
	for _, l := range lines {
		out.Lines = append(out.Lines, dto.OrderLineResponse{
			ProductID: l.ProductID,
			SizeID:    l.SizeID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Subtotal:  l.Subtotal,
		})
	}
	return out, nil
}

// Lines convierte las líneas del carrito en líneas de inventario.
func Lines(items []*entity.CartItem) []domaininv.Line {
	out := make([]domaininv.Line, len(items))
	for i, it := range items {
		out[i] = domaininv.Line{ProductID: it.ProductID, SizeID: it.SizeID, Quantity: it.Quantity}
	}
	return out
}

// Total suma los subtotales de las líneas.
func Total(items []*entity.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal)
	}
	return total
}

func (s *Service) load(ctx context.Context, st repository.Store, actor Actor, cartID string, lock bool) (*entity.Cart, error) {
	var (
		c   *entity.Cart
		err error
	)
	if lock {
		c, err = st.Carts().GetForUpdate(ctx, cartID)
	} else {
		c, err = st.Carts().GetByID(ctx, cartID)
	}
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if !actor.canAccess(c) {
		return nil, domain.ErrForbidden
	}
	return c, nil
}

func editable(c *entity.Cart) error {
	if !c.Active {
		return fmt.Errorf("%w: el carrito %s ya fue cerrado", domain.ErrConflict, c.ID)
	}
	if c.StockReserved {
		return fmt.Errorf("%w: el carrito %s ya pasó por checkout", domain.ErrConflict, c.ID)
	}
	return nil
}

func (s *Service) view(ctx context.Context, st repository.Store, c *entity.Cart) (*dto.CartResponse, error) {
	items, err := st.Carts().ListItems(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	states, err := st.Carts().ListStates(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	out := &dto.CartResponse{
		ID:            c.ID,
		UserID:        c.UserID,
		Active:        c.Active,
		StockReserved: c.StockReserved,
		Items:         make([]dto.CartItemResponse, 0, len(items)),
		Total:         Total(items),
		CreatedAt:     c.CreatedAt,
	}
	if n := len(states); n > 0 {
		out.State = states[n-1].State
	}
	for _, it := range items {
		out.Items = append(out.Items, dto.CartItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			SizeID:    it.SizeID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal,
		})
	}
	return out, nil
}

func newState(cartID, state, note string, at time.Time) *entity.CartState {
	return &entity.CartState{ID: uuid.New().String(), CartID: cartID, State: state, Note: note, CreatedAt: at}
}
