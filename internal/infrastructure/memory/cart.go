package memory

import (
	"context"
	"time"

	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain/entity"
)

type cartRepo struct{ s *store }

func (r cartRepo) Create(_ context.Context, c *entity.Cart) error {
	return r.s.do(func(st *state) error {
		if _, ok := st.carts[c.ID]; ok {
			return domain.ErrDuplicate
		}
		st.carts[c.ID] = *c
		return nil
	})
}

func (r cartRepo) GetByID(_ context.Context, id string) (*entity.Cart, error) {
	var out *entity.Cart
	err := r.s.do(func(st *state) error {
		if c, ok := st.carts[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r cartRepo) GetForUpdate(ctx context.Context, id string) (*entity.Cart, error) {
	return r.GetByID(ctx, id)
}

func (r cartRepo) Update(_ context.Context, c *entity.Cart) error {
	return r.s.do(func(st *state) error {
		if _, ok := st.carts[c.ID]; !ok {
			return domain.ErrNotFound
		}
		st.carts[c.ID] = *c
		return nil
	})
}

func (r cartRepo) AppendState(_ context.Context, cs *entity.CartState) error {
	return r.s.do(func(st *state) error {
		if _, ok := st.carts[cs.CartID]; !ok {
			return domain.ErrNotFound
		}
		st.cartStates = append(st.cartStates, *cs)
		return nil
	})
}

func (r cartRepo) ListStates(_ context.Context, cartID string) ([]*entity.CartState, error) {
	var out []*entity.CartState
	err := r.s.do(func(st *state) error {
		for _, cs := range st.cartStates {
			if cs.CartID == cartID {
				cs := cs
				out = append(out, &cs)
			}
		}
		return nil
	})
	return out, err
}

// UpsertItem reemplaza cantidad y precios si ya existe la línea (carrito, producto, talla).
func (r cartRepo) UpsertItem(_ context.Context, item *entity.CartItem) error {
	return r.s.do(func(st *state) error {
		if _, ok := st.carts[item.CartID]; !ok {
			return domain.ErrNotFound
		}
		for id, existing := range st.cartItems {
			if existing.CartID == item.CartID && existing.ProductID == item.ProductID && existing.SizeID == item.SizeID {
				item.ID = id
				item.CreatedAt = existing.CreatedAt
				st.cartItems[id] = *item
				return nil
			}
		}
		st.cartItems[item.ID] = *item
		return nil
	})
}

func (r cartRepo) DeleteItem(_ context.Context, cartID, itemID string) error {
	return r.s.do(func(st *state) error {
		item, ok := st.cartItems[itemID]
		if !ok || item.CartID != cartID {
			return domain.ErrNotFound
		}
		delete(st.cartItems, itemID)
		return nil
	})
}

func (r cartRepo) ListItems(_ context.Context, cartID string) ([]*entity.CartItem, error) {
	var out []*entity.CartItem
	err := r.s.do(func(st *state) error {
		for _, item := range st.cartItems {
			if item.CartID == cartID {
				item := item
				out = append(out, &item)
			}
		}
		return nil
	})
	sortByCreated(out, func(i *entity.CartItem) time.Time { return i.CreatedAt }, func(i *entity.CartItem) string { return i.ID })
	return out, err
}
