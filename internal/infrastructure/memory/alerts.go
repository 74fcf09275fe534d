package memory

import (
	"context"
	"time"

	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain/entity"
)

type stockAlertRepo struct{ s *store }

func (r stockAlertRepo) GetActive(_ context.Context, inventoryID string) (*entity.StockAlert, error) {
	var out *entity.StockAlert
	err := r.s.do(func(st *state) error {
		for _, a := range st.alerts {
			if a.InventoryID == inventoryID && !a.Resolved {
				a := a
				out = &a
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r stockAlertRepo) Create(_ context.Context, a *entity.StockAlert) error {
	return r.s.do(func(st *state) error {
		for _, other := range st.alerts {
			if other.InventoryID == a.InventoryID && !other.Resolved {
				return domain.ErrDuplicate
			}
		}
		st.alerts[a.ID] = *a
		return nil
	})
}

func (r stockAlertRepo) Resolve(_ context.Context, id string, at time.Time) error {
	return r.s.do(func(st *state) error {
		a, ok := st.alerts[id]
		if !ok {
			return domain.ErrNotFound
		}
		a.Resolved = true
		a.ResolvedAt = &at
		st.alerts[id] = a
		return nil
	})
}

func (r stockAlertRepo) ListActive(_ context.Context) ([]*entity.StockAlert, error) {
	var out []*entity.StockAlert
	err := r.s.do(func(st *state) error {
		for _, a := range st.alerts {
			if !a.Resolved {
				a := a
				out = append(out, &a)
			}
		}
		return nil
	})
	sortByCreated(out, func(a *entity.StockAlert) time.Time { return a.CreatedAt }, func(a *entity.StockAlert) string { return a.ID })
	return out, err
}

// CreateNotification devuelve false si ya existe una notificación para (tipo, registro, producto, talla).
func (r stockAlertRepo) CreateNotification(_ context.Context, n *entity.StockNotification) (bool, error) {
	created := false
	err := r.s.do(func(st *state) error {
		key := n.Type + "|" + n.InventoryID + "|" + n.ProductID + "|" + n.SizeID
		if _, ok := st.notifications[key]; ok {
			return nil
		}
		st.notifications[key] = *n
		created = true
		return nil
	})
	return created, err
}
