package memory

import (
	"context"
	"sort"

	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain/entity"
)

type inventoryRepo struct{ s *store }

func (r inventoryRepo) CreateIfMissing(_ context.Context, rec *entity.InventoryRecord) (bool, error) {
	created := false
	err := r.s.do(func(st *state) error {
		if findRecord(st, rec.ProductID, rec.SizeID) != nil {
			return nil
		}
		st.inventory[rec.ID] = rec.Clone()
		created = true
		return nil
	})
	return created, err
}

func (r inventoryRepo) GetByID(_ context.Context, id string) (*entity.InventoryRecord, error) {
	var out *entity.InventoryRecord
	err := r.s.do(func(st *state) error {
		out = st.inventory[id].Clone()
		return nil
	})
	return out, err
}

func (r inventoryRepo) GetForUpdate(_ context.Context, productID, sizeID string) (*entity.InventoryRecord, error) {
	var out *entity.InventoryRecord
	err := r.s.do(func(st *state) error {
		out = findRecord(st, productID, sizeID).Clone()
		return nil
	})
	return out, err
}

func (r inventoryRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.InventoryRecord, error) {
	return r.GetByID(ctx, id)
}

func (r inventoryRepo) Update(_ context.Context, rec *entity.InventoryRecord) error {
	return r.s.do(func(st *state) error {
		if _, ok := st.inventory[rec.ID]; !ok {
			return domain.ErrNotFound
		}
		st.inventory[rec.ID] = rec.Clone()
		return nil
	})
}

func (r inventoryRepo) ListByProduct(_ context.Context, productID string) ([]*entity.InventoryRecord, error) {
	var out []*entity.InventoryRecord
	err := r.s.do(func(st *state) error {
		for _, rec := range st.inventory {
			if rec.ProductID == productID {
				out = append(out, rec.Clone())
			}
		}
		sort.Slice(out, func(i, j int) bool {
			si, sj := st.sizes[out[i].SizeID], st.sizes[out[j].SizeID]
			if si.SortOrder != sj.SortOrder {
				return si.SortOrder < sj.SortOrder
			}
			return si.Name < sj.Name
		})
		return nil
	})
	return out, err
}

func (r inventoryRepo) DeleteByProducts(_ context.Context, productIDs []string) (int, error) {
	if len(productIDs) == 0 {
		return 0, nil
	}
	ids := make(map[string]struct{}, len(productIDs))
	for _, id := range productIDs {
		ids[id] = struct{}{}
	}
	n := 0
	err := r.s.do(func(st *state) error {
		for id, rec := range st.inventory {
			if _, ok := ids[rec.ProductID]; ok {
				delete(st.inventory, id)
				n++
			}
		}
		return nil
	})
	return n, err
}

func findRecord(st *state, productID, sizeID string) *entity.InventoryRecord {
	for _, rec := range st.inventory {
		if rec.ProductID == productID && rec.SizeID == sizeID {
			return rec
		}
	}
	return nil
}
