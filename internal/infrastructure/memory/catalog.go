package memory

import (
	"sort"
	"time"

	"context"

	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain/entity"
)

type categoryRepo struct{ s *store }

func (r categoryRepo) Create(_ context.Context, c *entity.Category) error {
	return r.s.do(func(st *state) error {
		if _, ok := st.categories[c.ID]; ok {
			return domain.ErrDuplicate
		}
		for _, other := range st.categories {
			if other.Slug == c.Slug {
				return domain.ErrDuplicate
			}
		}
		st.categories[c.ID] = *c
		return nil
	})
}

func (r categoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	var out *entity.Category
	err := r.s.do(func(st *state) error {
		if c, ok := st.categories[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r categoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	var out []*entity.Category
	err := r.s.do(func(st *state) error {
		for _, c := range st.categories {
			c := c
			out = append(out, &c)
		}
		return nil
	})
	sortByCreated(out, func(c *entity.Category) time.Time { return c.CreatedAt }, func(c *entity.Category) string { return c.ID })
	return out, err
}

type subcategoryRepo struct{ s *store }

func (r subcategoryRepo) Create(_ context.Context, sub *entity.Subcategory) error {
	return r.s.do(func(st *state) error {
		if _, ok := st.subcategories[sub.ID]; ok {
			return domain.ErrDuplicate
		}
		if _, ok := st.categories[sub.CategoryID]; !ok {
			return domain.ErrNotFound
		}
		for _, other := range st.subcategories {
			if other.CategoryID == sub.CategoryID && other.Slug == sub.Slug {
				return domain.ErrDuplicate
			}
		}
		st.subcategories[sub.ID] = *sub
		return nil
	})
}

func (r subcategoryRepo) GetByID(_ context.Context, id string) (*entity.Subcategory, error) {
	var out *entity.Subcategory
	err := r.s.do(func(st *state) error {
		if sub, ok := st.subcategories[id]; ok {
			out = &sub
		}
		return nil
	})
	return out, err
}

func (r subcategoryRepo) GetForUpdate(ctx context.Context, id string) (*entity.Subcategory, error) {
	return r.GetByID(ctx, id)
}

func (r subcategoryRepo) Update(_ context.Context, sub *entity.Subcategory) error {
	return r.s.do(func(st *state) error {
		if _, ok := st.subcategories[sub.ID]; !ok {
			return domain.ErrNotFound
		}
		st.subcategories[sub.ID] = *sub
		return nil
	})
}

func (r subcategoryRepo) ListByCategory(_ context.Context, categoryID string) ([]*entity.Subcategory, error) {
	return r.filter(func(sub entity.Subcategory) bool { return categoryID == "" || sub.CategoryID == categoryID })
}

func (r subcategoryRepo) ListBySizeGroup(_ context.Context, sizeGroupID string) ([]*entity.Subcategory, error) {
	return r.filter(func(sub entity.Subcategory) bool { return sub.SizeGroupID != "" && sub.SizeGroupID == sizeGroupID })
}

func (r subcategoryRepo) filter(keep func(entity.Subcategory) bool) ([]*entity.Subcategory, error) {
	var out []*entity.Subcategory
	err := r.s.do(func(st *state) error {
		for _, sub := range st.subcategories {
			if keep(sub) {
				sub := sub
				out = append(out, &sub)
			}
		}
		return nil
	})
	sortByCreated(out, func(s *entity.Subcategory) time.Time { return s.CreatedAt }, func(s *entity.Subcategory) string { return s.ID })
	return out, err
}

type sizeRepo struct{ s *store }

func (r sizeRepo) CreateGroup(_ context.Context, g *entity.SizeGroup) error {
	return r.s.do(func(st *state) error {
		if _, ok := st.sizeGroups[g.ID]; ok {
			return domain.ErrDuplicate
		}
		st.sizeGroups[g.ID] = *g
		return nil
	})
}

func (r sizeRepo) GetGroup(_ context.Context, id string) (*entity.SizeGroup, error) {
	var out *entity.SizeGroup
	err := r.s.do(func(st *state) error {
		if g, ok := st.sizeGroups[id]; ok {
			out = &g
		}
		return nil
	})
	return out, err
}

func (r sizeRepo) ListGroups(_ context.Context) ([]*entity.SizeGroup, error) {
	var out []*entity.SizeGroup
	err := r.s.do(func(st *state) error {
		for _, g := range st.sizeGroups {
			g := g
			out = append(out, &g)
		}
		return nil
	})
	sortByCreated(out, func(g *entity.SizeGroup) time.Time { return g.CreatedAt }, func(g *entity.SizeGroup) string { return g.ID })
	return out, err
}

func (r sizeRepo) Create(_ context.Context, size *entity.Size) error {
	return r.s.do(func(st *state) error {
		if _, ok := st.sizeGroups[size.SizeGroupID]; !ok {
			return domain.ErrNotFound
		}
		for _, other := range st.sizes {
			if other.SizeGroupID == size.SizeGroupID && other.Name == size.Name {
				return domain.ErrDuplicate
			}
		}
		st.sizes[size.ID] = *size
		return nil
	})
}

func (r sizeRepo) GetByID(_ context.Context, id string) (*entity.Size, error) {
	var out *entity.Size
	err := r.s.do(func(st *state) error {
		if size, ok := st.sizes[id]; ok {
			out = &size
		}
		return nil
	})
	return out, err
}

func (r sizeRepo) ListByGroup(_ context.Context, groupID string) ([]*entity.Size, error) {
	var out []*entity.Size
	err := r.s.do(func(st *state) error {
		for _, size := range st.sizes {
			if size.SizeGroupID == groupID {
				size := size
				out = append(out, &size)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].Name < out[j].Name
	})
	return out, err
}

type productRepo struct{ s *store }

func (r productRepo) Create(_ context.Context, p *entity.Product) error {
	return r.s.do(func(st *state) error {
		if _, ok := st.products[p.ID]; ok {
			return domain.ErrDuplicate
		}
		if _, ok := st.subcategories[p.SubcategoryID]; !ok {
			return domain.ErrNotFound
		}
		for _, other := range st.products {
			if other.Slug == p.Slug {
				return domain.ErrDuplicate
			}
		}
		st.products[p.ID] = *p
		return nil
	})
}

func (r productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.s.do(func(st *state) error {
		if p, ok := st.products[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

func (r productRepo) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	all, err := r.filter(func(entity.Product) bool { return true })
	if err != nil {
		return nil, err
	}
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r productRepo) ListBySubcategory(_ context.Context, subcategoryID string) ([]*entity.Product, error) {
	return r.filter(func(p entity.Product) bool { return p.SubcategoryID == subcategoryID })
}

func (r productRepo) filter(keep func(entity.Product) bool) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.s.do(func(st *state) error {
		for _, p := range st.products {
			if keep(p) {
				p := p
				out = append(out, &p)
			}
		}
		return nil
	})
	sortByCreated(out, func(p *entity.Product) time.Time { return p.CreatedAt }, func(p *entity.Product) string { return p.ID })
	return out, err
}
