// Package catalog casos de uso del catálogo: categorías, subcategorías, grupos de tallas y productos.
// Cada alta llama explícitamente al aprovisionamiento de inventario dentro de la misma transacción.
package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/application/dto"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/application/inventory"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain"
	domaincatalog "github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain/catalog"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain/entity"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain/repository"
)

// Service casos de uso del catálogo.
type Service struct {
	tx    repository.TxRunner
	store repository.Store
	prov  *inventory.Provisioner
	log   zerolog.Logger
	now   func() time.Time
}

// NewService construye el servicio.
func NewService(tx repository.TxRunner, store repository.Store, prov *inventory.Provisioner, log zerolog.Logger) *Service {
	return &Service{tx: tx, store: store, prov: prov, log: log, now: time.Now}
}

// CreateCategory crea una categoría.
func (s *Service) CreateCategory(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("name", "requerido")
	}
	c := &entity.Category{ID: uuid.New().String(), Name: name, Slug: domaincatalog.Slug(name), CreatedAt: s.now()}
	if err := s.store.Categories().Create(ctx, c); err != nil {
		return nil, err
	}
	out := toCategoryResponse(c)
	return &out, nil
}

// ListCategories lista todas las categorías.
func (s *Service) ListCategories(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := s.store.Categories().List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCategoryResponse(c))
	}
	return out, nil
}

// CreateSizeGroup crea un grupo de tallas vacío.
func (s *Service) CreateSizeGroup(ctx context.Context, in dto.CreateSizeGroupRequest) (*dto.SizeGroupResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("name", "requerido")
	}
	g := &entity.SizeGroup{ID: uuid.New().String(), Name: name, CreatedAt: s.now()}
	if err := s.store.Sizes().CreateGroup(ctx, g); err != nil {
		return nil, err
	}
	return &dto.SizeGroupResponse{ID: g.ID, Name: g.Name, Sizes: []dto.SizeResponse{}}, nil
}

// ListSizeGroups grupos con sus tallas.
func (s *Service) ListSizeGroups(ctx context.Context) ([]dto.SizeGroupResponse, error) {
	groups, err := s.store.Sizes().ListGroups(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SizeGroupResponse, 0, len(groups))
	for _, g := range groups {
		sizes, err := s.store.Sizes().ListByGroup(ctx, g.ID)
		if err != nil {
			return nil, err
		}
		resp := dto.SizeGroupResponse{ID: g.ID, Name: g.Name, Sizes: make([]dto.SizeResponse, 0, len(sizes))}
		for _, size := range sizes {
			resp.Sizes = append(resp.Sizes, toSizeResponse(size))
		}
		out = append(out, resp)
	}
	return out, nil
}

// CreateSize agrega una talla al grupo y la aprovisiona para los productos que usan el grupo.
func (s *Service) CreateSize(ctx context.Context, groupID string, in dto.CreateSizeRequest) (*dto.SizeResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("name", "requerido")
	}
	size := &entity.Size{ID: uuid.New().String(), SizeGroupID: groupID, Name: name, SortOrder: in.SortOrder, CreatedAt: s.now()}
	var created int
	err := s.tx.RunInTx(ctx, func(tx repository.Store) error {
		g, err := tx.Sizes().GetGroup(ctx, groupID)
		if err != nil {
			return err
		}
		if g == nil {
			return domain.ErrNotFound
		}
		if err := tx.Sizes().Create(ctx, size); err != nil {
			return err
		}
		created, err = s.prov.OnSizeCreated(ctx, tx, size)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("size_id", size.ID).Str("size_group_id", groupID).Int("records", created).Msg("talla creada")
	out := toSizeResponse(size)
	return &out, nil
}

// CreateSubcategory crea la subcategoría y aprovisiona sus productos (si ya los tuviera).
func (s *Service) CreateSubcategory(ctx context.Context, in dto.CreateSubcategoryRequest) (*dto.SubcategoryResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("name", "requerido")
	}
	minStock := entity.DefaultMinStock
	if in.MinStock != nil {
		if *in.MinStock < 0 {
			return nil, domain.Invalid("min_stock", "no puede ser negativo")
		}
		minStock = *in.MinStock
	}
	now := s.now()
	sub := &entity.Subcategory{
		ID:          uuid.New().String(),
		CategoryID:  in.CategoryID,
		SizeGroupID: strings.TrimSpace(in.SizeGroupID),
		Name:        name,
		Slug:        domaincatalog.Slug(name),
		MinStock:    minStock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := s.tx.RunInTx(ctx, func(tx repository.Store) error {
		if err := checkCategory(ctx, tx, sub.CategoryID); err != nil {
			return err
		}
		if err := checkSizeGroup(ctx, tx, sub.SizeGroupID); err != nil {
			return err
		}
		if err := tx.Subcategories().Create(ctx, sub); err != nil {
			return err
		}
		_, err := s.prov.OnSubcategoryCreated(ctx, tx, sub)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := toSubcategoryResponse(sub)
	return &out, nil
}

// UpdateSubcategory guarda los cambios. Si cambió el grupo de tallas, el inventario de sus
// productos se recrea en una transacción aparte; si eso falla se registra y el guardado se mantiene.
func (s *Service) UpdateSubcategory(ctx context.Context, id string, in dto.UpdateSubcategoryRequest) (*dto.SubcategoryResponse, error) {
	var sub *entity.Subcategory
	groupChanged := false
	err := s.tx.RunInTx(ctx, func(tx repository.Store) error {
		var err error
		sub, err = tx.Subcategories().GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if sub == nil {
			return domain.ErrNotFound
		}
		if in.Name != nil {
			name := strings.TrimSpace(*in.Name)
			if name == "" {
				return domain.Invalid("name", "requerido")
			}
			sub.Name = name
			sub.Slug = domaincatalog.Slug(name)
		}
		if in.MinStock != nil {
			if *in.MinStock < 0 {
				return domain.Invalid("min_stock", "no puede ser negativo")
			}
			sub.MinStock = *in.MinStock
		}
		if in.SizeGroupID != nil {
			next := strings.TrimSpace(*in.SizeGroupID)
			if next != sub.SizeGroupID {
				if err := checkSizeGroup(ctx, tx, next); err != nil {
					return err
				}
				sub.SizeGroupID = next
				groupChanged = true
			}
		}
		sub.UpdatedAt = s.now()
		return tx.Subcategories().Update(ctx, sub)
	})
	if err != nil {
		return nil, err
	}

	out := toSubcategoryResponse(sub)
	if groupChanged {
		out.DiscardedRecords = s.reprovision(ctx, sub)
	}
	return &out, nil
}

func (s *Service) reprovision(ctx context.Context, sub *entity.Subcategory) int {
	var discarded, created int
	err := s.tx.RunInTx(ctx, func(tx repository.Store) error {
		var err error
		discarded, created, err = s.prov.OnSizeGroupChanged(ctx, tx, sub)
		return err
	})
	if err != nil {
		s.log.Error().Err(err).Str("subcategory_id", sub.ID).Msg("no se pudo recrear el inventario tras cambiar el grupo de tallas")
		return 0
	}
	if discarded > 0 {
		s.log.Warn().Str("subcategory_id", sub.ID).Int("discarded", discarded).Int("created", created).
			Msg("cambio de grupo de tallas: se descartó el stock previo de la subcategoría")
	}
	return discarded
}

// ListSubcategories por categoría ("" = todas).
func (s *Service) ListSubcategories(ctx context.Context, categoryID string) ([]dto.SubcategoryResponse, error) {
	list, err := s.store.Subcategories().ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SubcategoryResponse, 0, len(list))
	for _, sub := range list {
		out = append(out, toSubcategoryResponse(sub))
	}
	return out, nil
}

// CreateProduct crea el producto y un registro de inventario en cero por talla de su subcategoría.
func (s *Service) CreateProduct(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("name", "requerido")
	}
	if !in.Price.IsPositive() {
		return nil, domain.Invalid("price", "debe ser mayor que cero")
	}
	if in.SubcategoryID == "" {
		return nil, domain.Invalid("subcategory_id", "requerido")
	}
	now := s.now()
	p := &entity.Product{
		ID:            uuid.New().String(),
		SubcategoryID: in.SubcategoryID,
		Name:          name,
		Slug:          domaincatalog.Slug(name),
		Description:   strings.TrimSpace(in.Description),
		Price:         in.Price,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	var records []*entity.InventoryRecord
	err := s.tx.RunInTx(ctx, func(tx repository.Store) error {
		sub, err := tx.Subcategories().GetByID(ctx, p.SubcategoryID)
		if err != nil {
			return err
		}
		if sub == nil {
			return domain.Invalid("subcategory_id", "la subcategoría no existe")
		}
		if err := tx.Products().Create(ctx, p); err != nil {
			return err
		}
		if _, err := s.prov.OnProductCreated(ctx, tx, p); err != nil {
			return err
		}
		records, err = tx.Inventory().ListByProduct(ctx, p.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	out := toProductResponse(p, records)
	return &out, nil
}

// GetProduct detalle del producto con su stock por talla.
func (s *Service) GetProduct(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := s.store.Products().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	records, err := s.store.Inventory().ListByProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	out := toProductResponse(p, records)
	return &out, nil
}

// ListProducts lista paginada; con subcategoryID filtra por subcategoría.
func (s *Service) ListProducts(ctx context.Context, subcategoryID string, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	var (
		list []*entity.Product
		err  error
	)
	if subcategoryID != "" {
		list, err = s.store.Products().ListBySubcategory(ctx, subcategoryID)
		if err == nil {
			list = paginate(list, page)
		}
	} else {
		list, err = s.store.Products().List(ctx, page.Limit, page.Offset)
	}
	if err != nil {
		return nil, err
	}
	out := &dto.ProductListResponse{Items: make([]dto.ProductResponse, 0, len(list)), Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}
	for _, p := range list {
		out.Items = append(out.Items, toProductResponse(p, nil))
	}
	return out, nil
}

func paginate(list []*entity.Product, page dto.PageRequest) []*entity.Product {
	if page.Offset >= len(list) {
		return nil
	}
	list = list[page.Offset:]
	if len(list) > page.Limit {
		list = list[:page.Limit]
	}
	return list
}

func checkCategory(ctx context.Context, tx repository.Store, id string) error {
	if id == "" {
		return domain.Invalid("category_id", "requerido")
	}
	c, err := tx.Categories().GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.Invalid("category_id", "la categoría no existe")
	}
	return nil
}

func checkSizeGroup(ctx context.Context, tx repository.Store, id string) error {
	if id == "" {
		return nil
	}
	g, err := tx.Sizes().GetGroup(ctx, id)
	if err != nil {
		return err
	}
	if g == nil {
		return domain.Invalid("size_group_id", "el grupo de tallas no existe")
	}
	return nil
}
