package repository

import (
	"context"

	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	List(ctx context.Context) ([]*entity.Category, error)
}

// SubcategoryRepository define el puerto de persistencia para Subcategory.
type SubcategoryRepository interface {
	Create(ctx context.Context, sub *entity.Subcategory) error
	GetByID(ctx context.Context, id string) (*entity.Subcategory, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Subcategory, error)
	Update(ctx context.Context, sub *entity.Subcategory) error
	ListByCategory(ctx context.Context, categoryID string) ([]*entity.Subcategory, error)
	ListBySizeGroup(ctx context.Context, sizeGroupID string) ([]*entity.Subcategory, error)
}

// SizeRepository define el puerto de persistencia para SizeGroup y Size.
type SizeRepository interface {
	CreateGroup(ctx context.Context, group *entity.SizeGroup) error
	GetGroup(ctx context.Context, id string) (*entity.SizeGroup, error)
	ListGroups(ctx context.Context) ([]*entity.SizeGroup, error)
	Create(ctx context.Context, size *entity.Size) error
	GetByID(ctx context.Context, id string) (*entity.Size, error)
	ListByGroup(ctx context.Context, groupID string) ([]*entity.Size, error)
}

// ProductRepository define el puerto de persistencia para Product.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	ListBySubcategory(ctx context.Context, subcategoryID string) ([]*entity.Product, error)
}
