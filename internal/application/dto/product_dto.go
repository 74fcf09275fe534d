package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCategoryRequest body para POST /api/categories.
type CreateCategoryRequest struct {
	Name string `json:"name" valid:"required,maxstringlength(120)"`
}

// CategoryResponse salida de categoría.
type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateSizeGroupRequest body para POST /api/size-groups.
type CreateSizeGroupRequest struct {
	Name string `json:"name" valid:"required,maxstringlength(80)"`
}

// CreateSizeRequest body para POST /api/size-groups/:id/sizes.
type CreateSizeRequest struct {
	Name      string `json:"name" valid:"required,maxstringlength(20)"`
	SortOrder int    `json:"sort_order"`
}

// SizeResponse salida de talla.
type SizeResponse struct {
	ID          string `json:"id"`
	SizeGroupID string `json:"size_group_id"`
	Name        string `json:"name"`
	SortOrder   int    `json:"sort_order"`
}

// SizeGroupResponse grupo con sus tallas.
type SizeGroupResponse struct {
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	Sizes []SizeResponse `json:"sizes"`
}

// CreateSubcategoryRequest body para POST /api/subcategories.
type CreateSubcategoryRequest struct {
	CategoryID  string `json:"category_id" valid:"required"`
	SizeGroupID string `json:"size_group_id,omitempty"`
	Name        string `json:"name" valid:"required,maxstringlength(120)"`
	MinStock    *int   `json:"min_stock,omitempty"`
}

// UpdateSubcategoryRequest body para PUT /api/subcategories/:id. Campos nil no cambian;
// size_group_id "" quita el grupo de tallas.
type UpdateSubcategoryRequest struct {
	Name        *string `json:"name,omitempty"`
	SizeGroupID *string `json:"size_group_id,omitempty"`
	MinStock    *int    `json:"min_stock,omitempty"`
}

// SubcategoryResponse salida de subcategoría.
type SubcategoryResponse struct {
	ID               string    `json:"id"`
	CategoryID       string    `json:"category_id"`
	SizeGroupID      string    `json:"size_group_id,omitempty"`
	Name             string    `json:"name"`
	Slug             string    `json:"slug"`
	MinStock         int       `json:"min_stock"`
	DiscardedRecords int       `json:"discarded_records,omitempty"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	SubcategoryID string          `json:"subcategory_id" valid:"required"`
	Name          string          `json:"name" valid:"required,maxstringlength(200)"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
}

// ProductResponse salida de producto; Stock solo en el detalle.
type ProductResponse struct {
	ID            string                    `json:"id"`
	SubcategoryID string                    `json:"subcategory_id"`
	Name          string                    `json:"name"`
	Slug          string                    `json:"slug"`
	Description   string                    `json:"description"`
	Price         decimal.Decimal           `json:"price"`
	Stock         []InventoryRecordResponse `json:"stock,omitempty"`
	CreatedAt     time.Time                 `json:"created_at"`
}

// ProductListResponse listado paginado.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
