package catalog

import (
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/application/dto"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/application/inventory"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain/entity"
)

func toCategoryResponse(c *entity.Category) dto.CategoryResponse {
	return dto.CategoryResponse{ID: c.ID, Name: c.Name, Slug: c.Slug, CreatedAt: c.CreatedAt}
}

func toSizeResponse(s *entity.Size) dto.SizeResponse {
	return dto.SizeResponse{ID: s.ID, SizeGroupID: s.SizeGroupID, Name: s.Name, SortOrder: s.SortOrder}
}

func toSubcategoryResponse(s *entity.Subcategory) dto.SubcategoryResponse {
	return dto.SubcategoryResponse{
		ID:          s.ID,
		CategoryID:  s.CategoryID,
		SizeGroupID: s.SizeGroupID,
		Name:        s.Name,
		Slug:        s.Slug,
		MinStock:    s.MinStock,
		UpdatedAt:   s.UpdatedAt,
	}
}

func toProductResponse(p *entity.Product, records []*entity.InventoryRecord) dto.ProductResponse {
	out := dto.ProductResponse{
		ID:            p.ID,
		SubcategoryID: p.SubcategoryID,
		Name:          p.Name,
		Slug:          p.Slug,
		Description:   p.Description,
		Price:         p.Price,
		CreatedAt:     p.CreatedAt,
	}
	for _, r := range records {
		out.Stock = append(out.Stock, inventory.ToRecordResponse(r))
	}
	return out
}
