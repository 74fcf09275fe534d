package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/application/catalog"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/application/dto"
)

// CatalogHandler categorías, subcategorías y grupos de tallas.
type CatalogHandler struct {
	svc *catalog.Service
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(svc *catalog.Service) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

// CreateCategory godoc
// @Summary      Crear categoría
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCategoryRequest  true  "Nombre"
// @Success      201   {object}  dto.CategoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/categories [post]
func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var in dto.CreateCategoryRequest
	if e := bind(c, &in); e != nil {
		return badRequest(c, e)
	}
	out, err := h.svc.CreateCategory(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListCategories godoc
// @Summary      Listar categorías
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  dto.CategoryResponse
// @Router       /api/categories [get]
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	out, err := h.svc.ListCategories(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateSizeGroup godoc
// @Summary      Crear grupo de tallas
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSizeGroupRequest  true  "Nombre"
// @Success      201   {object}  dto.SizeGroupResponse
// @Router       /api/size-groups [post]
func (h *CatalogHandler) CreateSizeGroup(c *fiber.Ctx) error {
	var in dto.CreateSizeGroupRequest
	if e := bind(c, &in); e != nil {
		return badRequest(c, e)
	}
	out, err := h.svc.CreateSizeGroup(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListSizeGroups godoc
// @Summary      Listar grupos de tallas con sus tallas
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  dto.SizeGroupResponse
// @Router       /api/size-groups [get]
func (h *CatalogHandler) ListSizeGroups(c *fiber.Ctx) error {
	out, err := h.svc.ListSizeGroups(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateSize godoc
// @Summary      Agregar talla a un grupo
// @Description  Provisiona stock en cero para los productos que usan el grupo.
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del grupo"
// @Param        body  body  dto.CreateSizeRequest  true  "Talla"
// @Success      201   {object}  dto.SizeResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/size-groups/{id}/sizes [post]
func (h *CatalogHandler) CreateSize(c *fiber.Ctx) error {
	var in dto.CreateSizeRequest
	if e := bind(c, &in); e != nil {
		return badRequest(c, e)
	}
	out, err := h.svc.CreateSize(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CreateSubcategory godoc
// @Summary      Crear subcategoría
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSubcategoryRequest  true  "Subcategoría"
// @Success      201   {object}  dto.SubcategoryResponse
// @Router       /api/subcategories [post]
func (h *CatalogHandler) CreateSubcategory(c *fiber.Ctx) error {
	var in dto.CreateSubcategoryRequest
	if e := bind(c, &in); e != nil {
		return badRequest(c, e)
	}
	out, err := h.svc.CreateSubcategory(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateSubcategory godoc
// @Summary      Actualizar subcategoría
// @Description  Si cambia el grupo de tallas, el stock de sus productos se descarta y se recrea en cero.
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID"
// @Param        body  body  dto.UpdateSubcategoryRequest  true  "Cambios"
// @Success      200   {object}  dto.SubcategoryResponse
// @Router       /api/subcategories/{id} [put]
func (h *CatalogHandler) UpdateSubcategory(c *fiber.Ctx) error {
	var in dto.UpdateSubcategoryRequest
	if e := bind(c, &in); e != nil {
		return badRequest(c, e)
	}
	out, err := h.svc.UpdateSubcategory(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListSubcategories godoc
// @Summary      Listar subcategorías
// @Tags         catalog
// @Produce      json
// @Param        category_id  query  string  false  "Filtrar por categoría"
// @Success      200  {array}  dto.SubcategoryResponse
// @Router       /api/subcategories [get]
func (h *CatalogHandler) ListSubcategories(c *fiber.Ctx) error {
	out, err := h.svc.ListSubcategories(c.Context(), c.Query("category_id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
