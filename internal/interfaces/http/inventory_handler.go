package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/application/alerts"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/application/dto"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/application/inventory"
)

// InventoryHandler stock por talla, confirmación de pedidos y alertas (solo admin).
type InventoryHandler struct {
	uc     *inventory.UseCase
	alerts *alerts.Service
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.UseCase, alerts *alerts.Service) *InventoryHandler {
	return &InventoryHandler{uc: uc, alerts: alerts}
}

// ListByProduct godoc
// @Summary      Stock de un producto por talla
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {array}  dto.InventoryRecordResponse
// @Router       /api/products/{id}/inventory [get]
func (h *InventoryHandler) ListByProduct(c *fiber.Ctx) error {
	out, err := h.uc.ListByProduct(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Adjust godoc
// @Summary      Ajustar stock de un registro
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del registro de inventario"
// @Param        body  body  dto.AdjustStockRequest  true  "stock_for_size, min_stock"
// @Success      200   {object}  dto.InventoryRecordResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [put]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if e := bind(c, &in); e != nil {
		return badRequest(c, e)
	}
	out, err := h.uc.AdjustStock(c.Context(), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ConfirmOrder godoc
// @Summary      Confirmar pedido y descontar stock
// @Description  Todo o nada: si una línea no tiene stock no se descuenta ninguna.
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.StockErrorResponse
// @Router       /api/orders/{id}/confirm [post]
func (h *InventoryHandler) ConfirmOrder(c *fiber.Ctx) error {
	if err := h.uc.ConfirmOrder(c.Context(), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "pedido confirmado"})
}

// ListAlerts godoc
// @Summary      Alertas de stock sin resolver
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.StockAlertResponse
// @Router       /api/stock-alerts [get]
func (h *InventoryHandler) ListAlerts(c *fiber.Ctx) error {
	out, err := h.alerts.ListActive(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
