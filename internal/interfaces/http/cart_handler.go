package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/application/cart"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/application/dto"
)

// CartHandler carritos, historial de estados y pedidos del usuario autenticado.
type CartHandler struct {
	svc *cart.Service
}

// NewCartHandler construye el handler.
func NewCartHandler(svc *cart.Service) *CartHandler {
	return &CartHandler{svc: svc}
}

// Create godoc
// @Summary      Crear carrito
// @Tags         carts
// @Security     Bearer
// @Produce      json
// @Success      201  {object}  dto.CartResponse
// @Router       /api/carts [post]
func (h *CartHandler) Create(c *fiber.Ctx) error {
	out, err := h.svc.CreateCart(c.Context(), actor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get godoc
// @Summary      Obtener carrito
// @Tags         carts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del carrito"
// @Success      200  {object}  dto.CartResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/carts/{id} [get]
func (h *CartHandler) Get(c *fiber.Ctx) error {
	out, err := h.svc.GetCart(c.Context(), actor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AddItem godoc
// @Summary      Agregar producto y talla al carrito
// @Tags         carts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "ID del carrito"
// @Param        body  body  dto.AddItemRequest  true  "product_id, size_id, quantity"
// @Success      200   {object}  dto.CartResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/carts/{id}/items [post]
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	var in dto.AddItemRequest
	if e := bind(c, &in); e != nil {
		return badRequest(c, e)
	}
	out, err := h.svc.AddItem(c.Context(), actor(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RemoveItem godoc
// @Summary      Quitar línea del carrito
// @Tags         carts
// @Security     Bearer
// @Produce      json
// @Param        id      path  string  true  "ID del carrito"
// @Param        itemId  path  string  true  "ID de la línea"
// @Success      200  {object}  dto.CartResponse
// @Router       /api/carts/{id}/items/{itemId} [delete]
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	out, err := h.svc.RemoveItem(c.Context(), actor(c), c.Params("id"), c.Params("itemId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ChangeState godoc
// @Summary      Registrar cambio de estado
// @Tags         carts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del carrito"
// @Param        body  body  dto.ChangeStateRequest  true  "state, note"
// @Success      201   {object}  dto.CartStateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/carts/{id}/states [post]
func (h *CartHandler) ChangeState(c *fiber.Ctx) error {
	var in dto.ChangeStateRequest
	if e := bind(c, &in); e != nil {
		return badRequest(c, e)
	}
	out, err := h.svc.ChangeState(c.Context(), actor(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// History godoc
// @Summary      Historial de estados
// @Tags         carts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del carrito"
// @Success      200  {array}  dto.CartStateResponse
// @Router       /api/carts/{id}/states [get]
func (h *CartHandler) History(c *fiber.Ctx) error {
	out, err := h.svc.History(c.Context(), actor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Checkout godoc
// @Summary      Reservar stock del carrito
// @Description  Descuenta el stock de todas las líneas o de ninguna, y deja el carrito en pendiente.
// @Tags         carts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del carrito"
// @Success      200  {object}  dto.CartResponse
// @Failure      409  {object}  dto.StockErrorResponse
// @Router       /api/carts/{id}/checkout [post]
func (h *CartHandler) Checkout(c *fiber.Ctx) error {
	out, err := h.svc.Checkout(c.Context(), actor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetOrder godoc
// @Summary      Obtener pedido
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *CartHandler) GetOrder(c *fiber.Ctx) error {
	out, err := h.svc.GetOrder(c.Context(), actor(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
