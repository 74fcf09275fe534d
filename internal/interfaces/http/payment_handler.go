package http

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/application/dto"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/application/payment"
)

// PaymentHandler recibe las notificaciones de la pasarela de pago (público).
type PaymentHandler struct {
	svc *payment.Service
}

// NewPaymentHandler construye el handler.
func NewPaymentHandler(svc *payment.Service) *PaymentHandler {
	return &PaymentHandler{svc: svc}
}

// Webhook godoc
// @Summary      Notificación de pago
// @Description  Idempotente por transaction_id: una reentrega idéntica responde 200 con replayed=true.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PaymentNotificationRequest  true  "Notificación"
// @Success      200   {object}  dto.PaymentResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/webhooks/payments [post]
func (h *PaymentHandler) Webhook(c *fiber.Ctx) error {
	var in dto.PaymentNotificationRequest
	if e := bind(c, &in); e != nil {
		return badRequest(c, e)
	}
	// c.Body() se reutiliza tras la respuesta: se copia antes de guardarlo.
	raw := append([]byte(nil), c.Body()...)
	if json.Valid(raw) {
		in.Raw = raw
	}
	out, err := h.svc.Reconcile(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
