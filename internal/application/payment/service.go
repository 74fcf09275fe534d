// Package payment conciliación de notificaciones de la pasarela de pago con carritos, pedidos y facturas.
package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/application/billing"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/application/cart"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/application/dto"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/application/inventory"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/application/notify"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain/entity"
	domainpay "github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain/payment"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain/repository"
)

// Service concilia pagos. Todo el trabajo de una notificación ocurre en una sola transacción.
type Service struct {
	tx      repository.TxRunner
	store   repository.Store
	issuer  *billing.Issuer
	watcher inventory.StockWatcher
	mailer  *notify.Mailer
	log     zerolog.Logger
	now     func() time.Time
}

// NewService construye el servicio. watcher y mailer pueden ser nil.
func NewService(tx repository.TxRunner, store repository.Store, issuer *billing.Issuer, watcher inventory.StockWatcher, mailer *notify.Mailer, log zerolog.Logger) *Service {
	if watcher == nil {
		watcher = inventory.NopWatcher{}
	}
	return &Service{tx: tx, store: store, issuer: issuer, watcher: watcher, mailer: mailer, log: log, now: time.Now}
}

// Reconcile aplica una notificación de pago:
//  1. bloquea el carrito (external_reference) y el pago (transaction_id);
//  2. guarda el pago con su payload original;
//  3. agrega el estado del carrito que corresponde al estado interno;
//  4. pagado: pedido (buscar o crear), carrito inactivo, factura si no existe;
//  5. rechazado/cancelado: devuelve el stock reservado por el checkout.
//
// Una notificación que no hace avanzar el pago (repetida, o anterior que llega fuera de orden)
// no tiene efectos y se marca Replayed.
func (s *Service) Reconcile(ctx context.Context, in dto.PaymentNotificationRequest) (*dto.PaymentResultResponse, error) {
	in.TransactionID = strings.TrimSpace(in.TransactionID)
	in.ExternalReference = strings.TrimSpace(in.ExternalReference)
	if in.TransactionID == "" {
		return nil, domain.Invalid("transaction_id", "requerido")
	}
	if in.ExternalReference == "" {
		return nil, domain.Invalid("external_reference", "requerido")
	}
	internal := domainpay.MapStatus(in.Status)
	if _, err := uuid.Parse(in.ExternalReference); err != nil {
		return nil, fmt.Errorf("%w: carrito %s", domain.ErrNotFound, in.ExternalReference)
	}

	var (
		res      = &dto.PaymentResultResponse{TransactionID: in.TransactionID, Status: in.Status, InternalStatus: internal, CartID: in.ExternalReference}
		restored []*entity.InventoryRecord
		issued   bool
	)
	err := s.tx.RunInTx(ctx, func(tx repository.Store) error {
		c, err := tx.Carts().GetForUpdate(ctx, in.ExternalReference)
		if err != nil {
			return err
		}
		if c == nil {
			return fmt.Errorf("%w: carrito %s", domain.ErrNotFound, in.ExternalReference)
		}
		existing, err := tx.Payments().GetByTransactionForUpdate(ctx, in.TransactionID)
		if err != nil {
			return err
		}
		if existing != nil && existing.CartID != "" && existing.CartID != c.ID {
			return fmt.Errorf("%w: la transacción %s pertenece a otro carrito", domain.ErrConflict, in.TransactionID)
		}
		if existing != nil && !domainpay.Supersedes(existing.InternalStatus, internal) {
			res.PaymentID = existing.ID
			res.OrderID = existing.OrderID
			res.Replayed = true
			return nil
		}

		now := s.now()
		p := &entity.Payment{
			ID:             uuid.New().String(),
			TransactionID:  in.TransactionID,
			Status:         in.Status,
			InternalStatus: internal,
			StatusDetail:   in.StatusDetail,
			Amount:         in.Amount,
			Currency:       in.Currency,
			PaymentMethod:  in.PaymentMethod,
			RawPayload:     rawPayload(in),
			CartID:         c.ID,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if existing != nil {
			p.OrderID = existing.OrderID
		}

		state := &entity.CartState{ID: uuid.New().String(), CartID: c.ID, State: domainpay.CartStateFor(internal), Note: internal, CreatedAt: now}
		if err := tx.Carts().AppendState(ctx, state); err != nil {
			return err
		}

		switch {
		case internal == entity.PaymentStatusPaid:
			order, err := s.settle(ctx, tx, c, now)
			if err != nil {
				return err
			}
			p.OrderID = order.ID
			res.OrderID = order.ID
			inv, created, err := s.issuer.IssueForOrder(ctx, tx, order, in.TransactionID)
			if err != nil {
				return err
			}
			res.InvoiceID = inv.ID
			issued = created
		case domainpay.RestoresStock(internal) && c.StockReserved:
			items, err := tx.Carts().ListItems(ctx, c.ID)
			if err != nil {
				return err
			}
			restored, err = inventory.Restore(ctx, tx.Inventory(), cart.Lines(items), now)
			if err != nil {
				return err
			}
			c.StockReserved = false
			c.UpdatedAt = now
			if err := tx.Carts().Update(ctx, c); err != nil {
				return err
			}
		}

		if err := tx.Payments().Upsert(ctx, p); err != nil {
			return err
		}
		res.PaymentID = p.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	if res.Replayed {
		s.log.Info().Str("transaction_id", in.TransactionID).Str("status", in.Status).Msg("pago: notificación repetida, sin cambios")
		if res.OrderID != "" {
			if inv, err := s.store.Invoices().GetByOrder(ctx, res.OrderID); err == nil && inv != nil {
				res.InvoiceID = inv.ID
			}
		}
		return res, nil
	}

	s.log.Info().
		Str("transaction_id", in.TransactionID).
		Str("cart_id", res.CartID).
		Str("status", internal).
		Str("order_id", res.OrderID).
		Int("restored", len(restored)).
		Msg("pago conciliado")
	s.watcher.Observe(ctx, restored)
	if issued {
		s.sendConfirmation(ctx, res.OrderID)
	}
	return res, nil
}

// settle busca o crea el pedido del carrito, lo marca pagado y cierra el carrito.
// La reserva hecha por el checkout pasa al pedido como stock comprometido.
func (s *Service) settle(ctx context.Context, tx repository.Store, c *entity.Cart, now time.Time) (*entity.Order, error) {
	items, err := tx.Carts().ListItems(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	total := cart.Total(items)
	order, err := tx.Orders().FindForCart(ctx, c.UserID, c.ID, total)
	if err != nil {
		return nil, err
	}
	if order == nil {
		if len(items) == 0 {
			return nil, domain.Invalid("external_reference", "el carrito no tiene ítems")
		}
		order = &entity.Order{ID: uuid.New().String(), UserID: c.UserID, CartID: c.ID, Total: total, CreatedAt: now, UpdatedAt: now}
		if err := tx.Orders().Create(ctx, order); err != nil {
			return nil, err
		}
		for _, it := range items {
			line := &entity.OrderLine{
				ID:        uuid.New().String(),
				OrderID:   order.ID,
				ProductID: it.ProductID,
				SizeID:    it.SizeID,
				Quantity:  it.Quantity,
				UnitPrice: it.UnitPrice,
				Subtotal:  it.Subtotal,
			}
			if err := tx.Orders().CreateLine(ctx, line); err != nil {
				return nil, err
			}
		}
	}

	order.Settled = true
	if c.StockReserved {
		order.StockCommitted = true
		c.StockReserved = false
	}
	order.UpdatedAt = now
	if err := tx.Orders().Update(ctx, order); err != nil {
		return nil, err
	}
	c.Active = false
	c.UpdatedAt = now
	if err := tx.Carts().Update(ctx, c); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *Service) sendConfirmation(ctx context.Context, orderID string) {
	if s.mailer == nil {
		return
	}
	order, err := s.store.Orders().GetByID(ctx, orderID)
	if err != nil || order == nil {
		s.log.Warn().Err(err).Str("order_id", orderID).Msg("pago: pedido no disponible para confirmación")
		return
	}
	lines, err := s.store.Orders().ListLines(ctx, orderID)
	if err != nil {
		s.log.Warn().Err(err).Str("order_id", orderID).Msg("pago: líneas no disponibles para confirmación")
		return
	}
	names := make(map[string]string, len(lines))
	for _, l := range lines {
		if p, err := s.store.Products().GetByID(ctx, l.ProductID); err == nil && p != nil {
			names[l.ProductID] = p.Name
		}
	}
	email := ""
	if order.UserID != "" {
		if u, err := s.store.Users().GetByID(ctx, order.UserID); err == nil && u != nil {
			email = u.Email
		}
	}
	s.mailer.SendReceipt(ctx, notify.OrderReceipt{Email: email, Order: order, Lines: lines, Names: names})
}

// rawPayload payload original de la pasarela; si no llegó se serializa la notificación.
func rawPayload(in dto.PaymentNotificationRequest) json.RawMessage {
	if len(in.Raw) > 0 && json.Valid(in.Raw) {
		return append(json.RawMessage(nil), in.Raw...)
	}
	b, err := json.Marshal(in)
	if err != nil {
		return json.RawMessage("{}")
	}
	return b
}
