package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain/entity"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain/repository"
)

// Config parámetros de facturación.
type Config struct {
	TaxRate       decimal.Decimal // 0.19 = 19%
	Currency      string
	PaymentMethod string
	Prefix        string
	Issuer        string
}

// Issuer emite facturas a partir de pedidos pagados.
type Issuer struct {
	cfg Config
	now func() time.Time
}

// NewIssuer construye el emisor.
func NewIssuer(cfg Config) *Issuer {
	if cfg.Prefix == "" {
		cfg.Prefix = "FAC"
	}
	return &Issuer{cfg: cfg, now: time.Now}
}

// IssueForOrder crea la factura del pedido dentro de la transacción del caller, salvo que ya exista
// (en ese caso la devuelve con created=false). subtotal = suma de líneas, impuesto = subtotal × tasa.
func (i *Issuer) IssueForOrder(ctx context.Context, tx repository.Store, order *entity.Order, transactionID string) (inv *entity.Invoice, created bool, err error) {
	existing, err := tx.Invoices().GetByOrder(ctx, order.ID)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	lines, err := tx.Orders().ListLines(ctx, order.ID)
	if err != nil {
		return nil, false, err
	}
	if len(lines) == 0 {
		return nil, false, domain.Invalid("lines", "el pedido no tiene líneas para facturar")
	}

	now := i.now()
	id := uuid.New().String()
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.Subtotal)
	}
	tax := subtotal.Mul(i.cfg.TaxRate).Round(2)
	inv = &entity.Invoice{
		ID:            id,
		OrderID:       order.ID,
		Number:        InvoiceNumber(i.cfg.Prefix, id),
		IssuedAt:      now,
		Subtotal:      subtotal,
		Tax:           tax,
		Total:         subtotal.Add(tax),
		Currency:      i.cfg.Currency,
		PaymentMethod: i.cfg.PaymentMethod,
		TransactionID: transactionID,
		CreatedAt:     now,
	}
	if err := tx.Invoices().Create(ctx, inv); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			// otra notificación la creó primero
			existing, gerr := tx.Invoices().GetByOrder(ctx, order.ID)
			if gerr == nil && existing != nil {
				return existing, false, nil
			}
		}
		return nil, false, fmt.Errorf("crear factura: %w", err)
	}

	for _, l := range lines {
		name := ""
		if p, err := tx.Products().GetByID(ctx, l.ProductID); err == nil && p != nil {
			name = p.Name
		}
		if name == "" {
			name = "Producto " + l.ProductID
		}
		line := &entity.InvoiceLine{
			ID:          uuid.New().String(),
			InvoiceID:   inv.ID,
			ProductID:   l.ProductID,
			SizeID:      l.SizeID,
			ProductName: name,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Subtotal:    l.Subtotal,
		}
		if err := tx.Invoices().CreateLine(ctx, line); err != nil {
			return nil, false, fmt.Errorf("crear línea de factura: %w", err)
		}
	}
	return inv, true, nil
}

// InvoiceNumber prefijo + primeros 8 caracteres del id en mayúsculas: "FAC-1A2B3C4D".
func InvoiceNumber(prefix, id string) string {
	short := strings.ReplaceAll(id, "-", "")
	if len(short) > 8 {
		short = short[:8]
	}
	return prefix + "-" + strings.ToUpper(short)
}
