package repository

import (
	"context"

	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain/entity"
)

// InvoiceRepository puerto de persistencia para facturas.
type InvoiceRepository interface {
	// Create falla con domain.ErrDuplicate si el pedido ya tiene factura.
	Create(ctx context.Context, invoice *entity.Invoice) error
	CreateLine(ctx context.Context, line *entity.InvoiceLine) error
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	GetByOrder(ctx context.Context, orderID string) (*entity.Invoice, error)
	ListLines(ctx context.Context, invoiceID string) ([]*entity.InvoiceLine, error)
}
