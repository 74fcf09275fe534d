package billing

import (
	"context"

	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain/entity"
)

// InvoiceDocument datos completos para la representación gráfica de una factura.
type InvoiceDocument struct {
	Issuer        string
	Invoice       *entity.Invoice
	Lines         []*entity.InvoiceLine
	CustomerName  string
	CustomerEmail string
}

// InvoicePDFGenerator genera el PDF de una factura.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, doc InvoiceDocument) ([]byte, error)
}
