package billing

import (
	"context"
	"fmt"

	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/application/dto"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain/entity"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain/repository"
)

// UseCase consulta de facturas y su representación gráfica (PDF).
type UseCase struct {
	store     repository.Store
	generator InvoicePDFGenerator
	issuer    string
}

// NewUseCase construye el caso de uso inyectando sus dependencias.
func NewUseCase(store repository.Store, generator InvoicePDFGenerator, issuer string) *UseCase {
	return &UseCase{store: store, generator: generator, issuer: issuer}
}

// GetInvoice factura con sus líneas.
func (uc *UseCase) GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.store.Invoices().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return uc.response(ctx, inv)
}

// GetByOrder factura del pedido.
func (uc *UseCase) GetByOrder(ctx context.Context, orderID string) (*dto.InvoiceResponse, error) {
	inv, err := uc.store.Invoices().GetByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return uc.response(ctx, inv)
}

// InvoicePDF genera el PDF de la factura.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si la factura no existe.
func (uc *UseCase) InvoicePDF(ctx context.Context, id string) (pdfBytes []byte, filename string, err error) {
	inv, err := uc.store.Invoices().GetByID(ctx, id)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener factura: %w", err)
	}
	if inv == nil {
		return nil, "", domain.ErrNotFound
	}
	lines, err := uc.store.Invoices().ListLines(ctx, id)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener líneas: %w", err)
	}

	doc := InvoiceDocument{Issuer: uc.issuer, Invoice: inv, Lines: lines, CustomerName: "Consumidor final"}
	if order, err := uc.store.Orders().GetByID(ctx, inv.OrderID); err == nil && order != nil && order.UserID != "" {
		if u, err := uc.store.Users().GetByID(ctx, order.UserID); err == nil && u != nil {
			doc.CustomerName = u.Name
			doc.CustomerEmail = u.Email
		}
	}

	pdfBytes, err = uc.generator.GenerateInvoicePDF(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("factura_%s.pdf", inv.Number), nil
}

func (uc *UseCase) response(ctx context.Context, inv *entity.Invoice) (*dto.InvoiceResponse, error) {
	lines, err := uc.store.Invoices().ListLines(ctx, inv.ID)
	if err != nil {
		return nil, err
	}
	out := &dto.InvoiceResponse{
		ID:            inv.ID,
		OrderID:       inv.OrderID,
		Number:        inv.Number,
		IssuedAt:      inv.IssuedAt,
		Subtotal:      inv.Subtotal,
		Tax:           inv.Tax,
		Total:         inv.Total,
		Currency:      inv.Currency,
		PaymentMethod: inv.PaymentMethod,
		TransactionID: inv.TransactionID,
		Lines:         make([]dto.InvoiceLineResponse, 0, len(lines)),
	}
	for _, l := range lines {
		out.Lines = append(out.Lines, dto.InvoiceLineResponse{
			ProductID:   l.ProductID,
			SizeID:      l.SizeID,
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Subtotal:    l.Subtotal,
		})
	}
	return out, nil
}
