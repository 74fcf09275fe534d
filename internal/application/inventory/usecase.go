package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/application/dto"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain/entity"
	domaininv "github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain/inventory"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain/repository"
)

// UseCase operaciones sobre el libro de inventario por producto y talla.
type UseCase struct {
	tx      repository.TxRunner
	store   repository.Store
	watcher StockWatcher
	log     zerolog.Logger
	now     func() time.Time
}

// NewUseCase construye el caso de uso. watcher nil = NopWatcher.
func NewUseCase(tx repository.TxRunner, store repository.Store, watcher StockWatcher, log zerolog.Logger) *UseCase {
	if watcher == nil {
		watcher = NopWatcher{}
	}
	return &UseCase{tx: tx, store: store, watcher: watcher, log: log, now: time.Now}
}

// ConfirmOrder descuenta el stock de todas las líneas del pedido en una sola transacción.
// Si alguna línea no alcanza no se descuenta nada y se devuelve *domain.StockError.
// Un pedido cuyo stock ya fue comprometido (checkout o pago) se rechaza con ErrConflict.
func (uc *UseCase) ConfirmOrder(ctx context.Context, orderID string) error {
	if orderID == "" {
		return domain.Invalid("order_id", "requerido")
	}
	var written []*entity.InventoryRecord
	err := uc.tx.RunInTx(ctx, func(tx repository.Store) error {
		order, err := tx.Orders().GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.StockCommitted {
			return fmt.Errorf("%w: el stock del pedido %s ya fue descontado", domain.ErrConflict, orderID)
		}
		lines, err := tx.Orders().ListLines(ctx, orderID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return domain.Invalid("lines", "el pedido no tiene líneas")
		}
		req := make([]domaininv.Line, len(lines))
		for i, l := range lines {
			req[i] = domaininv.Line{ProductID: l.ProductID, SizeID: l.SizeID, Quantity: l.Quantity}
		}
		now := uc.now()
		written, err = Deduct(ctx, tx.Inventory(), req, now)
		if err != nil {
			return err
		}
		order.StockCommitted = true
		order.UpdatedAt = now
		return tx.Orders().Update(ctx, order)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("order_id", orderID).Int("records", len(written)).Msg("stock del pedido descontado")
	uc.watcher.Observe(ctx, written)
	return nil
}

// AdjustStock escritura administrativa de un registro (conteo físico, cambio de umbral).
func (uc *UseCase) AdjustStock(ctx context.Context, recordID string, in dto.AdjustStockRequest) (*dto.InventoryRecordResponse, error) {
	if in.StockForSize == nil && in.MinStock == nil {
		return nil, domain.Invalid("stock_for_size", "nada que ajustar")
	}
	if in.StockForSize != nil && *in.StockForSize < 0 {
		return nil, domain.Invalid("stock_for_size", "no puede ser negativo")
	}
	if in.MinStock != nil && *in.MinStock < 0 {
		return nil, domain.Invalid("min_stock", "no puede ser negativo")
	}

	var rec *entity.InventoryRecord
	err := uc.tx.RunInTx(ctx, func(tx repository.Store) error {
		var err error
		rec, err = tx.Inventory().GetByIDForUpdate(ctx, recordID)
		if err != nil {
			return err
		}
		if rec == nil {
			return domain.ErrNotFound
		}
		if in.StockForSize != nil {
			rec.SetStockForSize(*in.StockForSize)
		}
		if in.MinStock != nil {
			rec.MinStock = *in.MinStock
		}
		rec.UpdatedAt = uc.now()
		return tx.Inventory().Update(ctx, rec)
	})
	if err != nil {
		return nil, err
	}
	uc.watcher.Observe(ctx, []*entity.InventoryRecord{rec})
	out := ToRecordResponse(rec)
	return &out, nil
}

// ListByProduct stock del producto por talla.
func (uc *UseCase) ListByProduct(ctx context.Context, productID string) ([]dto.InventoryRecordResponse, error) {
	records, err := uc.store.Inventory().ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InventoryRecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, ToRecordResponse(r))
	}
	return out, nil
}

// ToRecordResponse mapea un registro al DTO.
func ToRecordResponse(r *entity.InventoryRecord) dto.InventoryRecordResponse {
	return dto.InventoryRecordResponse{
		ID:             r.ID,
		ProductID:      r.ProductID,
		SizeID:         r.SizeID,
		Quantity:       r.Quantity,
		StockForSize:   r.StockForSize,
		EffectiveStock: r.EffectiveStock(),
		MinStock:       r.MinStock,
		UpdatedAt:      r.UpdatedAt,
	}
}
