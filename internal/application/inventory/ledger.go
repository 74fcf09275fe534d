package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain/entity"
	domaininv "github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain/inventory"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain/repository"
)

// Deduct descuenta stock_for_size para todas las líneas dentro de la transacción del caller.
// Primero bloquea (SELECT FOR UPDATE, en orden producto/talla) y verifica todas las líneas;
// solo si todas alcanzan escribe. Ante cualquier *domain.StockError el caller debe hacer rollback.
func Deduct(ctx context.Context, repo repository.InventoryRepository, lines []domaininv.Line, now time.Time) ([]*entity.InventoryRecord, error) {
	consolidated, err := domaininv.Consolidate(lines)
	if err != nil {
		return nil, err
	}

	records := make([]*entity.InventoryRecord, len(consolidated))
	for i, l := range consolidated {
		rec, err := repo.GetForUpdate(ctx, l.ProductID, l.SizeID)
		if err != nil {
			return nil, fmt.Errorf("bloquear inventario %s/%s: %w", l.ProductID, l.SizeID, err)
		}
		if err := domaininv.CheckAvailable(rec, l); err != nil {
			return nil, err
		}
		records[i] = rec
	}

	for i, l := range consolidated {
		rec := records[i]
		rec.SetStockForSize(rec.EffectiveStock() - l.Quantity)
		rec.UpdatedAt = now
		if err := repo.Update(ctx, rec); err != nil {
			return nil, fmt.Errorf("descontar inventario %s/%s: %w", l.ProductID, l.SizeID, err)
		}
	}
	return records, nil
}

// Restore devuelve stock_for_size para las líneas con registro; una línea sin registro se ignora.
func Restore(ctx context.Context, repo repository.InventoryRepository, lines []domaininv.Line, now time.Time) ([]*entity.InventoryRecord, error) {
	consolidated, err := domaininv.Consolidate(lines)
	if err != nil {
		return nil, err
	}

	var records []*entity.InventoryRecord
	for _, l := range consolidated {
		rec, err := repo.GetForUpdate(ctx, l.ProductID, l.SizeID)
		if err != nil {
			return nil, fmt.Errorf("bloquear inventario %s/%s: %w", l.ProductID, l.SizeID, err)
		}
		if rec == nil {
			continue
		}
		rec.SetStockForSize(rec.EffectiveStock() + l.Quantity)
		rec.UpdatedAt = now
		if err := repo.Update(ctx, rec); err != nil {
			return nil, fmt.Errorf("restaurar inventario %s/%s: %w", l.ProductID, l.SizeID, err)
		}
		records = append(records, rec)
	}
	return records, nil
}
