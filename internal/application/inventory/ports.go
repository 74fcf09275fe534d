package inventory

import (
	"context"

	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain/entity"
)

// StockWatcher recibe los registros de inventario escritos por una transacción ya confirmada.
// Las alertas de stock bajo se evalúan ahí; un fallo del watcher no revierte la escritura.
type StockWatcher interface {
	Observe(ctx context.Context, records []*entity.InventoryRecord)
}

// NopWatcher descarta las observaciones.
type NopWatcher struct{}

func (NopWatcher) Observe(context.Context, []*entity.InventoryRecord) {}
