package repository

import (
	"context"
	"time"

	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain/entity"
)

// StockAlertRepository puerto de persistencia para alertas de stock y sus avisos.
type StockAlertRepository interface {
	// GetActive devuelve la alerta sin resolver del registro o nil.
	GetActive(ctx context.Context, inventoryID string) (*entity.StockAlert, error)
	Create(ctx context.Context, alert *entity.StockAlert) error
	Resolve(ctx context.Context, id string, at time.Time) error
	ListActive(ctx context.Context) ([]*entity.StockAlert, error)
	// CreateNotification devuelve false si ya existía un aviso para (tipo, inventario, producto, talla).
	CreateNotification(ctx context.Context, n *entity.StockNotification) (bool, error)
}
