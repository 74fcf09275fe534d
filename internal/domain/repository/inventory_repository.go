package repository

import (
	"context"

	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain/entity"
)

// InventoryRepository puerto para los registros de inventario por (producto, talla).
// Usado dentro de transacciones para garantizar consistencia.
type InventoryRepository interface {
	// CreateIfMissing inserta el registro si no existe el par (producto, talla). Devuelve true si lo creó.
	CreateIfMissing(ctx context.Context, record *entity.InventoryRecord) (bool, error)
	GetByID(ctx context.Context, id string) (*entity.InventoryRecord, error)
	// GetForUpdate bloquea la fila del par (producto, talla). Devuelve nil si no existe.
	GetForUpdate(ctx context.Context, productID, sizeID string) (*entity.InventoryRecord, error)
	// GetByIDForUpdate bloquea la fila por ID. Devuelve nil si no existe.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.InventoryRecord, error)
	Update(ctx context.Context, record *entity.InventoryRecord) error
	ListByProduct(ctx context.Context, productID string) ([]*entity.InventoryRecord, error)
	// DeleteByProducts elimina todos los registros de los productos indicados y devuelve cuántos borró.
	DeleteByProducts(ctx context.Context, productIDs []string) (int, error)
}
