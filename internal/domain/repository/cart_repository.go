package repository

import (
	"context"

	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain/entity"
)

// CartRepository puerto de persistencia para carritos, ítems e historial de estados.
type CartRepository interface {
	Create(ctx context.Context, cart *entity.Cart) error
	GetByID(ctx context.Context, id string) (*entity.Cart, error)
	// GetForUpdate bloquea el carrito durante la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Cart, error)
	Update(ctx context.Context, cart *entity.Cart) error

	// AppendState agrega una fila al historial; nunca modifica las existentes.
	AppendState(ctx context.Context, state *entity.CartState) error
	ListStates(ctx context.Context, cartID string) ([]*entity.CartState, error)

	// UpsertItem inserta o actualiza la línea única (carrito, producto, talla).
	UpsertItem(ctx context.Context, item *entity.CartItem) error
	DeleteItem(ctx context.Context, cartID, itemID string) error
	ListItems(ctx context.Context, cartID string) ([]*entity.CartItem, error)
}
