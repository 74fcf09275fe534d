package repository

import (
	"context"

	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// OrderRepository puerto de persistencia para pedidos y sus líneas.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Order, error)
	Update(ctx context.Context, order *entity.Order) error
	// FindForCart busca el pedido de un usuario para un carrito y total dados (protege reintentos).
	FindForCart(ctx context.Context, userID, cartID string, total decimal.Decimal) (*entity.Order, error)
	CreateLine(ctx context.Context, line *entity.OrderLine) error
	ListLines(ctx context.Context, orderID string) ([]*entity.OrderLine, error)
}
