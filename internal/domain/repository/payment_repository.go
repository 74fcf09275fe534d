package repository

import (
	"context"

	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain/entity"
)

// PaymentRepository puerto de persistencia para pagos, clave natural TransactionID.
type PaymentRepository interface {
	// GetByTransactionForUpdate devuelve nil si no existe.
	GetByTransactionForUpdate(ctx context.Context, transactionID string) (*entity.Payment, error)
	// Upsert inserta o actualiza por TransactionID.
	Upsert(ctx context.Context, payment *entity.Payment) error
}
