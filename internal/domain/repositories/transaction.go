package repositories

import (
	"context"

	"github.com/mufasadev/easypay-receipts/internal/domain/models"
)

// TransactionRepository is the EasyPay backend's view of payment records.
// Implementations authenticate with the session carried in ctx.
type TransactionRepository interface {
	GetByID(ctx context.Context, id string) (*models.Transaction, error)
	UpdateStatus(ctx context.Context, id string, status models.Status) (*models.Transaction, error)
}
