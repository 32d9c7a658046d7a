package repositories

import (
	"context"
	"time"

	"github.com/mufasadev/easypay-receipts/internal/domain/models"
)

const UniqueViolationError = "23505"

// DispatchRepository records every receipt send attempt.
type DispatchRepository interface {
	Insert(ctx context.Context, dispatch *models.Dispatch) error
	ListByReference(ctx context.Context, reference string) ([]models.Dispatch, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
