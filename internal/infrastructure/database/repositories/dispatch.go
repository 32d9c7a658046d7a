package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/mufasadev/easypay-receipts/internal/domain/models"
	"github.com/mufasadev/easypay-receipts/internal/domain/repositories"
	apperrors "github.com/mufasadev/easypay-receipts/internal/errors"
	"github.com/mufasadev/easypay-receipts/pkg/log"
	"github.com/mufasadev/easypay-receipts/pkg/postgresql"
)

type DispatchRepositoryImpl struct {
	db     postgresql.Client
	logger *zerolog.Logger
}

// NewDispatchRepositoryImpl creates new instance of DispatchRepositoryImpl.
func NewDispatchRepositoryImpl(db *pgxpool.Pool) *DispatchRepositoryImpl {
	l := log.GetLogger()
	return &DispatchRepositoryImpl{
		db:     db,
		logger: &l,
	}
}

var _ repositories.DispatchRepository = (*DispatchRepositoryImpl)(nil)

const createDispatchesTable = `
CREATE TABLE IF NOT EXISTS receipt_dispatches (
  id          UUID PRIMARY KEY,
  reference   TEXT NOT NULL,
  recipient   TEXT NOT NULL,
  status      TEXT NOT NULL,
  message_id  TEXT NOT NULL DEFAULT '',
  error       TEXT NOT NULL DEFAULT '',
  amount      NUMERIC(14,2),
  duration_ms BIGINT NOT NULL DEFAULT 0,
  sent_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS receipt_dispatches_reference_idx ON receipt_dispatches (reference, sent_at DESC);`

// EnsureSchema creates the dispatch log table when it does not exist yet.
func (r *DispatchRepositoryImpl) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, createDispatchesTable); err != nil {
		return fmt.Errorf("create receipt_dispatches: %w", err)
	}
	return nil
}

const insertDispatch = `
INSERT INTO receipt_dispatches (id, reference, recipient, status, message_id, error, amount, duration_ms, sent_at)
VALUES ($1, $2, $3, $4, $5, $6, $7::NUMERIC(14,2), $8, $9)`

// Insert records one send attempt.
func (r *DispatchRepositoryImpl) Insert(ctx context.Context, d *models.Dispatch) error {
	_, err := r.db.Exec(ctx, insertDispatch,
		d.ID,
		d.Reference,
		d.Recipient,
		d.Status,
		d.MessageID,
		d.ErrorMessage,
		d.Amount,
		d.Duration.Milliseconds(),
		d.SentAt,
	)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.SQLState() == repositories.UniqueViolationError {
		return apperrors.NewConflictError(fmt.Sprintf("dispatch %s already recorded", d.ID))
	}
	if err != nil {
		return fmt.Errorf("insert dispatch: %w", err)
	}
	return nil
}

const selectDispatchesByReference = `
SELECT id::text, reference, recipient, status, message_id, error, amount, duration_ms, sent_at
FROM receipt_dispatches
WHERE reference = $1
ORDER BY sent_at DESC`

// ListByReference returns the attempts for one transaction, newest first.
func (r *DispatchRepositoryImpl) ListByReference(ctx context.Context, reference string) ([]models.Dispatch, error) {
	rows, err := r.db.Query(ctx, selectDispatchesByReference, reference)
	if err != nil {
		return nil, fmt.Errorf("select dispatches: %w", err)
	}

	dispatches, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Dispatch, error) {
		var (
			d          models.Dispatch
			durationMS int64
		)
		err := row.Scan(&d.ID, &d.Reference, &d.Recipient, &d.Status, &d.MessageID, &d.ErrorMessage, &d.Amount, &durationMS, &d.SentAt)
		d.Duration = time.Duration(durationMS) * time.Millisecond
		return d, err
	})
	if err != nil {
		r.logger.Error().Err(err).Str("reference", reference).Msg("failed to read dispatches")
		return nil, fmt.Errorf("scan dispatches: %w", err)
	}
	return dispatches, nil
}

const deleteDispatchesBefore = `DELETE FROM receipt_dispatches WHERE sent_at < $1`

// DeleteOlderThan removes attempts recorded before cutoff and returns how many went.
func (r *DispatchRepositoryImpl) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, deleteDispatchesBefore, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete dispatches: %w", err)
	}
	return tag.RowsAffected(), nil
}

// NopDispatchRepository is used when no dispatch database is configured.
type NopDispatchRepository struct{}

func (NopDispatchRepository) Insert(context.Context, *models.Dispatch) error {
	return nil
}

func (NopDispatchRepository) ListByReference(context.Context, string) ([]models.Dispatch, error) {
	return nil, nil
}

func (NopDispatchRepository) DeleteOlderThan(context.Context, time.Time) (int64, error) {
	return 0, nil
}
