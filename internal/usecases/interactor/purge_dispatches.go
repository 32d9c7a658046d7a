package interactor

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/mufasadev/easypay-receipts/internal/domain/repositories"
	"github.com/mufasadev/easypay-receipts/pkg/log"
)

type PurgeDispatchesInteractor struct {
	dispatches repositories.DispatchRepository
	maxAge     time.Duration
	now        func() time.Time
	logger     *zerolog.Logger
	sync.Mutex
}

// NewPurgeDispatchesInteractor creates a new PurgeDispatchesInteractor
func NewPurgeDispatchesInteractor(dispatches repositories.DispatchRepository, maxAge time.Duration) *PurgeDispatchesInteractor {
	l := log.GetLogger()
	return &PurgeDispatchesInteractor{
		dispatches: dispatches,
		maxAge:     maxAge,
		now:        time.Now,
		logger:     &l,
	}
}

// Execute deletes dispatch log rows older than the retention window.
func (p *PurgeDispatchesInteractor) Execute(ctx context.Context) error {
	p.Lock()
	defer p.Unlock()

	cutoff := p.now().Add(-p.maxAge)
	deleted, err := p.dispatches.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		p.logger.Error().Err(err).Time("cutoff", cutoff).Msg("Failed to purge receipt dispatches")
		return err
	}

	if deleted > 0 {
		p.logger.Info().Int64("deleted", deleted).Time("cutoff", cutoff).Msg("receipt dispatches purged")
	}
	return nil
}
