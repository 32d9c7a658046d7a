package app

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/mufasadev/easypay-receipts/pkg/log"
)

const purgeTimeout = 30 * time.Second

type PurgeHandler interface {
	Execute(ctx context.Context) error
}

// PurgeProcess runs a PurgeHandler on a fixed interval until its context ends.
type PurgeProcess struct {
	handler  PurgeHandler
	interval time.Duration
	logger   *zerolog.Logger
}

func NewPurgeProcess(h PurgeHandler, interval time.Duration) *PurgeProcess {
	l := log.GetLogger()
	return &PurgeProcess{handler: h, interval: interval, logger: &l}
}

// Run runs the purge process.
func (p *PurgeProcess) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info().Msg("Purge process stopped")
			return
		case <-ticker.C:
			runCtx, cancel := context.WithTimeout(ctx, purgeTimeout)
			// failures are logged by the handler; the next tick tries again
			_ = p.handler.Execute(runCtx)
			cancel()
		}
	}
}
