package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/mufasadev/easypay-receipts/internal/config"
	"github.com/mufasadev/easypay-receipts/internal/errors"
	"github.com/mufasadev/easypay-receipts/pkg/log"
)

// shutdownTimeout covers an in-flight render and SMTP submission.
const shutdownTimeout = 30 * time.Second

// Drainer waits for background work started by request handlers.
type Drainer interface {
	Wait()
}

type Service struct {
	config  *config.Config
	drainer Drainer
	logger  *zerolog.Logger
}

// NewService creates a new instance of the service
func NewService(cfg *config.Config, drainer Drainer) *Service {
	l := log.GetLogger()
	return &Service{config: cfg, drainer: drainer, logger: &l}
}

// Run starts the server and listens for incoming requests
func (s *Service) Run(ctx context.Context, router chi.Router) {
	server := &http.Server{
		Addr:              s.config.Server.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Fatal().Err(err).Msg(errors.ErrorFailedToRunTheServer)
		}
	}()

	s.logger.Info().Str("addr", s.config.Server.Addr()).Msg("Server is listening")
	done := make(chan struct{})
	go s.shutdown(ctx, server, done)
	<-done
}

// shutdown gracefully shuts down the server without interrupting any active connections.
func (s *Service) shutdown(ctx context.Context, server *http.Server, done chan struct{}) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case <-ctx.Done():
		s.logger.Info().Msg("Server is shutting down due to context cancellation...")
	case <-quit:
		s.logger.Info().Msg("Server is shutting down...")
	}

	ctxShutdown, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctxShutdown); err != nil {
		s.logger.Error().Err(err).Msg(errors.ErrorFailedToShutdownTheServer)
	}
	if s.drainer != nil {
		s.drainer.Wait()
	}

	s.logger.Info().Msg("Server stopped")
	close(done)
}
