package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"finsync/config"
	"finsync/internal/delivery"
	"finsync/internal/domain/lifecycle"
	"finsync/internal/infra/metrics"
	"finsync/internal/usecase"

	"go.uber.org/fx"
)

// sessionSweeper periodically deletes expired and long-revoked refresh tokens.
type sessionSweeper struct {
	interval  time.Duration
	sessionUC usecase.SessionUsecase
	metrics   *metrics.Metrics
	logger    *slog.Logger

	done     chan struct{}
	stopOnce sync.Once
}

// SessionSweeperParams holds dependencies for the session sweeper
type SessionSweeperParams struct {
	fx.In

	Lc        fx.Lifecycle
	Cfg       *config.Config
	Logger    *slog.Logger
	Metrics   *metrics.Metrics
	SessionUC usecase.SessionUsecase
}

// NewSessionSweeper creates the sweeper delivery.
func NewSessionSweeper(params SessionSweeperParams) delivery.Delivery {
	s := &sessionSweeper{
		interval:  params.Cfg.Auth.SessionSweepInterval,
		sessionUC: params.SessionUC,
		metrics:   params.Metrics,
		logger:    params.Logger,
		done:      make(chan struct{}),
	}

	params.Lc.Append(fx.Hook{
		OnStop: s.stop,
	})

	return s
}

// Serve sweeps once immediately and then on every tick until stopped.
func (s *sessionSweeper) Serve(ctx context.Context) error {
	s.logger.Info("Starting session sweeper", slog.Duration("interval", s.interval))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		s.sweep(ctx)

		select {
		case <-s.done:
			return nil
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (s *sessionSweeper) sweep(ctx context.Context) {
	sweepCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	purged, err := s.sessionUC.PurgeExpired(sweepCtx)
	if err != nil {
		s.logger.Error("Failed to purge expired sessions", slog.Any("error", err))

		return
	}

	s.metrics.SessionsPurged(purged)
	if purged > 0 {
		s.logger.Info("Purged expired sessions", slog.Int64("count", purged))
	}
}

func (s *sessionSweeper) stop(context.Context) error {
	s.stopOnce.Do(func() { close(s.done) })

	return nil
}
