package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/hillcrest-auto/dealer-backend/internal/usecase"
)

// defaultBannerSpec runs the banner sweep daily at 03:00.
const defaultBannerSpec = "0 3 * * *"

// Scheduler owns the process's background jobs. It is started in main and
// stopped on shutdown so tests can run the service without ambient timers.
type Scheduler struct {
	cron   *cron.Cron
	banner *usecase.BannerService
	logger *zap.Logger
}

// New creates a scheduler wired to the banner service.
func New(banner *usecase.BannerService, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		banner: banner,
		logger: logger,
	}
}

// Start registers the banner job and starts the cron loop. An empty spec
// falls back to the daily default.
func (s *Scheduler) Start(spec string) error {
	if spec == "" {
		spec = defaultBannerSpec
	}

	_, err := s.cron.AddFunc(spec, s.runBannerCleanup)
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("Scheduler started", zap.String("banner_spec", spec))
	return nil
}

// Stop halts the cron loop and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(10 * time.Second):
		s.logger.Warn("Scheduler stop timed out")
	}
	s.logger.Info("Scheduler stopped")
}

func (s *Scheduler) runBannerCleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	// A failed run only delays expiry until the next run; log and move on.
	if _, err := s.banner.CleanupExpired(ctx); err != nil {
		s.logger.Error("Scheduled banner cleanup failed", zap.Error(err))
	}
}
