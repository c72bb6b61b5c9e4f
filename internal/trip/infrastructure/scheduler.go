package infrastructure

import (
	"context"
	"time"

	"github.com/transgare/backoffice/internal/trip/application"
	pkgApp "github.com/transgare/backoffice/pkg/application"
)

// Scheduler re-runs trip generation on a fixed interval. Safe to run as
// often as wanted: generation is idempotent per template and date.
type Scheduler struct {
	generator *application.Generator
	horizon   int
	interval  time.Duration
	logger    pkgApp.AppLogger
}

func NewScheduler(generator *application.Generator, horizonDays int, interval time.Duration, logger pkgApp.AppLogger) *Scheduler {
	return &Scheduler{
		generator: generator,
		horizon:   horizonDays,
		interval:  interval,
		logger:    logger,
	}
}

// Run blocks until the context is cancelled. The first generation pass
// happens immediately.
func (s *Scheduler) Run(ctx context.Context) {
	if s.interval <= 0 {
		return
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.generate(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.generate(ctx)
		}
	}
}

func (s *Scheduler) generate(ctx context.Context) {
	report, err := s.generator.Generate(ctx, time.Now(), s.horizon)
	if err != nil {
		pkgApp.LogError(ctx, s.logger, "scheduled trip generation failed", err, nil)
		return
	}
	s.logger.Info(ctx, "scheduled trip generation done", map[string]interface{}{
		"created":  report.Created,
		"existing": report.Existing,
		"skipped":  len(report.Skipped),
	})
}
