// Package jobs runs the periodic maintenance tasks of the service.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/waterworks/records/internal/metrics"
	"github.com/waterworks/records/internal/models"
	"github.com/waterworks/records/internal/store"
)

// OverdueSweeper moves Pending bills past their grace period to Overdue.
type OverdueSweeper struct {
	Store     *store.Store
	GraceDays int
	Logger    zerolog.Logger
	Metrics   *metrics.Metrics
	Now       func() time.Time
}

// Cutoff is the first period end that is still within the grace period.
func (s *OverdueSweeper) Cutoff() models.Date {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	return models.NewDate(now().AddDate(0, 0, -s.GraceDays))
}

// Run performs a single sweep and returns the bills it marked.
func (s *OverdueSweeper) Run(ctx context.Context) ([]models.Bill, error) {
	cutoff := s.Cutoff()
	marked, err := s.Store.MarkOverdue(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("overdue sweep: %w", err)
	}

	if s.Metrics != nil {
		s.Metrics.Records.BillsOverdueTotal.Add(float64(len(marked)))
	}
	s.Logger.Info().
		Str("cutoff", cutoff.String()).
		Int("marked", len(marked)).
		Msg("overdue billing sweep finished")
	return marked, nil
}

// Scheduler wraps a cron runner for the sweeper.
type Scheduler struct {
	cron *cron.Cron
}

// Start schedules sweeper on spec (standard cron syntax or descriptors such
// as "@hourly") and starts the runner. Overlapping runs are skipped.
func Start(ctx context.Context, spec string, sweeper *OverdueSweeper) (*Scheduler, error) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))

	_, err := c.AddFunc(spec, func() {
		if _, err := sweeper.Run(ctx); err != nil {
			sweeper.Logger.Error().Err(err).Msg("overdue billing sweep failed")
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", spec, err)
	}

	c.Start()
	return &Scheduler{cron: c}, nil
}

// Stop halts scheduling and waits for a running sweep to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
