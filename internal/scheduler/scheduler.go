// Package scheduler implements the periodic scan-and-fire loop over the
// reminder collection.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/pawkeep/reminder-service/internal/model"
)

type reminderRepository interface {
	Mutate(ctx context.Context, fn func(reminders []model.Reminder) bool) error
}

// Notifier delivers a fired reminder. Delivery failure for one reminder
// must not affect the rest of a scan.
type Notifier interface {
	Send(reminder model.Reminder) error
}

// Scheduler periodically scans the reminder collection, fires due
// reminders and marks them sent.
type Scheduler struct {
	repo     reminderRepository
	notifier Notifier
	interval time.Duration
	strategy retry.Strategy
}

// New creates a scheduler that scans every interval using the given
// retry strategy for the tick commit.
func New(repo reminderRepository, notifier Notifier, interval time.Duration, strategy retry.Strategy) *Scheduler {
	return &Scheduler{
		repo:     repo,
		notifier: notifier,
		interval: interval,
		strategy: strategy,
	}
}

// Run blocks and executes one tick immediately, then one per interval,
// until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	if s.interval <= 0 {
		return fmt.Errorf("scheduler interval must be positive, got %s", s.interval)
	}

	zlog.Logger.Info().Dur("interval", s.interval).Msg("scheduler started")

	s.Tick(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zlog.Logger.Info().Msg("scheduler shutting down")
			return nil
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

// Tick runs a single scan-and-fire cycle. Exported so tests can drive
// scans deterministically instead of waiting on the ticker.
//
// The whole cycle is one locked read-modify-write against the repository:
// due reminders are fired and flipped to sent, and the collection is
// persisted once at the end if anything changed. A commit failure is
// retried per the strategy and otherwise left for the next tick.
func (s *Scheduler) Tick(ctx context.Context) {
	strategy := s.strategy
	if strategy.Attempts <= 0 {
		strategy.Attempts = 1
	}

	err := retry.Do(func() error {
		return s.repo.Mutate(ctx, s.scan)
	}, strategy)
	if err != nil {
		zlog.Logger.Error().Err(err).Msg("scheduler tick failed, changes deferred to next tick")
	}
}

// scan fires every due reminder in stored order and reports whether any
// record changed.
func (s *Scheduler) scan(reminders []model.Reminder) bool {
	now := time.Now().UTC()
	changed := false

	for i := range reminders {
		r := &reminders[i]
		if r.Sent {
			continue
		}

		due, err := r.DueAt(now)
		if err != nil {
			zlog.Logger.Warn().
				Str("id", r.ID.String()).
				Str("time", r.Time).
				Msg("unparsable reminder time, treating as not due")
			continue
		}
		if !due {
			continue
		}

		if err := s.notifier.Send(*r); err != nil {
			// Left unsent so the next tick retries delivery.
			zlog.Logger.Error().Err(err).Str("id", r.ID.String()).Msg("failed to fire reminder")
			continue
		}

		sentAt := now
		r.Sent = true
		r.SentAt = &sentAt
		changed = true
	}

	return changed
}
