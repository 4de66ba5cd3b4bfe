package reminder

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/retry"

	"github.com/pawkeep/reminder-service/internal/model"
	reminderrepo "github.com/pawkeep/reminder-service/internal/repository/reminder"
)

type reminderRepository interface {
	CreateReminder(ctx context.Context, reminder model.Reminder) (model.Reminder, error)
	GetAllReminders(ctx context.Context) ([]model.Reminder, error)
	GetReminderByID(ctx context.Context, id uuid.UUID) (model.Reminder, error)
	UpdateReminder(ctx context.Context, id uuid.UUID, upd reminderrepo.Update) (model.Reminder, error)
	DeleteReminder(ctx context.Context, id uuid.UUID) (model.Reminder, error)
}

// Service exposes reminder business operations over the repository.
//
// Mutating operations take a retry strategy so a transient storage failure
// is retried before the request fails. The repository cycles are idempotent
// full-snapshot writes, so re-running one is safe.
type Service struct {
	repo reminderRepository
}

// NewService creates a new reminder service.
func NewService(repo reminderRepository) *Service {
	return &Service{repo: repo}
}

// withRetry runs fn under the given strategy, always attempting at least once.
func withRetry(strategy retry.Strategy, fn func() error) error {
	if strategy.Attempts <= 0 {
		strategy.Attempts = 1
	}

	return retry.Do(fn, strategy)
}

// CreateReminder stores a new reminder and returns the created record.
func (s *Service) CreateReminder(ctx context.Context, strategy retry.Strategy, reminder model.Reminder) (model.Reminder, error) {
	var created model.Reminder

	err := withRetry(strategy, func() error {
		var err error
		created, err = s.repo.CreateReminder(ctx, reminder)
		return err
	})
	if err != nil {
		return model.Reminder{}, fmt.Errorf("create reminder: %w", err)
	}

	return created, nil
}

// GetAllReminders returns all reminders in stored order.
func (s *Service) GetAllReminders(ctx context.Context) ([]model.Reminder, error) {
	reminders, err := s.repo.GetAllReminders(ctx)
	if err != nil {
		return nil, fmt.Errorf("get all reminders: %w", err)
	}

	return reminders, nil
}

// GetReminderByID returns the reminder with the given id.
func (s *Service) GetReminderByID(ctx context.Context, id uuid.UUID) (model.Reminder, error) {
	reminder, err := s.repo.GetReminderByID(ctx, id)
	if err != nil {
		return model.Reminder{}, fmt.Errorf("get reminder: %w", err)
	}

	return reminder, nil
}

// UpdateReminder applies a partial update and returns the updated record.
func (s *Service) UpdateReminder(ctx context.Context, strategy retry.Strategy, id uuid.UUID, upd reminderrepo.Update) (model.Reminder, error) {
	var updated model.Reminder

	err := withRetry(strategy, func() error {
		var err error
		updated, err = s.repo.UpdateReminder(ctx, id, upd)
		return err
	})
	if err != nil {
		return model.Reminder{}, fmt.Errorf("update reminder: %w", err)
	}

	return updated, nil
}

// DeleteReminder removes the reminder with the given id and returns it.
func (s *Service) DeleteReminder(ctx context.Context, strategy retry.Strategy, id uuid.UUID) (model.Reminder, error) {
	var removed model.Reminder

	err := withRetry(strategy, func() error {
		var err error
		removed, err = s.repo.DeleteReminder(ctx, id)
		return err
	})
	if err != nil {
		return model.Reminder{}, fmt.Errorf("delete reminder: %w", err)
	}

	return removed, nil
}
