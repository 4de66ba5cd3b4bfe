package reminder

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pawkeep/reminder-service/internal/model"
	"github.com/pawkeep/reminder-service/internal/storage"
)

var ErrReminderNotFound = errors.New("reminder not found")

// Update describes a partial update of a reminder. Nil fields are left
// unchanged. Only the three mutable attributes can be touched; id,
// createdAt and the sent state are owned elsewhere.
type Update struct {
	Title   *string
	Message *string
	Time    *string
}

// Repository provides CRUD operations over the reminder record store.
//
// All operations perform a full read-modify-write cycle under one mutex, so
// API mutations and scheduler ticks can never interleave and lose updates.
type Repository struct {
	store storage.Store
	mu    sync.Mutex
}

// NewRepository creates a new reminder repository over the given store.
func NewRepository(store storage.Store) *Repository {
	return &Repository{store: store}
}

// CreateReminder assigns identity and creation state to the given reminder,
// appends it to the collection and persists the result.
func (r *Repository) CreateReminder(ctx context.Context, reminder model.Reminder) (model.Reminder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	reminders, err := r.store.ReadAll(ctx)
	if err != nil {
		return model.Reminder{}, fmt.Errorf("read reminders: %w", err)
	}

	reminder.ID = uuid.New()
	reminder.CreatedAt = time.Now().UTC()
	reminder.Sent = false
	reminder.SentAt = nil

	reminders = append(reminders, reminder)

	if err := r.store.WriteAll(ctx, reminders); err != nil {
		return model.Reminder{}, fmt.Errorf("write reminders: %w", err)
	}

	return reminder, nil
}

// GetAllReminders returns all reminders in stored order.
func (r *Repository) GetAllReminders(ctx context.Context) ([]model.Reminder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	reminders, err := r.store.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("read reminders: %w", err)
	}

	return reminders, nil
}

// GetReminderByID returns the reminder with the given id.
func (r *Repository) GetReminderByID(ctx context.Context, id uuid.UUID) (model.Reminder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	reminders, err := r.store.ReadAll(ctx)
	if err != nil {
		return model.Reminder{}, fmt.Errorf("read reminders: %w", err)
	}

	for _, reminder := range reminders {
		if reminder.ID == id {
			return reminder, nil
		}
	}

	return model.Reminder{}, ErrReminderNotFound
}

// UpdateReminder applies a partial update to the reminder with the given id
// and persists the full collection.
func (r *Repository) UpdateReminder(ctx context.Context, id uuid.UUID, upd Update) (model.Reminder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	reminders, err := r.store.ReadAll(ctx)
	if err != nil {
		return model.Reminder{}, fmt.Errorf("read reminders: %w", err)
	}

	for i := range reminders {
		if reminders[i].ID != id {
			continue
		}

		if upd.Title != nil {
			reminders[i].Title = *upd.Title
		}
		if upd.Message != nil {
			reminders[i].Message = *upd.Message
		}
		if upd.Time != nil {
			reminders[i].Time = *upd.Time
		}

		if err := r.store.WriteAll(ctx, reminders); err != nil {
			return model.Reminder{}, fmt.Errorf("write reminders: %w", err)
		}

		return reminders[i], nil
	}

	return model.Reminder{}, ErrReminderNotFound
}

// DeleteReminder removes the reminder with the given id and returns it.
func (r *Repository) DeleteReminder(ctx context.Context, id uuid.UUID) (model.Reminder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	reminders, err := r.store.ReadAll(ctx)
	if err != nil {
		return model.Reminder{}, fmt.Errorf("read reminders: %w", err)
	}

	for i := range reminders {
		if reminders[i].ID != id {
			continue
		}

		removed := reminders[i]
		reminders = append(reminders[:i], reminders[i+1:]...)

		if err := r.store.WriteAll(ctx, reminders); err != nil {
			return model.Reminder{}, fmt.Errorf("write reminders: %w", err)
		}

		return removed, nil
	}

	return model.Reminder{}, ErrReminderNotFound
}

// Mutate runs fn over the full collection inside the repository lock and
// persists the collection once if fn reports a change. The scheduler uses
// this for its batched scan-and-fire commit.
func (r *Repository) Mutate(ctx context.Context, fn func(reminders []model.Reminder) bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	reminders, err := r.store.ReadAll(ctx)
	if err != nil {
		return fmt.Errorf("read reminders: %w", err)
	}

	if !fn(reminders) {
		return nil
	}

	if err := r.store.WriteAll(ctx, reminders); err != nil {
		return fmt.Errorf("write reminders: %w", err)
	}

	return nil
}
