package storage

import (
	"context"

	"github.com/pawkeep/reminder-service/internal/model"
)

// Store is the durable record store for the reminder collection.
//
// Implementations persist the collection as one authoritative snapshot:
// every mutation reads the full list, changes it, and writes the full list
// back. Read-modify-write atomicity is the caller's responsibility.
type Store interface {
	// ReadAll loads the current collection, bootstrapping an empty one
	// if no state exists yet.
	ReadAll(ctx context.Context) ([]model.Reminder, error)

	// WriteAll replaces the stored collection with the given list.
	WriteAll(ctx context.Context, reminders []model.Reminder) error
}
