package model

import (
	"time"

	"github.com/google/uuid"
)

// Reminder represents a timed reminder entity in the system.
type Reminder struct {
	ID        uuid.UUID  `json:"id"`        // unique identifier for the reminder
	Title     string     `json:"title"`     // short title, required
	Message   string     `json:"message"`   // optional message body
	Time      string     `json:"time"`      // due moment as raw ISO-8601 text
	CreatedAt time.Time  `json:"createdAt"` // timestamp when the reminder was created
	Sent      bool       `json:"sent"`      // whether the reminder has fired
	SentAt    *time.Time `json:"sentAt"`    // timestamp when the reminder fired, nil until then
}

// DueAt reports whether the reminder is due at the given moment.
//
// The due time is kept as raw text so a malformed value stays a per-record
// condition; parsing happens here, at evaluation time. A reminder that is
// already sent is never due. A parse failure is returned so callers can
// decide how to treat the record.
func (r Reminder) DueAt(now time.Time) (bool, error) {
	if r.Sent {
		return false, nil
	}

	t, err := time.Parse(time.RFC3339, r.Time)
	if err != nil {
		return false, err
	}

	return !t.After(now), nil
}
