// Package notify provides delivery clients for fired reminders.
//
// The log client is the default delivery channel: it emits the reminder as
// a structured log event. Real transports (email, push, telegram) implement
// the same Send shape and slot in without touching the scheduler.
package notify

import (
	"github.com/wb-go/wbf/zlog"

	"github.com/pawkeep/reminder-service/internal/model"
)

// LogClient delivers reminders to the service log.
type LogClient struct{}

// NewLogClient creates a log-based delivery client.
func NewLogClient() *LogClient {
	return &LogClient{}
}

// Send emits the fired reminder as a structured log event.
func (c *LogClient) Send(reminder model.Reminder) error {
	zlog.Logger.Info().
		Str("id", reminder.ID.String()).
		Str("title", reminder.Title).
		Str("message", reminder.Message).
		Str("time", reminder.Time).
		Msg("reminder fired")

	return nil
}
