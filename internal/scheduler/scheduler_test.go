package scheduler

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/retry"

	"github.com/pawkeep/reminder-service/internal/model"
	reminderrepo "github.com/pawkeep/reminder-service/internal/repository/reminder"
	"github.com/pawkeep/reminder-service/internal/storage/jsonfile"
)

// recordingNotifier captures fired reminders and optionally fails sends.
type recordingNotifier struct {
	sent    []model.Reminder
	sendErr error
}

func (n *recordingNotifier) Send(r model.Reminder) error {
	if n.sendErr != nil {
		return n.sendErr
	}
	n.sent = append(n.sent, r)
	return nil
}

func setup(t *testing.T) (*reminderrepo.Repository, *recordingNotifier, *Scheduler) {
	repo := reminderrepo.NewRepository(jsonfile.New(filepath.Join(t.TempDir(), "reminders.json")))
	notifier := &recordingNotifier{}
	strategy := retry.Strategy{Attempts: 1, Delay: time.Millisecond}
	sched := New(repo, notifier, 30*time.Second, strategy)
	return repo, notifier, sched
}

func TestTick_FiresDueReminderOnce(t *testing.T) {
	repo, notifier, sched := setup(t)
	ctx := context.Background()

	created, err := repo.CreateReminder(ctx, model.Reminder{
		Title: "Vaccine",
		Time:  "2020-01-01T00:00:00Z",
	})
	require.NoError(t, err)

	sched.Tick(ctx)

	got, err := repo.GetReminderByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, got.Sent)
	require.NotNil(t, got.SentAt)
	assert.False(t, got.SentAt.Before(got.CreatedAt))
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, created.ID, notifier.sent[0].ID)

	// A second tick must not re-fire the same reminder.
	firstSentAt := *got.SentAt
	sched.Tick(ctx)

	got, err = repo.GetReminderByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, got.Sent)
	assert.Equal(t, firstSentAt, *got.SentAt)
	assert.Len(t, notifier.sent, 1)
}

func TestTick_SkipsFutureReminder(t *testing.T) {
	repo, notifier, sched := setup(t)
	ctx := context.Background()

	created, err := repo.CreateReminder(ctx, model.Reminder{
		Title: "Future",
		Time:  "2999-01-01T00:00:00Z",
	})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		sched.Tick(ctx)
	}

	got, err := repo.GetReminderByID(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, got.Sent)
	assert.Nil(t, got.SentAt)
	assert.Empty(t, notifier.sent)
}

func TestTick_SkipsMalformedTime(t *testing.T) {
	repo, notifier, sched := setup(t)
	ctx := context.Background()

	broken, err := repo.CreateReminder(ctx, model.Reminder{Title: "Broken", Time: "next tuesday"})
	require.NoError(t, err)

	due, err := repo.CreateReminder(ctx, model.Reminder{Title: "Due", Time: "2020-01-01T00:00:00Z"})
	require.NoError(t, err)

	sched.Tick(ctx)

	// The malformed record is treated as not due and never crashes the scan.
	got, err := repo.GetReminderByID(ctx, broken.ID)
	require.NoError(t, err)
	assert.False(t, got.Sent)
	assert.Nil(t, got.SentAt)

	// The record after it still fires.
	got, err = repo.GetReminderByID(ctx, due.ID)
	require.NoError(t, err)
	assert.True(t, got.Sent)
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, due.ID, notifier.sent[0].ID)
}

func TestTick_SendFailureLeavesReminderPending(t *testing.T) {
	repo, notifier, sched := setup(t)
	ctx := context.Background()

	created, err := repo.CreateReminder(ctx, model.Reminder{Title: "Flaky", Time: "2020-01-01T00:00:00Z"})
	require.NoError(t, err)

	notifier.sendErr = errors.New("delivery unavailable")
	sched.Tick(ctx)

	got, err := repo.GetReminderByID(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, got.Sent)
	assert.Nil(t, got.SentAt)

	// Delivery recovers, the next tick fires it.
	notifier.sendErr = nil
	sched.Tick(ctx)

	got, err = repo.GetReminderByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, got.Sent)
	require.Len(t, notifier.sent, 1)
}

func TestTick_BatchesMixedScan(t *testing.T) {
	repo, notifier, sched := setup(t)
	ctx := context.Background()

	past1, err := repo.CreateReminder(ctx, model.Reminder{Title: "past-1", Time: "2020-01-01T00:00:00Z"})
	require.NoError(t, err)
	future, err := repo.CreateReminder(ctx, model.Reminder{Title: "future", Time: "2999-01-01T00:00:00Z"})
	require.NoError(t, err)
	past2, err := repo.CreateReminder(ctx, model.Reminder{Title: "past-2", Time: "2021-06-15T12:00:00Z"})
	require.NoError(t, err)

	sched.Tick(ctx)

	require.Len(t, notifier.sent, 2)
	assert.Equal(t, past1.ID, notifier.sent[0].ID)
	assert.Equal(t, past2.ID, notifier.sent[1].ID)

	got, err := repo.GetReminderByID(ctx, future.ID)
	require.NoError(t, err)
	assert.False(t, got.Sent)
}

func TestRun_RejectsNonPositiveInterval(t *testing.T) {
	repo, notifier, _ := setup(t)

	sched := New(repo, notifier, 0, retry.Strategy{Attempts: 1})
	err := sched.Run(context.Background())
	assert.Error(t, err)
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	_, _, sched := setup(t)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- sched.Run(ctx) }()

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop on context cancel")
	}
}
