package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/moneta-app/moneta/internal/logging"
	"github.com/moneta-app/moneta/internal/reminders"
)

// Coordinator composes trigger scheduling with the local feed: every
// reminder produces both an OS-level trigger registration and a feed entry.
// The feed entry is guaranteed even when the registrar is down; a
// registration failure is reported in the result, never silently dropped.
type Coordinator struct {
	scheduler *reminders.Scheduler
	feed      *Log
	log       logging.Logger
}

func NewCoordinator(scheduler *reminders.Scheduler, feed *Log, log logging.Logger) *Coordinator {
	return &Coordinator{
		scheduler: scheduler,
		feed:      feed,
		log:       log.With("component", "coordinator"),
	}
}

// ScheduleResult is what a scheduling request produced. Record always
// exists; SchedulingErr is non-nil when trigger registration failed
// (best-effort reminder, guaranteed log).
type ScheduleResult struct {
	Record        Record
	Trigger       reminders.Trigger
	SchedulingErr error
}

var kindTitles = map[reminders.Kind]struct {
	title string
	typ   Type
}{
	reminders.KindIncome:  {"Income Reminder", TypeIncome},
	reminders.KindExpense: {"Expense Reminder", TypeExpense},
	reminders.KindPayment: {"Payment Reminder", TypeReminder},
}

func buildRecord(intent reminders.Intent) Record {
	meta, ok := kindTitles[intent.Kind]
	if !ok {
		meta.title = "Reminder"
		meta.typ = TypeReminder
	}

	message := "Rs. " + intent.Amount.StringFixed(2)
	if intent.Description != "" {
		message += " - " + intent.Description
	}

	scheduled := intent.AnchorDate.Truncate(time.Minute)

	return Record{
		ID:          uuid.NewString(),
		Title:       meta.title,
		Message:     message,
		Type:        meta.typ,
		CreatedAt:   time.Now().UTC(),
		ScheduledAt: &scheduled,
	}
}

// ScheduleReminder registers a trigger for intent and appends the matching
// feed entry. The append happens regardless of registration outcome; only a
// failure to persist the feed entry itself is returned as an error.
func (c *Coordinator) ScheduleReminder(ctx context.Context, intent reminders.Intent) (*ScheduleResult, error) {
	trigger, schedErr := c.scheduler.Schedule(ctx, intent)
	if schedErr != nil {
		c.log.Warn(ctx, "reminder scheduled without OS trigger",
			"trigger_id", trigger.ID, "kind", string(intent.Kind), "err", schedErr)
	}

	record := buildRecord(intent)
	if err := c.feed.Append(ctx, record); err != nil {
		return nil, fmt.Errorf("append notification %s: %w", record.ID, err)
	}

	return &ScheduleResult{
		Record:        record,
		Trigger:       trigger,
		SchedulingErr: schedErr,
	}, nil
}

// CancelTrigger cancels a previously registered recurring trigger.
func (c *Coordinator) CancelTrigger(ctx context.Context, triggerID string) error {
	return c.scheduler.Unregister(ctx, triggerID)
}
