package reminders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/teambition/rrule-go"

	"github.com/moneta-app/moneta/internal/common"
	"github.com/moneta-app/moneta/internal/logging"
)

// Scheduler derives triggers from reminder intents and registers them with
// the external registrar. Trigger derivation itself is pure; the only side
// effect is the Register call, bounded by the configured timeout.
type Scheduler struct {
	registrar Registrar
	timeout   time.Duration
	log       logging.Logger
}

func NewScheduler(registrar Registrar, timeout time.Duration, log logging.Logger) *Scheduler {
	return &Scheduler{
		registrar: registrar,
		timeout:   timeout,
		log:       log.With("component", "scheduler"),
	}
}

var rruleWeekdays = map[time.Weekday]string{
	time.Monday:    "MO",
	time.Tuesday:   "TU",
	time.Wednesday: "WE",
	time.Thursday:  "TH",
	time.Friday:    "FR",
	time.Saturday:  "SA",
	time.Sunday:    "SU",
}

// BuildTrigger derives the firing schedule for an intent. One-shot intents keep
// the anchor truncated to the minute. Recurring intents yield a calendar
// pattern matching the anchor's fields per the recurrence rule; an
// unsupported recurrence value falls back to the yearly pattern. Every call
// assigns a fresh trigger id.
func (s *Scheduler) BuildTrigger(intent Intent) Trigger {
	anchor := intent.AnchorDate.Truncate(time.Minute)

	t := Trigger{
		ID:     uuid.NewString(),
		Anchor: anchor,
	}

	if intent.Recurrence == RecurrenceNone {
		t.FireAt = anchor
		return t
	}

	t.Repeats = true
	t.RRule = s.buildPattern(intent.Recurrence, anchor)
	return t
}

func (s *Scheduler) buildPattern(rec Recurrence, anchor time.Time) string {
	hm := fmt.Sprintf("BYHOUR=%d;BYMINUTE=%d", anchor.Hour(), anchor.Minute())

	switch rec {
	case RecurrenceDaily:
		return "FREQ=DAILY;" + hm
	case RecurrenceWeekly:
		return fmt.Sprintf("FREQ=WEEKLY;BYDAY=%s;%s", rruleWeekdays[anchor.Weekday()], hm)
	case RecurrenceMonthly:
		return fmt.Sprintf("FREQ=MONTHLY;BYMONTHDAY=%d;%s", anchor.Day(), hm)
	case RecurrenceYearly:
		return fmt.Sprintf("FREQ=YEARLY;BYMONTH=%d;BYMONTHDAY=%d;%s",
			int(anchor.Month()), anchor.Day(), hm)
	default:
		s.log.Warn(context.Background(), "unsupported recurrence, falling back to yearly",
			"recurrence", string(rec))
		return s.buildPattern(RecurrenceYearly, anchor)
	}
}

// Schedule builds the trigger for intent and registers it. The registrar
// call is bounded by the configured timeout; on failure the trigger is still
// returned alongside an error wrapping common.ErrScheduling, so the caller
// can keep its local bookkeeping.
func (s *Scheduler) Schedule(ctx context.Context, intent Intent) (Trigger, error) {
	t := s.BuildTrigger(intent)

	regCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	id, err := s.registrar.Register(regCtx, t)
	if err != nil {
		s.log.Error(ctx, "trigger registration failed",
			"trigger_id", t.ID, "repeats", t.Repeats, "err", err)
		return t, fmt.Errorf("%w: trigger %s: %w", common.ErrScheduling, t.ID, err)
	}
	if id != "" {
		// the registrar's handle is what cancellation must address
		t.ID = id
	}

	return t, nil
}

// Unregister cancels a registered trigger by id.
func (s *Scheduler) Unregister(ctx context.Context, id string) error {
	regCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.registrar.Unregister(regCtx, id)
}

// NextOccurrence computes the next firing time of t strictly after the
// given instant. Returns common.ErrNotFound when the trigger will not fire
// again (a one-shot whose time has passed).
func (s *Scheduler) NextOccurrence(t Trigger, after time.Time) (time.Time, error) {
	if !t.Repeats {
		if t.FireAt.After(after) {
			return t.FireAt, nil
		}
		return time.Time{}, common.ErrNotFound
	}

	opt, err := rrule.StrToROption(t.RRule)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse trigger pattern %q: %w", t.RRule, err)
	}
	opt.Dtstart = t.Anchor

	rule, err := rrule.NewRRule(*opt)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to build recurrence rule: %w", err)
	}

	next := rule.After(after, false)
	if next.IsZero() {
		return time.Time{}, common.ErrNotFound
	}
	return next, nil
}
