package notifications

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/moneta-app/moneta/internal/common"
	"github.com/moneta-app/moneta/internal/logging"
	"github.com/moneta-app/moneta/internal/reminders"
)

type brokenRegistrar struct{}

func (brokenRegistrar) Register(ctx context.Context, t reminders.Trigger) (string, error) {
	return "", errors.New("os scheduler unavailable")
}

func (brokenRegistrar) Unregister(ctx context.Context, id string) error {
	return errors.New("os scheduler unavailable")
}

func newCoordinator(t *testing.T, reg reminders.Registrar) (*Coordinator, *Log) {
	t.Helper()
	log := logging.NewSlogLogger(slog.Default())
	feed := NewLog(setupKV(t), log)
	sched := reminders.NewScheduler(reg, time.Second, log)
	return NewCoordinator(sched, feed, log), feed
}

func paymentIntent() reminders.Intent {
	return reminders.Intent{
		Kind:        reminders.KindPayment,
		Amount:      decimal.NewFromInt(1200),
		Description: "electricity bill",
		AnchorDate:  time.Date(2025, time.March, 15, 9, 0, 0, 0, time.UTC),
		Recurrence:  reminders.RecurrenceMonthly,
	}
}

func TestScheduleReminder_RegistersAndLogs(t *testing.T) {
	reg := reminders.NewInMemoryRegistrar()
	c, feed := newCoordinator(t, reg)
	ctx := context.Background()

	res, err := c.ScheduleReminder(ctx, paymentIntent())
	require.NoError(t, err)
	require.NoError(t, res.SchedulingErr)

	_, ok := reg.Registered(res.Trigger.ID)
	require.True(t, ok, "trigger registered with the OS scheduler")

	records := feed.ListAll(ctx)
	require.Len(t, records, 1)
	require.Equal(t, res.Record.ID, records[0].ID)
	require.Equal(t, "Payment Reminder", records[0].Title)
	require.Equal(t, "Rs. 1200.00 - electricity bill", records[0].Message)
	require.Equal(t, TypeReminder, records[0].Type)
	require.False(t, records[0].IsRead)
	require.NotNil(t, records[0].ScheduledAt)
	require.Equal(t, time.Date(2025, time.March, 15, 9, 0, 0, 0, time.UTC), *records[0].ScheduledAt)
}

func TestScheduleReminder_RegistrarDownStillLogs(t *testing.T) {
	c, feed := newCoordinator(t, brokenRegistrar{})
	ctx := context.Background()

	res, err := c.ScheduleReminder(ctx, paymentIntent())
	require.NoError(t, err, "a registrar failure is not a scheduling-request failure")
	require.ErrorIs(t, res.SchedulingErr, common.ErrScheduling)

	records := feed.ListAll(ctx)
	require.Len(t, records, 1, "the feed entry must exist regardless")
	require.NotNil(t, records[0].ScheduledAt)
}

func TestScheduleReminder_TitlesPerKind(t *testing.T) {
	c, _ := newCoordinator(t, reminders.NewInMemoryRegistrar())
	ctx := context.Background()

	tests := []struct {
		kind  reminders.Kind
		title string
		typ   Type
	}{
		{reminders.KindIncome, "Income Reminder", TypeIncome},
		{reminders.KindExpense, "Expense Reminder", TypeExpense},
		{reminders.KindPayment, "Payment Reminder", TypeReminder},
	}

	for _, tc := range tests {
		intent := paymentIntent()
		intent.Kind = tc.kind
		res, err := c.ScheduleReminder(ctx, intent)
		require.NoError(t, err)
		require.Equal(t, tc.title, res.Record.Title)
		require.Equal(t, tc.typ, res.Record.Type)
	}
}

func TestCancelTrigger(t *testing.T) {
	reg := reminders.NewInMemoryRegistrar()
	c, _ := newCoordinator(t, reg)
	ctx := context.Background()

	res, err := c.ScheduleReminder(ctx, paymentIntent())
	require.NoError(t, err)

	require.NoError(t, c.CancelTrigger(ctx, res.Trigger.ID))
	_, ok := reg.Registered(res.Trigger.ID)
	require.False(t, ok)
}
