package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/moneta-app/moneta/internal/common"
	"github.com/moneta-app/moneta/internal/reminders"
)

const anchorLayout = "2006-01-02 15:04"

func parseKind(s string) (reminders.Kind, error) {
	switch reminders.Kind(s) {
	case reminders.KindIncome, reminders.KindExpense, reminders.KindPayment:
		return reminders.Kind(s), nil
	}
	return "", fmt.Errorf("unknown kind %q (income|expense|payment)", s)
}

func parseRecurrence(s string) (reminders.Recurrence, error) {
	if s == "" {
		return reminders.RecurrenceNone, nil
	}
	switch reminders.Recurrence(s) {
	case reminders.RecurrenceNone, reminders.RecurrenceDaily, reminders.RecurrenceWeekly,
		reminders.RecurrenceMonthly, reminders.RecurrenceYearly:
		return reminders.Recurrence(s), nil
	}
	return "", fmt.Errorf("unknown recurrence %q (none|daily|weekly|monthly|yearly)", s)
}

// Remind collects a reminder intent and schedules it.
func (a *App) Remind(ctx context.Context) error {
	if a.session.Current() == nil {
		fmt.Println("Not logged in.")
		return common.ErrNotLoggedIn
	}

	kindStr, err := getSimpleText(a.reader, "Kind (income|expense|payment)", os.Stdout)
	if err != nil {
		return err
	}
	kind, err := parseKind(kindStr)
	if err != nil {
		fmt.Println(err)
		return err
	}

	amountStr, err := getSimpleText(a.reader, "Amount", os.Stdout)
	if err != nil {
		return err
	}
	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		fmt.Println("Bad amount:", err)
		return err
	}

	description, err := getSimpleText(a.reader, "Description (optional)", os.Stdout)
	if err != nil {
		return err
	}

	anchorStr, err := getSimpleText(a.reader, "When (YYYY-MM-DD HH:MM)", os.Stdout)
	if err != nil {
		return err
	}
	anchor, err := time.ParseInLocation(anchorLayout, anchorStr, time.Local)
	if err != nil {
		fmt.Println("Bad date:", err)
		return err
	}

	recStr, err := getSimpleText(a.reader, "Repeat (none|daily|weekly|monthly|yearly)", os.Stdout)
	if err != nil {
		return err
	}
	recurrence, err := parseRecurrence(recStr)
	if err != nil {
		fmt.Println(err)
		return err
	}

	res, err := a.coordinator.ScheduleReminder(ctx, reminders.Intent{
		Kind:        kind,
		Amount:      amount,
		Description: description,
		AnchorDate:  anchor,
		Recurrence:  recurrence,
	})
	if err != nil {
		fmt.Println("Failed to save reminder:", err)
		return err
	}

	fmt.Printf("Saved: %s - %s\n", res.Record.Title, res.Record.Message)
	if res.SchedulingErr != nil {
		fmt.Println("Note: the OS trigger could not be registered; the reminder stays in your feed.")
	} else if next, err := a.scheduler.NextOccurrence(res.Trigger, time.Now()); err == nil {
		fmt.Println("Next fires at:", next.Format(anchorLayout))
	}
	return nil
}

// ListNotifications prints the feed newest-first.
func (a *App) ListNotifications(ctx context.Context) {
	records := a.feed.ListAll(ctx)
	if len(records) == 0 {
		fmt.Println("No notifications.")
		return
	}

	fmt.Printf("%d notification(s), %d unread\n", len(records), a.feed.UnreadCount(ctx))
	for _, r := range records {
		marker := "*"
		if r.IsRead {
			marker = " "
		}
		when := ""
		if r.ScheduledAt != nil {
			when = r.ScheduledAt.Format(anchorLayout)
		}
		fmt.Printf("%s %s  %-16s %s  %s\n", marker, r.ID, r.Title, r.Message, when)
	}
}

func (a *App) MarkRead(ctx context.Context, id string) {
	if err := a.feed.MarkRead(ctx, id); err != nil {
		fmt.Println("Failed to mark read:", err)
	}
}

func (a *App) RemoveNotification(ctx context.Context, id string) {
	if err := a.feed.Remove(ctx, id); err != nil {
		fmt.Println("Failed to remove:", err)
	}
}

func (a *App) ClearNotifications(ctx context.Context) {
	if err := a.feed.RemoveAll(ctx); err != nil {
		fmt.Println("Failed to clear:", err)
	}
}
