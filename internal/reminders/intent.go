// Package reminders converts reminder intents into concrete trigger
// registrations against an external alarm registrar.
package reminders

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kind classifies what a reminder is about.
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
	KindPayment Kind = "payment"
)

// Recurrence is how a trigger repeats.
type Recurrence string

const (
	RecurrenceNone    Recurrence = "none"
	RecurrenceDaily   Recurrence = "daily"
	RecurrenceWeekly  Recurrence = "weekly"
	RecurrenceMonthly Recurrence = "monthly"
	RecurrenceYearly  Recurrence = "yearly"
)

// Intent is the ephemeral scheduling request coming from the UI. It is
// never persisted; it yields exactly one Trigger and one notification
// record, created together by the coordinator.
type Intent struct {
	Kind        Kind
	Amount      decimal.Decimal
	Description string
	Category    string
	AnchorDate  time.Time
	Recurrence  Recurrence
}
