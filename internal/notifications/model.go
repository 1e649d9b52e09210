// Package notifications maintains the locally persisted notification feed
// and composes it with trigger scheduling so the two cannot drift apart.
package notifications

import "time"

// Type classifies a feed entry.
type Type string

const (
	TypeIncome   Type = "income"
	TypeExpense  Type = "expense"
	TypeBudget   Type = "budget"
	TypeReminder Type = "reminder"
)

// Record is a user-visible feed entry, independent of whether the
// underlying OS trigger ever fires.
type Record struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Message     string     `json:"message"`
	Type        Type       `json:"type"`
	IsRead      bool       `json:"is_read"`
	CreatedAt   time.Time  `json:"created_at"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
}
