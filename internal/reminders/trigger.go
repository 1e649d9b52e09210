package reminders

import "time"

// Trigger is the firing instruction handed to the external registrar. Once
// registered the registrar owns the live timer; the core keeps only the ID
// for cancellation.
//
// One-shot triggers carry FireAt (the anchor truncated to the minute).
// Recurring triggers carry an RFC 5545 RRULE pattern plus the anchor the
// pattern was derived from.
type Trigger struct {
	ID      string
	Anchor  time.Time
	FireAt  time.Time
	RRule   string
	Repeats bool
}
