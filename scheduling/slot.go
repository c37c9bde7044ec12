package scheduling

import (
	"fmt"
	"time"
)

const (
	// PageSize is the number of appointments returned per listing page.
	PageSize = 20
	// CancellationWindow is the lead time a booker needs to cancel.
	CancellationWindow = 2 * time.Hour
)

// HourStart returns the slot t falls into: t in UTC with minutes, seconds and
// nanoseconds dropped. Every comparison and every persisted date goes through
// this function.
func HourStart(t time.Time) time.Time {
	return t.UTC().Truncate(time.Hour)
}

// CancelDeadline is the last instant before which an appointment at date can
// still be canceled.
func CancelDeadline(date time.Time) time.Time {
	return date.Add(-CancellationWindow)
}

// SlotFormatter renders a slot for human readers, e.g. in notifications.
type SlotFormatter func(time.Time) string

// FormatSlot renders a slot as "January 02, at 10:00h".
func FormatSlot(t time.Time) string {
	t = t.UTC()
	return fmt.Sprintf("%s %02d, at %d:%02dh", t.Month(), t.Day(), t.Hour(), t.Minute())
}
