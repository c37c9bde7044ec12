package scheduling

import (
	"errors"
	"fmt"
)

var (
	ErrNotAProvider    = errors.New("you can only create appointments with providers")
	ErrPastDate        = errors.New("past dates are not permitted")
	ErrSlotTaken       = errors.New("appointment date is not available")
	ErrNotFound        = errors.New("appointment not found")
	ErrForbidden       = errors.New("you don't have permission to cancel this appointment")
	ErrTooLateToCancel = errors.New("you can only cancel appointments 2 hours in advance")
	ErrAlreadyCanceled = errors.New("appointment is already canceled")
)

// ValidationError reports a malformed input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Reason)
}
