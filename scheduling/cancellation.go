package scheduling

import (
	"context"
	"fmt"
	"time"

	"appointments-system/appointment"

	"github.com/google/uuid"
)

// Cancel marks an appointment canceled on behalf of actingUserID. Only the
// booker may cancel, and only while now is strictly before date minus the
// cancellation window. A canceled appointment stays canceled: repeating the
// call yields ErrAlreadyCanceled.
func (s *Service) Cancel(ctx context.Context, actingUserID, appointmentID uuid.UUID, now time.Time) (*appointment.Appointment, error) {
	appt, err := s.store.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("get appointment: %w", err)
	}
	if appt == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, appointmentID)
	}

	if appt.BookerID != actingUserID {
		return nil, fmt.Errorf("%w: %s", ErrForbidden, appointmentID)
	}

	if !appt.Active() {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyCanceled, appointmentID)
	}

	deadline := CancelDeadline(appt.Date)
	if !deadline.After(now) {
		return nil, fmt.Errorf("%w: deadline was %s", ErrTooLateToCancel, deadline.Format(time.RFC3339))
	}

	canceled, err := s.store.MarkCanceled(ctx, appointmentID, now)
	if err != nil {
		return nil, fmt.Errorf("mark canceled: %w", err)
	}
	if canceled == nil {
		// lost the compare-and-set to a concurrent cancellation
		return nil, fmt.Errorf("%w: %s", ErrAlreadyCanceled, appointmentID)
	}

	s.metrics.CanceledTotal.Inc()
	return canceled, nil
}
