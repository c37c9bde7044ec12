package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	"appointments-system/appointment"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// unknownBooker stands in for the booker's name when it cannot be resolved.
const unknownBooker = "a customer"

// Book reserves the slot containing requestedDate for bookerID with providerID
// and notifies the provider. The notification is best-effort: once the
// appointment is stored, a failing notification is logged and Book succeeds.
func (s *Service) Book(ctx context.Context, bookerID, providerID uuid.UUID, requestedDate, now time.Time) (*appointment.Appointment, error) {
	appt, err := s.book(ctx, bookerID, providerID, requestedDate, now)
	if err != nil {
		s.metrics.RejectedTotal.WithLabelValues(rejectReason(err)).Inc()
		return nil, err
	}
	s.metrics.BookedTotal.Inc()

	s.notifyProvider(ctx, appt)

	return appt, nil
}

func (s *Service) book(ctx context.Context, bookerID, providerID uuid.UUID, requestedDate, now time.Time) (*appointment.Appointment, error) {
	if bookerID == uuid.Nil {
		return nil, &ValidationError{Field: "booker_id", Reason: "is required"}
	}
	if providerID == uuid.Nil {
		return nil, &ValidationError{Field: "provider_id", Reason: "is required"}
	}
	if requestedDate.IsZero() {
		return nil, &ValidationError{Field: "date", Reason: "is required"}
	}

	hourStart, err := s.validator.CheckBookable(ctx, providerID, requestedDate, now)
	if err != nil {
		return nil, err
	}

	appt := appointment.Appointment{
		ID:         uuid.New(),
		BookerID:   bookerID,
		ProviderID: providerID,
		Date:       hourStart,
		CreatedAt:  now.UTC(),
	}

	outcome, err := s.store.InsertAppointment(ctx, appt)
	if err != nil {
		return nil, fmt.Errorf("insert appointment: %w", err)
	}
	if outcome == appointment.Conflict {
		return nil, fmt.Errorf("%w: %s", ErrSlotTaken, hourStart.Format(time.RFC3339))
	}

	s.log.Info("appointment booked",
		zap.Stringer("appointment_id", appt.ID),
		zap.Stringer("provider_id", providerID),
		zap.Time("date", hourStart),
	)

	return &appt, nil
}

func (s *Service) notifyProvider(ctx context.Context, appt *appointment.Appointment) {
	name := unknownBooker
	booker, err := s.identities.GetUser(ctx, appt.BookerID)
	switch {
	case err != nil:
		s.log.Warn("resolve booker name", zap.Stringer("booker_id", appt.BookerID), zap.Error(err))
	case booker != nil && booker.Name != "":
		name = booker.Name
	}

	content := fmt.Sprintf("New appointment from %s for %s", name, s.formatSlot(appt.Date))
	if _, err := s.notifications.CreateNotification(ctx, appt.ProviderID, content); err != nil {
		s.metrics.NotificationsFailed.Inc()
		s.log.Warn("create provider notification",
			zap.Stringer("appointment_id", appt.ID),
			zap.Stringer("provider_id", appt.ProviderID),
			zap.Error(err),
		)
	}
}

func rejectReason(err error) string {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		return "validation"
	case errors.Is(err, ErrNotAProvider):
		return "not_a_provider"
	case errors.Is(err, ErrPastDate):
		return "past_date"
	case errors.Is(err, ErrSlotTaken):
		return "slot_taken"
	}
	return "error"
}
