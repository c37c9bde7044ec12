package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Validator decides whether a provider slot can be booked. It only reads; the
// store remains the final arbiter when two bookings race.
type Validator struct {
	identities IdentityLookup
	store      AppointmentStore
}

func NewValidator(identities IdentityLookup, store AppointmentStore) *Validator {
	return &Validator{identities: identities, store: store}
}

// CheckBookable returns the hour-aligned slot to book for requestedDate.
func (v *Validator) CheckBookable(ctx context.Context, providerID uuid.UUID, requestedDate, now time.Time) (time.Time, error) {
	provider, err := v.identities.GetUser(ctx, providerID)
	if err != nil {
		return time.Time{}, fmt.Errorf("get provider: %w", err)
	}
	if provider == nil || !provider.Provider {
		return time.Time{}, fmt.Errorf("%w: user %s", ErrNotAProvider, providerID)
	}

	hourStart := HourStart(requestedDate)
	if hourStart.Before(now) {
		return time.Time{}, fmt.Errorf("%w: %s", ErrPastDate, hourStart.Format(time.RFC3339))
	}

	existing, err := v.store.FindActiveAt(ctx, providerID, hourStart)
	if err != nil {
		return time.Time{}, fmt.Errorf("find active appointment: %w", err)
	}
	if existing != nil {
		return time.Time{}, fmt.Errorf("%w: %s", ErrSlotTaken, hourStart.Format(time.RFC3339))
	}

	return hourStart, nil
}
