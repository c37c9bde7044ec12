package appointment

import (
	"time"

	"github.com/google/uuid"
)

type Appointment struct {
	ID         uuid.UUID  `json:"id"`
	BookerID   uuid.UUID  `json:"booker_id"`
	ProviderID uuid.UUID  `json:"provider_id"`
	Date       time.Time  `json:"date"`
	CanceledAt *time.Time `json:"canceled_at"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Active reports whether the appointment still holds its slot.
func (a *Appointment) Active() bool {
	return a.CanceledAt == nil
}

// InsertOutcome tags the result of a conditional insert.
type InsertOutcome int

const (
	Created InsertOutcome = iota
	Conflict
)

func (o InsertOutcome) String() string {
	switch o {
	case Created:
		return "created"
	case Conflict:
		return "conflict"
	}
	return "unknown"
}
