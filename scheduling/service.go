package scheduling

import (
	"context"
	"time"

	"appointments-system/appointment"
	"appointments-system/metrics"
	"appointments-system/notification"
	"appointments-system/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// IdentityLookup resolves users. GetUser returns nil, nil for unknown ids.
type IdentityLookup interface {
	GetUser(ctx context.Context, id uuid.UUID) (*user.User, error)
}

// AppointmentStore is the durable home of appointments. InsertAppointment must
// report Conflict when another active appointment holds the same provider slot.
type AppointmentStore interface {
	FindActiveAt(ctx context.Context, providerID uuid.UUID, date time.Time) (*appointment.Appointment, error)
	InsertAppointment(ctx context.Context, appt appointment.Appointment) (appointment.InsertOutcome, error)
	GetAppointment(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error)
	MarkCanceled(ctx context.Context, id uuid.UUID, at time.Time) (*appointment.Appointment, error)
	ListActiveByBooker(ctx context.Context, bookerID uuid.UUID, limit, offset int) ([]appointment.Appointment, error)
}

type NotificationSink interface {
	CreateNotification(ctx context.Context, recipientID uuid.UUID, content string) (*notification.Notification, error)
}

type Service struct {
	identities    IdentityLookup
	store         AppointmentStore
	notifications NotificationSink
	validator     *Validator
	formatSlot    SlotFormatter
	metrics       *metrics.Collector
	log           *zap.Logger
}

type Option func(*Service)

// WithSlotFormatter replaces the renderer used in notification content.
func WithSlotFormatter(f SlotFormatter) Option {
	return func(s *Service) { s.formatSlot = f }
}

func NewService(
	identities IdentityLookup,
	store AppointmentStore,
	notifications NotificationSink,
	collector *metrics.Collector,
	log *zap.Logger,
	opts ...Option,
) *Service {
	s := &Service{
		identities:    identities,
		store:         store,
		notifications: notifications,
		validator:     NewValidator(identities, store),
		formatSlot:    FormatSlot,
		metrics:       collector,
		log:           log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Validator exposes the availability check used by Book.
func (s *Service) Validator() *Validator {
	return s.validator
}
