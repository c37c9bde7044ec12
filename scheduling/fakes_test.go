package scheduling_test

import (
	"context"
	"slices"
	"sync"
	"time"

	"appointments-system/appointment"
	"appointments-system/notification"
	"appointments-system/user"

	"github.com/google/uuid"
	testifymock "github.com/stretchr/testify/mock"
)

type MockIdentityLookup struct {
	testifymock.Mock
}

func (m *MockIdentityLookup) GetUser(ctx context.Context, id uuid.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

type MockAppointmentStore struct {
	testifymock.Mock
}

func (m *MockAppointmentStore) FindActiveAt(ctx context.Context, providerID uuid.UUID, date time.Time) (*appointment.Appointment, error) {
	args := m.Called(ctx, providerID, date)
	a, _ := args.Get(0).(*appointment.Appointment)
	return a, args.Error(1)
}

func (m *MockAppointmentStore) InsertAppointment(ctx context.Context, appt appointment.Appointment) (appointment.InsertOutcome, error) {
	args := m.Called(ctx, appt)
	return args.Get(0).(appointment.InsertOutcome), args.Error(1)
}

func (m *MockAppointmentStore) GetAppointment(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*appointment.Appointment)
	return a, args.Error(1)
}

func (m *MockAppointmentStore) MarkCanceled(ctx context.Context, id uuid.UUID, at time.Time) (*appointment.Appointment, error) {
	args := m.Called(ctx, id, at)
	a, _ := args.Get(0).(*appointment.Appointment)
	return a, args.Error(1)
}

func (m *MockAppointmentStore) ListActiveByBooker(ctx context.Context, bookerID uuid.UUID, limit, offset int) ([]appointment.Appointment, error) {
	args := m.Called(ctx, bookerID, limit, offset)
	a, _ := args.Get(0).([]appointment.Appointment)
	return a, args.Error(1)
}

type MockNotificationSink struct {
	testifymock.Mock
}

func (m *MockNotificationSink) CreateNotification(ctx context.Context, recipientID uuid.UUID, content string) (*notification.Notification, error) {
	args := m.Called(ctx, recipientID, content)
	n, _ := args.Get(0).(*notification.Notification)
	return n, args.Error(1)
}

// memStore is an in-memory store that enforces slot exclusivity the same way
// the partial unique index does.
type memStore struct {
	mu    sync.Mutex
	appts map[uuid.UUID]appointment.Appointment
}

func newMemStore() *memStore {
	return &memStore{appts: make(map[uuid.UUID]appointment.Appointment)}
}

func (s *memStore) FindActiveAt(_ context.Context, providerID uuid.UUID, date time.Time) (*appointment.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.appts {
		if a.ProviderID == providerID && a.Date.Equal(date) && a.CanceledAt == nil {
			return &a, nil
		}
	}
	return nil, nil
}

func (s *memStore) InsertAppointment(_ context.Context, appt appointment.Appointment) (appointment.InsertOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.appts {
		if a.ProviderID == appt.ProviderID && a.Date.Equal(appt.Date) && a.CanceledAt == nil {
			return appointment.Conflict, nil
		}
	}
	s.appts[appt.ID] = appt
	return appointment.Created, nil
}

func (s *memStore) GetAppointment(_ context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.appts[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (s *memStore) MarkCanceled(_ context.Context, id uuid.UUID, at time.Time) (*appointment.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.appts[id]
	if !ok || a.CanceledAt != nil {
		return nil, nil
	}
	a.CanceledAt = &at
	s.appts[id] = a
	return &a, nil
}

func (s *memStore) ListActiveByBooker(_ context.Context, bookerID uuid.UUID, limit, offset int) ([]appointment.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []appointment.Appointment
	for _, a := range s.appts {
		if a.BookerID == bookerID && a.CanceledAt == nil {
			out = append(out, a)
		}
	}
	slices.SortFunc(out, func(a, b appointment.Appointment) int { return a.Date.Compare(b.Date) })
	if offset >= len(out) {
		return []appointment.Appointment{}, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *memStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.appts)
}

type memIdentities map[uuid.UUID]user.User

func (m memIdentities) GetUser(_ context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := m[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

type memSink struct {
	mu   sync.Mutex
	sent []notification.Notification
}

func (s *memSink) CreateNotification(_ context.Context, recipientID uuid.UUID, content string) (*notification.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := notification.Notification{ID: uuid.New(), RecipientID: recipientID, Content: content}
	s.sent = append(s.sent, n)
	return &n, nil
}

func (s *memSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}
