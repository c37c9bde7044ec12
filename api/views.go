package api

import (
	"time"

	"appointments-system/appointment"
	"appointments-system/scheduling"
	"appointments-system/user"

	"github.com/google/uuid"
)

type fileView struct {
	ID   uuid.UUID `json:"id"`
	Path string    `json:"path"`
	URL  string    `json:"url"`
}

type userView struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email,omitempty"`
	Provider bool      `json:"provider"`
	Avatar   *fileView `json:"avatar"`
}

type providerView struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Avatar *fileView `json:"avatar"`
}

type listingView struct {
	ID       uuid.UUID    `json:"id"`
	Date     time.Time    `json:"date"`
	Provider providerView `json:"provider"`
}

type appointmentView struct {
	ID         uuid.UUID  `json:"id"`
	BookerID   uuid.UUID  `json:"user_id"`
	ProviderID uuid.UUID  `json:"provider_id"`
	Date       time.Time  `json:"date"`
	CanceledAt *time.Time `json:"canceled_at"`
	CreatedAt  time.Time  `json:"created_at"`
}

func (a *API) renderFile(f *user.File) *fileView {
	if f == nil {
		return nil
	}
	return &fileView{ID: f.ID, Path: f.Path, URL: f.URL(a.filesBaseURL)}
}

func (a *API) renderUser(u user.User) userView {
	return userView{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Provider: u.Provider,
		Avatar:   a.renderFile(u.Avatar),
	}
}

func (a *API) renderListing(l scheduling.Listing) listingView {
	return listingView{
		ID:   l.ID,
		Date: l.Date,
		Provider: providerView{
			ID:     l.Provider.ID,
			Name:   l.Provider.Name,
			Avatar: a.renderFile(l.Provider.Avatar),
		},
	}
}

func newAppointmentView(appt *appointment.Appointment) appointmentView {
	return appointmentView{
		ID:         appt.ID,
		BookerID:   appt.BookerID,
		ProviderID: appt.ProviderID,
		Date:       appt.Date,
		CanceledAt: appt.CanceledAt,
		CreatedAt:  appt.CreatedAt,
	}
}
