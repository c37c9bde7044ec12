package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"appointments-system/scheduling"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

func (a *API) listAppointments(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil || p < 1 {
			a.Response(w, http.StatusBadRequest, "invalid page")
			return
		}
		page = p
	}

	listings, err := a.appointments.ListActive(r.Context(), userID, page)
	if err != nil {
		a.writeError(w, err)
		return
	}

	response := make([]listingView, 0, len(listings))
	for _, l := range listings {
		response = append(response, a.renderListing(l))
	}
	a.Response(w, http.StatusOK, response)
}

// createAppointmentRequest accepts the date as an RFC 3339 timestamp.
type createAppointmentRequest struct {
	ProviderID string `json:"provider_id"`
	Date       string `json:"date"`
}

func (a *API) createAppointment(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	var req createAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.Response(w, http.StatusBadRequest, "invalid request body")
		return
	}

	providerID, err := uuid.Parse(strings.TrimSpace(req.ProviderID))
	if err != nil {
		a.writeError(w, &scheduling.ValidationError{Field: "provider_id", Reason: "must be a valid id"})
		return
	}

	date, err := time.Parse(time.RFC3339, strings.TrimSpace(req.Date))
	if err != nil {
		a.writeError(w, &scheduling.ValidationError{Field: "date", Reason: "must be an RFC 3339 timestamp"})
		return
	}

	appt, err := a.appointments.Book(r.Context(), userID, providerID, date, a.now())
	if err != nil {
		a.writeError(w, err)
		return
	}

	a.Response(w, http.StatusOK, newAppointmentView(appt))
}

func (a *API) cancelAppointment(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	appointmentID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		a.Response(w, http.StatusBadRequest, "invalid appointment ID")
		return
	}

	appt, err := a.appointments.Cancel(r.Context(), userID, appointmentID, a.now())
	if err != nil {
		a.writeError(w, err)
		return
	}

	a.Response(w, http.StatusOK, newAppointmentView(appt))
}
