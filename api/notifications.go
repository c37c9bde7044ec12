package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

func (a *API) listNotifications(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	u, err := a.users.GetUser(r.Context(), userID)
	if err != nil {
		a.writeError(w, err)
		return
	}
	if u == nil || !u.Provider {
		a.Response(w, http.StatusUnauthorized, "only providers can load notifications")
		return
	}

	inbox, err := a.notifications.ListInbox(r.Context(), userID)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.Response(w, http.StatusOK, inbox)
}

func (a *API) markNotificationRead(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		a.Response(w, http.StatusBadRequest, "invalid notification ID")
		return
	}

	n, err := a.notifications.MarkRead(r.Context(), id, userID, a.now())
	if err != nil {
		a.writeError(w, err)
		return
	}
	if n == nil {
		a.Response(w, http.StatusNotFound, "notification not found")
		return
	}
	a.Response(w, http.StatusOK, n)
}
