package api

import (
	"net/http"

	"github.com/google/uuid"
)

// UserHeader carries the acting user's id, resolved by the upstream auth layer.
const UserHeader = "X-User-ID"

type authenticatedHandler func(w http.ResponseWriter, r *http.Request, userID uuid.UUID)

// authenticated resolves the acting user once and hands it to next explicitly.
func (a *API) authenticated(next authenticatedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(UserHeader)
		if raw == "" {
			a.Response(w, http.StatusUnauthorized, "user identity is required")
			return
		}
		userID, err := uuid.Parse(raw)
		if err != nil || userID == uuid.Nil {
			a.Response(w, http.StatusUnauthorized, "invalid user identity")
			return
		}
		next(w, r, userID)
	}
}
