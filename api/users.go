package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"appointments-system/user"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type createUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Provider bool   `json:"provider"`
}

func (a *API) createUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.Response(w, http.StatusBadRequest, "invalid request body")
		return
	}

	payload := user.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.TrimSpace(req.Email),
		Provider: req.Provider,
	}
	if err := payload.Validate(); err != nil {
		a.Response(w, http.StatusBadRequest, "validate: "+err.Error())
		return
	}

	created, err := a.users.CreateUser(r.Context(), payload)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.Response(w, http.StatusCreated, a.renderUser(created))
}

func (a *API) getUser(w http.ResponseWriter, r *http.Request) {
	parsedID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		a.Response(w, http.StatusBadRequest, "invalid user ID")
		return
	}

	u, err := a.users.GetUser(r.Context(), parsedID)
	if err != nil {
		a.writeError(w, err)
		return
	}
	if u == nil {
		a.Response(w, http.StatusNotFound, "user not found")
		return
	}

	a.Response(w, http.StatusOK, a.renderUser(*u))
}

func (a *API) getUsers(w http.ResponseWriter, r *http.Request) {
	users, err := a.users.GetUsers(r.Context())
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.Response(w, http.StatusOK, a.renderUsers(users))
}

func (a *API) getProviders(w http.ResponseWriter, r *http.Request) {
	providers, err := a.users.GetProviders(r.Context())
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.Response(w, http.StatusOK, a.renderUsers(providers))
}

type setAvatarRequest struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

func (a *API) setAvatar(w http.ResponseWriter, r *http.Request, userID uuid.UUID) {
	var req setAvatarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.Response(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Path) == "" {
		a.Response(w, http.StatusBadRequest, "path is required")
		return
	}

	u, err := a.users.SetAvatar(r.Context(), userID, user.File{Name: req.Name, Path: req.Path})
	if err != nil {
		a.writeError(w, err)
		return
	}
	if u == nil {
		a.Response(w, http.StatusNotFound, "user not found")
		return
	}
	a.Response(w, http.StatusOK, a.renderUser(*u))
}

func (a *API) renderUsers(users []user.User) []userView {
	views := make([]userView, 0, len(users))
	for _, u := range users {
		views = append(views, a.renderUser(u))
	}
	return views
}
