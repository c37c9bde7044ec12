package api

import (
	"errors"
	"net/http"

	"appointments-system/scheduling"

	"go.uber.org/zap"
)

// writeError maps scheduling failures to HTTP statuses. Anything outside the
// taxonomy is logged and reported as an internal error.
func (a *API) writeError(w http.ResponseWriter, err error) {
	var verr *scheduling.ValidationError
	switch {
	case errors.As(err, &verr):
		a.Response(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, scheduling.ErrPastDate):
		a.Response(w, http.StatusBadRequest, scheduling.ErrPastDate.Error())
	case errors.Is(err, scheduling.ErrSlotTaken):
		a.Response(w, http.StatusBadRequest, scheduling.ErrSlotTaken.Error())
	case errors.Is(err, scheduling.ErrAlreadyCanceled):
		a.Response(w, http.StatusBadRequest, scheduling.ErrAlreadyCanceled.Error())
	case errors.Is(err, scheduling.ErrNotAProvider):
		a.Response(w, http.StatusUnauthorized, scheduling.ErrNotAProvider.Error())
	case errors.Is(err, scheduling.ErrForbidden):
		a.Response(w, http.StatusUnauthorized, scheduling.ErrForbidden.Error())
	case errors.Is(err, scheduling.ErrTooLateToCancel):
		a.Response(w, http.StatusUnauthorized, scheduling.ErrTooLateToCancel.Error())
	case errors.Is(err, scheduling.ErrNotFound):
		a.Response(w, http.StatusNotFound, scheduling.ErrNotFound.Error())
	default:
		a.log.Error("request failed", zap.Error(err))
		a.Response(w, http.StatusInternalServerError, "internal server error")
	}
}
