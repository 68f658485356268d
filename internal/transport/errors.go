package transport

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/goodnatureofminers/token42-backend/internal/model"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func badRequest(reason string) error {
	return model.Revert(model.ErrInvalidArgument, reason)
}

// statusOf maps an error kind to its HTTP status.
func statusOf(err error) int {
	switch model.Kind(err) {
	case model.ErrUnauthorized:
		return http.StatusForbidden
	case model.ErrInvalidArgument:
		return http.StatusBadRequest
	case model.ErrInvalidState:
		return http.StatusConflict
	case model.ErrNotFound:
		return http.StatusNotFound
	case model.ErrInvalidProofOfWork:
		return http.StatusUnprocessableEntity
	case model.ErrPaused:
		return http.StatusLocked
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) int {
	code := statusOf(err)
	msg := err.Error()
	var revert *model.RevertError
	if code == http.StatusInternalServerError && !errors.As(err, &revert) {
		msg = http.StatusText(code)
	}
	writeJSON(w, code, errorBody{Code: model.KindLabel(err), Message: msg})
	return code
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}
