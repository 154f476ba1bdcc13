package httputil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	apperrors "github.com/kaushalNeupane10/CloudBite/pkg/errors"
)

// Response is the standard JSON envelope for HTTP responses.
type Response struct {
	Data  any            `json:"data,omitempty"`
	Error *ErrorResponse `json:"error,omitempty"`
}

// ErrorResponse carries a machine-readable code and a human-readable message.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// WriteError translates an error into the standard error envelope, using the
// AppError code and status when available.
func WriteError(w http.ResponseWriter, l *slog.Logger, err error) {
	status := apperrors.HTTPStatus(err)

	code := "INTERNAL_ERROR"
	message := "an internal error occurred"
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		code = appErr.Code
		message = appErr.Message
	}

	if status >= http.StatusInternalServerError && l != nil {
		l.Error("request failed", slog.String("error", err.Error()))
	}

	WriteJSON(w, status, Response{Error: &ErrorResponse{Code: code, Message: message}})
}
