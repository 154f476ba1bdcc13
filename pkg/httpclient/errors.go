package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	apperrors "github.com/kaushalNeupane10/CloudBite/pkg/errors"
)

// APIErrorBody mirrors the error shape returned by the CloudBite API.
// Most endpoints answer with {"detail": "..."} and token endpoints add a
// machine-readable {"code": "..."} field.
type APIErrorBody struct {
	Detail string `json:"detail"`
	Code   string `json:"code"`
}

// ParseResponseError reads the body of a non-2xx HTTP response and translates
// it into an appropriate AppError. If the body matches the API's error format,
// the detail message is preserved. Otherwise a generic error is returned with
// the status code and raw body.
//
// The caller should only invoke this when resp.StatusCode indicates an error
// (i.e., not 2xx). The response body is fully consumed and closed.
func ParseResponseError(resp *http.Response, operation string) error {
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB limit
	if err != nil {
		return fmt.Errorf("%s returned status %d (failed to read body: %w)", operation, resp.StatusCode, err)
	}

	var body APIErrorBody
	if json.Unmarshal(bodyBytes, &body) == nil && body.Detail != "" {
		return mapAPIError(resp.StatusCode, body.Detail, operation)
	}

	// Fallback: unstructured error body.
	return fmt.Errorf("%s returned status %d: %s", operation, resp.StatusCode, string(bodyBytes))
}

// mapAPIError translates the API's HTTP status code and detail message into an
// AppError that preserves the error semantics.
func mapAPIError(status int, detail, operation string) error {
	qualifiedMsg := fmt.Sprintf("%s: %s", operation, detail)

	switch {
	case status == http.StatusNotFound:
		return apperrors.NotFound(operation, detail)
	case status == http.StatusBadRequest:
		return apperrors.InvalidInput(qualifiedMsg)
	case status == http.StatusConflict:
		return apperrors.Conflict(qualifiedMsg)
	case status == http.StatusUnauthorized:
		return apperrors.Unauthorized(qualifiedMsg)
	case status == http.StatusUnprocessableEntity:
		return apperrors.PaymentFailed(qualifiedMsg)
	case status == http.StatusServiceUnavailable:
		return &apperrors.AppError{
			Code:    "SERVICE_UNAVAILABLE",
			Message: qualifiedMsg,
			Status:  http.StatusServiceUnavailable,
			Err:     apperrors.ErrServiceUnavail,
		}
	case status >= 500:
		return fmt.Errorf("%s server error (%d): %s", operation, status, detail)
	default:
		return &apperrors.AppError{
			Code:    "API_ERROR",
			Message: qualifiedMsg,
			Status:  status,
		}
	}
}

// IsClientError returns true if the HTTP status code is a 4xx client error.
func IsClientError(status int) bool {
	return status >= 400 && status < 500
}
