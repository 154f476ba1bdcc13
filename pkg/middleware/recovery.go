package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	apperrors "github.com/kaushalNeupane10/CloudBite/pkg/errors"
	"github.com/kaushalNeupane10/CloudBite/pkg/httputil"
)

// Recovery turns a handler panic into a 500 response. The callback listener
// must stay up for the payment redirect even if a handler misbehaves.
func Recovery(l *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					l.ErrorContext(r.Context(), "panic recovered",
						slog.Any("panic", rec),
						slog.String("stack", string(debug.Stack())),
						slog.String("method", r.Method),
						slog.String("path", r.URL.Path),
					)
					httputil.WriteError(w, l, apperrors.Internal(errors.New("handler panic")))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
