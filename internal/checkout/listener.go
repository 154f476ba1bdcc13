package checkout

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	apperrors "github.com/kaushalNeupane10/CloudBite/pkg/errors"
	"github.com/kaushalNeupane10/CloudBite/pkg/httputil"
	"github.com/kaushalNeupane10/CloudBite/pkg/middleware"
)

var callbackTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "checkout_callbacks_total",
	Help: "Checkout callback redirects received, by result.",
}, []string{"result"})

// Result is the outcome of a checkout session reported by the payment
// processor's redirect.
type Result struct {
	SessionID string
	Succeeded bool
}

// payPage hands the browser off to Stripe's hosted payment page. The SPA did
// this with redirectToCheckout from the menu; here the terminal prints the
// URL and the page performs the same hand-off.
var payPage = template.Must(template.New("pay").Parse(`<!DOCTYPE html>
<html>
<head>
  <title>CloudBite checkout</title>
  <script src="https://js.stripe.com/v3/"></script>
</head>
<body>
  <p>Redirecting to payment&hellip;</p>
  <script>
    Stripe({{.PublishableKey}}).redirectToCheckout({sessionId: {{.SessionID}}});
  </script>
</body>
</html>
`))

// Listener is a local HTTP server receiving the payment processor's success
// and cancel redirects. The processor sends the user's browser back to these
// URLs once the hosted payment page finishes. When a publishable key is
// configured it also serves the page that starts the hosted checkout.
type Listener struct {
	server         *http.Server
	logger         *slog.Logger
	publishableKey string
	results        chan Result
}

// NewListener creates a callback listener bound to addr. publishableKey may
// be empty, in which case the pay page is not served.
func NewListener(addr, publishableKey string, logger *slog.Logger) *Listener {
	l := &Listener{
		logger:         logger,
		publishableKey: publishableKey,
		results:        make(chan Result, 1),
	}
	l.server = &http.Server{
		Addr:         addr,
		Handler:      l.routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	return l
}

func (l *Listener) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(l.logger))
	r.Use(middleware.RequestLogging(l.logger))

	r.Get("/checkout/success", l.handleSuccess)
	r.Get("/checkout/cancel", l.handleCancel)
	if l.publishableKey != "" {
		r.Get("/checkout/pay", l.handlePay)
	}
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}

func (l *Listener) handlePay(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		httputil.WriteError(w, l.logger, apperrors.InvalidInput("session_id is required"))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := payPage.Execute(w, struct {
		PublishableKey string
		SessionID      string
	}{l.publishableKey, sessionID})
	if err != nil {
		l.logger.ErrorContext(r.Context(), "failed to render pay page",
			slog.String("error", err.Error()),
		)
	}
}

func (l *Listener) handleSuccess(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	callbackTotal.WithLabelValues("success").Inc()

	l.logger.InfoContext(r.Context(), "checkout succeeded",
		slog.String("session_id", sessionID),
	)
	l.deliver(Result{SessionID: sessionID, Succeeded: true})

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, "<html><body><h1>Payment complete</h1><p>You can close this window.</p></body></html>")
}

func (l *Listener) handleCancel(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	callbackTotal.WithLabelValues("cancel").Inc()

	l.logger.InfoContext(r.Context(), "checkout cancelled",
		slog.String("session_id", sessionID),
	)
	l.deliver(Result{SessionID: sessionID})

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, "<html><body><h1>Payment cancelled</h1><p>Your cart is unchanged.</p></body></html>")
}

// deliver hands the result to the waiter without blocking the handler. Only
// the first callback per wait matters; duplicates are dropped.
func (l *Listener) deliver(result Result) {
	select {
	case l.results <- result:
	default:
	}
}

// Start serves callbacks until the server is shut down.
func (l *Listener) Start() error {
	l.logger.Info("checkout callback listener started", slog.String("addr", l.server.Addr))
	if err := l.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("callback listener: %w", err)
	}
	return nil
}

// Wait blocks until a callback arrives or the context ends.
func (l *Listener) Wait(ctx context.Context) (Result, error) {
	select {
	case result := <-l.results:
		return result, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// Shutdown stops the server gracefully.
func (l *Listener) Shutdown(ctx context.Context) error {
	return l.server.Shutdown(ctx)
}
