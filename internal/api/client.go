package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/kaushalNeupane10/CloudBite/internal/credstore"
	apperrors "github.com/kaushalNeupane10/CloudBite/pkg/errors"
	"github.com/kaushalNeupane10/CloudBite/pkg/httpclient"
)

// API paths. Auth routes stay unauthenticated even when a stale token exists.
const (
	pathToken         = "/token/"
	pathTokenRefresh  = "/token/refresh/"
	pathRegister      = "/register/"
	pathMe            = "/me/"
	pathMenuItems     = "/menu-items/"
	pathCartItems     = "/cart-items/"
	pathCheckout      = "/create-checkout-session/"
	pathMultiCheckout = "/create-multi-checkout-session/"
	pathOrders        = "/orders/"
)

func isAuthRoute(path string) bool {
	return strings.HasPrefix(path, pathToken) || strings.HasPrefix(path, pathRegister)
}

// Client is the typed CloudBite API client. Every call carries the bearer
// token from the credential store and transparently renews an expired access
// token once: callers issue one logical request and observe one logical
// result.
type Client struct {
	baseURL string
	http    httpclient.Doer
	creds   credstore.Store
	logger  *slog.Logger
}

// New creates an API client for the given base URL. The Doer is typically a
// retrying client wrapped in a circuit breaker.
func New(baseURL string, doer httpclient.Doer, creds credstore.Store, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    doer,
		creds:   creds,
		logger:  logger,
	}
}

type requestOption func(*http.Request)

// withHeader sets an extra header on the outgoing request (and its replay).
func withHeader(key, value string) requestOption {
	return func(req *http.Request) {
		req.Header.Set(key, value)
	}
}

// do issues one logical API request: marshal body, attach bearer, execute,
// renew the token once on 401, and decode the response into out. A token whose
// exp claim has already passed is renewed before sending rather than spent on
// a doomed round trip.
func (c *Client) do(ctx context.Context, method, path string, body, out any, opts ...requestOption) error {
	var bodyBytes []byte
	if body != nil {
		var err error
		bodyBytes, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
	}

	var accessToken string
	if !isAuthRoute(path) {
		session, err := c.creds.Session(ctx)
		if err != nil {
			return fmt.Errorf("read session: %w", err)
		}
		accessToken = session.AccessToken

		if session.RefreshToken != "" && session.AccessExpired(time.Now()) {
			accessToken, err = c.refreshAccessToken(ctx)
			if err != nil {
				return err
			}
		}
	}

	resp, err := c.send(ctx, method, path, bodyBytes, accessToken, opts)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized && !isAuthRoute(path) {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()

		access, refreshErr := c.refreshAccessToken(ctx)
		if refreshErr != nil {
			return refreshErr
		}

		// Replay the original request exactly once with the renewed token.
		resp, err = c.send(ctx, method, path, bodyBytes, access, opts)
		if err != nil {
			return err
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return httpclient.ParseResponseError(resp, method+" "+path)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.Body.Close()
	}

	defer func() { _ = resp.Body.Close() }()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

// send builds and executes a single HTTP request. Auth routes never carry a
// bearer, whatever token the caller supplies.
func (c *Client) send(ctx context.Context, method, path string, bodyBytes []byte, accessToken string, opts []requestOption) (*http.Response, error) {
	var reader io.Reader
	if bodyBytes != nil {
		reader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("create %s %s request: %w", method, path, err)
	}
	if bodyBytes != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if !isAuthRoute(path) && accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	for _, opt := range opts {
		opt(req)
	}

	return c.http.Do(ctx, req)
}

// refreshAccessToken performs the one silent credential renewal: it trades
// the stored refresh token for a new access token and persists it. On any
// failure the credential store is cleared and the session is terminated.
func (c *Client) refreshAccessToken(ctx context.Context) (string, error) {
	session, err := c.creds.Session(ctx)
	if err != nil {
		return "", fmt.Errorf("read session: %w", err)
	}
	if session.RefreshToken == "" {
		return "", apperrors.Unauthorized("no refresh token available")
	}

	bodyBytes, err := json.Marshal(refreshRequest{Refresh: session.RefreshToken})
	if err != nil {
		return "", fmt.Errorf("marshal refresh request: %w", err)
	}

	resp, err := c.send(ctx, http.MethodPost, pathTokenRefresh, bodyBytes, "", nil)
	if err != nil {
		return "", c.terminateSession(ctx, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := httpclient.ParseResponseError(resp, "POST "+pathTokenRefresh)
		return "", c.terminateSession(ctx, apiErr)
	}

	defer func() { _ = resp.Body.Close() }()
	var renewed refreshResponse
	if err := json.NewDecoder(resp.Body).Decode(&renewed); err != nil {
		return "", c.terminateSession(ctx, fmt.Errorf("decode refresh response: %w", err))
	}

	session.AccessToken = renewed.Access
	if err := c.creds.SetSession(ctx, session); err != nil {
		return "", fmt.Errorf("persist renewed session: %w", err)
	}

	c.logger.DebugContext(ctx, "access token renewed")
	return renewed.Access, nil
}

// terminateSession clears stored credentials after a failed renewal and
// reports the hard session termination to the caller.
func (c *Client) terminateSession(ctx context.Context, cause error) error {
	if err := c.creds.ClearSession(ctx); err != nil {
		c.logger.ErrorContext(ctx, "failed to clear credentials",
			slog.String("error", err.Error()),
		)
	}

	c.logger.InfoContext(ctx, "session terminated: token refresh failed",
		slog.String("cause", cause.Error()),
	)

	return apperrors.SessionExpired(cause.Error())
}
