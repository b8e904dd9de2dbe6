// Package user provides the authentication pass-through endpoints. This
// tier holds no credential logic at all: request bodies go to the backend
// verbatim, and backend responses (including every Set-Cookie header) come
// back verbatim. Sessions live entirely between the browser and the backend.
package user

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	hhttp "newsbridge/internal/handler/http"
	"newsbridge/internal/handler/http/respond"
	"newsbridge/internal/infra/upstream"
	"newsbridge/internal/observability/logging"
)

// maxCredentialBytes caps auth request bodies. Credential payloads are a
// few hundred bytes; Google credential JWTs stay under 4KB.
const maxCredentialBytes = 16 << 10

var errInvalidPayload = errors.New("invalid request body: JSON object required")

// Authenticator is the slice of the upstream client the auth endpoints use.
type Authenticator interface {
	Login(ctx context.Context, credentials json.RawMessage) (*upstream.AuthResponse, error)
	Register(ctx context.Context, payload json.RawMessage) (*upstream.AuthResponse, error)
	GoogleLogin(ctx context.Context, payload json.RawMessage) (*upstream.AuthResponse, error)
	CurrentSession(ctx context.Context, cookie string) (json.RawMessage, error)
}

// Handler serves the /api/users routes.
type Handler struct {
	Upstream Authenticator
	Logger   *slog.Logger
}

// Register wires the auth routes onto the mux. The credential-accepting
// routes sit behind the given rate limiter; the session check does not,
// since every page load performs one.
func Register(mux *http.ServeMux, upstream Authenticator, limiter *hhttp.RateLimiter, logger *slog.Logger) {
	h := Handler{Upstream: upstream, Logger: logger}
	mux.Handle("POST /api/users/login", limiter.Limit(http.HandlerFunc(h.Login)))
	mux.Handle("POST /api/users/register", limiter.Limit(http.HandlerFunc(h.SignUp)))
	mux.Handle("POST /api/users/google", limiter.Limit(http.HandlerFunc(h.Google)))
	mux.HandleFunc("GET /api/users/me", h.Me)
}

// Login handles POST /api/users/login.
func (h Handler) Login(w http.ResponseWriter, r *http.Request) {
	h.passThrough(w, r, "login", h.Upstream.Login)
}

// SignUp handles POST /api/users/register.
func (h Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	h.passThrough(w, r, "register", h.Upstream.Register)
}

// Google handles POST /api/users/google with a Google credential payload.
func (h Handler) Google(w http.ResponseWriter, r *http.Request) {
	h.passThrough(w, r, "google login", h.Upstream.GoogleLogin)
}

// Me handles GET /api/users/me. Any upstream failure collapses to 401: a
// session the backend cannot confirm is not a session.
func (h Handler) Me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.WithRequestID(ctx, h.Logger)

	session, err := h.Upstream.CurrentSession(ctx, r.Header.Get("Cookie"))
	if err != nil {
		logger.Debug("session check failed",
			slog.String("error", respond.SanitizeError(err)))
		respond.JSON(w, http.StatusUnauthorized,
			map[string]string{"error": upstream.ErrUnauthorized.Error()})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(session)
}

// passThrough forwards the request body to one upstream auth call and
// relays the backend's status, body and cookies unchanged.
func (h Handler) passThrough(w http.ResponseWriter, r *http.Request, op string,
	call func(context.Context, json.RawMessage) (*upstream.AuthResponse, error)) {

	ctx := r.Context()
	logger := logging.WithRequestID(ctx, h.Logger)

	payload, err := io.ReadAll(io.LimitReader(r.Body, maxCredentialBytes))
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	if len(payload) == 0 || !json.Valid(payload) {
		respond.Error(w, http.StatusBadRequest, errInvalidPayload)
		return
	}

	resp, err := call(ctx, payload)
	if err != nil {
		logger.Warn("auth pass-through failed",
			slog.String("operation", op),
			slog.String("error", respond.SanitizeError(err)))
		respond.SafeError(w, http.StatusBadGateway, err)
		return
	}

	for _, cookie := range resp.SetCookies {
		w.Header().Add("Set-Cookie", cookie)
	}

	logger.Info("auth pass-through completed",
		slog.String("operation", op),
		slog.Int("status", resp.Status))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Status)
	_, _ = w.Write(resp.Body)
}
