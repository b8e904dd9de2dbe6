// Package http provides shared HTTP infrastructure for the web tier:
// middleware, health and metrics endpoints, and response helpers used by
// the article, user, chat and page handlers.
package http

import (
	"context"
	"net/http"
	"time"

	"newsbridge/internal/handler/http/respond"
)

// UpstreamChecker reports backend API reachability for health probes.
type UpstreamChecker interface {
	Ping(ctx context.Context) error
	BreakerState() string
}

// HealthResponse is the JSON body of the health endpoint.
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp string                 `json:"timestamp"`
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus represents the status of a single health check.
type CheckStatus struct {
	Status  string            `json:"status"`
	Message string            `json:"message,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// HealthHandler serves readiness checks. The application has no state of
// its own, so readiness is defined by backend API reachability plus the
// configuration of optional subsystems.
type HealthHandler struct {
	Upstream UpstreamChecker
	Version  string

	// AssistantProvider is the configured chat provider name, or "none".
	// A missing assistant degrades the chat widget but is not unhealthy.
	AssistantProvider string
}

// ServeHTTP performs health checks and returns 200 when healthy or 503
// when the backend is unreachable.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]CheckStatus)
	allHealthy := true

	if h.Upstream != nil {
		upstreamCheck := h.checkUpstream(ctx)
		checks["upstream"] = upstreamCheck
		if upstreamCheck.Status == "unhealthy" {
			allHealthy = false
		}
	} else {
		checks["upstream"] = CheckStatus{
			Status:  "unhealthy",
			Message: "not configured",
		}
		allHealthy = false
	}

	checks["assistant"] = h.checkAssistant()

	status := "healthy"
	code := http.StatusOK
	if !allHealthy {
		status = "unhealthy"
		code = http.StatusServiceUnavailable
	}

	respond.JSON(w, code, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	})
}

func (h *HealthHandler) checkUpstream(ctx context.Context) CheckStatus {
	details := map[string]string{
		"circuit_breaker": h.Upstream.BreakerState(),
	}

	if err := h.Upstream.Ping(ctx); err != nil {
		return CheckStatus{
			Status:  "unhealthy",
			Message: respond.SanitizeError(err),
			Details: details,
		}
	}

	return CheckStatus{Status: "healthy", Details: details}
}

func (h *HealthHandler) checkAssistant() CheckStatus {
	if h.AssistantProvider == "" || h.AssistantProvider == "none" {
		return CheckStatus{Status: "healthy", Message: "not configured, chat degraded"}
	}
	return CheckStatus{
		Status:  "healthy",
		Details: map[string]string{"provider": h.AssistantProvider},
	}
}

// LivenessHandler answers liveness probes. It only proves the process is
// serving requests, so it never checks dependencies.
func LivenessHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, http.StatusOK, map[string]string{"status": "alive"})
	})
}
