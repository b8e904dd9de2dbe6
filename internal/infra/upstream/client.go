// Package upstream implements the HTTP client for the NewsBridge backend
// API. Every data-producing operation in this application (article listing,
// detail fetch, map queries, authentication) is delegated to that backend;
// this package owns the wire contract, cookie forwarding and the resilience
// wrapping around it.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"newsbridge/internal/domain/entity"
	"newsbridge/internal/resilience/circuitbreaker"
	"newsbridge/internal/resilience/retry"
)

// freshSources is the source set the backend expects for non-breaking
// category listings, mirroring the filter the backend's fresh endpoint uses.
const freshSources = "bloomberg, the-wall-street-journal, reuters, abc-news, bbc-news, cnn, the-new-york-times"

// Client talks to the backend base URL. All methods forward the caller's
// session cookie when one is supplied and translate structured error bodies
// into *APIError values.
type Client struct {
	baseURL string
	http    *http.Client
	breaker *circuitbreaker.CircuitBreaker
	retry   retry.Config
	limiter *rate.Limiter
	logger  *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger used for request logging.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithRateLimit caps outbound requests per second to protect the upstream.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) { c.limiter = rate.NewLimiter(rate.Limit(rps), burst) }
}

// New creates a Client for the given backend base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		breaker: circuitbreaker.New(circuitbreaker.UpstreamAPIConfig()),
		retry:   retry.UpstreamConfig(),
		limiter: rate.NewLimiter(rate.Limit(50), 100),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListQuery carries the filters for article listings.
type ListQuery struct {
	Category string
	Search   string
	Offset   int
	Limit    int
	Cookie   string
}

// ListResult is the backend's listing envelope.
type ListResult struct {
	Articles []entity.SummarizedArticle `json:"articles"`
	Total    int                        `json:"total"`
}

// listBody is the filter payload the backend reads from the request body of
// its listing endpoints.
type listBody struct {
	Category string `json:"category,omitempty"`
	Sources  string `json:"sources,omitempty"`
	Search   string `json:"search,omitempty"`
}

// ListFresh fetches breaking-news articles from the backend's fresh endpoint.
func (c *Client) ListFresh(ctx context.Context, q ListQuery) (*ListResult, error) {
	url := fmt.Sprintf("%s/articles/fresh?offset=%d&limit=%d", c.baseURL, q.Offset, q.Limit)
	body := listBody{Category: "breaking-news", Search: q.Search}

	var out ListResult
	if err := c.doJSON(ctx, http.MethodGet, url, q.Cookie, body, &out); err != nil {
		return nil, fmt.Errorf("list fresh articles: %w", err)
	}
	return &out, nil
}

// ListStored fetches articles from the backend's stored-article endpoint,
// used for every category except breaking news.
func (c *Client) ListStored(ctx context.Context, q ListQuery) (*ListResult, error) {
	url := fmt.Sprintf("%s/articles/db?offset=%d&limit=%d", c.baseURL, q.Offset, q.Limit)
	body := listBody{Category: q.Category, Sources: freshSources, Search: q.Search}

	var out ListResult
	if err := c.doJSON(ctx, http.MethodGet, url, q.Cookie, body, &out); err != nil {
		return nil, fmt.Errorf("list stored articles: %w", err)
	}
	return &out, nil
}

// GetArticle fetches a single summarized article by ID.
func (c *Client) GetArticle(ctx context.Context, id, cookie string) (*entity.SummarizedArticle, error) {
	if id == "" {
		return nil, ErrInvalidArticleID
	}
	url := c.baseURL + "/articles/"
	body := map[string]string{"id": id}

	var out entity.SummarizedArticle
	if err := c.doJSON(ctx, http.MethodGet, url, cookie, body, &out); err != nil {
		return nil, fmt.Errorf("get article %s: %w", id, err)
	}
	return &out, nil
}

// MapQueryRequest is the bounded spatial query sent to the backend.
type MapQueryRequest struct {
	Bounds   entity.Bounds `json:"bounds"`
	Zoom     float64       `json:"zoom"`
	Category string        `json:"category,omitempty"`
	Search   string        `json:"search,omitempty"`
	Limit    int           `json:"limit"`
	Offset   int           `json:"offset"`
}

// MapQuery fetches articles inside the given bounds. The backend performs
// the spatial filtering; callers only see the resulting article set.
func (c *Client) MapQuery(ctx context.Context, req MapQueryRequest, cookie string) (*ListResult, error) {
	url := c.baseURL + "/articles/map"

	var out ListResult
	if err := c.doJSON(ctx, http.MethodPost, url, cookie, req, &out); err != nil {
		return nil, fmt.Errorf("map query: %w", err)
	}
	return &out, nil
}

// AuthResponse carries an authentication pass-through result. Body is the
// backend's JSON payload verbatim; SetCookies holds every Set-Cookie header
// the backend emitted so login can copy them to the browser.
type AuthResponse struct {
	Status     int
	Body       json.RawMessage
	SetCookies []string
}

// Login forwards credentials to the backend. Auth endpoints bypass retry:
// replaying credential posts on a slow upstream risks duplicate session
// issuance, and a failed login is not transient.
func (c *Client) Login(ctx context.Context, credentials json.RawMessage) (*AuthResponse, error) {
	return c.doAuth(ctx, c.baseURL+"/users/login", credentials)
}

// Register forwards a registration payload to the backend.
func (c *Client) Register(ctx context.Context, payload json.RawMessage) (*AuthResponse, error) {
	return c.doAuth(ctx, c.baseURL+"/users/register", payload)
}

// GoogleLogin forwards a Google credential token to the backend.
func (c *Client) GoogleLogin(ctx context.Context, payload json.RawMessage) (*AuthResponse, error) {
	return c.doAuth(ctx, c.baseURL+"/users/loginWithGoogle", payload)
}

// Ping checks backend reachability for health probes. It bypasses retry so
// a slow upstream fails the probe quickly instead of after three attempts.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("build ping request: %w", err)
	}

	resp, err := c.send(req)
	if err != nil {
		return fmt.Errorf("ping upstream: %w", err)
	}
	defer closeBody(resp, c.logger)

	if resp.StatusCode >= 500 {
		return fmt.Errorf("ping upstream: status %d", resp.StatusCode)
	}
	return nil
}

// BreakerState exposes the upstream circuit breaker state for health checks.
func (c *Client) BreakerState() string {
	return c.breaker.State().String()
}

// CurrentSession asks the backend whether the forwarded session cookie is
// still valid. The token itself is opaque to this tier; no local checks.
func (c *Client) CurrentSession(ctx context.Context, cookie string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/users/current-session", nil)
	if err != nil {
		return nil, fmt.Errorf("build session request: %w", err)
	}
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}

	resp, err := c.send(req)
	if err != nil {
		return nil, fmt.Errorf("current session: %w", err)
	}
	defer closeBody(resp, c.logger)

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read session response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apiErrorFrom(resp.StatusCode, raw)
	}
	return raw, nil
}

// maxResponseBytes bounds upstream response bodies. The largest legitimate
// payload is a 300-article map result.
const maxResponseBytes = 8 << 20

// doJSON issues a request with a JSON body, retries transient failures
// through the circuit breaker, and decodes the response into out.
func (c *Client) doJSON(ctx context.Context, method, url, cookie string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode request body: %w", err)
	}

	return retry.WithBackoff(ctx, c.retry, func() error {
		req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(payload))
		if err != nil {
			return fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		if cookie != "" {
			req.Header.Set("Cookie", cookie)
		}

		resp, err := c.send(req)
		if err != nil {
			return err
		}
		defer closeBody(resp, c.logger)

		raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		if err != nil {
			return fmt.Errorf("read response: %w", err)
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			apiErr := apiErrorFrom(resp.StatusCode, raw)
			// Surface retryable statuses to the retry layer.
			if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
				return &retry.HTTPError{StatusCode: resp.StatusCode, Message: apiErr.Message}
			}
			return apiErr
		}

		if out != nil {
			if err := json.Unmarshal(raw, out); err != nil {
				return fmt.Errorf("decode response: %w", err)
			}
		}
		return nil
	})
}

// doAuth issues a credential pass-through POST without retry and captures
// Set-Cookie headers.
func (c *Client) doAuth(ctx context.Context, url string, payload json.RawMessage) (*AuthResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build auth request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.send(req)
	if err != nil {
		return nil, fmt.Errorf("auth request: %w", err)
	}
	defer closeBody(resp, c.logger)

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read auth response: %w", err)
	}

	return &AuthResponse{
		Status:     resp.StatusCode,
		Body:       raw,
		SetCookies: resp.Header.Values("Set-Cookie"),
	}, nil
}

// send runs one HTTP round trip through the outbound limiter and the
// circuit breaker.
func (c *Client) send(req *http.Request) (*http.Response, error) {
	if err := c.limiter.Wait(req.Context()); err != nil {
		return nil, fmt.Errorf("outbound limiter: %w", err)
	}

	start := time.Now()
	result, err := c.breaker.Execute(func() (interface{}, error) {
		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		// 5xx counts as a breaker failure so a dying upstream trips it.
		if resp.StatusCode >= 500 {
			raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			closeBody(resp, c.logger)
			return nil, &retry.HTTPError{
				StatusCode: resp.StatusCode,
				Message:    strings.TrimSpace(string(raw)),
			}
		}
		return resp, nil
	})
	duration := time.Since(start)

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) {
			c.logger.Warn("upstream circuit breaker open, request rejected",
				slog.String("path", req.URL.Path))
			recordCall(req.URL.Path, "breaker_open", duration)
			return nil, fmt.Errorf("upstream unavailable: %w", err)
		}
		recordCall(req.URL.Path, "upstream_error", duration)
		return nil, err
	}

	resp := result.(*http.Response)
	recordCall(req.URL.Path, strconv.Itoa(resp.StatusCode), duration)

	c.logger.Debug("upstream request completed",
		slog.String("method", req.Method),
		slog.String("path", req.URL.Path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", duration))

	return resp, nil
}

func closeBody(resp *http.Response, logger *slog.Logger) {
	if err := resp.Body.Close(); err != nil {
		logger.Warn("failed to close upstream response body", slog.Any("error", err))
	}
}
