package user

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	hhttp "newsbridge/internal/handler/http"
	"newsbridge/internal/infra/upstream"
)

type stubAuth struct {
	loginPayload   json.RawMessage
	sessionCookie  string
	authResp       *upstream.AuthResponse
	authErr        error
	sessionBody    json.RawMessage
	sessionErr     error
	registerCalled bool
	googleCalled   bool
}

func (s *stubAuth) Login(ctx context.Context, credentials json.RawMessage) (*upstream.AuthResponse, error) {
	s.loginPayload = credentials
	return s.authResp, s.authErr
}

func (s *stubAuth) Register(ctx context.Context, payload json.RawMessage) (*upstream.AuthResponse, error) {
	s.registerCalled = true
	return s.authResp, s.authErr
}

func (s *stubAuth) GoogleLogin(ctx context.Context, payload json.RawMessage) (*upstream.AuthResponse, error) {
	s.googleCalled = true
	return s.authResp, s.authErr
}

func (s *stubAuth) CurrentSession(ctx context.Context, cookie string) (json.RawMessage, error) {
	s.sessionCookie = cookie
	return s.sessionBody, s.sessionErr
}

func newMux(stub *stubAuth) *http.ServeMux {
	mux := http.NewServeMux()
	Register(mux, stub, hhttp.NewRateLimiter(100, time.Minute), slog.New(slog.NewTextHandler(io.Discard, nil)))
	return mux
}

func TestLogin_CopiesSetCookieHeaders(t *testing.T) {
	stub := &stubAuth{authResp: &upstream.AuthResponse{
		Status: http.StatusOK,
		Body:   json.RawMessage(`{"user":{"id":"u1"}}`),
		SetCookies: []string{
			"session=abc; Path=/; HttpOnly",
			"better-auth.session_token=xyz; Path=/; Secure",
		},
	}}
	mux := newMux(stub)

	req := httptest.NewRequest(http.MethodPost, "/api/users/login",
		strings.NewReader(`{"email":"a@b.c","password":"pw"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"user":{"id":"u1"}}`, rec.Body.String())
	assert.Equal(t, []string{
		"session=abc; Path=/; HttpOnly",
		"better-auth.session_token=xyz; Path=/; Secure",
	}, rec.Header().Values("Set-Cookie"))

	assert.JSONEq(t, `{"email":"a@b.c","password":"pw"}`, string(stub.loginPayload))
}

func TestLogin_RelaysUpstreamStatus(t *testing.T) {
	stub := &stubAuth{authResp: &upstream.AuthResponse{
		Status: http.StatusUnauthorized,
		Body:   json.RawMessage(`{"error":"invalid credentials"}`),
	}}
	mux := newMux(stub)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/users/login",
		strings.NewReader(`{"email":"a@b.c","password":"bad"}`)))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"invalid credentials"}`, rec.Body.String())
}

func TestLogin_RejectsInvalidJSON(t *testing.T) {
	stub := &stubAuth{}
	mux := newMux(stub)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/users/login",
		strings.NewReader(`not json`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, stub.loginPayload, "upstream must not see a malformed payload")
}

func TestLogin_UpstreamDown(t *testing.T) {
	stub := &stubAuth{authErr: assert.AnError}
	mux := newMux(stub)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/users/login",
		strings.NewReader(`{"email":"a@b.c"}`)))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
}

func TestRegister_Created(t *testing.T) {
	stub := &stubAuth{authResp: &upstream.AuthResponse{
		Status: http.StatusCreated,
		Body:   json.RawMessage(`{"user":{"id":"u2"}}`),
	}}
	mux := newMux(stub)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/users/register",
		strings.NewReader(`{"email":"new@b.c","password":"pw","name":"n"}`)))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, stub.registerCalled)
}

func TestGoogle_PassThrough(t *testing.T) {
	stub := &stubAuth{authResp: &upstream.AuthResponse{
		Status: http.StatusOK,
		Body:   json.RawMessage(`{"user":{"id":"u3"}}`),
	}}
	mux := newMux(stub)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/users/google",
		strings.NewReader(`{"credential":"google-jwt"}`)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, stub.googleCalled)
}

func TestMe_ForwardsCookie(t *testing.T) {
	stub := &stubAuth{sessionBody: json.RawMessage(`{"user":{"id":"u1"},"expires":"2026-09-01T00:00:00Z"}`)}
	mux := newMux(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req.Header.Set("Cookie", "session=abc")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "session=abc", stub.sessionCookie)
	assert.Contains(t, rec.Body.String(), `"u1"`)
}

func TestMe_Invalid(t *testing.T) {
	stub := &stubAuth{sessionErr: assert.AnError}
	mux := newMux(stub)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/users/me", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"invalid or expired session"}`, rec.Body.String())
}
