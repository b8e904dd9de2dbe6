package upstream

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsbridge/internal/domain/entity"
)

func TestListFreshRoutesToFreshEndpoint(t *testing.T) {
	var gotPath, gotQuery, gotCookie string
	var gotBody listBody

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotCookie = r.Header.Get("Cookie")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)

		_ = json.NewEncoder(w).Encode(ListResult{
			Articles: []entity.SummarizedArticle{{Article: entity.Article{ID: "1"}}},
			Total:    42,
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	result, err := c.ListFresh(context.Background(), ListQuery{
		Search: "climate",
		Offset: 12,
		Limit:  6,
		Cookie: "sessionToken=abc",
	})
	require.NoError(t, err)

	assert.Equal(t, "/articles/fresh", gotPath)
	assert.Equal(t, "offset=12&limit=6", gotQuery)
	assert.Equal(t, "sessionToken=abc", gotCookie)
	assert.Equal(t, "breaking-news", gotBody.Category)
	assert.Equal(t, "climate", gotBody.Search)
	assert.Equal(t, 42, result.Total)
	assert.Len(t, result.Articles, 1)
}

func TestListStoredRoutesToDBEndpoint(t *testing.T) {
	var gotPath string
	var gotBody listBody

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(ListResult{})
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.ListStored(context.Background(), ListQuery{Category: "science", Limit: 6})
	require.NoError(t, err)

	assert.Equal(t, "/articles/db", gotPath)
	assert.Equal(t, "science", gotBody.Category)
	assert.NotEmpty(t, gotBody.Sources)
}

func TestGetArticle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["id"] != "7" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"error":"article not found"}`)
			return
		}
		_ = json.NewEncoder(w).Encode(entity.SummarizedArticle{
			Article:   entity.Article{ID: "7", Title: "Found"},
			Sentiment: entity.SentimentNeutral,
		})
	}))
	defer srv.Close()

	c := New(srv.URL)

	article, err := c.GetArticle(context.Background(), "7", "")
	require.NoError(t, err)
	assert.Equal(t, "Found", article.Title)

	_, err = c.GetArticle(context.Background(), "8", "")
	apiErr, ok := AsAPIError(err)
	require.True(t, ok, "expected APIError, got %v", err)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "article not found", apiErr.Message)

	_, err = c.GetArticle(context.Background(), "", "")
	assert.ErrorIs(t, err, ErrInvalidArticleID)
}

func TestMapQuerySendsBoundsAndLimit(t *testing.T) {
	var got MapQueryRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/articles/map", r.URL.Path)
		_ = json.NewDecoder(r.Body).Decode(&got)
		_ = json.NewEncoder(w).Encode(ListResult{Total: 3})
	}))
	defer srv.Close()

	c := New(srv.URL)
	req := MapQueryRequest{
		Bounds: entity.Bounds{North: 50, South: 40, East: 10, West: -10},
		Zoom:   5,
		Limit:  150,
	}
	result, err := c.MapQuery(context.Background(), req, "")
	require.NoError(t, err)

	assert.Equal(t, 3, result.Total)
	assert.Equal(t, req.Bounds, got.Bounds)
	assert.Equal(t, 150, got.Limit)
}

func TestLoginCapturesSetCookieHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Set-Cookie", "sessionToken=secret; HttpOnly; Path=/")
		_, _ = io.WriteString(w, `{"status":"success"}`)
	}))
	defer srv.Close()

	c := New(srv.URL)
	resp, err := c.Login(context.Background(), json.RawMessage(`{"email":"a@b.c","password":"pw"}`))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.Status)
	require.Len(t, resp.SetCookies, 1)
	assert.Contains(t, resp.SetCookies[0], "sessionToken=secret")
}

func TestLoginRelaysBackendFailureStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"error":"invalid credentials"}`)
	}))
	defer srv.Close()

	c := New(srv.URL)
	resp, err := c.Login(context.Background(), json.RawMessage(`{}`))
	require.NoError(t, err)

	// Auth endpoints pass the status and body through without translating
	// them into errors; the handler decides what to relay.
	assert.Equal(t, http.StatusUnauthorized, resp.Status)
	assert.JSONEq(t, `{"error":"invalid credentials"}`, string(resp.Body))
}

func TestCurrentSessionForwardsCookie(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Cookie") != "sessionToken=good" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"error":"invalid or expired session"}`)
			return
		}
		_, _ = io.WriteString(w, `{"user":{"email":"a@b.c"}}`)
	}))
	defer srv.Close()

	c := New(srv.URL)

	raw, err := c.CurrentSession(context.Background(), "sessionToken=good")
	require.NoError(t, err)
	assert.Contains(t, string(raw), "a@b.c")

	_, err = c.CurrentSession(context.Background(), "sessionToken=stale")
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
}

func TestDoJSONRetriesTransientServerErrors(t *testing.T) {
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_ = json.NewEncoder(w).Encode(ListResult{Total: 1})
	}))
	defer srv.Close()

	c := New(srv.URL)
	result, err := c.ListStored(context.Background(), ListQuery{Category: "science", Limit: 6})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Total)
	assert.Equal(t, int32(3), calls.Load())
}

func TestDoJSONDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":"limit must be positive"}`)
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.ListStored(context.Background(), ListQuery{Category: "science"})
	require.Error(t, err)

	assert.Equal(t, int32(1), calls.Load(), "4xx must not be retried")
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "limit must be positive", apiErr.Message)
}

func TestAPIErrorFallsBackToStatusText(t *testing.T) {
	apiErr := apiErrorFrom(http.StatusServiceUnavailable, []byte("<html>gateway</html>"))
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.Status)
	assert.Equal(t, "Service Unavailable", apiErr.Message)
}
