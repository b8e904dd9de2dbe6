package article

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsbridge/internal/domain/entity"
	"newsbridge/internal/infra/upstream"
	"newsbridge/internal/usecase/mapview"
)

type stubMapQuerier struct {
	got       upstream.MapQueryRequest
	gotCookie string
	called    bool
	result    *upstream.ListResult
	err       error
}

func (s *stubMapQuerier) MapQuery(ctx context.Context, req upstream.MapQueryRequest, cookie string) (*upstream.ListResult, error) {
	s.called = true
	s.got = req
	s.gotCookie = cookie
	return s.result, s.err
}

func newMapHandler(q MapQuerier) MapHandler {
	return MapHandler{
		Upstream: q,
		Tiers:    mapview.DefaultTiers(),
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func mapBody(t *testing.T, zoom float64) string {
	t.Helper()
	b, err := json.Marshal(map[string]any{
		"bounds": map[string]float64{"north": 50, "south": 40, "east": 10, "west": 0},
		"zoom":   zoom,
	})
	require.NoError(t, err)
	return string(b)
}

func TestMapHandler_ServesArticles(t *testing.T) {
	stub := &stubMapQuerier{result: &upstream.ListResult{
		Articles: []entity.SummarizedArticle{summarized("a")},
		Total:    1,
	}}
	h := newMapHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/api/articles/map", strings.NewReader(mapBody(t, 5)))
	req.Header.Set("Cookie", "session=tok")
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp MapResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Articles, 1)
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, "session=tok", stub.gotCookie)
}

func TestMapHandler_LimitFromZoomTier(t *testing.T) {
	tests := []struct {
		zoom      float64
		wantLimit int
	}{
		{2, 50},
		{4, 100},
		{6, 150},
		{8, 200},
		{12, 300},
	}

	for _, tt := range tests {
		stub := &stubMapQuerier{result: &upstream.ListResult{}}
		h := newMapHandler(stub)

		req := httptest.NewRequest(http.MethodPost, "/api/articles/map", strings.NewReader(mapBody(t, tt.zoom)))
		h.ServeHTTP(httptest.NewRecorder(), req)

		assert.Equal(t, tt.wantLimit, stub.got.Limit, "zoom %v", tt.zoom)
	}
}

func TestMapHandler_ExplicitLimitWins(t *testing.T) {
	stub := &stubMapQuerier{result: &upstream.ListResult{}}
	h := newMapHandler(stub)

	body := `{"bounds":{"north":50,"south":40,"east":10,"west":0},"zoom":5,"limit":25}`
	req := httptest.NewRequest(http.MethodPost, "/api/articles/map", strings.NewReader(body))
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, 25, stub.got.Limit)
}

func TestMapHandler_FailuresReturnEmpty200(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		stub       *stubMapQuerier
		wantCalled bool
	}{
		{
			name:       "upstream error",
			body:       `{"bounds":{"north":50,"south":40,"east":10,"west":0},"zoom":5}`,
			stub:       &stubMapQuerier{err: assert.AnError},
			wantCalled: true,
		},
		{
			name:       "malformed body",
			body:       `{not json`,
			stub:       &stubMapQuerier{},
			wantCalled: false,
		},
		{
			name:       "inverted bounds",
			body:       `{"bounds":{"north":10,"south":40,"east":10,"west":0},"zoom":5}`,
			stub:       &stubMapQuerier{},
			wantCalled: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newMapHandler(tt.stub)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/articles/map", strings.NewReader(tt.body)))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, `{"articles":[],"total":0}`, rec.Body.String())
			assert.Equal(t, tt.wantCalled, tt.stub.called)
		})
	}
}

func TestMapHandler_NilArticlesSerializeAsEmptyArray(t *testing.T) {
	stub := &stubMapQuerier{result: &upstream.ListResult{Articles: nil, Total: 0}}
	h := newMapHandler(stub)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/articles/map", strings.NewReader(mapBody(t, 5))))

	assert.Contains(t, rec.Body.String(), `"articles":[]`)
}
