package article

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"newsbridge/internal/domain/entity"
	"newsbridge/internal/handler/http/respond"
	"newsbridge/internal/infra/upstream"
	"newsbridge/internal/observability/logging"
	"newsbridge/internal/usecase/mapview"
)

// MapQuerier is the slice of the upstream client the map handler needs.
type MapQuerier interface {
	MapQuery(ctx context.Context, req upstream.MapQueryRequest, cookie string) (*upstream.ListResult, error)
}

// MapHandler serves bounded spatial queries for the map view. Failures
// return an empty result with HTTP 200: pins disappearing beats an error
// banner over the map.
type MapHandler struct {
	Upstream MapQuerier
	Tiers    mapview.Tiers
	Logger   *slog.Logger
}

// mapRequest is the browser's map query body.
type mapRequest struct {
	Bounds   entity.Bounds `json:"bounds"`
	Zoom     float64       `json:"zoom"`
	Category string        `json:"category"`
	Search   string        `json:"search"`
	Limit    int           `json:"limit"`
	Offset   int           `json:"offset"`
}

// ServeHTTP handles POST /api/articles/map.
func (h MapHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.WithRequestID(ctx, h.Logger)

	var req mapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// Even a malformed body keeps the fail-empty contract.
		logger.Warn("malformed map query body", slog.String("error", err.Error()))
		respond.JSON(w, http.StatusOK, emptyMapResponse())
		return
	}

	if req.Bounds.North < req.Bounds.South {
		logger.Warn("inverted map bounds",
			slog.Float64("north", req.Bounds.North),
			slog.Float64("south", req.Bounds.South))
		respond.JSON(w, http.StatusOK, emptyMapResponse())
		return
	}

	limit := req.Limit
	if limit <= 0 {
		limit = h.Tiers.LimitForZoom(req.Zoom)
	}

	result, err := h.Upstream.MapQuery(ctx, upstream.MapQueryRequest{
		Bounds:   req.Bounds,
		Zoom:     req.Zoom,
		Category: req.Category,
		Search:   req.Search,
		Limit:    limit,
		Offset:   req.Offset,
	}, r.Header.Get("Cookie"))
	if err != nil {
		logger.Warn("map query failed, returning empty set",
			slog.Float64("zoom", req.Zoom),
			slog.String("category", req.Category),
			slog.String("error", respond.SanitizeError(err)))
		respond.JSON(w, http.StatusOK, emptyMapResponse())
		return
	}

	articles := result.Articles
	if articles == nil {
		articles = []entity.SummarizedArticle{}
	}

	logger.Debug("map query served",
		slog.Float64("zoom", req.Zoom),
		slog.Int("limit", limit),
		slog.Int("returned", len(articles)))

	respond.JSON(w, http.StatusOK, MapResponse{
		Articles: articles,
		Total:    result.Total,
	})
}
