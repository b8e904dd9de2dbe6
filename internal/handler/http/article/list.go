package article

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"newsbridge/internal/common/pagination"
	"newsbridge/internal/handler/http/respond"
	"newsbridge/internal/observability/logging"
	"newsbridge/internal/usecase/listview"
)

var errInvalidOffset = errors.New("invalid query parameter: offset must be a non-negative integer")

// ListHandler serves the paginated article listing. The breaking-news
// category reads the backend's fresh endpoint, everything else reads stored
// articles; that routing lives in the listview service.
type ListHandler struct {
	List          *listview.Service
	PaginationCfg pagination.Config
	Logger        *slog.Logger
}

// ServeHTTP handles GET /api/articles.
// Query params: category, search, page (1-based) or offset, limit.
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	startTime := time.Now()
	logger := logging.WithRequestID(ctx, h.Logger)

	params, err := pagination.ParseQueryParams(r, h.PaginationCfg)
	if err != nil {
		logger.Warn("invalid pagination parameters", slog.String("error", err.Error()))
		pagination.RecordError("validation")
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	// Clients that keep the raw backend contract send offset instead of
	// page. Offsets are aligned to the page size by integer division.
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		offset, err := strconv.Atoi(offsetStr)
		if err != nil || offset < 0 {
			pagination.RecordError("validation")
			respond.SafeError(w, http.StatusBadRequest, errInvalidOffset)
			return
		}
		params.Page = offset/listview.PageSize + 1
	}

	q := listview.Query{
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("search"),
		Page:     params.Page,
		Cookie:   r.Header.Get("Cookie"),
	}

	page, err := h.List.GetPage(ctx, q)
	if err != nil {
		logger.Error("failed to load article page",
			slog.String("category", q.Category),
			slog.Int("page", q.Page),
			slog.String("error", respond.SanitizeError(err)))
		pagination.RecordError("upstream")
		relayError(w, err)
		return
	}

	pagination.RecordRequest(http.StatusOK, params.Page)

	logger.Info("article page served",
		slog.String("category", q.Category),
		slog.Int("page", page.Page),
		slog.Int("returned", len(page.Articles)),
		slog.Bool("has_next", page.HasNext),
		slog.Duration("duration", time.Since(startTime)))

	respond.JSON(w, http.StatusOK, page)
}
