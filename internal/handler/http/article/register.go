package article

import (
	"log/slog"
	"net/http"

	"newsbridge/internal/common/pagination"
	"newsbridge/internal/infra/upstream"
	"newsbridge/internal/usecase/listview"
	"newsbridge/internal/usecase/mapview"
)

// Register wires the article API routes onto the mux.
func Register(mux *http.ServeMux, list *listview.Service, client *upstream.Client, tiers mapview.Tiers, paginationCfg pagination.Config, logger *slog.Logger) {
	mux.Handle("GET /api/articles", ListHandler{
		List:          list,
		PaginationCfg: paginationCfg,
		Logger:        logger,
	})
	mux.Handle("POST /api/articles/map", MapHandler{
		Upstream: client,
		Tiers:    tiers,
		Logger:   logger,
	})
	mux.Handle("GET /api/articles/{id}", GetHandler{
		Upstream: client,
		Logger:   logger,
	})
}
