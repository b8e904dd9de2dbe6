package article

import (
	"context"
	"log/slog"
	"net/http"

	"newsbridge/internal/domain/entity"
	"newsbridge/internal/handler/http/pathutil"
	"newsbridge/internal/handler/http/respond"
	"newsbridge/internal/infra/upstream"
	"newsbridge/internal/observability/logging"
)

// Getter is the slice of the upstream client the detail handler needs.
type Getter interface {
	GetArticle(ctx context.Context, id, cookie string) (*entity.SummarizedArticle, error)
}

// GetHandler serves single-article detail fetches.
type GetHandler struct {
	Upstream Getter
	Logger   *slog.Logger
}

// ServeHTTP handles GET /api/articles/{id}. Structured upstream errors are
// relayed with their original status and message; anything else is a 500.
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.WithRequestID(ctx, h.Logger)

	id, err := pathutil.ArticleID(r.PathValue("id"))
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	art, err := h.Upstream.GetArticle(ctx, id, r.Header.Get("Cookie"))
	if err != nil {
		logger.Warn("article fetch failed",
			slog.String("article_id", id),
			slog.String("error", respond.SanitizeError(err)))
		relayError(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, art)
}

// relayError writes a structured upstream error with its original status and
// message, or masks everything else as an internal error.
func relayError(w http.ResponseWriter, err error) {
	if apiErr, ok := upstream.AsAPIError(err); ok {
		respond.JSON(w, apiErr.Status, map[string]string{"error": apiErr.Message})
		return
	}
	respond.SafeError(w, http.StatusInternalServerError, err)
}
