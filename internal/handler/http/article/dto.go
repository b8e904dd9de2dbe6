// Package article provides the JSON API handlers the article pages consume:
// the paginated listing, single-article detail, and the map-bounded query.
package article

import (
	"newsbridge/internal/domain/entity"
)

// MapResponse is the body of the map query endpoint.
type MapResponse struct {
	Articles []entity.SummarizedArticle `json:"articles"`
	Total    int                        `json:"total"`
}

// emptyMapResponse is what map failures serialize to. The map contract is
// fail-empty: the browser keeps its last render and never sees an error.
func emptyMapResponse() MapResponse {
	return MapResponse{Articles: []entity.SummarizedArticle{}, Total: 0}
}
