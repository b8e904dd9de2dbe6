package mapview

import (
	"strings"

	"newsbridge/internal/domain/entity"
)

// Stats summarizes the marker set currently rendered on the map. It is
// recomputed after every fetch, successful or not, and reported to the view.
type Stats struct {
	TotalArticles      int            `json:"totalArticles"`
	WithCoordinates    int            `json:"articlesWithCoordinates"`
	Countries          int            `json:"countriesCount"`
	Categories         int            `json:"categoriesCount"`
	EstimatedClusters  int            `json:"clustersCount"`
	ArticlesByCategory map[string]int `json:"articleCountsByCategory"`
}

// ComputeStats aggregates the marker set at the given zoom level.
//
// The cluster count is an estimate only: the mapping library clusters
// client-side, so the server approximates by zoom tier (below zoom 6 about
// five markers share a cluster, below 10 about two, beyond that markers
// stand alone).
func ComputeStats(articles []entity.SummarizedArticle, zoom float64) Stats {
	withCoords := 0
	countries := make(map[string]struct{})
	categories := make(map[string]struct{})
	byCategory := make(map[string]int)

	for i := range articles {
		a := &articles[i]
		if a.HasCoordinates() {
			withCoords++
			if country := a.Country(); country != "" {
				countries[country] = struct{}{}
			}
		}
		if a.Category != "" {
			categories[a.Category] = struct{}{}
		}

		cat := a.Category
		if cat == "" {
			cat = "unknown"
		}
		byCategory[strings.ToLower(cat)]++
	}

	clusters := withCoords
	switch {
	case zoom < 6:
		clusters = ceilDiv(withCoords, 5)
	case zoom < 10:
		clusters = ceilDiv(withCoords, 2)
	}

	return Stats{
		TotalArticles:      len(articles),
		WithCoordinates:    withCoords,
		Countries:          len(countries),
		Categories:         len(categories),
		EstimatedClusters:  clusters,
		ArticlesByCategory: byCategory,
	}
}

func ceilDiv(n, d int) int {
	if n == 0 {
		return 0
	}
	return (n + d - 1) / d
}
