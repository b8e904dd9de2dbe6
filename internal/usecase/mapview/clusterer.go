package mapview

import (
	"fmt"

	"newsbridge/internal/domain/entity"
	"newsbridge/internal/webui/palette"
)

// Feature is one GeoJSON point feature for a marker.
type Feature struct {
	Type       string         `json:"type"`
	Geometry   Geometry       `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

// Geometry is a GeoJSON point geometry in [lng, lat] order.
type Geometry struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

// FeatureCollection is a GeoJSON feature collection.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Source is a marker source ready for the mapping library: the feature set
// plus the clustering configuration the library applies client-side.
// Clustering itself is never computed here.
type Source struct {
	Data           FeatureCollection `json:"data"`
	Cluster        bool              `json:"cluster"`
	ClusterMaxZoom int               `json:"clusterMaxZoom,omitempty"`
	ClusterRadius  int               `json:"clusterRadius,omitempty"`
}

// Clusterer turns a marker set into a renderable source. It is injected so
// the mapping library's clustering stays a swappable capability and tests
// can use a fake.
type Clusterer interface {
	BuildSource(articles []entity.SummarizedArticle) Source
}

// LibraryClusterer is the default Clusterer. It emits a clustered GeoJSON
// source with the configuration the map page's library expects; radius and
// max-zoom match the values the map has always used.
type LibraryClusterer struct {
	MaxZoom int
	Radius  int
}

// NewLibraryClusterer returns a LibraryClusterer with the standard settings.
func NewLibraryClusterer() *LibraryClusterer {
	return &LibraryClusterer{MaxZoom: 14, Radius: 50}
}

// BuildSource builds the clustered point source. Articles without
// coordinates are skipped; each feature carries the minimal properties the
// popup needs plus the category color.
func (lc *LibraryClusterer) BuildSource(articles []entity.SummarizedArticle) Source {
	features := make([]Feature, 0, len(articles))
	for i := range articles {
		a := &articles[i]
		if !a.HasCoordinates() {
			continue
		}

		id := a.ID
		if id == "" {
			id = fmt.Sprintf("article_%d", i)
		}
		category := a.Category
		if category == "" {
			category = "unknown"
		}

		features = append(features, Feature{
			Type: "Feature",
			Geometry: Geometry{
				Type:        "Point",
				Coordinates: [2]float64{*a.Lng, *a.Lat},
			},
			Properties: map[string]any{
				"id":       id,
				"title":    a.Title,
				"category": category,
				"color":    palette.Hex(category),
			},
		})
	}

	return Source{
		Data:           FeatureCollection{Type: "FeatureCollection", Features: features},
		Cluster:        true,
		ClusterMaxZoom: lc.MaxZoom,
		ClusterRadius:  lc.Radius,
	}
}
