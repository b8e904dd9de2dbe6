package mapview

import (
	"encoding/json"
	"testing"

	"newsbridge/internal/domain/entity"
)

func TestBuildSource(t *testing.T) {
	lc := NewLibraryClusterer()
	articles := []entity.SummarizedArticle{
		mkArticle("a1", 35.7, 139.7, "technology"),
		{Article: entity.Article{ID: "a2", Title: "no coords", Category: "sports"}},
		mkArticle("a3", 48.9, 2.3, "mystery"),
	}

	src := lc.BuildSource(articles)
	if !src.Cluster {
		t.Error("clustering must be enabled")
	}
	if src.ClusterMaxZoom != 14 || src.ClusterRadius != 50 {
		t.Errorf("cluster config = maxZoom %d radius %d, want 14/50", src.ClusterMaxZoom, src.ClusterRadius)
	}
	if len(src.Data.Features) != 2 {
		t.Fatalf("features = %d, want 2 (article without coordinates skipped)", len(src.Data.Features))
	}

	f := src.Data.Features[0]
	if f.Geometry.Coordinates != [2]float64{139.7, 35.7} {
		t.Errorf("coordinates = %v, want lng-lat order [139.7 35.7]", f.Geometry.Coordinates)
	}
	if f.Properties["color"] != "#1e40af" {
		t.Errorf("technology color = %v, want #1e40af", f.Properties["color"])
	}
	if src.Data.Features[1].Properties["color"] != "#6b7280" {
		t.Errorf("unknown category must fall back to gray")
	}
}

func TestBuildSourceFillsMissingIDs(t *testing.T) {
	lat, lng := 10.0, 20.0
	articles := []entity.SummarizedArticle{
		{Article: entity.Article{Lat: &lat, Lng: &lng}},
	}
	src := NewLibraryClusterer().BuildSource(articles)
	if len(src.Data.Features) != 1 {
		t.Fatal("expected one feature")
	}
	if src.Data.Features[0].Properties["id"] != "article_0" {
		t.Errorf("id = %v, want article_0", src.Data.Features[0].Properties["id"])
	}
	if src.Data.Features[0].Properties["category"] != "unknown" {
		t.Errorf("category = %v, want unknown", src.Data.Features[0].Properties["category"])
	}
}

func TestBuildSourceEmpty(t *testing.T) {
	src := NewLibraryClusterer().BuildSource(nil)
	if len(src.Data.Features) != 0 {
		t.Errorf("empty input produced features: %d", len(src.Data.Features))
	}

	raw, err := json.Marshal(src)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	data, ok := decoded["data"].(map[string]any)
	if !ok || data["type"] != "FeatureCollection" {
		t.Errorf("serialized source missing FeatureCollection envelope: %s", raw)
	}
}
