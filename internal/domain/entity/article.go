// Package entity defines the core domain entities shared between the upstream
// API client and the rendering layer. All article data is owned by the backend;
// the types here are read-only snapshots of upstream responses and are never
// written back.
package entity

import "time"

// Article represents an identified news article as returned by the backend.
// Most fields are optional upstream; nullable fields are pointers so the
// rendering layer can distinguish "absent" from zero values.
type Article struct {
	ID           string     `json:"id"`
	Source       string     `json:"source,omitempty"`
	Title        string     `json:"title,omitempty"`
	URL          string     `json:"url,omitempty"`
	ImageURL     string     `json:"image_url,omitempty"`
	PublishedAt  *time.Time `json:"published_at,omitempty"`
	Author       string     `json:"author,omitempty"`
	Content      string     `json:"content,omitempty"`
	Lat          *float64   `json:"lat,omitempty"`
	Lng          *float64   `json:"lng,omitempty"`
	LocationName string     `json:"location_name,omitempty"`
	Category     string     `json:"category,omitempty"`
}

// HasCoordinates reports whether both latitude and longitude are present.
// Articles without coordinates are listed but never placed on the map.
func (a *Article) HasCoordinates() bool {
	return a.Lat != nil && a.Lng != nil
}

// Country returns the trailing comma-separated token of the location name,
// which the backend populates as "City, Region, Country". Returns an empty
// string when no location is known.
func (a *Article) Country() string {
	if a.LocationName == "" {
		return ""
	}
	name := a.LocationName
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == ',' {
			name = name[i+1:]
			break
		}
	}
	return trimSpace(name)
}

func trimSpace(s string) string {
	start, end := 0, len(s)
	for start < end && (s[start] == ' ' || s[start] == '\t') {
		start++
	}
	for end > start && (s[end-1] == ' ' || s[end-1] == '\t') {
		end--
	}
	return s[start:end]
}

// SummarizedArticle is an Article enriched by the backend's AI pipeline.
// Summary, sentiment and entities are produced entirely upstream; this
// system never computes or mutates them.
type SummarizedArticle struct {
	Article

	Summary            string    `json:"summary,omitempty"`
	Significance       string    `json:"significance,omitempty"`
	Sentiment          Sentiment `json:"sentiment,omitempty"`
	Entities           []Entity  `json:"entities,omitempty"`
	FutureImplications string    `json:"future_implications,omitempty"`
}

// Entity is a named real-world object extracted from an article upstream.
type Entity struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	WikiURL     string `json:"wiki_url,omitempty"`
}

// Well-known entity types. The backend may emit other values; they are
// displayed as-is.
const (
	EntityPerson = "PERSON"
	EntityOrg    = "ORG"
	EntityEvent  = "EVENT"
)
