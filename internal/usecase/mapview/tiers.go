package mapview

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Tier maps a maximum zoom level to a fetch limit. Wider views (low zoom)
// fetch fewer articles because the map is dominated by clusters anyway;
// close-in views fetch more so individual markers fill the screen.
type Tier struct {
	MaxZoom float64 `yaml:"max_zoom" json:"maxZoom"`
	Limit   int     `yaml:"limit" json:"limit"`
}

// Tiers is an ordered list of zoom tiers plus the limit used beyond the
// last tier.
type Tiers struct {
	Levels       []Tier `yaml:"levels" json:"levels"`
	DefaultLimit int    `yaml:"default_limit" json:"defaultLimit"`
}

// DefaultTiers returns the built-in zoom tiers: world 50, continent 100,
// country 150, region 200, city 300.
func DefaultTiers() Tiers {
	return Tiers{
		Levels: []Tier{
			{MaxZoom: 2, Limit: 50},
			{MaxZoom: 4, Limit: 100},
			{MaxZoom: 6, Limit: 150},
			{MaxZoom: 8, Limit: 200},
		},
		DefaultLimit: 300,
	}
}

// LimitForZoom returns the fetch limit for the given zoom level.
func (t Tiers) LimitForZoom(zoom float64) int {
	for _, level := range t.Levels {
		if zoom <= level.MaxZoom {
			return level.Limit
		}
	}
	return t.DefaultLimit
}

// Validate checks that tiers are ordered and limits positive.
func (t Tiers) Validate() error {
	if t.DefaultLimit <= 0 {
		return fmt.Errorf("default limit must be positive, got %d", t.DefaultLimit)
	}
	if !sort.SliceIsSorted(t.Levels, func(i, j int) bool {
		return t.Levels[i].MaxZoom < t.Levels[j].MaxZoom
	}) {
		return fmt.Errorf("tier levels must be ordered by max_zoom")
	}
	for _, level := range t.Levels {
		if level.Limit <= 0 {
			return fmt.Errorf("tier limit must be positive, got %d at zoom %v", level.Limit, level.MaxZoom)
		}
	}
	return nil
}

// LoadTiersFile reads zoom tiers from a YAML file. An empty path returns
// the defaults.
func LoadTiersFile(path string) (Tiers, error) {
	if path == "" {
		return DefaultTiers(), nil
	}

	raw, err := os.ReadFile(path) // #nosec G304 -- path comes from operator config
	if err != nil {
		return Tiers{}, fmt.Errorf("read tiers file: %w", err)
	}

	var tiers Tiers
	if err := yaml.Unmarshal(raw, &tiers); err != nil {
		return Tiers{}, fmt.Errorf("parse tiers file: %w", err)
	}
	if err := tiers.Validate(); err != nil {
		return Tiers{}, fmt.Errorf("invalid tiers file %s: %w", path, err)
	}
	return tiers, nil
}
