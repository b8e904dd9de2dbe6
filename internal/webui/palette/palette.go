// Package palette maps article categories to the display colors used by the
// map markers and the list badges.
package palette

import "strings"

// Color is the display styling for one category.
type Color struct {
	ID         string
	Label      string
	Hex        string
	BadgeClass string
}

var colors = []Color{
	{ID: "technology", Label: "Technology", Hex: "#1e40af", BadgeClass: "bg-blue-100 text-blue-800"},
	{ID: "environment", Label: "Environment", Hex: "#059669", BadgeClass: "bg-emerald-100 text-emerald-800"},
	{ID: "business", Label: "Business", Hex: "#7c3aed", BadgeClass: "bg-violet-100 text-violet-800"},
	{ID: "science", Label: "Science", Hex: "#ea580c", BadgeClass: "bg-orange-100 text-orange-800"},
	{ID: "sports", Label: "Sports", Hex: "#dc2626", BadgeClass: "bg-red-100 text-red-800"},
	{ID: "entertainment", Label: "Entertainment", Hex: "#db2777", BadgeClass: "bg-pink-100 text-pink-800"},
	{ID: "politics", Label: "Politics", Hex: "#9333ea", BadgeClass: "bg-purple-100 text-purple-800"},
	{ID: "health", Label: "Health", Hex: "#16a34a", BadgeClass: "bg-green-100 text-green-800"},
	{ID: "education", Label: "Education", Hex: "#0891b2", BadgeClass: "bg-cyan-100 text-cyan-800"},
	{ID: "crime", Label: "Crime", Hex: "#991b1b", BadgeClass: "bg-rose-100 text-rose-800"},
	{ID: "weather", Label: "Weather", Hex: "#0284c7", BadgeClass: "bg-sky-100 text-sky-800"},
	{ID: "travel", Label: "Travel", Hex: "#65a30d", BadgeClass: "bg-lime-100 text-lime-800"},
}

var fallback = Color{
	ID:         "unknown",
	Label:      "Unknown",
	Hex:        "#6b7280",
	BadgeClass: "bg-gray-100 text-gray-800",
}

// Lookup returns the color for a category, or false if the category is not
// known. Matching is case-insensitive.
func Lookup(category string) (Color, bool) {
	for _, c := range colors {
		if strings.EqualFold(c.ID, category) {
			return c, true
		}
	}
	return Color{}, false
}

// Hex returns the marker hex color for a category, falling back to the
// neutral gray for unknown categories.
func Hex(category string) string {
	if c, ok := Lookup(category); ok {
		return c.Hex
	}
	return fallback.Hex
}

// BadgeClass returns the badge CSS classes for a category.
func BadgeClass(category string) string {
	if c, ok := Lookup(category); ok {
		return c.BadgeClass
	}
	return fallback.BadgeClass
}

// All returns every known category color in display order.
func All() []Color {
	out := make([]Color, len(colors))
	copy(out, colors)
	return out
}
