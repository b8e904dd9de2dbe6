package entity

// Bounds is a geographic bounding box in degrees.
type Bounds struct {
	North float64 `json:"north"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	West  float64 `json:"west"`
}

// Contains reports whether the point lies inside the box. Boxes crossing the
// antimeridian (west > east) wrap around.
func (b Bounds) Contains(lat, lng float64) bool {
	if lat > b.North || lat < b.South {
		return false
	}
	if b.West <= b.East {
		return lng >= b.West && lng <= b.East
	}
	return lng >= b.West || lng <= b.East
}

// Viewport describes the visible map region plus the active filters.
// It is recomputed on every pan/zoom/filter change and never persisted.
type Viewport struct {
	Bounds   Bounds  `json:"bounds"`
	Zoom     float64 `json:"zoom"`
	Category string  `json:"category,omitempty"`
	Search   string  `json:"search,omitempty"`
}
