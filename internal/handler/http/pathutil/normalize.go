// Package pathutil normalizes request paths for metric labels and extracts
// path parameters shared by the JSON API and the page handlers.
package pathutil

import (
	"regexp"
	"strings"
)

// staticPaths are routes that contain a segment which would otherwise look
// like an article ID. They must pass through unchanged.
var staticPaths = map[string]struct{}{
	"/api/articles/map": {},
}

// pathPattern pairs a regex with the template it collapses to.
type pathPattern struct {
	pattern  *regexp.Regexp
	template string
}

// pathPatterns defines dynamic routes, most specific first. Pre-compiled so
// normalization stays cheap on the hot path.
var pathPatterns = []pathPattern{
	{pattern: regexp.MustCompile(`^/api/articles/[A-Za-z0-9_-]+$`), template: "/api/articles/:id"},
	{pattern: regexp.MustCompile(`^/articles/[A-Za-z0-9_-]+$`), template: "/articles/:id"},
}

// NormalizePath collapses paths with embedded IDs to a template form so the
// "path" metric label keeps a bounded cardinality.
//
//	NormalizePath("/api/articles/cm3xk2p9")  // "/api/articles/:id"
//	NormalizePath("/articles/cm3xk2p9")      // "/articles/:id"
//	NormalizePath("/api/articles/map")       // "/api/articles/map" (unchanged)
//	NormalizePath("/api/articles?page=2")    // "/api/articles"
//	NormalizePath("/healthz")                // "/healthz" (unchanged)
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}

	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	if _, ok := staticPaths[path]; ok {
		return path
	}

	for _, p := range pathPatterns {
		if p.pattern.MatchString(path) {
			return p.template
		}
	}

	return path
}
