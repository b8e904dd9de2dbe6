// Package pagination provides page/offset arithmetic and query parameter
// parsing shared by the JSON API and the page handlers.
package pagination

import (
	"newsbridge/pkg/config"
)

// Config holds pagination limits. The default page size matches the six
// article cards the list view renders per page.
type Config struct {
	DefaultPage  int
	DefaultLimit int
	MaxLimit     int
}

// DefaultConfig returns the default pagination configuration.
func DefaultConfig() Config {
	return Config{
		DefaultPage:  1,
		DefaultLimit: 6,
		MaxLimit:     50,
	}
}

// LoadFromEnv loads pagination config from environment variables, falling
// back to DefaultConfig values.
//
//   - PAGINATION_DEFAULT_PAGE
//   - PAGINATION_DEFAULT_LIMIT
//   - PAGINATION_MAX_LIMIT
func LoadFromEnv() Config {
	return Config{
		DefaultPage:  config.GetEnvInt("PAGINATION_DEFAULT_PAGE", 1),
		DefaultLimit: config.GetEnvInt("PAGINATION_DEFAULT_LIMIT", 6),
		MaxLimit:     config.GetEnvInt("PAGINATION_MAX_LIMIT", 50),
	}
}
