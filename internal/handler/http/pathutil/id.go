package pathutil

import (
	"errors"
	"regexp"
)

// ErrInvalidID is returned when the ID in the URL path is malformed.
var ErrInvalidID = errors.New("invalid article id")

// maxIDLength bounds IDs so arbitrary junk is rejected before it reaches
// the upstream API.
const maxIDLength = 64

var idPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ArticleID validates an article ID extracted from a URL path. Backend IDs
// are opaque strings, so only the charset and length are checked.
func ArticleID(raw string) (string, error) {
	if raw == "" || len(raw) > maxIDLength || !idPattern.MatchString(raw) {
		return "", ErrInvalidID
	}
	return raw, nil
}
