package http

import (
	"net/http"
)

// InputValidation returns middleware that rejects oversized request inputs
// before any handler work happens:
//   - Cookie header size (8KB; session cookies are well under 1KB)
//   - URI path length (2KB)
//   - Request body size (1MB; the largest legitimate body is a chat message)
func InputValidation() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(r.Header.Get("Cookie")) > 8192 {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"error":"cookie header too large"}`))
				return
			}

			if len(r.URL.Path) > 2048 {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusRequestURITooLong)
				_, _ = w.Write([]byte(`{"error":"URI too long"}`))
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

			next.ServeHTTP(w, r)
		})
	}
}
