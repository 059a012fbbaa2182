package middleware

import (
	"io"
	"net/http"
)

// DefaultMaxRequestBodyBytes fits a few thousand bulk update entries.
const DefaultMaxRequestBodyBytes int64 = 1 << 20

// LimitAndDrainRequestBody caps the request body at maxBytes, so an oversized bulk update
// fails to decode instead of being buffered whole. After the handler returns, whatever
// the handler left unread is drained and the body closed, keeping the connection reusable.
func LimitAndDrainRequestBody(maxBytes int64) func(next http.Handler) http.Handler {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxRequestBodyBytes
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body == nil || r.Body == http.NoBody {
				next.ServeHTTP(w, r)
				return
			}

			body := r.Body
			r.Body = http.MaxBytesReader(w, body, maxBytes)
			next.ServeHTTP(w, r)

			_, _ = io.Copy(io.Discard, r.Body)
			_ = body.Close()
		})
	}
}
