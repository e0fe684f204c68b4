// Package requesttime pins one "now" per request. Status derivation, the
// 30-day completion window and the report's generated_at all read it, so a
// request that straddles midnight still scores consistently.
package requesttime

import (
	"net/http"
	"time"

	"inspectready/pkg/requestcontext"
)

// Middleware stamps the wall clock in UTC.
func Middleware(next http.Handler) http.Handler {
	return WithClock(time.Now)(next)
}

// WithClock stamps now() instead of the wall clock.
func WithClock(now func() time.Time) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := requestcontext.WithTime(r.Context(), now().UTC())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
