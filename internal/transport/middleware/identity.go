package middleware

import (
	"net/http"

	app "github.com/clubware/club-management/internal"
)

// Identity places the acting user's ID from the X-User-ID header into the
// request context. Authentication itself is handled upstream; this service
// only attributes writes (reviewer, assignor, author) to the forwarded
// identity.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userID := r.Header.Get("X-User-ID"); userID != "" {
			r = r.WithContext(app.ContextWithUserID(r.Context(), userID))
		}
		next.ServeHTTP(w, r)
	})
}
