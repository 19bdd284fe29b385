package core

import (
	"context"
	"net/http"
	"time"
)

// withTimeout bounds the request context. Handlers check it before they start;
// a unit call already running is not interrupted.
func withTimeout(next http.HandlerFunc, d time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), d)
		defer cancel()
		next(w, r.WithContext(ctx))
	}
}
