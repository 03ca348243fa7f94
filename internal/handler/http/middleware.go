package http

import (
	"context"
	"net/http"
	"strings"
)

type sessionKey struct{}

// DefaultSession identifies callers that do not send a session header. The
// storefront runs fine for anonymous browsing; the cart and wishlist of
// such callers share one bucket.
const DefaultSession = "default"

// SessionFromHeader resolves the caller's session from the X-Session-ID
// header and stores it in the request context.
func SessionFromHeader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sid := strings.TrimSpace(r.Header.Get("X-Session-ID"))
		if sid == "" {
			sid = DefaultSession
		}
		ctx := context.WithValue(r.Context(), sessionKey{}, sid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionID returns the session resolved by SessionFromHeader.
func SessionID(ctx context.Context) string {
	if sid, ok := ctx.Value(sessionKey{}).(string); ok {
		return sid
	}
	return DefaultSession
}

// ContentTypeJSON rejects mutating requests whose body is not declared as
// JSON.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
			ct := r.Header.Get("Content-Type")
			if ct != "" && !strings.HasPrefix(ct, "application/json") {
				http.Error(w, `{"error":{"code":"INVALID_INPUT","message":"Content-Type must be application/json"}}`,
					http.StatusUnsupportedMediaType)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
