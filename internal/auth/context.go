package auth

import (
	"context"
	"net/http"
	"strings"
)

// SessionCookieName carries the provider session token between requests.
const SessionCookieName = "eventos_session_token"

type ctxKey string

const userKey ctxKey = "user"

// Middleware resolves the session cookie into a User once per request. When
// the client is not configured (dev mode) the X-Debug-User-ID header stands
// in for a session. Requests without identity pass through; handlers decide
// whether to answer 401.
func Middleware(client *Client) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if client == nil || !client.IsConfigured() {
				if uid := strings.TrimSpace(r.Header.Get("X-Debug-User-ID")); uid != "" {
					ctx := context.WithValue(r.Context(), userKey, User{ID: uid})
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			user, err := client.GetUser(r.Context(), cookie.Value)
			if err != nil {
				// Invalid or expired session: the request continues
				// anonymous and auth-gated handlers return 401.
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUser returns the identity injected by Middleware, if any.
func GetUser(ctx context.Context) (User, bool) {
	v := ctx.Value(userKey)
	if v == nil {
		return User{}, false
	}
	u, ok := v.(User)
	if !ok || strings.TrimSpace(u.ID) == "" {
		return User{}, false
	}
	return u, true
}

// WithUser is a test helper to inject an identity directly.
func WithUser(ctx context.Context, user User) context.Context {
	return context.WithValue(ctx, userKey, user)
}
