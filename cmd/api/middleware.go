package main

import (
	"net/http"
	"strconv"

	"github.com/festeja/eventos-api/internal/auth"
)

// rateLimit enforces a fixed-window counter per identity (user id when
// authenticated, client IP otherwise). If the counter store is unreachable
// the request is allowed through; availability wins over strictness here.
func (app *application) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if app.config.rate.limit <= 0 {
			next.ServeHTTP(w, r)
			return
		}

		key := "ip:" + r.RemoteAddr
		if user, ok := auth.GetUser(r.Context()); ok {
			key = "user:" + user.ID
		}

		result, err := app.store.RateLimits.Take(r.Context(), key, app.config.rate.limit, app.config.rate.window)
		if err != nil {
			app.appLogger.Warn("RateLimit", "Counter unavailable, allowing request: %v", err)
			next.ServeHTTP(w, r)
			return
		}

		if !result.Allowed {
			retryAfter := int(result.RetryAfter.Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			writeJSON(w, http.StatusTooManyRequests, map[string]any{
				"error":      "Limite de requisições excedido",
				"retryAfter": retryAfter,
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}
