package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RouteLimit caps how many requests a principal may make to a route per window.
type RouteLimit struct {
	Name     string        // logical route name for the key
	Capacity int           // max requests per window
	Window   time.Duration // fixed window length
}

// PrincipalFunc extracts the rate-limit principal (e.g., user email or IP).
type PrincipalFunc func(*http.Request) string

// PrincipalIP extracts the client IP (best-effort).
func PrincipalIP() PrincipalFunc {
	return func(r *http.Request) string {
		if xf := r.Header.Get("X-Forwarded-For"); xf != "" {
			parts := strings.Split(xf, ",")
			if len(parts) > 0 {
				return "ip:" + strings.TrimSpace(parts[0])
			}
		}
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err == nil && host != "" {
			return "ip:" + host
		}
		return "ip:unknown"
	}
}

// PrincipalUserOrIP prefers the authenticated user, falls back to IP.
func PrincipalUserOrIP() PrincipalFunc {
	return func(r *http.Request) string {
		if user, ok := CurrentUserFromContext(r.Context()); ok {
			return fmt.Sprintf("user:%d", user.ID)
		}
		return PrincipalIP()(r)
	}
}

// RateLimit applies a Redis fixed-window counter per route and principal.
// Redis failures fail open so a degraded limiter never takes the API down.
func RateLimit(rdb *redis.Client, limit RouteLimit, principal PrincipalFunc) func(http.Handler) http.Handler {
	if principal == nil {
		principal = PrincipalIP()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			window := time.Now().Unix() / int64(limit.Window.Seconds())
			key := fmt.Sprintf("rl:%s:%s:%d", limit.Name, principal(r), window)

			ctx := r.Context()
			count, err := rdb.Incr(ctx, key).Result()
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			if count == 1 {
				_ = rdb.Expire(ctx, key, limit.Window).Err()
			}

			if count > int64(limit.Capacity) {
				w.Header().Set("Retry-After", fmt.Sprintf("%d", int64(limit.Window.Seconds())))
				http.Error(w, "too many requests", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
