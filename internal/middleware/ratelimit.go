package middleware

import (
	"fmt"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mmynk/potledger/internal/config"
)

// fixedWindowScript counts a hit in the current window and returns the count
// and the milliseconds left until the window resets.
var fixedWindowScript = redis.NewScript(`
	local count = redis.call('INCR', KEYS[1])
	if count == 1 then
		redis.call('PEXPIRE', KEYS[1], ARGV[1])
	end
	local ttl = redis.call('PTTL', KEYS[1])
	if ttl < 0 then
		redis.call('PEXPIRE', KEYS[1], ARGV[1])
		ttl = tonumber(ARGV[1])
	end
	return { count, ttl }
`)

// RateLimit limits each client IP to cfg.Limit requests per cfg.Window,
// counted in Redis so limits hold across server instances. It passes
// requests through when disabled, when rdb is nil, or when Redis fails.
func RateLimit(cfg config.RateLimitConfig, rdb *redis.Client) func(http.Handler) http.Handler {
	if !cfg.Enabled || rdb == nil {
		return func(next http.Handler) http.Handler { return next }
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := rateKey(cfg.Prefix, clientIP(r), time.Now(), cfg.Window)

			vals, err := fixedWindowScript.Run(r.Context(), rdb, []string{key}, cfg.Window.Milliseconds()).Int64Slice()
			if err != nil || len(vals) != 2 {
				slog.Warn("Rate limiter unavailable", "key", key, "error", err)
				next.ServeHTTP(w, r)
				return
			}
			count, ttlMs := vals[0], vals[1]

			remaining := int64(cfg.Limit) - count
			if remaining < 0 {
				remaining = 0
			}
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			if count > int64(cfg.Limit) {
				secs := int(math.Ceil(float64(ttlMs) / 1000.0))
				w.Header().Set("Retry-After", strconv.Itoa(secs))
				slog.Info("Rate limit exceeded", "key", key, "count", count)
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// rateKey buckets a client's requests by fixed window start.
func rateKey(prefix, ip string, now time.Time, window time.Duration) string {
	size := window.Milliseconds()
	if size < 1 {
		size = 1
	}
	bucket := now.UnixMilli() / size
	return fmt.Sprintf("%s:ip:%s:%d", prefix, ip, bucket)
}

// clientIP prefers the first X-Forwarded-For hop, then RemoteAddr.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if ip := strings.TrimSpace(strings.Split(fwd, ",")[0]); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil || host == "" {
		return "unknown"
	}
	return host
}
