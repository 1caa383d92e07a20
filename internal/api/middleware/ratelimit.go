package middleware

import (
	"encoding/json"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

// maxTrackedClients bounds the limiter table; idle clients age out
const maxTrackedClients = 10000

// RateLimiter gives every client a token bucket refilled at requests per window
type RateLimiter struct {
	clients *expirable.LRU[string, *rate.Limiter]
	limit   rate.Limit
	burst   int
	mu      sync.Mutex
}

// NewRateLimiter creates a new rate limiter
// requests: maximum number of requests allowed per window
// window: time window duration (e.g., 1 minute)
func NewRateLimiter(requests int, window time.Duration) *RateLimiter {
	if requests <= 0 {
		requests = 1
	}
	return &RateLimiter{
		clients: expirable.NewLRU[string, *rate.Limiter](maxTrackedClients, nil, window),
		limit:   rate.Every(window / time.Duration(requests)),
		burst:   requests,
	}
}

// Middleware returns a rate limiting middleware
// Authenticated users are keyed by username, everyone else by IP
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := "ip:" + getClientIP(r)
		if username := GetUsername(r); username != "" {
			clientID = "user:" + username
		}

		if !rl.allow(clientID) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			if err := json.NewEncoder(w).Encode(map[string]string{
				"error":   "RateLimitExceeded",
				"message": "Rate limit exceeded. Please try again later.",
			}); err != nil {
				log.Printf("Failed to write rate limit response: %v", err)
			}
			return
		}

		next.ServeHTTP(w, r)
	})
}

// allow checks if a client is allowed to make a request
func (rl *RateLimiter) allow(clientID string) bool {
	rl.mu.Lock()
	limiter, ok := rl.clients.Get(clientID)
	if !ok {
		limiter = rate.NewLimiter(rl.limit, rl.burst)
	}
	// Re-adding refreshes the entry's TTL while the client stays active
	rl.clients.Add(clientID, limiter)
	rl.mu.Unlock()

	return limiter.Allow()
}

// getClientIP extracts the client IP from the request.
// Proxy headers are never read here. When the router trusts them, chi's
// RealIP has already rewritten RemoteAddr.
func getClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
