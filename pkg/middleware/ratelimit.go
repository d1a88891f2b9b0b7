package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitConfig controls the per-client token bucket limiter.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained request rate allowed per client IP.
	RequestsPerSecond float64

	// Burst is the maximum burst size allowed per client IP.
	Burst int

	// CleanupInterval is how often idle client entries are evicted.
	CleanupInterval time.Duration

	// ClientTTL is how long a client entry survives without traffic.
	ClientTTL time.Duration
}

// DefaultRateLimitConfig returns a sensible default: 20 req/s with a burst of 40.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		RequestsPerSecond: 20,
		Burst:             40,
		CleanupInterval:   time.Minute,
		ClientTTL:         3 * time.Minute,
	}
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type visitorStore struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	cfg      RateLimitConfig
}

func newVisitorStore(cfg RateLimitConfig) *visitorStore {
	vs := &visitorStore{
		visitors: make(map[string]*visitor),
		cfg:      cfg,
	}
	go vs.cleanupLoop()
	return vs
}

func (vs *visitorStore) get(ip string) *rate.Limiter {
	vs.mu.Lock()
	defer vs.mu.Unlock()

	v, ok := vs.visitors[ip]
	if !ok {
		v = &visitor{
			limiter: rate.NewLimiter(rate.Limit(vs.cfg.RequestsPerSecond), vs.cfg.Burst),
		}
		vs.visitors[ip] = v
	}
	v.lastSeen = time.Now()
	return v.limiter
}

func (vs *visitorStore) cleanupLoop() {
	ticker := time.NewTicker(vs.cfg.CleanupInterval)
	defer ticker.Stop()

	for range ticker.C {
		vs.mu.Lock()
		for ip, v := range vs.visitors {
			if time.Since(v.lastSeen) > vs.cfg.ClientTTL {
				delete(vs.visitors, ip)
			}
		}
		vs.mu.Unlock()
	}
}

// RateLimit returns middleware enforcing a per-client-IP token bucket.
// Requests over the limit receive 429 with a JSON error body.
func RateLimit(cfg RateLimitConfig) func(http.Handler) http.Handler {
	store := newVisitorStore(cfg)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}

			if !store.get(ip).Allow() {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", "1")
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(map[string]string{
					"code":    "RATE_LIMITED",
					"message": "too many requests",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
