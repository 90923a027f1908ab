package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/onerilhan/guild-payout-api/internal/middleware/errors"
	"github.com/onerilhan/guild-payout-api/internal/utils"
)

// RateLimitConfig rate limiting ayarları
type RateLimitConfig struct {
	RequestsPerMinute int
	Burst             int
	SkipPaths         []string
	CleanupInterval   time.Duration
	IdleTimeout       time.Duration
}

// DefaultRateLimitConfig varsayılan rate limit ayarları
func DefaultRateLimitConfig() *RateLimitConfig {
	return &RateLimitConfig{
		RequestsPerMinute: 300,
		Burst:             50,
		SkipPaths:         []string{"/health", "/metrics"},
		CleanupInterval:   10 * time.Minute,
		IdleTimeout:       30 * time.Minute,
	}
}

// ipLimiter tek bir IP için rate limiter
type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter IP bazlı token bucket rate limiter
type RateLimiter struct {
	config   *RateLimitConfig
	limiters map[string]*ipLimiter
	mutex    sync.Mutex
}

// NewRateLimiter yeni rate limiter oluşturur. Eski limiter'ları temizleyen
// goroutine ctx iptal edilince durur.
func NewRateLimiter(ctx context.Context, config *RateLimitConfig) *RateLimiter {
	if config == nil {
		config = DefaultRateLimitConfig()
	}
	if config.Burst <= 0 {
		config.Burst = 1
	}

	rl := &RateLimiter{
		config:   config,
		limiters: make(map[string]*ipLimiter),
	}

	if config.CleanupInterval > 0 {
		go rl.cleanupLimiters(ctx)
	}

	return rl
}

// Handler rate limiting middleware'i döner
func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.config.RequestsPerMinute <= 0 || shouldSkip(r.URL.Path, rl.config.SkipPaths) {
			next.ServeHTTP(w, r)
			return
		}

		clientIP := utils.GetClientIP(r)
		limiter := rl.limiterFor(clientIP)

		remaining := int(limiter.Tokens())
		if remaining < 0 {
			remaining = 0
		}
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.config.RequestsPerMinute))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !limiter.Allow() {
			log.Warn().Str("client_ip", clientIP).Str("path", r.URL.Path).Msg("Request blocked - rate limit exceeded")

			retryAfter := int(time.Minute.Seconds()) / rl.config.RequestsPerMinute
			if retryAfter < 1 {
				retryAfter = 1
			}
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))

			response := errors.NewErrorResponse(w, r, http.StatusTooManyRequests, "Çok fazla istek. Lütfen daha sonra tekrar deneyin.")
			response.Details["retry_after_seconds"] = retryAfter
			if err := response.Write(w); err != nil {
				log.Error().Err(err).Msg("Rate limit response yazılamadı")
			}
			return
		}

		next.ServeHTTP(w, r)
	})
}

// limiterFor IP'nin limiter'ını döner, yoksa oluşturur
func (rl *RateLimiter) limiterFor(ip string) *rate.Limiter {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	entry, exists := rl.limiters[ip]
	if !exists {
		every := rate.Every(time.Minute / time.Duration(rl.config.RequestsPerMinute))
		entry = &ipLimiter{limiter: rate.NewLimiter(every, rl.config.Burst)}
		rl.limiters[ip] = entry
	}
	entry.lastSeen = time.Now()

	return entry.limiter
}

// cleanupLimiters uzun süredir görülmeyen IP'lerin limiter'larını siler
func (rl *RateLimiter) cleanupLimiters(ctx context.Context) {
	ticker := time.NewTicker(rl.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			rl.mutex.Lock()
			for ip, entry := range rl.limiters {
				if now.Sub(entry.lastSeen) > rl.config.IdleTimeout {
					delete(rl.limiters, ip)
				}
			}
			active := len(rl.limiters)
			rl.mutex.Unlock()

			log.Debug().Int("active_limiters", active).Msg("Rate limiter cleanup completed")
		}
	}
}
