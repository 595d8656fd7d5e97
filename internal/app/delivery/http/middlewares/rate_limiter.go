package middlewares

import (
	"medtour-service/internal/pkg/constvars"
	"medtour-service/internal/pkg/exceptions"
	"medtour-service/internal/pkg/utils"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RateLimiter is a per IP token bucket for a single route. An IP that
// drains its bucket is blocked for blockTime.
type RateLimiter struct {
	log       *zap.Logger
	name      string
	limiters  map[string]*rate.Limiter
	blocked   map[string]time.Time
	mu        sync.Mutex
	burst     int
	every     time.Duration
	blockTime time.Duration
	now       func() time.Time
}

// NewRateLimiter allows burst requests and refills one token every
// per/burst.
func NewRateLimiter(logger *zap.Logger, name string, burst int, per, blockTime time.Duration) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		log:       logger,
		name:      name,
		limiters:  make(map[string]*rate.Limiter),
		blocked:   make(map[string]time.Time),
		burst:     burst,
		every:     per / time.Duration(burst),
		blockTime: blockTime,
		now:       time.Now,
	}
}

func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		if retryAfter, allowed := rl.allow(ip); !allowed {
			rl.log.Warn("RateLimiter.Limit request rejected",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
				zap.String("limiter", rl.name),
				zap.String(constvars.LoggingRemoteAddrKey, ip),
			)
			w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())+1))
			utils.BuildErrorResponse(rl.log, w, exceptions.ErrTooManyRequests(nil, ip))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) allow(ip string) (time.Duration, bool) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if blockedUntil, found := rl.blocked[ip]; found {
		if now.Before(blockedUntil) {
			return blockedUntil.Sub(now), false
		}
		delete(rl.blocked, ip)
	}

	limiter, exists := rl.limiters[ip]
	if !exists {
		limiter = rate.NewLimiter(rate.Every(rl.every), rl.burst)
		rl.limiters[ip] = limiter
	}

	if !limiter.AllowN(now, 1) {
		rl.blocked[ip] = now.Add(rl.blockTime)
		return rl.blockTime, false
	}
	return 0, true
}

func clientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// RouteRateLimiter builds a per route limiter allowing perMinute requests
// per IP.
func (m *Middlewares) RouteRateLimiter(name string, perMinute int, blockTime time.Duration) *RateLimiter {
	return NewRateLimiter(m.Log, name, perMinute, time.Minute, blockTime)
}
