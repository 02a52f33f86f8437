package transport

import (
	"duskward/pkg/config"

	"golang.org/x/time/rate"
)

// LineLimiter throttles the rate of inbound command lines accepted
// from a single connection, protecting the engine's single cooperative
// executor from a flooding or malfunctioning client. Unlike the
// teacher's per-IP map of limiters (many HTTP clients behind one
// server), each websocket connection here owns exactly one limiter
// for its own lifetime.
type LineLimiter struct {
	limiter *rate.Limiter
}

// NewLineLimiter builds a limiter from the engine's rate-limit
// configuration. A nil *LineLimiter (when cfg.RateLimitEnabled is
// false) always allows.
func NewLineLimiter(cfg *config.Config) *LineLimiter {
	if !cfg.RateLimitEnabled {
		return nil
	}
	return &LineLimiter{
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimitRequestsPerSecond), cfg.RateLimitBurst),
	}
}

// Allow reports whether another inbound line may be accepted right
// now. A nil receiver always allows, so disabled rate limiting needs
// no call-site branching.
func (l *LineLimiter) Allow() bool {
	if l == nil {
		return true
	}
	return l.limiter.Allow()
}
