package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"food-delivery-dispatch/internal/config"
	"food-delivery-dispatch/internal/domain"
	mw "food-delivery-dispatch/internal/http/middleware"
	"food-delivery-dispatch/internal/http/middleware/ratelimit"
	"food-delivery-dispatch/internal/logx"
)

// driverRateFactor scales the default budget for drivers, who poll the
// available list and post frequent status updates.
const driverRateFactor = 2

func newRateLimiter(cfg *config.Config, clock ratelimit.Clock) ratelimit.Limiter {
	rl := cfg.RateLimit
	if !rl.Enabled {
		return ratelimit.NopLimiter{}
	}
	def := ratelimit.Limit{Rate: rl.Rate, Burst: rl.Burst}
	return ratelimit.NewTokenBucketLimiter(clock, ratelimit.Config{
		Default: def,
		Classes: map[string]ratelimit.Limit{
			string(domain.RoleDriver): {Rate: def.Rate * driverRateFactor, Burst: def.Burst * driverRateFactor},
		},
		TTL:        rl.TTL,
		MaxBuckets: rl.MaxBuckets,
	})
}

func newRateLimitClock() ratelimit.Clock {
	return ratelimit.RealClock{}
}

type rateLimitIn struct {
	dig.In
	Logger  logx.Logger
	Counter prometheus.Counter `name:"rate_limit_exceeded_total"`
	Limiter ratelimit.Limiter
}

func newRateLimitMiddleware(in rateLimitIn) *ratelimit.Middleware {
	return ratelimit.New(in.Logger, in.Counter, in.Limiter, mw.ParseIdentity)
}
