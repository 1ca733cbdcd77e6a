package ratelimit

import "time"

// Limiter decides per caller key whether a request may proceed. Keys are
// "role:id" for identified callers and "ip:addr" otherwise.
type Limiter interface {
	Allow(key string) bool
}

// Clock is the time source of the token buckets.
type Clock interface {
	Now() time.Time
}

// RealClock reads the wall clock.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// NopLimiter admits every request; used when rate limiting is disabled.
type NopLimiter struct{}

func (NopLimiter) Allow(string) bool { return true }
