package ratelimit

import (
	"io"
	"net"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"food-delivery-dispatch/internal/domain"
	"food-delivery-dispatch/internal/logx"
)

// IdentityFunc returns the authenticated caller of a request, if any.
type IdentityFunc func(*http.Request) (domain.Identity, bool)

// Middleware rejects callers that exceed their request budget.
type Middleware struct {
	logger   logx.Logger
	counter  prometheus.Counter
	limiter  Limiter
	identify IdentityFunc
}

// New creates a new Middleware. Authenticated callers are limited per
// identity, anonymous ones per client IP.
func New(logger logx.Logger, counter prometheus.Counter, limiter Limiter, identify IdentityFunc) *Middleware {
	if limiter == nil {
		limiter = NopLimiter{}
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Middleware{
		logger:   logger,
		counter:  counter,
		limiter:  limiter,
		identify: identify,
	}
}

// Handler returns chi-style middleware.
func (m *Middleware) Handler() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := m.key(r)

			if !m.limiter.Allow(key) {
				if m.counter != nil {
					m.counter.Inc()
				}
				m.logger.Warn("rate limit exceeded",
					logx.String("key", key),
					logx.String("method", r.Method),
					logx.String("path", r.URL.Path),
				)
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", "1")
				w.WriteHeader(http.StatusTooManyRequests)
				if _, err := io.WriteString(w, `{"error":"too many requests"}`); err != nil {
					// client went away
					m.logger.Debug("rate limit response write failed",
						logx.String("key", key),
						logx.Err(err),
					)
				}
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (m *Middleware) key(r *http.Request) string {
	if m.identify != nil {
		if who, ok := m.identify(r); ok {
			return who.String()
		}
	}
	return "ip:" + clientIP(r)
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "unknown"
}
