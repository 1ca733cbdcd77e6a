package metrics

import "github.com/prometheus/client_golang/prometheus"

// NewRateLimitExceededTotal returns a Prometheus counter for the number of rejected HTTP requests due to rate limiting
func NewRateLimitExceededTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rate_limit_exceeded_total",
		Help: "Total number of rejected HTTP requests due to rate limiting",
	})
}

// NewGatewayRetriesTotal returns a Prometheus counter for the number of retry attempts performed by gateways
func NewGatewayRetriesTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gateway_retries_total",
		Help: "Total number of retry attempts performed by gateways",
	})
}

// Dispatch groups the metrics of the claim and real-time core.
type Dispatch struct {
	ClaimAttempts          *prometheus.CounterVec
	Transitions            *prometheus.CounterVec
	Pushes                 *prometheus.CounterVec
	Connections            *prometheus.GaugeVec
	NotificationsPersisted *prometheus.CounterVec
}

// NewDispatch creates the core metrics and registers them on reg.
func NewDispatch(reg prometheus.Registerer) (*Dispatch, error) {
	m := &Dispatch{
		ClaimAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "delivery_claim_attempts_total",
			Help: "Claim attempts by outcome (success, already_claimed, not_found, error)",
		}, []string{"result"}),
		Transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "delivery_transitions_total",
			Help: "Committed delivery status transitions by target status",
		}, []string{"status"}),
		Pushes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "realtime_pushes_total",
			Help: "Live pushes by event type and result (ok, failed)",
		}, []string{"event", "result"}),
		Connections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "realtime_connections",
			Help: "Registered live connections by role",
		}, []string{"role"}),
		NotificationsPersisted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "notifications_persisted_total",
			Help: "Durable notifications written by type",
		}, []string{"type"}),
	}
	for _, c := range []prometheus.Collector{
		m.ClaimAttempts, m.Transitions, m.Pushes, m.Connections, m.NotificationsPersisted,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Push records the result of one live push.
func (m *Dispatch) Push(event string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "failed"
	}
	m.Pushes.WithLabelValues(event, result).Inc()
}

// Claim records a claim attempt outcome.
func (m *Dispatch) Claim(result string) {
	if m == nil {
		return
	}
	m.ClaimAttempts.WithLabelValues(result).Inc()
}

// Transition records a committed status change.
func (m *Dispatch) Transition(status string) {
	if m == nil {
		return
	}
	m.Transitions.WithLabelValues(status).Inc()
}

// Notification records a persisted notification.
func (m *Dispatch) Notification(kind string) {
	if m == nil {
		return
	}
	m.NotificationsPersisted.WithLabelValues(kind).Inc()
}

// ConnectionDelta moves the live connection gauge for a role.
func (m *Dispatch) ConnectionDelta(role string, delta float64) {
	if m == nil {
		return
	}
	m.Connections.WithLabelValues(role).Add(delta)
}
