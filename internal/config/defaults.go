package config

import "time"

const defaultPort = 8080

const defaultOperationTimeout = 3 * time.Second

const (
	defaultKafkaGroupID  = "service-dispatch"
	defaultPaymentsTopic = "payments.confirmed"
)

var defaultDB = DB{
	Host: "127.0.0.1",
	Port: "5432",
	User: "myuser",
	Pass: "mypassword",
	Name: "test_db",
}

var defaultRateLimit = RateLimit{
	Enabled:    true,
	Rate:       5,
	Burst:      10,
	TTL:        5 * time.Minute,
	MaxBuckets: 100_000,
}

var defaultFees = Fees{
	BaseCents:          299,
	PerKmCents:         50,
	DriverSharePercent: 80,
}

var defaultNotify = Notify{
	Timeout:     3 * time.Second,
	MaxAttempts: 3,
	BaseDelay:   150 * time.Millisecond,
	MaxDelay:    time.Second,
}

var defaultRealtime = Realtime{
	SendBuffer:      64,
	PingInterval:    30 * time.Second,
	WriteTimeout:    10 * time.Second,
	MaxMessageBytes: 8 << 10,
}

// DefaultPort returns the default port.
func DefaultPort() int {
	return defaultPort
}

// DefaultDB returns the default database settings.
func DefaultDB() DB {
	return defaultDB
}

// DefaultRateLimit returns the default rate limiting settings.
func DefaultRateLimit() RateLimit {
	return defaultRateLimit
}

// DefaultFees returns the default delivery pricing.
func DefaultFees() Fees {
	return defaultFees
}

// DefaultNotify returns the default outbound relay settings.
func DefaultNotify() Notify {
	return defaultNotify
}

// DefaultRealtime returns the default websocket settings.
func DefaultRealtime() Realtime {
	return defaultRealtime
}
