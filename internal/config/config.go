package config

import (
	"fmt"
	"log"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Config stores service settings.
type Config struct {
	Port             int
	LogLevel         string
	OperationTimeout time.Duration
	DB               DB
	Kafka            Kafka
	RateLimit        RateLimit
	Debug            Debug
	Fees             Fees
	Notify           Notify
	Realtime         Realtime
}

// DB stores Postgres connection settings.
type DB struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

// DSN returns a pgx connection string.
func (d DB) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Pass),
		Host:     net.JoinHostPort(d.Host, d.Port),
		Path:     "/" + d.Name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// Kafka stores the payment events consumer settings. Empty brokers disable the consumer.
type Kafka struct {
	Brokers       []string
	GroupID       string
	PaymentsTopic string
}

// Enabled reports whether the consumer has enough settings to start.
func (k Kafka) Enabled() bool {
	return len(k.Brokers) > 0 && k.GroupID != "" && k.PaymentsTopic != ""
}

// RateLimit stores per-client rate limiting settings.
type RateLimit struct {
	Enabled    bool
	Rate       float64
	Burst      int
	TTL        time.Duration
	MaxBuckets int
}

// Debug stores the pprof/metrics listener and gRPC health listener settings.
type Debug struct {
	Addr       string
	User       string
	Pass       string
	HealthAddr string
}

// Fees stores delivery pricing.
type Fees struct {
	BaseCents          int64
	PerKmCents         int64
	DriverSharePercent int
}

// Notify stores the outbound email/SMS relay settings. Empty URL disables it.
type Notify struct {
	URL         string
	Timeout     time.Duration
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// Realtime stores websocket tuning.
type Realtime struct {
	SendBuffer      int
	PingInterval    time.Duration
	WriteTimeout    time.Duration
	MaxMessageBytes int64
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg, err := fromEnv()
	if err != nil {
		return nil, err
	}

	fs := pflag.CommandLine
	fs.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&cfg.Debug.Addr, "debug-addr", cfg.Debug.Addr, "pprof and metrics listen address, empty disables")
	if err := fs.Parse(os.Args[1:]); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fromEnv() (*Config, error) {
	cfg := &Config{
		Port:             DefaultPort(),
		LogLevel:         envString("LOG_LEVEL", "info"),
		OperationTimeout: defaultOperationTimeout,
		DB:               DefaultDB(),
		RateLimit:        DefaultRateLimit(),
		Debug:            Debug{Addr: envString("DEBUG_ADDR", ""), User: os.Getenv("PPROF_USER"), Pass: os.Getenv("PPROF_PASS"), HealthAddr: envString("GRPC_HEALTH_ADDR", "")},
		Fees:             DefaultFees(),
		Notify:           DefaultNotify(),
		Realtime:         DefaultRealtime(),
	}

	var err error
	if cfg.Port, err = envInt("PORT", cfg.Port); err != nil {
		return nil, err
	}
	if cfg.OperationTimeout, err = envDuration("OPERATION_TIMEOUT", cfg.OperationTimeout); err != nil {
		return nil, err
	}

	cfg.DB.Host = envString("POSTGRES_HOST", cfg.DB.Host)
	cfg.DB.User = envString("POSTGRES_USER", cfg.DB.User)
	cfg.DB.Pass = envString("POSTGRES_PASSWORD", cfg.DB.Pass)
	cfg.DB.Name = envString("POSTGRES_DB", cfg.DB.Name)
	dbPort, err := envInt("POSTGRES_PORT", mustAtoi(cfg.DB.Port))
	if err != nil {
		return nil, err
	}
	cfg.DB.Port = strconv.Itoa(dbPort)

	cfg.Kafka = Kafka{
		Brokers:       envList("KAFKA_BROKERS"),
		GroupID:       envString("KAFKA_GROUP_ID", defaultKafkaGroupID),
		PaymentsTopic: envString("KAFKA_PAYMENTS_TOPIC", defaultPaymentsTopic),
	}

	if cfg.RateLimit.Enabled, err = envBool("RATE_LIMIT_ENABLED", cfg.RateLimit.Enabled); err != nil {
		return nil, err
	}
	if cfg.RateLimit.Rate, err = envFloat("RATE_LIMIT_RATE", cfg.RateLimit.Rate); err != nil {
		return nil, err
	}
	if cfg.RateLimit.Burst, err = envInt("RATE_LIMIT_BURST", cfg.RateLimit.Burst); err != nil {
		return nil, err
	}

	if cfg.Fees.BaseCents, err = envInt64("DELIVERY_BASE_FEE_CENTS", cfg.Fees.BaseCents); err != nil {
		return nil, err
	}
	if cfg.Fees.PerKmCents, err = envInt64("DELIVERY_PER_KM_CENTS", cfg.Fees.PerKmCents); err != nil {
		return nil, err
	}
	if cfg.Fees.DriverSharePercent, err = envInt("DRIVER_SHARE_PERCENT", cfg.Fees.DriverSharePercent); err != nil {
		return nil, err
	}

	cfg.Notify.URL = envString("NOTIFY_RELAY_URL", cfg.Notify.URL)
	if cfg.Notify.MaxAttempts, err = envInt("NOTIFY_MAX_ATTEMPTS", cfg.Notify.MaxAttempts); err != nil {
		return nil, err
	}

	if cfg.Realtime.PingInterval, err = envDuration("WS_PING_INTERVAL", cfg.Realtime.PingInterval); err != nil {
		return nil, err
	}
	if cfg.Realtime.SendBuffer, err = envInt("WS_SEND_BUFFER", cfg.Realtime.SendBuffer); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.OperationTimeout <= 0 {
		return fmt.Errorf("invalid operation timeout: %s", c.OperationTimeout)
	}
	if c.Fees.DriverSharePercent < 0 || c.Fees.DriverSharePercent > 100 {
		return fmt.Errorf("invalid driver share percent: %d", c.Fees.DriverSharePercent)
	}
	if c.Fees.BaseCents < 0 || c.Fees.PerKmCents < 0 {
		return fmt.Errorf("invalid delivery fees: base=%d per_km=%d", c.Fees.BaseCents, c.Fees.PerKmCents)
	}
	if c.Realtime.SendBuffer <= 0 {
		return fmt.Errorf("invalid websocket send buffer: %d", c.Realtime.SendBuffer)
	}
	return nil
}

func envString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func envInt64(key string, def int64) (int64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func envFloat(key string, def float64) (float64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func envBool(key string, def bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func envList(key string) []string {
	raw := strings.Split(os.Getenv(key), ",")
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func mustAtoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		panic(fmt.Sprintf("config: bad default %q", s))
	}
	return n
}
