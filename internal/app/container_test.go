package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/dig"

	"food-delivery-dispatch/internal/config"
	"food-delivery-dispatch/internal/gateway/notify"
	"food-delivery-dispatch/internal/http/middleware/ratelimit"
	"food-delivery-dispatch/internal/logx"
	"food-delivery-dispatch/internal/metrics"
	"food-delivery-dispatch/internal/transport/kafka"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:             8080,
		LogLevel:         "error",
		OperationTimeout: 3 * time.Second,
		RateLimit:        config.RateLimit{Enabled: true, Rate: 5, Burst: 10},
		Fees:             config.Fees{BaseCents: 200, PerKmCents: 100, DriverSharePercent: 80},
		Realtime:         config.Realtime{SendBuffer: 16},
	}
}

func stubConnect(context.Context, logx.Logger, string, int, time.Duration) (*pgxpool.Pool, error) {
	return &pgxpool.Pool{}, nil
}

type serversView struct {
	dig.In

	Main  *http.Server
	Debug *http.Server `name:"debug_server"`
}

func TestContainerBuilder_Build_WiresEverything(t *testing.T) {
	t.Parallel()

	c, err := NewContainerBuilder().
		WithConfig(testConfig()).
		WithDBConnect(stubConnect).
		build(context.Background())
	require.NoError(t, err)

	err = c.Invoke(func(in serversView, h *healthService, consumer *kafka.Consumer) {
		require.NotNil(t, in.Main)
		require.Equal(t, ":8080", in.Main.Addr)
		require.Greater(t, in.Main.ReadHeaderTimeout, time.Duration(0))
		require.Zero(t, in.Main.WriteTimeout)
		require.Nil(t, in.Debug)
		require.Nil(t, h)
		require.Nil(t, consumer)
	})
	require.NoError(t, err)
}

func TestContainerBuilder_Build_ServesPing(t *testing.T) {
	t.Parallel()

	c, err := NewContainerBuilder().
		WithConfig(testConfig()).
		WithDBConnect(stubConnect).
		build(context.Background())
	require.NoError(t, err)

	require.NoError(t, c.Invoke(func(mux http.Handler) {
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ping", nil))
		require.Equal(t, http.StatusOK, rr.Code)
	}))
}

func TestContainerBuilder_Build_OptionalListeners(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Debug = config.Debug{Addr: "127.0.0.1:6060", User: "u", Pass: "p", HealthAddr: "127.0.0.1:0"}

	c, err := NewContainerBuilder().WithConfig(cfg).WithDBConnect(stubConnect).build(context.Background())
	require.NoError(t, err)

	require.NoError(t, c.Invoke(func(in serversView, h *healthService) {
		require.NotNil(t, in.Debug)
		require.Equal(t, "127.0.0.1:6060", in.Debug.Addr)
		require.NotNil(t, h)
		require.NotNil(t, h.Server)
	}))
}

func TestContainerBuilder_Build_DBError(t *testing.T) {
	t.Parallel()

	c, err := NewContainerBuilder().
		WithConfig(testConfig()).
		WithDBConnect(func(context.Context, logx.Logger, string, int, time.Duration) (*pgxpool.Pool, error) {
			return nil, errors.New("db failed")
		}).
		build(context.Background())
	require.NoError(t, err)

	err = c.Invoke(func(*pgxpool.Pool) {})
	require.Error(t, err)
	require.Contains(t, err.Error(), "db failed")
}

func TestContainerBuilder_MustBuild_DoesNotFatal(t *testing.T) {
	t.Parallel()

	c := NewContainerBuilder().
		WithConfig(testConfig()).
		WithDBConnect(stubConnect).
		WithLogFatalf(func(format string, args ...interface{}) {
			require.FailNowf(t, "logFatalf must not be called", format, args...)
		}).
		MustBuild(context.Background())
	require.NotNil(t, c)
}

func TestProvideAll_InvalidProvider(t *testing.T) {
	t.Parallel()

	type bad struct{}
	require.Error(t, provideAll(dig.New(), bad{}))
}

func TestRegisterDb_UsesDSNAndRetries(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{DB: config.DB{Host: "localhost", Port: "5432", User: "user", Pass: "pass", Name: "db"}}
	stubPool := &pgxpool.Pool{}

	c := dig.New()
	require.NoError(t, c.Provide(func() context.Context { return context.Background() }))
	require.NoError(t, c.Provide(func() *config.Config { return cfg }))
	require.NoError(t, c.Provide(logx.Nop))
	require.NoError(t, registerDb(c, func(_ context.Context, _ logx.Logger, dsn string, retries int, delay time.Duration) (*pgxpool.Pool, error) {
		require.Equal(t, cfg.DB.DSN(), dsn)
		require.Equal(t, 10, retries)
		require.Equal(t, time.Second, delay)
		return stubPool, nil
	}))

	require.NoError(t, c.Invoke(func(pool *pgxpool.Pool) {
		require.Same(t, stubPool, pool)
	}))
}

func TestProvideMetrics_RegistersOnRegistry(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	out, err := provideMetrics(reg)
	require.NoError(t, err)
	require.NotNil(t, out.RateLimitExceededTotal)
	require.NotNil(t, out.GatewayRetriesTotal)
	require.NotNil(t, out.Dispatch)

	out.Dispatch.Claim("success")
	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	require.Contains(t, names, "delivery_claim_attempts_total")
}

func TestRegisterCounter_ReturnsExisting(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	existing := metrics.NewGatewayRetriesTotal()
	require.NoError(t, reg.Register(existing))

	got, err := registerCounter(reg, metrics.NewGatewayRetriesTotal(), "gateway_retries_total")
	require.NoError(t, err)
	require.Same(t, existing, got)
}

type errRegisterer struct{ err error }

func (e errRegisterer) Register(prometheus.Collector) error  { return e.err }
func (e errRegisterer) MustRegister(...prometheus.Collector) {}
func (e errRegisterer) Unregister(prometheus.Collector) bool { return false }

func TestRegisterCounter_Error(t *testing.T) {
	t.Parallel()

	_, err := registerCounter(errRegisterer{err: errors.New("boom")}, metrics.NewRateLimitExceededTotal(), "rate_limit_exceeded_total")
	require.Error(t, err)
	require.Contains(t, err.Error(), "register rate_limit_exceeded_total")
}

func TestNewOutbound(t *testing.T) {
	t.Parallel()

	retries := metrics.NewGatewayRetriesTotal()

	out := newOutbound(outboundIn{Cfg: &config.Config{}, Logger: logx.Nop(), Retries: retries})
	require.IsType(t, notify.Nop{}, out)

	cfg := &config.Config{Notify: config.Notify{URL: "http://relay.local/send", Timeout: time.Second, MaxAttempts: 3}}
	out = newOutbound(outboundIn{Cfg: cfg, Logger: logx.Nop(), Retries: retries})
	require.IsType(t, &notify.RetryingGateway{}, out)
}

func TestNewRateLimiter(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.RateLimit.Enabled = false
	require.IsType(t, ratelimit.NopLimiter{}, newRateLimiter(cfg, ratelimit.RealClock{}))

	cfg.RateLimit = config.RateLimit{Enabled: true, Rate: 0.001, Burst: 1}
	l := newRateLimiter(cfg, ratelimit.RealClock{})
	require.True(t, l.Allow("customer:1"))
	require.False(t, l.Allow("customer:1"))

	// drivers get twice the burst
	require.True(t, l.Allow("driver:7"))
	require.True(t, l.Allow("driver:7"))
	require.False(t, l.Allow("driver:7"))
}
