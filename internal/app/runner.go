package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/dig"
	"golang.org/x/sync/errgroup"

	"food-delivery-dispatch/internal/logx"
	"food-delivery-dispatch/internal/service/dispatch"
	"food-delivery-dispatch/internal/transport/kafka"
	"food-delivery-dispatch/internal/transport/ws"
)

const shutdownTimeout = 15 * time.Second

// Runner runs the service out of a built container.
type Runner struct {
	runFn func(*dig.Container) error
	exit  func(int)
}

// NewRunner returns a Runner bound to the real run loop.
func NewRunner() *Runner {
	return &Runner{runFn: run, exit: os.Exit}
}

// MustRun runs until the container context is cancelled. Unexpected errors
// are logged and exit the process.
func (r *Runner) MustRun(container *dig.Container) {
	err := r.runFn(container)
	if err == nil {
		return
	}

	logger := logx.Nop()
	_ = container.Invoke(func(l logx.Logger) { logger = l })

	switch {
	case errors.Is(err, context.Canceled):
		logger.Info("shutdown requested, exiting")
	case errors.Is(err, context.DeadlineExceeded):
		logger.Warn("startup aborted: startup timeout exceeded")
	default:
		logger.Error("run error", logx.Err(err))
		if r.exit != nil {
			r.exit(1)
		}
	}
}

type runIn struct {
	dig.In

	Ctx        context.Context
	Logger     logx.Logger
	Pool       *pgxpool.Pool
	Server     *http.Server
	Debug      *http.Server `name:"debug_server"`
	Health     *healthService
	Consumer   *kafka.Consumer
	WS         *ws.Handler
	Dispatcher *dispatch.Dispatcher
}

func run(container *dig.Container) error {
	return container.Invoke(appRun)
}

// appRun serves every listener until the context ends, then drains them.
func appRun(in runIn) error {
	g, ctx := errgroup.WithContext(in.Ctx)

	g.Go(func() error { return serveHTTP(in.Logger, in.Server, "api") })
	if in.Debug != nil {
		g.Go(func() error { return serveHTTP(in.Logger, in.Debug, "debug") })
	}
	if in.Health != nil {
		g.Go(func() error { return serveHealth(in.Logger, in.Health) })
	}
	if in.Consumer != nil {
		g.Go(func() error {
			in.Logger.Info("kafka consumer started")
			return in.Consumer.Run(ctx)
		})
	}

	g.Go(func() error {
		<-ctx.Done()
		in.Logger.Info("shutting down")
		shutdown(in)
		return nil
	})

	err := g.Wait()
	closeResources(in)
	if err != nil {
		return err
	}
	return in.Ctx.Err()
}

func serveHTTP(logger logx.Logger, srv *http.Server, name string) error {
	logger.Info("http listening", logx.String("server", name), logx.String("addr", srv.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func serveHealth(logger logx.Logger, h *healthService) error {
	lis, err := net.Listen("tcp", h.Addr)
	if err != nil {
		return err
	}
	logger.Info("grpc health listening", logx.String("addr", h.Addr))
	return h.Server.Serve(lis)
}

func shutdown(in runIn) {
	if in.Health != nil {
		in.Health.Health.Shutdown()
		in.Health.Server.GracefulStop()
	}
	gracefulShutdown(in.Server, in.Logger, shutdownTimeout)
	if in.Debug != nil {
		gracefulShutdown(in.Debug, in.Logger, shutdownTimeout)
	}
	// Hijacked websocket connections are not tracked by http.Server.
	if in.WS != nil {
		in.WS.Shutdown()
	}
}

func gracefulShutdown(srv *http.Server, logger logx.Logger, timeout time.Duration) {
	shCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil {
		logger.Warn("graceful shutdown error", logx.String("addr", srv.Addr), logx.Err(err))
	}
}

func closeResources(in runIn) {
	if in.Dispatcher != nil {
		in.Dispatcher.Wait()
	}
	if err := in.Consumer.Close(); err != nil {
		in.Logger.Error("kafka close error", logx.Err(err))
	}
	if in.Pool != nil {
		in.Pool.Close()
	}
}
