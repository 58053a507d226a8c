// The taskqueue server exposes named in-memory priority queues over HTTP and
// persists them to a periodic on-disk snapshot. See modules/queueapi for the
// route table.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/taskqueue/modules/queueapi"
	"github.com/dmitrymomot/taskqueue/pkg/config"
	"github.com/dmitrymomot/taskqueue/pkg/httpserver"
	"github.com/dmitrymomot/taskqueue/pkg/logger"
	"github.com/dmitrymomot/taskqueue/pkg/metrics"
	"github.com/dmitrymomot/taskqueue/pkg/taskqueue"
)

type serverConfig struct {
	Port        int    `env:"PORT" envDefault:"8080"`
	SnapshotDir string `env:"SNAPSHOT_DIR" envDefault:"."`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"json"`
}

func main() {
	var cfg serverConfig
	config.MustLoad(&cfg)

	format, err := logger.ParseFormat(cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		panic(fmt.Sprintf("invalid log level %q: %v", cfg.LogLevel, err))
	}

	log := logger.New(
		logger.WithFormat(format),
		logger.WithLevel(level),
		logger.WithService("taskqueue"),
	)
	slog.SetDefault(log)

	reg := taskqueue.NewRegistry()
	snap := taskqueue.NewSnapshotter(reg,
		taskqueue.WithSnapshotDir(cfg.SnapshotDir),
		taskqueue.WithSnapshotLogger(log),
	)
	if err := snap.Load(); err != nil {
		log.Error("snapshot load failed, continuing with empty registry", logger.Error(err))
	}

	svc := queueapi.NewService(reg)

	r := chi.NewRouter()
	r.Mount("/", queueapi.Router(svc, log))
	r.Get("/health", httpserver.HealthCheckHandler(log))
	r.Handle("/metrics", metrics.Handler())

	srv := httpserver.New(
		httpserver.WithAddr(fmt.Sprintf(":%d", cfg.Port)),
		httpserver.WithLogger(log),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Run(ctx, r) })
	g.Go(func() error { return snap.Run(ctx) })

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("server exited", logger.Error(err))
		os.Exit(1)
	}
	log.Info("server stopped")
}
