package main

import (
	"context"
	stderrors "errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/elishacook/microfun/internal/config"
	"github.com/elishacook/microfun/internal/demo"
	"github.com/elishacook/microfun/pkg/flow"
	"github.com/elishacook/microfun/pkg/frame"
	"github.com/elishacook/microfun/pkg/live"
	"github.com/elishacook/microfun/pkg/snapshot"
	"github.com/elishacook/microfun/pkg/telemetry"
)

func serveCmd() *cobra.Command {
	var (
		port    int
		host    string
		tick    time.Duration
		restore bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the demo over a WebSocket",
		Long: `Serve the demo app. The page at / connects back over /ws; every
frame is sent to the browser as a list of DOM patches.

With a snapshot driver configured, every committed model is journaled
and the last one is restored at startup.

Examples:
  microfun serve
  microfun serve --port=8080
  microfun serve --tick=0 --restore=false`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Server.Port = port
			}
			if host != "" {
				cfg.Server.Host = host
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg, tick, restore)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from config)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from config)")
	cmd.Flags().DurationVar(&tick, "tick", time.Second, "Clock channel period, 0 to disable")
	cmd.Flags().BoolVar(&restore, "restore", true, "Restore the last snapshot at startup")

	return cmd
}

func runServe(ctx context.Context, cfg *config.Config, tick time.Duration, restore bool) error {
	logger, err := newLogger(cfg, os.Stderr)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	store, err := snapshot.Open(ctx, cfg)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	initial := demo.Initial()
	if store != nil && restore {
		initial = restoreModel(ctx, store, initial, logger)
	}

	var (
		observers flow.Observers
		gatherer  prometheus.Gatherer
		hubConfig = live.HubConfig{
			ReadTimeout:  cfg.ReadTimeout(),
			WriteTimeout: cfg.WriteTimeout(),
			Logger:       logger,
		}
	)
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics := telemetry.NewMetrics(
			telemetry.WithRegistry(reg),
			telemetry.WithNamespace(cfg.Metrics.Namespace),
		)
		observers = append(observers, metrics)
		hubConfig.Metrics = metrics
		gatherer = reg
	}
	if cfg.Tracing.Enabled {
		observers = append(observers, telemetry.NewTracer(telemetry.WithTracerName(cfg.Tracing.TracerName)))
	}
	var journal *snapshot.Journal
	if store != nil {
		journal = snapshot.NewJournal(store, snapshot.JournalConfig{Timeout: 10 * time.Second, Logger: logger})
		observers = append(observers, journal)
	}

	loop := flow.NewLoop(flow.LoopConfig{
		Logger: logger.With("component", "loop"),
		OnPanic: func(recovered any, stack []byte) {
			logger.Error("dispatch panic", "panic", recovered, "stack", string(stack))
		},
	})
	hub := live.NewHub(loop, hubConfig)

	clock := frame.NewInterval(cfg.FrameInterval())
	defer clock.Stop()

	app := demo.New(ctx, store)
	mounted := flow.Mount(hub, initial, app.View, app.Channels(tick),
		flow.WithLoop(loop),
		flow.WithClock(clock),
		flow.WithObserver(observers),
		flow.WithLogger(logger.With("component", "flow")),
	)
	defer mounted.Close()

	server := live.NewServer(hub, live.ServerConfig{
		Addr:              cfg.Address(),
		Title:             cfg.Name,
		Styles:            []string{demo.Styles},
		ReadHeaderTimeout: cfg.ReadTimeout(),
		Gatherer:          gatherer,
		MetricsPath:       cfg.Metrics.Path,
		Logger:            logger,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := loop.Run(gctx)
		if stderrors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		defer loop.Close()
		return server.ListenAndServe(gctx)
	})

	err = g.Wait()
	if journal != nil {
		journal.Close()
		logger.Info("journal closed", "written", journal.Written(), "dropped", journal.Dropped())
	}
	return err
}

func restoreModel(ctx context.Context, store snapshot.Store, fallback demo.Model, logger *slog.Logger) demo.Model {
	m, err := snapshot.Restore[demo.Model](ctx, store)
	switch {
	case err == nil:
		if m.Todos == nil {
			m.Todos = map[string]demo.Todo{}
		}
		logger.Info("restored snapshot", "count", m.Count, "todos", len(m.Order))
		return m
	case stderrors.Is(err, snapshot.ErrNotFound):
		return fallback
	default:
		logger.Warn("snapshot restore failed, starting fresh", "error", err)
		return fallback
	}
}
