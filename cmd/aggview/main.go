package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/playground-analytics/aggview/internal/aggregation"
	corecfg "github.com/playground-analytics/aggview/internal/core/config"
	"github.com/playground-analytics/aggview/internal/core/storage"
	"github.com/playground-analytics/aggview/internal/core/storage/memory"
	"github.com/playground-analytics/aggview/internal/core/storage/postgres"
	"github.com/playground-analytics/aggview/internal/ingestion"
	"github.com/playground-analytics/aggview/internal/migrations"
	"github.com/playground-analytics/aggview/internal/projection"
	"github.com/playground-analytics/aggview/internal/server"
	"github.com/playground-analytics/aggview/internal/telemetry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
)

var version = "dev"

// stores bundles the storage roles the services depend on.
type stores struct {
	activity   storage.ActivityStore
	aggregates storage.AggregateStore
	reader     storage.AggregateReader
	health     server.HealthChecker
	close      func() error
}

func main() {
	configPath := flag.String("config", "", "Path to configuration file")
	once := flag.Bool("once", false, "Run one aggregation pass and exit")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(*configPath, *once); err != nil {
		slog.Error("Exiting with error", "error", err)
		os.Exit(1)
	}
	slog.Info("Shutdown complete")
}

func run(configPath string, once bool) error {
	cfg, err := corecfg.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	slog.Info("Loaded config",
		"database", cfg.Database.Type,
		"aggregation_enabled", cfg.Aggregation.Enabled,
		"max_hours", cfg.Aggregation.MaxHours,
		"safety_margin", cfg.Aggregation.Margin(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Tracing.Enabled {
		shutdown, err := telemetry.Init(ctx, telemetry.Config{
			ServiceName:    cfg.Tracing.ServiceName,
			ServiceVersion: version,
			UseStdout:      cfg.Tracing.Stdout,
		})
		if err != nil {
			return fmt.Errorf("init tracing: %w", err)
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				slog.Error("Tracer shutdown failed", "error", err)
			}
		}()
	}

	st, err := openStores(cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.close(); err != nil {
			slog.Error("Failed to close storage", "error", err)
		}
	}()

	opts := aggregation.JobOptions{
		MaxHours:     cfg.Aggregation.MaxHours,
		SafetyMargin: cfg.Aggregation.Margin(),
		PartitionKey: cfg.Aggregation.PartitionKey,
		Disabled:     !cfg.Aggregation.Enabled,
	}
	job := aggregation.NewJob(st.activity, st.aggregates, opts)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := aggregation.NewMetrics(reg)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}
	job.SetMetrics(metrics)

	if once {
		res, err := job.RunOnce(ctx)
		slog.Info("Aggregation pass finished",
			"status", res.Status,
			"hours_processed", res.HoursProcessed,
			"days_rolled_up", res.DaysRolledUp,
		)
		return err
	}

	var scheduler *aggregation.Scheduler
	if cfg.Aggregation.Schedule != "" {
		scheduler, err = aggregation.NewCronScheduler(cfg.Aggregation.Schedule, job)
		if err != nil {
			return err
		}
	} else {
		scheduler = aggregation.NewScheduler(cfg.Aggregation.Interval(), job)
	}

	srv := server.New(fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port), st.health, reg, cfg.Server.Mode)
	ingestion.NewService(st.activity, cfg.Server.MaxBodySizeMB).RegisterRoutes(srv.Engine)
	projection.NewService(st.reader).RegisterRoutes(srv.Engine)
	job.RegisterRoutes(srv.Engine)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(gctx)
	})
	if cfg.Aggregation.Enabled {
		g.Go(func() error {
			return scheduler.Start(gctx)
		})
	} else {
		slog.Info("Aggregation scheduler disabled by config")
	}

	return g.Wait()
}

func openStores(cfg corecfg.DatabaseConfig) (*stores, error) {
	if cfg.Type == "memory" {
		slog.Warn("Using in-memory storage; data is lost on exit")
		aggregates := memory.NewAggregateStore()
		return &stores{
			activity:   memory.NewActivityStore(),
			aggregates: aggregates,
			reader:     aggregates,
			close:      func() error { return nil },
		}, nil
	}

	db, err := postgres.OpenDB(cfg.DSN, cfg.MaxOpenConns, cfg.MaxIdleConns)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := migrations.RunMigrations(db, cfg.AutoMigrate); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	adapter, err := postgres.NewAdapterFromDB(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	aggregates := postgres.NewAggregateAdapter(db)
	return &stores{
		activity:   adapter,
		aggregates: aggregates,
		reader:     aggregates,
		health:     adapter,
		close:      adapter.Close,
	}, nil
}
