package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/Amerikrijn/Tuinbeheer-systeem-sub000/internal/adapters/cache"
	"github.com/Amerikrijn/Tuinbeheer-systeem-sub000/internal/adapters/gateway"
	adapterHTTP "github.com/Amerikrijn/Tuinbeheer-systeem-sub000/internal/adapters/handler/http"
	"github.com/Amerikrijn/Tuinbeheer-systeem-sub000/internal/config"
	"github.com/Amerikrijn/Tuinbeheer-systeem-sub000/internal/core/domain"
	"github.com/Amerikrijn/Tuinbeheer-systeem-sub000/internal/core/retry"
	"github.com/Amerikrijn/Tuinbeheer-systeem-sub000/internal/core/services"
	"github.com/Amerikrijn/Tuinbeheer-systeem-sub000/internal/core/workers"
)

// app is everything main wires together, minus the listener.
type app struct {
	router *gin.Engine
	worker *workers.LogbookWorker
	close  func()
}

func newApp(ctx context.Context, cfg *config.Config, log *slog.Logger) (*app, error) {
	startTime := time.Now()
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	gw, err := openGateway(ctx, cfg, log, &closers)
	if err != nil {
		cleanup()
		return nil, err
	}

	var rdb *redis.Client
	if cfg.UseRedis {
		rdb, err = cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			cleanup()
			return nil, err
		}
		closers = append(closers, func() { _ = rdb.Close() })
		gw = gateway.NewCachedGateway(gw, rdb, cfg.CacheTTL, log)
		log.Info("redis connected", "addr", cfg.Redis.Addr())
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	retrier := retry.New(cfg.Retry,
		retry.WithLogger(log),
		retry.WithMetrics(retry.NewMetrics(reg)),
	)

	deps := services.Deps{
		Gateway:                gw,
		Retrier:                retrier,
		Logger:                 log,
		MissingRelationAsEmpty: cfg.MissingRelationAsEmpty,
	}

	users := services.NewUserRepository(deps)
	authService := services.NewAuthService(users)
	tokenService := services.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL, users)

	gardenService := services.NewGardenService(deps)
	plantBedService := services.NewPlantBedService(deps)
	plantService := services.NewPlantService(deps)
	taskService := services.NewTaskService(deps)
	logbookService := services.NewLogbookService(deps)

	worker := workers.NewLogbookWorker(logbookService, plantBedService, plantService, log)
	taskService.SetCompletionQueue(worker)

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:     adapterHTTP.NewAuthHandler(authService, tokenService),
		GardenHandler:   adapterHTTP.NewGardenHandler(gardenService),
		PlantBedHandler: adapterHTTP.NewPlantBedHandler(plantBedService),
		PlantHandler:    adapterHTTP.NewPlantHandler(plantService),
		TaskHandler:     adapterHTTP.NewTaskHandler(taskService),
		LogbookHandler:  adapterHTTP.NewLogbookHandler(logbookService),
		Tokens:          tokenService,
		Gateway:         gw,
		Redis:           rdb,
		Gatherer:        reg,
		RateLimit:       cfg.RateLimit,
		RateLimitWindow: cfg.RateLimitWindow,
		StartTime:       startTime,
		Logger:          log,
	})

	return &app{router: router, worker: worker, close: cleanup}, nil
}

func openGateway(ctx context.Context, cfg *config.Config, log *slog.Logger, closers *[]func()) (domain.Gateway, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		log.Warn("using in-memory backend, data is lost on restart")
		return gateway.NewMemoryGateway(), nil

	case config.BackendSQLite:
		db, err := gateway.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		*closers = append(*closers, func() { _ = db.Close() })
		log.Info("sqlite database opened", "path", cfg.SQLitePath)
		return gateway.NewSQLGateway(db, log), nil

	default:
		log.Info("connecting to database", "host", cfg.Postgres.Host, "driver", cfg.Postgres.Driver)
		db, err := gateway.OpenPostgres(ctx, cfg.Postgres)
		if err != nil {
			return nil, err
		}
		*closers = append(*closers, func() { _ = db.Close() })
		if cfg.EnsureSchema {
			if err := gateway.EnsureSchema(ctx, db); err != nil {
				return nil, err
			}
		}
		log.Info("database connected")
		return gateway.NewSQLGateway(db, log), nil
	}
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	if cfg.LogLevel > slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}

	a, err := newApp(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.close()

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      a.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		<-a.worker.Start(gctx)
		return nil
	})

	g.Go(func() error {
		log.Info("tuinbeheer api listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("stop signal received, shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("server stopped gracefully")
	return nil
}

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	log := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      cfg.LogLevel,
		TimeFormat: time.DateTime,
	}))
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("critical error", "error", err)
		os.Exit(1)
	}
}
