package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/fberrez/minihabits/api/handler"
	"github.com/fberrez/minihabits/internal/config"
	"github.com/fberrez/minihabits/internal/infrastructure/buffer"
	"github.com/fberrez/minihabits/internal/infrastructure/monitor"
	pgInfra "github.com/fberrez/minihabits/internal/infrastructure/postgres"
	redisInfra "github.com/fberrez/minihabits/internal/infrastructure/redis"
	"github.com/fberrez/minihabits/internal/middleware"
	"github.com/fberrez/minihabits/internal/router"
	"github.com/fberrez/minihabits/internal/services"
	"github.com/fberrez/minihabits/internal/services/lifecycle"
	"github.com/fberrez/minihabits/pkg/clock"
	"github.com/fberrez/minihabits/pkg/httpcontext"
	"github.com/fberrez/minihabits/pkg/logger"
	"github.com/fberrez/minihabits/repository/postgres"
	redisRepo "github.com/fberrez/minihabits/repository/redis"
	habitsUC "github.com/fberrez/minihabits/usecase/habits"
	statsUC "github.com/fberrez/minihabits/usecase/stats"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
		Service:  cfg.AppName,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	redisClient, err := redisInfra.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("invalid redis configuration", zap.Error(err))
	}
	if err := redisInfra.Ping(appCtx, redisClient); err != nil {
		// Not fatal: totals are buffered locally until Redis comes back.
		zapLogger.Warn("starting with redis offline", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	bufferStore, err := buffer.Open(cfg.Buffer.Path, "totals")
	if err != nil {
		zapLogger.Fatal("failed to open buffer store", zap.Error(err))
	}
	manager.Register("buffer", func(ctx context.Context) error {
		return bufferStore.Close()
	})

	mon := monitor.New(pool, redisClient, bufferStore, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	habitRepo := postgres.NewHabitRepository(pool)
	totalsRepo := redisRepo.NewDailyTotalsRepository(redisClient)

	clk := clock.System()

	recorder := services.NewTotalsRecorder(
		totalsRepo,
		bufferStore,
		mon,
		clk,
		zapLogger,
		services.RecorderConfig{
			Interval:   cfg.Buffer.SyncInterval,
			BatchSize:  50,
			MaxRetries: cfg.Buffer.MaxRetry,
		},
	)
	recorder.Start()
	manager.Register("totals_recorder", func(ctx context.Context) error {
		recorder.Stop(ctx)
		return nil
	})

	registry := habitsUC.NewRegistry(clk)
	quota := habitsUC.NewStaticQuota(habitRepo, cfg.Habits.Limit)

	habitService := habitsUC.NewService(habitRepo, registry, recorder, quota, clk, zapLogger)
	statsService := statsUC.NewService(habitRepo, totalsRepo, registry, clk, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Habit:  apiHandler.NewHabitHandler(habitService, ctxAdapter, zapLogger),
		Stats:  apiHandler.NewStatsHandler(statsService, ctxAdapter, zapLogger),
		Health: apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.JWTAuth(cfg.JWT.Secret, zapLogger)
	r := router.New(handlers, authMiddleware)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
