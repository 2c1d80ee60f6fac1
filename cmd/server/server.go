package main

import (
	"context"
	"fmt"
	"net"
	"time"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/fastygo/pomodoro/api/handler"
	"github.com/fastygo/pomodoro/internal/config"
	"github.com/fastygo/pomodoro/internal/infrastructure/database"
	"github.com/fastygo/pomodoro/internal/infrastructure/monitor"
	redisInfra "github.com/fastygo/pomodoro/internal/infrastructure/redis"
	"github.com/fastygo/pomodoro/internal/middleware"
	"github.com/fastygo/pomodoro/internal/router"
	"github.com/fastygo/pomodoro/internal/services/lifecycle"
	"github.com/fastygo/pomodoro/pkg/clock"
	"github.com/fastygo/pomodoro/pkg/httpcontext"
	"github.com/fastygo/pomodoro/pkg/logger"
	"github.com/fastygo/pomodoro/repository"
	redisRepo "github.com/fastygo/pomodoro/repository/redis"
	statsUC "github.com/fastygo/pomodoro/usecase/stats"
	todoUC "github.com/fastygo/pomodoro/usecase/todo"
	userUC "github.com/fastygo/pomodoro/usecase/user"
	"github.com/fastygo/pomodoro/web"
)

type options struct {
	envFile   string
	logLevel  string
	logFormat string
	addr      string
}

func run(parent context.Context, opts options) error {
	cfg, err := config.Load(opts.envFile)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := applyOverrides(cfg, opts); err != nil {
		return err
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer zapLogger.Sync()

	if parent == nil {
		parent = context.Background()
	}
	appCtx, cancel := context.WithCancel(parent)
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	clk := clock.Real()

	store, err := database.Open(appCtx, cfg, zapLogger)
	if err != nil {
		return err
	}
	manager.Register("database", func(ctx context.Context) error {
		return store.Close()
	})

	redisClient, err := redisInfra.NewClient(appCtx, cfg.Redis, zapLogger)
	if err != nil {
		// the cache is optional; run without it
		zapLogger.Warn("redis unavailable, stats cache disabled", zap.Error(err))
		redisClient = nil
	}
	var statsCache repository.StatsCache
	if redisClient != nil {
		statsCache = redisRepo.NewStatsCache(redisClient, cfg.Stats.CacheTTL)
		manager.Register("redis", func(ctx context.Context) error {
			return redisClient.Close()
		})
	}

	mon := monitor.New(3*time.Second, clk, zapLogger)
	mon.Register("database", true, store)
	if redisClient != nil {
		mon.Register("redis", false, redisPinger(redisClient))
	}

	renderer, err := web.NewRenderer(cfg.AppName)
	if err != nil {
		return err
	}

	userUseCase := userUC.New(store, statsCache, zapLogger)
	todoUseCase := todoUC.New(store, statsCache, clk, cfg.Stats.Location, zapLogger)
	statsUseCase := statsUC.New(store, statsCache, clk, cfg.Stats.Location, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		User:   apiHandler.NewUserHandler(userUseCase, ctxAdapter, zapLogger),
		Todo:   apiHandler.NewTodoHandler(todoUseCase, ctxAdapter, zapLogger),
		Stats:  apiHandler.NewStatsHandler(statsUseCase, ctxAdapter, zapLogger),
		Health: apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
		Page:   apiHandler.NewPageHandler(renderer, ctxAdapter, zapLogger),
	}
	r := router.New(handlers, cfg.HTTP.StaticDir)

	server := &fasthttp.Server{
		Handler: middleware.Chain(r.Handler,
			middleware.RequestID(),
			middleware.AccessLog(zapLogger, clk),
			middleware.Recover(zapLogger),
		),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	manager.Go("http_server", func() error {
		zapLogger.Info("server started",
			zap.String("address", cfg.Address()),
			zap.String("environment", cfg.Environment))
		return server.ListenAndServe(cfg.Address())
	})
	manager.Register("http_server", func(ctx context.Context) error {
		return server.ShutdownWithContext(ctx)
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
	return manager.Err()
}

func applyOverrides(cfg *config.Config, opts options) error {
	if opts.logLevel != "" {
		cfg.Logger.Level = opts.logLevel
	}
	if opts.logFormat != "" {
		cfg.Logger.Encoding = opts.logFormat
	}
	if opts.addr != "" {
		host, port, err := net.SplitHostPort(opts.addr)
		if err != nil {
			return fmt.Errorf("invalid --addr %q: %w", opts.addr, err)
		}
		cfg.HTTP.Host = host
		cfg.HTTP.Port = port
	}
	return nil
}

func redisPinger(client *goRedis.Client) monitor.Pinger {
	return monitor.PingerFunc(func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	})
}
