package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/linkdeck/linkdeck/internal/config"
	"github.com/linkdeck/linkdeck/internal/httpserver"
	"github.com/linkdeck/linkdeck/internal/httpserver/deps"
	"github.com/linkdeck/linkdeck/internal/importer"
	"github.com/linkdeck/linkdeck/internal/logger"
	"github.com/linkdeck/linkdeck/internal/preview"
	"github.com/linkdeck/linkdeck/internal/redis"
	"github.com/linkdeck/linkdeck/internal/repo"
	"github.com/linkdeck/linkdeck/internal/sources/browser"
	"github.com/linkdeck/linkdeck/internal/store"
	"github.com/linkdeck/linkdeck/internal/store/memstore"
	"github.com/linkdeck/linkdeck/internal/store/redisstore"
	"github.com/linkdeck/linkdeck/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	repo        *repo.Repository
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Pick the persistence backend - fail fast if Redis is unavailable
	var kv store.KV
	var redisClient *goredis.Client
	switch cfg.StoreBackend {
	case "memory":
		loggerClient.Info("using in-memory store, state is lost on restart")
		kv = memstore.New()
	default:
		loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		client, err := redis.New(redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			DB:             cfg.RedisDB,
			DialTimeout:    cfg.RedisDialTimeout,
			ReadTimeout:    cfg.RedisReadTimeout,
			WriteTimeout:   cfg.RedisWriteTimeout,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
		}, loggerClient)
		if err != nil {
			loggerClient.Errorf("Failed to connect to Redis: %v", err)
			os.Exit(1)
		}
		loggerClient.Info("Redis initialized successfully")
		redisClient = client
		kv = redisstore.New(client)
	}

	// Category seed installed on first run
	seed := repo.DefaultSeed()
	if cfg.SeedFile != "" {
		loaded, err := repo.LoadSeed(cfg.SeedFile)
		if err != nil {
			loggerClient.Errorf("Failed to load seed file %s: %v", cfg.SeedFile, err)
			os.Exit(1)
		}
		seed = loaded
	}

	repository := repo.New(kv, seed, loggerClient)
	if err := repository.Load(context.Background()); err != nil {
		loggerClient.Errorf("Failed to load repository: %v", err)
		os.Exit(1)
	}

	// Native browser bookmark source
	source, err := browser.New(cfg.BrowserSource, cfg.BrowserStorePath)
	if err != nil {
		loggerClient.Errorf("Failed to configure browser source: %v", err)
		os.Exit(1)
	}

	imp := importer.New(source, repository, loggerClient)
	previewClient := preview.New(cfg.PreviewTimeout, loggerClient)

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:         loggerClient,
		StartTime:      time.Now(),
		Version:        version.Version,
		Commit:         version.Commit,
		BuildDate:      version.BuildDate,
		GoVersion:      version.GoVersion,
		TimeNow:        time.Now,
		Repo:           repository,
		Importer:       imp,
		Source:         source,
		Preview:        previewClient,
		PreviewTracker: &preview.Tracker{},
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		repo:        repository,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting Linkdeck v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("Linkdeck %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ Linkdeck stopped cleanly")
	return nil
}
