// Package main is the entrypoint for the places API server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"regexp"
	"strings"
	"syscall"
	"time"

	"github.com/lmittmann/tint"

	"github.com/placelist/placelist/internal/auth"
	"github.com/placelist/placelist/internal/cache"
	"github.com/placelist/placelist/internal/config"
	"github.com/placelist/placelist/internal/metrics"
	"github.com/placelist/placelist/internal/repository"
	"github.com/placelist/placelist/internal/server"
	"github.com/placelist/placelist/internal/service"
)

func main() {
	// Cancelled on SIGINT/SIGTERM; the server drains and closes its dependencies.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg)

	// Initialize database
	repo, err := repository.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	logger.Info("connected to database")

	if cfg.RunMigrations {
		applied, err := repo.Migrate(ctx)
		if err != nil {
			logger.Error("failed to apply migrations", slog.String("error", sanitizeError(err, cfg.DatabaseURL)))
			repo.Close()
			os.Exit(1)
		}
		logger.Info("migrations applied", "versions", applied)
	}

	metricsRecorder := metrics.NewPrometheus()
	tokens := auth.NewTokenManager(cfg.SecretKey, cfg.TokenTTL)

	deps := server.Deps{
		Users:          service.NewUserService(repo, tokens, metricsRecorder, logger),
		Reviews:        service.NewReviewService(repo, metricsRecorder),
		Lists:          service.NewListService(repo, metricsRecorder),
		Tokens:         tokens,
		DB:             repo,
		Metrics:        metricsRecorder,
		MetricsHandler: metricsRecorder.Handler(),
		Logger:         logger,
	}

	var cacheClient *cache.Cache

	// Redis is optional; without it places are read straight from Postgres
	// and credential endpoints are not rate limited.
	if cfg.RedisURL != "" {
		cacheClient, err = cache.New(ctx, cfg.RedisURL)
		if err != nil {
			logger.Error(
				"failed to connect to Redis",
				slog.String("error", sanitizeError(err, cfg.RedisURL)),
				slog.String("redis_url", redactURL(cfg.RedisURL)),
			)
			repo.Close()
			os.Exit(1)
		}
		logger.Info("connected to Redis")

		deps.Places = service.NewPlaceService(repo, cacheClient, metricsRecorder, logger)
		deps.Cache = cacheClient
		deps.Limiter = cacheClient
	} else {
		logger.Warn("REDIS_URL not set; place cache and rate limiting disabled")
		deps.Places = service.NewPlaceService(repo, nil, metricsRecorder, logger)
	}

	srv := server.New(server.NewRouter(deps, cfg), cfg, logger)
	srv.OnShutdown("postgres", func(context.Context) error {
		repo.Close()
		return nil
	})
	if cacheClient != nil {
		srv.OnShutdown("redis", func(context.Context) error {
			return cacheClient.Close()
		})
	}

	logger.Info("starting server",
		"port", cfg.Port,
		"env", cfg.AppEnv,
		"cors_origins", cfg.GetCORSAllowedOrigins(),
	)

	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
// LOG_FORMAT=text gives colored output for local development.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	level := parseLogLevel(cfg.LogLevel)

	if cfg.LogFormat == "text" {
		h = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		h = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
