package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"titlehub/database"
	"titlehub/internal/config"
	"titlehub/internal/microservices/http-api/handler"
	"titlehub/internal/microservices/http-api/middleware"
	"titlehub/internal/microservices/http-api/notify"
	"titlehub/internal/microservices/http-api/repository"
	"titlehub/internal/microservices/http-api/router"
	"titlehub/internal/microservices/http-api/service"
	"titlehub/internal/microservices/http-api/validator"

	"github.com/gin-gonic/gin"
)

const tokenSweepInterval = time.Hour

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := cfg.NewLogger(os.Stdout)
	slog.SetDefault(logger)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := validator.RegisterBindings(); err != nil {
		log.Fatalf("could not register validators: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(cfg, logger)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer sqlDB.Close()

	// repositories
	users := repository.NewUserRepository(db)
	refreshTokens := repository.NewRefreshTokenRepository(db)
	categories := repository.NewCategoryRepository(db)
	genres := repository.NewGenreRepository(db)
	titles := repository.NewTitleRepository(db)
	reviews := repository.NewReviewRepository(db)
	comments := repository.NewCommentRepository(db)

	// services
	authService := service.NewAuthService(users, refreshTokens, newNotifier(cfg, logger), cfg, logger)
	if cfg.LegacySkipCodeCheck {
		logger.Warn("AUTH_LEGACY_SKIP_CODE_CHECK is set; confirmation codes are not verified")
	}

	var metrics *middleware.Metrics
	if cfg.PrometheusEnabled {
		metrics = middleware.NewMetrics("titlehub")
	}

	r, err := router.New(router.Handlers{
		Auth:       handler.NewAuthHandler(authService, logger),
		Users:      handler.NewUserHandler(service.NewUserService(users, logger)),
		Categories: handler.NewCategoryHandler(service.NewCategoryService(categories)),
		Genres:     handler.NewGenreHandler(service.NewGenreService(genres)),
		Titles:     handler.NewTitleHandler(service.NewTitleService(titles, categories, genres)),
		Reviews:    handler.NewReviewHandler(service.NewReviewService(reviews, titles)),
		Comments:   handler.NewCommentHandler(service.NewCommentService(comments, reviews)),
	}, router.Options{
		Logger:         logger,
		Tokens:         authService,
		Users:          users,
		Limiter:        newLimiter(ctx, cfg, logger),
		Metrics:        metrics,
		CORSOrigins:    cfg.CORSOrigins,
		TrustedProxies: cfg.TrustedProxies,
	})
	if err != nil {
		log.Fatalf("router: %v", err)
	}

	go sweepRefreshTokens(ctx, refreshTokens, logger)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		logger.Info("api server listening", "addr", srv.Addr, "env", cfg.GoEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("received shutdown signal")
	case err := <-errChan:
		logger.Error("server error", "error", err)
		os.Exit(1)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
		return
	}
	logger.Info("server stopped gracefully")
}

func newNotifier(cfg *config.Config, logger *slog.Logger) notify.Notifier {
	if cfg.MailBackend == "smtp" {
		return notify.NewSMTPNotifier(notify.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
		})
	}
	return notify.NewLogNotifier(logger)
}

// newLimiter prefers the shared Redis counter and falls back to per-process buckets.
func newLimiter(ctx context.Context, cfg *config.Config, logger *slog.Logger) middleware.Limiter {
	if cfg.RedisURL != "" {
		rdb, err := database.ConnectRedis(ctx, cfg.RedisURL, cfg.RedisPassword, logger)
		if err == nil {
			return middleware.NewRedisLimiter(rdb, cfg.RateLimitRequests, cfg.RateLimitWindow)
		}
		logger.Warn("redis unavailable, rate limiting per process", "error", err)
	}
	return middleware.NewLocalLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)
}

func sweepRefreshTokens(ctx context.Context, tokens repository.RefreshTokenRepository, logger *slog.Logger) {
	ticker := time.NewTicker(tokenSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			n, err := tokens.DeleteExpired(ctx, now)
			if err != nil {
				logger.Error("refresh token sweep failed", "error", err)
				continue
			}
			if n > 0 {
				logger.Info("expired refresh tokens removed", "count", n)
			}
		}
	}
}
