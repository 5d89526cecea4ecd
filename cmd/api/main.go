package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"gatherly/config"
	_ "gatherly/docs"
	"gatherly/internal/adapters/auth"
	"gatherly/internal/adapters/email"
	"gatherly/internal/adapters/lock"
	deliveryhttp "gatherly/internal/delivery/http"
	"gatherly/internal/delivery/http/controllers"
	"gatherly/internal/delivery/http/middleware"
	"gatherly/internal/domain"
	"gatherly/internal/repository/postgres"
	"gatherly/internal/services"
)

// @title Gatherly API
// @version 1.0
// @description Gatherings, invitations and attendance.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger := config.NewLogger(cfg.Environment, cfg.LogLevel)

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("failed to open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("failed to connect to database", "err", err)
		os.Exit(1)
	}
	if cfg.RunMigrations {
		if err := postgres.ApplyMigrations(db); err != nil {
			logger.Error("failed to apply migrations", "err", err)
			os.Exit(1)
		}
	}

	locker, closeLocker, err := newLocker(cfg.Lock, logger)
	if err != nil {
		logger.Error("failed to set up gathering lock", "err", err)
		os.Exit(1)
	}
	defer closeLocker()

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:             cfg.Email.SES.Region,
			AccessKeyID:        cfg.Email.SES.AccessKeyID,
			SecretAccessKey:    cfg.Email.SES.SecretAccessKey,
			InsecureSkipVerify: cfg.Email.SES.InsecureSkipVerify,
		},
	}, logger)
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}

	store := postgres.NewStore(db)
	clock := domain.SystemClock{}
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)
	gatheringService := services.NewGatheringService(store, domain.NewGatheringFactory(clock), logger, cfg.RequestTimeout)
	invitationService := services.NewInvitationService(store,
		domain.NewInvitationAcceptanceResolver(clock),
		locker,
		emailService,
		logger,
		services.AcceptanceConfig{
			MaxAttempts:  cfg.Accept.MaxAttempts,
			RetryBackoff: cfg.Accept.RetryBackoff,
			Timeout:      cfg.RequestTimeout,
		},
	)

	if cfg.JWTSecret == "" {
		logger.Warn("JWT_SECRET is empty, bearer tokens are signed with an empty key")
	}
	requireAuth := middleware.RequireAuth(auth.NewJWTVerifier(cfg.JWTSecret), logger)
	acceptLimit := middleware.RateLimit(middleware.RateLimitConfig{
		RequestsPerSecond: cfg.Accept.RequestsPerSecond,
		Burst:             cfg.Accept.Burst,
	}, middleware.IPKeyExtractor, logger)

	router := deliveryhttp.NewRouter(deliveryhttp.Controllers{
		Gathering:  controllers.NewGatheringController(logger, gatheringService),
		Invitation: controllers.NewInvitationController(logger, invitationService),
		Health:     controllers.NewHealthController(logger, db),
	}, requireAuth, acceptLimit)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           middleware.CORS(cfg.AllowedOrigins, middleware.LoggingMiddleware(logger, router)),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Port, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "err", err)
	}
}

// newLocker builds the per-gathering lock selected by LOCK_PROVIDER.
func newLocker(cfg config.LockConfig, logger *slog.Logger) (domain.GatheringLocker, func(), error) {
	switch cfg.Provider {
	case "redis":
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, nil, err
		}
		l := lock.NewRedisLocker(rdb, lock.RedisConfig{TTL: cfg.TTL, PollInterval: cfg.PollInterval}, logger)
		return l, func() { _ = rdb.Close() }, nil
	case "none":
		logger.Warn("gathering lock disabled, relying on optimistic concurrency only")
		return lock.NewNoopLocker(), func() {}, nil
	case "local", "":
		return lock.NewLocalLocker(), func() {}, nil
	default:
		logger.Warn("unknown lock provider, using local", "provider", cfg.Provider)
		return lock.NewLocalLocker(), func() {}, nil
	}
}
