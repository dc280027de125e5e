package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/platformops/connect-dashboard/internal/config"
	"github.com/platformops/connect-dashboard/internal/database"
	"github.com/platformops/connect-dashboard/internal/handler"
	"github.com/platformops/connect-dashboard/internal/httputil"
	"github.com/platformops/connect-dashboard/internal/jobs"
	"github.com/platformops/connect-dashboard/internal/metrics"
	"github.com/platformops/connect-dashboard/internal/middleware"
	"github.com/platformops/connect-dashboard/internal/redis"
	"github.com/platformops/connect-dashboard/internal/repository"
	"github.com/platformops/connect-dashboard/internal/service"
	"github.com/platformops/connect-dashboard/internal/stripe"
)

const appName = "connect dashboard"

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	displayAppname(appName)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	setLogLevel(cfg.LogLevel)

	isProduction := os.Getenv("FLY_APP_NAME") != ""
	if err := cfg.Validate(isProduction); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	var issueRepo repository.IssueRecordRepository
	if cfg.HasDatabase() {
		db, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer db.Close()

		ctx, cancel := context.WithTimeout(context.Background(), config.PingTimeout)
		if err := db.Ping(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to ping database")
		}
		if err := db.Migrate(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to migrate database")
		}
		cancel()
		log.Info().Msg("database connected")

		issueRepo = repository.NewIssueRecordRepository(db.DB)
	} else {
		log.Info().Msg("DATABASE_URL not set: issue history is recorded in the audit log only")
	}

	var triggerLimiter middleware.Limiter = middleware.NewRateLimiter()
	if cfg.HasRedis() {
		ctx, cancel := context.WithTimeout(context.Background(), config.PingTimeout)
		redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
		cancel()
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisClient.Close()
		log.Info().Msg("redis connected")

		triggerLimiter = middleware.NewRedisRateLimiter(redisClient.Client)
	}

	stripeClient := stripe.NewClient(cfg.StripeAPIBase, cfg.StripeSecretKey, cfg.StripeAPIVersion)

	accountService := service.NewAccountService(stripeClient)
	sessionService := service.NewSessionService(stripeClient)
	issueService := service.NewIssueService(stripeClient, issueRepo)

	bodyLimitMiddleware := middleware.NewBodyLimitMiddleware(0)
	basicAuthMiddleware := middleware.NewBasicAuthMiddleware(cfg.AdminPasswordHash)
	securityHeadersMiddleware := middleware.NewSecurityHeadersMiddleware(isProduction)
	csrfMiddleware := middleware.NewCSRFMiddleware(isProduction)
	triggerRateLimit := middleware.NewRateLimitMiddleware(triggerLimiter, cfg.TriggerRateLimitPerMin, "trigger-issue")

	apiHandler := handler.NewAPIHandler(accountService, sessionService, issueService, triggerRateLimit.Handler)
	dashboardHandler, err := handler.NewDashboardHandler(accountService, cfg.StripePublishableKey)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load page templates")
	}

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(bodyLimitMiddleware.Handler)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"status":    "ok",
			"timestamp": time.Now().UnixMilli(),
		})
	})
	r.Handle("/metrics", metrics.Handler())

	protected := []func(http.Handler) http.Handler{
		basicAuthMiddleware.Handler,
		securityHeadersMiddleware.Handler,
		csrfMiddleware.Handler,
	}

	r.Route("/api", func(r chi.Router) {
		if len(cfg.CORSAllowedOrigins) > 0 {
			r.Use(cors.Handler(cors.Options{
				AllowedOrigins:   cfg.CORSAllowedOrigins,
				AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
				AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.CSRFHeaderName},
				AllowCredentials: true,
				MaxAge:           300,
			}))
		}
		r.Use(protected...)
		r.Mount("/", apiHandler.Routes())
	})

	r.Group(func(r chi.Router) {
		r.Use(protected...)
		r.Handle("/static/*", handler.StaticFileServer())
		r.Mount("/", dashboardHandler.Routes())
	})

	if issueRepo != nil {
		retentionJob := jobs.NewRetentionJob(issueRepo, cfg.IssueRetention(), config.IssueRetentionJobInterval)
		retentionJob.Start()
		defer retentionJob.Stop()
	}

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: 0,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	go func() {
		log.Info().
			Str("addr", cfg.Addr()).
			Bool("basicAuth", basicAuthMiddleware.Enabled()).
			Bool("stripeConfigured", stripeClient.Configured()).
			Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), config.ServerShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

func displayAppname(name string) {
	banner := figure.NewFigure(name, "cybermedium", true)
	banner.Print()
	fmt.Println()
}

func setLogLevel(level string) {
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
