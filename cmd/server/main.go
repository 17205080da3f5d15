package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/yourorg/recruitdesk/internal/events"
	"github.com/yourorg/recruitdesk/internal/featureflags"
	"github.com/yourorg/recruitdesk/internal/handler"
	"github.com/yourorg/recruitdesk/internal/infrastructure/logger"
	redisinfra "github.com/yourorg/recruitdesk/internal/infrastructure/redis"
	"github.com/yourorg/recruitdesk/internal/observability/metrics"
	"github.com/yourorg/recruitdesk/internal/observability/tracing"
	"github.com/yourorg/recruitdesk/internal/repository"
	"github.com/yourorg/recruitdesk/internal/security/audit"
	"github.com/yourorg/recruitdesk/internal/security/auth"
	"github.com/yourorg/recruitdesk/internal/security/ratelimit"
	"github.com/yourorg/recruitdesk/internal/service"
	"github.com/yourorg/recruitdesk/internal/worker"
	"github.com/yourorg/recruitdesk/pkg/config"
	"github.com/yourorg/recruitdesk/pkg/database"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 2. Initialize structured logger
	log := logger.NewLogger(cfg.LogLevel)
	log.Info("starting RecruitDesk server", slog.String("environment", cfg.Environment))

	// 3. Initialize tracing (no-op unless an OTLP endpoint is configured)
	shutdownTracing, err := tracing.Init(context.Background(), log, tracing.Options{
		Endpoint:    cfg.OTLPEndpoint,
		ServiceName: "recruitdesk",
		Environment: cfg.Environment,
		SampleRatio: cfg.TraceSampleRatio,
	})
	if err != nil {
		log.Warn("tracing disabled", slog.String("error", err.Error()))
	}

	// 4. Connect to Postgres and run migrations
	dbConfig := &database.Config{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		Database: cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
	}
	if err := database.Migrate(dbConfig, "file://migrations", log); err != nil {
		log.Error("migrations failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := database.NewConnectionPool(ctx, dbConfig, log)
	if err != nil {
		log.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()
	db := pool.GetDB()

	// 5. Optional Redis: shared rate limiting across replicas. Without it the
	// limiter is process local.
	var redisClient *redisinfra.Client
	var authLimiter, apiLimiter ratelimit.Limiter
	if cfg.RedisURL != "" {
		redisClient, err = redisinfra.NewClient(cfg.RedisURL)
		if err != nil {
			log.Error("failed to connect to Redis", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer redisClient.Close()
		authLimiter = ratelimit.NewRedisLimiter(redisClient.Raw(), cfg.AuthRateLimit, cfg.AuthRateWindow, log)
		apiLimiter = ratelimit.NewRedisLimiter(redisClient.Raw(), cfg.APIRateLimit, cfg.APIRateWindow, log)
	} else {
		authLimiter = ratelimit.NewMemoryLimiter(cfg.AuthRateLimit, cfg.AuthRateWindow)
		apiLimiter = ratelimit.NewMemoryLimiter(cfg.APIRateLimit, cfg.APIRateWindow)
	}

	// 6. Repositories
	userRepo := repository.NewPostgresUserRepository(db, log)
	companyRepo := repository.NewPostgresCompanyRepository(db, log)
	positionRepo := repository.NewPostgresPositionRepository(db, log)
	applicantRepo := repository.NewPostgresApplicantRepository(db, log)

	// 7. Services
	tokenManager := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL)
	auditLogger := audit.NewLogger(log)
	hub := events.NewHub()

	authService := service.NewAuthService(userRepo, companyRepo, tokenManager, nil, cfg.BcryptCost, log)
	userService := service.NewUserService(userRepo, auditLogger, cfg.BcryptCost, log)
	positionService := service.NewPositionService(positionRepo, auditLogger, log)
	applicantService := service.NewApplicantService(applicantRepo, hub, auditLogger, log)

	// 8. Handlers and routing
	var feedHandler *handler.FeedHandler
	if featureflags.Enabled(featureflags.ApplicantFeed) {
		feedHandler = handler.NewFeedHandler(hub, tokenManager, cfg.CORSAllowedOrigins, log)
	}

	router := handler.NewRouter(handler.RouterConfig{
		Auth:        handler.NewAuthHandler(authService, log),
		Users:       handler.NewUserHandler(userService, log),
		Positions:   handler.NewPositionHandler(positionService, log),
		Applicants:  handler.NewApplicantHandler(applicantService, log),
		Health:      handler.NewHealthHandler(pool, redisClient, log),
		Feed:        feedHandler,
		Tokens:      tokenManager,
		AuthLimiter: authLimiter,
		APILimiter:  apiLimiter,
		Logger:      log,
	})

	// CORS middleware honoring configured origins
	handlerWithCORS := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if originAllowed(cfg.CORSAllowedOrigins, origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
		} else if len(cfg.CORSAllowedOrigins) > 0 {
			w.Header().Set("Access-Control-Allow-Origin", cfg.CORSAllowedOrigins[0])
		}
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		router.ServeHTTP(w, r)
	})

	// Chain: request ID -> tracing -> metrics -> CORS -> routes
	rootHandler := withRequestID(
		otelhttp.NewHandler(
			metrics.HTTPMetricsMiddleware(handlerWithCORS),
			"recruitdesk",
		),
		log,
	)

	// 9. Retention worker (feature flagged)
	if featureflags.Enabled(featureflags.RetentionWorker) {
		retention := worker.NewRetentionWorker(
			applicantService,
			log,
			time.Duration(cfg.RetentionIntervalMinutes)*time.Minute,
			time.Duration(cfg.RetentionDays)*24*time.Hour,
		)
		go retention.Start(ctx)
	}

	// 10. Start HTTP server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      rootHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Info("server starting",
		slog.Int("port", cfg.ServerPort),
		slog.String("auth", "jwt"),
		slog.Bool("feed_enabled", feedHandler != nil),
	)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", slog.String("error", err.Error()))
		}
	}()

	<-sigChan
	log.Info("shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", slog.String("error", err.Error()))
	}

	cancel()
	authLimiter.Stop()
	apiLimiter.Stop()
	if shutdownTracing != nil {
		if err := shutdownTracing(shutdownCtx); err != nil {
			log.Error("tracing shutdown error", slog.String("error", err.Error()))
		}
	}
	log.Info("server stopped")
}

type requestIDKey struct{}

// withRequestID attaches a request ID to the context and response headers for traceability
func withRequestID(next http.Handler, log *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := generateRequestID()
		w.Header().Set("X-Request-ID", reqID)

		ctx := context.WithValue(r.Context(), requestIDKey{}, reqID)
		start := time.Now()

		next.ServeHTTP(w, r.WithContext(ctx))

		log.Info("request completed",
			slog.String("request_id", reqID),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Duration("duration_ms", time.Since(start)),
		)
	})
}

func originAllowed(allowed []string, origin string) bool {
	if origin == "" {
		return false
	}
	for _, a := range allowed {
		if a == "*" || a == origin {
			return true
		}
	}
	return false
}

func generateRequestID() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err == nil {
		return hex.EncodeToString(buf)
	}
	return fmt.Sprintf("req-%d", time.Now().UnixNano())
}
