package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration. It is loaded once at startup
// and passed explicitly to the components that need it; nothing reads the
// environment at call time.
type Config struct {
	Environment string
	ServerPort  int
	LogLevel    string

	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// RedisURL is optional; empty falls back to the in-process limiter.
	RedisURL string

	// OTLPEndpoint is optional; empty disables trace export.
	OTLPEndpoint     string
	TraceSampleRatio float64

	JWTSecret  string
	JWTIssuer  string
	TokenTTL   time.Duration
	BcryptCost int

	CORSAllowedOrigins []string

	// Rate limits: one budget for the public auth endpoints keyed by client
	// address, one for the authenticated API keyed by tenant.
	AuthRateLimit  int
	AuthRateWindow time.Duration
	APIRateLimit   int
	APIRateWindow  time.Duration

	// RetentionDays is how long purged-eligible (REJECTED) applicants are
	// kept before the retention worker removes them.
	RetentionDays            int
	RetentionIntervalMinutes int
}

// Load reads configuration from the environment, honoring a local .env file
// when present.
func Load() (*Config, error) {
	// Missing .env is the normal case outside development.
	_ = godotenv.Load()

	port, err := intEnv("SERVER_PORT", 8080)
	if err != nil {
		return nil, err
	}
	dbPort, err := intEnv("DB_PORT", 5432)
	if err != nil {
		return nil, err
	}
	tokenTTLHours, err := intEnv("TOKEN_TTL_HOURS", 24)
	if err != nil {
		return nil, err
	}
	bcryptCost, err := intEnv("BCRYPT_COST", 10)
	if err != nil {
		return nil, err
	}
	authRateLimit, err := intEnv("AUTH_RATE_LIMIT", 20)
	if err != nil {
		return nil, err
	}
	authRateWindowSec, err := intEnv("AUTH_RATE_WINDOW_SECONDS", 60)
	if err != nil {
		return nil, err
	}
	apiRateLimit, err := intEnv("API_RATE_LIMIT", 300)
	if err != nil {
		return nil, err
	}
	apiRateWindowSec, err := intEnv("API_RATE_WINDOW_SECONDS", 60)
	if err != nil {
		return nil, err
	}
	retentionDays, err := intEnv("RETENTION_DAYS", 180)
	if err != nil {
		return nil, err
	}
	retentionInterval, err := intEnv("RETENTION_INTERVAL_MINUTES", 60)
	if err != nil {
		return nil, err
	}
	sampleRatio, err := floatEnv("TRACE_SAMPLE_RATIO", 1)
	if err != nil {
		return nil, err
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		ServerPort:  port,
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     dbPort,
		DBUser:     getEnv("DB_USER", "recruitdesk"),
		DBPassword: getEnv("DB_PASSWORD", "dev"),
		DBName:     getEnv("DB_NAME", "recruitdesk"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		RedisURL: os.Getenv("REDIS_URL"),

		OTLPEndpoint:     os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		TraceSampleRatio: sampleRatio,

		JWTSecret:  secret,
		JWTIssuer:  getEnv("JWT_ISSUER", "recruitdesk"),
		TokenTTL:   time.Duration(tokenTTLHours) * time.Hour,
		BcryptCost: bcryptCost,

		CORSAllowedOrigins: parseCSVEnv("CORS_ALLOWED_ORIGINS", []string{
			"http://localhost:5173",
			"http://localhost:3000",
		}),

		AuthRateLimit:  authRateLimit,
		AuthRateWindow: time.Duration(authRateWindowSec) * time.Second,
		APIRateLimit:   apiRateLimit,
		APIRateWindow:  time.Duration(apiRateWindowSec) * time.Second,

		RetentionDays:            retentionDays,
		RetentionIntervalMinutes: retentionInterval,
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func intEnv(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func floatEnv(key string, defaultValue float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func parseCSVEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			trimmed := strings.TrimSpace(p)
			if trimmed != "" {
				out = append(out, trimmed)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return defaultValue
}
