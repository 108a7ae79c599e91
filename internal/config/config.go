// Package config handles application configuration via environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendREST     = "rest"
	BackendPostgres = "postgres"

	AuthJWT   = "jwt"
	AuthClerk = "clerk"
)

// Config holds all configurable values for the app.
type Config struct {
	Env     string
	Port    string
	LogFile string

	StoreBackend    string
	UpstreamURL     string
	UpstreamTimeout time.Duration
	DatabaseURL     string

	AuthProvider   string
	JWTSecret      string
	ClerkSecretKey string

	WeatherAPIURL  string
	WeatherAPIKey  string
	ContextTimeout time.Duration

	DefaultPeriod  int
	RateLimitRPS   float64
	RateLimitBurst int
	TrustProxy     bool

	MetricsUser string
	MetricsPass string
	PprofSecret string
}

// Load reads an optional .env file and the environment into a Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read .env: %w", err)
	}

	timeout, err := time.ParseDuration(getEnv("UPSTREAM_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid UPSTREAM_TIMEOUT: %w", err)
	}
	contextTimeout, err := time.ParseDuration(getEnv("CONTEXT_TIMEOUT", "3s"))
	if err != nil {
		return nil, fmt.Errorf("invalid CONTEXT_TIMEOUT: %w", err)
	}
	period, err := strconv.Atoi(getEnv("DEFAULT_PERIOD", "7"))
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_PERIOD: %w", err)
	}
	rps, err := strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "5"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_RPS: %w", err)
	}
	burst, err := strconv.Atoi(getEnv("RATE_LIMIT_BURST", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_BURST: %w", err)
	}
	trustProxy, err := strconv.ParseBool(getEnv("TRUST_PROXY", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid TRUST_PROXY: %w", err)
	}

	return &Config{
		Env:             getEnv("ENV", "development"),
		Port:            getEnv("PORT", "3333"),
		LogFile:         os.Getenv("LOG_FILE"),
		StoreBackend:    getEnv("STORE_BACKEND", BackendREST),
		UpstreamURL:     getEnv("UPSTREAM_URL", "http://localhost:3000"),
		UpstreamTimeout: timeout,
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		AuthProvider:    getEnv("AUTH_PROVIDER", AuthJWT),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		ClerkSecretKey:  os.Getenv("CLERK_SECRET_KEY"),
		WeatherAPIURL:   getEnv("WEATHER_API_URL", "https://api.weatherapi.com/v1"),
		WeatherAPIKey:   os.Getenv("WEATHER_API_KEY"),
		ContextTimeout:  contextTimeout,
		DefaultPeriod:   period,
		RateLimitRPS:    rps,
		RateLimitBurst:  burst,
		TrustProxy:      trustProxy,
		MetricsUser:     os.Getenv("METRICS_USER"),
		MetricsPass:     os.Getenv("METRICS_PASS"),
		PprofSecret:     os.Getenv("PPROF_SECRET"),
	}, nil
}

// Validate checks that the selected backends have what they need.
func (c *Config) Validate(validPeriod func(int) bool) error {
	switch c.StoreBackend {
	case BackendREST:
		if c.UpstreamURL == "" {
			return errors.New("UPSTREAM_URL is required for the rest backend")
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres backend")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}

	switch c.AuthProvider {
	case AuthJWT:
		if c.JWTSecret == "" {
			return errors.New("JWT_SECRET is required for jwt auth")
		}
	case AuthClerk:
		if c.ClerkSecretKey == "" {
			return errors.New("CLERK_SECRET_KEY is required for clerk auth")
		}
	default:
		return fmt.Errorf("unknown AUTH_PROVIDER %q", c.AuthProvider)
	}

	if validPeriod != nil && !validPeriod(c.DefaultPeriod) {
		return fmt.Errorf("DEFAULT_PERIOD %d is not an offered period", c.DefaultPeriod)
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return errors.New("rate limit must be positive")
	}
	if c.ContextTimeout <= 0 {
		return errors.New("CONTEXT_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
