package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress  string   `env:"RUN_ADDRESS" envDefault:":8080"`
	DatabaseURI string   `env:"DATABASE_URI"`
	PublicURL   string   `env:"PUBLIC_URL" envDefault:"http://localhost:8080"`
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:8000"`
	LogLevel    string   `env:"LOG_LEVEL" envDefault:"info"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	AuthSecret    string        `env:"JWT_SECRET" envDefault:"change-me-in-production"`
	AuthStrategy  string        `env:"AUTH_STRATEGY" envDefault:"jwt"`
	TokenTTL      time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
	ResetTokenTTL time.Duration `env:"RESET_TOKEN_TTL" envDefault:"1h"`

	StripeSecretKey     string `env:"STRIPE_SECRET_KEY"`
	StripeWebhookSecret string `env:"STRIPE_WEBHOOK_SECRET"`
	StripeAPIURL        string `env:"STRIPE_API_URL"`
	CheckoutCurrency    string `env:"CHECKOUT_CURRENCY" envDefault:"eur"`

	LeaderboardSize int           `env:"LEADERBOARD_SIZE" envDefault:"10"`
	LeaderboardTTL  time.Duration `env:"LEADERBOARD_TTL" envDefault:"30s"`

	ReconcileInterval time.Duration `env:"RECONCILE_INTERVAL" envDefault:"1m"`
	ReconcileAfter    time.Duration `env:"RECONCILE_AFTER" envDefault:"15m"`
	ReconcileBatch    int           `env:"RECONCILE_BATCH" envDefault:"32"`
	WorkerPoolSize    int           `env:"WORKER_POOL_SIZE" envDefault:"4"`
	ShutdownTimeout   time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

const (
	defaultLeaderboardSize   = 10
	defaultReconcileInterval = time.Minute
	defaultReconcileBatch    = 32
	defaultWorkerPoolSize    = 4
	defaultShutdownTimeout   = 10 * time.Second

	StrategyJWT  = "jwt"
	StrategyHMAC = "hmac"
)

// Load parses configuration from an optional .env file, environment variables and flags.
func Load() (*Config, error) {
	// a missing .env is normal outside local development
	_ = godotenv.Load()
	return load(os.Args[1:], environMap(os.Environ()))
}

func load(args []string, environ map[string]string) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	fs := flag.NewFlagSet("topdonators", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	corsOrigins := strings.Join(cfg.CORSOrigins, ",")

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.RedisAddr, "redis", cfg.RedisAddr, "Redis address for the leaderboard cache")
	fs.StringVar(&cfg.AuthSecret, "jwt-secret", cfg.AuthSecret, "Secret for signing auth tokens")
	fs.StringVar(&cfg.AuthStrategy, "auth-strategy", cfg.AuthStrategy, "Token strategy: jwt or hmac")
	fs.StringVar(&cfg.StripeWebhookSecret, "webhook-secret", cfg.StripeWebhookSecret, "Payment webhook signing secret")
	fs.StringVar(&cfg.PublicURL, "public-url", cfg.PublicURL, "Externally visible base URL")
	fs.StringVar(&corsOrigins, "cors-origins", corsOrigins, "Comma separated CORS allow-list")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent reconcile workers")
	fs.IntVar(&cfg.ReconcileBatch, "reconcile-batch", cfg.ReconcileBatch, "Maximum checkouts per reconcile batch")
	fs.DurationVar(&cfg.ReconcileInterval, "reconcile-interval", cfg.ReconcileInterval, "Interval between reconcile polls")
	fs.DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", cfg.ShutdownTimeout, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}
	cfg.CORSOrigins = splitList(corsOrigins)

	if secretFile := environ["JWT_SECRET_FILE"]; secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.AuthSecret = strings.TrimSpace(string(content))
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}
	if cfg.ReconcileBatch <= 0 {
		cfg.ReconcileBatch = defaultReconcileBatch
	}
	if cfg.ReconcileInterval <= 0 {
		cfg.ReconcileInterval = defaultReconcileInterval
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}
	if cfg.LeaderboardSize <= 0 {
		cfg.LeaderboardSize = defaultLeaderboardSize
	}
	cfg.PublicURL = strings.TrimRight(cfg.PublicURL, "/")

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.DatabaseURI == "" {
		return errors.New("database URI must be provided")
	}
	if c.StripeWebhookSecret == "" {
		return errors.New("webhook signing secret must be provided")
	}
	if c.AuthSecret == "" {
		return errors.New("auth secret must not be empty")
	}
	switch c.AuthStrategy {
	case StrategyJWT, StrategyHMAC:
	default:
		return fmt.Errorf("unknown auth strategy %q", c.AuthStrategy)
	}
	return nil
}

func environMap(environ []string) map[string]string {
	out := make(map[string]string, len(environ))
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok {
			out[k] = v
		}
	}
	return out
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
