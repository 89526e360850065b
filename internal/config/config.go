package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// Quote storage backends.
const (
	QuoteStoreRedis    = "redis"
	QuoteStorePostgres = "postgres"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress      string
	UpstreamBaseURL string
	UpstreamTimeout time.Duration
	QuoteStore      string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	DatabaseURI     string
	SweepInterval   time.Duration
	ShutdownTimeout time.Duration
	APIKeyHash      string
	LogLevel        string
}

const (
	defaultRunAddress      = ":8080"
	defaultUpstreamTimeout = 10 * time.Second
	defaultQuoteStore      = QuoteStoreRedis
	defaultRedisAddr       = "localhost:6379"
	defaultSweepInterval   = time.Minute
	defaultShutdownTimeout = 10 * time.Second
	defaultLogLevel        = "info"
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:      getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		UpstreamBaseURL: getString(lookup, "UPSTREAM_BASE_URL", ""),
		UpstreamTimeout: getDuration(lookup, "UPSTREAM_TIMEOUT", defaultUpstreamTimeout),
		QuoteStore:      getString(lookup, "QUOTE_STORE", defaultQuoteStore),
		RedisAddr:       getString(lookup, "REDIS_ADDR", defaultRedisAddr),
		RedisPassword:   getString(lookup, "REDIS_PASSWORD", ""),
		RedisDB:         getInt(lookup, "REDIS_DB", 0),
		DatabaseURI:     getString(lookup, "DATABASE_URI", ""),
		SweepInterval:   getDuration(lookup, "SWEEP_INTERVAL", defaultSweepInterval),
		ShutdownTimeout: getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		APIKeyHash:      getString(lookup, "API_KEY_HASH", ""),
		LogLevel:        getString(lookup, "LOG_LEVEL", defaultLogLevel),
	}

	fs := flag.NewFlagSet("orderrelay", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		upstreamTimeoutStr = cfg.UpstreamTimeout.String()
		sweepIntervalStr   = cfg.SweepInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.UpstreamBaseURL, "u", cfg.UpstreamBaseURL, "Upstream ordering API base URL")
	fs.StringVar(&upstreamTimeoutStr, "upstream-timeout", upstreamTimeoutStr, "Per-attempt upstream request timeout")
	fs.StringVar(&cfg.QuoteStore, "quote-store", cfg.QuoteStore, "Quote storage backend (redis or postgres)")
	fs.StringVar(&cfg.RedisAddr, "redis", cfg.RedisAddr, "Redis address")
	fs.IntVar(&cfg.RedisDB, "redis-db", cfg.RedisDB, "Redis database number")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&sweepIntervalStr, "sweep-interval", sweepIntervalStr, "Interval between expired quote sweeps")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.UpstreamTimeout, err = time.ParseDuration(upstreamTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid upstream timeout: %w", err)
	}

	if cfg.SweepInterval, err = time.ParseDuration(sweepIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid sweep interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if hashFile, ok := lookup("API_KEY_HASH_FILE"); ok && hashFile != "" {
		content, err := os.ReadFile(hashFile)
		if err != nil {
			return nil, fmt.Errorf("read api key hash file: %w", err)
		}
		cfg.APIKeyHash = strings.TrimSpace(string(content))
	}

	if cfg.UpstreamTimeout <= 0 {
		cfg.UpstreamTimeout = defaultUpstreamTimeout
	}

	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = defaultSweepInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	cfg.QuoteStore = strings.ToLower(strings.TrimSpace(cfg.QuoteStore))

	if cfg.UpstreamBaseURL == "" {
		return nil, fmt.Errorf("upstream base URL must be provided")
	}

	switch cfg.QuoteStore {
	case QuoteStoreRedis:
		if cfg.RedisAddr == "" {
			return nil, fmt.Errorf("redis address must be provided")
		}
	case QuoteStorePostgres:
		if cfg.DatabaseURI == "" {
			return nil, fmt.Errorf("database URI must be provided for postgres quote store")
		}
	default:
		return nil, fmt.Errorf("unknown quote store %q", cfg.QuoteStore)
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
