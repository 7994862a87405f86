package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress        string
	DatabaseURI       string
	GatewayBaseURL    string
	GatewaySecretKey  string
	AdminKeyHash      string
	PlatformFeePct    decimal.Decimal
	AgentEarningsPct  decimal.Decimal
	RecreditOnFailure bool
	SweepInterval     time.Duration
	SweepBatchSize    int
	WorkerPoolSize    int
	PendingMaxAge     time.Duration
	ShutdownTimeout   time.Duration
}

const (
	defaultRunAddress      = ":8080"
	defaultGatewayBaseURL  = "https://api.paystack.co"
	defaultSweepInterval   = time.Minute
	defaultSweepBatchSize  = 32
	defaultWorkerPoolSize  = 4
	defaultPendingMaxAge   = 15 * time.Minute
	defaultShutdownTimeout = 10 * time.Second
)

var (
	defaultPlatformFeePct   = decimal.RequireFromString("0.04")
	defaultAgentEarningsPct = decimal.RequireFromString("0.06")
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:        getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:       getString(lookup, "DATABASE_URI", ""),
		GatewayBaseURL:    getString(lookup, "PAYSTACK_BASE_URL", defaultGatewayBaseURL),
		GatewaySecretKey:  getString(lookup, "PAYSTACK_SECRET_KEY", ""),
		AdminKeyHash:      getString(lookup, "ADMIN_API_KEY_HASH", ""),
		PlatformFeePct:    getDecimal(lookup, "PLATFORM_FEE_PCT", defaultPlatformFeePct),
		AgentEarningsPct:  getDecimal(lookup, "AGENT_EARNINGS_PCT", defaultAgentEarningsPct),
		RecreditOnFailure: getBool(lookup, "RECREDIT_ON_FAILURE", true),
		SweepInterval:     getDuration(lookup, "SWEEP_INTERVAL", defaultSweepInterval),
		SweepBatchSize:    getInt(lookup, "SWEEP_BATCH_SIZE", defaultSweepBatchSize),
		WorkerPoolSize:    getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		PendingMaxAge:     getDuration(lookup, "PENDING_MAX_AGE", defaultPendingMaxAge),
		ShutdownTimeout:   getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("chowpay", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		sweepIntervalStr   = cfg.SweepInterval.String()
		pendingMaxAgeStr   = cfg.PendingMaxAge.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.GatewayBaseURL, "gateway-url", cfg.GatewayBaseURL, "Payment gateway base URL")
	fs.StringVar(&cfg.AdminKeyHash, "admin-key-hash", cfg.AdminKeyHash, "bcrypt hash guarding admin endpoints")
	fs.BoolVar(&cfg.RecreditOnFailure, "recredit-on-failure", cfg.RecreditOnFailure, "Re-credit wallet when a transfer fails after debit")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent sweep workers")
	fs.IntVar(&cfg.SweepBatchSize, "sweep-batch", cfg.SweepBatchSize, "Maximum withdrawals per sweep batch")
	fs.StringVar(&sweepIntervalStr, "sweep-interval", sweepIntervalStr, "Interval between stale withdrawal sweeps")
	fs.StringVar(&pendingMaxAgeStr, "pending-max-age", pendingMaxAgeStr, "Age after which a pending withdrawal is considered stuck")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.SweepInterval, err = time.ParseDuration(sweepIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid sweep interval: %w", err)
	}

	if cfg.PendingMaxAge, err = time.ParseDuration(pendingMaxAgeStr); err != nil {
		return nil, fmt.Errorf("invalid pending max age: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("PAYSTACK_SECRET_KEY_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read gateway secret file: %w", err)
		}
		cfg.GatewaySecretKey = string(content)
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.SweepBatchSize <= 0 {
		cfg.SweepBatchSize = defaultSweepBatchSize
	}

	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = defaultSweepInterval
	}

	if cfg.PendingMaxAge <= 0 {
		cfg.PendingMaxAge = defaultPendingMaxAge
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.GatewaySecretKey == "" {
		return nil, fmt.Errorf("gateway secret key must be provided")
	}

	if cfg.PlatformFeePct.IsNegative() || cfg.AgentEarningsPct.IsNegative() ||
		cfg.PlatformFeePct.Add(cfg.AgentEarningsPct).GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("fee percentages must be non-negative and sum below 1")
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

func getBool(lookup envLookup, key string, def bool) bool {
	if v, ok := lookup(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
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

func getDecimal(lookup envLookup, key string, def decimal.Decimal) decimal.Decimal {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			return d
		}
	}
	return def
}
