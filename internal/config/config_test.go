package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func envMap(values map[string]string) envLookup {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func baseEnv() map[string]string {
	return map[string]string{
		"DATABASE_URI":        "postgres://localhost/chowpay",
		"PAYSTACK_SECRET_KEY": "sk_test_key",
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(nil, envMap(baseEnv()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.RunAddress != ":8080" {
		t.Errorf("run address = %q, want :8080", cfg.RunAddress)
	}
	if cfg.GatewayBaseURL != "https://api.paystack.co" {
		t.Errorf("gateway url = %q", cfg.GatewayBaseURL)
	}
	if got, want := cfg.PlatformFeePct.String(), "0.04"; got != want {
		t.Errorf("platform fee pct = %s, want %s", got, want)
	}
	if got, want := cfg.AgentEarningsPct.String(), "0.06"; got != want {
		t.Errorf("agent earnings pct = %s, want %s", got, want)
	}
	if !cfg.RecreditOnFailure {
		t.Errorf("re-credit policy off by default")
	}
	if cfg.SweepInterval != time.Minute {
		t.Errorf("sweep interval = %v, want 1m", cfg.SweepInterval)
	}
	if cfg.PendingMaxAge != 15*time.Minute {
		t.Errorf("pending max age = %v, want 15m", cfg.PendingMaxAge)
	}
	if cfg.WorkerPoolSize != 4 {
		t.Errorf("worker pool = %d, want 4", cfg.WorkerPoolSize)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	env := baseEnv()
	env["RUN_ADDRESS"] = ":9090"
	env["PLATFORM_FEE_PCT"] = "0.05"
	env["AGENT_EARNINGS_PCT"] = "0.1"
	env["RECREDIT_ON_FAILURE"] = "false"
	env["PENDING_MAX_AGE"] = "30m"

	cfg, err := load(nil, envMap(env))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.RunAddress != ":9090" {
		t.Errorf("run address = %q, want :9090", cfg.RunAddress)
	}
	if got, want := cfg.PlatformFeePct.String(), "0.05"; got != want {
		t.Errorf("platform fee pct = %s, want %s", got, want)
	}
	if cfg.RecreditOnFailure {
		t.Errorf("re-credit policy not disabled")
	}
	if cfg.PendingMaxAge != 30*time.Minute {
		t.Errorf("pending max age = %v, want 30m", cfg.PendingMaxAge)
	}
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	env := baseEnv()
	env["RUN_ADDRESS"] = ":9090"

	cfg, err := load([]string{"-a", ":7070", "-sweep-interval", "5m", "-worker-pool", "8"}, envMap(env))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.RunAddress != ":7070" {
		t.Errorf("run address = %q, want flag value :7070", cfg.RunAddress)
	}
	if cfg.SweepInterval != 5*time.Minute {
		t.Errorf("sweep interval = %v, want 5m", cfg.SweepInterval)
	}
	if cfg.WorkerPoolSize != 8 {
		t.Errorf("worker pool = %d, want 8", cfg.WorkerPoolSize)
	}
}

func TestLoadSecretKeyFile(t *testing.T) {
	secretPath := filepath.Join(t.TempDir(), "secret")
	if err := os.WriteFile(secretPath, []byte("sk_live_from_file"), 0o600); err != nil {
		t.Fatalf("write secret file: %v", err)
	}

	env := baseEnv()
	env["PAYSTACK_SECRET_KEY_FILE"] = secretPath

	cfg, err := load(nil, envMap(env))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.GatewaySecretKey != "sk_live_from_file" {
		t.Errorf("secret key = %q, want file content", cfg.GatewaySecretKey)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing database uri", map[string]string{"PAYSTACK_SECRET_KEY": "sk_test"}},
		{"missing secret key", map[string]string{"DATABASE_URI": "postgres://localhost/chowpay"}},
		{"fees sum above one", func() map[string]string {
			env := baseEnv()
			env["PLATFORM_FEE_PCT"] = "0.5"
			env["AGENT_EARNINGS_PCT"] = "0.6"
			return env
		}()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := load(nil, envMap(tt.env)); err == nil {
				t.Errorf("invalid configuration accepted")
			}
		})
	}
}

func TestLoadSanitizesNonPositive(t *testing.T) {
	env := baseEnv()
	env["WORKER_POOL_SIZE"] = "-2"
	env["SWEEP_BATCH_SIZE"] = "0"

	cfg, err := load(nil, envMap(env))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.WorkerPoolSize != 4 {
		t.Errorf("worker pool = %d, want default 4", cfg.WorkerPoolSize)
	}
	if cfg.SweepBatchSize != 32 {
		t.Errorf("sweep batch = %d, want default 32", cfg.SweepBatchSize)
	}
}
