package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validConfig(t *testing.T) Config {
	t.Helper()
	ledger := filepath.Join(t.TempDir(), "transactions.csv")
	if err := os.WriteFile(ledger, []byte("Date,Time,Amount,Category,Receiver,Status\n"), 0o644); err != nil {
		t.Fatalf("write ledger fixture: %v", err)
	}
	return Config{
		Port:               "8082",
		LedgerPath:         ledger,
		GeminiModel:        "gemini-2.5-flash",
		AdviceTimeout:      30 * time.Second,
		SmallAmountCents:   50000,
		RecurrenceMinCount: 3,
		TopMerchants:       5,
		CacheSize:          100,
		CacheTTL:           5 * time.Minute,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		wantErr     bool
		errorString string
	}{
		{
			name:    "valid config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:        "invalid port - non-numeric",
			mutate:      func(c *Config) { c.Port = "abc" },
			wantErr:     true,
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name:        "invalid port - out of range",
			mutate:      func(c *Config) { c.Port = "70000" },
			wantErr:     true,
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name:        "missing ledger file",
			mutate:      func(c *Config) { c.LedgerPath = "/nonexistent/ledger.csv" },
			wantErr:     true,
			errorString: "ledger file does not exist",
		},
		{
			name:        "empty ledger path",
			mutate:      func(c *Config) { c.LedgerPath = "" },
			wantErr:     true,
			errorString: "ledger path cannot be empty",
		},
		{
			name: "api key without model",
			mutate: func(c *Config) {
				c.GeminiAPIKey = "key"
				c.GeminiModel = ""
			},
			wantErr:     true,
			errorString: "Gemini model cannot be empty",
		},
		{
			name:        "advice timeout too short",
			mutate:      func(c *Config) { c.AdviceTimeout = 100 * time.Millisecond },
			wantErr:     true,
			errorString: "must be at least 1 second",
		},
		{
			name:        "recurrence threshold below one",
			mutate:      func(c *Config) { c.RecurrenceMinCount = 0 },
			wantErr:     true,
			errorString: "invalid recurrence threshold",
		},
		{
			name:        "cache size below one",
			mutate:      func(c *Config) { c.CacheSize = 0 },
			wantErr:     true,
			errorString: "invalid cache size",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.errorString != "" && !strings.Contains(err.Error(), tt.errorString) {
					t.Fatalf("expected error containing %q, got %q", tt.errorString, err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "LEDGER_PATH", "GEMINI_API_KEY", "GEMINI_MODEL", "ADVICE_TIMEOUT",
		"SMALL_AMOUNT_THRESHOLD", "RECURRENCE_THRESHOLD", "TOP_MERCHANTS",
		"CACHE_SIZE", "CACHE_TTL",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Port != "8082" {
		t.Fatalf("unexpected default port %s", cfg.Port)
	}
	if cfg.GeminiModel != "gemini-2.5-flash" {
		t.Fatalf("unexpected default model %s", cfg.GeminiModel)
	}
	if cfg.SmallAmountCents != 500*100 {
		t.Fatalf("unexpected small-amount threshold %d", cfg.SmallAmountCents)
	}
	if cfg.RecurrenceMinCount != 3 || cfg.TopMerchants != 5 {
		t.Fatalf("unexpected thresholds %d %d", cfg.RecurrenceMinCount, cfg.TopMerchants)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("SMALL_AMOUNT_THRESHOLD", "250")
	t.Setenv("ADVICE_TIMEOUT", "10s")

	cfg := Load()
	if cfg.Port != "9000" {
		t.Fatalf("PORT override ignored, got %s", cfg.Port)
	}
	if cfg.SmallAmountCents != 25000 {
		t.Fatalf("threshold override ignored, got %d", cfg.SmallAmountCents)
	}
	if cfg.AdviceTimeout != 10*time.Second {
		t.Fatalf("timeout override ignored, got %v", cfg.AdviceTimeout)
	}
}
