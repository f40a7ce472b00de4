package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP Server
	Port string

	// Ledger input
	LedgerPath string

	// Advisor (Gemini)
	GeminiAPIKey  string
	GeminiModel   string
	AdviceTimeout time.Duration

	// Aggregation thresholds
	SmallAmountCents   int64
	RecurrenceMinCount int
	TopMerchants       int

	// Summary cache
	CacheSize int
	CacheTTL  time.Duration
}

func Load() *Config {
	return &Config{
		Port:       getEnv("PORT", "8082"),
		LedgerPath: getEnv("LEDGER_PATH", "./data/transactions.csv"),

		GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		AdviceTimeout: getEnvDuration("ADVICE_TIMEOUT", 30*time.Second),

		SmallAmountCents:   int64(getEnvInt("SMALL_AMOUNT_THRESHOLD", 500)) * 100,
		RecurrenceMinCount: getEnvInt("RECURRENCE_THRESHOLD", 3),
		TopMerchants:       getEnvInt("TOP_MERCHANTS", 5),

		CacheSize: getEnvInt("CACHE_SIZE", 100),
		CacheTTL:  getEnvDuration("CACHE_TTL", 5*time.Minute),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.LedgerPath == "" {
		errors = append(errors, "ledger path cannot be empty")
	} else if _, err := os.Stat(c.LedgerPath); os.IsNotExist(err) {
		errors = append(errors, fmt.Sprintf("ledger file does not exist: %s", c.LedgerPath))
	}

	if c.GeminiAPIKey != "" && c.GeminiModel == "" {
		errors = append(errors, "Gemini model cannot be empty when an API key is set")
	}

	if c.AdviceTimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid advice timeout %v: must be at least 1 second", c.AdviceTimeout))
	} else if c.AdviceTimeout > 5*time.Minute {
		errors = append(errors, fmt.Sprintf("invalid advice timeout %v: must be at most 5 minutes", c.AdviceTimeout))
	}

	if c.SmallAmountCents < 0 {
		errors = append(errors, fmt.Sprintf("invalid small-amount threshold %d: must not be negative", c.SmallAmountCents))
	}
	if c.RecurrenceMinCount < 1 {
		errors = append(errors, fmt.Sprintf("invalid recurrence threshold %d: must be at least 1", c.RecurrenceMinCount))
	}
	if c.TopMerchants < 1 {
		errors = append(errors, fmt.Sprintf("invalid top merchants %d: must be at least 1", c.TopMerchants))
	}

	if c.CacheSize < 1 {
		errors = append(errors, fmt.Sprintf("invalid cache size %d: must be at least 1", c.CacheSize))
	}
	if c.CacheTTL < time.Second {
		errors = append(errors, fmt.Sprintf("invalid cache TTL %v: must be at least 1 second", c.CacheTTL))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
