package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds everything the client reads from the environment. Staleness
// windows and the retry policy are explicit here rather than buried in the
// fetch layer, so behavior is reproducible.
type Config struct {
	// API
	APIBaseURL  string
	HTTPTimeout time.Duration

	// Retry policy applied to every resource fetch
	RetryCount   int
	RetryDelay   time.Duration
	RetryBackoff bool

	// Per-resource staleness windows; transaction lists churn faster
	// than account balances.
	StaleSummary      time.Duration
	StaleCapital      time.Duration
	StaleWallets      time.Duration
	StaleTransactions time.Duration
	StaleTransfers    time.Duration

	// Dashboard
	RecentLimit int

	// Local state
	StateDir string
	LogFile  string
}

// Load reads configuration from the environment with defaults.
func Load() *Config {
	return &Config{
		APIBaseURL:  getEnv("MAGLO_API_URL", "https://case.nodelabs.dev/api"),
		HTTPTimeout: getEnvDuration("MAGLO_HTTP_TIMEOUT", 10*time.Second),

		RetryCount:   getEnvInt("MAGLO_RETRY_COUNT", 3),
		RetryDelay:   getEnvDuration("MAGLO_RETRY_DELAY", time.Second),
		RetryBackoff: getEnvBool("MAGLO_RETRY_BACKOFF", false),

		StaleSummary:      getEnvDuration("MAGLO_STALE_SUMMARY", 5*time.Minute),
		StaleCapital:      getEnvDuration("MAGLO_STALE_CAPITAL", 5*time.Minute),
		StaleWallets:      getEnvDuration("MAGLO_STALE_WALLETS", 5*time.Minute),
		StaleTransactions: getEnvDuration("MAGLO_STALE_TRANSACTIONS", 2*time.Minute),
		StaleTransfers:    getEnvDuration("MAGLO_STALE_TRANSFERS", 5*time.Minute),

		RecentLimit: getEnvInt("MAGLO_RECENT_LIMIT", 3),

		StateDir: getEnv("MAGLO_STATE_DIR", ""),
		LogFile:  getEnv("MAGLO_LOG_FILE", ""),
	}
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	var errs []string

	if parsed, err := url.Parse(c.APIBaseURL); err != nil {
		errs = append(errs, fmt.Sprintf("invalid API URL '%s': %v", c.APIBaseURL, err))
	} else if parsed.Scheme != "http" && parsed.Scheme != "https" {
		errs = append(errs, fmt.Sprintf("invalid API URL scheme '%s': must be http or https", parsed.Scheme))
	}

	if c.HTTPTimeout < time.Second {
		errs = append(errs, fmt.Sprintf("invalid HTTP timeout %v: must be at least 1 second", c.HTTPTimeout))
	} else if c.HTTPTimeout > 5*time.Minute {
		errs = append(errs, fmt.Sprintf("invalid HTTP timeout %v: must be at most 5 minutes", c.HTTPTimeout))
	}

	if c.RetryCount < 0 || c.RetryCount > 10 {
		errs = append(errs, fmt.Sprintf("invalid retry count %d: must be between 0 and 10", c.RetryCount))
	}
	if c.RetryDelay < 0 {
		errs = append(errs, fmt.Sprintf("invalid retry delay %v: must not be negative", c.RetryDelay))
	}

	for name, d := range map[string]time.Duration{
		"summary":      c.StaleSummary,
		"capital":      c.StaleCapital,
		"wallets":      c.StaleWallets,
		"transactions": c.StaleTransactions,
		"transfers":    c.StaleTransfers,
	} {
		if d < 10*time.Second {
			errs = append(errs, fmt.Sprintf("invalid %s staleness window %v: must be at least 10 seconds", name, d))
		}
	}

	if c.RecentLimit < 1 || c.RecentLimit > 100 {
		errs = append(errs, fmt.Sprintf("invalid recent transactions limit %d: must be between 1 and 100", c.RecentLimit))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
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

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
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
