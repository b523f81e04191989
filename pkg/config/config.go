// Package config holds global settings for the lurebox gateway and core.
// All settings can be configured via environment variables, programmatically,
// or through an optional YAML overrides file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds tunable settings for scoring, escalation and the gateway.
type Config struct {
	// === Core Settings ===
	Environment string // "production" or "development"
	APIKey      string // Shared secret for the x-api-key header

	// === Detection Thresholds ===
	// Tune these to balance engagement time vs. false positives
	ScamThreshold     float64 // Confidence at/above this marks a message as a scam (default: 0.3)
	MinIndicators     int     // Distinct indicator families that alone mark a scam (default: 2)
	PlaybookThreshold float64 // Minimum phrase-match fraction for a playbook hit (default: 0.4)

	// === Escalation Policy ===
	MaxTurnBudget int // Hard turn budget before a first report fires (default: 10)
	MinIntel      int // High-value entities needed for the intel trigger (default: 2)

	// === Session Management ===
	SessionIdleTTL time.Duration // Idle window before a session is swept (default: 1 hour)

	// === Report Delivery ===
	ReportURL     string        // Webhook endpoint for escalation reports
	ReportTimeout time.Duration // Per-attempt delivery timeout (default: 10s)
	ReportRetries int           // Bounded retries after the first attempt (default: 2)

	// === Gateway ===
	ListenAddr string // Address for the fiber app (default: ":5000")
}

// NewDefaultConfig creates a Config with sensible defaults.
// All settings can be overridden via environment variables.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: GetEnv("LUREBOX_ENV", "development"),
		APIKey:      GetEnv("LUREBOX_API_KEY", ""),

		ScamThreshold:     GetEnvFloat("LUREBOX_SCAM_THRESHOLD", 0.3),
		MinIndicators:     GetEnvInt("LUREBOX_MIN_INDICATORS", 2),
		PlaybookThreshold: GetEnvFloat("LUREBOX_PLAYBOOK_THRESHOLD", 0.4),

		MaxTurnBudget: GetEnvInt("LUREBOX_MAX_TURNS", 10),
		MinIntel:      GetEnvInt("LUREBOX_MIN_INTEL", 2),

		SessionIdleTTL: GetEnvDuration("LUREBOX_SESSION_TTL", time.Hour),

		ReportURL:     GetEnv("LUREBOX_REPORT_URL", ""),
		ReportTimeout: GetEnvDuration("LUREBOX_REPORT_TIMEOUT", 10*time.Second),
		ReportRetries: clampInt(GetEnvInt("LUREBOX_REPORT_RETRIES", 2), 0, 10),

		ListenAddr: GetEnv("LUREBOX_LISTEN_ADDR", ":5000"),
	}
}

// NewAggressiveConfig creates a Config that escalates early (more reports,
// shorter engagements). Useful when downstream triage capacity is high.
func NewAggressiveConfig() *Config {
	cfg := NewDefaultConfig()
	cfg.ScamThreshold = 0.2
	cfg.MaxTurnBudget = 6
	cfg.MinIntel = 1
	return cfg
}

// NewConservativeConfig creates a Config that keeps conversations running
// longer before reporting, maximizing extracted intelligence per report.
func NewConservativeConfig() *Config {
	cfg := NewDefaultConfig()
	cfg.ScamThreshold = 0.4
	cfg.MaxTurnBudget = 16
	cfg.MinIntel = 3
	return cfg
}

// fileOverrides mirrors the subset of Config that may be set from a YAML
// file. Pointer fields distinguish "absent" from zero values.
type fileOverrides struct {
	ScamThreshold     *float64 `yaml:"scam_threshold"`
	MinIndicators     *int     `yaml:"min_indicators"`
	PlaybookThreshold *float64 `yaml:"playbook_threshold"`
	MaxTurnBudget     *int     `yaml:"max_turn_budget"`
	MinIntel          *int     `yaml:"min_intel"`
	SessionIdleTTL    *string  `yaml:"session_idle_ttl"`
	ReportURL         *string  `yaml:"report_url"`
	ListenAddr        *string  `yaml:"listen_addr"`
}

// ApplyFile merges overrides from a YAML file into the Config. A missing
// file is not an error so deployments can ship without one.
func (c *Config) ApplyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}

	var o fileOverrides
	if err := yaml.Unmarshal(data, &o); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if o.ScamThreshold != nil {
		c.ScamThreshold = *o.ScamThreshold
	}
	if o.MinIndicators != nil {
		c.MinIndicators = *o.MinIndicators
	}
	if o.PlaybookThreshold != nil {
		c.PlaybookThreshold = *o.PlaybookThreshold
	}
	if o.MaxTurnBudget != nil {
		c.MaxTurnBudget = *o.MaxTurnBudget
	}
	if o.MinIntel != nil {
		c.MinIntel = *o.MinIntel
	}
	if o.SessionIdleTTL != nil {
		d, err := time.ParseDuration(*o.SessionIdleTTL)
		if err != nil {
			return fmt.Errorf("parse session_idle_ttl: %w", err)
		}
		c.SessionIdleTTL = d
	}
	if o.ReportURL != nil {
		c.ReportURL = *o.ReportURL
	}
	if o.ListenAddr != nil {
		c.ListenAddr = *o.ListenAddr
	}

	return nil
}

// Validate checks that required configuration is present. In production the
// API key and report URL are mandatory.
func (c *Config) Validate() error {
	var problems []string

	if c.IsProduction() {
		if c.APIKey == "" {
			problems = append(problems, "LUREBOX_API_KEY (gateway authentication secret)")
		}
		if c.ReportURL == "" {
			problems = append(problems, "LUREBOX_REPORT_URL (escalation report endpoint)")
		}
	}

	if c.ScamThreshold < 0 || c.ScamThreshold > 1 {
		problems = append(problems, "LUREBOX_SCAM_THRESHOLD (must be in [0,1])")
	}
	if c.MaxTurnBudget < 1 {
		problems = append(problems, "LUREBOX_MAX_TURNS (must be >= 1)")
	}
	if c.SessionIdleTTL <= 0 {
		problems = append(problems, "LUREBOX_SESSION_TTL (must be positive)")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, ", "))
	}
	return nil
}

// MustValidate panics on invalid configuration. For use at process start
// where a bad config should stop the boot outright.
func (c *Config) MustValidate() {
	if err := c.Validate(); err != nil {
		panic(err)
	}
}

// IsProduction reports whether the config targets a production environment.
func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.Environment)
	return env == "production" || env == "prod"
}

// clampInt ensures a value is within bounds
func clampInt(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Helper functions for environment variable parsing.
// These are exported for use by other packages.

// GetEnv returns the value of an environment variable or a default value.
func GetEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

// GetEnvBool returns the boolean value of an environment variable or a default value.
func GetEnvBool(key string, defaultValue bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return defaultValue
}

// GetEnvFloat returns the float64 value of an environment variable or a default value.
func GetEnvFloat(key string, defaultValue float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return defaultValue
}

// GetEnvInt returns the integer value of an environment variable or a default value.
func GetEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return defaultValue
}

// GetEnvDuration returns the duration value of an environment variable or a
// default. Accepts Go duration syntax ("90s", "1h") or bare seconds.
func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
