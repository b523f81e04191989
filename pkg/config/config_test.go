package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	if cfg.ScamThreshold != 0.3 {
		t.Errorf("ScamThreshold = %v, want 0.3", cfg.ScamThreshold)
	}
	if cfg.MaxTurnBudget != 10 {
		t.Errorf("MaxTurnBudget = %d, want 10", cfg.MaxTurnBudget)
	}
	if cfg.SessionIdleTTL != time.Hour {
		t.Errorf("SessionIdleTTL = %v, want 1h", cfg.SessionIdleTTL)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate in development: %v", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("LUREBOX_SCAM_THRESHOLD", "0.5")
	t.Setenv("LUREBOX_MAX_TURNS", "6")
	t.Setenv("LUREBOX_SESSION_TTL", "30m")

	cfg := NewDefaultConfig()
	if cfg.ScamThreshold != 0.5 {
		t.Errorf("ScamThreshold = %v, want 0.5", cfg.ScamThreshold)
	}
	if cfg.MaxTurnBudget != 6 {
		t.Errorf("MaxTurnBudget = %d, want 6", cfg.MaxTurnBudget)
	}
	if cfg.SessionIdleTTL != 30*time.Minute {
		t.Errorf("SessionIdleTTL = %v, want 30m", cfg.SessionIdleTTL)
	}
}

func TestGetEnvDurationBareSeconds(t *testing.T) {
	t.Setenv("LUREBOX_TEST_DUR", "90")
	if d := GetEnvDuration("LUREBOX_TEST_DUR", time.Minute); d != 90*time.Second {
		t.Errorf("GetEnvDuration = %v, want 90s", d)
	}
}

func TestApplyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lurebox.yaml")
	contents := "scam_threshold: 0.45\nmax_turn_budget: 8\nsession_idle_ttl: 45m\n"
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg := NewDefaultConfig()
	if err := cfg.ApplyFile(path); err != nil {
		t.Fatalf("ApplyFile: %v", err)
	}
	if cfg.ScamThreshold != 0.45 {
		t.Errorf("ScamThreshold = %v, want 0.45", cfg.ScamThreshold)
	}
	if cfg.MaxTurnBudget != 8 {
		t.Errorf("MaxTurnBudget = %d, want 8", cfg.MaxTurnBudget)
	}
	if cfg.SessionIdleTTL != 45*time.Minute {
		t.Errorf("SessionIdleTTL = %v, want 45m", cfg.SessionIdleTTL)
	}
	if cfg.MinIntel != 2 {
		t.Errorf("MinIntel = %d, untouched fields must keep their defaults", cfg.MinIntel)
	}
}

func TestApplyFileMissingIsNotAnError(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.ApplyFile("/nonexistent/lurebox.yaml"); err != nil {
		t.Errorf("missing override file should be ignored, got %v", err)
	}
}

func TestValidateProductionRequirements(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Environment = "production"
	cfg.APIKey = ""
	cfg.ReportURL = ""
	if err := cfg.Validate(); err == nil {
		t.Error("production config without API key and report URL should fail validation")
	}

	cfg.APIKey = "secret"
	cfg.ReportURL = "https://example.com/callback"
	if err := cfg.Validate(); err != nil {
		t.Errorf("fully specified production config should validate: %v", err)
	}
}

func TestProfiles(t *testing.T) {
	agg := NewAggressiveConfig()
	con := NewConservativeConfig()
	if agg.MaxTurnBudget >= con.MaxTurnBudget {
		t.Errorf("aggressive budget %d should be below conservative %d", agg.MaxTurnBudget, con.MaxTurnBudget)
	}
	if agg.ScamThreshold >= con.ScamThreshold {
		t.Errorf("aggressive threshold %v should be below conservative %v", agg.ScamThreshold, con.ScamThreshold)
	}
}
