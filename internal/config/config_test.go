package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()

	if cfg.SimilarityThreshold != DefaultSimilarityThreshold {
		t.Errorf("SimilarityThreshold = %v, want %v", cfg.SimilarityThreshold, DefaultSimilarityThreshold)
	}
	if cfg.SearchLimit != DefaultSearchLimit {
		t.Errorf("SearchLimit = %d, want %d", cfg.SearchLimit, DefaultSearchLimit)
	}
	if cfg.MaxRetryAttempts != DefaultMaxRetryAttempts {
		t.Errorf("MaxRetryAttempts = %d, want %d", cfg.MaxRetryAttempts, DefaultMaxRetryAttempts)
	}
	if cfg.PacingDelayMs != DefaultPacingDelayMs {
		t.Errorf("PacingDelayMs = %d, want %d", cfg.PacingDelayMs, DefaultPacingDelayMs)
	}
	if cfg.WarningBehavior != "summary" {
		t.Errorf("WarningBehavior = %q, want %q", cfg.WarningBehavior, "summary")
	}
}

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	cfg := &Config{SimilarityThreshold: 0.9, PacingDelayMs: 500}
	cfg.ApplyDefaults()

	if cfg.SimilarityThreshold != 0.9 {
		t.Errorf("SimilarityThreshold = %v, want 0.9", cfg.SimilarityThreshold)
	}
	if cfg.PacingDelayMs != 500 {
		t.Errorf("PacingDelayMs = %d, want 500", cfg.PacingDelayMs)
	}
}

func TestValidateMissingCredentials(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err == nil {
		t.Error("expected an error for missing Spotify credentials")
	}

	cfg.SpotifyClientID = "id"
	cfg.SpotifyClientSecret = "secret"
	if err := cfg.Validate(); err == nil {
		t.Error("expected an error for a missing Discogs token")
	}

	cfg.DiscogsToken = "token"
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}
}

func TestValidateThresholdRange(t *testing.T) {
	cfg := &Config{SpotifyClientID: "id", SpotifyClientSecret: "secret", DiscogsToken: "t", SimilarityThreshold: 1.5}
	if err := cfg.Validate(); err == nil {
		t.Error("expected an error for threshold > 1")
	}
}

func TestDelayConversions(t *testing.T) {
	cfg := &Config{RetryBaseDelayMs: 1500, PacingDelayMs: 250}
	if got := cfg.RetryBaseDelay(); got != 1500*time.Millisecond {
		t.Errorf("RetryBaseDelay() = %v, want 1.5s", got)
	}
	if got := cfg.PacingDelay(); got != 250*time.Millisecond {
		t.Errorf("PacingDelay() = %v, want 250ms", got)
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	in := &Config{
		SpotifyClientID:     "id",
		SpotifyClientSecret: "secret",
		DiscogsToken:        "token",
		SimilarityThreshold: 0.85,
		SearchLimit:         7,
	}
	if err := SaveConfig(path, in); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	out := &Config{}
	if err := LoadConfig(path, out); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if *out != *in {
		t.Errorf("round trip mismatch: got %+v, want %+v", out, in)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg := &Config{}
	if err := LoadConfig(filepath.Join(t.TempDir(), "absent.json"), cfg); err == nil {
		t.Error("expected an error for a missing config file")
	}
}
