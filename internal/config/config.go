package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

const (
	RequestTimeout = 30 * time.Second
	UserAgent      = "playlist-enricher/1.0 +https://github.com/playlist-enricher"

	DefaultSimilarityThreshold = 0.8
	DefaultSearchLimit         = 5
	DefaultMaxRetryAttempts    = 3
	DefaultRetryBaseDelayMs    = 1000
	DefaultPacingDelayMs       = 1000
)

// Configuration structure
type Config struct {
	SpotifyClientID     string  `json:"SpotifyClientID"`
	SpotifyClientSecret string  `json:"SpotifyClientSecret"`
	DiscogsToken        string  `json:"DiscogsToken"`
	SimilarityThreshold float64 `json:"SimilarityThreshold"`
	SearchLimit         int     `json:"SearchLimit"`
	MaxRetryAttempts    int     `json:"MaxRetryAttempts"`
	RetryBaseDelayMs    int     `json:"RetryBaseDelayMs"`
	PacingDelayMs       int     `json:"PacingDelayMs"`
	OutputLocation      string  `json:"OutputLocation"`
	WarningBehavior     string  `json:"WarningBehavior"` // "summary" or "silent"
}

// ApplyDefaults fills empty tuning fields with working defaults.
func (cfg *Config) ApplyDefaults() {
	if cfg.SimilarityThreshold <= 0 {
		cfg.SimilarityThreshold = DefaultSimilarityThreshold
	}
	if cfg.SearchLimit <= 0 {
		cfg.SearchLimit = DefaultSearchLimit
	}
	if cfg.MaxRetryAttempts <= 0 {
		cfg.MaxRetryAttempts = DefaultMaxRetryAttempts
	}
	if cfg.RetryBaseDelayMs <= 0 {
		cfg.RetryBaseDelayMs = DefaultRetryBaseDelayMs
	}
	if cfg.PacingDelayMs <= 0 {
		cfg.PacingDelayMs = DefaultPacingDelayMs
	}
	if cfg.OutputLocation == "" {
		cfg.OutputLocation = "."
	}
	if cfg.WarningBehavior == "" {
		cfg.WarningBehavior = "summary"
	}
}

// ApplyEnvOverrides overlays credentials from the environment, loading a
// .env file first when one exists. Environment values win over the file.
func (cfg *Config) ApplyEnvOverrides() {
	// Missing .env is fine; the variables may be set directly.
	_ = godotenv.Load()

	if v := os.Getenv("SPOTIFY_CLIENT_ID"); v != "" {
		cfg.SpotifyClientID = v
	}
	if v := os.Getenv("SPOTIFY_CLIENT_SECRET"); v != "" {
		cfg.SpotifyClientSecret = v
	}
	if v := os.Getenv("DISCOGS_USER_TOKEN"); v != "" {
		cfg.DiscogsToken = v
	}
}

// Validate reports missing credentials. All three are required; without the
// Discogs token the primary catalog rejects search requests.
func (cfg *Config) Validate() error {
	if cfg.SpotifyClientID == "" || cfg.SpotifyClientSecret == "" {
		return fmt.Errorf("missing Spotify credentials: set SpotifyClientID/SpotifyClientSecret in the config file or SPOTIFY_CLIENT_ID/SPOTIFY_CLIENT_SECRET in the environment")
	}
	if cfg.DiscogsToken == "" {
		return fmt.Errorf("missing Discogs token: set DiscogsToken in the config file or DISCOGS_USER_TOKEN in the environment")
	}
	if cfg.SimilarityThreshold <= 0 || cfg.SimilarityThreshold > 1 {
		return fmt.Errorf("SimilarityThreshold must be in (0, 1], got %v", cfg.SimilarityThreshold)
	}
	return nil
}

// RetryBaseDelay returns the retry base delay as a duration.
func (cfg *Config) RetryBaseDelay() time.Duration {
	return time.Duration(cfg.RetryBaseDelayMs) * time.Millisecond
}

// PacingDelay returns the inter-track pacing delay as a duration.
func (cfg *Config) PacingDelay() time.Duration {
	return time.Duration(cfg.PacingDelayMs) * time.Millisecond
}

// CreateDirIfNotExists creates a directory if it does not exist
func CreateDirIfNotExists(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return os.MkdirAll(dir, 0755)
	}
	return nil
}

// LoadConfig loads configuration from a JSON file
func LoadConfig(filePath string, config *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := json.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return nil
}

// SaveConfig saves configuration to a JSON file
func SaveConfig(filePath string, config *Config) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	dir := filepath.Dir(filePath)
	if err := CreateDirIfNotExists(dir); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
