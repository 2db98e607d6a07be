package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

const (
	AppName     = "stylescout"
	EnvFileName = "config.env"
)

// Config is the explicit runtime configuration. Everything the process needs
// is read once at startup; nothing below reads the environment ambiently.
type Config struct {
	// GeminiAPIKey authenticates both the analysis and preview models.
	GeminiAPIKey string
	// DataKey is the passphrase the at-rest encryption key is derived from.
	DataKey string
	// ListenAddr is the HTTP listen address.
	ListenAddr string
	// DBPath is the SQLite database path.
	DBPath string
	// AnalysisModel and PreviewModel override the default model names when set.
	AnalysisModel string
	PreviewModel  string
	// SessionTTL is how long an untouched playground session survives.
	SessionTTL time.Duration
}

// LoadEnvFile loads environment variables from the config file in the user's
// config directory. Errors are ignored since the file may not exist.
func LoadEnvFile() {
	configBase, err := os.UserConfigDir()
	if err != nil {
		return
	}
	configPath := filepath.Join(configBase, AppName, EnvFileName)
	_ = godotenv.Load(configPath)
}

// Load reads configuration from the environment and applies defaults. It
// errors on missing required values.
func Load() (*Config, error) {
	cfg := &Config{
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		DataKey:       os.Getenv("STYLESCOUT_DATA_KEY"),
		ListenAddr:    os.Getenv("STYLESCOUT_LISTEN_ADDR"),
		DBPath:        os.Getenv("STYLESCOUT_DB_PATH"),
		AnalysisModel: os.Getenv("STYLESCOUT_ANALYSIS_MODEL"),
		PreviewModel:  os.Getenv("STYLESCOUT_PREVIEW_MODEL"),
		SessionTTL:    time.Hour,
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is not set")
	}
	if cfg.DataKey == "" {
		return nil, fmt.Errorf("STYLESCOUT_DATA_KEY is not set")
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "stylescout.db"
	}

	if raw := os.Getenv("STYLESCOUT_SESSION_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("STYLESCOUT_SESSION_TTL must be a duration: %w", err)
		}
		cfg.SessionTTL = ttl
	}

	return cfg, nil
}
