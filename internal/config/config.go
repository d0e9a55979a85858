// Package config loads the service configuration from the environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

// Config holds the environment driven configuration for the API.
type Config struct {
	Port      string `env:"PORT" envDefault:"8080"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"`

	// Primary generative provider.
	GeminiAPIKey  string        `env:"GEMINI_API_KEY"`
	GeminiBaseURL string        `env:"GEMINI_BASE_URL" envDefault:"https://generativelanguage.googleapis.com"`
	GeminiModels  []string      `env:"GEMINI_MODELS" envSeparator:"," envDefault:"gemini-1.5-flash,gemini-1.5-pro,gemini-pro"`
	GeminiTimeout time.Duration `env:"GEMINI_TIMEOUT" envDefault:"30s"`

	// Secondary generative provider.
	HuggingFaceAPIKey  string        `env:"HUGGINGFACE_API_KEY"`
	HuggingFaceBaseURL string        `env:"HUGGINGFACE_BASE_URL" envDefault:"https://api-inference.huggingface.co"`
	HuggingFaceModel   string        `env:"HUGGINGFACE_MODEL" envDefault:"google/flan-t5-large"`
	HuggingFaceTimeout time.Duration `env:"HUGGINGFACE_TIMEOUT" envDefault:"30s"`

	HistoryWindow int `env:"HISTORY_WINDOW" envDefault:"6"`

	CollegeAPIURL     string        `env:"COLLEGE_API_URL" envDefault:"http://localhost:8000"`
	CollegeAPITimeout time.Duration `env:"COLLEGE_API_TIMEOUT" envDefault:"60s"`

	ProfileStore  string `env:"PROFILE_STORE" envDefault:"memory"`
	ProfileDBPath string `env:"PROFILE_DB_PATH" envDefault:"./data/profiles.db"`

	AuthJWTSecret string   `env:"AUTH_JWT_SECRET"`
	CORSOrigins   []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://localhost:5173"`
}

// Load parses environment variables into Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	cfg.GeminiAPIKey = strings.TrimSpace(cfg.GeminiAPIKey)
	cfg.HuggingFaceAPIKey = strings.TrimSpace(cfg.HuggingFaceAPIKey)
	cfg.GeminiModels = compact(cfg.GeminiModels)
	cfg.CORSOrigins = compact(cfg.CORSOrigins)

	switch cfg.ProfileStore {
	case StoreMemory, StoreSQLite:
	default:
		return nil, fmt.Errorf("PROFILE_STORE must be %q or %q, got %q", StoreMemory, StoreSQLite, cfg.ProfileStore)
	}
	switch strings.ToLower(cfg.LogFormat) {
	case "console", "json":
	default:
		return nil, fmt.Errorf("LOG_FORMAT must be console or json, got %q", cfg.LogFormat)
	}
	if cfg.HistoryWindow <= 0 {
		return nil, fmt.Errorf("HISTORY_WINDOW must be positive, got %d", cfg.HistoryWindow)
	}
	if cfg.GeminiTimeout <= 0 || cfg.HuggingFaceTimeout <= 0 || cfg.CollegeAPITimeout <= 0 {
		return nil, fmt.Errorf("provider and backend timeouts must be positive")
	}
	if cfg.GeminiAPIKey != "" && len(cfg.GeminiModels) == 0 {
		return nil, fmt.Errorf("GEMINI_MODELS is empty while GEMINI_API_KEY is set")
	}

	return cfg, nil
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return ":" + c.Port
}

// AuthEnabled reports whether profile routes require a bearer token.
func (c *Config) AuthEnabled() bool {
	return c.AuthJWTSecret != ""
}

func compact(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
