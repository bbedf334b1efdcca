// Package config loads contentcal settings from code defaults, an optional
// YAML file and the environment, in that order of precedence (last wins).
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"contentcal/internal/assistant"
	"contentcal/internal/calendar"
	"contentcal/internal/store"
	"contentcal/internal/util"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

type ServerConfig struct {
	Addr      string `yaml:"addr" validate:"required"`
	StaticDir string `yaml:"static_dir"`
}

type StorageConfig struct {
	URL        string `yaml:"url" validate:"required"`
	KeyVersion string `yaml:"key_version" validate:"required,alphanum"`
}

type LogConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn warning error"`
}

type AIConfig struct {
	APIKey            string        `yaml:"api_key"`
	Model             string        `yaml:"model" validate:"required"`
	BaseURL           string        `yaml:"base_url" validate:"required,url"`
	Timeout           time.Duration `yaml:"timeout" validate:"gt=0"`
	RequestsPerMinute int           `yaml:"requests_per_minute" validate:"gte=0"`
}

type CalendarConfig struct {
	Year       int `yaml:"year" validate:"gte=2000,lte=2100"`
	FirstMonth int `yaml:"first_month" validate:"gte=1,lte=12"`
	LastMonth  int `yaml:"last_month" validate:"gte=1,lte=12,gtefield=FirstMonth"`
}

// Config is the full application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Storage  StorageConfig  `yaml:"storage"`
	Log      LogConfig      `yaml:"log"`
	AI       AIConfig       `yaml:"ai"`
	Calendar CalendarConfig `yaml:"calendar"`
}

// Default returns the built-in settings.
func Default() Config {
	plan := calendar.DefaultYearPlan()
	return Config{
		Server:  ServerConfig{Addr: ":8080", StaticDir: "web/dist"},
		Storage: StorageConfig{URL: "sqlite://data/contentcal.db", KeyVersion: store.DefaultKeyVersion},
		Log:     LogConfig{Level: "info"},
		AI: AIConfig{
			Model:             assistant.DefaultModel,
			BaseURL:           assistant.DefaultBaseURL,
			Timeout:           assistant.DefaultTimeout,
			RequestsPerMinute: 15,
		},
		Calendar: CalendarConfig{
			Year:       plan.Year,
			FirstMonth: int(plan.FirstMonth),
			LastMonth:  int(plan.LastMonth),
		},
	}
}

// Load builds the configuration. An empty path skips the file; a path that
// cannot be read is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Server.Addr = util.EnvOrDefault("CONTENTCAL_ADDR", cfg.Server.Addr)
	cfg.Server.StaticDir = util.EnvOrDefault("CONTENTCAL_STATIC_DIR", cfg.Server.StaticDir)
	cfg.Storage.URL = util.EnvOrDefault("CONTENTCAL_STORAGE_URL", cfg.Storage.URL)
	cfg.Storage.KeyVersion = util.EnvOrDefault("CONTENTCAL_KEY_VERSION", cfg.Storage.KeyVersion)
	cfg.Log.Level = util.EnvOrDefault("CONTENTCAL_LOG_LEVEL", cfg.Log.Level)
	cfg.AI.APIKey = util.EnvOrDefault("GEMINI_API_KEY", cfg.AI.APIKey)
	cfg.AI.Model = util.EnvOrDefault("CONTENTCAL_AI_MODEL", cfg.AI.Model)
	cfg.AI.BaseURL = util.EnvOrDefault("CONTENTCAL_AI_BASE_URL", cfg.AI.BaseURL)
	cfg.AI.Timeout = util.EnvDurationOrDefault("CONTENTCAL_AI_TIMEOUT", cfg.AI.Timeout)
	cfg.AI.RequestsPerMinute = util.EnvIntOrDefault("CONTENTCAL_AI_RPM", cfg.AI.RequestsPerMinute)
	cfg.Calendar.Year = util.EnvIntOrDefault("CONTENTCAL_CALENDAR_YEAR", cfg.Calendar.Year)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks every field constraint.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// YearPlan is the span used by yearly generation.
func (c Config) YearPlan() calendar.YearPlan {
	return calendar.YearPlan{
		Year:       c.Calendar.Year,
		FirstMonth: time.Month(c.Calendar.FirstMonth),
		LastMonth:  time.Month(c.Calendar.LastMonth),
	}
}

// Assistant converts the AI section for the assistant client.
func (c Config) Assistant() assistant.Config {
	return assistant.Config{
		APIKey:            c.AI.APIKey,
		Model:             c.AI.Model,
		BaseURL:           c.AI.BaseURL,
		Timeout:           c.AI.Timeout,
		RequestsPerMinute: c.AI.RequestsPerMinute,
	}
}
