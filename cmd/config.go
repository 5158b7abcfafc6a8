package cmd

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/spigell/interview-ranker/internal/report"
	"github.com/spigell/interview-ranker/internal/store"
)

const (
	envGeminiAPIKey = "GEMINI_API_KEY"
	envDatabaseURL  = "DATABASE_URL"

	defaultSQLitePath = app + ".db"
)

type Config struct {
	Candidates   string        `mapstructure:"candidates" json:"candidates" validate:"required"`
	PrimaryModel string        `mapstructure:"primary-model" json:"primary-model" validate:"required"`
	Concurrency  int           `mapstructure:"concurrency" json:"concurrency" validate:"gte=1,lte=64"`
	AI           *AIConfig     `mapstructure:"ai" json:"ai" validate:"required"`
	Store        *StoreConfig  `mapstructure:"store" json:"store" validate:"required"`
	Report       *ReportConfig `mapstructure:"report" json:"report" validate:"required"`
}

type AIConfig struct {
	APIKey            string        `mapstructure:"api-key" json:"-"`
	APIKeyFile        string        `mapstructure:"api-key-file" json:"api-key-file"`
	MaxRetries        int           `mapstructure:"max-retries" json:"max-retries" validate:"gte=0"`
	RequestsPerMinute int           `mapstructure:"requests-per-minute" json:"requests-per-minute" validate:"gte=0"`
	MaxLogLength      int           `mapstructure:"max-log-length" json:"max-log-length" validate:"gte=0"`
	Models            []ModelConfig `mapstructure:"models" json:"models" validate:"required,min=1,unique=Label,dive"`
}

// ModelConfig maps the label records are stored under to a Gemini model name.
type ModelConfig struct {
	Label string `mapstructure:"label" json:"label" validate:"required"`
	Name  string `mapstructure:"name" json:"name" validate:"required"`
}

type StoreConfig struct {
	Driver  string `mapstructure:"driver" json:"driver" validate:"oneof=postgres sqlite"`
	DSN     string `mapstructure:"dsn" json:"-"`
	DSNFile string `mapstructure:"dsn-file" json:"dsn-file"`
}

type ReportConfig struct {
	Format string `mapstructure:"format" json:"format" validate:"oneof=text json yaml"`
	Color  bool   `mapstructure:"color" json:"color"`
}

func setDefaults(v *viper.Viper) {
	// empty defaults make the keys visible to environment overrides
	v.SetDefault("candidates", "")
	v.SetDefault("ai.api-key", "")
	v.SetDefault("ai.api-key-file", "")
	v.SetDefault("store.dsn", "")
	v.SetDefault("store.dsn-file", "")

	v.SetDefault("primary-model", report.DefaultPrimaryModel)
	v.SetDefault("concurrency", 4)
	v.SetDefault("ai.max-retries", 3)
	v.SetDefault("ai.requests-per-minute", 30)
	v.SetDefault("ai.max-log-length", 200)
	v.SetDefault("ai.models", []map[string]any{
		{"label": report.DefaultPrimaryModel, "name": "gemini-2.0-flash"},
	})
	v.SetDefault("store.driver", store.DriverSQLite)
	v.SetDefault("report.format", report.FormatText)
	v.SetDefault("report.color", false)
}

// getConfig decodes and validates the configuration. Commands that do not evaluate
// transcripts pass requireCandidates=false.
func getConfig(v *viper.Viper, requireCandidates bool) (*Config, error) {
	var config *Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	if config == nil {
		return nil, fmt.Errorf("config is required")
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	var err error
	if requireCandidates {
		err = validate.Struct(config)
	} else {
		err = validate.StructExcept(config, "Candidates")
	}
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}
