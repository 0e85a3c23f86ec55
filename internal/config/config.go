package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"
)

// Config holds the environment driven configuration. Variable names
// follow the original service where one existed.
type Config struct {
	Port            int           `env:"PORT" envDefault:"8000" validate:"min=1,max=65535"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn warning error"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Question catalog
	QuestionSource    string `env:"QUESTION_SOURCE" envDefault:"json" validate:"oneof=json sheets both"`
	QuestionsJSONFile string `env:"QUESTIONS_JSON_FILE" envDefault:"questions.json"`

	// Google Sheets
	GoogleSheetID         string `env:"GOOGLE_SHEET_ID"`
	GoogleCredentialsFile string `env:"GOOGLE_CREDENTIALS_FILE" envDefault:"credentials.json"`
	SheetName             string `env:"SHEET_NAME" envDefault:"Sheet1"`

	// Language model
	LLMProvider   string `env:"LLM_PROVIDER" envDefault:"gemini" validate:"oneof=gemini vertex openai mock"`
	Model         string `env:"MODEL" envDefault:"gemini-2.5-flash"`
	ModelAPIKey   string `env:"MODEL_API_KEY"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL" validate:"omitempty,url"`
	GCPProject    string `env:"GCP_PROJECT" validate:"required_if=SessionStore firestore"`
	GCPLocation   string `env:"GCP_LOCATION" envDefault:"us-central1"`

	// Phrasing
	PhrasingTimeout   time.Duration `env:"PHRASING_TIMEOUT" envDefault:"8s" validate:"gt=0"`
	PhrasingCacheSize int           `env:"PHRASING_CACHE_SIZE" envDefault:"256" validate:"min=0"`
	AckSeed           int64         `env:"ACK_SEED" envDefault:"0"`

	// Persistence
	SessionStore  string   `env:"SESSION_STORE" envDefault:"memory" validate:"oneof=memory firestore"`
	ResultSinks   []string `env:"RESULT_SINKS" envDefault:"sheets" envSeparator:"," validate:"dive,oneof=sheets sqlite memory"`
	ResultsDBPath string   `env:"RESULTS_DB_PATH" envDefault:"./data/results.db"`
}

// Load parses and validates environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	cfg.LLMProvider = strings.ToLower(strings.TrimSpace(cfg.LLMProvider))
	cfg.QuestionSource = strings.ToLower(strings.TrimSpace(cfg.QuestionSource))
	cfg.SessionStore = strings.ToLower(strings.TrimSpace(cfg.SessionStore))
	cfg.ResultSinks = normalizeList(cfg.ResultSinks)

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if cfg.LLMProvider == "vertex" && cfg.GCPProject == "" {
		return nil, errors.New("invalid config: GCP_PROJECT must be set when LLM_PROVIDER=vertex")
	}
	return cfg, nil
}

// UsesSheets reports whether any component needs the spreadsheet.
func (c *Config) UsesSheets() bool {
	if c.QuestionSource == "sheets" || c.QuestionSource == "both" {
		return true
	}
	return c.HasSink("sheets")
}

func (c *Config) HasSink(name string) bool {
	for _, s := range c.ResultSinks {
		if s == name {
			return true
		}
	}
	return false
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func normalizeList(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, v := range in {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
