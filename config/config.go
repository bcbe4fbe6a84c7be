// Package config loads server settings from config.yaml, .env and the
// environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/aguxez/fitplan/models"
)

// Environment keys.
const (
	EnvPort     = "PORT"
	EnvAPIKey   = "OPENROUTER_API_KEY"
	EnvModel    = "LLM_MODEL"
	EnvLogLevel = "LOG_LEVEL"
)

const (
	DefaultPort        = 8080
	DefaultBaseURL     = "https://openrouter.ai/api/v1"
	DefaultModel       = "deepseek/deepseek-r1-distill-llama-70b"
	DefaultTemperature = 0.7
	DefaultCurrency    = "EGP"
	DefaultFoodsDir    = "data/foods"
	DefaultProfileDir  = "data/profile"
)

var ErrMissingAPIKey = errors.New("no API key configured")

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`

	LLM struct {
		BaseURL string `yaml:"base_url"`
		Model   string `yaml:"model"`
		// TokenEnv names the variable holding the API key.
		TokenEnv    string   `yaml:"token_env"`
		Temperature *float64 `yaml:"temperature"`
		Token       string   `yaml:"-"`
	} `yaml:"llm"`

	Plans struct {
		Currency string          `yaml:"currency"`
		Language models.Language `yaml:"language"`
	} `yaml:"plans"`

	Watch struct {
		FoodsDir   string `yaml:"foods_dir"`
		ProfileDir string `yaml:"profile_dir"`
	} `yaml:"watch"`

	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"` // text or json
	} `yaml:"log"`
}

// Load reads path if it exists, then .env, then applies environment
// overrides and defaults. A missing config file or .env is not an error.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.WithField("path", path).Debug("No config file, using defaults")
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	lang, err := models.ParseLanguage(string(cfg.Plans.Language))
	if err != nil {
		return nil, fmt.Errorf("plans.language: %w", err)
	}
	cfg.Plans.Language = lang
	if _, err := log.ParseLevel(cfg.Log.Level); err != nil {
		return nil, fmt.Errorf("log.level: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing %s %q: %w", EnvPort, v, err)
		}
		c.Server.Port = port
	}
	if v := os.Getenv(EnvModel); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}

	tokenEnv := c.LLM.TokenEnv
	if tokenEnv == "" {
		tokenEnv = EnvAPIKey
	}
	c.LLM.Token = os.Getenv(tokenEnv)
	return nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = DefaultBaseURL
	}
	if c.LLM.Model == "" {
		c.LLM.Model = DefaultModel
	}
	if c.LLM.TokenEnv == "" {
		c.LLM.TokenEnv = EnvAPIKey
	}
	if c.LLM.Temperature == nil {
		t := DefaultTemperature
		c.LLM.Temperature = &t
	}
	if c.Plans.Currency == "" {
		c.Plans.Currency = DefaultCurrency
	}
	if c.Plans.Language == "" {
		c.Plans.Language = models.English
	}
	if c.Watch.FoodsDir == "" {
		c.Watch.FoodsDir = DefaultFoodsDir
	}
	if c.Watch.ProfileDir == "" {
		c.Watch.ProfileDir = DefaultProfileDir
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// Validate checks what the server cannot start without.
func (c *Config) Validate() error {
	if c.LLM.Token == "" {
		return fmt.Errorf("%w: set %s", ErrMissingAPIKey, c.LLM.TokenEnv)
	}
	return nil
}

// SetupLogging applies the configured level and format to the standard
// logrus logger.
func (c *Config) SetupLogging() {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if c.Log.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
