// Package config provides configuration loading and validation for the skill gap analyzer.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

// Defaults applied when neither the environment nor a config file sets a value.
const (
	DefaultPort       = 8080
	DefaultModel      = "gemini-2.5-flash"
	DefaultSessionTTL = 30 * time.Minute
)

// Environment variable names.
const (
	EnvAPIKey          = "GEMINI_API_KEY"
	EnvModel           = "GEMINI_MODEL"
	EnvPort            = "PORT"
	EnvSessionSecret   = "SESSION_SECRET"
	EnvSessionTTL      = "SESSION_TTL"
	EnvAnalysisTimeout = "ANALYSIS_TIMEOUT"
	EnvVerbose         = "SKILLGAP_VERBOSE"
)

// Duration is a time.Duration that reads from JSON strings like "30m".
type Duration struct {
	time.Duration
}

// UnmarshalJSON accepts a Go duration string or a number of seconds.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		d.Duration = parsed
		return nil
	}

	var seconds float64
	if err := json.Unmarshal(data, &seconds); err != nil {
		return fmt.Errorf("duration must be a string or number of seconds")
	}
	d.Duration = time.Duration(seconds * float64(time.Second))
	return nil
}

// Config is the process configuration. The API key is injected into the LLM
// client at construction; nothing else reads it.
type Config struct {
	APIKey          string   `json:"api_key,omitempty" validate:"required"`
	Model           string   `json:"model,omitempty" validate:"required"`
	Port            int      `json:"port,omitempty" validate:"min=1,max=65535"`
	SessionSecret   string   `json:"session_secret,omitempty"`
	SessionTTL      Duration `json:"session_ttl,omitempty"`
	AnalysisTimeout Duration `json:"analysis_timeout,omitempty"`
	Verbose         bool     `json:"verbose,omitempty"`
}

// Load builds the configuration from defaults, an optional JSON file and the
// environment, in increasing order of precedence, then validates it.
// A missing API key is an error: the analysis client cannot be created without it.
func Load(path string) (*Config, error) {
	cfg := FromEnv()

	if path != "" {
		fileCfg, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = cfg.MergeWithDefaults(*fileCfg)
	}

	cfg = cfg.MergeWithDefaults(Defaults())

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Defaults returns the built-in configuration values.
func Defaults() Config {
	return Config{
		Model:      DefaultModel,
		Port:       DefaultPort,
		SessionTTL: Duration{DefaultSessionTTL},
	}
}

// FromEnv reads configuration from environment variables.
// Unparseable numeric values are ignored so the next source can supply them.
func FromEnv() Config {
	return Config{
		APIKey:          os.Getenv(EnvAPIKey),
		Model:           os.Getenv(EnvModel),
		Port:            getEnvInt(EnvPort, 0),
		SessionSecret:   os.Getenv(EnvSessionSecret),
		SessionTTL:      Duration{getEnvDuration(EnvSessionTTL, 0)},
		AnalysisTimeout: Duration{getEnvDuration(EnvAnalysisTimeout, 0)},
		Verbose:         getEnvBool(EnvVerbose),
	}
}

// LoadConfig loads configuration from a JSON file.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("config error: %s is required", EnvAPIKey)
	}

	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %s", describe(err))
	}

	if c.SessionTTL.Duration < 0 {
		return fmt.Errorf("config error: 'session_ttl' must be non-negative")
	}
	if c.AnalysisTimeout.Duration < 0 {
		return fmt.Errorf("config error: 'analysis_timeout' must be non-negative")
	}

	return nil
}

// MergeWithDefaults returns a new Config with zero fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.SessionSecret == "" {
		result.SessionSecret = defaults.SessionSecret
	}
	if result.SessionTTL.Duration == 0 {
		result.SessionTTL = defaults.SessionTTL
	}
	if result.AnalysisTimeout.Duration == 0 {
		result.AnalysisTimeout = defaults.AnalysisTimeout
	}

	// Unset and false are the same for bools, so any source can only turn it on
	result.Verbose = result.Verbose || defaults.Verbose

	return result
}

// SessionKey returns the secret used to sign session cookies. Without a
// configured secret a random one is generated, so sessions do not survive
// a restart.
func (c *Config) SessionKey() ([]byte, error) {
	if c.SessionSecret != "" {
		return []byte(c.SessionSecret), nil
	}

	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate session key: %w", err)
	}
	c.SessionSecret = hex.EncodeToString(key)
	return []byte(c.SessionSecret), nil
}

func describe(err error) string {
	if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return fmt.Sprintf("'%s' failed '%s' (value %v)", fe.Field(), fe.Tag(), fe.Value())
	}
	return err.Error()
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvBool(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && v
}
