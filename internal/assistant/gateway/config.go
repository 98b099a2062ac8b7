package gateway

import (
	"errors"
	"time"
)

const (
	DefaultBaseURL          = "https://api.openai.com/v1"
	DefaultSecretEnv        = "OPENAI_SECRET_KEY"
	DefaultAssistantVersion = "v2"
	DefaultTimeout          = 30 * time.Second
	DefaultPageSize         = 100
)

// Config configures the OpenAI gateway
type Config struct {
	BaseURL          string        `mapstructure:"base_url"`
	SecretKey        string        `mapstructure:"secret_key"`
	SecretEnv        string        `mapstructure:"secret_env"`
	Organization     string        `mapstructure:"organization"`
	AssistantVersion string        `mapstructure:"assistant_version"` // OpenAI-Beta: assistants=<version>
	PreferredModel   string        `mapstructure:"preferred_model"`
	Timeout          time.Duration `mapstructure:"timeout"`
	PageSize         int           `mapstructure:"page_size"`
}

// DefaultConfig returns the gateway defaults
func DefaultConfig() *Config {
	return &Config{
		BaseURL:          DefaultBaseURL,
		SecretEnv:        DefaultSecretEnv,
		AssistantVersion: DefaultAssistantVersion,
		PreferredModel:   "gpt-4o-mini",
		Timeout:          DefaultTimeout,
		PageSize:         DefaultPageSize,
	}
}

// Validate validates the gateway configuration
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("openai base_url is required")
	}
	if c.Timeout <= 0 {
		return errors.New("openai timeout must be > 0")
	}
	if c.PageSize <= 0 || c.PageSize > 100 {
		return errors.New("openai page_size must be between 1 and 100")
	}
	return nil
}
