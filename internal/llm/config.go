package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderNone       = ""
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config selects and configures a provider. Field tags match the keys
// under "llm" in the hunter config file.
type Config struct {
	Provider   string         `mapstructure:"provider"`
	Timeout    time.Duration  `mapstructure:"timeout"`
	Anthropic  ProviderConfig `mapstructure:"anthropic"`
	OpenAI     ProviderConfig `mapstructure:"openai"`
	Gemini     ProviderConfig `mapstructure:"gemini"`
	OpenRouter ProviderConfig `mapstructure:"openrouter"`
	Retry      RetryConfig    `mapstructure:"retry"`
}

// ProviderConfig is the per-provider connection settings.
type ProviderConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// RetryConfig drives WithRetry.
type RetryConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts"`
	InitialWait time.Duration `mapstructure:"initial_wait"`
	MaxWait     time.Duration `mapstructure:"max_wait"`
	Multiplier  float64       `mapstructure:"multiplier"`
}

// DefaultConfig has no provider selected.
func DefaultConfig() Config {
	return Config{
		Timeout:    20 * time.Second,
		Anthropic:  ProviderConfig{Model: "claude-haiku"},
		OpenAI:     ProviderConfig{Model: "gpt-4o-mini"},
		Gemini:     ProviderConfig{Model: "gemini-flash"},
		OpenRouter: ProviderConfig{Model: "google/gemini-2.0-flash-001"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 500 * time.Millisecond,
			MaxWait:     8 * time.Second,
			Multiplier:  2,
		},
	}
}

// Enabled reports whether a provider is selected.
func (c Config) Enabled() bool {
	p := strings.ToLower(strings.TrimSpace(c.Provider))
	return p != ProviderNone && p != "none"
}

// Selected returns the settings for the chosen provider.
func (c Config) Selected() ProviderConfig {
	switch strings.ToLower(c.Provider) {
	case ProviderAnthropic:
		return c.Anthropic
	case ProviderOpenAI:
		return c.OpenAI
	case ProviderGemini:
		return c.Gemini
	case ProviderOpenRouter:
		return c.OpenRouter
	}
	return ProviderConfig{}
}

// Validate checks that the chosen provider is known and has a key.
func (c Config) Validate() error {
	switch p := strings.ToLower(c.Provider); p {
	case ProviderNone, "none", ProviderMock:
		return nil
	case ProviderAnthropic, ProviderOpenAI, ProviderGemini, ProviderOpenRouter:
		if c.Selected().APIKey == "" {
			return fmt.Errorf("llm.%s.api_key is required (set HUNTER_%s_API_KEY)", p, strings.ToUpper(p))
		}
		return nil
	default:
		return fmt.Errorf("unknown LLM provider %q", c.Provider)
	}
}

// discoveryOrder is the order provider keys are probed in Discover.
var discoveryOrder = []struct {
	env      string
	provider string
}{
	{"GEMINI_API_KEY", ProviderGemini},
	{"OPENAI_API_KEY", ProviderOpenAI},
	{"ANTHROPIC_API_KEY", ProviderAnthropic},
	{"OPENROUTER_API_KEY", ProviderOpenRouter},
}

// Discover fills in a provider from the vendors' standard key variables
// when cfg has none selected. It reports whether a provider is set after
// the call.
func Discover(cfg Config) (Config, bool) {
	if cfg.Enabled() {
		return cfg, true
	}
	for _, d := range discoveryOrder {
		key := os.Getenv(d.env)
		if key == "" {
			continue
		}
		cfg.Provider = d.provider
		switch d.provider {
		case ProviderGemini:
			cfg.Gemini.APIKey = key
		case ProviderOpenAI:
			cfg.OpenAI.APIKey = key
		case ProviderAnthropic:
			cfg.Anthropic.APIKey = key
		case ProviderOpenRouter:
			cfg.OpenRouter.APIKey = key
		}
		return cfg, true
	}
	return cfg, false
}
