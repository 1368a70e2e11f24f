// Package config loads hunter settings from a YAML file, HUNTER_* environment
// variables and command-line flags, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/hunter-system/hunter/internal/llm"
)

const envPrefix = "HUNTER"

// Config is the resolved application configuration.
type Config struct {
	// DB is the sqlite file path. Empty means the XDG data default.
	DB string `mapstructure:"db"`
	// Ladder is an optional ladder JSON file replacing the built-in ladder.
	Ladder string       `mapstructure:"ladder"`
	Log    LogConfig    `mapstructure:"log"`
	Server ServerConfig `mapstructure:"server"`
	LLM    llm.Config   `mapstructure:"llm"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	// File enables a rotating JSON log alongside the console.
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
	// Mode is the gin mode: debug, release or test.
	Mode string `mapstructure:"mode"`
}

// flagKeys maps command-line flags onto config keys.
var flagKeys = map[string]string{
	"db":        "db",
	"ladder":    "ladder",
	"log-level": "log.level",
	"log-file":  "log.file",
	"addr":      "server.addr",
}

func setDefaults(v *viper.Viper) {
	d := llm.DefaultConfig()

	v.SetDefault("db", "")
	v.SetDefault("ladder", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 20)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.mode", "release")

	v.SetDefault("llm.provider", d.Provider)
	v.SetDefault("llm.timeout", d.Timeout)
	v.SetDefault("llm.retry.max_attempts", d.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", d.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", d.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", d.Retry.Multiplier)
	for name, pc := range map[string]llm.ProviderConfig{
		llm.ProviderAnthropic:  d.Anthropic,
		llm.ProviderOpenAI:     d.OpenAI,
		llm.ProviderGemini:     d.Gemini,
		llm.ProviderOpenRouter: d.OpenRouter,
	} {
		v.SetDefault("llm."+name+".api_key", pc.APIKey)
		v.SetDefault("llm."+name+".model", pc.Model)
		v.SetDefault("llm."+name+".base_url", pc.BaseURL)
	}
}

// bindEnv adds the short provider variables (HUNTER_OPENAI_API_KEY rather
// than HUNTER_LLM_OPENAI_API_KEY). The long forms work through
// AutomaticEnv.
func bindEnv(v *viper.Viper) {
	for _, p := range []string{llm.ProviderAnthropic, llm.ProviderOpenAI, llm.ProviderGemini, llm.ProviderOpenRouter} {
		up := strings.ToUpper(p)
		for _, field := range []string{"api_key", "model", "base_url"} {
			key := "llm." + p + "." + field
			v.BindEnv(key, envPrefix+"_LLM_"+up+"_"+strings.ToUpper(field), envPrefix+"_"+up+"_"+strings.ToUpper(field))
		}
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/hunter/config.yaml, falling back to
// ~/.config.
func DefaultPath() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "hunter", "config.yaml"), nil
}

// Load resolves the configuration. path names a config file that must exist;
// when empty the default path is read only if present. flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnv(v)

	if flags != nil {
		for flag, key := range flagKeys {
			if f := flags.Lookup(flag); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", flag, err)
				}
			}
		}
	}

	file, err := configFile(path)
	if err != nil {
		return nil, err
	}
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.File = file

	cfg.LLM, _ = llm.Discover(cfg.LLM)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func configFile(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file: %w", err)
		}
		return explicit, nil
	}
	p, err := DefaultPath()
	if err != nil {
		return "", nil
	}
	if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
		return "", nil
	} else if err != nil {
		return "", fmt.Errorf("config file: %w", err)
	}
	return p, nil
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q: want debug, info, warn or error", c.Log.Level)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("server.mode %q: want debug, release or test", c.Server.Mode)
	}
	return c.LLM.Validate()
}
