package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hunter-system/hunter/internal/llm"
)

// isolate points the default config path at an empty dir and clears every
// variable Load reads.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, k := range []string{
		"HUNTER_DB", "HUNTER_LADDER", "HUNTER_LOG_LEVEL", "HUNTER_LOG_FILE",
		"HUNTER_SERVER_ADDR", "HUNTER_SERVER_MODE", "HUNTER_LLM_PROVIDER",
		"HUNTER_OPENAI_API_KEY", "HUNTER_LLM_OPENAI_API_KEY", "HUNTER_ANTHROPIC_API_KEY",
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	return dir
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)
	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Empty(t, cfg.File)
	assert.False(t, cfg.LLM.Enabled())
	assert.Equal(t, llm.DefaultConfig().Timeout, cfg.LLM.Timeout)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.OpenAI.Model)
}

func TestLoad_DefaultFileAndPrecedence(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "hunter", "config.yaml"), `
db: /data/from-file.db
log:
  level: debug
llm:
  provider: openai
  timeout: 5s
  openai:
    api_key: file-key
    model: gpt-4o
`)
	t.Setenv("HUNTER_DB", "/data/from-env.db")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("log-level", "", "")
	require.NoError(t, flags.Parse([]string{"--log-level=warn"}))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "hunter", "config.yaml"), cfg.File)
	assert.Equal(t, "/data/from-env.db", cfg.DB, "env beats file")
	assert.Equal(t, "warn", cfg.Log.Level, "flag beats file")
	assert.Equal(t, llm.ProviderOpenAI, cfg.LLM.Provider)
	assert.Equal(t, 5*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, "file-key", cfg.LLM.OpenAI.APIKey)
	assert.Equal(t, "gpt-4o", cfg.LLM.OpenAI.Model)
}

func TestLoad_UnsetFlagKeepsLowerLayers(t *testing.T) {
	isolate(t)
	t.Setenv("HUNTER_LOG_LEVEL", "error")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("log-level", "info", "")
	require.NoError(t, flags.Parse(nil))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestLoad_ShortProviderEnv(t *testing.T) {
	isolate(t)
	t.Setenv("HUNTER_LLM_PROVIDER", "anthropic")
	t.Setenv("HUNTER_ANTHROPIC_API_KEY", "sk-ant")

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "sk-ant", cfg.LLM.Anthropic.APIKey)
	assert.Equal(t, "sk-ant", cfg.LLM.Selected().APIKey)
}

func TestLoad_DiscoversVendorKey(t *testing.T) {
	isolate(t)
	t.Setenv("OPENROUTER_API_KEY", "or-key")

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, llm.ProviderOpenRouter, cfg.LLM.Provider)
}

func TestLoad_Errors(t *testing.T) {
	dir := isolate(t)

	_, err := Load(filepath.Join(dir, "missing.yaml"), nil)
	assert.ErrorContains(t, err, "config file")

	bad := filepath.Join(dir, "bad.yaml")
	writeFile(t, bad, "log:\n  level: loud\n")
	_, err = Load(bad, nil)
	assert.ErrorContains(t, err, "log.level")

	keyless := filepath.Join(dir, "keyless.yaml")
	writeFile(t, keyless, "llm:\n  provider: gemini\n")
	_, err = Load(keyless, nil)
	assert.ErrorContains(t, err, "HUNTER_GEMINI_API_KEY")

	broken := filepath.Join(dir, "broken.yaml")
	writeFile(t, broken, "db: [unterminated\n")
	_, err = Load(broken, nil)
	assert.ErrorContains(t, err, "read config")
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	p, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, "/xdg/hunter/config.yaml", p)
}
