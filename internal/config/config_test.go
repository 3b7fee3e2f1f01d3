package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yetria/yetria/internal/i18n"
)

// isolate points every lookup at a fresh temp dir and clears provider keys.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, k := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}
	return dir
}

func TestDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000/api/v1", cfg.API.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.API.Timeout)
	assert.Equal(t, i18n.English, cfg.LocaleValue())
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)

	_, ok := cfg.Provider()
	assert.False(t, ok, "no provider should be configured by default")
}

func TestEnvOverridesDefaults(t *testing.T) {
	isolate(t)
	t.Setenv("YETRIA_API_BASE_URL", "https://api.yetria.example/api/v1")
	t.Setenv("YETRIA_API_TIMEOUT", "3s")
	t.Setenv("YETRIA_LOCALE", "tr")
	t.Setenv("YETRIA_LOG_FORMAT", "json")

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, "https://api.yetria.example/api/v1", cfg.API.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.API.Timeout)
	assert.Equal(t, i18n.Turkish, cfg.LocaleValue())
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestConfigFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "yetria", "yetria.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(`
locale: tr
api:
  base_url: http://10.0.0.5:8000/api/v1
llm:
  provider: mock
`), 0o644))

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.5:8000/api/v1", cfg.API.BaseURL)
	assert.Equal(t, i18n.Turkish, cfg.LocaleValue())

	p, ok := cfg.Provider()
	require.True(t, ok)
	assert.Equal(t, "mock", p.Provider)
}

func TestExplicitConfigFileMustExist(t *testing.T) {
	dir := isolate(t)
	_, err := Load(New(), filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestFlagOverridesEnv(t *testing.T) {
	isolate(t)
	t.Setenv("YETRIA_LOCALE", "tr")

	v := New()
	v.Set("locale", "en")
	cfg, err := Load(v, "")
	require.NoError(t, err)
	assert.Equal(t, i18n.English, cfg.LocaleValue())
}

func TestValidate(t *testing.T) {
	valid := Config{
		API:    APIConfig{BaseURL: "http://localhost:8000", Timeout: time.Second},
		Locale: "en",
		Log:    LogConfig{Level: "info", Format: "console"},
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"ftp url", func(c *Config) { c.API.BaseURL = "ftp://x" }},
		{"no host", func(c *Config) { c.API.BaseURL = "http://" }},
		{"zero timeout", func(c *Config) { c.API.Timeout = 0 }},
		{"unknown locale", func(c *Config) { c.Locale = "de" }},
		{"bad level", func(c *Config) { c.Log.Level = "trace" }},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestProviderMapping(t *testing.T) {
	isolate(t)
	cfg := Config{LLM: LLMConfig{Provider: "OpenRouter", APIKey: "k", Model: "m", BaseURL: "https://or.example", Timeout: time.Minute}}
	p, ok := cfg.Provider()
	require.True(t, ok)
	assert.Equal(t, "openrouter", p.Provider)
	assert.Equal(t, "k", p.OpenRouter.APIKey)
	assert.Equal(t, "m", p.OpenRouter.Model)
	assert.Equal(t, "https://or.example", p.OpenRouter.BaseURL)
	assert.Equal(t, time.Minute, p.Timeout)

	t.Setenv("GEMINI_API_KEY", "g")
	p, ok = Config{}.Provider()
	require.True(t, ok)
	assert.Equal(t, "gemini", p.Provider)
	assert.Equal(t, "g", p.Gemini.APIKey)
}
