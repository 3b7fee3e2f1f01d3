// Package config loads yetria settings from flags, environment, an optional
// YAML file and built-in defaults, in that order of priority.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/yetria/yetria/internal/i18n"
	"github.com/yetria/yetria/internal/llm"
)

// EnvPrefix prefixes every environment variable, e.g. YETRIA_API_BASE_URL.
const EnvPrefix = "YETRIA"

// Config is the resolved application configuration.
type Config struct {
	API    APIConfig `mapstructure:"api"`
	Locale string    `mapstructure:"locale"`
	DB     string    `mapstructure:"db"`
	Log    LogConfig `mapstructure:"log"`
	LLM    LLMConfig `mapstructure:"llm"`
}

type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Path   string `mapstructure:"path"`
}

// LLMConfig selects the optional career-insight provider. An empty
// Provider falls back to discovery from the standard API key variables.
type LLMConfig struct {
	Provider string        `mapstructure:"provider"`
	Model    string        `mapstructure:"model"`
	APIKey   string        `mapstructure:"api_key"`
	BaseURL  string        `mapstructure:"base_url"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// New returns a viper instance with defaults and environment binding set up.
// Callers bind their flags to it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("api.base_url", "http://localhost:8000/api/v1")
	v.SetDefault("api.timeout", 15*time.Second)
	v.SetDefault("locale", string(i18n.DefaultLocale))
	v.SetDefault("db", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.path", "")
	v.SetDefault("llm.provider", "")
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.timeout", 30*time.Second)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads .env (if present) and the config file, then unmarshals and
// validates. configFile may be empty to search the default locations.
func Load(v *viper.Viper, configFile string) (Config, error) {
	loadEnvFile()

	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("yetria")
		if dir, err := Dir(); err == nil {
			v.AddConfigPath(dir)
		}
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || configFile != "" {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// loadEnvFile loads .env from the working directory. Variables that are
// already set win.
func loadEnvFile() {
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load(".env")
	}
}

// Validate checks the values that would otherwise fail late and obscurely.
func (c Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api.base_url must be an http(s) URL, got %q", c.API.BaseURL)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive, got %s", c.API.Timeout)
	}
	if _, err := i18n.ParseLocale(c.Locale); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error, got %q", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be console or json, got %q", c.Log.Format)
	}
	return nil
}

// LocaleValue returns the parsed locale. Validate guarantees it parses.
func (c Config) LocaleValue() i18n.Locale {
	loc, err := i18n.ParseLocale(c.Locale)
	if err != nil {
		return i18n.DefaultLocale
	}
	return loc
}

// Provider reports the LLM provider configuration, and false when no
// provider is configured or discoverable.
func (c Config) Provider() (llm.Config, bool) {
	if c.LLM.Provider == "" {
		cfg, ok := llm.DiscoverConfig()
		if ok && c.LLM.Timeout > 0 {
			cfg.Timeout = c.LLM.Timeout
		}
		return cfg, ok
	}

	cfg := llm.DefaultConfig()
	cfg.Provider = strings.ToLower(c.LLM.Provider)
	if c.LLM.Timeout > 0 {
		cfg.Timeout = c.LLM.Timeout
	}
	switch cfg.Provider {
	case "anthropic":
		cfg.Anthropic.APIKey = c.LLM.APIKey
		cfg.Anthropic.Model = orDefault(c.LLM.Model, cfg.Anthropic.Model)
	case "openai":
		cfg.OpenAI.APIKey = c.LLM.APIKey
		cfg.OpenAI.Model = orDefault(c.LLM.Model, cfg.OpenAI.Model)
		cfg.OpenAI.BaseURL = c.LLM.BaseURL
	case "gemini":
		cfg.Gemini.APIKey = c.LLM.APIKey
		cfg.Gemini.Model = orDefault(c.LLM.Model, cfg.Gemini.Model)
	case "openrouter":
		cfg.OpenRouter.APIKey = c.LLM.APIKey
		cfg.OpenRouter.Model = orDefault(c.LLM.Model, cfg.OpenRouter.Model)
		cfg.OpenRouter.BaseURL = c.LLM.BaseURL
	}
	return cfg, true
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// Dir returns the configuration directory: $XDG_CONFIG_HOME/yetria or
// ~/.config/yetria.
func Dir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "yetria"), nil
}

// DefaultLogPath returns $XDG_STATE_HOME/yetria/yetria.log or
// ~/.local/state/yetria/yetria.log.
func DefaultLogPath() (string, error) {
	base := os.Getenv("XDG_STATE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		base = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(base, "yetria", "yetria.log"), nil
}
