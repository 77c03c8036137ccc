package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/s0up4200/yageo/yandex"
)

// EnvPrefix prefixes every environment override, e.g. YAGEO_YANDEX_API_KEY
const EnvPrefix = "YAGEO"

// Load loads the configuration. A missing config file is not an error when no
// explicit path was given; values then come from defaults and the environment.
func Load(configPath string) (*Config, error) {
	// A .env file in the working directory is optional.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".yageo"))
		}
		v.AddConfigPath("/etc/yageo/")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values. Every key needs a default
// so AutomaticEnv can override it during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("yandex.api_key", "")
	v.SetDefault("yandex.version", yandex.DefaultVersion)
	v.SetDefault("yandex.base_url", yandex.BaseURL)
	v.SetDefault("yandex.timeout", "30s")
	v.SetDefault("yandex.user_agent", "yageo")

	v.SetDefault("defaults.lang", yandex.DefaultLang)
	v.SetDefault("defaults.limit", yandex.DefaultLimit)
	v.SetDefault("defaults.offset", yandex.DefaultOffset)
	v.SetDefault("defaults.kind", "")
	v.SetDefault("defaults.output", "table")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.Yandex.APIKey == "" || cfg.Yandex.APIKey == "your-api-key-here" {
		return fmt.Errorf("yandex.api_key must be set to a valid API key")
	}

	if cfg.Yandex.Timeout <= 0 {
		return fmt.Errorf("yandex.timeout must be positive")
	}

	if cfg.Defaults.Limit <= 0 {
		return fmt.Errorf("defaults.limit must be positive, got %d", cfg.Defaults.Limit)
	}

	if cfg.Defaults.Offset < 0 {
		return fmt.Errorf("defaults.offset must not be negative, got %d", cfg.Defaults.Offset)
	}

	validOutputs := map[string]bool{
		"table": true,
		"json":  true,
	}
	if !validOutputs[cfg.Defaults.Output] {
		return fmt.Errorf("invalid defaults.output: %s (must be 'table' or 'json')", cfg.Defaults.Output)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
