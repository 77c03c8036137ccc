package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	Yandex   YandexConfig   `mapstructure:"yandex"`
	Defaults DefaultsConfig `mapstructure:"defaults"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// YandexConfig holds geocoder API connection details
type YandexConfig struct {
	APIKey    string        `mapstructure:"api_key"`
	Version   string        `mapstructure:"version"`
	BaseURL   string        `mapstructure:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

// DefaultsConfig holds filter values applied to every request before
// command line flags
type DefaultsConfig struct {
	Lang   string `mapstructure:"lang"`
	Limit  int    `mapstructure:"limit"`
	Offset int    `mapstructure:"offset"`
	Kind   string `mapstructure:"kind"`
	Output string `mapstructure:"output"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
