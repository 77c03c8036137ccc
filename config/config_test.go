package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent to testing.T.Chdir from Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
yandex:
  api_key: file-key
  version: "1.x"
  timeout: 5s
defaults:
  lang: en-US
  limit: 3
  kind: house
  output: json
logging:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "file-key", cfg.Yandex.APIKey)
	assert.Equal(t, "1.x", cfg.Yandex.Version)
	assert.Equal(t, "https://geocode-maps.yandex.ru/{version}/", cfg.Yandex.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Yandex.Timeout)
	assert.Equal(t, "yageo", cfg.Yandex.UserAgent)
	assert.Equal(t, "en-US", cfg.Defaults.Lang)
	assert.Equal(t, 3, cfg.Defaults.Limit)
	assert.Equal(t, 0, cfg.Defaults.Offset)
	assert.Equal(t, "house", cfg.Defaults.Kind)
	assert.Equal(t, "json", cfg.Defaults.Output)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.True(t, cfg.Logging.Color)
}

func TestLoad_EnvOnly(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("YAGEO_YANDEX_API_KEY", "env-key")
	t.Setenv("YAGEO_YANDEX_TIMEOUT", "10s")
	t.Setenv("YAGEO_DEFAULTS_LIMIT", "7")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.Yandex.APIKey)
	assert.Equal(t, 10*time.Second, cfg.Yandex.Timeout)
	assert.Equal(t, 7, cfg.Defaults.Limit)
	assert.Equal(t, "ru-RU", cfg.Defaults.Lang)
	assert.Equal(t, "1.x", cfg.Yandex.Version)
	assert.Equal(t, "table", cfg.Defaults.Output)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
yandex:
  api_key: file-key
`)
	t.Setenv("YAGEO_YANDEX_API_KEY", "env-key")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.Yandex.APIKey)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("HOME", t.TempDir())
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("YAGEO_YANDEX_API_KEY=dotenv-key\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("YAGEO_YANDEX_API_KEY") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "dotenv-key", cfg.Yandex.APIKey)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Yandex: YandexConfig{
				APIKey:  "key",
				Timeout: time.Second,
			},
			Defaults: DefaultsConfig{
				Lang:   "ru-RU",
				Limit:  10,
				Output: "table",
			},
			Logging: LoggingConfig{
				Level:  "info",
				Format: "console",
			},
		}
	}

	tests := []struct {
		name        string
		mutate      func(cfg *Config)
		errContains string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing api key", mutate: func(cfg *Config) { cfg.Yandex.APIKey = "" }, errContains: "yandex.api_key"},
		{name: "placeholder api key", mutate: func(cfg *Config) { cfg.Yandex.APIKey = "your-api-key-here" }, errContains: "yandex.api_key"},
		{name: "zero timeout", mutate: func(cfg *Config) { cfg.Yandex.Timeout = 0 }, errContains: "yandex.timeout"},
		{name: "zero limit", mutate: func(cfg *Config) { cfg.Defaults.Limit = 0 }, errContains: "defaults.limit"},
		{name: "negative offset", mutate: func(cfg *Config) { cfg.Defaults.Offset = -1 }, errContains: "defaults.offset"},
		{name: "bad output", mutate: func(cfg *Config) { cfg.Defaults.Output = "xml" }, errContains: "defaults.output"},
		{name: "bad level", mutate: func(cfg *Config) { cfg.Logging.Level = "trace" }, errContains: "logging level"},
		{name: "bad format", mutate: func(cfg *Config) { cfg.Logging.Format = "pretty" }, errContains: "logging format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := validate(cfg)
			if tt.errContains == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}
