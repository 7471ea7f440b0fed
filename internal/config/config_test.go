package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	os.Args = append([]string{"userdir"}, args...)
	t.Cleanup(func() { os.Args = orig })
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "https://reqres.in/api", c.BaseURL)
	assert.Equal(t, "userdir.db", c.DatabasePath)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	setArgs(t)
	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "https://reqres.in/api", cfg.BaseURL)
	assert.Equal(t, "userdir.db", cfg.DatabasePath)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
}

func TestLoadConfig_FlagsOverrideDefaults(t *testing.T) {
	setArgs(t, "-u", "http://localhost:8080/api", "-d", "session.db", "-t", "3")
	cfg := LoadConfig()

	assert.Equal(t, "http://localhost:8080/api", cfg.BaseURL)
	assert.Equal(t, "session.db", cfg.DatabasePath)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
}

func TestLoadConfig_JsonFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"base_url": "http://json.example/api",
		"database_path": "json.db",
		"request_timeout": "7s"
	}`), 0o600))

	setArgs(t, "-c", path)
	cfg := LoadConfig()

	assert.Equal(t, "http://json.example/api", cfg.BaseURL)
	assert.Equal(t, "json.db", cfg.DatabasePath)
	assert.Equal(t, 7*time.Second, cfg.RequestTimeout)
}

func TestLoadConfig_FlagsOverrideJson(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"base_url": "http://json.example/api"}`), 0o600))

	setArgs(t, "-c", path, "-u", "http://flag.example/api")
	cfg := LoadConfig()

	assert.Equal(t, "http://flag.example/api", cfg.BaseURL)
	// Fields absent from the JSON keep their defaults.
	assert.Equal(t, "userdir.db", cfg.DatabasePath)
}
