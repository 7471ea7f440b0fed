package config

import "time"

// Config holds runtime settings for the userdir CLI.
//
// Fields:
//   - BaseURL: base URL of the remote directory API.
//   - DatabasePath: path to the local SQLite file holding the session.
//   - RequestTimeout: per-request deadline for every remote call.
type Config struct {
	BaseURL        string
	DatabasePath   string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "https://reqres.in/api"
	c.DatabasePath = "userdir.db"
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
