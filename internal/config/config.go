package config

import "time"

// Config holds runtime settings for the staff console.
//
// Fields:
//   - ServerBaseURL: scheme://host[:port] of the exam platform backend.
//   - RequestTimeout: end-to-end bound on every API request.
//   - SessionDBPath: path of the local SQLite file holding the session.
//   - LogLevel: debug | info | warn | error.
type Config struct {
	ServerBaseURL  string
	RequestTimeout time.Duration
	SessionDBPath  string
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8000"
	c.RequestTimeout = 10 * time.Second
	c.SessionDBPath = "examadm.db"
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment (including a .env file, if present), and
// command-line flags. Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
