package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	envServerBaseURL  = "EXAMADM_SERVER_URL"
	envRequestTimeout = "EXAMADM_REQUEST_TIMEOUT"
	envSessionDBPath  = "EXAMADM_SESSION_DB"
	envLogLevel       = "EXAMADM_LOG_LEVEL"
)

// parseEnv overlays cfg from the environment. A .env file in the working
// directory is loaded first, if present; real environment variables win over
// it (godotenv does not override existing values).
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv(envServerBaseURL); v != "" {
		cfg.ServerBaseURL = v
	}
	if v := os.Getenv(envRequestTimeout); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			cfg.RequestTimeout = time.Duration(secs) * time.Second
		}
	}
	if v := os.Getenv(envSessionDBPath); v != "" {
		cfg.SessionDBPath = v
	}
	if v := os.Getenv(envLogLevel); v != "" {
		cfg.LogLevel = v
	}
}
