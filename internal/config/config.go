// Package config holds the settings of the truco front server.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"k8s.io/klog/v2"
)

// Config of the front server.
type Config struct {
	// Addr to listen on. Empty picks a free port on localhost.
	Addr string
	// BackendURL is the base URL of the truco game backend.
	BackendURL string
	// PollInterval between two fetches of a followed match.
	PollInterval time.Duration
	// WebDir holds the compiled WASM and static assets.
	WebDir string
	// RequestTimeout bounds each call to the backend.
	RequestTimeout time.Duration
}

// Defaults returns the configuration used when nothing is overridden.
func Defaults() *Config {
	return &Config{
		Addr:           "",
		BackendURL:     "http://localhost:3000",
		PollInterval:   time.Second,
		WebDir:         "web",
		RequestTimeout: 5 * time.Second,
	}
}

// Load reads an optional .env file, then applies environment variable
// overrides on top of Defaults. Invalid values are logged and ignored.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		klog.V(1).Infof("No .env file loaded: %v", err)
	}
	cfg := Defaults()
	overrideString(&cfg.Addr, "TRUCO_ADDR")
	overrideString(&cfg.BackendURL, "TRUCO_BACKEND_URL")
	overrideMillis(&cfg.PollInterval, "TRUCO_POLL_INTERVAL_MS")
	overrideString(&cfg.WebDir, "TRUCO_WEB_DIR")
	overrideMillis(&cfg.RequestTimeout, "TRUCO_REQUEST_TIMEOUT_MS")
	return cfg
}

func overrideString(field *string, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		*field = val
	}
}

func overrideMillis(field *time.Duration, envKey string) {
	val := os.Getenv(envKey)
	if val == "" {
		return
	}
	n, err := strconv.Atoi(val)
	if err != nil || n <= 0 {
		klog.Warningf("Invalid value for %s: %q, keeping %s", envKey, val, *field)
		return
	}
	*field = time.Duration(n) * time.Millisecond
}
