package httpapi

import (
	"os"
	"strings"
	"time"
)

// Config configures the HTTP server.
type Config struct {
	// Addr is the listen address. Default: ":8000".
	Addr string

	// CORSOrigins lists allowed browser origins.
	CORSOrigins []string

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// DefaultConfig returns a local development configuration. WriteTimeout
// leaves room for three full generation attempts.
func DefaultConfig() Config {
	return Config{
		Addr:            ":8000",
		CORSOrigins:     []string{"http://localhost:3000", "http://localhost:5173", "http://127.0.0.1:3000", "http://127.0.0.1:5173"},
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    200 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

// ConfigFromEnv reads AITUTOR_HTTP_ADDR and AITUTOR_CORS_ORIGINS
// (comma-separated) over the defaults.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if v := os.Getenv("AITUTOR_HTTP_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("AITUTOR_CORS_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		if len(origins) > 0 {
			cfg.CORSOrigins = origins
		}
	}
	return cfg
}
