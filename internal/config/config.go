// Package config reads process configuration from the environment once at
// startup. The resulting Config is passed explicitly to every constructor.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/sujalbistaa/campus-confessions/internal/logger"
)

// DefaultBlockedWords is the blocklist used when BLOCKED_WORDS is unset
var DefaultBlockedWords = []string{"badword1", "badword2", "abuse", "hate", "toxic"}

// Config is the full process configuration
type Config struct {
	Port            string
	DatabaseURL     string
	CORSOrigin      string
	GinMode         string
	BlockedWords    []string
	ShutdownTimeout time.Duration
	Log             logger.Options
}

// Load builds a Config from environment variables, applying defaults
func Load() Config {
	return Config{
		Port:            get("PORT", "8080"),
		DatabaseURL:     get("DATABASE_URL", "sqlite://confessions.db"),
		CORSOrigin:      get("CORS_ORIGIN", "*"),
		GinMode:         ginMode(get("GIN_MODE", "release")),
		BlockedWords:    list("BLOCKED_WORDS", DefaultBlockedWords),
		ShutdownTimeout: duration("SHUTDOWN_TIMEOUT", 5*time.Second),
		Log: logger.Options{
			Level:   get("LOG_LEVEL", "info"),
			Format:  get("LOG_FORMAT", "console"),
			Service: "campus-confessions",
		},
	}
}

// Addr returns the listen address for Port
func (c Config) Addr() string { return ":" + c.Port }

func get(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// ginMode keeps only modes gin accepts; anything else would panic in gin.SetMode
func ginMode(m string) string {
	switch m = strings.ToLower(m); m {
	case "debug", "release", "test":
		return m
	default:
		return "release"
	}
}

func list(key string, def []string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return append([]string(nil), def...)
	}
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func duration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
