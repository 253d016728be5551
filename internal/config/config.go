package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the process settings read from the environment.
type Config struct {
	Addr            string        // CALC_ADDR
	SessionTTL      time.Duration // CALC_SESSION_TTL, 0 keeps sessions until deleted
	ShutdownTimeout time.Duration // CALC_SHUTDOWN_TIMEOUT
	LogFile         string        // CALC_LOG_FILE
	ExportLogs      bool          // CALC_OTLP_LOGS
}

func Default() Config {
	return Config{
		Addr:            ":8080",
		SessionTTL:      30 * time.Minute,
		ShutdownTimeout: 5 * time.Second,
	}
}

// LoadDotEnv loads environment variables from .env when present.
// Existing process environment variables are not overridden.
func LoadDotEnv(files ...string) error {
	err := godotenv.Load(files...)
	if err == nil {
		return nil
	}

	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return fmt.Errorf("load .env: %w", err)
}

// Load reads Config from the environment on top of Default.
func Load() (Config, error) {
	return load(os.LookupEnv)
}

func load(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if v, ok := lookup("CALC_ADDR"); ok && v != "" {
		cfg.Addr = v
	}
	if v, ok := lookup("CALC_LOG_FILE"); ok {
		cfg.LogFile = v
	}

	var err error
	if cfg.SessionTTL, err = duration(lookup, "CALC_SESSION_TTL", cfg.SessionTTL); err != nil {
		return Config{}, err
	}
	if cfg.ShutdownTimeout, err = duration(lookup, "CALC_SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout); err != nil {
		return Config{}, err
	}

	if v, ok := lookup("CALC_OTLP_LOGS"); ok && v != "" {
		switch v {
		case "1", "true", "yes":
			cfg.ExportLogs = true
		case "0", "false", "no":
			cfg.ExportLogs = false
		default:
			return Config{}, fmt.Errorf("CALC_OTLP_LOGS: invalid boolean %q", v)
		}
	}

	return cfg, nil
}

func duration(lookup func(string) (string, bool), key string, def time.Duration) (time.Duration, error) {
	v, ok := lookup(key)
	if !ok || v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s: negative duration %s", key, v)
	}
	return d, nil
}
