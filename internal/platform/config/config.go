package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

// Config is the complete process configuration.
type Config struct {
	Server   Server
	Breach   Breach
	LogLevel string
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// Breach configures the range lookup and its circuit breaker.
type Breach struct {
	RangeURL                string
	Timeout                 time.Duration
	Padding                 bool
	UserAgent               string
	BreakerThreshold        int
	BreakerSuccessThreshold int
	BreakerCooldown         time.Duration
}

// FromEnv builds the config from environment variables so main stays lean.
func FromEnv() (*Config, error) {
	return LoadFrom(nil)
}

// LoadFrom reads configuration from the provided map. If env is nil, all
// values come from os.Getenv.
func LoadFrom(env map[string]string) (*Config, error) {
	get := func(key string) string {
		if env != nil {
			return env[key]
		}
		return os.Getenv(key)
	}

	cfg := &Config{}
	cfg.Server.Addr = getOrDefault(get, "PASSGUARD_ADDR", ":8080")
	cfg.LogLevel = getOrDefault(get, "LOG_LEVEL", "info")

	cfg.Breach.RangeURL = getOrDefault(get, "BREACH_RANGE_URL", "https://api.pwnedpasswords.com/range/")
	if err := validateRangeURL(cfg.Breach.RangeURL); err != nil {
		return nil, err
	}
	cfg.Breach.UserAgent = getOrDefault(get, "BREACH_USER_AGENT", "passguard")

	var err error
	cfg.Server.WriteTimeout, err = getPositiveDurationOrDefault(get, "PASSGUARD_WRITE_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.Server.ShutdownTimeout, err = getPositiveDurationOrDefault(get, "PASSGUARD_SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.Breach.Timeout, err = getPositiveDurationOrDefault(get, "BREACH_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.Breach.Padding, err = getBoolOrDefault(get, "BREACH_PADDING", true)
	if err != nil {
		return nil, err
	}
	cfg.Breach.BreakerThreshold, err = getPositiveIntOrDefault(get, "BREACH_BREAKER_THRESHOLD", 5)
	if err != nil {
		return nil, err
	}
	cfg.Breach.BreakerSuccessThreshold, err = getPositiveIntOrDefault(get, "BREACH_BREAKER_SUCCESS_THRESHOLD", 1)
	if err != nil {
		return nil, err
	}
	cfg.Breach.BreakerCooldown, err = getPositiveDurationOrDefault(get, "BREACH_BREAKER_COOLDOWN", 30*time.Second)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func validateRangeURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid value for BREACH_RANGE_URL: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid value for BREACH_RANGE_URL: must be an absolute http(s) URL")
	}
	return nil
}

func getOrDefault(get func(string) string, key, defaultVal string) string {
	if v := get(key); v != "" {
		return v
	}
	return defaultVal
}

func getBoolOrDefault(get func(string) string, key string, defaultVal bool) (bool, error) {
	v := get(key)
	if v == "" {
		return defaultVal, nil
	}
	switch v {
	case "true", "1", "yes":
		return true, nil
	case "false", "0", "no":
		return false, nil
	}
	return false, fmt.Errorf("invalid value for %s: %q is not a boolean", key, v)
}

func getPositiveIntOrDefault(get func(string) string, key string, defaultVal int) (int, error) {
	v := get(key)
	if v == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %w", key, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("invalid value for %s: must be positive", key)
	}
	return n, nil
}

func getPositiveDurationOrDefault(get func(string) string, key string, defaultVal time.Duration) (time.Duration, error) {
	v := get(key)
	if v == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid value for %s: must be positive", key)
	}
	return d, nil
}
