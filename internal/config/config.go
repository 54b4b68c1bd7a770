// Package config loads shmopen settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mstoykov/envconfig"
)

// Config holds process-wide settings. Zero values are never used directly:
// Load starts from Default and lets the environment override it.
type Config struct {
	LogLevel     string `envconfig:"SHMOPEN_LOG_LEVEL"`
	DebugMode    bool   `envconfig:"SHMOPEN_DEBUG_MODE"`
	NamePrefix   string `envconfig:"SHMOPEN_NAME_PREFIX"`
	Perm         Perm   `envconfig:"SHMOPEN_PERM"`
	Workers      int    `envconfig:"SHMOPEN_WORKERS"`
	MinFreeBytes uint64 `envconfig:"SHMOPEN_MIN_FREE_BYTES"`
	HealthAddr   string `envconfig:"SHMOPEN_HEALTH_ADDR"`
}

// Perm is a permission mode read from the environment in octal, with or
// without a leading 0 or 0o.
type Perm uint32

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Perm) UnmarshalText(text []byte) error {
	s := strings.TrimPrefix(strings.TrimPrefix(string(text), "0o"), "0O")
	v, err := strconv.ParseUint(s, 8, 32)
	if err != nil {
		return fmt.Errorf("perm %q is not octal", text)
	}
	*p = Perm(v)
	return nil
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogLevel:     "warn",
		NamePrefix:   "/ub_",
		Perm:         0o600,
		Workers:      4,
		MinFreeBytes: 1 << 20,
		HealthAddr:   "127.0.0.1:8086",
	}
}

// Load applies environment overrides to Default and validates the result.
func Load() (Config, error) {
	cfg := Default()
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("config from environment: %w", err)
	}
	if _, explicit := os.LookupEnv("SHMOPEN_LOG_LEVEL"); cfg.DebugMode && !explicit {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs []error
	if c.Perm&^0o777 != 0 {
		errs = append(errs, fmt.Errorf("perm %#o has bits outside 0777", c.Perm))
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be at least 1, got %d", c.Workers))
	}
	if !strings.HasPrefix(c.NamePrefix, "/") {
		errs = append(errs, fmt.Errorf("name prefix %q must start with '/'", c.NamePrefix))
	}
	if strings.Contains(c.NamePrefix[min(1, len(c.NamePrefix)):], "/") {
		errs = append(errs, fmt.Errorf("name prefix %q has an embedded '/'", c.NamePrefix))
	}
	return errors.Join(errs...)
}
