// Package config resolves server settings from defaults, an optional TOML file and
// the environment, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/alanyang/tailor-flow/internal/domain/distribution"
	domainworker "github.com/alanyang/tailor-flow/internal/domain/worker"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	DatabaseURL      string
	Port             string
	Path             string // config file in use, empty when none was found
	Roster           []string
	RosterFromEnv    bool // TAILOR_ROSTER set; file edits must not replace it
	PresenceWindow   time.Duration
	PresenceSweep    time.Duration
	IdempotencyTTL   time.Duration
	IdempotencyStore string
}

func Default() Config {
	return Config{
		Port:             "8080",
		Roster:           append([]string(nil), domainworker.DefaultRoster...),
		PresenceWindow:   domainworker.DefaultOnlineWindow,
		PresenceSweep:    10 * time.Second,
		IdempotencyTTL:   24 * time.Hour,
		IdempotencyStore: StorePostgres,
	}
}

// fileConfig mirrors Config with string durations to keep the TOML readable.
type fileConfig struct {
	DatabaseURL      string   `toml:"database_url"`
	Port             string   `toml:"port"`
	Roster           []string `toml:"roster"`
	PresenceWindow   string   `toml:"presence_window"`
	PresenceSweep    string   `toml:"presence_sweep"`
	IdempotencyTTL   string   `toml:"idempotency_ttl"`
	IdempotencyStore string   `toml:"idempotency_store"`
}

// Load reads the process environment and the config file it points at.
func Load() (Config, error) {
	return LoadWith(os.Getenv)
}

// LoadWith is Load with an injectable environment lookup.
func LoadWith(getenv func(string) string) (Config, error) {
	cfg := Default()

	path := getenv("TAILOR_CONFIG")
	if path == "" {
		path = DefaultPath()
	}
	if path != "" && fileExists(path) {
		fc, err := loadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := applyFile(&cfg, fc); err != nil {
			return Config{}, fmt.Errorf("applying config file %s: %w", path, err)
		}
		cfg.Path = path
	}

	applyEnv(&cfg, getenv)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if _, err := distribution.NewRoster(c.Roster); err != nil {
		return fmt.Errorf("config roster: %w", err)
	}
	if c.IdempotencyStore != StorePostgres && c.IdempotencyStore != StoreMemory {
		return fmt.Errorf("config idempotency_store: unknown store %q", c.IdempotencyStore)
	}
	if c.PresenceWindow <= 0 || c.PresenceSweep <= 0 || c.IdempotencyTTL <= 0 {
		return errors.New("config durations must be positive")
	}
	return nil
}

// DefaultPath returns ~/.tailor-flow/config.toml, or "" without a home directory.
func DefaultPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".tailor-flow", "config.toml")
	}
	return ""
}

func loadFile(path string) (fileConfig, error) {
	var fc fileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

func applyFile(cfg *Config, fc fileConfig) error {
	setString(fc.DatabaseURL, &cfg.DatabaseURL)
	setString(fc.Port, &cfg.Port)
	setString(fc.IdempotencyStore, &cfg.IdempotencyStore)
	if len(fc.Roster) > 0 {
		cfg.Roster = trimAll(fc.Roster)
	}

	durations := []struct {
		name string
		val  string
		dst  *time.Duration
	}{
		{"presence_window", fc.PresenceWindow, &cfg.PresenceWindow},
		{"presence_sweep", fc.PresenceSweep, &cfg.PresenceSweep},
		{"idempotency_ttl", fc.IdempotencyTTL, &cfg.IdempotencyTTL},
	}
	for _, d := range durations {
		if d.val == "" {
			continue
		}
		v, err := time.ParseDuration(d.val)
		if err != nil {
			return fmt.Errorf("%s: %w", d.name, err)
		}
		*d.dst = v
	}
	return nil
}

func applyEnv(cfg *Config, getenv func(string) string) {
	setString(getenv("DATABASE_URL"), &cfg.DatabaseURL)
	setString(getenv("PORT"), &cfg.Port)
	setString(getenv("IDEMPOTENCY_STORE"), &cfg.IdempotencyStore)
	if v := getenv("TAILOR_ROSTER"); v != "" {
		cfg.Roster = trimAll(strings.Split(v, ","))
		cfg.RosterFromEnv = true
	}
	cfg.PresenceWindow = envDuration(getenv, "PRESENCE_WINDOW_SECONDS", cfg.PresenceWindow)
	cfg.PresenceSweep = envDuration(getenv, "PRESENCE_SWEEP_SECONDS", cfg.PresenceSweep)
	cfg.IdempotencyTTL = envDuration(getenv, "IDEMPOTENCY_TTL_SECONDS", cfg.IdempotencyTTL)
}

// envDuration reads an integer-seconds variable. Unset or invalid values keep def.
func envDuration(getenv func(string) string, key string, def time.Duration) time.Duration {
	if v := getenv(key); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return def
}

func setString(v string, dst *string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, strings.TrimSpace(s))
	}
	return out
}

func fileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
