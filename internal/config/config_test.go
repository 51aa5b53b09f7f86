package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainworker "github.com/alanyang/tailor-flow/internal/domain/worker"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := LoadWith(envMap(map[string]string{"TAILOR_CONFIG": filepath.Join(t.TempDir(), "missing.toml")}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, domainworker.DefaultRoster, cfg.Roster)
	assert.Equal(t, 30*time.Second, cfg.PresenceWindow)
	assert.Equal(t, StorePostgres, cfg.IdempotencyStore)
	assert.Empty(t, cfg.Path)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := writeConfig(t, `
database_url = "postgres://file"
port = "9000"
roster = ["Maris", " Ferry "]
presence_window = "45s"
idempotency_store = "memory"
`)
	cfg, err := LoadWith(envMap(map[string]string{
		"TAILOR_CONFIG":           path,
		"PORT":                    "9100",
		"PRESENCE_SWEEP_SECONDS":  "5",
		"IDEMPOTENCY_TTL_SECONDS": "nope",
	}))
	require.NoError(t, err)

	assert.Equal(t, path, cfg.Path)
	assert.Equal(t, "postgres://file", cfg.DatabaseURL)
	assert.Equal(t, "9100", cfg.Port, "env beats file")
	assert.Equal(t, []string{"Maris", "Ferry"}, cfg.Roster)
	assert.Equal(t, 45*time.Second, cfg.PresenceWindow)
	assert.Equal(t, 5*time.Second, cfg.PresenceSweep)
	assert.Equal(t, 24*time.Hour, cfg.IdempotencyTTL, "invalid env value is ignored")
	assert.Equal(t, StoreMemory, cfg.IdempotencyStore)
}

func TestLoad_EnvRoster(t *testing.T) {
	cfg, err := LoadWith(envMap(map[string]string{
		"TAILOR_CONFIG": filepath.Join(t.TempDir(), "missing.toml"),
		"TAILOR_ROSTER": "Abdul, Asep ,Hadi",
	}))
	require.NoError(t, err)
	assert.Equal(t, []string{"Abdul", "Asep", "Hadi"}, cfg.Roster)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		env  map[string]string
	}{
		{name: "bad toml", body: `roster = [`},
		{name: "bad duration", body: `presence_window = "soon"`},
		{name: "duplicate roster", body: `roster = ["Maris", "Maris"]`},
		{name: "unknown store", body: `idempotency_store = "redis"`},
		{name: "blank env roster name", body: ``, env: map[string]string{"TAILOR_ROSTER": "Maris,,Ferry"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := map[string]string{"TAILOR_CONFIG": writeConfig(t, tt.body)}
			for k, v := range tt.env {
				env[k] = v
			}
			_, err := LoadWith(envMap(env))
			assert.Error(t, err)
		})
	}
}
