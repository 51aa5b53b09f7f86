package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alanyang/tailor-flow/internal/domain/distribution"
)

const ordersJSON = `[{"order_code":"BW-7","model":"PDH","sizes":[{"size":"L","count":4},{"size":"M","count":3}]}]`

// ── helpers ───────────────────────────────────────────────────────────────────

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

// run executes the CLI with TAILOR_CONFIG pointing at cfgPath.
func run(t *testing.T, cfgPath, stdin string, args ...string) (string, error) {
	t.Helper()
	getenv := func(key string) string {
		if key == "TAILOR_CONFIG" {
			return cfgPath
		}
		return ""
	}
	cmd := newRootCmd(getenv)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// ── distribute ────────────────────────────────────────────────────────────────

func TestDistribute_TextSheet(t *testing.T) {
	dir := t.TempDir()
	orders := writeFile(t, dir, "orders.json", ordersJSON)

	out, err := run(t, filepath.Join(dir, "missing.toml"), "", "distribute", "--orders", orders, "--roster", "Abdul,Asep,Hadi")
	require.NoError(t, err)

	assert.Contains(t, out, "*Abdul:* M (3pcs)")
	assert.Contains(t, out, "*Asep:* L (2pcs)")
	assert.Contains(t, out, "*Hadi:* L (2pcs)")
	assert.Contains(t, out, "*Total:* 7pcs / 3 penjahit")
}

func TestDistribute_JSONUsesConfiguredRoster(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "config.toml", `roster = ["Maris", "Ferry"]`)

	out, err := run(t, cfg, ordersJSON, "distribute", "--orders", "-", "--json")
	require.NoError(t, err)

	var report distribution.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 7, report.Total)
	require.Len(t, report.Allocations, 2)
	assert.Equal(t, "Maris", report.Allocations[0].Worker)
	assert.Equal(t, 4, report.Allocations[0].TotalAssigned)
	assert.Equal(t, "Ferry", report.Allocations[1].Worker)
	assert.Equal(t, 3, report.Allocations[1].TotalAssigned)
}

func TestDistribute_Errors(t *testing.T) {
	dir := t.TempDir()
	missingCfg := filepath.Join(dir, "missing.toml")

	tests := []struct {
		name    string
		stdin   string
		args    []string
		wantErr string
	}{
		{"orders flag required", "", []string{"distribute"}, "required flag"},
		{"bad json", "{", []string{"distribute", "-o", "-"}, "parse orders"},
		{"negative count", `[{"order_code":"X","sizes":[{"size":"S","count":-1}]}]`, []string{"distribute", "-o", "-"}, "negative count"},
		{"duplicate roster names", ordersJSON, []string{"distribute", "-o", "-", "-r", "Maris,Maris"}, "distribute"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, missingCfg, tt.stdin, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

// ── roster ────────────────────────────────────────────────────────────────────

func TestRoster_ConfigFlagOverridesEnv(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "config.toml", `roster = ["Opik", "Epul"]`)

	out, err := run(t, filepath.Join(dir, "missing.toml"), "", "roster", "--config", cfg)
	require.NoError(t, err)
	assert.Equal(t, "1. Opik\n2. Epul\n", out)
}
