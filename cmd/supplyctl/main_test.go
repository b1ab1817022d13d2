package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qloax/niks-aqua/components/assistant"
	"github.com/qloax/niks-aqua/components/dashboard"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	parser := newParser(&out, kong.Exit(func(int) { t.Fatalf("unexpected exit for %v", args) }))
	kctx, err := parser.Parse(args)
	if err != nil {
		return out.String(), err
	}
	err = kctx.Run()
	return out.String(), err
}

func TestKPIsTable(t *testing.T) {
	out, err := run(t, "kpis", "--role", "Retailer")
	require.NoError(t, err)
	for _, kpi := range dashboard.DefaultFixtures().KPIs(dashboard.RoleRetailer) {
		assert.Contains(t, out, kpi.Label)
	}
}

func TestKPIsJSON(t *testing.T) {
	out, err := run(t, "kpis", "--json")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(out), "["))
	assert.Equal(t, dashboard.KPIsPerRole, strings.Count(out, `"label"`))
}

func TestFixturesExportAndValidate(t *testing.T) {
	dir := t.TempDir() + string(os.PathSeparator)
	out, err := run(t, "fixtures", "export", "--out", dir, "--name", "Pune Depot")
	require.NoError(t, err)

	path := filepath.Join(dir, "pune_depot.yaml")
	assert.Contains(t, out, path)
	_, err = os.Stat(path)
	require.NoError(t, err)

	_, err = run(t, "fixtures", "export", "--out", path)
	require.Error(t, err)

	out, err = run(t, "fixtures", "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "AQ-20-JAR")

	out, err = run(t, "kpis", "--fixtures", path, "--role", "Wholesaler")
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestAskOffline(t *testing.T) {
	out, err := run(t, "ask", "stock status?", "--api-key", assistant.PlaceholderAPIKey, "--latency", "1ms")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, assistant.OfflinePrefix), out)
}

func TestTickIsDeterministicWithSeed(t *testing.T) {
	first, err := run(t, "tick", "--count", "3", "--seed", "42")
	require.NoError(t, err)
	second, err := run(t, "tick", "--count", "3", "--seed", "42")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 4, strings.Count(first, "\n"))
}

func TestExportPath(t *testing.T) {
	dir := t.TempDir()
	assert.Equal(t, filepath.Join(dir, "niks_aqua_fixtures.yaml"), exportPath(dir, "NIKS Aqua Fixtures"))
	assert.Equal(t, "out.yaml", exportPath("out.yaml", "ignored"))
}
