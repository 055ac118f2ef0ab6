package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/attendchart/internal/testutil"
	"github.com/at-ishikawa/attendchart/internal/window"
)

// setConfigFile sets the global configFile variable and registers a cleanup to restore it.
func setConfigFile(t *testing.T, cfgPath string) {
	t.Helper()
	oldConfigFile := configFile
	configFile = cfgPath
	t.Cleanup(func() { configFile = oldConfigFile })
}

// setupBrokenConfigFile creates a config file with invalid YAML that causes Load() to fail.
func setupBrokenConfigFile(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("{{invalid yaml content"), 0644))
	return cfgPath
}

// setupStatsAPI starts a fake statistics API where the trailing months have 100 enrolled students
// and 50, 60, ..., 100 tested ones, and points the config at it. Returns the config directory.
func setupStatsAPI(t *testing.T) string {
	t.Helper()

	counts := map[string]testutil.MonthCounts{}
	for i, b := range window.Generate(window.Options{}) {
		counts[b.String()] = testutil.MonthCounts{Total: 100, Tested: 50 + 10*i}
	}
	server := testutil.NewStatsServer(t, counts)

	tmpDir := t.TempDir()
	setConfigFile(t, testutil.SetupTestConfig(t, tmpDir, server.URL))
	return tmpDir
}
