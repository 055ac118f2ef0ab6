package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/attendchart/internal/cli"
	"github.com/at-ishikawa/attendchart/internal/window"
)

func TestNewChartCommand(t *testing.T) {
	cmd := newChartCommand()

	assert.Equal(t, "chart SUBJECT [CLASS]", cmd.Use)
	for name, want := range map[string]string{
		"view":   "bar",
		"start":  "",
		"end":    "",
		"output": "table",
		"file":   "",
	} {
		flag := cmd.Flags().Lookup(name)
		require.NotNil(t, flag, name)
		assert.Equal(t, want, flag.DefValue, name)
	}
}

func TestNewChartCommand_JSON(t *testing.T) {
	setupStatsAPI(t)

	var out bytes.Buffer
	cmd := newChartCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"MATH", "--view", "line", "--output", "json"})
	require.NoError(t, cmd.Execute())

	var got cli.Attendance
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, "MATH", got.Subject)
	assert.Equal(t, window.Labels(window.Generate(window.Options{})), got.Series.Labels)
	assert.Equal(t, []float64{50, 60, 70, 80, 90, 100}, got.Series.Percents)
}

func TestNewChartCommand_Image(t *testing.T) {
	setupStatsAPI(t)
	file := filepath.Join(t.TempDir(), "math.png")

	cmd := newChartCommand()
	cmd.SetArgs([]string{"MATH", "--output", "png", "--file", file})
	require.NoError(t, cmd.Execute())

	content, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, "\x89PNG", string(content[:4]))
}

func TestNewChartCommand_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		config  func(t *testing.T)
		wantErr string
	}{
		{
			name:    "missing subject",
			args:    []string{},
			wantErr: "accepts between 1 and 2 arg(s)",
		},
		{
			name:    "image without file",
			args:    []string{"MATH", "--output", "svg"},
			wantErr: "--file is required for svg output",
		},
		{
			name:    "malformed date",
			args:    []string{"MATH", "--view", "compareBar", "--start", "2024/09", "--end", "2025-02"},
			wantErr: "invalid date",
		},
		{
			name: "broken config",
			args: []string{"MATH"},
			config: func(t *testing.T) {
				setConfigFile(t, setupBrokenConfigFile(t))
			},
			wantErr: "configuration file found but could not be read",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.config != nil {
				tt.config(t)
			}
			cmd := newChartCommand()
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetErr(&bytes.Buffer{})
			cmd.SetArgs(tt.args)

			err := cmd.Execute()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
