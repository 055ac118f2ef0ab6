package testutil

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupTestConfig(t *testing.T) {
	tmpDir := t.TempDir()
	got := SetupTestConfig(t, tmpDir, "http://127.0.0.1:9999/api/")

	want := filepath.Join(tmpDir, "config.yml")
	assert.Equal(t, want, got)

	content, err := os.ReadFile(got)
	require.NoError(t, err)
	assert.Contains(t, string(content), "base_url: http://127.0.0.1:9999/api/")
	assert.Contains(t, string(content), "report_directory: "+filepath.Join(tmpDir, "reports"))

	info, err := os.Stat(filepath.Join(tmpDir, "reports"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestStatsServer(t *testing.T) {
	server := NewStatsServer(t, map[string]MonthCounts{
		"2025-01": {Total: 40, Tested: 30},
	})

	tests := []struct {
		name string
		path string
		want string
	}{
		{
			name: "total students",
			path: "/numberOfTotalStudentsByMonth.php?yyyy=2025&mm=01&class=math",
			want: `{"code":"001","result":[{"STUDENT_COUNT":40}]}`,
		},
		{
			name: "tested students",
			path: "/numberOfTestedStudentsByMonth.php?yyyy=2025&mm=01&class=math",
			want: `{"code":"001","result":[{"STUDENT_COUNT":30}]}`,
		},
		{
			name: "unknown month",
			path: "/numberOfTotalStudentsByMonth.php?yyyy=2025&mm=02&class=math",
			want: `{"code":"002","result":[]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Get(server.URL + tt.path)
			require.NoError(t, err)
			defer resp.Body.Close()

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(body))
		})
	}

	assert.Len(t, server.Requests(), 3)
}
