// Package testutil provides shared test helpers for config files and a fake statistics API.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// SetupTestConfig creates a minimal config file pointing at baseURL and the report directory.
// Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string, baseURL string) string {
	t.Helper()

	reportDir := filepath.Join(tmpDir, "reports")
	require.NoError(t, os.MkdirAll(reportDir, 0755))

	configContent := fmt.Sprintf(`api:
  base_url: %s
  concurrency: 2
outputs:
  report_directory: %s
`,
		baseURL,
		reportDir,
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// MonthCounts is the enrolled and tested students of a month.
type MonthCounts struct {
	Total  int
	Tested int
}

// StatsServer fakes the statistics API. Months missing from Counts answer with a non-success code.
type StatsServer struct {
	*httptest.Server

	mu       sync.Mutex
	counts   map[string]MonthCounts
	requests []string
}

// NewStatsServer starts a fake statistics API keyed by "YYYY-MM". It is closed on test cleanup.
func NewStatsServer(t *testing.T, counts map[string]MonthCounts) *StatsServer {
	t.Helper()

	s := &StatsServer{counts: counts}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serveHTTP))
	t.Cleanup(s.Close)
	return s
}

// Requests returns the request URIs received so far.
func (s *StatsServer) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

func (s *StatsServer) serveHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.requests = append(s.requests, r.URL.RequestURI())
	s.mu.Unlock()

	query := r.URL.Query()
	month := query.Get("yyyy") + "-" + query.Get("mm")
	counts, ok := s.counts[month]

	w.Header().Set("Content-Type", "application/json")
	if !ok {
		_ = json.NewEncoder(w).Encode(map[string]any{"code": "002", "result": []any{}})
		return
	}

	count := counts.Total
	if strings.HasSuffix(r.URL.Path, "/numberOfTestedStudentsByMonth.php") {
		count = counts.Tested
	}
	_ = json.NewEncoder(w).Encode(map[string]any{
		"code":   "001",
		"result": []map[string]any{{"STUDENT_COUNT": count}},
	})
}
