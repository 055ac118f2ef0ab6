package stats

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/attendchart/internal/window"
)

func TestClient_FetchMonth(t *testing.T) {
	march := window.Bucket{Year: 2025, Month: time.March}

	tests := []struct {
		name              string
		query             Query
		mockServerHandler func(t *testing.T, w http.ResponseWriter, r *http.Request)

		want            Result
		wantError       bool
		wantErrorString string
	}{
		{
			name:  "both counts succeed",
			query: Query{Subject: "MATH", Bucket: march},
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "2025", r.URL.Query().Get("yyyy"))
				assert.Equal(t, "03", r.URL.Query().Get("mm"))
				assert.Equal(t, "MATH", r.URL.Query().Get("class"))
				assert.False(t, r.URL.Query().Has("classn"))

				switch r.URL.Path {
				case "/numberOfTotalStudentsByMonth.php":
					_, _ = w.Write([]byte(`{"code":"001","result":[{"STUDENT_COUNT":200}]}`))
				case "/numberOfTestedStudentsByMonth.php":
					_, _ = w.Write([]byte(`{"code":"001","result":[{"STUDENT_COUNT":150}]}`))
				default:
					t.Errorf("unexpected path %s", r.URL.Path)
				}
			},
			want: Result{TotalStudents: 200, TestedStudents: 150, AttendPercent: 75.0},
		},
		{
			name:  "class number is sent as classn",
			query: Query{Subject: "ENG", ClassNumber: "3", Bucket: march},
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "ENG", r.URL.Query().Get("class"))
				assert.Equal(t, "3", r.URL.Query().Get("classn"))
				_, _ = w.Write([]byte(`{"code":"001","result":[{"STUDENT_COUNT":"30"}]}`))
			},
			want: Result{TotalStudents: 30, TestedStudents: 30, AttendPercent: 100.0},
		},
		{
			name:  "zero totals give a zero percent",
			query: Query{Subject: "MATH", Bucket: march},
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"code":"001","result":[{"STUDENT_COUNT":0}]}`))
			},
			want: Result{},
		},
		{
			name:  "non-success code forces the count to zero",
			query: Query{Subject: "MATH", Bucket: march},
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				if r.URL.Path == "/numberOfTotalStudentsByMonth.php" {
					_, _ = w.Write([]byte(`{"code":"001","result":[{"STUDENT_COUNT":40}]}`))
					return
				}
				_, _ = w.Write([]byte(`{"code":"002","result":[{"STUDENT_COUNT":35}]}`))
			},
			want: Result{TotalStudents: 40, TestedStudents: 0, AttendPercent: 0},
		},
		{
			name:  "non-success code without a result",
			query: Query{Subject: "MATH", Bucket: march},
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"code":"999"}`))
			},
			want: Result{},
		},
		{
			name:  "success code with an empty result",
			query: Query{Subject: "MATH", Bucket: march},
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"code":"001","result":[]}`))
			},
			wantError:       true,
			wantErrorString: ErrEmptyResult.Error(),
		},
		{
			name:  "server error",
			query: Query{Subject: "MATH", Bucket: march},
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte("boom"))
			},
			wantError:       true,
			wantErrorString: "response error 500",
		},
		{
			name:  "malformed body",
			query: Query{Subject: "MATH", Bucket: march},
			mockServerHandler: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`<html>maintenance</html>`))
			},
			wantError:       true,
			wantErrorString: "json.Unmarshal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				tt.mockServerHandler(t, w, r)
			}))
			defer server.Close()

			client := NewClient(Config{BaseURL: server.URL + "/"})
			defer func() {
				_ = client.Close()
			}()

			got, err := client.FetchMonth(context.Background(), tt.query)
			if tt.wantError {
				require.Error(t, err)
				if tt.wantErrorString != "" {
					assert.Contains(t, err.Error(), tt.wantErrorString)
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClient_FetchMonth_CustomSuccessCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code":"OK","result":[{"STUDENT_COUNT":10}]}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, SuccessCode: "OK"})
	got, err := client.FetchMonth(context.Background(), Query{Subject: "MATH", Bucket: window.Bucket{Year: 2025, Month: time.May}})
	require.NoError(t, err)
	assert.Equal(t, Result{TotalStudents: 10, TestedStudents: 10, AttendPercent: 100}, got)
}

func TestClient_FetchMonth_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := server.URL
	server.Close()

	client := NewClient(Config{BaseURL: baseURL})
	_, err := client.FetchMonth(context.Background(), Query{Subject: "MATH", Bucket: window.Bucket{Year: 2025, Month: time.May}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetchCount(total, 2025-05)")
}

func TestClient_FetchMonth_ContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code":"001","result":[{"STUDENT_COUNT":1}]}`))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(Config{BaseURL: server.URL})
	_, err := client.FetchMonth(ctx, Query{Subject: "MATH", Bucket: window.Bucket{Year: 2025, Month: time.May}})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
