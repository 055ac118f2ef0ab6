package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/at-ishikawa/attendchart/internal/chart"
	mock_server "github.com/at-ishikawa/attendchart/internal/mocks/server"
	"github.com/at-ishikawa/attendchart/internal/series"
	"github.com/at-ishikawa/attendchart/internal/window"
)

var testNow = time.Date(2025, 2, 10, 12, 0, 0, 0, time.UTC)

func newTestHandler(t *testing.T) (*AttendanceHandler, *mock_server.MockSeriesBuilder) {
	t.Helper()
	ctrl := gomock.NewController(t)
	builder := mock_server.NewMockSeriesBuilder(ctrl)
	h := NewAttendanceHandler(builder, chart.Size{Width: 4, Height: 2})
	h.now = func() time.Time { return testNow }
	return h, builder
}

func trailingSeries() series.Series {
	buckets := window.Generate(window.Options{Now: testNow})
	return series.Series{
		Buckets:  buckets,
		Labels:   window.Labels(buckets),
		Totals:   []int{100, 100, 100, 100, 100, 100},
		Tested:   []int{50, 60, 70, 80, 90, 100},
		Percents: []float64{50, 60, 70, 80, 90, 100},
	}
}

func TestAttendanceHandler_GetAttendance(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		setupMock  func(builder *mock_server.MockSeriesBuilder)
		wantStatus int
		wantBody   func(t *testing.T, body []byte)
	}{
		{
			name:   "trailing bar chart of a subject",
			target: "/api/v1/subjects/MATH/attendance?view=bar",
			setupMock: func(builder *mock_server.MockSeriesBuilder) {
				builder.EXPECT().
					Assemble(gomock.Any(), series.Request{
						Subject: "MATH",
						Buckets: window.Generate(window.Options{Now: testNow}),
					}).
					Return(trailingSeries(), nil)
			},
			wantStatus: http.StatusOK,
			wantBody: func(t *testing.T, body []byte) {
				var got AttendanceResponse
				require.NoError(t, json.Unmarshal(body, &got))
				assert.Equal(t, "MATH", got.Subject)
				assert.Equal(t, chart.ViewBar, got.View)
				assert.Equal(t, chart.ShapeBar, got.Chart.Type)
				assert.Equal(t, []string{"09", "10", "11", "12", "01", "02"}, got.Chart.Data.Labels)
				assert.Equal(t, []float64{50, 60, 70, 80, 90, 100}, got.Series.Percents)
			},
		},
		{
			name:   "comparison of a class",
			target: "/api/v1/subjects/MATH/attendance?classn=3&view=compareBar&start=2024-05-01&end=2025-01",
			setupMock: func(builder *mock_server.MockSeriesBuilder) {
				buckets := []window.Bucket{{Year: 2024, Month: time.May}, {Year: 2025, Month: time.January}}
				builder.EXPECT().
					Assemble(gomock.Any(), series.Request{Subject: "MATH", ClassNumber: "3", Buckets: buckets}).
					Return(series.Series{
						Buckets:  buckets,
						Labels:   window.Labels(buckets),
						Totals:   []int{10, 0},
						Tested:   []int{5, 0},
						Percents: []float64{50, 0},
					}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody: func(t *testing.T, body []byte) {
				var got AttendanceResponse
				require.NoError(t, json.Unmarshal(body, &got))
				assert.Equal(t, "3", got.ClassNumber)
				assert.Equal(t, chart.ViewCompareBar, got.View)
				assert.Equal(t, []string{"05", "01"}, got.Chart.Data.Labels)
				assert.Equal(t, []int{10, 0}, got.Chart.Data.Datasets[0].Data)
				assert.Equal(t, []int{5, 0}, got.Chart.Data.Datasets[1].Data)
			},
		},
		{
			name:       "malformed date",
			target:     "/api/v1/subjects/MATH/attendance?view=compareBar&start=yesterday&end=2025-01",
			setupMock:  func(builder *mock_server.MockSeriesBuilder) {},
			wantStatus: http.StatusBadRequest,
			wantBody: func(t *testing.T, body []byte) {
				assert.Contains(t, string(body), "invalid date")
			},
		},
		{
			name:       "missing range",
			target:     "/api/v1/subjects/MATH/attendance?view=compareBar",
			setupMock:  func(builder *mock_server.MockSeriesBuilder) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "unknown view is drawn as a line",
			target: "/api/v1/subjects/MATH/attendance?view=pie&start=2024-05",
			setupMock: func(builder *mock_server.MockSeriesBuilder) {
				builder.EXPECT().
					Assemble(gomock.Any(), series.Request{
						Subject: "MATH",
						Buckets: window.Generate(window.Options{Now: testNow}),
					}).
					Return(trailingSeries(), nil)
			},
			wantStatus: http.StatusOK,
			wantBody: func(t *testing.T, body []byte) {
				var got AttendanceResponse
				require.NoError(t, json.Unmarshal(body, &got))
				assert.Equal(t, chart.ViewLine, got.View)
				assert.Equal(t, chart.ShapeLine, got.Chart.Type)
				assert.Equal(t, []string{"09", "10", "11", "12", "01", "02"}, got.Chart.Data.Labels)
			},
		},
		{
			name:   "no view is drawn as a line",
			target: "/api/v1/subjects/MATH/attendance",
			setupMock: func(builder *mock_server.MockSeriesBuilder) {
				builder.EXPECT().
					Assemble(gomock.Any(), gomock.Any()).
					Return(trailingSeries(), nil)
			},
			wantStatus: http.StatusOK,
			wantBody: func(t *testing.T, body []byte) {
				var got AttendanceResponse
				require.NoError(t, json.Unmarshal(body, &got))
				assert.Equal(t, chart.ShapeLine, got.Chart.Type)
			},
		},
		{
			name:   "upstream failure",
			target: "/api/v1/subjects/MATH/attendance?view=line",
			setupMock: func(builder *mock_server.MockSeriesBuilder) {
				builder.EXPECT().
					Assemble(gomock.Any(), gomock.Any()).
					Return(series.Series{}, errors.New("response error 500"))
			},
			wantStatus: http.StatusBadGateway,
			wantBody: func(t *testing.T, body []byte) {
				assert.JSONEq(t, `{"error":"failed to fetch attendance statistics"}`, string(body))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, builder := newTestHandler(t)
			tt.setupMock(builder)

			rec := httptest.NewRecorder()
			h.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			if tt.wantBody != nil {
				tt.wantBody(t, rec.Body.Bytes())
			}
		})
	}
}

func TestAttendanceHandler_Image(t *testing.T) {
	tests := []struct {
		format     chart.ImageFormat
		wantPrefix string
	}{
		{format: chart.FormatPNG, wantPrefix: "\x89PNG"},
		{format: chart.FormatSVG, wantPrefix: "<"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			h, builder := newTestHandler(t)
			builder.EXPECT().Assemble(gomock.Any(), gomock.Any()).Return(trailingSeries(), nil)

			rec := httptest.NewRecorder()
			target := fmt.Sprintf("/api/v1/subjects/MATH/attendance.%s?view=line", tt.format)
			h.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.format.ContentType(), rec.Header().Get("Content-Type"))
			assert.True(t, strings.HasPrefix(rec.Body.String(), tt.wantPrefix))
		})
	}
}

func TestAttendanceHandler_GetPage(t *testing.T) {
	h, builder := newTestHandler(t)
	builder.EXPECT().Assemble(gomock.Any(), gomock.Any()).Return(trailingSeries(), nil)

	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/subjects/MATH?classn=3", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.Contains(t, body, "<title>Attendance of MATH class 3</title>")
	assert.Contains(t, body, `"labels":["09","10","11","12","01","02"]`)
}

func TestAttendanceHandler_ClientGone(t *testing.T) {
	h, builder := newTestHandler(t)
	builder.EXPECT().
		Assemble(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, req series.Request) (series.Series, error) {
			return series.Series{}, fmt.Errorf("source.FetchMonth > %w", context.Canceled)
		})

	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/subjects/MATH/attendance", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestHealthz(t *testing.T) {
	h, _ := newTestHandler(t)
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
