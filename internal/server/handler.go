// Package server serves attendance charts over HTTP.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/at-ishikawa/attendchart/internal/assets"
	"github.com/at-ishikawa/attendchart/internal/chart"
	"github.com/at-ishikawa/attendchart/internal/series"
)

//go:generate mockgen -source=handler.go -destination=../mocks/server/mock_handler.go -package=mock_server

// SeriesBuilder assembles the series of a request.
type SeriesBuilder interface {
	Assemble(ctx context.Context, req series.Request) (series.Series, error)
}

// AttendanceResponse is the body of the attendance endpoint.
type AttendanceResponse struct {
	Subject     string        `json:"subject"`
	ClassNumber string        `json:"classNumber,omitempty"`
	View        chart.View    `json:"view"`
	Chart       chart.Chart   `json:"chart"`
	Series      series.Series `json:"series"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// AttendanceHandler serves charts assembled on every request.
type AttendanceHandler struct {
	builder SeriesBuilder
	size    chart.Size
	now     func() time.Time
}

func NewAttendanceHandler(builder SeriesBuilder, size chart.Size) *AttendanceHandler {
	return &AttendanceHandler{
		builder: builder,
		size:    size,
		now:     time.Now,
	}
}

// Routes registers the endpoints of h on a new mux.
func (h *AttendanceHandler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/subjects/{subject}/attendance", h.GetAttendance)
	mux.HandleFunc("GET /api/v1/subjects/{subject}/attendance.png", h.imageHandler(chart.FormatPNG))
	mux.HandleFunc("GET /api/v1/subjects/{subject}/attendance.svg", h.imageHandler(chart.FormatSVG))
	mux.HandleFunc("GET /subjects/{subject}", h.GetPage)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return mux
}

// GetAttendance returns the chart and series of a subject as JSON.
func (h *AttendanceHandler) GetAttendance(w http.ResponseWriter, r *http.Request) {
	props, s, ok := h.assemble(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, AttendanceResponse{
		Subject:     props.Subject,
		ClassNumber: props.ClassNumber,
		View:        props.View,
		Chart:       chart.Build(s, props.View),
		Series:      s,
	})
}

func (h *AttendanceHandler) imageHandler(format chart.ImageFormat) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		props, s, ok := h.assemble(w, r)
		if !ok {
			return
		}

		var buf bytes.Buffer
		if err := chart.Render(&buf, chart.Build(s, props.View), format, h.size); err != nil {
			h.writeInternalError(w, fmt.Errorf("chart.Render > %w", err))
			return
		}
		w.Header().Set("Content-Type", format.ContentType())
		_, _ = buf.WriteTo(w)
	}
}

// GetPage returns an HTML page drawing the chart with Chart.js.
func (h *AttendanceHandler) GetPage(w http.ResponseWriter, r *http.Request) {
	props, s, ok := h.assemble(w, r)
	if !ok {
		return
	}

	chartJSON, err := json.Marshal(chart.Build(s, props.View))
	if err != nil {
		h.writeInternalError(w, fmt.Errorf("json.Marshal > %w", err))
		return
	}

	title := "Attendance of " + props.Subject
	if props.ClassNumber != "" {
		title += " class " + props.ClassNumber
	}

	var buf bytes.Buffer
	if err := assets.WritePage(&buf, assets.PageData{
		Title:     title,
		Subject:   props.Subject,
		View:      string(props.View),
		ChartJSON: string(chartJSON),
	}); err != nil {
		h.writeInternalError(w, fmt.Errorf("assets.WritePage > %w", err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// assemble parses the request and assembles its series. It writes the error response when ok is false.
func (h *AttendanceHandler) assemble(w http.ResponseWriter, r *http.Request) (props chart.Props, s series.Series, ok bool) {
	query := r.URL.Query()
	props, err := chart.ParseProps(
		r.PathValue("subject"),
		query.Get("classn"),
		query.Get("view"),
		query.Get("start"),
		query.Get("end"),
	)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return chart.Props{}, series.Series{}, false
	}

	s, err = h.builder.Assemble(r.Context(), props.Request(h.now()))
	if err != nil {
		if errors.Is(err, context.Canceled) {
			slog.Default().Debug("client went away", "path", r.URL.Path)
			return chart.Props{}, series.Series{}, false
		}
		slog.Default().Warn("failed to assemble attendance series",
			"subject", props.Subject,
			"classNumber", props.ClassNumber,
			"error", err,
		)
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "failed to fetch attendance statistics"})
		return chart.Props{}, series.Series{}, false
	}
	return props, s, true
}

func (h *AttendanceHandler) writeInternalError(w http.ResponseWriter, err error) {
	slog.Default().Error("failed to write attendance response", "error", err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Default().Debug("failed to write response body", "error", err)
	}
}
