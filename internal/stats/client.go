// Package stats reads monthly student counts from the attendance statistics API.
package stats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"resty.dev/v3"

	"github.com/at-ishikawa/attendchart/internal/window"
)

//go:generate mockgen -source=client.go -destination=../mocks/stats/mock_client.go -package=mock_stats

// Source fetches the statistics of a single month.
type Source interface {
	FetchMonth(ctx context.Context, query Query) (Result, error)
}

// Query scopes a request to a subject and, optionally, one class of it.
type Query struct {
	Subject string
	// ClassNumber narrows the query to one class. Empty means the whole subject.
	ClassNumber string
	Bucket      window.Bucket
}

func (q Query) params() map[string]string {
	params := map[string]string{
		"yyyy":  q.Bucket.YYYY(),
		"mm":    q.Bucket.MM(),
		"class": q.Subject,
	}
	if q.ClassNumber != "" {
		params["classn"] = q.ClassNumber
	}
	return params
}

// Result is the statistics of one month.
type Result struct {
	TotalStudents  int     `json:"totalStudents" yaml:"total_students"`
	TestedStudents int     `json:"testedStudents" yaml:"tested_students"`
	AttendPercent  float64 `json:"attendPercent" yaml:"attend_percent"`
}

// PercentLabel renders AttendPercent the way it is displayed.
func (r Result) PercentLabel() string {
	return FormatPercent(r.TotalStudents, r.AttendPercent)
}

const (
	DefaultBaseURL = "https://kimcodi.kr/external_api/dashboard/"

	totalStudentsPath  = "/numberOfTotalStudentsByMonth.php"
	testedStudentsPath = "/numberOfTestedStudentsByMonth.php"
)

var ErrEmptyResult = errors.New("empty result")

type Config struct {
	BaseURL     string
	SuccessCode string
	// Timeout bounds each request. Zero disables it.
	Timeout time.Duration
}

type Client struct {
	httpClient  *resty.Client
	successCode string
}

var _ Source = (*Client)(nil)

func NewClient(config Config) *Client {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	successCode := config.SuccessCode
	if successCode == "" {
		successCode = SuccessCode
	}

	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetHeader("Accept", "application/json")
	if config.Timeout > 0 {
		client.SetTimeout(config.Timeout)
	}

	return &Client{
		httpClient:  client,
		successCode: successCode,
	}
}

func (client *Client) Close() error {
	return client.httpClient.Close()
}

// FetchMonth requests the enrolled and tested counts of query and derives the attendance percentage.
func (client *Client) FetchMonth(ctx context.Context, query Query) (Result, error) {
	total, err := client.fetchCount(ctx, totalStudentsPath, query)
	if err != nil {
		return Result{}, fmt.Errorf("fetchCount(total, %s) > %w", query.Bucket, err)
	}
	tested, err := client.fetchCount(ctx, testedStudentsPath, query)
	if err != nil {
		return Result{}, fmt.Errorf("fetchCount(tested, %s) > %w", query.Bucket, err)
	}

	return Result{
		TotalStudents:  total,
		TestedStudents: tested,
		AttendPercent:  AttendPercent(total, tested),
	}, nil
}

func (client *Client) fetchCount(ctx context.Context, path string, query Query) (int, error) {
	response, err := client.httpClient.R().
		SetContext(ctx).
		SetQueryParams(query.params()).
		Get(path)
	if err != nil {
		return 0, fmt.Errorf("httpClient.Get > %w", err)
	}
	if response.IsError() {
		return 0, fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
	}

	var body CountResponse
	if err := json.Unmarshal(response.Bytes(), &body); err != nil {
		return 0, fmt.Errorf("json.Unmarshal(%s) > %w", response.String(), err)
	}
	if body.Code != client.successCode {
		slog.Default().Debug("statistics API returned a non-success code",
			"path", path,
			"code", body.Code,
			"subject", query.Subject,
			"classNumber", query.ClassNumber,
			"bucket", query.Bucket.String(),
		)
		return 0, nil
	}
	if len(body.Result) == 0 {
		return 0, fmt.Errorf("%s: %w", path, ErrEmptyResult)
	}
	return int(body.Result[0].StudentCount), nil
}
