// Package series assembles per-month attendance statistics into index-aligned series.
package series

import (
	"fmt"

	"github.com/at-ishikawa/attendchart/internal/stats"
	"github.com/at-ishikawa/attendchart/internal/window"
)

// Series holds one entry per bucket in every slice, in bucket order.
type Series struct {
	Buckets  []window.Bucket `json:"-" yaml:"-"`
	Labels   []string        `json:"labels" yaml:"labels"`
	Totals   []int           `json:"totals" yaml:"totals"`
	Tested   []int           `json:"tested" yaml:"tested"`
	Percents []float64       `json:"percents" yaml:"percents"`
}

func newSeries(buckets []window.Bucket) Series {
	n := len(buckets)
	return Series{
		Buckets:  append([]window.Bucket(nil), buckets...),
		Labels:   window.Labels(buckets),
		Totals:   make([]int, n),
		Tested:   make([]int, n),
		Percents: make([]float64, n),
	}
}

func (s Series) Len() int {
	return len(s.Buckets)
}

// At returns the statistics of the i-th bucket.
func (s Series) At(i int) stats.Result {
	return stats.Result{
		TotalStudents:  s.Totals[i],
		TestedStudents: s.Tested[i],
		AttendPercent:  s.Percents[i],
	}
}

// Validate checks that every slice has one entry per bucket.
func (s Series) Validate() error {
	n := len(s.Buckets)
	for _, field := range []struct {
		name string
		len  int
	}{
		{name: "labels", len: len(s.Labels)},
		{name: "totals", len: len(s.Totals)},
		{name: "tested", len: len(s.Tested)},
		{name: "percents", len: len(s.Percents)},
	} {
		if field.len != n {
			return fmt.Errorf("series %s has %d entries, want %d", field.name, field.len, n)
		}
	}
	return nil
}

// Clone returns a deep copy of s.
func (s Series) Clone() Series {
	return Series{
		Buckets:  append([]window.Bucket(nil), s.Buckets...),
		Labels:   append([]string(nil), s.Labels...),
		Totals:   append([]int(nil), s.Totals...),
		Tested:   append([]int(nil), s.Tested...),
		Percents: append([]float64(nil), s.Percents...),
	}
}
