package window

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

// TrailingMonths is the number of buckets in trailing mode.
const TrailingMonths = 6

type Mode int

const (
	// ModeTrailing covers the current month and the five months before it.
	ModeTrailing Mode = iota
	// ModeComparison covers the months of Options.Start and Options.End.
	ModeComparison
)

func (m Mode) String() string {
	switch m {
	case ModeComparison:
		return "comparison"
	default:
		return "trailing"
	}
}

// ModeForView maps a chart view name to the window mode it queries.
func ModeForView(view string) Mode {
	if view == "compareBar" {
		return ModeComparison
	}
	return ModeTrailing
}

// Options selects the buckets to generate.
// A zero Now resolves to time.Now() when Generate is called.
// Start and End are only read in ModeComparison.
type Options struct {
	Mode  Mode
	Start time.Time
	End   time.Time
	Now   time.Time
}

// Generate returns the buckets for opts in query order.
func Generate(opts Options) []Bucket {
	if opts.Mode == ModeComparison {
		// no ordering check: End may precede Start
		return []Bucket{BucketOf(opts.Start), BucketOf(opts.End)}
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	buckets := make([]Bucket, 0, TrailingMonths)
	current := BucketOf(now)
	for range TrailingMonths {
		buckets = append(buckets, current)
		current = current.Previous()
	}
	slices.Reverse(buckets)
	return buckets
}

var ErrInvalidDate = errors.New("invalid date")

var dateLayouts = []string{
	"2006-01-02",
	"2006-01",
	time.RFC3339,
}

// ParseDate parses the start/end dates accepted in comparison mode.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
}
