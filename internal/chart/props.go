package chart

import (
	"errors"
	"fmt"
	"time"

	"github.com/at-ishikawa/attendchart/internal/series"
	"github.com/at-ishikawa/attendchart/internal/window"
)

var ErrMissingRange = errors.New("start and end are required for compareBar")

// ParseProps builds props from user input. The view is resolved by ParseView.
// Dates are only parsed for ViewCompareBar, where both are required.
func ParseProps(subject, classNumber, view, start, end string) (Props, error) {
	props := Props{
		Subject:     subject,
		ClassNumber: classNumber,
		View:        ParseView(view),
	}
	if props.View != ViewCompareBar {
		return props, nil
	}

	if start == "" || end == "" {
		return Props{}, ErrMissingRange
	}
	var err error
	if props.Start, err = window.ParseDate(start); err != nil {
		return Props{}, fmt.Errorf("start > %w", err)
	}
	if props.End, err = window.ParseDate(end); err != nil {
		return Props{}, fmt.Errorf("end > %w", err)
	}
	return props, nil
}

// IsInvalidInput reports whether err was caused by props the caller can fix.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrMissingRange) ||
		errors.Is(err, window.ErrInvalidDate)
}

// Request resolves the series request of props at now.
func (p Props) Request(now time.Time) series.Request {
	return series.Request{
		Subject:     p.Subject,
		ClassNumber: p.ClassNumber,
		Buckets: window.Generate(window.Options{
			Mode:  window.ModeForView(string(p.View)),
			Start: p.Start,
			End:   p.End,
			Now:   now,
		}),
	}
}
