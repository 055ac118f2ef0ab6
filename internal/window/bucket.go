// Package window generates the (year, month) buckets attendance is queried for.
package window

import (
	"fmt"
	"time"
)

// Bucket is a single calendar month.
type Bucket struct {
	Year  int
	Month time.Month
}

// BucketOf returns the bucket containing t.
func BucketOf(t time.Time) Bucket {
	return Bucket{Year: t.Year(), Month: t.Month()}
}

// MM returns the zero-padded month number, e.g. "03".
func (b Bucket) MM() string {
	return fmt.Sprintf("%02d", int(b.Month))
}

// YYYY returns the year as used by the statistics API.
func (b Bucket) YYYY() string {
	return fmt.Sprintf("%04d", b.Year)
}

// Label is the axis label of the bucket.
func (b Bucket) Label() string {
	return b.MM()
}

func (b Bucket) String() string {
	return b.YYYY() + "-" + b.MM()
}

// Previous returns the month before b, wrapping January to December of the previous year.
func (b Bucket) Previous() Bucket {
	month := b.Month - 1
	year := b.Year
	if month == 0 {
		month = time.December
		year--
	}
	return Bucket{Year: year, Month: month}
}

// Labels returns the labels of buckets in the same order.
func Labels(buckets []Bucket) []string {
	labels := make([]string, 0, len(buckets))
	for _, b := range buckets {
		labels = append(labels, b.Label())
	}
	return labels
}
