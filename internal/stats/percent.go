package stats

import (
	"math"
	"strconv"
)

// AttendPercent returns tested/total as a percentage rounded to one decimal place.
// An undefined ratio (total of zero) is reported as 0.
func AttendPercent(total, tested int) float64 {
	if total == 0 {
		return 0
	}
	ratio := float64(tested) / float64(total) * 100
	if math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return 0
	}
	return math.Round(ratio*10) / 10
}

// FormatPercent renders p with one decimal place, or "0" when the ratio was undefined.
func FormatPercent(total int, p float64) string {
	if total == 0 {
		return "0"
	}
	return strconv.FormatFloat(p, 'f', 1, 64)
}
