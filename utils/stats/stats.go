// Package stats holds the small amount of arithmetic and formatting the
// dashboard does on top of database aggregates.
package stats

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MonthNames are the short month labels used by every monthly series
var MonthNames = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// MonthName returns the short label for a 1-based month, or "" when out of range
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return MonthNames[month-1]
}

// RoundHalfUp rounds v to the given number of decimals with ties going up,
// which matches how the dashboard has always displayed numbers.
func RoundHalfUp(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Floor(v*p+0.5) / p
}

// OneDecimal formats v with exactly one decimal
func OneDecimal(v float64) string {
	return strconv.FormatFloat(RoundHalfUp(v, 1), 'f', 1, 64)
}

// SignedPercent formats a percentage with an explicit "+" for non-negative values
func SignedPercent(p float64) string {
	s := OneDecimal(p)
	if !strings.HasPrefix(s, "-") {
		s = "+" + s
	}
	return s + "%"
}

// Growth is the month-over-month change of current against previous.
// A zero baseline reports "+100.0%" when current is positive and "+0.0%" otherwise.
func Growth(current, previous int64) string {
	if previous > 0 {
		return SignedPercent(float64(current-previous) / float64(previous) * 100)
	}
	if current > 0 {
		return "+100.0%"
	}
	return "+0.0%"
}

// Ratio formats part/total as a one-decimal percentage, "0.0%" when total is zero
func Ratio(part, total int64) string {
	if total <= 0 {
		return "0.0%"
	}
	return OneDecimal(float64(part)/float64(total)*100) + "%"
}

// WatchTime renders seconds as "{hours}h {minutes}m"
func WatchTime(seconds int64) string {
	if seconds <= 0 {
		return "0h 0m"
	}
	return fmt.Sprintf("%dh %dm", seconds/3600, (seconds%3600)/60)
}

// ClampMonths parses the months query value. Missing, non-numeric or zero values
// mean 12; anything else is clamped into 1..12.
func ClampMonths(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n == 0 {
		return 12
	}
	if n < 1 {
		return 1
	}
	if n > 12 {
		return 12
	}
	return n
}

// ParseYear parses the year query value, falling back to current when missing,
// non-numeric or zero
func ParseYear(raw string, current int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n == 0 {
		return current
	}
	return n
}

// TotalPages is ceil(total/limit), zero when total is zero
func TotalPages(total int64, limit int) int {
	if limit < 1 || total <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// PageFlags reports whether a next and a previous page exist
func PageFlags(page, totalPages int) (hasNext, hasPrev bool) {
	return page < totalPages, page > 1
}
