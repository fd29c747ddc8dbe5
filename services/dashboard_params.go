package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/sahilchouksey/dashboard-api/utils/stats"
)

// UpdatesTab selects which enrollments the updates listing shows
type UpdatesTab string

const (
	TabEnrolled     UpdatesTab = "enrolled"
	TabSubscription UpdatesTab = "subscription"
)

// ParseUpdatesTab maps the tab query value, defaulting to enrolled
func ParseUpdatesTab(raw string) (UpdatesTab, bool) {
	switch UpdatesTab(raw) {
	case "", TabEnrolled:
		return TabEnrolled, true
	case TabSubscription:
		return TabSubscription, true
	default:
		return "", false
	}
}

// Segment is one of the monthly report layouts
type Segment string

const (
	SegmentEarnings Segment = "earnings"
	SegmentTopics   Segment = "topics"
	SegmentEnrolled Segment = "enrolled"
)

// ParseSegment validates the segment query value
func ParseSegment(raw string) (Segment, bool) {
	switch s := Segment(raw); s {
	case SegmentEarnings, SegmentTopics, SegmentEnrolled:
		return s, true
	default:
		return "", false
	}
}

// ReportMonth is a calendar month filter for the segment report
type ReportMonth struct {
	Year  int
	Month int
}

// ParseReportMonth parses a YYYY-MM value
func ParseReportMonth(raw string) (*ReportMonth, error) {
	t, err := time.Parse("2006-01", raw)
	if err != nil {
		return nil, fmt.Errorf("invalid month %q: expected YYYY-MM", raw)
	}
	return &ReportMonth{Year: t.Year(), Month: int(t.Month())}, nil
}

// Label renders "Jan 2024", or "All Time" for a nil month
func (m *ReportMonth) Label() string {
	if m == nil {
		return "All Time"
	}
	return fmt.Sprintf("%s %d", stats.MonthName(m.Month), m.Year)
}

// FileLabel is Label with spaces replaced for use in a file name
func (m *ReportMonth) FileLabel() string {
	return strings.ReplaceAll(m.Label(), " ", "_")
}

// ValidateMonth checks a YYYY-MM filter value
func ValidateMonth(raw string) error {
	_, err := ParseReportMonth(raw)
	return err
}

// ValidateDate checks a YYYY-MM-DD filter value
func ValidateDate(raw string) error {
	if _, err := time.Parse("2006-01-02", raw); err != nil {
		return fmt.Errorf("invalid date %q: expected YYYY-MM-DD", raw)
	}
	return nil
}
