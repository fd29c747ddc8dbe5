// Package csvexport renders segment reports as CSV downloads.
//
// Text columns are wrapped in double quotes as-is. Nothing inside them is
// escaped, so a value containing a double quote yields a line strict CSV
// readers reject.
package csvexport

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sahilchouksey/dashboard-api/services"
)

// Headers per segment
const (
	EarningsHeader = "User ID,User Name,User Email,Topic ID,Topic Title,Amount,Transaction Status,Payment Status,Date"
	TopicsHeader   = "Topic ID,Topic Title,Description,Price,Total Enrollments,Completed Enrollments,Average Progress"
	EnrolledHeader = "User ID,User Name,User Email,Topic ID,Topic Title,Payment Status,Enrollment Status,Progress,Watch Time (seconds),Enrolled At"
)

// ContentType of every rendered report
const ContentType = "text/csv"

// Filename is "<segment>_report_<Mon_YYYY|All_Time>.csv"
func Filename(segment services.Segment, month *services.ReportMonth) string {
	return fmt.Sprintf("%s_report_%s.csv", segment, month.FileLabel())
}

// Render serializes the rows of report's segment
func Render(report *services.SegmentReport) (string, error) {
	var b strings.Builder
	switch report.Segment {
	case services.SegmentEarnings:
		b.WriteString(EarningsHeader + "\n")
		for _, r := range report.Earnings {
			fmt.Fprintf(&b, "%d,%s,%s,%d,%s,%s,%s,%s,%s\n",
				r.UserID, quote(r.UserName), quote(r.UserEmail), r.TopicID, quote(r.TopicTitle),
				number(r.Amount), r.TransactionStatus, r.PaymentStatus, date(r.Date))
		}
	case services.SegmentTopics:
		b.WriteString(TopicsHeader + "\n")
		for _, r := range report.Topics {
			fmt.Fprintf(&b, "%d,%s,%s,%s,%d,%d,%s\n",
				r.TopicID, quote(r.TopicTitle), quote(deref(r.Description)), number(r.Price),
				r.TotalEnrollments, r.CompletedEnrollments, r.AverageProgress)
		}
	case services.SegmentEnrolled:
		b.WriteString(EnrolledHeader + "\n")
		for _, r := range report.Enrolled {
			fmt.Fprintf(&b, "%d,%s,%s,%d,%s,%s,%s,%s,%d,%s\n",
				r.UserID, quote(r.UserName), quote(r.UserEmail), r.TopicID, quote(r.TopicTitle),
				r.PaymentStatus, r.EnrollmentStatus, r.Progress, r.WatchTime, date(r.EnrolledAt))
		}
	default:
		return "", fmt.Errorf("csvexport: unknown segment %q", report.Segment)
	}
	return b.String(), nil
}

func quote(s string) string {
	return `"` + s + `"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// number drops trailing zeros, 499.00 renders as 499
func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func date(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
