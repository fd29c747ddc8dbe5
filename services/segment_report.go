package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sahilchouksey/dashboard-api/model"
	queryHelper "github.com/sahilchouksey/dashboard-api/utils/query"
	"github.com/sahilchouksey/dashboard-api/utils/stats"
	"golang.org/x/sync/errgroup"
)

var (
	earningsRowStatuses   = statusList(model.PaymentStatusCompleted, model.PaymentStatusPaid, model.PaymentStatusPending)
	earningsTotalStatuses = statusList(model.PaymentStatusCompleted, model.PaymentStatusPaid, model.PaymentStatusPending, model.PaymentStatusSubscription)
	settledStatuses       = statusList(model.PaymentStatusCompleted, model.PaymentStatusPaid)
	enrolledRowStatuses   = statusList(model.PaymentStatusCompleted, model.PaymentStatusPaid, model.PaymentStatusPending, model.PaymentStatusActive, model.PaymentStatusProcessing)
	enrolledTotalStatuses = statusList(model.PaymentStatusCompleted, model.PaymentStatusPaid, model.PaymentStatusPending, model.PaymentStatusActive, model.PaymentStatusProcessing, model.PaymentStatusSubscription)
)

// ReportTotals are the headline numbers of a segment report
type ReportTotals struct {
	TotalPaymentTransactions int64 `json:"totalPaymentTransactions"`
	TotalTopics              int64 `json:"totalTopics"`
	TotalEnrolled            int64 `json:"totalEnrolled"`
	TotalSubscribed          int64 `json:"totalSubscribed"`
}

// EarningsReportRow is one payment transaction
type EarningsReportRow struct {
	UserID            uint       `json:"userId"`
	UserName          string     `json:"userName"`
	UserEmail         string     `json:"userEmail"`
	TopicID           uint       `json:"topicId"`
	TopicTitle        string     `json:"topicTitle"`
	Amount            float64    `json:"amount"`
	TransactionStatus string     `json:"transactionStatus"`
	PaymentStatus     string     `json:"paymentStatus"`
	Date              *time.Time `json:"date"`
}

// TopicReportRow is one topic with its enrollment counts
type TopicReportRow struct {
	TopicID              uint    `json:"topicId"`
	TopicTitle           string  `json:"topicTitle"`
	Description          *string `json:"description"`
	Price                float64 `json:"price"`
	TotalEnrollments     int64   `json:"totalEnrollments"`
	CompletedEnrollments int64   `json:"completedEnrollments"`
	AverageProgress      string  `json:"averageProgress"`
}

// EnrolledReportRow is one enrollment with its progress
type EnrolledReportRow struct {
	UserID           uint       `json:"userId"`
	UserName         string     `json:"userName"`
	UserEmail        string     `json:"userEmail"`
	TopicID          uint       `json:"topicId"`
	TopicTitle       string     `json:"topicTitle"`
	PaymentStatus    string     `json:"paymentStatus"`
	EnrollmentStatus string     `json:"enrollmentStatus"`
	Progress         string     `json:"progress"`
	WatchTime        int64      `json:"watchTime"`
	EnrolledAt       *time.Time `json:"enrolledAt"`
}

// SegmentReport is the result of one segment query. Exactly one of the row
// slices is populated, matching Segment.
type SegmentReport struct {
	Segment Segment `json:"segment"`
	Month   string  `json:"month"`
	ReportTotals
	ReportData interface{} `json:"reportData"`

	Earnings []EarningsReportRow `json:"-"`
	Topics   []TopicReportRow    `json:"-"`
	Enrolled []EnrolledReportRow `json:"-"`
}

// TransactionStatus classifies an enrollment for the earnings report
func TransactionStatus(paymentStatus string) string {
	switch model.PaymentStatus(paymentStatus) {
	case model.PaymentStatusCompleted, model.PaymentStatusPaid:
		return "Success"
	case model.PaymentStatusPending:
		return "Pending"
	default:
		return "Other"
	}
}

// EnrollmentStatus classifies an enrollment for the enrolled report
func EnrollmentStatus(paymentStatus string) string {
	switch model.PaymentStatus(paymentStatus) {
	case model.PaymentStatusCompleted, model.PaymentStatusPaid:
		return "Active"
	case model.PaymentStatusPending:
		return "Pending"
	default:
		return "Other"
	}
}

// monthFilter restricts enrollments to one calendar month. A nil month
// yields an empty filter.
func monthFilter(column string, month *ReportMonth) *queryHelper.Filter {
	f := queryHelper.NewFilter()
	if month != nil {
		f.Where(fmt.Sprintf("EXTRACT(YEAR FROM %s) = ?", column), month.Year)
		f.Where(fmt.Sprintf("EXTRACT(MONTH FROM %s) = ?", column), month.Month)
	}
	return f
}

// GetSegmentReport runs the row query and the totals query of segment concurrently
func (s *DashboardService) GetSegmentReport(ctx context.Context, segment Segment, month *ReportMonth) (*SegmentReport, error) {
	report := &SegmentReport{Segment: segment, Month: month.Label()}

	g, gctx := errgroup.WithContext(ctx)
	switch segment {
	case SegmentEarnings:
		g.Go(func() error {
			rows, err := s.earningsRows(gctx, month)
			report.Earnings = rows
			return err
		})
		g.Go(func() error {
			return s.earningsTotals(gctx, month, &report.ReportTotals)
		})
	case SegmentTopics:
		g.Go(func() error {
			rows, err := s.topicRows(gctx, month)
			report.Topics = rows
			return err
		})
		g.Go(func() error {
			return s.topicTotals(gctx, month, &report.ReportTotals)
		})
	case SegmentEnrolled:
		g.Go(func() error {
			rows, err := s.enrolledRows(gctx, month)
			report.Enrolled = rows
			return err
		})
		g.Go(func() error {
			return s.enrolledTotals(gctx, month, &report.ReportTotals)
		})
	default:
		return nil, fmt.Errorf("unknown segment %q", segment)
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	switch segment {
	case SegmentEarnings:
		report.ReportData = report.Earnings
	case SegmentTopics:
		report.ReportData = report.Topics
	case SegmentEnrolled:
		report.ReportData = report.Enrolled
	}
	return report, nil
}

type earningsRow struct {
	UserID        uint
	UserName      string
	UserEmail     string
	TopicID       uint
	TopicTitle    string
	PaymentStatus string
	EnrolledAt    *time.Time
	Amount        float64
}

func (s *DashboardService) earningsRows(ctx context.Context, month *ReportMonth) ([]EarningsReportRow, error) {
	f := monthFilter("ut.enrolled_at", month)
	query := fmt.Sprintf(`
		SELECT
			u.id AS user_id,
			u.name AS user_name,
			u.email AS user_email,
			t.id AS topic_id,
			t.title AS topic_title,
			ut.payment_status,
			ut.enrolled_at,
			COALESCE(t.price, 0)::float8 AS amount
		FROM user_topics ut
		JOIN users u ON ut.user_id = u.id
		JOIN topics t ON ut.topic_id = t.id
		WHERE ut.payment_status IN ?
		%s
		ORDER BY ut.enrolled_at DESC`, f.AndClause())

	var rows []earningsRow
	args := append([]interface{}{earningsRowStatuses}, f.Args()...)
	if err := s.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query earnings report: %w", err)
	}

	out := make([]EarningsReportRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, EarningsReportRow{
			UserID:            r.UserID,
			UserName:          r.UserName,
			UserEmail:         r.UserEmail,
			TopicID:           r.TopicID,
			TopicTitle:        r.TopicTitle,
			Amount:            r.Amount,
			TransactionStatus: TransactionStatus(r.PaymentStatus),
			PaymentStatus:     r.PaymentStatus,
			Date:              utcPtr(r.EnrolledAt),
		})
	}
	return out, nil
}

func (s *DashboardService) earningsTotals(ctx context.Context, month *ReportMonth, totals *ReportTotals) error {
	f := monthFilter("ut.enrolled_at", month)
	query := fmt.Sprintf(`
		SELECT
			COUNT(*) AS total_payment_transactions,
			COUNT(DISTINCT ut.topic_id) AS total_topics,
			COUNT(CASE WHEN ut.payment_status IN ? THEN 1 END) AS total_enrolled,
			COUNT(CASE WHEN ut.payment_status = ? THEN 1 END) AS total_subscribed
		FROM user_topics ut
		WHERE ut.payment_status IN ?
		%s`, f.AndClause())

	args := append([]interface{}{earningsRowStatuses, string(model.PaymentStatusSubscription), earningsTotalStatuses}, f.Args()...)
	if err := s.db.WithContext(ctx).Raw(query, args...).Scan(totals).Error; err != nil {
		return fmt.Errorf("failed to total earnings report: %w", err)
	}
	return nil
}

type topicRow struct {
	TopicID              uint
	TopicTitle           string
	Description          *string
	Price                float64
	TotalEnrollments     int64
	CompletedEnrollments int64
	AverageProgress      float64
}

// topicRows lists every topic. The month narrows the joined enrollments only.
func (s *DashboardService) topicRows(ctx context.Context, month *ReportMonth) ([]TopicReportRow, error) {
	f := monthFilter("ut.enrolled_at", month)
	query := fmt.Sprintf(`
		SELECT
			t.id AS topic_id,
			t.title AS topic_title,
			t.description,
			COALESCE(t.price, 0)::float8 AS price,
			COUNT(DISTINCT ut.user_id) FILTER (WHERE ut.payment_status IN ?) AS total_enrollments,
			COUNT(DISTINCT ut.user_id) FILTER (WHERE ut.payment_status IN ?) AS completed_enrollments,
			COALESCE(AVG(utp.progress), 0)::float8 AS average_progress
		FROM topics t
		LEFT JOIN user_topics ut ON t.id = ut.topic_id %s
		LEFT JOIN user_topic_progress utp ON t.id = utp.topic_id
		GROUP BY t.id, t.title, t.description, t.price
		ORDER BY total_enrollments DESC`, f.AndClause())

	var rows []topicRow
	args := append([]interface{}{earningsTotalStatuses, settledStatuses}, f.Args()...)
	if err := s.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query topics report: %w", err)
	}

	out := make([]TopicReportRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, TopicReportRow{
			TopicID:              r.TopicID,
			TopicTitle:           r.TopicTitle,
			Description:          r.Description,
			Price:                r.Price,
			TotalEnrollments:     r.TotalEnrollments,
			CompletedEnrollments: r.CompletedEnrollments,
			AverageProgress:      stats.OneDecimal(r.AverageProgress),
		})
	}
	return out, nil
}

func (s *DashboardService) topicTotals(ctx context.Context, month *ReportMonth, totals *ReportTotals) error {
	f := monthFilter("ut.enrolled_at", month)
	query := fmt.Sprintf(`
		SELECT
			COUNT(DISTINCT t.id) AS total_topics,
			COUNT(DISTINCT ut.user_id) FILTER (WHERE ut.payment_status IN ?) AS total_enrolled,
			COUNT(DISTINCT CASE WHEN ut.payment_status IN ? THEN ut.id END) AS total_payment_transactions,
			COUNT(DISTINCT CASE WHEN ut.payment_status = ? THEN ut.user_id END) AS total_subscribed
		FROM topics t
		LEFT JOIN user_topics ut ON t.id = ut.topic_id %s`, f.AndClause())

	args := append([]interface{}{earningsRowStatuses, settledStatuses, string(model.PaymentStatusSubscription)}, f.Args()...)
	if err := s.db.WithContext(ctx).Raw(query, args...).Scan(totals).Error; err != nil {
		return fmt.Errorf("failed to total topics report: %w", err)
	}
	return nil
}

type enrolledRow struct {
	UserID        uint
	UserName      string
	UserEmail     string
	TopicID       uint
	TopicTitle    string
	PaymentStatus string
	EnrolledAt    *time.Time
	Progress      float64
	WatchTime     int64
}

func (s *DashboardService) enrolledRows(ctx context.Context, month *ReportMonth) ([]EnrolledReportRow, error) {
	f := monthFilter("ut.enrolled_at", month)
	query := fmt.Sprintf(`
		SELECT
			u.id AS user_id,
			u.name AS user_name,
			u.email AS user_email,
			t.id AS topic_id,
			t.title AS topic_title,
			ut.payment_status,
			ut.enrolled_at,
			COALESCE(utp.progress, 0)::float8 AS progress,
			COALESCE(utp.watch_time, 0)::bigint AS watch_time
		FROM user_topics ut
		JOIN users u ON ut.user_id = u.id
		JOIN topics t ON ut.topic_id = t.id
		LEFT JOIN user_topic_progress utp ON ut.user_id = utp.user_id AND ut.topic_id = utp.topic_id
		WHERE ut.payment_status IN ?
		%s
		ORDER BY ut.enrolled_at DESC`, f.AndClause())

	var rows []enrolledRow
	args := append([]interface{}{enrolledRowStatuses}, f.Args()...)
	if err := s.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query enrolled report: %w", err)
	}

	out := make([]EnrolledReportRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, EnrolledReportRow{
			UserID:           r.UserID,
			UserName:         r.UserName,
			UserEmail:        r.UserEmail,
			TopicID:          r.TopicID,
			TopicTitle:       r.TopicTitle,
			PaymentStatus:    r.PaymentStatus,
			EnrollmentStatus: EnrollmentStatus(r.PaymentStatus),
			Progress:         stats.OneDecimal(r.Progress),
			WatchTime:        r.WatchTime,
			EnrolledAt:       utcPtr(r.EnrolledAt),
		})
	}
	return out, nil
}

func (s *DashboardService) enrolledTotals(ctx context.Context, month *ReportMonth, totals *ReportTotals) error {
	f := monthFilter("ut.enrolled_at", month)
	query := fmt.Sprintf(`
		SELECT
			COUNT(*) AS total_enrolled,
			COUNT(DISTINCT ut.topic_id) AS total_topics,
			COUNT(CASE WHEN ut.payment_status IN ? THEN 1 END) AS total_payment_transactions,
			COUNT(CASE WHEN ut.payment_status = ? THEN 1 END) AS total_subscribed
		FROM user_topics ut
		WHERE ut.payment_status IN ?
		%s`, f.AndClause())

	args := append([]interface{}{settledStatuses, string(model.PaymentStatusSubscription), enrolledTotalStatuses}, f.Args()...)
	if err := s.db.WithContext(ctx).Raw(query, args...).Scan(totals).Error; err != nil {
		return fmt.Errorf("failed to total enrolled report: %w", err)
	}
	return nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
