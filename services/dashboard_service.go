package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/sahilchouksey/dashboard-api/model"
	queryHelper "github.com/sahilchouksey/dashboard-api/utils/query"
	"github.com/sahilchouksey/dashboard-api/utils/stats"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

var (
	updatesEnrolledStatuses = statusList(model.PaymentStatusCompleted, model.PaymentStatusActive, model.PaymentStatusPending, model.PaymentStatusProcessing)
	revenueStatuses         = statusList(model.PaymentStatusCompleted, model.PaymentStatusPaid, model.PaymentStatusSubscription)
	inProgressStatuses      = statusList(model.PaymentStatusPending, model.PaymentStatusProcessing, model.PaymentStatusActive)
)

func statusList(statuses ...model.PaymentStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

// DashboardService computes the admin dashboard statistics and reports
type DashboardService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{
		db:  db,
		now: time.Now,
	}
}

// WithClock replaces the clock used for subscription windows and year defaults
func (s *DashboardService) WithClock(now func() time.Time) *DashboardService {
	s.now = now
	return s
}

// Now returns the service clock's current time
func (s *DashboardService) Now() time.Time {
	return s.now()
}

// Overview is the flat statistics object shown on the dashboard landing page
type Overview struct {
	TotalUsers            int64  `json:"totalUsers"`
	VerifiedUsers         int64  `json:"verifiedUsers"`
	TotalTopics           int64  `json:"totalTopics"`
	TotalEnrollments      int64  `json:"totalEnrollments"`
	EnrolledTopics        int64  `json:"enrolledTopics"`
	CompletedTopics       int64  `json:"completedTopics"`
	TopicsInProgress      int64  `json:"topicsInProgress"`
	TotalWatchTime        string `json:"totalWatchTime"`
	TotalWatchTimeSeconds int64  `json:"totalWatchTimeSeconds"`
	NewUsersThisMonth     int64  `json:"newUsersThisMonth"`
	EnrollmentsThisMonth  int64  `json:"enrollmentsThisMonth"`
	UserGrowth            string `json:"userGrowth"`
	EnrollmentGrowth      string `json:"enrollmentGrowth"`
	CompletionRate        string `json:"completionRate"`
	AverageRating         string `json:"averageRating"`
}

type monthComparison struct {
	CurrentMonth int64
	LastMonth    int64
}

// GetOverview runs the independent aggregates concurrently and combines them
func (s *DashboardService) GetOverview(ctx context.Context) (*Overview, error) {
	var (
		users struct {
			TotalUsers    int64
			VerifiedUsers int64
		}
		topics struct {
			TotalTopics int64
		}
		enrollments struct {
			TotalEnrollments int64
			CompletedTopics  int64
			TopicsInProgress int64
		}
		watch struct {
			TotalWatchTimeSeconds int64
		}
		newUsers struct {
			NewUsersThisMonth int64
		}
		newEnrollments struct {
			EnrollmentsThisMonth int64
		}
		userGrowth       monthComparison
		enrollmentGrowth monthComparison
		completion       struct {
			Total     int64
			Completed int64
		}
		rating struct {
			AverageRating float64
		}
	)

	g, gctx := errgroup.WithContext(ctx)
	run := func(what string, dest interface{}, query string, args ...interface{}) {
		g.Go(func() error {
			if err := s.db.WithContext(gctx).Raw(query, args...).Scan(dest).Error; err != nil {
				return fmt.Errorf("failed to %s: %w", what, err)
			}
			return nil
		})
	}

	run("count users", &users, `
		SELECT COUNT(*) AS total_users,
			COUNT(CASE WHEN is_verified = true THEN 1 END) AS verified_users
		FROM users`)
	run("count topics", &topics, `
		SELECT COUNT(*) AS total_topics FROM topics WHERE status = ?`, string(model.TopicStatusPublished))
	run("count enrollments", &enrollments, `
		SELECT COUNT(*) AS total_enrollments,
			COUNT(DISTINCT CASE WHEN payment_status = ? THEN topic_id END) AS completed_topics,
			COUNT(DISTINCT CASE WHEN payment_status IN ? THEN topic_id END) AS topics_in_progress
		FROM user_topics
		WHERE payment_status IS NOT NULL`, string(model.PaymentStatusCompleted), inProgressStatuses)
	run("sum watch time", &watch, `
		SELECT COALESCE(SUM(watch_time), 0)::bigint AS total_watch_time_seconds FROM user_topic_progress`)
	run("count new users", &newUsers, `
		SELECT COUNT(*) AS new_users_this_month FROM users
		WHERE DATE_TRUNC('month', created_at) = DATE_TRUNC('month', CURRENT_TIMESTAMP)`)
	run("count new enrollments", &newEnrollments, `
		SELECT COUNT(*) AS enrollments_this_month FROM user_topics
		WHERE DATE_TRUNC('month', enrolled_at) = DATE_TRUNC('month', CURRENT_TIMESTAMP)`)
	run("compare user months", &userGrowth, `
		SELECT
			COUNT(CASE WHEN DATE_TRUNC('month', created_at) = DATE_TRUNC('month', CURRENT_TIMESTAMP) THEN 1 END) AS current_month,
			COUNT(CASE WHEN DATE_TRUNC('month', created_at) = DATE_TRUNC('month', CURRENT_TIMESTAMP - INTERVAL '1 month') THEN 1 END) AS last_month
		FROM users`)
	run("compare enrollment months", &enrollmentGrowth, `
		SELECT
			COUNT(CASE WHEN DATE_TRUNC('month', enrolled_at) = DATE_TRUNC('month', CURRENT_TIMESTAMP) THEN 1 END) AS current_month,
			COUNT(CASE WHEN DATE_TRUNC('month', enrolled_at) = DATE_TRUNC('month', CURRENT_TIMESTAMP - INTERVAL '1 month') THEN 1 END) AS last_month
		FROM user_topics`)
	run("compute completion rate", &completion, `
		SELECT COUNT(DISTINCT topic_id) AS total,
			COUNT(DISTINCT CASE WHEN payment_status = ? THEN topic_id END) AS completed
		FROM user_topics
		WHERE payment_status IS NOT NULL`, string(model.PaymentStatusCompleted))
	run("average ratings", &rating, `
		SELECT COALESCE(AVG(rating), 0)::float8 AS average_rating FROM topic_reviews WHERE is_approved = true`)

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Overview{
		TotalUsers:            users.TotalUsers,
		VerifiedUsers:         users.VerifiedUsers,
		TotalTopics:           topics.TotalTopics,
		TotalEnrollments:      enrollments.TotalEnrollments,
		EnrolledTopics:        enrollments.TotalEnrollments,
		CompletedTopics:       enrollments.CompletedTopics,
		TopicsInProgress:      enrollments.TopicsInProgress,
		TotalWatchTime:        stats.WatchTime(watch.TotalWatchTimeSeconds),
		TotalWatchTimeSeconds: watch.TotalWatchTimeSeconds,
		NewUsersThisMonth:     newUsers.NewUsersThisMonth,
		EnrollmentsThisMonth:  newEnrollments.EnrollmentsThisMonth,
		UserGrowth:            stats.Growth(userGrowth.CurrentMonth, userGrowth.LastMonth),
		EnrollmentGrowth:      stats.Growth(enrollmentGrowth.CurrentMonth, enrollmentGrowth.LastMonth),
		CompletionRate:        stats.Ratio(completion.Completed, completion.Total),
		AverageRating:         stats.OneDecimal(rating.AverageRating),
	}, nil
}

// UpdatesQuery are the filters of the enrollment updates listing
type UpdatesQuery struct {
	Tab      UpdatesTab
	Month    string
	FromDate string
	ToDate   string
	Page     int
	Limit    int
}

// offset is the row offset of the page, saturating instead of overflowing
func (q UpdatesQuery) offset() int64 {
	if q.Page <= 1 || q.Limit <= 0 {
		return 0
	}
	skipped, limit := int64(q.Page-1), int64(q.Limit)
	if skipped > math.MaxInt64/limit {
		return math.MaxInt64
	}
	return skipped * limit
}

// filter builds the WHERE conditions. A date range wins over a month, and
// a range needs both ends.
func (q UpdatesQuery) filter() *queryHelper.Filter {
	f := queryHelper.NewFilter()
	if q.Tab == TabSubscription {
		f.Where("ut.payment_status = ?", string(model.PaymentStatusSubscription))
	} else {
		f.Where("ut.payment_status IN ?", updatesEnrolledStatuses)
	}

	switch {
	case q.FromDate != "" && q.ToDate != "":
		f.Where("DATE(ut.enrolled_at) BETWEEN ? AND ?", q.FromDate, q.ToDate)
	case q.Month != "":
		f.Where("TO_CHAR(ut.enrolled_at, 'YYYY-MM') = ?", q.Month)
	}
	return f
}

// EnrollmentUpdate is one row of the updates listing
type EnrollmentUpdate struct {
	ID               uint       `json:"id"`
	UserID           uint       `json:"userId"`
	UserName         string     `json:"userName"`
	UserEmail        string     `json:"userEmail"`
	TopicID          uint       `json:"topicId"`
	TopicTitle       string     `json:"topicTitle"`
	PaymentStatus    string     `json:"paymentStatus"`
	EnrolledAt       *time.Time `json:"enrolledAt"`
	Progress         int        `json:"progress"`
	WatchTime        string     `json:"watchTime"`
	WatchTimeSeconds int64      `json:"watchTimeSeconds"`
	SubscriptionWindow
}

// UpdatesPage is one page of updates plus the total matching rows
type UpdatesPage struct {
	Items      []EnrollmentUpdate
	TotalCount int64
}

type updateRow struct {
	ID             uint
	UserID         uint
	UserName       *string
	UserEmail      *string
	TopicID        uint
	TopicTitle     *string
	PaymentStatus  string
	EnrolledAt     *time.Time
	TotalProgress  float64
	TotalWatchTime int64
	TotalCount     int64
}

// ListUpdates returns one page of enrollments, newest first. The total is
// taken from a window count in the same query.
func (s *DashboardService) ListUpdates(ctx context.Context, q UpdatesQuery) (*UpdatesPage, error) {
	f := q.filter()
	query := fmt.Sprintf(`
		SELECT
			ut.id,
			ut.user_id,
			u.name AS user_name,
			u.email AS user_email,
			ut.topic_id,
			t.title AS topic_title,
			ut.payment_status,
			ut.enrolled_at,
			COALESCE(utp.total_progress, 0)::float8 AS total_progress,
			COALESCE(utp.total_watch_time, 0)::bigint AS total_watch_time,
			COUNT(*) OVER() AS total_count
		FROM user_topics ut
		LEFT JOIN users u ON ut.user_id = u.id
		LEFT JOIN topics t ON ut.topic_id = t.id
		LEFT JOIN (
			SELECT user_id, topic_id, AVG(progress) AS total_progress, SUM(watch_time) AS total_watch_time
			FROM user_topic_progress
			GROUP BY user_id, topic_id
		) utp ON ut.user_id = utp.user_id AND ut.topic_id = utp.topic_id
		%s
		ORDER BY ut.enrolled_at DESC
		LIMIT ? OFFSET ?`, f.WhereClause())

	var rows []updateRow
	args := f.ArgsWith(q.Limit, q.offset())
	if err := s.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list enrollment updates: %w", err)
	}

	now := s.now()
	page := &UpdatesPage{Items: make([]EnrollmentUpdate, 0, len(rows))}
	if len(rows) > 0 {
		page.TotalCount = rows[0].TotalCount
	}
	for _, r := range rows {
		page.Items = append(page.Items, r.toUpdate(now))
	}
	return page, nil
}

func (r updateRow) toUpdate(now time.Time) EnrollmentUpdate {
	return EnrollmentUpdate{
		ID:                 r.ID,
		UserID:             r.UserID,
		UserName:           orDefault(r.UserName, "N/A"),
		UserEmail:          orDefault(r.UserEmail, "N/A"),
		TopicID:            r.TopicID,
		TopicTitle:         orDefault(r.TopicTitle, "Untitled Topic"),
		PaymentStatus:      r.PaymentStatus,
		EnrolledAt:         utcPtr(r.EnrolledAt),
		Progress:           int(math.Floor(r.TotalProgress + 0.5)),
		WatchTime:          stats.WatchTime(r.TotalWatchTime),
		WatchTimeSeconds:   r.TotalWatchTime,
		SubscriptionWindow: SubscriptionValidity(r.EnrolledAt, r.PaymentStatus, now),
	}
}

func orDefault(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}

// MonthlyValue is one point of the earnings chart
type MonthlyValue struct {
	Month string  `json:"month"`
	Value float64 `json:"value"`
}

type monthlyEarningsRow struct {
	MonthNumber   int
	TotalEarnings float64
}

// MonthlyEarnings sums topic prices of paid enrollments per month of year,
// for the first months months of that year
func (s *DashboardService) MonthlyEarnings(ctx context.Context, year, months int) ([]MonthlyValue, error) {
	var rows []monthlyEarningsRow
	err := s.db.WithContext(ctx).Raw(`
		SELECT
			EXTRACT(MONTH FROM ut.enrolled_at)::int AS month_number,
			COALESCE(SUM(t.price), 0)::float8 AS total_earnings
		FROM user_topics ut
		LEFT JOIN topics t ON ut.topic_id = t.id
		WHERE ut.payment_status IN ?
			AND EXTRACT(YEAR FROM ut.enrolled_at) = ?
			AND EXTRACT(MONTH FROM ut.enrolled_at) <= ?
		GROUP BY month_number
		ORDER BY month_number ASC`, revenueStatuses, year, months).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate monthly earnings: %w", err)
	}

	byMonth := make(map[int]float64, len(rows))
	for _, r := range rows {
		byMonth[r.MonthNumber] = r.TotalEarnings
	}
	return earningsSeries(byMonth, months), nil
}

// earningsSeries is dense: one entry per month, zero-filled
func earningsSeries(byMonth map[int]float64, months int) []MonthlyValue {
	out := make([]MonthlyValue, 0, months)
	for m := 1; m <= months; m++ {
		out = append(out, MonthlyValue{
			Month: stats.MonthName(m),
			Value: stats.RoundHalfUp(byMonth[m], 2),
		})
	}
	return out
}

// MonthlyGrowth is one row of the growth report
type MonthlyGrowth struct {
	Month       string  `json:"month"`
	Users       int64   `json:"users"`
	Enrollments int64   `json:"enrollments"`
	Revenue     float64 `json:"revenue"`
	Growth      string  `json:"growth"`
}

type growthRow struct {
	MonthNumber int
	Users       int64
	Enrollments int64
	Revenue     float64
}

// MonthlyGrowthReport merges per-month new users with paid enrollments and
// revenue, so a month with only one of them still shows up
func (s *DashboardService) MonthlyGrowthReport(ctx context.Context, year, months int) ([]MonthlyGrowth, error) {
	var rows []growthRow
	err := s.db.WithContext(ctx).Raw(`
		WITH monthly_stats AS (
			SELECT
				EXTRACT(MONTH FROM ut.enrolled_at)::int AS month_number,
				COUNT(*) AS enrollments,
				COALESCE(SUM(t.price), 0) AS revenue
			FROM user_topics ut
			LEFT JOIN topics t ON ut.topic_id = t.id
			WHERE ut.payment_status IN @statuses
				AND EXTRACT(YEAR FROM ut.enrolled_at) = @year
				AND EXTRACT(MONTH FROM ut.enrolled_at) <= @months
			GROUP BY 1
		),
		monthly_users AS (
			SELECT
				EXTRACT(MONTH FROM created_at)::int AS month_number,
				COUNT(*) AS new_users
			FROM users
			WHERE EXTRACT(YEAR FROM created_at) = @year
				AND EXTRACT(MONTH FROM created_at) <= @months
			GROUP BY 1
		)
		SELECT
			COALESCE(ms.month_number, mu.month_number) AS month_number,
			COALESCE(mu.new_users, 0) AS users,
			COALESCE(ms.enrollments, 0) AS enrollments,
			COALESCE(ms.revenue, 0)::float8 AS revenue
		FROM monthly_stats ms
		FULL OUTER JOIN monthly_users mu ON ms.month_number = mu.month_number
		ORDER BY month_number ASC`,
		map[string]interface{}{"statuses": revenueStatuses, "year": year, "months": months},
	).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate monthly growth: %w", err)
	}

	byMonth := make(map[int]growthRow, len(rows))
	for _, r := range rows {
		byMonth[r.MonthNumber] = r
	}
	return growthSeries(byMonth, months), nil
}

// growthSeries is dense like earningsSeries. The first month has no
// predecessor in the window and always reports "N/A".
func growthSeries(byMonth map[int]growthRow, months int) []MonthlyGrowth {
	out := make([]MonthlyGrowth, 0, months)
	var previous int64
	for m := 1; m <= months; m++ {
		r := byMonth[m]
		growth := "N/A"
		if m > 1 {
			growth = stats.Growth(r.Enrollments, previous)
		}
		out = append(out, MonthlyGrowth{
			Month:       stats.MonthName(m),
			Users:       r.Users,
			Enrollments: r.Enrollments,
			Revenue:     stats.RoundHalfUp(r.Revenue, 2),
			Growth:      growth,
		})
		previous = r.Enrollments
	}
	return out
}
