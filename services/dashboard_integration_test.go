package services

import (
	"context"
	"testing"
	"time"

	"github.com/sahilchouksey/dashboard-api/model"
	"github.com/sahilchouksey/dashboard-api/utils/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

// seedDashboard creates two users, three topics and four 2024 enrollments
func seedDashboard(t *testing.T, db *gorm.DB) {
	t.Helper()

	users := []model.User{
		{Name: "Asha", Email: "asha@example.com", IsVerified: true, CreatedAt: day(2024, 1, 5)},
		{Name: "Ravi", Email: "ravi@example.com", CreatedAt: day(2024, 3, 1)},
	}
	require.NoError(t, db.Create(&users).Error)

	topics := []model.Topic{
		{Title: "Forensics", Price: 100, Status: model.TopicStatusPublished},
		{Title: "Networks, Part 1", Price: 50.5, Status: model.TopicStatusPublished},
		{Title: "Draft", Price: 10, Status: model.TopicStatusDraft},
	}
	require.NoError(t, db.Create(&topics).Error)

	enrollments := []model.UserTopic{
		{UserID: users[0].ID, TopicID: topics[0].ID, PaymentStatus: model.PaymentStatusCompleted, EnrolledAt: day(2024, 1, 10)},
		{UserID: users[0].ID, TopicID: topics[1].ID, PaymentStatus: model.PaymentStatusSubscription, EnrolledAt: day(2024, 2, 1)},
		{UserID: users[1].ID, TopicID: topics[0].ID, PaymentStatus: model.PaymentStatusPaid, EnrolledAt: day(2024, 3, 5)},
		{UserID: users[1].ID, TopicID: topics[1].ID, PaymentStatus: model.PaymentStatusPending, EnrolledAt: day(2024, 3, 20)},
	}
	require.NoError(t, db.Create(&enrollments).Error)

	progress := []model.UserTopicProgress{
		{UserID: users[0].ID, TopicID: topics[0].ID, Progress: 80, WatchTime: 3600},
		{UserID: users[1].ID, TopicID: topics[1].ID, Progress: 20, WatchTime: 600},
	}
	require.NoError(t, db.Create(&progress).Error)

	reviews := []model.TopicReview{
		{TopicID: topics[0].ID, UserID: users[0].ID, Rating: 5, IsApproved: true},
		{TopicID: topics[0].ID, UserID: users[1].ID, Rating: 4, IsApproved: true},
		{TopicID: topics[1].ID, UserID: users[1].ID, Rating: 1, IsApproved: false},
	}
	require.NoError(t, db.Create(&reviews).Error)
}

func TestDashboardAgainstPostgres(t *testing.T) {
	db := testutil.PostgresDB(t)
	seedDashboard(t, db)

	ctx := context.Background()
	now := day(2024, 6, 1)
	svc := NewDashboardService(db).WithClock(func() time.Time { return now })

	t.Run("overview", func(t *testing.T) {
		o, err := svc.GetOverview(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), o.TotalUsers)
		assert.Equal(t, int64(1), o.VerifiedUsers)
		assert.Equal(t, int64(2), o.TotalTopics)
		assert.Equal(t, int64(4), o.TotalEnrollments)
		assert.Equal(t, o.TotalEnrollments, o.EnrolledTopics)
		assert.Equal(t, int64(1), o.CompletedTopics)
		assert.Equal(t, int64(1), o.TopicsInProgress)
		assert.Equal(t, int64(4200), o.TotalWatchTimeSeconds)
		assert.Equal(t, "1h 10m", o.TotalWatchTime)
		assert.Equal(t, "50.0%", o.CompletionRate)
		assert.Equal(t, "4.5", o.AverageRating)
	})

	t.Run("earnings", func(t *testing.T) {
		series, err := svc.MonthlyEarnings(ctx, 2024, 4)
		require.NoError(t, err)
		assert.Equal(t, []MonthlyValue{
			{Month: "Jan", Value: 100},
			{Month: "Feb", Value: 50.5},
			{Month: "Mar", Value: 100},
			{Month: "Apr", Value: 0},
		}, series)
	})

	t.Run("growth", func(t *testing.T) {
		series, err := svc.MonthlyGrowthReport(ctx, 2024, 3)
		require.NoError(t, err)
		require.Len(t, series, 3)
		assert.Equal(t, MonthlyGrowth{Month: "Jan", Users: 1, Enrollments: 1, Revenue: 100, Growth: "N/A"}, series[0])
		assert.Equal(t, MonthlyGrowth{Month: "Feb", Users: 0, Enrollments: 1, Revenue: 50.5, Growth: "+0.0%"}, series[1])
		assert.Equal(t, MonthlyGrowth{Month: "Mar", Users: 1, Enrollments: 1, Revenue: 100, Growth: "+0.0%"}, series[2])
	})

	t.Run("updates", func(t *testing.T) {
		page, err := svc.ListUpdates(ctx, UpdatesQuery{Tab: TabEnrolled, Page: 1, Limit: 1})
		require.NoError(t, err)
		assert.Equal(t, int64(2), page.TotalCount)
		require.Len(t, page.Items, 1)
		assert.Equal(t, "pending", page.Items[0].PaymentStatus)
		assert.Equal(t, "Networks, Part 1", page.Items[0].TopicTitle)
		assert.Equal(t, 20, page.Items[0].Progress)
		assert.Equal(t, "0h 10m", page.Items[0].WatchTime)
		assert.Nil(t, page.Items[0].StartDate)

		page, err = svc.ListUpdates(ctx, UpdatesQuery{Tab: TabEnrolled, Page: 2, Limit: 1})
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		first := page.Items[0]
		assert.Equal(t, "completed", first.PaymentStatus)
		require.NotNil(t, first.EndDate)
		assert.Equal(t, day(2025, 1, 10), *first.EndDate)
		assert.True(t, first.IsActive)

		page, err = svc.ListUpdates(ctx, UpdatesQuery{Tab: TabSubscription, Month: "2024-02", Page: 1, Limit: 20})
		require.NoError(t, err)
		assert.Equal(t, int64(1), page.TotalCount)

		page, err = svc.ListUpdates(ctx, UpdatesQuery{Tab: TabEnrolled, FromDate: "2024-03-01", ToDate: "2024-03-31", Page: 1, Limit: 20})
		require.NoError(t, err)
		assert.Equal(t, int64(1), page.TotalCount)
	})

	t.Run("segment earnings", func(t *testing.T) {
		report, err := svc.GetSegmentReport(ctx, SegmentEarnings, &ReportMonth{Year: 2024, Month: 3})
		require.NoError(t, err)
		assert.Equal(t, "Mar 2024", report.Month)
		require.Len(t, report.Earnings, 2)
		assert.Equal(t, "Pending", report.Earnings[0].TransactionStatus)
		assert.Equal(t, "Success", report.Earnings[1].TransactionStatus)
		assert.Equal(t, ReportTotals{TotalPaymentTransactions: 2, TotalTopics: 2, TotalEnrolled: 2}, report.ReportTotals)
	})

	t.Run("segment topics", func(t *testing.T) {
		report, err := svc.GetSegmentReport(ctx, SegmentTopics, nil)
		require.NoError(t, err)
		assert.Equal(t, "All Time", report.Month)
		require.Len(t, report.Topics, 3, "topics without enrollments are listed")
		assert.Equal(t, int64(3), report.TotalTopics)
		assert.Equal(t, int64(1), report.TotalSubscribed)
	})

	t.Run("segment enrolled", func(t *testing.T) {
		report, err := svc.GetSegmentReport(ctx, SegmentEnrolled, nil)
		require.NoError(t, err)
		require.Len(t, report.Enrolled, 3)
		assert.Equal(t, int64(4), report.TotalEnrolled)
		assert.Equal(t, int64(2), report.TotalPaymentTransactions)
		assert.Equal(t, int64(1), report.TotalSubscribed)
	})
}
