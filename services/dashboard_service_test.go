package services

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscriptionValidityCompleted(t *testing.T) {
	enrolled := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)

	w := SubscriptionValidity(&enrolled, "completed", now)

	require.NotNil(t, w.StartDate)
	require.NotNil(t, w.EndDate)
	require.NotNil(t, w.ValidDays)
	assert.Equal(t, enrolled, *w.StartDate)
	assert.Equal(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), *w.EndDate)
	assert.Equal(t, 198, *w.ValidDays)
	assert.True(t, w.IsActive)
}

func TestSubscriptionValidityExpired(t *testing.T) {
	enrolled := time.Date(2022, 3, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	w := SubscriptionValidity(&enrolled, "subscription", now)

	require.NotNil(t, w.ValidDays)
	assert.Equal(t, 0, *w.ValidDays)
	assert.False(t, w.IsActive)
}

func TestSubscriptionValidityIneligible(t *testing.T) {
	enrolled := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	for _, status := range []string{"pending", "paid", "active", ""} {
		w := SubscriptionValidity(&enrolled, status, enrolled)
		assert.Equal(t, SubscriptionWindow{}, w, status)
	}
	assert.Equal(t, SubscriptionWindow{}, SubscriptionValidity(nil, "completed", enrolled))
}

func TestEarningsSeriesIsDense(t *testing.T) {
	series := earningsSeries(map[int]float64{2: 1234.567, 4: 10}, 5)

	require.Len(t, series, 5)
	assert.Equal(t, []MonthlyValue{
		{Month: "Jan", Value: 0},
		{Month: "Feb", Value: 1234.57},
		{Month: "Mar", Value: 0},
		{Month: "Apr", Value: 10},
		{Month: "May", Value: 0},
	}, series)
}

func TestGrowthSeries(t *testing.T) {
	series := growthSeries(map[int]growthRow{
		1: {MonthNumber: 1, Users: 4, Enrollments: 10, Revenue: 100},
		2: {MonthNumber: 2, Users: 1, Enrollments: 15, Revenue: 150.456},
		4: {MonthNumber: 4, Enrollments: 3},
		5: {MonthNumber: 5, Users: 2},
	}, 6)

	require.Len(t, series, 6)
	growth := make([]string, len(series))
	for i, m := range series {
		growth[i] = m.Growth
	}
	assert.Equal(t, []string{"N/A", "+50.0%", "-100.0%", "+100.0%", "-100.0%", "+0.0%"}, growth)
	assert.Equal(t, 150.46, series[1].Revenue)
	assert.Equal(t, int64(2), series[4].Users)
	assert.Equal(t, "Jun", series[5].Month)
}

func TestGrowthSeriesSingleMonth(t *testing.T) {
	series := growthSeries(map[int]growthRow{}, 1)
	require.Len(t, series, 1)
	assert.Equal(t, "N/A", series[0].Growth)
}

func TestUpdateRowDefaults(t *testing.T) {
	enrolled := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	row := updateRow{
		ID:             9,
		PaymentStatus:  "pending",
		EnrolledAt:     &enrolled,
		TotalProgress:  49.5,
		TotalWatchTime: 3725,
	}

	u := row.toUpdate(enrolled)

	assert.Equal(t, "N/A", u.UserName)
	assert.Equal(t, "N/A", u.UserEmail)
	assert.Equal(t, "Untitled Topic", u.TopicTitle)
	assert.Equal(t, 50, u.Progress)
	assert.Equal(t, "1h 2m", u.WatchTime)
	assert.Equal(t, int64(3725), u.WatchTimeSeconds)
	assert.Nil(t, u.ValidDays)
	assert.False(t, u.IsActive)
}

func TestUpdatesFilter(t *testing.T) {
	f := UpdatesQuery{Tab: TabSubscription, Month: "2024-03"}.filter()
	assert.Equal(t, "WHERE ut.payment_status = ? AND TO_CHAR(ut.enrolled_at, 'YYYY-MM') = ?", f.WhereClause())
	assert.Equal(t, []interface{}{"subscription", "2024-03"}, f.Args())

	f = UpdatesQuery{Tab: TabEnrolled, Month: "2024-03", FromDate: "2024-01-01", ToDate: "2024-01-31"}.filter()
	assert.Equal(t, "WHERE ut.payment_status IN ? AND DATE(ut.enrolled_at) BETWEEN ? AND ?", f.WhereClause())
	assert.Equal(t, []interface{}{updatesEnrolledStatuses, "2024-01-01", "2024-01-31"}, f.Args())

	f = UpdatesQuery{Tab: TabEnrolled, FromDate: "2024-01-01"}.filter()
	assert.Equal(t, "WHERE ut.payment_status IN ?", f.WhereClause())
}

func TestUpdatesOffset(t *testing.T) {
	assert.Equal(t, int64(0), UpdatesQuery{Page: 1, Limit: 20}.offset())
	assert.Equal(t, int64(0), UpdatesQuery{Page: 0, Limit: 20}.offset())
	assert.Equal(t, int64(30), UpdatesQuery{Page: 4, Limit: 10}.offset())
	assert.Equal(t, int64(math.MaxInt64), UpdatesQuery{Page: math.MaxInt64, Limit: 100}.offset())
	assert.Equal(t, int64(math.MaxInt64-1), UpdatesQuery{Page: math.MaxInt64, Limit: 1}.offset())
}

func TestParseUpdatesTab(t *testing.T) {
	tab, ok := ParseUpdatesTab("")
	assert.True(t, ok)
	assert.Equal(t, TabEnrolled, tab)

	tab, ok = ParseUpdatesTab("subscription")
	assert.True(t, ok)
	assert.Equal(t, TabSubscription, tab)

	_, ok = ParseUpdatesTab("invalid")
	assert.False(t, ok)
}

func TestParseReportMonth(t *testing.T) {
	m, err := ParseReportMonth("2024-03")
	require.NoError(t, err)
	assert.Equal(t, ReportMonth{Year: 2024, Month: 3}, *m)
	assert.Equal(t, "Mar 2024", m.Label())
	assert.Equal(t, "Mar_2024", m.FileLabel())

	for _, bad := range []string{"2024-13", "2024", "03-2024", "2024-3-1", "abc"} {
		_, err := ParseReportMonth(bad)
		assert.Error(t, err, bad)
	}

	var all *ReportMonth
	assert.Equal(t, "All Time", all.Label())
}

func TestValidateDate(t *testing.T) {
	assert.NoError(t, ValidateDate("2024-02-29"))
	assert.Error(t, ValidateDate("2024-02-30"))
	assert.Error(t, ValidateDate("2024/02/01"))
}

func TestStatusClassification(t *testing.T) {
	assert.Equal(t, "Success", TransactionStatus("paid"))
	assert.Equal(t, "Pending", TransactionStatus("pending"))
	assert.Equal(t, "Other", TransactionStatus("subscription"))
	assert.Equal(t, "Active", EnrollmentStatus("completed"))
	assert.Equal(t, "Other", EnrollmentStatus("processing"))
}

func TestMonthFilter(t *testing.T) {
	assert.True(t, monthFilter("ut.enrolled_at", nil).Empty())

	f := monthFilter("ut.enrolled_at", &ReportMonth{Year: 2024, Month: 3})
	assert.Equal(t, "AND EXTRACT(YEAR FROM ut.enrolled_at) = ? AND EXTRACT(MONTH FROM ut.enrolled_at) = ?", f.AndClause())
	assert.Equal(t, []interface{}{2024, 3}, f.Args())
}
