package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/dashboard-api/services"
	"github.com/sahilchouksey/dashboard-api/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReporter struct {
	now     time.Time
	err     error
	calls   int
	ctxErrs []error

	updatesQuery services.UpdatesQuery
	year, months int
	segment      services.Segment
	month        *services.ReportMonth
	report       *services.SegmentReport
}

func (f *fakeReporter) Now() time.Time { return f.now }

func (f *fakeReporter) GetOverview(ctx context.Context) (*services.Overview, error) {
	f.calls++
	f.ctxErrs = append(f.ctxErrs, ctx.Err())
	if f.err != nil {
		return nil, f.err
	}
	return &services.Overview{TotalUsers: 3, UserGrowth: "+100.0%"}, nil
}

func (f *fakeReporter) ListUpdates(ctx context.Context, q services.UpdatesQuery) (*services.UpdatesPage, error) {
	f.calls++
	f.ctxErrs = append(f.ctxErrs, ctx.Err())
	f.updatesQuery = q
	return &services.UpdatesPage{Items: []services.EnrollmentUpdate{{ID: 1}}, TotalCount: 41}, f.err
}

func (f *fakeReporter) MonthlyEarnings(ctx context.Context, year, months int) ([]services.MonthlyValue, error) {
	f.calls++
	f.ctxErrs = append(f.ctxErrs, ctx.Err())
	f.year, f.months = year, months
	return []services.MonthlyValue{{Month: "Jan", Value: 12.5}}, f.err
}

func (f *fakeReporter) MonthlyGrowthReport(ctx context.Context, year, months int) ([]services.MonthlyGrowth, error) {
	f.calls++
	f.ctxErrs = append(f.ctxErrs, ctx.Err())
	f.year, f.months = year, months
	return []services.MonthlyGrowth{{Month: "Jan", Growth: "N/A"}}, f.err
}

func (f *fakeReporter) GetSegmentReport(ctx context.Context, segment services.Segment, month *services.ReportMonth) (*services.SegmentReport, error) {
	f.calls++
	f.ctxErrs = append(f.ctxErrs, ctx.Err())
	f.segment, f.month = segment, month
	if f.err != nil {
		return nil, f.err
	}
	if f.report != nil {
		return f.report, nil
	}
	return &services.SegmentReport{Segment: segment, Month: month.Label(), ReportData: []services.TopicReportRow{}}, nil
}

func newTestApp(f *fakeReporter) *fiber.App {
	h := NewDashboardHandler(f, utils.NopLogger())
	app := fiber.New()
	app.Get("/dashboard/overview", h.GetOverview)
	app.Get("/dashboard/updates", h.GetUpdates)
	app.Get("/dashboard/earnings", h.GetEarnings)
	app.Get("/dashboard/reports/monthly", h.GetMonthlyGrowth)
	app.Get("/dashboard/reports/monthlyReport", h.GetMonthlyReport)
	return app
}

func doGet(t *testing.T, app *fiber.App, target string) (int, []byte, *httptestResponse) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body, &httptestResponse{contentType: resp.Header.Get("Content-Type"), disposition: resp.Header.Get("Content-Disposition")}
}

type httptestResponse struct {
	contentType string
	disposition string
}

func TestUpdatesRejectsInvalidTabWithoutQuerying(t *testing.T) {
	f := &fakeReporter{}
	status, body, _ := doGet(t, newTestApp(f), "/dashboard/updates?tab=invalid")

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.JSONEq(t, `{"success":false,"error":"Invalid tab. Must be either \"enrolled\" or \"subscription\""}`, string(body))
	assert.Zero(t, f.calls)
}

func TestUpdatesRejectsMalformedDates(t *testing.T) {
	for _, target := range []string{
		"/dashboard/updates?month=2024-13",
		"/dashboard/updates?fromDate=2024/01/01&toDate=2024-01-31",
		"/dashboard/updates?toDate=yesterday",
	} {
		f := &fakeReporter{}
		status, _, _ := doGet(t, newTestApp(f), target)
		assert.Equal(t, fiber.StatusBadRequest, status, target)
		assert.Zero(t, f.calls, target)
	}
}

func TestUpdatesPaginationAndFilters(t *testing.T) {
	f := &fakeReporter{}
	status, body, _ := doGet(t, newTestApp(f), "/dashboard/updates?tab=subscription&month=2024-03&page=2&limit=10")
	require.Equal(t, fiber.StatusOK, status)

	assert.Equal(t, services.UpdatesQuery{Tab: services.TabSubscription, Month: "2024-03", Page: 2, Limit: 10}, f.updatesQuery)

	var got struct {
		Success    bool `json:"success"`
		Pagination struct {
			CurrentPage int   `json:"currentPage"`
			TotalPages  int   `json:"totalPages"`
			TotalCount  int64 `json:"totalCount"`
			Limit       int   `json:"limit"`
			HasNextPage bool  `json:"hasNextPage"`
			HasPrevPage bool  `json:"hasPrevPage"`
		} `json:"pagination"`
		Filters map[string]interface{} `json:"filters"`
	}
	require.NoError(t, json.Unmarshal(body, &got))
	assert.True(t, got.Success)
	assert.Equal(t, 2, got.Pagination.CurrentPage)
	assert.Equal(t, 5, got.Pagination.TotalPages)
	assert.Equal(t, int64(41), got.Pagination.TotalCount)
	assert.True(t, got.Pagination.HasNextPage)
	assert.True(t, got.Pagination.HasPrevPage)
	assert.Equal(t, "subscription", got.Filters["tab"])
	assert.Equal(t, "2024-03", got.Filters["month"])
	assert.Nil(t, got.Filters["fromDate"])
}

func TestUpdatesDefaults(t *testing.T) {
	f := &fakeReporter{}
	status, _, _ := doGet(t, newTestApp(f), "/dashboard/updates?page=0&limit=abc")
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, services.UpdatesQuery{Tab: services.TabEnrolled, Page: 1, Limit: 20}, f.updatesQuery)
}

func TestUpdatesBoundsPageAndLimit(t *testing.T) {
	f := &fakeReporter{}
	status, body, _ := doGet(t, newTestApp(f), "/dashboard/updates?page=9223372036854775807&limit=5000")
	require.Equal(t, fiber.StatusOK, status, string(body))
	assert.Equal(t, math.MaxInt64, f.updatesQuery.Page)
	assert.Equal(t, 100, f.updatesQuery.Limit)

	f = &fakeReporter{}
	status, _, _ = doGet(t, newTestApp(f), "/dashboard/updates?page=99999999999999999999")
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, 1, f.updatesQuery.Page)
}

func TestHandlersPassLiveContext(t *testing.T) {
	f := &fakeReporter{now: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)}
	app := newTestApp(f)
	for _, target := range []string{
		"/dashboard/overview",
		"/dashboard/updates",
		"/dashboard/earnings",
		"/dashboard/reports/monthly",
		"/dashboard/reports/monthlyReport?segment=topics",
	} {
		status, _, _ := doGet(t, app, target)
		require.Equal(t, fiber.StatusOK, status, target)
	}

	require.Len(t, f.ctxErrs, 5)
	for _, err := range f.ctxErrs {
		assert.NoError(t, err)
	}
}

func TestEarningsIsBareArray(t *testing.T) {
	f := &fakeReporter{now: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)}
	status, body, _ := doGet(t, newTestApp(f), "/dashboard/earnings?months=40")

	require.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `[{"month":"Jan","value":12.5}]`, string(body))
	assert.Equal(t, 2025, f.year)
	assert.Equal(t, 12, f.months)
}

func TestMonthlyGrowthParsesYear(t *testing.T) {
	f := &fakeReporter{now: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)}
	status, body, _ := doGet(t, newTestApp(f), "/dashboard/reports/monthly?year=2023&months=-4")

	require.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"success":true,"data":[{"month":"Jan","users":0,"enrollments":0,"revenue":0,"growth":"N/A"}]}`, string(body))
	assert.Equal(t, 2023, f.year)
	assert.Equal(t, 1, f.months)
}

func TestMonthlyReportValidation(t *testing.T) {
	f := &fakeReporter{}
	status, body, _ := doGet(t, newTestApp(f), "/dashboard/reports/monthlyReport")
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, string(body), "Valid segment parameter required: earnings, topics, or enrolled")

	status, _, _ = doGet(t, newTestApp(f), "/dashboard/reports/monthlyReport?segment=topics&month=2024-00")
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Zero(t, f.calls)
}

func TestMonthlyReportJSON(t *testing.T) {
	f := &fakeReporter{}
	status, body, _ := doGet(t, newTestApp(f), "/dashboard/reports/monthlyReport?segment=topics&month=2024-03&download=1")

	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, &services.ReportMonth{Year: 2024, Month: 3}, f.month)
	assert.JSONEq(t, `{"success":true,"data":{"segment":"topics","month":"Mar 2024","totalPaymentTransactions":0,"totalTopics":0,"totalEnrolled":0,"totalSubscribed":0,"reportData":[]}}`, string(body))
}

func TestMonthlyReportCSVDownload(t *testing.T) {
	f := &fakeReporter{report: &services.SegmentReport{
		Segment: services.SegmentTopics,
		Topics:  []services.TopicReportRow{{TopicID: 1, TopicTitle: "Red, Blue", Price: 10, AverageProgress: "0.0"}},
	}}
	status, body, resp := doGet(t, newTestApp(f), "/dashboard/reports/monthlyReport?segment=topics&download=true")

	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "text/csv", resp.contentType)
	assert.Equal(t, `attachment; filename="topics_report_All_Time.csv"`, resp.disposition)
	assert.Equal(t, "Topic ID,Topic Title,Description,Price,Total Enrollments,Completed Enrollments,Average Progress\n"+
		`1,"Red, Blue","",10,0,0,0.0`+"\n", string(body))
}

func TestMonthlyReportNullDescription(t *testing.T) {
	f := &fakeReporter{report: &services.SegmentReport{
		Segment:    services.SegmentTopics,
		ReportData: []services.TopicReportRow{{TopicID: 1, TopicTitle: "Red", AverageProgress: "0.0"}},
	}}
	status, body, _ := doGet(t, newTestApp(f), "/dashboard/reports/monthlyReport?segment=topics")

	require.Equal(t, fiber.StatusOK, status)
	var got struct {
		Data struct {
			ReportData []map[string]interface{} `json:"reportData"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &got))
	require.Len(t, got.Data.ReportData, 1)
	assert.Contains(t, got.Data.ReportData[0], "description")
	assert.Nil(t, got.Data.ReportData[0]["description"])
}

func TestServiceFailureIs500WithMessage(t *testing.T) {
	f := &fakeReporter{err: errors.New("failed to count users: connection refused")}
	status, body, _ := doGet(t, newTestApp(f), "/dashboard/overview")

	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.JSONEq(t, `{"success":false,"error":"failed to count users: connection refused"}`, string(body))
}
