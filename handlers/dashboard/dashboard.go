package dashboard

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/dashboard-api/handlers"
	"github.com/sahilchouksey/dashboard-api/services"
	"github.com/sahilchouksey/dashboard-api/utils"
	"github.com/sahilchouksey/dashboard-api/utils/csvexport"
	"github.com/sahilchouksey/dashboard-api/utils/response"
	"github.com/sahilchouksey/dashboard-api/utils/stats"
)

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100
)

// Reporter is the part of the dashboard service the handler needs
type Reporter interface {
	Now() time.Time
	GetOverview(ctx context.Context) (*services.Overview, error)
	ListUpdates(ctx context.Context, q services.UpdatesQuery) (*services.UpdatesPage, error)
	MonthlyEarnings(ctx context.Context, year, months int) ([]services.MonthlyValue, error)
	MonthlyGrowthReport(ctx context.Context, year, months int) ([]services.MonthlyGrowth, error)
	GetSegmentReport(ctx context.Context, segment services.Segment, month *services.ReportMonth) (*services.SegmentReport, error)
}

// DashboardHandler serves the admin dashboard statistics and reports
type DashboardHandler struct {
	reporter Reporter
	log      *utils.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(reporter Reporter, log *utils.Logger) *DashboardHandler {
	return &DashboardHandler{
		reporter: reporter,
		log:      log,
	}
}

// GetOverview handles GET /api/dashboard/overview
func (h *DashboardHandler) GetOverview(c *fiber.Ctx) error {
	overview, err := h.reporter.GetOverview(c.UserContext())
	if err != nil {
		return handlers.InternalError(c, h.log, err)
	}
	return response.Success(c, overview)
}

// updatesFilters echoes the applied filters, absent values are null
type updatesFilters struct {
	Tab      services.UpdatesTab `json:"tab"`
	Month    *string             `json:"month"`
	FromDate *string             `json:"fromDate"`
	ToDate   *string             `json:"toDate"`
}

// GetUpdates handles GET /api/dashboard/updates
func (h *DashboardHandler) GetUpdates(c *fiber.Ctx) error {
	tab, ok := services.ParseUpdatesTab(c.Query("tab"))
	if !ok {
		return response.BadRequest(c, `Invalid tab. Must be either "enrolled" or "subscription"`)
	}

	month, fromDate, toDate := c.Query("month"), c.Query("fromDate"), c.Query("toDate")
	if month != "" {
		if err := services.ValidateMonth(month); err != nil {
			return response.BadRequest(c, "Invalid month format. Expected YYYY-MM")
		}
	}
	for _, d := range []string{fromDate, toDate} {
		if d == "" {
			continue
		}
		if err := services.ValidateDate(d); err != nil {
			return response.BadRequest(c, "Invalid date format. Expected YYYY-MM-DD")
		}
	}

	page := positiveOr(c.Query("page"), defaultPage)
	limit := positiveOr(c.Query("limit"), defaultLimit)
	if limit > maxLimit {
		limit = maxLimit
	}

	result, err := h.reporter.ListUpdates(c.UserContext(), services.UpdatesQuery{
		Tab:      tab,
		Month:    month,
		FromDate: fromDate,
		ToDate:   toDate,
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return handlers.InternalError(c, h.log, err)
	}

	filters := updatesFilters{
		Tab:      tab,
		Month:    nullable(month),
		FromDate: nullable(fromDate),
		ToDate:   nullable(toDate),
	}
	return response.Paginated(c, result.Items, response.CalculatePagination(page, limit, result.TotalCount), filters)
}

// GetEarnings handles GET /api/dashboard/earnings. It responds with a bare
// array, without the success envelope.
func (h *DashboardHandler) GetEarnings(c *fiber.Ctx) error {
	year, months := h.yearAndMonths(c)

	series, err := h.reporter.MonthlyEarnings(c.UserContext(), year, months)
	if err != nil {
		return handlers.InternalError(c, h.log, err)
	}
	return c.JSON(series)
}

// GetMonthlyGrowth handles GET /api/dashboard/reports/monthly
func (h *DashboardHandler) GetMonthlyGrowth(c *fiber.Ctx) error {
	year, months := h.yearAndMonths(c)

	series, err := h.reporter.MonthlyGrowthReport(c.UserContext(), year, months)
	if err != nil {
		return handlers.InternalError(c, h.log, err)
	}
	return response.Success(c, series)
}

// GetMonthlyReport handles GET /api/dashboard/reports/monthlyReport. With
// download=true the segment rows are sent as a CSV attachment.
func (h *DashboardHandler) GetMonthlyReport(c *fiber.Ctx) error {
	segment, ok := services.ParseSegment(c.Query("segment"))
	if !ok {
		return response.BadRequest(c, "Valid segment parameter required: earnings, topics, or enrolled")
	}

	var month *services.ReportMonth
	if raw := c.Query("month"); raw != "" {
		m, err := services.ParseReportMonth(raw)
		if err != nil {
			return response.BadRequest(c, "Invalid month format. Expected YYYY-MM")
		}
		month = m
	}

	report, err := h.reporter.GetSegmentReport(c.UserContext(), segment, month)
	if err != nil {
		return handlers.InternalError(c, h.log, err)
	}

	if c.Query("download") != "true" {
		return response.Success(c, report)
	}

	body, err := csvexport.Render(report)
	if err != nil {
		return handlers.InternalError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, csvexport.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, csvexport.Filename(segment, month)))
	return c.SendString(body)
}

func (h *DashboardHandler) yearAndMonths(c *fiber.Ctx) (int, int) {
	return stats.ParseYear(c.Query("year"), h.reporter.Now().Year()), stats.ClampMonths(c.Query("months"))
}

// positiveOr parses raw, falling back for missing, malformed or values below 1
func positiveOr(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
