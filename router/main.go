package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/dashboard-api/database"
	"github.com/sahilchouksey/dashboard-api/handlers"
	dashboard_handlers "github.com/sahilchouksey/dashboard-api/handlers/dashboard"
	homepage_handlers "github.com/sahilchouksey/dashboard-api/handlers/homepage"
	"github.com/sahilchouksey/dashboard-api/services"
	"github.com/sahilchouksey/dashboard-api/utils"
	"github.com/sahilchouksey/dashboard-api/utils/middleware"
)

func SetupRoutes(app *fiber.App, store database.Storage, log *utils.Logger, security middleware.SecurityConfig) {
	db := store.GetDB()

	// Initialize services
	dashboardService := services.NewDashboardService(db)
	homepageService := services.NewHomepageService(db)

	// Initialize handlers
	dashboardHandler := dashboard_handlers.NewDashboardHandler(dashboardService, log.With("component", "dashboard"))
	homepageHandler := homepage_handlers.NewHomepageHandler(homepageService, log.With("component", "homepage"))

	// Apply security middleware
	middleware.SetupSecurity(app, security)

	// Health check endpoint (public)
	app.Get("/ping", utils.MakeHTTPHandleFunc(handlers.HandleCheckHealth, store))

	api := app.Group("/api")

	// Dashboard statistics and reports
	dashboard := api.Group("/dashboard")
	dashboard.Get("/overview", dashboardHandler.GetOverview)
	dashboard.Get("/updates", dashboardHandler.GetUpdates)
	dashboard.Get("/earnings", dashboardHandler.GetEarnings)
	dashboard.Get("/reports/monthly", dashboardHandler.GetMonthlyGrowth)
	dashboard.Get("/reports/monthlyReport", dashboardHandler.GetMonthlyReport)

	// Homepage content
	homepage := api.Group("/homepage")
	homepage.Post("/content", homepageHandler.UpsertContent)
	homepage.Post("/faqs", homepageHandler.CreateFAQ)
	homepage.Put("/faqs/:id", homepageHandler.UpdateFAQ)
	homepage.Delete("/faqs/:id", homepageHandler.DeleteFAQ)
	homepage.Get("/:language", homepageHandler.GetContent)
}
