package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/dashboard-api/database"
)

// HandleCheckHealth handles GET /ping
func HandleCheckHealth(c *fiber.Ctx, store database.Storage) error {
	if err := store.HealthCheck(); err != nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "database unreachable: "+err.Error())
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
