package utils

import (
	fiber "github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/dashboard-api/database"
)

// StoreHandler is a route handler that needs the store itself rather than a service
type StoreHandler func(c *fiber.Ctx, store database.Storage) error

// MakeHTTPHandleFunc binds store to handler. A returned error becomes a
// 500 envelope unless it is a *fiber.Error, which keeps its status.
func MakeHTTPHandleFunc(handler StoreHandler, store database.Storage) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := handler(c, store); err != nil {
			status := fiber.StatusInternalServerError
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
			return c.Status(status).JSON(fiber.Map{"success": false, "error": err.Error()})
		}
		return nil
	}
}
