package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/dashboard-api/utils"
	"github.com/sahilchouksey/dashboard-api/utils/response"
)

// InternalError logs err against the failing route and answers 500 with its message
func InternalError(c *fiber.Ctx, log *utils.Logger, err error) error {
	log.Error("request failed",
		"method", c.Method(),
		"route", c.Route().Path,
		"request_id", c.Locals("requestid"),
		"error", err,
	)
	return response.InternalServerError(c, err.Error())
}
