package response

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/dashboard-api/utils/stats"
	"github.com/sahilchouksey/dashboard-api/utils/validation"
)

// Response represents a standardized API response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ValidationResponse is returned when a request body fails field validation
type ValidationResponse struct {
	Success          bool                         `json:"success"`
	Error            string                       `json:"error"`
	Details          string                       `json:"details"`
	ValidationErrors []validation.ValidationError `json:"validationErrors"`
	StatusCode       int                          `json:"statusCode"`
}

// PaginationMeta contains pagination metadata
type PaginationMeta struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalCount  int64 `json:"totalCount"`
	Limit       int   `json:"limit"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

// PaginatedResponse represents a paginated API response
type PaginatedResponse struct {
	Success    bool           `json:"success"`
	Data       interface{}    `json:"data"`
	Pagination PaginationMeta `json:"pagination"`
	Filters    interface{}    `json:"filters,omitempty"`
}

// Success returns a successful response
func Success(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusOK).JSON(Response{
		Success: true,
		Data:    data,
	})
}

// Created returns a 201 Created response
func Created(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(Response{
		Success: true,
		Data:    data,
	})
}

// Error returns an error response
func Error(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(Response{
		Success: false,
		Error:   message,
	})
}

// BadRequest returns a 400 Bad Request response
func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

// NotFound returns a 404 Not Found response
func NotFound(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Resource not found"
	}
	return Error(c, fiber.StatusNotFound, message)
}

// TooManyRequests returns a 429 Too Many Requests response
func TooManyRequests(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Too many requests"
	}
	return Error(c, fiber.StatusTooManyRequests, message)
}

// ValidationFailed returns a 400 response listing every failing field
func ValidationFailed(c *fiber.Ctx, errs []validation.ValidationError) error {
	return c.Status(fiber.StatusBadRequest).JSON(ValidationResponse{
		Success:          false,
		Error:            "Validation failed",
		Details:          "Required fields are missing or invalid",
		ValidationErrors: errs,
		StatusCode:       fiber.StatusBadRequest,
	})
}

// InternalServerError returns a 500 Internal Server Error response
func InternalServerError(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Internal server error"
	}
	return Error(c, fiber.StatusInternalServerError, message)
}

// Paginated returns a paginated response, echoing the applied filters
func Paginated(c *fiber.Ctx, data interface{}, pagination PaginationMeta, filters interface{}) error {
	return c.Status(fiber.StatusOK).JSON(PaginatedResponse{
		Success:    true,
		Data:       data,
		Pagination: pagination,
		Filters:    filters,
	})
}

// CalculatePagination calculates pagination metadata
func CalculatePagination(page, limit int, total int64) PaginationMeta {
	totalPages := stats.TotalPages(total, limit)
	hasNext, hasPrev := stats.PageFlags(page, totalPages)

	return PaginationMeta{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalCount:  total,
		Limit:       limit,
		HasNextPage: hasNext,
		HasPrevPage: hasPrev,
	}
}
