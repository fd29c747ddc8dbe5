package response

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/dashboard-api/utils/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculatePagination(t *testing.T) {
	tests := []struct {
		page, limit int
		total       int64
		want        PaginationMeta
	}{
		{1, 20, 0, PaginationMeta{CurrentPage: 1, TotalPages: 0, TotalCount: 0, Limit: 20}},
		{1, 20, 20, PaginationMeta{CurrentPage: 1, TotalPages: 1, TotalCount: 20, Limit: 20}},
		{1, 20, 21, PaginationMeta{CurrentPage: 1, TotalPages: 2, TotalCount: 21, Limit: 20, HasNextPage: true}},
		{2, 20, 21, PaginationMeta{CurrentPage: 2, TotalPages: 2, TotalCount: 21, Limit: 20, HasPrevPage: true}},
		{5, 10, 0, PaginationMeta{CurrentPage: 5, TotalPages: 0, TotalCount: 0, Limit: 10, HasPrevPage: true}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CalculatePagination(tt.page, tt.limit, tt.total))
	}
}

func TestEnvelopes(t *testing.T) {
	app := fiber.New()
	app.Get("/ok", func(c *fiber.Ctx) error { return Success(c, fiber.Map{"n": 1}) })
	app.Get("/missing", func(c *fiber.Ctx) error { return NotFound(c, "") })
	app.Get("/invalid", func(c *fiber.Ctx) error {
		return ValidationFailed(c, []validation.ValidationError{
			{Field: "language", Message: "Language is required", Code: validation.CodeRequired},
		})
	})

	tests := []struct {
		path   string
		status int
		body   string
	}{
		{"/ok", 200, `{"success":true,"data":{"n":1}}`},
		{"/missing", 404, `{"success":false,"error":"Resource not found"}`},
		{"/invalid", 400, `{"success":false,"error":"Validation failed","details":"Required fields are missing or invalid",
			"validationErrors":[{"field":"language","message":"Language is required","code":"REQUIRED"}],"statusCode":400}`},
	}

	for _, tt := range tests {
		resp, err := app.Test(httptest.NewRequest("GET", tt.path, nil))
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		resp.Body.Close()

		assert.Equal(t, tt.status, resp.StatusCode, tt.path)
		assert.JSONEq(t, tt.body, string(body), tt.path)
	}
}
