package homepage

import (
	"context"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/dashboard-api/handlers"
	"github.com/sahilchouksey/dashboard-api/services"
	"github.com/sahilchouksey/dashboard-api/utils"
	"github.com/sahilchouksey/dashboard-api/utils/response"
	"github.com/sahilchouksey/dashboard-api/utils/validation"
)

// ContentStore is the part of the homepage service the handler needs
type ContentStore interface {
	GetByLanguage(ctx context.Context, language string) (*services.HomepageContent, error)
	UpsertContent(ctx context.Context, in services.ContentInput) (*services.HomepageContent, bool, error)
	CreateFAQ(ctx context.Context, in services.CreateFAQInput) (*services.FAQContent, error)
	UpdateFAQ(ctx context.Context, id uint, in services.UpdateFAQInput) (*services.FAQContent, error)
	DeleteFAQ(ctx context.Context, id uint) error
}

// HomepageHandler handles the homepage content and FAQ endpoints
type HomepageHandler struct {
	store     ContentStore
	validator *validation.Validator
	log       *utils.Logger
}

// NewHomepageHandler creates a new homepage handler
func NewHomepageHandler(store ContentStore, log *utils.Logger) *HomepageHandler {
	return &HomepageHandler{
		store:     store,
		validator: validation.NewValidator(),
		log:       log,
	}
}

var requiredMessages = map[string]string{
	"language":      "Language is required",
	"hero.title":    "Hero title is required",
	"hero.subtitle": "Hero subtitle is required",
	"about.title":   "About title is required",
	"about.content": "About content is required",
	"contact.email": "Contact email is required",
}

// GetContent handles GET /api/homepage/:language
func (h *HomepageHandler) GetContent(c *fiber.Ctx) error {
	content, err := h.store.GetByLanguage(c.UserContext(), c.Params("language"))
	if err != nil {
		if errors.Is(err, services.ErrHomepageNotFound) {
			return response.NotFound(c, "Homepage content not found for the specified language")
		}
		return handlers.InternalError(c, h.log, err)
	}
	return response.Success(c, content)
}

// UpsertContent handles POST /api/homepage/content
func (h *HomepageHandler) UpsertContent(c *fiber.Ctx) error {
	var req services.ContentInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if errs := h.validateContent(req); len(errs) > 0 {
		return response.ValidationFailed(c, errs)
	}

	content, created, err := h.store.UpsertContent(c.UserContext(), req)
	if err != nil {
		return handlers.InternalError(c, h.log, err)
	}

	h.log.Info("homepage content saved",
		"language", content.Language,
		"version", content.Version,
		"created", created,
	)

	if created {
		return response.Created(c, content)
	}
	return response.Success(c, content)
}

// validateContent reports every missing field, then a malformed contact email
func (h *HomepageHandler) validateContent(req services.ContentInput) []validation.ValidationError {
	errs := h.validator.FieldErrors(req, requiredMessages)
	if email := req.Contact.Email; email != "" && !validation.ValidateEmail(email) {
		errs = append(errs, validation.ValidationError{
			Field:   "contact.email",
			Message: "Invalid email format",
			Code:    validation.CodeInvalidFormat,
		})
	}
	return errs
}

// CreateFAQ handles POST /api/homepage/faqs
func (h *HomepageHandler) CreateFAQ(c *fiber.Ctx) error {
	var req services.CreateFAQInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	switch {
	case validation.IsBlank(req.Language):
		return response.BadRequest(c, "Language is required")
	case validation.IsBlank(req.Question):
		return response.BadRequest(c, "Question is required")
	case validation.IsBlank(req.Answer):
		return response.BadRequest(c, "Answer is required")
	}
	req.Language = validation.SanitizeString(req.Language)

	faq, err := h.store.CreateFAQ(c.UserContext(), req)
	if err != nil {
		if errors.Is(err, services.ErrHomepageNotFound) {
			return response.NotFound(c, "Homepage not found for the specified language")
		}
		return handlers.InternalError(c, h.log, err)
	}
	return response.Created(c, faq)
}

// UpdateFAQ handles PUT /api/homepage/faqs/:id
func (h *HomepageHandler) UpdateFAQ(c *fiber.Ctx) error {
	id, ok := faqID(c)
	if !ok {
		return response.BadRequest(c, "Valid FAQ ID is required")
	}

	var req services.UpdateFAQInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	faq, err := h.store.UpdateFAQ(c.UserContext(), id, req)
	switch {
	case errors.Is(err, services.ErrFAQNotFound):
		return response.NotFound(c, "FAQ not found")
	case errors.Is(err, services.ErrNoFieldsToUpdate):
		return response.BadRequest(c, "No valid fields to update")
	case err != nil:
		return handlers.InternalError(c, h.log, err)
	}
	return response.Success(c, faq)
}

// DeleteFAQ handles DELETE /api/homepage/faqs/:id
func (h *HomepageHandler) DeleteFAQ(c *fiber.Ctx) error {
	id, ok := faqID(c)
	if !ok {
		return response.BadRequest(c, "Valid FAQ ID is required")
	}

	if err := h.store.DeleteFAQ(c.UserContext(), id); err != nil {
		if errors.Is(err, services.ErrFAQNotFound) {
			return response.NotFound(c, "FAQ not found")
		}
		return handlers.InternalError(c, h.log, err)
	}
	return response.Success(c, fiber.Map{"deleted": true})
}

func faqID(c *fiber.Ctx) (uint, bool) {
	n, err := strconv.Atoi(c.Params("id"))
	if err != nil || n <= 0 {
		return 0, false
	}
	return uint(n), true
}
