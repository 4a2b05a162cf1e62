package http

import (
	"strings"

	"termchess/internal/config"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

const localValidatedBody = "validatedBody"

var validate = validator.New()

// validateBody parses and validates the POST body into a T, storing it
// under localValidatedBody for the handler. An empty body validates as the
// zero request.
func validateBody[T any](c *fiber.Ctx) error {
	req := new(T)

	if len(c.Body()) > 0 {
		if err := c.BodyParser(req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Error:   "invalid request body",
				Code:    ErrInvalidRequest,
				Details: err.Error(),
			})
		}
	}

	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return errors.Wrap(err, "validate request")
		}

		var details strings.Builder
		for _, fe := range verrs {
			if details.Len() > 0 {
				details.WriteString("; ")
			}
			details.WriteString(config.Describe(fe))
		}

		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "validation failed",
			Code:    ErrInvalidRequest,
			Details: details.String(),
		})
	}

	c.Locals(localValidatedBody, req)
	return c.Next()
}

// validated returns the body stored by validateBody
func validated[T any](c *fiber.Ctx) (*T, error) {
	req, ok := c.Locals(localValidatedBody).(*T)
	if !ok {
		return nil, fiber.NewError(fiber.StatusBadRequest, "missing request body")
	}
	return req, nil
}

// contentTypeValidator ensures POST requests carry JSON
func contentTypeValidator(c *fiber.Ctx) error {
	if c.Method() == fiber.MethodPost {
		contentType := c.Get(fiber.HeaderContentType)
		if contentType != "" && !strings.HasPrefix(contentType, fiber.MIMEApplicationJSON) {
			return c.Status(fiber.StatusUnsupportedMediaType).JSON(ErrorResponse{
				Error:   "unsupported media type",
				Code:    ErrInvalidContent,
				Details: "Content-Type must be application/json",
			})
		}
	}
	return c.Next()
}
