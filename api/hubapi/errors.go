package hubapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/knowledgehub/knowledgehub/storage/model"
)

// Response messages
const (
	msgArticleNotFound         = "Article not found"
	msgInsufficientPermissions = "Insufficient permissions"
	msgAccessDenied            = "Access denied: Insufficient permissions"
	msgNoToken                 = "No valid token provided"
	msgInvalidToken            = "Invalid or expired token"
	msgInvalidCredentials      = "Invalid credentials"
	msgUsernameTaken           = "Username already taken"
	msgInvalidBody             = "Invalid request body"
)

type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func sendError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(errorResponse{Message: message})
}

// respondError maps err to a status code and error body. Anything not part of
// the error taxonomy is reported as a 500 with failure as message and the
// error text as detail.
func respondError(c *fiber.Ctx, err error, failure string) error {
	var (
		validationErr model.ValidationError
		existsErr     model.AlreadyExistsError
		authErr       model.AuthenticationError
		forbiddenErr  model.ForbiddenError
		notFoundErr   model.NotFoundError
	)
	switch {
	case errors.As(err, &validationErr):
		return sendError(c, fiber.StatusBadRequest, validationErr.Error())
	case errors.As(err, &existsErr):
		return sendError(c, fiber.StatusBadRequest, msgUsernameTaken)
	case errors.As(err, &authErr):
		return sendError(c, fiber.StatusUnauthorized, msgInvalidToken)
	case errors.As(err, &forbiddenErr):
		return sendError(c, fiber.StatusForbidden, msgInsufficientPermissions)
	case errors.As(err, &notFoundErr):
		return sendError(c, fiber.StatusNotFound, msgArticleNotFound)
	}
	log.WithError(err).WithFields(
		log.Fields{
			"request_id": c.Locals("requestid"),
			"path":       c.Path(),
		},
	).Error(failure)
	return c.Status(fiber.StatusInternalServerError).JSON(
		errorResponse{
			Message: failure,
			Error:   err.Error(),
		},
	)
}

// ErrorHandler is the fiber.ErrorHandler for errors escaping the handlers
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return sendError(c, fiberErr.Code, fiberErr.Message)
	}
	return respondError(c, err, "Server error")
}
