package http

import (
	"context"
	"errors"

	domain "github.com/NeuralTrust/TMSHarness/pkg/domain/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const ErrInvalidJsonPayload = "invalid JSON payload"

type validatable interface {
	Validate() error
}

// parseRequest binds a JSON or form body into req and validates it. An empty
// body leaves the defaults in place. On failure the 400 response is already
// written and ok is false.
func parseRequest(c *fiber.Ctx, logger *logrus.Logger, req validatable) (ok bool, err error) {
	if len(c.Body()) > 0 {
		if err := c.BodyParser(req); err != nil {
			logger.WithError(err).Error("failed to bind request")
			return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
		}
	}
	if err := req.Validate(); err != nil {
		logger.WithError(err).Warn("invalid request")
		return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return true, nil
}

func isBadRequest(err error) bool {
	return domain.IsValidationError(err) ||
		errors.Is(err, domain.ErrInvalidStatusCode) ||
		errors.Is(err, domain.ErrUnknownScenario) ||
		errors.Is(err, domain.ErrInvalidAttackRule)
}

// respondError maps an app service error onto the HTTP response.
func respondError(c *fiber.Ctx, logger *logrus.Logger, err error, message string) error {
	switch {
	case isBadRequest(err):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		logger.WithError(err).Warn(message)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "error", "message": "request cancelled"})
	default:
		logger.WithError(err).Error(message)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": message})
	}
}
