package controller

import (
	"errors"

	"cafe-backend/service"

	"github.com/gofiber/fiber/v2"
)

// serviceError maps the service failure taxonomy to HTTP status codes.
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrOTPNotFound),
		errors.Is(err, service.ErrPromoNotFound):
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})

	case errors.Is(err, service.ErrNotOwner):
		return c.Status(403).JSON(fiber.Map{"error": err.Error()})

	case errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrInsufficientBalance),
		errors.Is(err, service.ErrOrderState),
		errors.Is(err, service.ErrPromoExpired),
		errors.Is(err, service.ErrPromoExhausted),
		errors.Is(err, service.ErrOTPUsed),
		errors.Is(err, service.ErrOTPExpired),
		errors.Is(err, service.ErrOTPMismatch):
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})

	default:
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
}
