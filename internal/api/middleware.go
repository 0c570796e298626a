package api

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
)

// RequireCronSecret guards the cron trigger routes with the shared
// X-Cron-Secret header, compared in constant time.
func (handler *Handler) RequireCronSecret(c *fiber.Ctx) error {
	provided := c.Get("X-Cron-Secret")
	if provided == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(handler.cronSecret)) != 1 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}
	return c.Next()
}
