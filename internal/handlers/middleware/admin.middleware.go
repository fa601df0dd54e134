package middleware

import (
	"errors"
	"strings"

	authController "lightsout/internal/controllers/auth"

	"github.com/gofiber/fiber/v2"
)

// RequireAdmin guards the admin surface with the bearer token issued by the
// login endpoint. Inspectors never carry a token; only the admin console does.
func (m *Middleware) RequireAdmin() fiber.Handler {
	log := m.log.Function("RequireAdmin")

	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			log.Info("missing bearer token", "path", c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authentication required",
			})
		}

		if err := m.auth.ValidateToken(token); err != nil {
			if errors.Is(err, authController.ErrAuthDisabled) {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
					"error": "Admin authentication is not configured",
				})
			}
			log.Info("rejected bearer token", "path", c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		return c.Next()
	}
}
