package middleware

import (
	"log"
	"strings"

	"watchlog/internal/services"

	"github.com/gofiber/fiber/v2"
)

// IdentityRequired is a Fiber middleware that resolves the caller identity
// from a bearer token and stores it in the request context. Every record
// operation behind it can rely on c.Locals("identity") being a non-empty
// principal string.
func IdentityRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header is required",
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		identity, err := authService.ResolveIdentity(parts[1])
		if err != nil {
			log.Printf("Identity resolution failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
				"error":   err.Error(),
			})
		}

		c.Locals("identity", identity)

		return c.Next()
	}
}
