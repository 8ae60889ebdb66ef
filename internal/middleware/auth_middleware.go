package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pet-adoption-jtn/pet-adoption/internal/services"
)

// AuthRequired is a Fiber middleware gating mutating routes on a valid
// identity token, supplied in the access_token request header.
//
// The token's claims are trusted as of issuance; no database lookup happens
// here, so a token issued to a since-edited or since-deleted user still
// passes. Absent and malformed tokens are both rejected with 401 before the
// handler runs.
func AuthRequired(tokens *services.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Get("access_token")
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authentication Failed",
			})
		}

		claims, err := tokens.Verify(tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authentication Failed",
			})
		}

		// Make the identity available to downstream handlers.
		c.Locals("user_id", claims.ID)
		c.Locals("username", claims.Username)
		c.Locals("email", claims.Email)

		return c.Next()
	}
}
