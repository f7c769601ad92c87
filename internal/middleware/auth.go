package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/threadup-app/backend/internal/dto"
	"github.com/threadup-app/backend/internal/services"
)

const identityKey = "identity"

// Protected verifies the bearer token against the identity provider and
// attaches the decoded identity to the request. A missing token is 401, a
// token that fails verification is 403.
func Protected(verifier services.TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "unauthorized access",
			})
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "unauthorized access",
			})
		}

		claims, err := verifier.Verify(parts[1])
		if err != nil {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "forbidden access",
			})
		}

		c.Locals(identityKey, claims)
		return c.Next()
	}
}

// Identity returns the decoded identity set by Protected, or nil.
func Identity(c *fiber.Ctx) *services.IdentityClaims {
	if claims, ok := c.Locals(identityKey).(*services.IdentityClaims); ok {
		return claims
	}
	return nil
}
