package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/threadup-app/backend/internal/config"
	"github.com/threadup-app/backend/internal/dto"
	"github.com/threadup-app/backend/internal/models"
	"gorm.io/gorm"
)

// AdminRequired re-verifies admin access server side, in order:
// 1. Operational admin token header
// 2. Config-based admin emails/UIDs
// 3. DB-based user role
// It must run after Protected, which puts the identity in the context.
func AdminRequired(db *gorm.DB, cfg *config.Config) fiber.Handler {
	adminEmails := parseCSV(cfg.AdminEmails)
	adminUIDs := parseCSV(cfg.AdminUIDs)

	return func(c *fiber.Ctx) error {
		if cfg.AdminToken != "" {
			header := c.Get("X-Admin-Token")
			if subtle.ConstantTimeCompare([]byte(header), []byte(cfg.AdminToken)) == 1 {
				return c.Next()
			}
		}

		identity := Identity(c)
		if identity == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "unauthorized access",
			})
		}

		if contains(adminEmails, identity.Email) || contains(adminUIDs, identity.UID) {
			return c.Next()
		}

		var user models.User
		if err := db.First(&user, "uid = ?", identity.UID).Error; err == nil {
			if user.IsAdmin || user.Role == "admin" {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: "Admin access required",
		})
	}
}

func parseCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func contains(list []string, val string) bool {
	for _, item := range list {
		if item == val {
			return true
		}
	}
	return false
}
