package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/threadup-app/backend/internal/database"
	"github.com/threadup-app/backend/internal/dto"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	dbStatus := "ok"
	if err := database.Ping(h.db); err != nil {
		dbStatus = "unhealthy: " + err.Error()
	}

	return c.JSON(dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        dbStatus,
	})
}

// Root answers uptime probes.
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.SendString("I am Awake!")
}

func (h *HealthHandler) Test(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "success"})
}
