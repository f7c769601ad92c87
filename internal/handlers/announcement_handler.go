package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/threadup-app/backend/internal/dto"
	"github.com/threadup-app/backend/internal/models"
	"github.com/threadup-app/backend/internal/services"
)

type AnnouncementHandler struct {
	announcementService *services.AnnouncementService
}

func NewAnnouncementHandler(announcementService *services.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{announcementService: announcementService}
}

func (h *AnnouncementHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateAnnouncementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	announcement := models.Announcement{
		Title:       req.Title,
		Description: req.Description,
		AuthorName:  req.AuthorName,
		AuthorImage: req.AuthorImage,
	}
	if err := h.announcementService.Create(&announcement); err != nil {
		if services.IsValidation(err) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create announcement",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"result":  announcement,
	})
}

func (h *AnnouncementHandler) List(c *fiber.Ctx) error {
	announcements, err := h.announcementService.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch announcements",
		})
	}

	return c.JSON(fiber.Map{
		"success":       true,
		"announcements": announcements,
	})
}

// Latest returns a single-element list, or an empty one, mirroring what the
// banner component consumes.
func (h *AnnouncementHandler) Latest(c *fiber.Ctx) error {
	latest, err := h.announcementService.Latest()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch latest announcement",
		})
	}

	if latest == nil {
		return c.JSON([]models.Announcement{})
	}
	return c.JSON([]models.Announcement{*latest})
}
