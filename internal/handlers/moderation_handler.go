package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/threadup-app/backend/internal/dto"
	"github.com/threadup-app/backend/internal/services"
)

type ModerationHandler struct {
	moderationService *services.ModerationService
}

func NewModerationHandler(moderationService *services.ModerationService) *ModerationHandler {
	return &ModerationHandler{moderationService: moderationService}
}

func (h *ModerationHandler) ReportComment(c *fiber.Ctx) error {
	var req dto.ReportCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if req.PostID == "" || req.CommentID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "postId and commentId are required",
		})
	}

	postID, err := uuid.Parse(req.PostID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid post ID",
		})
	}
	commentID, err := uuid.Parse(req.CommentID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid comment ID",
		})
	}

	report, err := h.moderationService.CreateReport(postID, commentID, req.Reason, req.CommentText)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDuplicateReport):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: "This comment has already been reported",
			})
		case services.IsValidation(err):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to report comment",
			})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":  true,
		"message":  "Comment reported successfully",
		"reportId": report.ID,
	})
}

func (h *ModerationHandler) ListReports(c *fiber.Ctx) error {
	reports, err := h.moderationService.ListReports(c.Query("status", ""))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch reported comments",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"reports": reports,
		"count":   len(reports),
	})
}

// KeepComment resolves a report without touching the comment.
func (h *ModerationHandler) KeepComment(c *fiber.Ctx) error {
	reportID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid report ID",
		})
	}

	if err := h.moderationService.KeepComment(reportID); err != nil {
		if errors.Is(err, services.ErrReportNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Reported comment not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to resolve report",
		})
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"message":    "Report reviewed, comment kept",
		"reviewedId": reportID,
	})
}

// DeleteComment resolves a report by removing the comment and the report.
func (h *ModerationHandler) DeleteComment(c *fiber.Ctx) error {
	reportID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid report ID",
		})
	}

	if err := h.moderationService.DeleteComment(reportID); err != nil {
		switch {
		case errors.Is(err, services.ErrReportNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Report not found",
			})
		case errors.Is(err, services.ErrPostNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Post not found",
			})
		case errors.Is(err, services.ErrCommentNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Comment not found for this report",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to delete reported comment",
			})
		}
	}

	return c.JSON(fiber.Map{
		"success":         true,
		"message":         "Comment and report deleted successfully",
		"deletedReportId": reportID,
	})
}
