package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/threadup-app/backend/internal/dto"
	"github.com/threadup-app/backend/internal/models"
	"github.com/threadup-app/backend/internal/services"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Register provisions a user on first sign-in; an existing UID returns 200
// without mutation beyond the login timestamp.
func (h *UserHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	user := models.User{
		UID:      req.UID,
		Email:    req.Email,
		Name:     req.Name,
		PhotoURL: req.PhotoURL,
	}
	stored, created, err := h.userService.Register(&user)
	if err != nil {
		if services.IsValidation(err) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to register user",
		})
	}

	if !created {
		return c.JSON(fiber.Map{"message": "User already exists", "user": stored})
	}
	return c.Status(fiber.StatusCreated).JSON(stored)
}

func (h *UserHandler) GetByUID(c *fiber.Ctx) error {
	user, err := h.userService.GetByUID(c.Params("uid"))
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "User not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch user",
		})
	}
	return c.JSON(user)
}

func (h *UserHandler) ListAll(c *fiber.Ctx) error {
	users, err := h.userService.ListAll()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch users",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"users":   users,
		"count":   len(users),
	})
}

func (h *UserHandler) MakeAdmin(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid user ID",
		})
	}

	promoted, err := h.userService.MakeAdmin(id)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "User not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	if !promoted {
		return c.JSON(fiber.Map{
			"success": true,
			"message": "User is already an admin",
		})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "User promoted to admin successfully",
	})
}

// UpdateUser applies the membership upgrade after the payment has settled
// server side. The client cannot trigger an upgrade by claiming success.
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if req.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Email is required",
		})
	}

	upgraded, err := h.userService.UpgradeMembership(req.Email)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "User not found",
			})
		case errors.Is(err, services.ErrPaymentNotVerified):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Internal server error",
			})
		}
	}

	if !upgraded {
		return c.JSON(fiber.Map{
			"success": true,
			"message": "User already has these values",
		})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "User updated to premium member successfully",
	})
}
