package handlers

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/threadup-app/backend/internal/dto"
	"github.com/threadup-app/backend/internal/middleware"
	"github.com/threadup-app/backend/internal/models"
	"github.com/threadup-app/backend/internal/services"
	"gorm.io/datatypes"
)

type PostHandler struct {
	postService *services.PostService
}

func NewPostHandler(postService *services.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

func (h *PostHandler) Create(c *fiber.Ctx) error {
	var req dto.CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	identity := middleware.Identity(c)
	if identity == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "unauthorized access",
		})
	}

	post := models.Post{
		Title:       req.Title,
		Description: req.Description,
		AuthorName:  req.AuthorName,
		AuthorEmail: identity.Email,
		AuthorUID:   identity.UID,
		AuthorImage: req.AuthorImage,
		Tag:         req.Tag,
		ImageURL:    req.ImageURL,
		Visible:     true,
	}
	if req.IsVisible != nil {
		post.Visible = *req.IsVisible
	}
	if len(req.Tags) > 0 {
		if b, err := json.Marshal(req.Tags); err == nil {
			post.Tags = datatypes.JSON(b)
		}
	}

	if err := h.postService.Create(&post); err != nil {
		if services.IsValidation(err) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create post",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"result":  post,
	})
}

func (h *PostHandler) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid ID format",
		})
	}

	post, err := h.postService.GetByID(id)
	if err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Post not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch post",
		})
	}

	return c.JSON(post)
}

func (h *PostHandler) Search(c *fiber.Ctx) error {
	posts, err := h.postService.Search(c.Query("search", ""))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch posts",
		})
	}

	return c.JSON(fiber.Map{"success": true, "posts": posts})
}

func (h *PostHandler) MyPosts(c *fiber.Ctx) error {
	return h.listByAuthor(c, 0)
}

// ThreePosts serves the profile preview: the author's three newest posts.
func (h *PostHandler) ThreePosts(c *fiber.Ctx) error {
	return h.listByAuthor(c, 3)
}

func (h *PostHandler) listByAuthor(c *fiber.Ctx, limit int) error {
	email := c.Query("email")
	if email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Email is required",
		})
	}

	posts, err := h.postService.ListByAuthor(email, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch posts",
		})
	}

	return c.JSON(fiber.Map{"success": true, "posts": posts})
}

func (h *PostHandler) UserPostCount(c *fiber.Ctx) error {
	email := c.Query("email")
	if email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Email is required",
		})
	}

	count, err := h.postService.CountByAuthor(email)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to get post count",
		})
	}

	return c.JSON(fiber.Map{"success": true, "postCount": count})
}

func (h *PostHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid ID format",
		})
	}

	identity := middleware.Identity(c)
	if identity == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "unauthorized access",
		})
	}

	if err := h.postService.Delete(id, identity.UID); err != nil {
		switch {
		case errors.Is(err, services.ErrPostNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Post not found",
			})
		case errors.Is(err, services.ErrNotPostAuthor):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to delete post",
			})
		}
	}

	return c.JSON(fiber.Map{
		"message":   "Post deleted successfully",
		"deletedId": id,
	})
}

func (h *PostHandler) Upvote(c *fiber.Ctx) error {
	return h.vote(c, h.postService.Upvote, "Upvoted successfully")
}

func (h *PostHandler) Downvote(c *fiber.Ctx) error {
	return h.vote(c, h.postService.Downvote, "Downvoted successfully")
}

func (h *PostHandler) vote(c *fiber.Ctx, adjust func(uuid.UUID) error, message string) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid ID format",
		})
	}

	if err := adjust(id); err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Post not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to register vote",
		})
	}

	return c.JSON(fiber.Map{"message": message})
}

func (h *PostHandler) AddComment(c *fiber.Ctx) error {
	postID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid ID format",
		})
	}

	var req dto.AddCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	comment := models.Comment{
		Content:     req.Content,
		AuthorName:  req.AuthorName,
		AuthorImage: req.AuthorImage,
		CreatedAt:   time.Now().UTC(),
	}
	if err := h.postService.AddComment(postID, &comment); err != nil {
		switch {
		case errors.Is(err, services.ErrPostNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Post not found",
			})
		case services.IsValidation(err):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to add comment",
			})
		}
	}

	return c.JSON(fiber.Map{
		"message": "Comment added successfully",
		"comment": comment,
	})
}

// Counts backs the landing page's post/comment/user tallies.
func (h *PostHandler) Counts(c *fiber.Ctx) error {
	counts, err := h.postService.Counts()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to get numbers",
		})
	}
	return c.JSON(counts)
}
