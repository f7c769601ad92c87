package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/threadup-app/backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrPostNotFound    = errors.New("post not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrNotPostAuthor   = errors.New("only the author can delete this post")
)

type PostService struct {
	db *gorm.DB
}

func NewPostService(db *gorm.DB) *PostService {
	return &PostService{db: db}
}

// visibleOnly scopes queries to posts the author has not hidden.
func visibleOnly(db *gorm.DB) *gorm.DB {
	return db.Where("visible = ?", true)
}

func (s *PostService) Create(post *models.Post) error {
	if strings.TrimSpace(post.Title) == "" {
		return validationError("title is required")
	}
	if post.AuthorEmail == "" || post.AuthorUID == "" {
		return validationError("author identity is required")
	}

	if err := s.db.Create(post).Error; err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	// Counter cache on the author record; a stale counter must not fail
	// the write that already happened.
	if err := s.db.Model(&models.User{}).Where("uid = ?", post.AuthorUID).
		Update("post_count", gorm.Expr("post_count + 1")).Error; err != nil {
		slog.Warn("post_count increment failed", "uid", post.AuthorUID, "error", err)
	}
	return nil
}

func (s *PostService) GetByID(id uuid.UUID) (*models.Post, error) {
	var post models.Post
	err := s.db.Preload("Comments", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC")
	}).First(&post, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// likeEscaper neutralizes LIKE metacharacters so a query is matched as a
// literal substring.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Search matches the query case-insensitively against title and description,
// newest first. An empty query returns every visible post.
func (s *PostService) Search(query string) ([]models.Post, error) {
	var posts []models.Post
	q := s.db.Scopes(visibleOnly).Order("created_at DESC")
	if query != "" {
		like := "%" + likeEscaper.Replace(strings.ToLower(query)) + "%"
		q = q.Where(`LOWER(title) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\'`, like, like)
	}
	if err := q.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *PostService) ListByAuthor(email string, limit int) ([]models.Post, error) {
	var posts []models.Post
	q := s.db.Where("author_email = ?", email).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *PostService) CountByAuthor(email string) (int64, error) {
	var count int64
	err := s.db.Model(&models.Post{}).Where("author_email = ?", email).Count(&count).Error
	return count, err
}

// Delete removes a post and its comments. Admins may delete any post; other
// callers must be the author.
func (s *PostService) Delete(id uuid.UUID, requesterUID string) error {
	var post models.Post
	if err := s.db.First(&post, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return err
	}

	if post.AuthorUID != requesterUID && !s.isAdmin(requesterUID) {
		return ErrNotPostAuthor
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&post).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.User{}).Where("uid = ? AND post_count > 0", post.AuthorUID).
			Update("post_count", gorm.Expr("post_count - 1")).Error; err != nil {
			slog.Warn("post_count decrement failed", "uid", post.AuthorUID, "error", err)
		}
		return nil
	})
}

func (s *PostService) isAdmin(uid string) bool {
	var user models.User
	if err := s.db.First(&user, "uid = ?", uid).Error; err != nil {
		return false
	}
	return user.IsAdmin || user.Role == "admin"
}

// Upvote increments the up-vote counter by one, unconditionally. The
// increment is atomic at the database, so concurrent votes never lose
// updates; nothing deduplicates repeat votes by the same caller.
func (s *PostService) Upvote(id uuid.UUID) error {
	return s.adjustVote(id, "up_vote")
}

func (s *PostService) Downvote(id uuid.UUID) error {
	return s.adjustVote(id, "down_vote")
}

func (s *PostService) adjustVote(id uuid.UUID, column string) error {
	result := s.db.Model(&models.Post{}).Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPostNotFound
	}
	return nil
}

// AddComment appends a comment to a post, assigning it a stable UUID.
func (s *PostService) AddComment(postID uuid.UUID, comment *models.Comment) error {
	if strings.TrimSpace(comment.Content) == "" {
		return validationError("content is required")
	}

	var count int64
	if err := s.db.Model(&models.Post{}).Where("id = ?", postID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrPostNotFound
	}

	comment.PostID = postID
	return s.db.Create(comment).Error
}

func (s *PostService) ListComments(postID uuid.UUID) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.Where("post_id = ?", postID).Order("created_at ASC").Find(&comments).Error
	return comments, err
}

// SiteCounts backs the landing-page counters.
type SiteCounts struct {
	PostCount    int64 `json:"postCount"`
	CommentCount int64 `json:"commentCount"`
	UserCount    int64 `json:"userCount"`
}

func (s *PostService) Counts() (*SiteCounts, error) {
	var counts SiteCounts
	if err := s.db.Model(&models.Post{}).Count(&counts.PostCount).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Comment{}).Count(&counts.CommentCount).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.User{}).Count(&counts.UserCount).Error; err != nil {
		return nil, err
	}
	return &counts, nil
}
