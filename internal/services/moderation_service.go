package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/threadup-app/backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrReportNotFound  = errors.New("report not found")
	ErrDuplicateReport = errors.New("this comment has already been reported")
)

// ModerationService owns the comment-report workflow: intake, listing, and
// the two resolution paths (keep the comment, or delete it with the report).
type ModerationService struct {
	db *gorm.DB
}

func NewModerationService(db *gorm.DB) *ModerationService {
	return &ModerationService{db: db}
}

// CreateReport files a pending report for one comment on one post. At most
// one pending report may exist per (post, comment) pair; the existence check
// and the insert are two statements, so a narrow race window remains, bounded
// by the composite index lookup.
func (s *ModerationService) CreateReport(postID, commentID uuid.UUID, reason, commentText string) (*models.Report, error) {
	if postID == uuid.Nil || commentID == uuid.Nil {
		return nil, validationError("postId and commentId are required")
	}
	if strings.TrimSpace(reason) == "" {
		return nil, validationError("reason is required")
	}

	var existing models.Report
	err := s.db.Where("post_id = ? AND comment_id = ? AND status = ?",
		postID, commentID, models.ReportStatusPending).First(&existing).Error
	if err == nil {
		return nil, ErrDuplicateReport
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	report := models.Report{
		PostID:      postID,
		CommentID:   commentID,
		Reason:      reason,
		CommentText: commentText,
		Status:      models.ReportStatusPending,
		ReportedAt:  time.Now().UTC(),
	}
	if err := s.db.Create(&report).Error; err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}
	return &report, nil
}

// ListReports returns every report, newest first, optionally filtered by
// status. The admin panel consumes the full set; there is no pagination.
func (s *ModerationService) ListReports(status string) ([]models.Report, error) {
	var reports []models.Report
	query := s.db.Model(&models.Report{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Order("reported_at DESC").Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

// KeepComment resolves a report in the comment's favor: the report is marked
// reviewed and the comment is left untouched. Re-invoking on an already
// reviewed report is a no-op success.
func (s *ModerationService) KeepComment(reportID uuid.UUID) error {
	var report models.Report
	if err := s.db.First(&report, "id = ?", reportID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReportNotFound
		}
		return err
	}

	if report.Status == models.ReportStatusReviewed {
		return nil
	}
	return s.db.Model(&report).Update("status", models.ReportStatusReviewed).Error
}

// DeleteComment resolves a report against the comment: the comment row and
// the report row are removed in one transaction. Any lookup failure aborts
// before anything is mutated, so a half-applied resolution cannot leave an
// orphaned report behind.
func (s *ModerationService) DeleteComment(reportID uuid.UUID) error {
	var report models.Report
	if err := s.db.First(&report, "id = ?", reportID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReportNotFound
		}
		return err
	}
	if report.PostID == uuid.Nil {
		return ErrReportNotFound
	}

	var post models.Post
	if err := s.db.First(&post, "id = ?", report.PostID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return err
	}

	var comment models.Comment
	if err := s.db.First(&comment, "id = ? AND post_id = ?", report.CommentID, report.PostID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&comment).Error; err != nil {
			return err
		}
		return tx.Delete(&report).Error
	})
}
