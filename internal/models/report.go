package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ReportStatusPending  = "pending"
	ReportStatusReviewed = "reviewed"
)

// Report flags one comment on one post for admin review. CommentID is the
// comment's stable UUID; CommentText is a snapshot taken at report time so
// the admin panel can show it even after the comment changes hands.
type Report struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"_id"`
	PostID      uuid.UUID `gorm:"type:uuid;not null;index:idx_reports_post_comment" json:"postId"`
	CommentID   uuid.UUID `gorm:"type:uuid;not null;index:idx_reports_post_comment" json:"commentId"`
	Reason      string    `gorm:"size:500;not null" json:"reason"`
	CommentText string    `gorm:"type:text" json:"commentText"`
	Status      string    `gorm:"size:20;not null;default:'pending';index" json:"status"`
	ReportedAt  time.Time `gorm:"index" json:"reportedAt"`
}

func (r *Report) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
