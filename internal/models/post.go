package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Post carries a denormalized author snapshot so the feed renders without a
// join, matching what clients already send. Tag is the legacy single-tag
// field; Tags is the current multi-tag form. Both coexist.
type Post struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"_id"`
	Title       string         `gorm:"size:300;not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	AuthorName  string         `gorm:"size:255" json:"authorName"`
	AuthorEmail string         `gorm:"size:255;index" json:"authorEmail"`
	AuthorUID   string         `gorm:"size:128;index" json:"authorUid"`
	AuthorImage string         `gorm:"size:1024" json:"authorImage"`
	Tag         string         `gorm:"size:100" json:"tag"`
	Tags        datatypes.JSON `gorm:"type:json" json:"tags"`
	ImageURL    string         `gorm:"size:1024" json:"imageUrl"`
	Visible     bool           `gorm:"default:true" json:"isVisible"`
	UpVote      int            `gorm:"default:0" json:"upVote"`
	DownVote    int            `gorm:"default:0" json:"downVote"`
	CreatedAt   time.Time      `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`

	Comments []Comment `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Comment rows are keyed by their own UUID rather than their position in the
// post's comment list, so a report stays valid across inserts and deletes.
type Comment struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"_id"`
	PostID      uuid.UUID `gorm:"type:uuid;not null;index" json:"postId"`
	AuthorName  string    `gorm:"size:255" json:"authorName"`
	AuthorImage string    `gorm:"size:1024" json:"authorImage"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	CreatedAt   time.Time `gorm:"index" json:"createdAt"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
