package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is provisioned on first sign-in; credentials live with the identity
// provider, so only the decoded profile is stored here.
type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UID         string    `gorm:"size:128;not null;uniqueIndex" json:"uid"`
	Email       string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Name        string    `gorm:"size:255" json:"name"`
	PhotoURL    string    `gorm:"size:1024" json:"photoURL"`
	Role        string    `gorm:"size:20;default:'user'" json:"role"`
	IsAdmin     bool      `gorm:"default:false" json:"isAdmin"`
	IsMember    bool      `gorm:"default:false" json:"isMember"`
	Badge       string    `gorm:"size:20;default:'bronze'" json:"badge"`
	PostCount   int       `gorm:"default:0" json:"postCount"`
	CreatedAt   time.Time `json:"createdAt"`
	LastLoginAt time.Time `json:"lastLoginAt"`
	UpdatedAt   time.Time `json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
