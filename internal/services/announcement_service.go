package services

import (
	"errors"
	"strings"

	"github.com/threadup-app/backend/internal/models"
	"gorm.io/gorm"
)

type AnnouncementService struct {
	db *gorm.DB
}

func NewAnnouncementService(db *gorm.DB) *AnnouncementService {
	return &AnnouncementService{db: db}
}

func (s *AnnouncementService) Create(a *models.Announcement) error {
	if strings.TrimSpace(a.Title) == "" {
		return validationError("title is required")
	}
	return s.db.Create(a).Error
}

func (s *AnnouncementService) List() ([]models.Announcement, error) {
	var announcements []models.Announcement
	err := s.db.Order("created_at DESC").Find(&announcements).Error
	return announcements, err
}

// Latest returns the newest announcement, or nil when none exist.
func (s *AnnouncementService) Latest() (*models.Announcement, error) {
	var a models.Announcement
	err := s.db.Order("created_at DESC").First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}
