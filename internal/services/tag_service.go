package services

import (
	"strings"

	"github.com/threadup-app/backend/internal/models"
	"gorm.io/gorm"
)

type TagService struct {
	db *gorm.DB
}

func NewTagService(db *gorm.DB) *TagService {
	return &TagService{db: db}
}

// Create inserts a tag. Names are not deduplicated; creating the same name
// twice yields two rows (matches the existing admin tooling's expectations).
func (s *TagService) Create(tag *models.Tag) error {
	if strings.TrimSpace(tag.Name) == "" {
		return validationError("name is required")
	}
	return s.db.Create(tag).Error
}

func (s *TagService) List() ([]models.Tag, error) {
	var tags []models.Tag
	err := s.db.Find(&tags).Error
	return tags, err
}
