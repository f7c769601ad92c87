package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/threadup-app/backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrPaymentNotVerified = errors.New("no verified payment found for this email")
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// Register provisions a user on first sign-in. An existing UID is not an
// error: the login timestamp is refreshed and the stored record returned.
func (s *UserService) Register(user *models.User) (*models.User, bool, error) {
	if user.UID == "" || user.Email == "" {
		return nil, false, validationError("uid and email are required")
	}

	var existing models.User
	err := s.db.Where("uid = ?", user.UID).First(&existing).Error
	if err == nil {
		if err := s.db.Model(&existing).Update("last_login_at", time.Now().UTC()).Error; err != nil {
			slog.Warn("last_login_at refresh failed", "uid", existing.UID, "error", err)
		}
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	if user.Role == "" {
		user.Role = "user"
	}
	if user.Badge == "" {
		user.Badge = "bronze"
	}
	user.LastLoginAt = time.Now().UTC()

	if err := s.db.Create(user).Error; err != nil {
		return nil, false, fmt.Errorf("failed to create user: %w", err)
	}
	return user, true, nil
}

func (s *UserService) GetByUID(uid string) (*models.User, error) {
	var user models.User
	err := s.db.Where("uid = ?", uid).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) ListAll() ([]models.User, error) {
	var users []models.User
	err := s.db.Order("created_at DESC").Find(&users).Error
	return users, err
}

// MakeAdmin promotes a user by record ID. Promoting an existing admin is a
// success without mutation.
func (s *UserService) MakeAdmin(id uuid.UUID) (bool, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrUserNotFound
		}
		return false, err
	}

	if user.IsAdmin {
		return false, nil
	}

	err := s.db.Model(&user).Updates(map[string]interface{}{
		"is_admin": true,
		"role":     "admin",
	}).Error
	return err == nil, err
}

// UpgradeMembership applies the member/gold upgrade to the user with the
// given email, but only after a succeeded payment for that email has been
// verified server side. The payment row is consumed so one charge funds one
// upgrade. Already-upgraded users return success without mutation.
func (s *UserService) UpgradeMembership(email string) (bool, error) {
	if email == "" {
		return false, validationError("email is required")
	}

	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrUserNotFound
		}
		return false, err
	}

	if user.IsMember && user.Role == "member" && user.Badge == "gold" {
		return false, nil
	}

	var payment models.Payment
	err := s.db.Where("email = ? AND status = ?", email, models.PaymentStatusSucceeded).
		Order("created_at DESC").First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrPaymentNotVerified
		}
		return false, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&user).Updates(map[string]interface{}{
			"role":      "member",
			"badge":     "gold",
			"is_member": true,
		}).Error; err != nil {
			return err
		}
		return tx.Model(&payment).Update("status", models.PaymentStatusConsumed).Error
	})
	if err != nil {
		return false, err
	}
	return true, nil
}
