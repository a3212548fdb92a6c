package users

import (
	"context"
	"errors"

	"github.com/joe700619/SmartFirm/internal/constants"
	"github.com/joe700619/SmartFirm/internal/models"
	"github.com/joe700619/SmartFirm/internal/pkg/validation"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound    = errors.New("User not found")
	ErrEmailTaken      = errors.New("Email already registered")
	ErrInvalidEmail    = errors.New("Invalid email format")
	ErrWeakPassword    = errors.New("Password must be at least 8 characters with a letter, a digit and a special character")
	ErrUnknownRole     = errors.New("Unknown role")
	ErrSelfDeactivated = errors.New("Cannot delete your own account")
)

type Service struct {
	DB *gorm.DB
}

func validRole(role string) bool {
	switch role {
	case constants.Viewer, constants.Staff, constants.Manager, constants.Admin:
		return true
	}
	return false
}

func (s *Service) List(ctx context.Context) ([]models.User, error) {
	var staff []models.User
	if err := s.DB.WithContext(ctx).
		Where("is_deleted = ?", false).
		Order("created_at ASC").
		Find(&staff).Error; err != nil {
		return nil, err
	}
	return staff, nil
}

type CreateInput struct {
	Fullname string `json:"fullname"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*models.User, error) {
	if !validation.IsValidEmail(in.Email) {
		return nil, ErrInvalidEmail
	}
	if !validation.IsValidPassword(in.Password) {
		return nil, ErrWeakPassword
	}
	role := in.Role
	if role == "" {
		role = constants.Viewer
	}
	if !validRole(role) {
		return nil, ErrUnknownRole
	}

	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.User{}).
		Where("email = ? AND is_deleted = ?", in.Email, false).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Fullname:     in.Fullname,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.DB.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) UpdateRole(ctx context.Context, id uuid.UUID, role string) (*models.User, error) {
	if !validRole(role) {
		return nil, ErrUnknownRole
	}
	var user models.User
	err := s.DB.WithContext(ctx).
		Where("user_id = ? AND is_deleted = ?", id, false).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	user.Role = role
	if err := s.DB.WithContext(ctx).Save(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Delete soft-deletes a user. Deleting the calling admin's own account
// is refused so the firm can't lock itself out.
func (s *Service) Delete(ctx context.Context, id, callerID uuid.UUID) error {
	if id == callerID {
		return ErrSelfDeactivated
	}
	res := s.DB.WithContext(ctx).Model(&models.User{}).
		Where("user_id = ? AND is_deleted = ?", id, false).
		Update("is_deleted", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}
