package contacts

import (
	"context"
	"errors"

	"github.com/joe700619/SmartFirm/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrContactNotFound = errors.New("Contact not found")

type Service struct {
	DB *gorm.DB
}

type ContactInput struct {
	CompanyName string  `json:"company_name"`
	CompanyID   string  `json:"company_id"`
	Name        string  `json:"name"`
	Position    *string `json:"position"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	Mobile      *string `json:"mobile"`
	Fax         *string `json:"fax"`
	Address     *string `json:"address"`
	Notes       *string `json:"notes"`
}

func (s *Service) List(ctx context.Context, search string) ([]models.Contact, error) {
	q := s.DB.WithContext(ctx).Where("is_deleted = ?", false)
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("company_name LIKE ? OR name LIKE ?", like, like)
	}
	var contacts []models.Contact
	if err := q.Order("created_at DESC").Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Contact, error) {
	var contact models.Contact
	err := s.DB.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&contact).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrContactNotFound
	}
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

func (s *Service) Create(ctx context.Context, in ContactInput) (*models.Contact, error) {
	contact := &models.Contact{
		CompanyName: in.CompanyName,
		CompanyID:   in.CompanyID,
		Name:        in.Name,
		Position:    in.Position,
		Email:       in.Email,
		Phone:       in.Phone,
		Mobile:      in.Mobile,
		Fax:         in.Fax,
		Address:     in.Address,
		Notes:       in.Notes,
	}
	if err := s.DB.WithContext(ctx).Create(contact).Error; err != nil {
		return nil, err
	}
	return contact, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, in ContactInput) (*models.Contact, error) {
	contact, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	contact.CompanyName = in.CompanyName
	contact.CompanyID = in.CompanyID
	contact.Name = in.Name
	contact.Position = in.Position
	contact.Email = in.Email
	contact.Phone = in.Phone
	contact.Mobile = in.Mobile
	contact.Fax = in.Fax
	contact.Address = in.Address
	contact.Notes = in.Notes
	if err := s.DB.WithContext(ctx).Save(contact).Error; err != nil {
		return nil, err
	}
	return contact, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.DB.WithContext(ctx).Model(&models.Contact{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Update("is_deleted", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrContactNotFound
	}
	return nil
}
