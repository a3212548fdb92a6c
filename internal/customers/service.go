package customers

import (
	"context"
	"errors"

	"github.com/joe700619/SmartFirm/internal/models"
	"github.com/joe700619/SmartFirm/internal/pkg/validation"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrCompanyNotFound  = errors.New("Company not found")
	ErrCompanyIDTaken   = errors.New("Company ID already registered")
	ErrInvalidCompanyID = errors.New("Invalid company ID format (must be 8 digits)")
)

type Service struct {
	DB *gorm.DB
}

type CompanyInput struct {
	CompanyID           string  `json:"company_id"`
	CompanyName         string  `json:"company_name"`
	ContactPerson       string  `json:"contact_person"`
	Email               *string `json:"email"`
	PhoneNumber         *string `json:"phone_number"`
	MobileNumber        *string `json:"mobile_number"`
	LineID              *string `json:"line_id"`
	FaxNumber           *string `json:"fax_number"`
	AccountLast5        *string `json:"account_last_5"`
	RegistrationAddress string  `json:"registration_address"`
	MailingAddress      string  `json:"mailing_address"`
	ImportantNotes      *string `json:"important_notes"`
}

// ListResult carries one page of companies plus the pagination metadata
// echoed in the response envelope.
type ListResult struct {
	Companies []models.Company
	Total     int64
	Page      int
	PageSize  int
}

func (s *Service) List(ctx context.Context, search string, page, pageSize int) (*ListResult, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	q := s.DB.WithContext(ctx).Model(&models.Company{}).Where("is_deleted = ?", false)
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("company_name LIKE ? OR company_id LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, err
	}

	var companies []models.Company
	if err := q.Order("created_at DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&companies).Error; err != nil {
		return nil, err
	}

	return &ListResult{Companies: companies, Total: total, Page: page, PageSize: pageSize}, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	var company models.Company
	err := s.DB.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&company).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCompanyNotFound
	}
	if err != nil {
		return nil, err
	}
	return &company, nil
}

// GetByCompanyID looks up by the 8-digit unified business number.
func (s *Service) GetByCompanyID(ctx context.Context, companyID string) (*models.Company, error) {
	var company models.Company
	err := s.DB.WithContext(ctx).
		Where("company_id = ? AND is_deleted = ?", companyID, false).
		First(&company).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCompanyNotFound
	}
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (s *Service) Create(ctx context.Context, in CompanyInput) (*models.Company, error) {
	if !validation.IsValidCompanyID(in.CompanyID) {
		return nil, ErrInvalidCompanyID
	}

	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.Company{}).
		Where("company_id = ? AND is_deleted = ?", in.CompanyID, false).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrCompanyIDTaken
	}

	company := &models.Company{
		CompanyID:           in.CompanyID,
		CompanyName:         in.CompanyName,
		ContactPerson:       in.ContactPerson,
		Email:               in.Email,
		PhoneNumber:         in.PhoneNumber,
		MobileNumber:        in.MobileNumber,
		LineID:              in.LineID,
		FaxNumber:           in.FaxNumber,
		AccountLast5:        in.AccountLast5,
		RegistrationAddress: in.RegistrationAddress,
		MailingAddress:      in.MailingAddress,
		ImportantNotes:      in.ImportantNotes,
	}
	if err := s.DB.WithContext(ctx).Create(company).Error; err != nil {
		return nil, err
	}
	return company, nil
}

// Update modifies a company master record. The unified business number
// is immutable once set.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in CompanyInput) (*models.Company, error) {
	company, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	company.CompanyName = in.CompanyName
	company.ContactPerson = in.ContactPerson
	company.Email = in.Email
	company.PhoneNumber = in.PhoneNumber
	company.MobileNumber = in.MobileNumber
	company.LineID = in.LineID
	company.FaxNumber = in.FaxNumber
	company.AccountLast5 = in.AccountLast5
	company.RegistrationAddress = in.RegistrationAddress
	company.MailingAddress = in.MailingAddress
	company.ImportantNotes = in.ImportantNotes

	if err := s.DB.WithContext(ctx).Save(company).Error; err != nil {
		return nil, err
	}
	return company, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.DB.WithContext(ctx).Model(&models.Company{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Update("is_deleted", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCompanyNotFound
	}
	return nil
}
