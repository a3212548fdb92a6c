package customerchanges

import (
	"context"
	"errors"
	"time"

	"github.com/joe700619/SmartFirm/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrChangeNotFound    = errors.New("Customer change not found")
	ErrUnknownChangeType = errors.New("Unknown change type")
)

type Service struct {
	DB *gorm.DB
}

type ChangeInput struct {
	CompanyID           string    `json:"company_id"`
	CompanyName         string    `json:"company_name"`
	AccountingAssistant string    `json:"accounting_assistant"`
	OverdueDays         int       `json:"overdue_days"`
	EstablishmentDate   time.Time `json:"-"`
	ChangeType          string    `json:"change_type"`
	InvoiceQuantity     bool      `json:"invoice_quantity"`
	IDCopy              bool      `json:"id_copy"`
	LeaseAndTax         bool      `json:"lease_and_tax"`
}

func validChangeType(t string) bool {
	switch t {
	case models.ChangeNewEstablishment, models.ChangeTransferIn,
		models.ChangeTransferOut, models.ChangeDissolution:
		return true
	}
	return false
}

func (s *Service) List(ctx context.Context, changeType string) ([]models.CustomerChange, error) {
	q := s.DB.WithContext(ctx).Where("is_deleted = ?", false)
	if changeType != "" {
		if !validChangeType(changeType) {
			return nil, ErrUnknownChangeType
		}
		q = q.Where("change_type = ?", changeType)
	}
	var changes []models.CustomerChange
	if err := q.Order("created_at DESC").Find(&changes).Error; err != nil {
		return nil, err
	}
	return changes, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.CustomerChange, error) {
	var change models.CustomerChange
	err := s.DB.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&change).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrChangeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &change, nil
}

func (s *Service) Create(ctx context.Context, in ChangeInput) (*models.CustomerChange, error) {
	if !validChangeType(in.ChangeType) {
		return nil, ErrUnknownChangeType
	}
	change := &models.CustomerChange{
		CompanyID:           in.CompanyID,
		CompanyName:         in.CompanyName,
		AccountingAssistant: in.AccountingAssistant,
		OverdueDays:         in.OverdueDays,
		EstablishmentDate:   in.EstablishmentDate,
		ChangeType:          in.ChangeType,
		InvoiceQuantity:     in.InvoiceQuantity,
		IDCopy:              in.IDCopy,
		LeaseAndTax:         in.LeaseAndTax,
	}
	if err := s.DB.WithContext(ctx).Create(change).Error; err != nil {
		return nil, err
	}
	return change, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, in ChangeInput) (*models.CustomerChange, error) {
	if !validChangeType(in.ChangeType) {
		return nil, ErrUnknownChangeType
	}
	change, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	change.CompanyID = in.CompanyID
	change.CompanyName = in.CompanyName
	change.AccountingAssistant = in.AccountingAssistant
	change.OverdueDays = in.OverdueDays
	change.EstablishmentDate = in.EstablishmentDate
	change.ChangeType = in.ChangeType
	change.InvoiceQuantity = in.InvoiceQuantity
	change.IDCopy = in.IDCopy
	change.LeaseAndTax = in.LeaseAndTax
	if err := s.DB.WithContext(ctx).Save(change).Error; err != nil {
		return nil, err
	}
	return change, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.DB.WithContext(ctx).Model(&models.CustomerChange{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Update("is_deleted", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrChangeNotFound
	}
	return nil
}
