package shareholders

import (
	"context"
	"errors"
	"time"

	"github.com/joe700619/SmartFirm/internal/models"
	"github.com/joe700619/SmartFirm/internal/pkg/validation"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrShareholderNotFound = errors.New("Shareholder not found")
	ErrHoldingNotFound     = errors.New("Shareholding not found")
	ErrIdentifierTaken     = errors.New("Identifier already registered")
	ErrInvalidIdentifier   = errors.New("Invalid identifier format (national ID or 8-digit business number)")
	ErrUnknownTxType       = errors.New("Unknown transaction type")
	ErrUnknownStockClass   = errors.New("Unknown stock class")
	ErrZeroQuantity        = errors.New("Quantity must not be zero")
)

type Service struct {
	DB *gorm.DB
}

type ShareholderInput struct {
	Identifier string  `json:"identifier"`
	Name       string  `json:"name"`
	Address    *string `json:"address"`
	Phone      *string `json:"phone"`
	Email      *string `json:"email"`
}

func (s *Service) List(ctx context.Context, search string) ([]models.Shareholder, error) {
	q := s.DB.WithContext(ctx).Where("is_deleted = ?", false)
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("name LIKE ? OR identifier LIKE ?", like, like)
	}
	var shareholders []models.Shareholder
	if err := q.Order("created_at DESC").Find(&shareholders).Error; err != nil {
		return nil, err
	}
	return shareholders, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Shareholder, error) {
	var shareholder models.Shareholder
	err := s.DB.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&shareholder).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrShareholderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &shareholder, nil
}

func (s *Service) Create(ctx context.Context, in ShareholderInput) (*models.Shareholder, error) {
	if !validation.IsValidIdentifier(in.Identifier) {
		return nil, ErrInvalidIdentifier
	}
	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.Shareholder{}).
		Where("identifier = ? AND is_deleted = ?", in.Identifier, false).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrIdentifierTaken
	}

	shareholder := &models.Shareholder{
		Identifier: in.Identifier,
		Name:       in.Name,
		Address:    in.Address,
		Phone:      in.Phone,
		Email:      in.Email,
	}
	if err := s.DB.WithContext(ctx).Create(shareholder).Error; err != nil {
		return nil, err
	}
	return shareholder, nil
}

// Update modifies contact fields. The identifier is immutable.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in ShareholderInput) (*models.Shareholder, error) {
	shareholder, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	shareholder.Name = in.Name
	shareholder.Address = in.Address
	shareholder.Phone = in.Phone
	shareholder.Email = in.Email
	if err := s.DB.WithContext(ctx).Save(shareholder).Error; err != nil {
		return nil, err
	}
	return shareholder, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.DB.WithContext(ctx).Model(&models.Shareholder{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Update("is_deleted", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrShareholderNotFound
	}
	return nil
}

// getOrCreateHolding finds the (shareholder, company) pair, creating it
// on first use. Runs inside the caller's transaction.
func getOrCreateHolding(tx *gorm.DB, shareholderID, companyID uuid.UUID) (*models.Shareholding, error) {
	var holding models.Shareholding
	err := tx.Where("shareholder_id = ? AND company_id = ?", shareholderID, companyID).
		First(&holding).Error
	if err == nil {
		return &holding, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	holding = models.Shareholding{
		ShareholderID: shareholderID,
		CompanyID:     companyID,
	}
	if err := tx.Create(&holding).Error; err != nil {
		return nil, err
	}
	return &holding, nil
}

type TransactionInput struct {
	ShareholderID   uuid.UUID
	CompanyID       uuid.UUID
	TransactionDate time.Time
	Description     string
	TransactionType string
	StockClass      string
	ParValue        decimal.Decimal
	Quantity        int64
	Amount          decimal.NullDecimal
	Note            string
}

// RecordTransaction appends one entry to the equity log, creating the
// shareholding pair on first use.
func (s *Service) RecordTransaction(ctx context.Context, in TransactionInput) (*models.StockTransaction, error) {
	if !models.ValidTransactionType(in.TransactionType) {
		return nil, ErrUnknownTxType
	}
	stockClass := in.StockClass
	if stockClass == "" {
		stockClass = models.StockCommon
	}
	if !models.ValidStockClass(stockClass) {
		return nil, ErrUnknownStockClass
	}
	if in.Quantity == 0 {
		return nil, ErrZeroQuantity
	}

	var shareholder models.Shareholder
	err := s.DB.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", in.ShareholderID, false).
		First(&shareholder).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrShareholderNotFound
	}
	if err != nil {
		return nil, err
	}

	parValue := in.ParValue
	if parValue.IsZero() {
		parValue = decimal.NewFromInt(10)
	}

	var record *models.StockTransaction
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		holding, err := getOrCreateHolding(tx, in.ShareholderID, in.CompanyID)
		if err != nil {
			return err
		}
		record = &models.StockTransaction{
			ShareholdingID:  holding.ID,
			TransactionDate: in.TransactionDate,
			Description:     in.Description,
			TransactionType: in.TransactionType,
			StockClass:      stockClass,
			ParValue:        parValue,
			Quantity:        in.Quantity,
			Amount:          in.Amount,
			Note:            in.Note,
		}
		return tx.Create(record).Error
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// Holdings lists a shareholder's (company, holding) pairs.
func (s *Service) Holdings(ctx context.Context, shareholderID uuid.UUID) ([]models.Shareholding, error) {
	var holdings []models.Shareholding
	if err := s.DB.WithContext(ctx).
		Where("shareholder_id = ?", shareholderID).
		Order("created_at ASC").
		Find(&holdings).Error; err != nil {
		return nil, err
	}
	return holdings, nil
}

// GetHolding resolves a holding by ID.
func (s *Service) GetHolding(ctx context.Context, holdingID uuid.UUID) (*models.Shareholding, error) {
	var holding models.Shareholding
	err := s.DB.WithContext(ctx).
		Preload("Shareholder").
		Where("id = ?", holdingID).
		First(&holding).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrHoldingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &holding, nil
}

// RemoveTransaction soft-deletes one equity log entry. Derived views
// recompute without it.
func (s *Service) RemoveTransaction(ctx context.Context, txID uuid.UUID) error {
	res := s.DB.WithContext(ctx).Model(&models.StockTransaction{}).
		Where("id = ? AND is_deleted = ?", txID, false).
		Update("is_deleted", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
