package vatchecks

import (
	"context"
	"errors"
	"time"

	"github.com/joe700619/SmartFirm/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrCheckNotFound = errors.New("VAT check not found")
	ErrUnknownStatus = errors.New("Unknown status")
)

type Service struct {
	DB *gorm.DB
}

type ItemInput struct {
	CompanyID   string  `json:"company_id"`
	CompanyName string  `json:"company_name"`
	InputBuyer  *string `json:"input_buyer"`

	CheckInputAmount decimal.Decimal `json:"check_input_amount"`
	InputDuplicate   *string         `json:"input_duplicate"`
	OutputEInvoice   *string         `json:"output_e_invoice"`

	Form401OutputAmount     decimal.Decimal `json:"form401_output_amount"`
	Form401InputAmount      decimal.Decimal `json:"form401_input_amount"`
	TaxCreditCarriedForward decimal.Decimal `json:"tax_credit_carried_forward"`
	TaxPayable              decimal.Decimal `json:"tax_payable"`
	TaxRefundable           decimal.Decimal `json:"tax_refundable"`
}

type CheckInput struct {
	Date        time.Time
	CheckPeriod string      `json:"check_period"`
	Inspector   string      `json:"inspector"`
	Inspectee   string      `json:"inspectee"`
	Status      string      `json:"status"`
	Items       []ItemInput `json:"items"`
}

func validStatus(s string) bool {
	return s == models.VATCheckPending || s == models.VATCheckCompleted
}

func (s *Service) List(ctx context.Context, period string) ([]models.VATCheck, error) {
	q := s.DB.WithContext(ctx).Where("is_deleted = ?", false)
	if period != "" {
		q = q.Where("check_period = ?", period)
	}
	var checks []models.VATCheck
	if err := q.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC")
	}).Order("date DESC").Find(&checks).Error; err != nil {
		return nil, err
	}
	return checks, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.VATCheck, error) {
	var check models.VATCheck
	err := s.DB.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		First(&check).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCheckNotFound
	}
	if err != nil {
		return nil, err
	}
	return &check, nil
}

func (s *Service) Create(ctx context.Context, in CheckInput) (*models.VATCheck, error) {
	status := in.Status
	if status == "" {
		status = models.VATCheckPending
	}
	if !validStatus(status) {
		return nil, ErrUnknownStatus
	}

	check := &models.VATCheck{
		Date:        in.Date,
		CheckPeriod: in.CheckPeriod,
		Inspector:   in.Inspector,
		Inspectee:   in.Inspectee,
		Status:      status,
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(check).Error; err != nil {
			return err
		}
		for i, item := range in.Items {
			row := itemRow(check.ID, i, item)
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			check.Items = append(check.Items, row)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return check, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, in CheckInput) (*models.VATCheck, error) {
	status := in.Status
	if status == "" {
		status = models.VATCheckPending
	}
	if !validStatus(status) {
		return nil, ErrUnknownStatus
	}

	check, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		check.Date = in.Date
		check.CheckPeriod = in.CheckPeriod
		check.Inspector = in.Inspector
		check.Inspectee = in.Inspectee
		check.Status = status
		if err := tx.Save(check).Error; err != nil {
			return err
		}
		if err := tx.Where("vat_check_id = ?", check.ID).
			Delete(&models.VATCheckItem{}).Error; err != nil {
			return err
		}
		check.Items = nil
		for i, item := range in.Items {
			row := itemRow(check.ID, i, item)
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			check.Items = append(check.Items, row)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return check, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.DB.WithContext(ctx).Model(&models.VATCheck{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Update("is_deleted", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCheckNotFound
	}
	return nil
}

func itemRow(checkID uuid.UUID, order int, in ItemInput) models.VATCheckItem {
	return models.VATCheckItem{
		VATCheckID:              checkID,
		CompanyID:               in.CompanyID,
		CompanyName:             in.CompanyName,
		InputBuyer:              in.InputBuyer,
		CheckInputAmount:        in.CheckInputAmount,
		InputDuplicate:          in.InputDuplicate,
		OutputEInvoice:          in.OutputEInvoice,
		Form401OutputAmount:     in.Form401OutputAmount,
		Form401InputAmount:      in.Form401InputAmount,
		TaxCreditCarriedForward: in.TaxCreditCarriedForward,
		TaxPayable:              in.TaxPayable,
		TaxRefundable:           in.TaxRefundable,
		SortOrder:               order,
	}
}
