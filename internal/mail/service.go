package mail

import (
	"context"
	"errors"
	"time"

	"github.com/joe700619/SmartFirm/internal/emails"
	"github.com/joe700619/SmartFirm/internal/models"
	"github.com/joe700619/SmartFirm/internal/sequence"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var (
	ErrMailNotFound       = errors.New("Mail record not found")
	ErrUnknownContentType = errors.New("Unknown content type")
	ErrNoItems            = errors.New("At least one mail item is required")
)

const allocRetries = 3

type Service struct {
	DB     *gorm.DB
	Sender emails.Sender
}

type ItemInput struct {
	Sender         string  `json:"sender"`
	CompanyID      string  `json:"company_id"`
	ContentType    string  `json:"content_type"`
	NotifyCustomer bool    `json:"notify_customer"`
	MessageContent *string `json:"message_content"`
}

type CreateInput struct {
	Date  time.Time
	Items []ItemInput
}

func validContentType(t string) bool {
	return t == models.MailContentAccountingVoucher || t == models.MailContentNTAChinese
}

// Create logs one day's batch of incoming mail. The serial number is
// allocated inside the same transaction that inserts the master row, so
// a rollback never burns a serial. Collisions with a concurrent
// allocation are retried.
func (s *Service) Create(ctx context.Context, in CreateInput) (*models.IncomingMail, error) {
	if len(in.Items) == 0 {
		return nil, ErrNoItems
	}
	for _, item := range in.Items {
		if !validContentType(item.ContentType) {
			return nil, ErrUnknownContentType
		}
	}

	var record *models.IncomingMail
	var err error
	for attempt := 0; attempt < allocRetries; attempt++ {
		record, err = s.createOnce(ctx, in)
		if err == nil {
			break
		}
		if !errors.Is(err, sequence.ErrCodeCollision) {
			return nil, err
		}
	}
	if err != nil {
		return nil, err
	}

	s.notify(ctx, record)
	return record, nil
}

func (s *Service) createOnce(ctx context.Context, in CreateInput) (*models.IncomingMail, error) {
	var record *models.IncomingMail
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		serial, err := sequence.Next(tx, sequence.MailSerials, in.Date)
		if err != nil {
			return err
		}

		record = &models.IncomingMail{
			Date:         in.Date,
			SerialNumber: serial,
		}
		if err := tx.Create(record).Error; err != nil {
			return sequence.AsCollision(err)
		}

		for i, item := range in.Items {
			var company models.Company
			if err := tx.Where("id = ? AND is_deleted = ?", item.CompanyID, false).
				First(&company).Error; err != nil {
				return err
			}
			row := models.IncomingMailItem{
				IncomingMailID: record.ID,
				Sender:         item.Sender,
				CompanyID:      company.ID,
				CustomerName:   company.CompanyName,
				ContentType:    item.ContentType,
				NotifyCustomer: item.NotifyCustomer,
				MessageContent: item.MessageContent,
				SortOrder:      i,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			record.Items = append(record.Items, row)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// notify emails customers for items flagged notify_customer. Failures
// are logged, not returned: the mail record is already committed.
func (s *Service) notify(ctx context.Context, record *models.IncomingMail) {
	if s.Sender == nil {
		return
	}
	for _, item := range record.Items {
		if !item.NotifyCustomer {
			continue
		}
		var company models.Company
		if err := s.DB.WithContext(ctx).
			Where("id = ?", item.CompanyID).First(&company).Error; err != nil {
			continue
		}
		if company.Email == nil || *company.Email == "" {
			continue
		}
		message := ""
		if item.MessageContent != nil {
			message = *item.MessageContent
		}
		if err := s.Sender.SendMailNotice(ctx, *company.Email, company.CompanyName, record.SerialNumber, message); err != nil {
			log.Warn().Err(err).
				Str("serial_number", record.SerialNumber).
				Str("company_id", company.CompanyID).
				Msg("mail notice email failed")
		}
	}
}

type ListFilter struct {
	From *time.Time
	To   *time.Time
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]models.IncomingMail, error) {
	q := s.DB.WithContext(ctx).Where("is_deleted = ?", false)
	if f.From != nil {
		q = q.Where("date >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("date <= ?", *f.To)
	}
	var records []models.IncomingMail
	if err := q.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC")
	}).Order("date DESC, serial_number DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.IncomingMail, error) {
	var record models.IncomingMail
	err := s.DB.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMailNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// UpdateItems replaces the item list of a mail record. The serial number
// and date are immutable.
func (s *Service) UpdateItems(ctx context.Context, id uuid.UUID, items []ItemInput) (*models.IncomingMail, error) {
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	for _, item := range items {
		if !validContentType(item.ContentType) {
			return nil, ErrUnknownContentType
		}
	}

	record, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("incoming_mail_id = ?", record.ID).
			Delete(&models.IncomingMailItem{}).Error; err != nil {
			return err
		}
		record.Items = nil
		for i, item := range items {
			var company models.Company
			if err := tx.Where("id = ? AND is_deleted = ?", item.CompanyID, false).
				First(&company).Error; err != nil {
				return err
			}
			row := models.IncomingMailItem{
				IncomingMailID: record.ID,
				Sender:         item.Sender,
				CompanyID:      company.ID,
				CustomerName:   company.CompanyName,
				ContentType:    item.ContentType,
				NotifyCustomer: item.NotifyCustomer,
				MessageContent: item.MessageContent,
				SortOrder:      i,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			record.Items = append(record.Items, row)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// Delete soft-deletes a mail record. The serial number stays allocated:
// later records on the same day keep counting past it.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.DB.WithContext(ctx).Model(&models.IncomingMail{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Update("is_deleted", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrMailNotFound
	}
	return nil
}
