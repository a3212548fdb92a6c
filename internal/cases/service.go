package cases

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
	ErrCaseNotFound     = errors.New("Registration case not found")
	ErrUnknownStatus    = errors.New("Unknown case status")
	ErrCaseTypeNotFound = errors.New("Case type not found")
)

const allocRetries = 3

type Service struct {
	DB     *gorm.DB
	Sender emails.Sender
}

type CaseInput struct {
	CaseTypeID   uuid.UUID
	CompanyID    uuid.UUID
	FilingDate   time.Time
	ExpectedDays int
	Status       string
	Notes        *string
}

// View is a case row plus its deadline projections, computed per read.
type View struct {
	models.RegistrationCase

	Deadline      time.Time `json:"deadline"`
	Overdue       bool      `json:"overdue"`
	RemainingDays int       `json:"remaining_days"`
}

func NewView(r models.RegistrationCase, now time.Time) View {
	return View{
		RegistrationCase: r,
		Deadline:         r.Deadline(),
		Overdue:          r.Overdue(now),
		RemainingDays:    r.RemainingDays(now),
	}
}

func validStatus(s string) bool {
	switch s {
	case models.CaseStatusPending, models.CaseStatusProcessing,
		models.CaseStatusReview, models.CaseStatusApproved,
		models.CaseStatusCompleted:
		return true
	}
	return false
}

// Create opens a registration case, allocating its case number in the
// same transaction as the insert.
func (s *Service) Create(ctx context.Context, in CaseInput) (*View, error) {
	status := in.Status
	if status == "" {
		status = models.CaseStatusPending
	}
	if !validStatus(status) {
		return nil, ErrUnknownStatus
	}
	if in.ExpectedDays <= 0 {
		in.ExpectedDays = 7
	}

	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.CaseType{}).
		Where("id = ?", in.CaseTypeID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrCaseTypeNotFound
	}

	var record *models.RegistrationCase
	var err error
	for attempt := 0; attempt < allocRetries; attempt++ {
		record, err = s.createOnce(ctx, in, status)
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

	v := NewView(*record, time.Now())
	return &v, nil
}

func (s *Service) createOnce(ctx context.Context, in CaseInput, status string) (*models.RegistrationCase, error) {
	var record *models.RegistrationCase
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		number, err := sequence.Next(tx, sequence.RegistrationCases, in.FilingDate)
		if err != nil {
			return err
		}
		record = &models.RegistrationCase{
			CaseNumber:   number,
			CaseTypeID:   in.CaseTypeID,
			CompanyID:    in.CompanyID,
			FilingDate:   in.FilingDate,
			ExpectedDays: in.ExpectedDays,
			Status:       status,
			Notes:        in.Notes,
		}
		if err := tx.Create(record).Error; err != nil {
			return sequence.AsCollision(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (s *Service) List(ctx context.Context, status string, overdueOnly bool) ([]View, error) {
	if status != "" && !validStatus(status) {
		return nil, ErrUnknownStatus
	}
	q := s.DB.WithContext(ctx).Where("is_deleted = ?", false)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var records []models.RegistrationCase
	if err := q.Preload("CaseType").Preload("Company").
		Order("filing_date DESC, case_number DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}

	now := time.Now()
	views := make([]View, 0, len(records))
	for _, record := range records {
		v := NewView(record, now)
		if overdueOnly && !v.Overdue {
			continue
		}
		views = append(views, v)
	}
	return views, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*View, error) {
	var record models.RegistrationCase
	err := s.DB.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		Preload("CaseType").Preload("Company").
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCaseNotFound
	}
	if err != nil {
		return nil, err
	}
	v := NewView(record, time.Now())
	return &v, nil
}

// UpdateStatus moves a case along its lifecycle and notifies the
// customer. The case number, filing date and type are immutable.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status string, notes *string) (*View, error) {
	if !validStatus(status) {
		return nil, ErrUnknownStatus
	}
	var record models.RegistrationCase
	err := s.DB.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		Preload("Company").
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCaseNotFound
	}
	if err != nil {
		return nil, err
	}

	record.Status = status
	if notes != nil {
		record.Notes = notes
	}
	if err := s.DB.WithContext(ctx).Save(&record).Error; err != nil {
		return nil, err
	}

	if s.Sender != nil && record.Company != nil &&
		record.Company.Email != nil && *record.Company.Email != "" {
		if err := s.Sender.SendCaseProgress(ctx, *record.Company.Email,
			record.Company.CompanyName, record.CaseNumber, status); err != nil {
			log.Warn().Err(err).
				Str("case_number", record.CaseNumber).
				Msg("case progress email failed")
		}
	}

	v := NewView(record, time.Now())
	return &v, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.DB.WithContext(ctx).Model(&models.RegistrationCase{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Update("is_deleted", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCaseNotFound
	}
	return nil
}
