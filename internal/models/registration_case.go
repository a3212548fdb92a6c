package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Registration case statuses.
const (
	CaseStatusPending    = "pending"
	CaseStatusProcessing = "processing"
	CaseStatusReview     = "review"
	CaseStatusApproved   = "approved"
	CaseStatusCompleted  = "completed"
)

// RegistrationCase is one company-registration engagement. CaseNumber is
// allocated once at creation (RO-YYYYMMDD-RNNN) and doubles as the base
// of the payment gateway trade number.
type RegistrationCase struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	CaseNumber string    `gorm:"column:case_number;type:varchar(20);not null;uniqueIndex" json:"case_number"`

	CaseTypeID uuid.UUID `gorm:"column:case_type_id;type:uuid;not null" json:"case_type_id"`
	CompanyID  uuid.UUID `gorm:"column:company_id;type:uuid;not null;index" json:"company_id"`

	FilingDate   time.Time `gorm:"column:filing_date;not null" json:"filing_date"`
	ExpectedDays int       `gorm:"column:expected_days;not null;default:7" json:"expected_days"`
	Status       string    `gorm:"column:status;type:varchar(20);not null;default:pending" json:"status"`
	Notes        *string   `gorm:"column:notes" json:"notes"`

	IsDeleted bool      `gorm:"column:is_deleted;not null;default:false" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CaseType *CaseType `gorm:"foreignKey:CaseTypeID" json:"case_type,omitempty"`
	Company  *Company  `gorm:"belongsTo;foreignKey:CompanyID;references:ID" json:"company,omitempty"`
}

func (RegistrationCase) TableName() string {
	return "registration_case"
}

func (r *RegistrationCase) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Deadline is the filing date plus the expected processing days.
func (r *RegistrationCase) Deadline() time.Time {
	return r.FilingDate.AddDate(0, 0, r.ExpectedDays)
}

// Overdue reports whether the case passed its deadline as of now.
func (r *RegistrationCase) Overdue(now time.Time) bool {
	return now.After(r.Deadline())
}

// RemainingDays is the number of days until the deadline; negative when
// the case is overdue.
func (r *RegistrationCase) RemainingDays(now time.Time) int {
	return int(r.Deadline().Sub(now).Hours() / 24)
}
