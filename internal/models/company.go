package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Company is the customer master record ("basic information" in the old
// back office). CompanyID is the 8-digit unified business number and is
// immutable once set.
type Company struct {
	ID                  uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	CompanyID           string    `gorm:"column:company_id;type:varchar(8);not null;uniqueIndex" json:"company_id"`
	CompanyName         string    `gorm:"column:company_name;not null" json:"company_name"`
	ContactPerson       string    `gorm:"column:contact_person;not null" json:"contact_person"`
	Email               *string   `gorm:"column:email" json:"email"`
	PhoneNumber         *string   `gorm:"column:phone_number" json:"phone_number"`
	MobileNumber        *string   `gorm:"column:mobile_number" json:"mobile_number"`
	LineID              *string   `gorm:"column:line_id" json:"line_id"`
	FaxNumber           *string   `gorm:"column:fax_number" json:"fax_number"`
	AccountLast5        *string   `gorm:"column:account_last_5;type:varchar(5)" json:"account_last_5"`
	RegistrationAddress string    `gorm:"column:registration_address;not null" json:"registration_address"`
	MailingAddress      string    `gorm:"column:mailing_address" json:"mailing_address"`
	ImportantNotes      *string   `gorm:"column:important_notes" json:"important_notes"`
	IsDeleted           bool      `gorm:"column:is_deleted;not null;default:false" json:"-"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

func (Company) TableName() string {
	return "basic_information"
}

func (c *Company) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// BeforeSave defaults the mailing address to the registration address.
func (c *Company) BeforeSave(tx *gorm.DB) error {
	if c.MailingAddress == "" {
		c.MailingAddress = c.RegistrationAddress
	}
	return nil
}
