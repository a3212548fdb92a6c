package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Contact is a standalone contact-person record, not necessarily tied to
// a customer master row.
type Contact struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	CompanyName string    `gorm:"column:company_name;not null" json:"company_name"`
	CompanyID   string    `gorm:"column:company_id;type:varchar(8);not null" json:"company_id"`
	Name        string    `gorm:"column:name;not null" json:"name"`
	Position    *string   `gorm:"column:position" json:"position"`
	Email       *string   `gorm:"column:email" json:"email"`
	Phone       *string   `gorm:"column:phone" json:"phone"`
	Mobile      *string   `gorm:"column:mobile" json:"mobile"`
	Fax         *string   `gorm:"column:fax" json:"fax"`
	Address     *string   `gorm:"column:address" json:"address"`
	Notes       *string   `gorm:"column:notes" json:"notes"`
	IsDeleted   bool      `gorm:"column:is_deleted;not null;default:false" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Contact) TableName() string {
	return "contact"
}

func (c *Contact) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
