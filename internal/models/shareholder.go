package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Shareholder is a natural person or legal entity holding equity in one
// or more customer companies. Identifier is the national ID or unified
// business number and is immutable once set.
type Shareholder struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Identifier string    `gorm:"column:identifier;type:varchar(20);not null;uniqueIndex" json:"identifier"`
	Name       string    `gorm:"column:name;not null" json:"name"`
	Address    *string   `gorm:"column:address" json:"address"`
	Phone      *string   `gorm:"column:phone" json:"phone"`
	Email      *string   `gorm:"column:email" json:"email"`
	IsDeleted  bool      `gorm:"column:is_deleted;not null;default:false" json:"-"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Shareholder) TableName() string {
	return "shareholder"
}

func (s *Shareholder) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Shareholding is the unique (shareholder, company) pair that owns a
// stream of stock transactions. Created lazily the first time a
// transaction references the pair.
type Shareholding struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	ShareholderID uuid.UUID `gorm:"column:shareholder_id;type:uuid;not null;uniqueIndex:idx_holder_company" json:"shareholder_id"`
	CompanyID     uuid.UUID `gorm:"column:company_id;type:uuid;not null;uniqueIndex:idx_holder_company;index" json:"company_id"`
	CreatedAt     time.Time `json:"created_at"`

	Shareholder *Shareholder `gorm:"foreignKey:ShareholderID" json:"shareholder,omitempty"`
}

func (Shareholding) TableName() string {
	return "company_shareholding"
}

func (h *Shareholding) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}
