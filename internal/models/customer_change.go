package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer change types.
const (
	ChangeNewEstablishment = "new_establishment"
	ChangeTransferIn       = "transfer_in"
	ChangeTransferOut      = "transfer_out"
	ChangeDissolution      = "dissolution"
)

// CustomerChange logs customers joining or leaving the firm, with the
// intake checklist booleans.
type CustomerChange struct {
	ID                  uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	CompanyID           string    `gorm:"column:company_id;type:varchar(8);not null" json:"company_id"`
	CompanyName         string    `gorm:"column:company_name;not null" json:"company_name"`
	AccountingAssistant string    `gorm:"column:accounting_assistant;not null" json:"accounting_assistant"`
	OverdueDays         int       `gorm:"column:overdue_days;not null;default:0" json:"overdue_days"`
	EstablishmentDate   time.Time `gorm:"column:establishment_date;not null" json:"establishment_date"`
	ChangeType          string    `gorm:"column:change_type;type:varchar(20);not null" json:"change_type"`
	InvoiceQuantity     bool      `gorm:"column:invoice_quantity;not null;default:false" json:"invoice_quantity"`
	IDCopy              bool      `gorm:"column:id_copy;not null;default:false" json:"id_copy"`
	LeaseAndTax         bool      `gorm:"column:lease_and_tax;not null;default:false" json:"lease_and_tax"`
	IsDeleted           bool      `gorm:"column:is_deleted;not null;default:false" json:"-"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

func (CustomerChange) TableName() string {
	return "customer_change"
}

func (c *CustomerChange) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
