package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// VAT check statuses.
const (
	VATCheckPending   = "pending"
	VATCheckCompleted = "completed"
)

// VATCheck is one VAT review session covering a filing period.
type VATCheck struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Date        time.Time `gorm:"column:date;not null" json:"date"`
	CheckPeriod string    `gorm:"column:check_period;not null" json:"check_period"`
	Inspector   string    `gorm:"column:inspector;not null" json:"inspector"`
	Inspectee   string    `gorm:"column:inspectee;not null" json:"inspectee"`
	Status      string    `gorm:"column:status;type:varchar(20);not null;default:pending" json:"status"`
	IsDeleted   bool      `gorm:"column:is_deleted;not null;default:false" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Items []VATCheckItem `gorm:"foreignKey:VATCheckID" json:"items,omitempty"`
}

func (VATCheck) TableName() string {
	return "vat_check"
}

func (v *VATCheck) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// VATCheckItem is one company's row in a VAT check, with the figures
// compared against its form 401.
type VATCheckItem struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	VATCheckID uuid.UUID `gorm:"column:vat_check_id;type:uuid;not null;index" json:"vat_check_id"`

	CompanyID   string  `gorm:"column:company_id;type:varchar(8);not null" json:"company_id"`
	CompanyName string  `gorm:"column:company_name;not null" json:"company_name"`
	InputBuyer  *string `gorm:"column:input_buyer" json:"input_buyer"`

	CheckInputAmount decimal.Decimal `gorm:"column:check_input_amount;type:decimal(15,2);not null;default:0" json:"check_input_amount"`
	InputDuplicate   *string         `gorm:"column:input_duplicate" json:"input_duplicate"`
	OutputEInvoice   *string         `gorm:"column:output_e_invoice" json:"output_e_invoice"`

	Form401OutputAmount     decimal.Decimal `gorm:"column:form401_output_amount;type:decimal(15,2);not null;default:0" json:"form401_output_amount"`
	Form401InputAmount      decimal.Decimal `gorm:"column:form401_input_amount;type:decimal(15,2);not null;default:0" json:"form401_input_amount"`
	TaxCreditCarriedForward decimal.Decimal `gorm:"column:tax_credit_carried_forward;type:decimal(15,2);not null;default:0" json:"tax_credit_carried_forward"`
	TaxPayable              decimal.Decimal `gorm:"column:tax_payable;type:decimal(15,2);not null;default:0" json:"tax_payable"`
	TaxRefundable           decimal.Decimal `gorm:"column:tax_refundable;type:decimal(15,2);not null;default:0" json:"tax_refundable"`

	SortOrder int       `gorm:"column:sort_order;not null;default:0" json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
}

func (VATCheckItem) TableName() string {
	return "vat_check_item"
}

func (i *VATCheckItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
