package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tax payment reply states on a filing record.
const (
	TaxPaidByCustomer = "customer_paid"
	TaxPaidByOffice   = "office_paid"
	TaxNotReplied     = "not_replied"
)

// Filing record sources.
const (
	FilingSourceGoogle = "google"
	FilingSourceManual = "manual"
	FilingSourceNA     = "na"
)

// VATRecord tracks one company's VAT filing for a bimonthly period.
// FilingPeriod is 1..6 (Jan-Feb .. Nov-Dec).
type VATRecord struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	CompanyID uuid.UUID `gorm:"column:company_id;type:uuid;not null;index" json:"company_id"`

	FilingYear   string `gorm:"column:filing_year;type:varchar(4);not null" json:"filing_year"`
	FilingPeriod int    `gorm:"column:filing_period;not null" json:"filing_period"`

	InvoiceReceivedDate *time.Time `gorm:"column:invoice_received_date" json:"invoice_received_date"`
	ReplyTime           *time.Time `gorm:"column:reply_time" json:"reply_time"`
	TaxDeadline         *time.Time `gorm:"column:tax_deadline" json:"tax_deadline"`

	TaxPaymentCompleted string  `gorm:"column:tax_payment_completed;type:varchar(20);not null;default:not_replied" json:"tax_payment_completed"`
	Source              string  `gorm:"column:source;type:varchar(20);not null;default:manual" json:"source"`
	DeclarationURL      *string `gorm:"column:declaration_url" json:"declaration_url"`
	PaymentSlipURL      *string `gorm:"column:payment_slip_url" json:"payment_slip_url"`

	IsDeleted bool      `gorm:"column:is_deleted;not null;default:false" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Company *Company `gorm:"belongsTo;foreignKey:CompanyID;references:ID" json:"company,omitempty"`
}

func (VATRecord) TableName() string {
	return "vat_record"
}

func (v *VATRecord) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// IncomeTaxRecord tracks one company's annual income-tax filing.
type IncomeTaxRecord struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	CompanyID uuid.UUID `gorm:"column:company_id;type:uuid;not null;index" json:"company_id"`

	FilingYear string `gorm:"column:filing_year;type:varchar(4);not null" json:"filing_year"`

	ReplyTime   *time.Time `gorm:"column:reply_time" json:"reply_time"`
	TaxDeadline *time.Time `gorm:"column:tax_deadline" json:"tax_deadline"`

	TaxPaymentCompleted string  `gorm:"column:tax_payment_completed;type:varchar(20);not null;default:not_replied" json:"tax_payment_completed"`
	Source              string  `gorm:"column:source;type:varchar(20);not null;default:manual" json:"source"`
	DeclarationURL      *string `gorm:"column:declaration_url" json:"declaration_url"`
	PaymentSlipURL      *string `gorm:"column:payment_slip_url" json:"payment_slip_url"`

	IsDeleted bool      `gorm:"column:is_deleted;not null;default:false" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Company *Company `gorm:"belongsTo;foreignKey:CompanyID;references:ID" json:"company,omitempty"`
}

func (IncomeTaxRecord) TableName() string {
	return "income_tax_record"
}

func (r *IncomeTaxRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Download data categories.
const (
	DownloadCategoryVAT       = "vat"
	DownloadCategoryIncomeTax = "income_tax"
)

// DownloadData is the customer-facing snapshot of a filing, keyed by the
// derived file number (company ID + V|T + year [+ period]). Upserted
// whenever a filing record is sent to the customer; this is the one
// place a computed value is persisted, because the customer portal
// serves it as-is.
type DownloadData struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	FileNumber string    `gorm:"column:file_number;type:varchar(20);not null;uniqueIndex" json:"file_number"`

	Year     string `gorm:"column:year;type:varchar(4);not null" json:"year"`
	Period   string `gorm:"column:period;not null" json:"period"`
	Category string `gorm:"column:category;type:varchar(20);not null" json:"category"`

	CompanyID   string  `gorm:"column:company_id;type:varchar(8);not null" json:"company_id"`
	CompanyName string  `gorm:"column:company_name;not null" json:"company_name"`
	Email       *string `gorm:"column:email" json:"email"`
	Status      string  `gorm:"column:status;type:varchar(20);not null;default:current" json:"status"`
	Source      string  `gorm:"column:source;type:varchar(20);not null;default:manual" json:"source"`

	InvoiceReceivedDate *time.Time `gorm:"column:invoice_received_date" json:"invoice_received_date"`
	ReplyTime           *time.Time `gorm:"column:reply_time" json:"reply_time"`
	TaxDeadline         *time.Time `gorm:"column:tax_deadline" json:"tax_deadline"`

	PaymentMethod  *string `gorm:"column:payment_method;type:varchar(20)" json:"payment_method"`
	DeclarationURL *string `gorm:"column:declaration_url" json:"declaration_url"`
	PaymentSlipURL *string `gorm:"column:payment_slip_url" json:"payment_slip_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (DownloadData) TableName() string {
	return "download_data"
}

func (d *DownloadData) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
