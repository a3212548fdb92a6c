package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IncomingMail is the mail-log master record. SerialNumber is allocated
// once at creation by the sequence allocator (YYYYMMDD-NNN) and is never
// changed afterward, even when the record is soft-deleted.
type IncomingMail struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Date         time.Time `gorm:"column:date;not null" json:"date"`
	SerialNumber string    `gorm:"column:serial_number;type:varchar(20);not null;uniqueIndex" json:"serial_number"`
	IsDeleted    bool      `gorm:"column:is_deleted;not null;default:false" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Items []IncomingMailItem `gorm:"foreignKey:IncomingMailID" json:"items,omitempty"`
}

func (IncomingMail) TableName() string {
	return "incoming_mail"
}

func (m *IncomingMail) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// Incoming mail item content types.
const (
	MailContentAccountingVoucher = "accounting_voucher"
	MailContentNTAChinese        = "nta_chinese"
)

// IncomingMailItem is one piece of mail under a mail-log master record.
type IncomingMailItem struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	IncomingMailID uuid.UUID `gorm:"column:incoming_mail_id;type:uuid;not null;index" json:"incoming_mail_id"`
	Sender         string    `gorm:"column:sender;not null" json:"sender"`
	CompanyID      uuid.UUID `gorm:"column:company_id;type:uuid;not null" json:"company_id"`
	CustomerName   string    `gorm:"column:customer_name;not null" json:"customer_name"`
	ContentType    string    `gorm:"column:content_type;type:varchar(50);not null" json:"content_type"`
	NotifyCustomer bool      `gorm:"column:notify_customer;not null;default:false" json:"notify_customer"`
	MessageContent *string   `gorm:"column:message_content" json:"message_content"`
	SortOrder      int       `gorm:"column:sort_order;not null;default:0" json:"sort_order"`
	CreatedAt      time.Time `json:"created_at"`
}

func (IncomingMailItem) TableName() string {
	return "incoming_mail_item"
}

func (i *IncomingMailItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
