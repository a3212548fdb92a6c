package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PaymentProvider is a configured payment gateway (e.g. ECPay).
type PaymentProvider struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name      string         `gorm:"column:name;type:varchar(50);not null" json:"name"`
	Code      string         `gorm:"column:code;type:varchar(50);not null;uniqueIndex" json:"code"`
	IsActive  bool           `gorm:"column:is_active;not null;default:true" json:"is_active"`
	Config    datatypes.JSON `gorm:"column:config;type:jsonb" json:"config"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (PaymentProvider) TableName() string {
	return "payment_provider"
}

func (p *PaymentProvider) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Payment transaction statuses.
const (
	PaymentPending  = "PENDING"
	PaymentSuccess  = "SUCCESS"
	PaymentFailed   = "FAILED"
	PaymentRefunded = "REFUNDED"
)

// Payment source kinds (what the payment settles).
const (
	PaymentSourceRegistrationCase = "registration_case"
)

// PaymentTransaction records one payment attempt with a gateway.
// MerchantTradeNo is the sanitized, suffixed identifier sent to the
// gateway; BaseTradeNo keeps the original case number for lookups.
type PaymentTransaction struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	ProviderID uuid.UUID `gorm:"column:provider_id;type:uuid;not null" json:"provider_id"`

	MerchantTradeNo string  `gorm:"column:merchant_trade_no;type:varchar(64);not null;uniqueIndex" json:"merchant_trade_no"`
	BaseTradeNo     string  `gorm:"column:base_trade_no;type:varchar(64);not null;index" json:"base_trade_no"`
	GatewayTradeNo  *string `gorm:"column:gateway_trade_no;type:varchar(64)" json:"gateway_trade_no"`

	Amount   decimal.Decimal `gorm:"column:amount;type:decimal(12,0);not null" json:"amount"`
	Currency string          `gorm:"column:currency;type:varchar(3);not null;default:TWD" json:"currency"`
	Status   string          `gorm:"column:status;type:varchar(20);not null;default:PENDING" json:"status"`

	SourceType string    `gorm:"column:source_type;type:varchar(30);not null" json:"source_type"`
	SourceID   uuid.UUID `gorm:"column:source_id;type:uuid;not null;index" json:"source_id"`

	PaymentTime  *time.Time     `gorm:"column:payment_time" json:"payment_time"`
	ResponseData datatypes.JSON `gorm:"column:response_data;type:jsonb" json:"response_data"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Provider *PaymentProvider `gorm:"foreignKey:ProviderID" json:"provider,omitempty"`
}

func (PaymentTransaction) TableName() string {
	return "payment_transaction"
}

func (t *PaymentTransaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
