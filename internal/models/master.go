package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ServiceItem is a billable service in the firm's price list.
type ServiceItem struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	ServiceCode    string    `gorm:"column:service_code;type:varchar(50);not null;uniqueIndex" json:"service_code"`
	ServiceName    string    `gorm:"column:service_name;not null" json:"service_name"`
	ReferencePrice int       `gorm:"column:reference_price;not null;default:0" json:"reference_price"`
	Department     *string   `gorm:"column:department;type:varchar(20)" json:"department"`
	IsAMLRequired  bool      `gorm:"column:is_aml_required;not null;default:false" json:"is_aml_required"`
	Remarks        *string   `gorm:"column:remarks" json:"remarks"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (ServiceItem) TableName() string {
	return "service_item"
}

func (s *ServiceItem) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// CaseType is a registration case category.
type CaseType struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"column:name;not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func (CaseType) TableName() string {
	return "case_type"
}

func (c *CaseType) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// KnowledgeNote is an internal how-to note for registration work.
type KnowledgeNote struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Title     string    `gorm:"column:title;not null" json:"title"`
	Tags      string    `gorm:"column:tags;not null" json:"tags"`
	Checklist *string   `gorm:"column:checklist" json:"checklist"`
	Steps     *string   `gorm:"column:steps" json:"steps"`
	Warnings  *string   `gorm:"column:warnings" json:"warnings"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (KnowledgeNote) TableName() string {
	return "knowledge_note"
}

func (k *KnowledgeNote) BeforeCreate(tx *gorm.DB) error {
	if k.ID == uuid.Nil {
		k.ID = uuid.New()
	}
	return nil
}

// SystemParameter is the single row (pk=1) of runtime-editable settings:
// payment-gateway credentials and messaging keys.
type SystemParameter struct {
	ID              uint      `gorm:"column:id;primaryKey" json:"id"`
	GeminiAPIKey    string    `gorm:"column:gemini_api_key;not null;default:''" json:"-"`
	LineAccessToken string    `gorm:"column:line_access_token;not null;default:''" json:"-"`
	LineWebURL      string    `gorm:"column:line_web_url;not null;default:''" json:"line_web_url"`
	ECPayMerchantID string    `gorm:"column:ecpay_merchant_id;type:varchar(50);not null;default:''" json:"ecpay_merchant_id"`
	ECPayHashKey    string    `gorm:"column:ecpay_hash_key;type:varchar(50);not null;default:''" json:"-"`
	ECPayHashIV     string    `gorm:"column:ecpay_hash_iv;type:varchar(50);not null;default:''" json:"-"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (SystemParameter) TableName() string {
	return "system_parameter"
}

// LoadSystemParameter returns the singleton settings row, creating it
// when missing.
func LoadSystemParameter(db *gorm.DB) (*SystemParameter, error) {
	var p SystemParameter
	if err := db.FirstOrCreate(&p, SystemParameter{ID: 1}).Error; err != nil {
		return nil, err
	}
	return &p, nil
}
