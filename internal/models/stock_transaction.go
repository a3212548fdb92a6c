package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Stock transaction types.
const (
	TxFounding         = "founding"
	TxCapitalIncrease  = "capital_increase"
	TxCapitalReduction = "capital_reduction"
	TxTrade            = "trade"
	TxGift             = "gift"
	TxTransferIn       = "transfer_in"
	TxTransferOut      = "transfer_out"
)

// Stock classes.
const (
	StockCommon    = "common"
	StockPreferred = "preferred"
)

// transactionTypeLabels are the display labels shown in the register UI.
var transactionTypeLabels = map[string]string{
	TxFounding:         "設立",
	TxCapitalIncrease:  "增資",
	TxCapitalReduction: "減資",
	TxTrade:            "買賣",
	TxGift:             "贈與",
	TxTransferIn:       "轉入",
	TxTransferOut:      "轉出",
}

var stockClassLabels = map[string]string{
	StockCommon:    "普通股",
	StockPreferred: "特別股",
}

// TransactionTypeLabel returns the display label for a transaction type,
// falling back to the raw value for unknown types.
func TransactionTypeLabel(txType string) string {
	if l, ok := transactionTypeLabels[txType]; ok {
		return l
	}
	return txType
}

// StockClassLabel returns the display label for a stock class.
func StockClassLabel(class string) string {
	if l, ok := stockClassLabels[class]; ok {
		return l
	}
	return class
}

// ValidTransactionType reports whether txType is a known type tag.
func ValidTransactionType(txType string) bool {
	_, ok := transactionTypeLabels[txType]
	return ok
}

// ValidStockClass reports whether class is common or preferred.
func ValidStockClass(class string) bool {
	_, ok := stockClassLabels[class]
	return ok
}

// StockTransaction is one append-only entry in a shareholding's equity
// log. Quantity is signed: positive for shares gained, negative for
// shares lost. Rows are never updated in place; corrections are entered
// as new transactions and removals flip IsDeleted.
type StockTransaction struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	ShareholdingID uuid.UUID `gorm:"column:shareholding_id;type:uuid;not null;index" json:"shareholding_id"`

	TransactionDate time.Time `gorm:"column:transaction_date;not null;index" json:"transaction_date"`
	Description     string    `gorm:"column:description;not null;default:''" json:"description"`
	TransactionType string    `gorm:"column:transaction_type;type:varchar(20);not null" json:"transaction_type"`
	StockClass      string    `gorm:"column:stock_class;type:varchar(20);not null;default:common" json:"stock_class"`

	ParValue    decimal.Decimal     `gorm:"column:par_value;type:decimal(10,2);not null;default:10" json:"par_value"`
	Quantity    int64               `gorm:"column:quantity;not null" json:"quantity"`
	StockAmount decimal.Decimal     `gorm:"column:stock_amount;type:decimal(15,2);not null;default:0" json:"stock_amount"`
	Amount      decimal.NullDecimal `gorm:"column:amount;type:decimal(15,2)" json:"amount"`

	Note      string    `gorm:"column:note;not null;default:''" json:"note"`
	IsDeleted bool      `gorm:"column:is_deleted;not null;default:false" json:"-"`
	CreatedAt time.Time `gorm:"column:created_at;index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (StockTransaction) TableName() string {
	return "stock_transaction"
}

func (t *StockTransaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	// stock amount is always par value x quantity
	if t.StockAmount.IsZero() {
		t.StockAmount = t.ParValue.Mul(decimal.NewFromInt(t.Quantity))
	}
	return nil
}
