package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Bookkeeping checklist statuses.
const (
	ChecklistNotStarted = "not_started"
	ChecklistCompleted  = "completed"
)

// BookkeepingChecklist tracks one company's bookkeeping review for a
// period. Only the listed/reported input figures are stored; gross
// profit, operating profit and net profit are derived on read so the
// stored row can never drift from its inputs.
type BookkeepingChecklist struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	SequenceNumber string    `gorm:"column:sequence_number;not null" json:"sequence_number"`
	CheckPeriod    string    `gorm:"column:check_period;not null" json:"check_period"`
	CompanyID      string    `gorm:"column:company_id;type:varchar(8);not null" json:"company_id"`
	CompanyName    string    `gorm:"column:company_name;not null" json:"company_name"`
	Bookkeeper     string    `gorm:"column:bookkeeper;not null" json:"bookkeeper"`
	IndustryCode   string    `gorm:"column:industry_code;not null" json:"industry_code"`
	IndustryName   string    `gorm:"column:industry_name;not null" json:"industry_name"`
	Status         string    `gorm:"column:status;type:varchar(20);not null;default:not_started" json:"status"`

	RevenueListed   decimal.Decimal `gorm:"column:revenue_listed;type:decimal(15,2);not null;default:0" json:"revenue_listed"`
	RevenueReported decimal.Decimal `gorm:"column:revenue_reported;type:decimal(15,2);not null;default:0" json:"revenue_reported"`

	CostListed   decimal.Decimal `gorm:"column:cost_listed;type:decimal(15,2);not null;default:0" json:"cost_listed"`
	CostReported decimal.Decimal `gorm:"column:cost_reported;type:decimal(15,2);not null;default:0" json:"cost_reported"`

	OperatingExpenseListed   decimal.Decimal `gorm:"column:operating_expense_listed;type:decimal(15,2);not null;default:0" json:"operating_expense_listed"`
	OperatingExpenseReported decimal.Decimal `gorm:"column:operating_expense_reported;type:decimal(15,2);not null;default:0" json:"operating_expense_reported"`

	NonOperatingIncomeListed   decimal.Decimal `gorm:"column:non_operating_income_listed;type:decimal(15,2);not null;default:0" json:"non_operating_income_listed"`
	NonOperatingIncomeReported decimal.Decimal `gorm:"column:non_operating_income_reported;type:decimal(15,2);not null;default:0" json:"non_operating_income_reported"`

	NonOperatingExpenseListed   decimal.Decimal `gorm:"column:non_operating_expense_listed;type:decimal(15,2);not null;default:0" json:"non_operating_expense_listed"`
	NonOperatingExpenseReported decimal.Decimal `gorm:"column:non_operating_expense_reported;type:decimal(15,2);not null;default:0" json:"non_operating_expense_reported"`

	Conclusion *string   `gorm:"column:conclusion" json:"conclusion"`
	IsDeleted  bool      `gorm:"column:is_deleted;not null;default:false" json:"-"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (BookkeepingChecklist) TableName() string {
	return "bookkeeping_checklist"
}

func (b *BookkeepingChecklist) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// GrossProfitListed = revenue - cost (listed figures).
func (b *BookkeepingChecklist) GrossProfitListed() decimal.Decimal {
	return b.RevenueListed.Sub(b.CostListed)
}

func (b *BookkeepingChecklist) GrossProfitReported() decimal.Decimal {
	return b.RevenueReported.Sub(b.CostReported)
}

// OperatingProfitListed = gross profit - operating expenses.
func (b *BookkeepingChecklist) OperatingProfitListed() decimal.Decimal {
	return b.GrossProfitListed().Sub(b.OperatingExpenseListed)
}

func (b *BookkeepingChecklist) OperatingProfitReported() decimal.Decimal {
	return b.GrossProfitReported().Sub(b.OperatingExpenseReported)
}

// NetProfitListed = operating profit + non-operating income - non-operating expenses.
func (b *BookkeepingChecklist) NetProfitListed() decimal.Decimal {
	return b.OperatingProfitListed().Add(b.NonOperatingIncomeListed).Sub(b.NonOperatingExpenseListed)
}

func (b *BookkeepingChecklist) NetProfitReported() decimal.Decimal {
	return b.OperatingProfitReported().Add(b.NonOperatingIncomeReported).Sub(b.NonOperatingExpenseReported)
}
