package bookkeeping

import (
	"context"
	"errors"

	"github.com/joe700619/SmartFirm/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrChecklistNotFound = errors.New("Bookkeeping checklist not found")
	ErrUnknownStatus     = errors.New("Unknown status")
)

type Service struct {
	DB *gorm.DB
}

type ChecklistInput struct {
	SequenceNumber string `json:"sequence_number"`
	CheckPeriod    string `json:"check_period"`
	CompanyID      string `json:"company_id"`
	CompanyName    string `json:"company_name"`
	Bookkeeper     string `json:"bookkeeper"`
	IndustryCode   string `json:"industry_code"`
	IndustryName   string `json:"industry_name"`
	Status         string `json:"status"`

	RevenueListed   decimal.Decimal `json:"revenue_listed"`
	RevenueReported decimal.Decimal `json:"revenue_reported"`

	CostListed   decimal.Decimal `json:"cost_listed"`
	CostReported decimal.Decimal `json:"cost_reported"`

	OperatingExpenseListed   decimal.Decimal `json:"operating_expense_listed"`
	OperatingExpenseReported decimal.Decimal `json:"operating_expense_reported"`

	NonOperatingIncomeListed   decimal.Decimal `json:"non_operating_income_listed"`
	NonOperatingIncomeReported decimal.Decimal `json:"non_operating_income_reported"`

	NonOperatingExpenseListed   decimal.Decimal `json:"non_operating_expense_listed"`
	NonOperatingExpenseReported decimal.Decimal `json:"non_operating_expense_reported"`

	Conclusion *string `json:"conclusion"`
}

// View is a checklist row plus its derived profit figures. The profits
// are computed here, never stored.
type View struct {
	models.BookkeepingChecklist

	GrossProfitListed   decimal.Decimal `json:"gross_profit_listed"`
	GrossProfitReported decimal.Decimal `json:"gross_profit_reported"`

	OperatingProfitListed   decimal.Decimal `json:"operating_profit_listed"`
	OperatingProfitReported decimal.Decimal `json:"operating_profit_reported"`

	NetProfitListed   decimal.Decimal `json:"net_profit_listed"`
	NetProfitReported decimal.Decimal `json:"net_profit_reported"`
}

func NewView(b models.BookkeepingChecklist) View {
	return View{
		BookkeepingChecklist:    b,
		GrossProfitListed:       b.GrossProfitListed(),
		GrossProfitReported:     b.GrossProfitReported(),
		OperatingProfitListed:   b.OperatingProfitListed(),
		OperatingProfitReported: b.OperatingProfitReported(),
		NetProfitListed:         b.NetProfitListed(),
		NetProfitReported:       b.NetProfitReported(),
	}
}

func validStatus(s string) bool {
	return s == models.ChecklistNotStarted || s == models.ChecklistCompleted
}

func (s *Service) List(ctx context.Context, period, companyID string) ([]View, error) {
	q := s.DB.WithContext(ctx).Where("is_deleted = ?", false)
	if period != "" {
		q = q.Where("check_period = ?", period)
	}
	if companyID != "" {
		q = q.Where("company_id = ?", companyID)
	}
	var rows []models.BookkeepingChecklist
	if err := q.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	views := make([]View, 0, len(rows))
	for _, row := range rows {
		views = append(views, NewView(row))
	}
	return views, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*View, error) {
	var row models.BookkeepingChecklist
	err := s.DB.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrChecklistNotFound
	}
	if err != nil {
		return nil, err
	}
	v := NewView(row)
	return &v, nil
}

func (s *Service) Create(ctx context.Context, in ChecklistInput) (*View, error) {
	status := in.Status
	if status == "" {
		status = models.ChecklistNotStarted
	}
	if !validStatus(status) {
		return nil, ErrUnknownStatus
	}

	row := &models.BookkeepingChecklist{
		SequenceNumber:              in.SequenceNumber,
		CheckPeriod:                 in.CheckPeriod,
		CompanyID:                   in.CompanyID,
		CompanyName:                 in.CompanyName,
		Bookkeeper:                  in.Bookkeeper,
		IndustryCode:                in.IndustryCode,
		IndustryName:                in.IndustryName,
		Status:                      status,
		RevenueListed:               in.RevenueListed,
		RevenueReported:             in.RevenueReported,
		CostListed:                  in.CostListed,
		CostReported:                in.CostReported,
		OperatingExpenseListed:      in.OperatingExpenseListed,
		OperatingExpenseReported:    in.OperatingExpenseReported,
		NonOperatingIncomeListed:    in.NonOperatingIncomeListed,
		NonOperatingIncomeReported:  in.NonOperatingIncomeReported,
		NonOperatingExpenseListed:   in.NonOperatingExpenseListed,
		NonOperatingExpenseReported: in.NonOperatingExpenseReported,
		Conclusion:                  in.Conclusion,
	}
	if err := s.DB.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	v := NewView(*row)
	return &v, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, in ChecklistInput) (*View, error) {
	status := in.Status
	if status == "" {
		status = models.ChecklistNotStarted
	}
	if !validStatus(status) {
		return nil, ErrUnknownStatus
	}

	var row models.BookkeepingChecklist
	err := s.DB.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrChecklistNotFound
	}
	if err != nil {
		return nil, err
	}

	row.SequenceNumber = in.SequenceNumber
	row.CheckPeriod = in.CheckPeriod
	row.CompanyID = in.CompanyID
	row.CompanyName = in.CompanyName
	row.Bookkeeper = in.Bookkeeper
	row.IndustryCode = in.IndustryCode
	row.IndustryName = in.IndustryName
	row.Status = status
	row.RevenueListed = in.RevenueListed
	row.RevenueReported = in.RevenueReported
	row.CostListed = in.CostListed
	row.CostReported = in.CostReported
	row.OperatingExpenseListed = in.OperatingExpenseListed
	row.OperatingExpenseReported = in.OperatingExpenseReported
	row.NonOperatingIncomeListed = in.NonOperatingIncomeListed
	row.NonOperatingIncomeReported = in.NonOperatingIncomeReported
	row.NonOperatingExpenseListed = in.NonOperatingExpenseListed
	row.NonOperatingExpenseReported = in.NonOperatingExpenseReported
	row.Conclusion = in.Conclusion

	if err := s.DB.WithContext(ctx).Save(&row).Error; err != nil {
		return nil, err
	}
	v := NewView(row)
	return &v, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.DB.WithContext(ctx).Model(&models.BookkeepingChecklist{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Update("is_deleted", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrChecklistNotFound
	}
	return nil
}
