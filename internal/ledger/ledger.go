// Package ledger derives point-in-time share balances and ownership
// percentages from the append-only stock-transaction log. Balances are
// never stored; every figure is recomputed from the surviving rows, so
// the register cannot drift from its audit trail. All operations are
// pure reads.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/joe700619/SmartFirm/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrInconsistentBalance signals that a holding's running balance goes
// negative somewhere in its history. Reads never correct or reject such
// data; this error is only produced by CheckConsistency.
var ErrInconsistentBalance = errors.New("ledger: running balance is negative")

// Service computes ledger projections over the stock-transaction log.
type Service struct {
	DB *gorm.DB
}

// BalanceResult is a holding's position as of a date: share count plus
// the summed nominal stock amount for reporting.
type BalanceResult struct {
	Shares int64           `json:"shares"`
	Amount decimal.Decimal `json:"amount"`
}

// Balance sums quantities and stock amounts of all surviving
// transactions for the holding dated on or before asOf, optionally
// restricted to one stock class. A holding with no transactions yields
// zero, not an error. A negative sum is returned as-is.
func (s *Service) Balance(ctx context.Context, holdingID uuid.UUID, asOf time.Time, stockClass string) (BalanceResult, error) {
	q := s.DB.WithContext(ctx).Model(&models.StockTransaction{}).
		Where("shareholding_id = ?", holdingID).
		Where("is_deleted = ?", false).
		Where("transaction_date <= ?", asOf)
	if stockClass != "" {
		q = q.Where("stock_class = ?", stockClass)
	}

	var row struct {
		TotalShares *int64
		TotalAmount *decimal.Decimal
	}
	if err := q.Select("SUM(quantity) AS total_shares, SUM(stock_amount) AS total_amount").Scan(&row).Error; err != nil {
		return BalanceResult{}, err
	}

	out := BalanceResult{Amount: decimal.Zero}
	if row.TotalShares != nil {
		out.Shares = *row.TotalShares
	}
	if row.TotalAmount != nil {
		out.Amount = *row.TotalAmount
	}
	return out, nil
}

// RosterEntry is one (holder, stock class) line of a company's register.
type RosterEntry struct {
	HoldingID       uuid.UUID          `json:"holding_id"`
	Shareholder     models.Shareholder `json:"shareholder"`
	StockClass      string             `json:"stock_class"`
	StockClassLabel string             `json:"stock_class_label"`
	Shares          int64              `json:"shares"`
	Amount          decimal.Decimal    `json:"amount"`
	Percentage      float64            `json:"percentage"`
}

// CompanyRoster computes the register of holders for a company as of a
// date. Only strictly positive (holding, class) balances are included.
// Percentages are each share of the roster total, rounded to two
// decimals independently; the total may drift from 100.00 by rounding
// and is deliberately not corrected. Entries sort by balance descending;
// ties keep holding lookup order with common before preferred.
func (s *Service) CompanyRoster(ctx context.Context, companyID uuid.UUID, asOf time.Time) ([]RosterEntry, error) {
	var holdings []models.Shareholding
	if err := s.DB.WithContext(ctx).
		Preload("Shareholder").
		Where("company_id = ?", companyID).
		Order("created_at ASC").
		Find(&holdings).Error; err != nil {
		return nil, err
	}

	roster := make([]RosterEntry, 0, len(holdings))
	var total int64
	for _, h := range holdings {
		for _, class := range []string{models.StockCommon, models.StockPreferred} {
			bal, err := s.Balance(ctx, h.ID, asOf, class)
			if err != nil {
				return nil, err
			}
			if bal.Shares <= 0 {
				continue
			}
			entry := RosterEntry{
				HoldingID:       h.ID,
				StockClass:      class,
				StockClassLabel: models.StockClassLabel(class),
				Shares:          bal.Shares,
				Amount:          bal.Amount,
			}
			if h.Shareholder != nil {
				entry.Shareholder = *h.Shareholder
			}
			roster = append(roster, entry)
			total += bal.Shares
		}
	}

	if total > 0 {
		for i := range roster {
			pct := float64(roster[i].Shares) / float64(total) * 100
			roster[i].Percentage = math.Round(pct*100) / 100
		}
	}

	sort.SliceStable(roster, func(i, j int) bool {
		return roster[i].Shares > roster[j].Shares
	})
	return roster, nil
}

// HistoryEntry is one transaction annotated with the balance after it.
type HistoryEntry struct {
	Transaction    models.StockTransaction `json:"transaction"`
	TypeLabel      string                  `json:"type_label"`
	RunningBalance int64                   `json:"running_balance"`
}

// TransactionHistory returns the full audit trail of a holding ordered
// by (transaction date, creation time) ascending, each row carrying the
// running share balance after applying it. Pure function of the stored
// rows: recomputing over an unchanged log yields identical output.
func (s *Service) TransactionHistory(ctx context.Context, holdingID uuid.UUID) ([]HistoryEntry, error) {
	var txs []models.StockTransaction
	if err := s.DB.WithContext(ctx).
		Where("shareholding_id = ?", holdingID).
		Where("is_deleted = ?", false).
		Order("transaction_date ASC, created_at ASC").
		Find(&txs).Error; err != nil {
		return nil, err
	}

	history := make([]HistoryEntry, 0, len(txs))
	var running int64
	for _, tx := range txs {
		running += tx.Quantity
		history = append(history, HistoryEntry{
			Transaction:    tx,
			TypeLabel:      models.TransactionTypeLabel(tx.TransactionType),
			RunningBalance: running,
		})
	}
	return history, nil
}

// TimelineEvent is one distinct (date, type) marker in a company's
// equity history, used to jump the register view to a date.
type TimelineEvent struct {
	Date      string `json:"date"`
	Type      string `json:"type"`
	TypeLabel string `json:"type_label"`
}

// CompanyTimeline lists distinct (date, transaction type) events across
// all holdings of a company, newest first. Transactions sharing date and
// type collapse into one entry; this is a navigation aid, not an audit
// record.
func (s *Service) CompanyTimeline(ctx context.Context, companyID uuid.UUID) ([]TimelineEvent, error) {
	var txs []models.StockTransaction
	if err := s.DB.WithContext(ctx).
		Joins("JOIN company_shareholding ON company_shareholding.id = stock_transaction.shareholding_id").
		Where("company_shareholding.company_id = ?", companyID).
		Where("stock_transaction.is_deleted = ?", false).
		Order("stock_transaction.transaction_date DESC, stock_transaction.created_at DESC").
		Find(&txs).Error; err != nil {
		return nil, err
	}

	timeline := make([]TimelineEvent, 0, len(txs))
	seen := make(map[string]struct{}, len(txs))
	for _, tx := range txs {
		day := tx.TransactionDate.Format("2006-01-02")
		key := day + "_" + tx.TransactionType
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		timeline = append(timeline, TimelineEvent{
			Date:      day,
			Type:      tx.TransactionType,
			TypeLabel: models.TransactionTypeLabel(tx.TransactionType),
		})
	}
	return timeline, nil
}

// CheckConsistency walks a holding's history per stock class and
// reports ErrInconsistentBalance if the running balance ever goes
// negative. The data itself is left untouched.
func (s *Service) CheckConsistency(ctx context.Context, holdingID uuid.UUID) error {
	history, err := s.TransactionHistory(ctx, holdingID)
	if err != nil {
		return err
	}
	running := map[string]int64{}
	for _, h := range history {
		running[h.Transaction.StockClass] += h.Transaction.Quantity
		if running[h.Transaction.StockClass] < 0 {
			return fmt.Errorf("%w: holding %s, class %s as of %s",
				ErrInconsistentBalance, holdingID,
				h.Transaction.StockClass,
				h.Transaction.TransactionDate.Format("2006-01-02"))
		}
	}
	return nil
}
