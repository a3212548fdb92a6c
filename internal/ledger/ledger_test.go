package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/joe700619/SmartFirm/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupLedgerTest(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Shareholder{},
		&models.Shareholding{},
		&models.StockTransaction{},
	))
	return &Service{DB: db}, db
}

func day(n int) time.Time {
	return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func createHolding(t *testing.T, db *gorm.DB, name string, companyID uuid.UUID) models.Shareholding {
	holder := models.Shareholder{Identifier: "A1" + uuid.New().String()[:8], Name: name}
	require.NoError(t, db.Create(&holder).Error)
	holding := models.Shareholding{ShareholderID: holder.ID, CompanyID: companyID}
	require.NoError(t, db.Create(&holding).Error)
	return holding
}

func addTx(t *testing.T, db *gorm.DB, holdingID uuid.UUID, at time.Time, txType string, qty int64) models.StockTransaction {
	tx := models.StockTransaction{
		ShareholdingID:  holdingID,
		TransactionDate: at,
		TransactionType: txType,
		StockClass:      models.StockCommon,
		ParValue:        decimal.NewFromInt(10),
		Quantity:        qty,
	}
	require.NoError(t, db.Create(&tx).Error)
	return tx
}

func TestBalance_AsOf(t *testing.T) {
	svc, db := setupLedgerTest(t)
	holding := createHolding(t, db, "王小明", uuid.New())

	addTx(t, db, holding.ID, day(0), models.TxFounding, 1000)
	addTx(t, db, holding.ID, day(50), models.TxCapitalIncrease, 500)
	addTx(t, db, holding.ID, day(70), models.TxCapitalReduction, -300)

	ctx := context.Background()

	bal, err := svc.Balance(ctx, holding.ID, day(0), "")
	require.NoError(t, err)
	assert.Equal(t, int64(1000), bal.Shares)
	assert.True(t, bal.Amount.Equal(decimal.NewFromInt(10000)))

	bal, err = svc.Balance(ctx, holding.ID, day(60), "")
	require.NoError(t, err)
	assert.Equal(t, int64(1500), bal.Shares)

	bal, err = svc.Balance(ctx, holding.ID, day(80), "")
	require.NoError(t, err)
	assert.Equal(t, int64(1200), bal.Shares)
	assert.True(t, bal.Amount.Equal(decimal.NewFromInt(12000)))
}

func TestBalance_NoTransactions(t *testing.T) {
	svc, db := setupLedgerTest(t)
	holding := createHolding(t, db, "空戶", uuid.New())

	bal, err := svc.Balance(context.Background(), holding.ID, day(100), "")
	require.NoError(t, err)
	assert.Equal(t, int64(0), bal.Shares)
	assert.True(t, bal.Amount.IsZero())
}

func TestBalance_SoftDeletedExcluded(t *testing.T) {
	svc, db := setupLedgerTest(t)
	holding := createHolding(t, db, "王小明", uuid.New())

	addTx(t, db, holding.ID, day(0), models.TxFounding, 1000)
	removed := addTx(t, db, holding.ID, day(10), models.TxCapitalIncrease, 500)
	require.NoError(t, db.Model(&models.StockTransaction{}).
		Where("id = ?", removed.ID).
		Update("is_deleted", true).Error)

	bal, err := svc.Balance(context.Background(), holding.ID, day(100), "")
	require.NoError(t, err)
	assert.Equal(t, int64(1000), bal.Shares)
}

func TestBalance_StockClassFilter(t *testing.T) {
	svc, db := setupLedgerTest(t)
	holding := createHolding(t, db, "王小明", uuid.New())

	addTx(t, db, holding.ID, day(0), models.TxFounding, 1000)
	preferred := models.StockTransaction{
		ShareholdingID:  holding.ID,
		TransactionDate: day(0),
		TransactionType: models.TxFounding,
		StockClass:      models.StockPreferred,
		ParValue:        decimal.NewFromInt(10),
		Quantity:        200,
	}
	require.NoError(t, db.Create(&preferred).Error)

	bal, err := svc.Balance(context.Background(), holding.ID, day(1), models.StockCommon)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), bal.Shares)

	bal, err = svc.Balance(context.Background(), holding.ID, day(1), models.StockPreferred)
	require.NoError(t, err)
	assert.Equal(t, int64(200), bal.Shares)
}

func TestCompanyRoster_Percentages(t *testing.T) {
	svc, db := setupLedgerTest(t)
	companyID := uuid.New()

	a := createHolding(t, db, "甲", companyID)
	b := createHolding(t, db, "乙", companyID)
	c := createHolding(t, db, "丙", companyID)
	addTx(t, db, a.ID, day(0), models.TxFounding, 500)
	addTx(t, db, b.ID, day(0), models.TxFounding, 300)
	addTx(t, db, c.ID, day(0), models.TxFounding, 200)

	roster, err := svc.CompanyRoster(context.Background(), companyID, day(10))
	require.NoError(t, err)
	require.Len(t, roster, 3)

	// sorted by balance descending
	assert.Equal(t, int64(500), roster[0].Shares)
	assert.Equal(t, "甲", roster[0].Shareholder.Name)
	assert.Equal(t, 50.0, roster[0].Percentage)
	assert.Equal(t, 30.0, roster[1].Percentage)
	assert.Equal(t, 20.0, roster[2].Percentage)
	assert.Equal(t, "普通股", roster[0].StockClassLabel)
}

// Holders whose balance reaches zero by the as-of date drop off the
// register entirely.
func TestCompanyRoster_ZeroBalanceExcluded(t *testing.T) {
	svc, db := setupLedgerTest(t)
	companyID := uuid.New()

	a := createHolding(t, db, "甲", companyID)
	b := createHolding(t, db, "乙", companyID)
	addTx(t, db, a.ID, day(0), models.TxFounding, 500)
	addTx(t, db, b.ID, day(0), models.TxFounding, 300)
	addTx(t, db, b.ID, day(5), models.TxTransferOut, -300)

	roster, err := svc.CompanyRoster(context.Background(), companyID, day(10))
	require.NoError(t, err)
	require.Len(t, roster, 1)
	assert.Equal(t, "甲", roster[0].Shareholder.Name)
	assert.Equal(t, 100.0, roster[0].Percentage)

	// before the transfer both appear
	roster, err = svc.CompanyRoster(context.Background(), companyID, day(1))
	require.NoError(t, err)
	assert.Len(t, roster, 2)
}

func TestCompanyRoster_Empty(t *testing.T) {
	svc, _ := setupLedgerTest(t)
	roster, err := svc.CompanyRoster(context.Background(), uuid.New(), day(0))
	require.NoError(t, err)
	assert.Empty(t, roster)
}

func TestTransactionHistory_RunningBalance(t *testing.T) {
	svc, db := setupLedgerTest(t)
	holding := createHolding(t, db, "王小明", uuid.New())

	addTx(t, db, holding.ID, day(0), models.TxFounding, 1000)
	addTx(t, db, holding.ID, day(50), models.TxCapitalIncrease, 500)
	addTx(t, db, holding.ID, day(70), models.TxCapitalReduction, -300)

	history, err := svc.TransactionHistory(context.Background(), holding.ID)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, int64(1000), history[0].RunningBalance)
	assert.Equal(t, int64(1500), history[1].RunningBalance)
	assert.Equal(t, int64(1200), history[2].RunningBalance)
	assert.Equal(t, "設立", history[0].TypeLabel)
	assert.Equal(t, "減資", history[2].TypeLabel)

	// recomputing over the unchanged log yields identical output
	again, err := svc.TransactionHistory(context.Background(), holding.ID)
	require.NoError(t, err)
	assert.Equal(t, history, again)
}

func TestCompanyTimeline_CollapsesByDateAndType(t *testing.T) {
	svc, db := setupLedgerTest(t)
	companyID := uuid.New()

	a := createHolding(t, db, "甲", companyID)
	b := createHolding(t, db, "乙", companyID)
	addTx(t, db, a.ID, day(0), models.TxFounding, 500)
	addTx(t, db, b.ID, day(0), models.TxFounding, 300)
	addTx(t, db, a.ID, day(30), models.TxCapitalIncrease, 100)

	timeline, err := svc.CompanyTimeline(context.Background(), companyID)
	require.NoError(t, err)
	require.Len(t, timeline, 2)
	// newest first
	assert.Equal(t, models.TxCapitalIncrease, timeline[0].Type)
	assert.Equal(t, day(30).Format("2006-01-02"), timeline[0].Date)
	assert.Equal(t, models.TxFounding, timeline[1].Type)
}

func TestCheckConsistency(t *testing.T) {
	svc, db := setupLedgerTest(t)
	holding := createHolding(t, db, "王小明", uuid.New())

	addTx(t, db, holding.ID, day(0), models.TxFounding, 100)
	require.NoError(t, svc.CheckConsistency(context.Background(), holding.ID))

	addTx(t, db, holding.ID, day(10), models.TxTransferOut, -150)
	err := svc.CheckConsistency(context.Background(), holding.ID)
	assert.ErrorIs(t, err, ErrInconsistentBalance)
}
