package bookkeeping

import (
	"context"
	"testing"

	"github.com/joe700619/SmartFirm/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupChecklistTest(t *testing.T) *Service {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.BookkeepingChecklist{}))
	return &Service{DB: db}
}

func sampleInput() ChecklistInput {
	return ChecklistInput{
		SequenceNumber: "114-03-001",
		CheckPeriod:    "114-03",
		CompanyID:      "12345678",
		CompanyName:    "測試商行",
		Bookkeeper:     "林記帳",
		IndustryCode:   "4711",
		IndustryName:   "零售業",

		RevenueListed:   decimal.NewFromInt(1000000),
		RevenueReported: decimal.NewFromInt(950000),

		CostListed:   decimal.NewFromInt(600000),
		CostReported: decimal.NewFromInt(580000),

		OperatingExpenseListed:   decimal.NewFromInt(200000),
		OperatingExpenseReported: decimal.NewFromInt(190000),

		NonOperatingIncomeListed:   decimal.NewFromInt(5000),
		NonOperatingIncomeReported: decimal.NewFromInt(4000),

		NonOperatingExpenseListed:   decimal.NewFromInt(3000),
		NonOperatingExpenseReported: decimal.NewFromInt(2000),
	}
}

// Profit lines are projections computed per read, never stored.
func TestCreate_ComputedProjections(t *testing.T) {
	svc := setupChecklistTest(t)

	view, err := svc.Create(context.Background(), sampleInput())
	require.NoError(t, err)

	assert.True(t, view.GrossProfitListed.Equal(decimal.NewFromInt(400000)))
	assert.True(t, view.GrossProfitReported.Equal(decimal.NewFromInt(370000)))
	assert.True(t, view.OperatingProfitListed.Equal(decimal.NewFromInt(200000)))
	assert.True(t, view.OperatingProfitReported.Equal(decimal.NewFromInt(180000)))
	assert.True(t, view.NetProfitListed.Equal(decimal.NewFromInt(202000)))
	assert.True(t, view.NetProfitReported.Equal(decimal.NewFromInt(182000)))
	assert.Equal(t, models.ChecklistNotStarted, view.Status)
}

func TestUpdate_RecomputesProjections(t *testing.T) {
	svc := setupChecklistTest(t)

	view, err := svc.Create(context.Background(), sampleInput())
	require.NoError(t, err)

	in := sampleInput()
	in.RevenueListed = decimal.NewFromInt(2000000)
	in.Status = models.ChecklistCompleted
	updated, err := svc.Update(context.Background(), view.ID, in)
	require.NoError(t, err)
	assert.True(t, updated.GrossProfitListed.Equal(decimal.NewFromInt(1400000)))
	assert.Equal(t, models.ChecklistCompleted, updated.Status)
}

func TestCreate_UnknownStatus(t *testing.T) {
	svc := setupChecklistTest(t)

	in := sampleInput()
	in.Status = "paused"
	_, err := svc.Create(context.Background(), in)
	assert.ErrorIs(t, err, ErrUnknownStatus)
}

func TestList_Filters(t *testing.T) {
	svc := setupChecklistTest(t)

	_, err := svc.Create(context.Background(), sampleInput())
	require.NoError(t, err)

	other := sampleInput()
	other.CheckPeriod = "114-05"
	other.CompanyID = "87654321"
	_, err = svc.Create(context.Background(), other)
	require.NoError(t, err)

	views, err := svc.List(context.Background(), "114-03", "")
	require.NoError(t, err)
	assert.Len(t, views, 1)

	views, err = svc.List(context.Background(), "", "87654321")
	require.NoError(t, err)
	assert.Len(t, views, 1)

	views, err = svc.List(context.Background(), "", "")
	require.NoError(t, err)
	assert.Len(t, views, 2)
}

func TestDelete(t *testing.T) {
	svc := setupChecklistTest(t)

	view, err := svc.Create(context.Background(), sampleInput())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), view.ID))
	_, err = svc.Get(context.Background(), view.ID)
	assert.ErrorIs(t, err, ErrChecklistNotFound)
}
