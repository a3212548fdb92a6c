package shareholders

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

func setupShareholderTest(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Shareholder{},
		&models.Shareholding{},
		&models.StockTransaction{},
	))
	return &Service{DB: db}, db
}

func TestCreateShareholder(t *testing.T) {
	svc, _ := setupShareholderTest(t)

	created, err := svc.Create(context.Background(), ShareholderInput{
		Identifier: "A123456789",
		Name:       "王小明",
	})
	require.NoError(t, err)
	assert.Equal(t, "A123456789", created.Identifier)

	// identifier is unique among surviving records
	_, err = svc.Create(context.Background(), ShareholderInput{
		Identifier: "A123456789",
		Name:       "another",
	})
	assert.ErrorIs(t, err, ErrIdentifierTaken)

	_, err = svc.Create(context.Background(), ShareholderInput{
		Identifier: "!!",
		Name:       "bad",
	})
	assert.ErrorIs(t, err, ErrInvalidIdentifier)
}

// Deleting a shareholder frees its identifier for reuse.
func TestDeleteShareholder_FreesIdentifier(t *testing.T) {
	svc, _ := setupShareholderTest(t)

	created, err := svc.Create(context.Background(), ShareholderInput{
		Identifier: "A123456789",
		Name:       "王小明",
	})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(context.Background(), created.ID))

	_, err = svc.Get(context.Background(), created.ID)
	assert.ErrorIs(t, err, ErrShareholderNotFound)

	_, err = svc.Create(context.Background(), ShareholderInput{
		Identifier: "A123456789",
		Name:       "重新登錄",
	})
	assert.NoError(t, err)
}

func TestUpdateShareholder_IdentifierImmutable(t *testing.T) {
	svc, _ := setupShareholderTest(t)

	created, err := svc.Create(context.Background(), ShareholderInput{
		Identifier: "A123456789",
		Name:       "王小明",
	})
	require.NoError(t, err)

	phone := "0912345678"
	updated, err := svc.Update(context.Background(), created.ID, ShareholderInput{
		Identifier: "B987654321",
		Name:       "王大明",
		Phone:      &phone,
	})
	require.NoError(t, err)
	assert.Equal(t, "王大明", updated.Name)
	assert.Equal(t, "A123456789", updated.Identifier)
}

func TestRecordTransaction_CreatesHoldingLazily(t *testing.T) {
	svc, db := setupShareholderTest(t)
	companyID := uuid.New()

	holder, err := svc.Create(context.Background(), ShareholderInput{
		Identifier: "A123456789",
		Name:       "王小明",
	})
	require.NoError(t, err)

	tx, err := svc.RecordTransaction(context.Background(), TransactionInput{
		ShareholderID:   holder.ID,
		CompanyID:       companyID,
		TransactionDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		TransactionType: models.TxFounding,
		Quantity:        1000,
	})
	require.NoError(t, err)
	assert.Equal(t, models.StockCommon, tx.StockClass)
	assert.True(t, tx.ParValue.Equal(decimal.NewFromInt(10)))
	assert.True(t, tx.StockAmount.Equal(decimal.NewFromInt(10000)))

	var holdings []models.Shareholding
	require.NoError(t, db.Find(&holdings).Error)
	require.Len(t, holdings, 1)
	assert.Equal(t, holdings[0].ID, tx.ShareholdingID)

	// second transaction reuses the same holding pair
	_, err = svc.RecordTransaction(context.Background(), TransactionInput{
		ShareholderID:   holder.ID,
		CompanyID:       companyID,
		TransactionDate: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		TransactionType: models.TxCapitalIncrease,
		Quantity:        500,
	})
	require.NoError(t, err)
	require.NoError(t, db.Find(&holdings).Error)
	assert.Len(t, holdings, 1)
}

func TestRecordTransaction_Validation(t *testing.T) {
	svc, _ := setupShareholderTest(t)

	holder, err := svc.Create(context.Background(), ShareholderInput{
		Identifier: "A123456789",
		Name:       "王小明",
	})
	require.NoError(t, err)

	base := TransactionInput{
		ShareholderID:   holder.ID,
		CompanyID:       uuid.New(),
		TransactionDate: time.Now(),
		TransactionType: models.TxFounding,
		Quantity:        100,
	}

	in := base
	in.TransactionType = "merger"
	_, err = svc.RecordTransaction(context.Background(), in)
	assert.ErrorIs(t, err, ErrUnknownTxType)

	in = base
	in.StockClass = "golden"
	_, err = svc.RecordTransaction(context.Background(), in)
	assert.ErrorIs(t, err, ErrUnknownStockClass)

	in = base
	in.Quantity = 0
	_, err = svc.RecordTransaction(context.Background(), in)
	assert.ErrorIs(t, err, ErrZeroQuantity)

	in = base
	in.ShareholderID = uuid.New()
	_, err = svc.RecordTransaction(context.Background(), in)
	assert.ErrorIs(t, err, ErrShareholderNotFound)
}

func TestRemoveTransaction(t *testing.T) {
	svc, _ := setupShareholderTest(t)

	holder, err := svc.Create(context.Background(), ShareholderInput{
		Identifier: "A123456789",
		Name:       "王小明",
	})
	require.NoError(t, err)

	tx, err := svc.RecordTransaction(context.Background(), TransactionInput{
		ShareholderID:   holder.ID,
		CompanyID:       uuid.New(),
		TransactionDate: time.Now(),
		TransactionType: models.TxFounding,
		Quantity:        100,
	})
	require.NoError(t, err)

	require.NoError(t, svc.RemoveTransaction(context.Background(), tx.ID))
	assert.ErrorIs(t, svc.RemoveTransaction(context.Background(), tx.ID), gorm.ErrRecordNotFound)
}

func TestHoldings(t *testing.T) {
	svc, _ := setupShareholderTest(t)

	holder, err := svc.Create(context.Background(), ShareholderInput{
		Identifier: "A123456789",
		Name:       "王小明",
	})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err = svc.RecordTransaction(context.Background(), TransactionInput{
			ShareholderID:   holder.ID,
			CompanyID:       uuid.New(),
			TransactionDate: time.Now(),
			TransactionType: models.TxFounding,
			Quantity:        100,
		})
		require.NoError(t, err)
	}

	holdings, err := svc.Holdings(context.Background(), holder.ID)
	require.NoError(t, err)
	assert.Len(t, holdings, 2)

	holding, err := svc.GetHolding(context.Background(), holdings[0].ID)
	require.NoError(t, err)
	require.NotNil(t, holding.Shareholder)
	assert.Equal(t, "王小明", holding.Shareholder.Name)

	_, err = svc.GetHolding(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrHoldingNotFound)
}
