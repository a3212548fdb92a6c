package payments

import (
	"context"
	"regexp"
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

// stubGateway accepts every signature and signs nothing; Settle and
// CreatePayment behavior is what's under test, not the MAC math.
type stubGateway struct {
	verifyResult bool
}

func (g *stubGateway) ActionURL() string { return "https://gateway.test/checkout" }

func (g *stubGateway) CheckoutParams(merchantTradeNo string, amount decimal.Decimal, returnURL, clientBackURL string, now time.Time) map[string]string {
	return map[string]string{
		"MerchantTradeNo": merchantTradeNo,
		"TotalAmount":     amount.StringFixed(0),
	}
}

func (g *stubGateway) Verify(params map[string]string) bool { return g.verifyResult }

func setupPaymentTest(t *testing.T, gw Gateway) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.PaymentProvider{}, &models.PaymentTransaction{}))
	svc := &Service{
		DB:         db,
		NewGateway: func(ctx context.Context) (Gateway, error) { return gw, nil },
	}
	return svc, db
}

func TestMerchantTradeNo(t *testing.T) {
	no := MerchantTradeNo("RO-20260127-R001")
	// dashes stripped, 4 random chars appended
	assert.Len(t, no, 18)
	assert.Regexp(t, regexp.MustCompile(`^RO20260127R001[A-Z0-9]{4}$`), no)

	// long bases truncate to keep the gateway's 20-char cap
	long := MerchantTradeNo("RO-20260127-R001-EXTRA-LONG-SUFFIX")
	assert.Len(t, long, 20)

	// two calls never collide
	assert.NotEqual(t, MerchantTradeNo("RO-20260127-R001"), MerchantTradeNo("RO-20260127-R001"))
}

func TestCreatePayment(t *testing.T) {
	svc, db := setupPaymentTest(t, &stubGateway{})
	caseID := uuid.New()

	checkout, err := svc.CreatePayment(context.Background(), CreatePaymentInput{
		SourceType:  models.PaymentSourceRegistrationCase,
		SourceID:    caseID,
		BaseTradeNo: "RO-20260127-R001",
		Amount:      decimal.NewFromInt(3500),
		ReturnURL:   "https://api.smartfirm.tw/cb",
	})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPending, checkout.Transaction.Status)
	assert.Equal(t, "RO-20260127-R001", checkout.Transaction.BaseTradeNo)
	assert.Equal(t, "https://gateway.test/checkout", checkout.ActionURL)
	assert.Equal(t, checkout.Transaction.MerchantTradeNo, checkout.Fields["MerchantTradeNo"])

	// provider row created lazily and reused
	var count int64
	require.NoError(t, db.Model(&models.PaymentProvider{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	_, err = svc.CreatePayment(context.Background(), CreatePaymentInput{
		SourceType:  models.PaymentSourceRegistrationCase,
		SourceID:    caseID,
		BaseTradeNo: "RO-20260127-R001",
		Amount:      decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.PaymentProvider{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCreatePayment_InvalidAmount(t *testing.T) {
	svc, _ := setupPaymentTest(t, &stubGateway{})

	_, err := svc.CreatePayment(context.Background(), CreatePaymentInput{
		BaseTradeNo: "RO-20260127-R001",
		Amount:      decimal.Zero,
	})
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.CreatePayment(context.Background(), CreatePaymentInput{
		BaseTradeNo: "RO-20260127-R001",
		Amount:      decimal.NewFromInt(-50),
	})
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestSettle_Success(t *testing.T) {
	svc, _ := setupPaymentTest(t, &stubGateway{verifyResult: true})

	checkout, err := svc.CreatePayment(context.Background(), CreatePaymentInput{
		SourceType:  models.PaymentSourceRegistrationCase,
		SourceID:    uuid.New(),
		BaseTradeNo: "RO-20260127-R001",
		Amount:      decimal.NewFromInt(3500),
	})
	require.NoError(t, err)

	tx, err := svc.Settle(context.Background(), map[string]string{
		"MerchantTradeNo": checkout.Transaction.MerchantTradeNo,
		"RtnCode":         "1",
		"TradeNo":         "2301270000001234",
		"PaymentDate":     "2026/01/27 16:45:00",
	})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentSuccess, tx.Status)
	require.NotNil(t, tx.GatewayTradeNo)
	assert.Equal(t, "2301270000001234", *tx.GatewayTradeNo)
	require.NotNil(t, tx.PaymentTime)
	assert.Equal(t, 2026, tx.PaymentTime.Year())
	assert.Equal(t, 16, tx.PaymentTime.Hour())
}

func TestSettle_Idempotent(t *testing.T) {
	svc, _ := setupPaymentTest(t, &stubGateway{verifyResult: true})

	checkout, err := svc.CreatePayment(context.Background(), CreatePaymentInput{
		SourceType:  models.PaymentSourceRegistrationCase,
		SourceID:    uuid.New(),
		BaseTradeNo: "RO-20260127-R001",
		Amount:      decimal.NewFromInt(3500),
	})
	require.NoError(t, err)

	params := map[string]string{
		"MerchantTradeNo": checkout.Transaction.MerchantTradeNo,
		"RtnCode":         "1",
		"PaymentDate":     "2026/01/27 16:45:00",
	}
	first, err := svc.Settle(context.Background(), params)
	require.NoError(t, err)

	// gateway retries deliver the same callback again
	second, err := svc.Settle(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentSuccess, second.Status)
	assert.Equal(t, first.PaymentTime.Unix(), second.PaymentTime.Unix())
}

func TestSettle_Failed(t *testing.T) {
	svc, _ := setupPaymentTest(t, &stubGateway{verifyResult: true})

	checkout, err := svc.CreatePayment(context.Background(), CreatePaymentInput{
		SourceType:  models.PaymentSourceRegistrationCase,
		SourceID:    uuid.New(),
		BaseTradeNo: "RO-20260127-R001",
		Amount:      decimal.NewFromInt(3500),
	})
	require.NoError(t, err)

	tx, err := svc.Settle(context.Background(), map[string]string{
		"MerchantTradeNo": checkout.Transaction.MerchantTradeNo,
		"RtnCode":         "10200073",
		"RtnMsg":          "Transaction failed",
	})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentFailed, tx.Status)
	assert.Nil(t, tx.PaymentTime)
}

func TestSettle_BadSignature(t *testing.T) {
	svc, _ := setupPaymentTest(t, &stubGateway{verifyResult: false})

	_, err := svc.Settle(context.Background(), map[string]string{
		"MerchantTradeNo": "WHATEVER",
		"RtnCode":         "1",
	})
	assert.ErrorIs(t, err, ErrBadSignature)
}

func TestSettle_UnknownTradeNo(t *testing.T) {
	svc, _ := setupPaymentTest(t, &stubGateway{verifyResult: true})

	_, err := svc.Settle(context.Background(), map[string]string{
		"MerchantTradeNo": "NOSUCHTRADE",
		"RtnCode":         "1",
	})
	assert.ErrorIs(t, err, ErrTransactionNotFound)
}

func TestList_Filters(t *testing.T) {
	svc, _ := setupPaymentTest(t, &stubGateway{})
	caseID := uuid.New()

	for i := 0; i < 2; i++ {
		_, err := svc.CreatePayment(context.Background(), CreatePaymentInput{
			SourceType:  models.PaymentSourceRegistrationCase,
			SourceID:    caseID,
			BaseTradeNo: "RO-20260127-R001",
			Amount:      decimal.NewFromInt(100),
		})
		require.NoError(t, err)
	}
	_, err := svc.CreatePayment(context.Background(), CreatePaymentInput{
		SourceType:  models.PaymentSourceRegistrationCase,
		SourceID:    uuid.New(),
		BaseTradeNo: "RO-20260128-R001",
		Amount:      decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	all, err := svc.List(context.Background(), "", uuid.Nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byCase, err := svc.List(context.Background(), models.PaymentSourceRegistrationCase, caseID)
	require.NoError(t, err)
	assert.Len(t, byCase, 2)
}
