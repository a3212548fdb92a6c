package payments

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"regexp"
	"time"

	"github.com/joe700619/SmartFirm/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrTransactionNotFound = errors.New("Payment transaction not found")
	ErrInvalidAmount       = errors.New("Amount must be positive")
	ErrBadSignature        = errors.New("Check mac value verification failed")
)

var nonAlnum = regexp.MustCompile(`[^a-zA-Z0-9]`)

const (
	// ECPay caps MerchantTradeNo at 20 chars; 4 go to the random
	// suffix so retries for the same case stay unique.
	tradeNoBaseMax   = 16
	tradeNoSuffixLen = 4
)

const suffixAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Gateway signs checkout requests and verifies callbacks.
type Gateway interface {
	ActionURL() string
	CheckoutParams(merchantTradeNo string, amount decimal.Decimal, returnURL, clientBackURL string, now time.Time) map[string]string
	Verify(params map[string]string) bool
}

// GatewayFactory builds the gateway per request so credential edits in
// SystemParameter take effect without a restart.
type GatewayFactory func(ctx context.Context) (Gateway, error)

type Service struct {
	DB         *gorm.DB
	NewGateway GatewayFactory
}

// NewECPayFactory reads credentials from the SystemParameter row,
// falling back to the env-config values when the row is blank.
func NewECPayFactory(db *gorm.DB, envMerchantID, envHashKey, envHashIV string) GatewayFactory {
	return func(ctx context.Context) (Gateway, error) {
		param, err := models.LoadSystemParameter(db.WithContext(ctx))
		if err != nil {
			return nil, err
		}
		adapter := &ECPayAdapter{
			MerchantID: param.ECPayMerchantID,
			HashKey:    param.ECPayHashKey,
			HashIV:     param.ECPayHashIV,
		}
		if adapter.MerchantID == "" {
			adapter.MerchantID = envMerchantID
			adapter.HashKey = envHashKey
			adapter.HashIV = envHashIV
		}
		return adapter, nil
	}
}

// MerchantTradeNo sanitizes a base identifier to the gateway's
// alphanumeric 20-char limit: strip separators, truncate to 16, append
// 4 random chars. "RO-20260127-R001" becomes "RO20260127R001XXXX".
func MerchantTradeNo(base string) string {
	safe := nonAlnum.ReplaceAllString(base, "")
	if len(safe) > tradeNoBaseMax {
		safe = safe[:tradeNoBaseMax]
	}
	suffix := make([]byte, tradeNoSuffixLen)
	random := make([]byte, tradeNoSuffixLen)
	_, _ = rand.Read(random)
	for i, b := range random {
		suffix[i] = suffixAlphabet[int(b)%len(suffixAlphabet)]
	}
	return safe + string(suffix)
}

type CreatePaymentInput struct {
	SourceType  string
	SourceID    uuid.UUID
	BaseTradeNo string
	Amount      decimal.Decimal

	ReturnURL     string
	ClientBackURL string
}

// Checkout is what the frontend needs to POST the customer to the
// gateway.
type Checkout struct {
	Transaction *models.PaymentTransaction `json:"transaction"`
	ActionURL   string                     `json:"action_url"`
	Fields      map[string]string          `json:"fields"`
}

// CreatePayment persists a PENDING transaction and returns the signed
// checkout form. Each call mints a fresh trade number, so retries for
// the same case leave an attempt history.
func (s *Service) CreatePayment(ctx context.Context, in CreatePaymentInput) (*Checkout, error) {
	if !in.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	gateway, err := s.NewGateway(ctx)
	if err != nil {
		return nil, err
	}

	provider, err := s.getOrCreateProvider(ctx)
	if err != nil {
		return nil, err
	}

	seed, _ := json.Marshal(map[string]string{"base_trade_no": in.BaseTradeNo})
	tx := &models.PaymentTransaction{
		ProviderID:      provider.ID,
		MerchantTradeNo: MerchantTradeNo(in.BaseTradeNo),
		BaseTradeNo:     in.BaseTradeNo,
		Amount:          in.Amount,
		Status:          models.PaymentPending,
		SourceType:      in.SourceType,
		SourceID:        in.SourceID,
		ResponseData:    datatypes.JSON(seed),
	}
	if err := s.DB.WithContext(ctx).Create(tx).Error; err != nil {
		return nil, err
	}

	fields := gateway.CheckoutParams(tx.MerchantTradeNo, tx.Amount, in.ReturnURL, in.ClientBackURL, time.Now())
	return &Checkout{
		Transaction: tx,
		ActionURL:   gateway.ActionURL(),
		Fields:      fields,
	}, nil
}

func (s *Service) getOrCreateProvider(ctx context.Context) (*models.PaymentProvider, error) {
	var provider models.PaymentProvider
	err := s.DB.WithContext(ctx).Where("code = ?", "ecpay").First(&provider).Error
	if err == nil {
		return &provider, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	provider = models.PaymentProvider{Name: "ECPay", Code: "ecpay"}
	if err := s.DB.WithContext(ctx).Create(&provider).Error; err != nil {
		return nil, err
	}
	return &provider, nil
}

// Settle marks a transaction paid after a verified callback. Settling
// an already-settled transaction is a no-op so gateway retries stay
// idempotent.
func (s *Service) Settle(ctx context.Context, params map[string]string) (*models.PaymentTransaction, error) {
	gateway, err := s.NewGateway(ctx)
	if err != nil {
		return nil, err
	}
	if !gateway.Verify(params) {
		return nil, ErrBadSignature
	}

	merchantTradeNo := params["MerchantTradeNo"]
	var tx models.PaymentTransaction
	err = s.DB.WithContext(ctx).
		Where("merchant_trade_no = ?", merchantTradeNo).
		First(&tx).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTransactionNotFound
	}
	if err != nil {
		return nil, err
	}
	if tx.Status == models.PaymentSuccess {
		return &tx, nil
	}

	raw, _ := json.Marshal(params)
	now := time.Now()
	tx.ResponseData = datatypes.JSON(raw)
	if gatewayNo := params["TradeNo"]; gatewayNo != "" {
		tx.GatewayTradeNo = &gatewayNo
	}
	// RtnCode 1 is success; anything else records a failed attempt.
	if params["RtnCode"] == "1" {
		tx.Status = models.PaymentSuccess
		tx.PaymentTime = &now
		if paid := params["PaymentDate"]; paid != "" {
			if t, err := time.Parse("2006/01/02 15:04:05", paid); err == nil {
				tx.PaymentTime = &t
			}
		}
	} else {
		tx.Status = models.PaymentFailed
	}

	if err := s.DB.WithContext(ctx).Save(&tx).Error; err != nil {
		return nil, err
	}
	return &tx, nil
}

func (s *Service) List(ctx context.Context, sourceType string, sourceID uuid.UUID) ([]models.PaymentTransaction, error) {
	q := s.DB.WithContext(ctx)
	if sourceType != "" {
		q = q.Where("source_type = ?", sourceType)
	}
	if sourceID != uuid.Nil {
		q = q.Where("source_id = ?", sourceID)
	}
	var txs []models.PaymentTransaction
	if err := q.Preload("Provider").Order("created_at DESC").Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.PaymentTransaction, error) {
	var tx models.PaymentTransaction
	err := s.DB.WithContext(ctx).Preload("Provider").Where("id = ?", id).First(&tx).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTransactionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tx, nil
}
