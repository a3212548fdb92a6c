package payments

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	ecpayProductionURL = "https://payment.ecpay.com.tw/Cashier/AioCheckOut/V5"
	ecpayStagingURL    = "https://payment-stage.ecpay.com.tw/Cashier/AioCheckOut/V5"

	// ECPay's published test merchant. Seeing it means staging.
	ecpayStageMerchantID = "2000132"
)

// ECPayAdapter signs and verifies ECPay AioCheckOut exchanges.
type ECPayAdapter struct {
	MerchantID string
	HashKey    string
	HashIV     string
}

// ActionURL picks the gateway endpoint: staging for the ECPay test
// merchant, production otherwise.
func (a *ECPayAdapter) ActionURL() string {
	if a.MerchantID == ecpayStageMerchantID {
		return ecpayStagingURL
	}
	return ecpayProductionURL
}

// CheckMacValue computes the signature over params (CheckMacValue key
// itself excluded): sort keys, join k=v with &, wrap with
// HashKey/HashIV, urlencode (quote-plus style), lowercase, SHA-256,
// uppercase hex.
func (a *ECPayAdapter) CheckMacValue(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		if k == "CheckMacValue" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString("HashKey=")
	sb.WriteString(a.HashKey)
	for _, k := range keys {
		sb.WriteString("&")
		sb.WriteString(k)
		sb.WriteString("=")
		sb.WriteString(params[k])
	}
	sb.WriteString("&HashIV=")
	sb.WriteString(a.HashIV)

	encoded := strings.ToLower(url.QueryEscape(sb.String()))
	sum := sha256.Sum256([]byte(encoded))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

// Verify checks the CheckMacValue posted by the gateway against the
// other params.
func (a *ECPayAdapter) Verify(params map[string]string) bool {
	posted, ok := params["CheckMacValue"]
	if !ok || posted == "" {
		return false
	}
	return strings.EqualFold(posted, a.CheckMacValue(params))
}

// CheckoutParams builds the signed AioCheckOut form fields for one
// transaction. Amount is TWD with no decimals.
func (a *ECPayAdapter) CheckoutParams(merchantTradeNo string, amount decimal.Decimal, returnURL, clientBackURL string, now time.Time) map[string]string {
	params := map[string]string{
		"MerchantID":        a.MerchantID,
		"MerchantTradeNo":   merchantTradeNo,
		"MerchantTradeDate": now.Format("2006/01/02 15:04:05"),
		"PaymentType":       "aio",
		"TotalAmount":       amount.StringFixed(0),
		"TradeDesc":         "SmartFirm Service Fee",
		"ItemName":          "工商服務費用",
		"ReturnURL":         returnURL,
		"ChoosePayment":     "ALL",
		"EncryptType":       "1",
	}
	if clientBackURL != "" {
		params["ClientBackURL"] = clientBackURL
		params["OrderResultURL"] = clientBackURL
	}
	params["CheckMacValue"] = a.CheckMacValue(params)
	return params
}
