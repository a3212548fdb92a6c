package payments

import (
	"errors"

	"github.com/joe700619/SmartFirm/internal/models"
	"github.com/joe700619/SmartFirm/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Handlers struct {
	Service *Service
	DB      *gorm.DB
}

type createForCaseRequest struct {
	CaseID        string          `json:"case_id"`
	Amount        decimal.Decimal `json:"amount"`
	ReturnURL     string          `json:"return_url"`
	ClientBackURL string          `json:"client_back_url"`
}

// CreateForCase POST /api/v1/payments/cases — start collecting a
// registration case's fee. The case number seeds the trade number.
func (h *Handlers) CreateForCase(c *fiber.Ctx) error {
	var req createForCaseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	caseID, err := uuid.Parse(req.CaseID)
	if err != nil {
		return response.Error(c, "Invalid case_id format (must be a valid UUID)", 400, nil)
	}
	if req.ReturnURL == "" {
		return response.Error(c, "return_url is required", 400, nil)
	}

	var registrationCase models.RegistrationCase
	err = h.DB.Where("id = ? AND is_deleted = ?", caseID, false).
		First(&registrationCase).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return response.Error(c, "Registration case not found", 404, nil)
	}
	if err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}

	checkout, err := h.Service.CreatePayment(c.Context(), CreatePaymentInput{
		SourceType:    models.PaymentSourceRegistrationCase,
		SourceID:      registrationCase.ID,
		BaseTradeNo:   registrationCase.CaseNumber,
		Amount:        req.Amount,
		ReturnURL:     req.ReturnURL,
		ClientBackURL: req.ClientBackURL,
	})
	if err != nil {
		if err == ErrInvalidAmount {
			return response.Error(c, err.Error(), 400, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.SuccessCreated(c, "Payment created successfully", checkout, nil)
}

// Callback POST /api/v1/payments/callback/ecpay — the gateway's
// server-to-server result notification. ECPay expects the literal body
// "1|OK" once the notification is accepted; anything else makes it
// retry.
func (h *Handlers) Callback(c *fiber.Ctx) error {
	params := map[string]string{}
	args := c.Context().PostArgs()
	args.VisitAll(func(key, value []byte) {
		params[string(key)] = string(value)
	})

	tx, err := h.Service.Settle(c.Context(), params)
	if err != nil {
		log.Warn().Err(err).
			Str("merchant_trade_no", params["MerchantTradeNo"]).
			Msg("payment callback rejected")
		switch err {
		case ErrBadSignature:
			return c.Status(fiber.StatusBadRequest).SendString("0|CheckMacValue Error")
		case ErrTransactionNotFound:
			return c.Status(fiber.StatusNotFound).SendString("0|Transaction Not Found")
		default:
			return c.Status(fiber.StatusInternalServerError).SendString("0|Error")
		}
	}

	log.Info().
		Str("merchant_trade_no", tx.MerchantTradeNo).
		Str("status", tx.Status).
		Msg("payment callback settled")
	return c.SendString("1|OK")
}

// List GET /api/v1/payments?source_type=&source_id=
func (h *Handlers) List(c *fiber.Ctx) error {
	sourceID := uuid.Nil
	if raw := c.Query("source_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return response.Error(c, "Invalid source_id format (must be a valid UUID)", 400, nil)
		}
		sourceID = parsed
	}
	txs, err := h.Service.List(c.Context(), c.Query("source_type"), sourceID)
	if err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Payments fetched successfully", txs, nil)
}

// Get GET /api/v1/payments/:id
func (h *Handlers) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid ID format (must be a valid UUID)", 400, nil)
	}
	tx, err := h.Service.Get(c.Context(), id)
	if err != nil {
		if err == ErrTransactionNotFound {
			return response.Error(c, err.Error(), 404, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Payment fetched successfully", tx, nil)
}
