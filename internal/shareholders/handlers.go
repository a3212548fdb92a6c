package shareholders

import (
	"errors"
	"time"

	"github.com/joe700619/SmartFirm/internal/ledger"
	"github.com/joe700619/SmartFirm/internal/models"
	"github.com/joe700619/SmartFirm/internal/pkg/response"
	"github.com/joe700619/SmartFirm/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Handlers bundles the shareholder registry and its derived ledger
// views.
type Handlers struct {
	Service *Service
	Ledger  *ledger.Service
}

// List GET /api/v1/shareholders?search=
func (h *Handlers) List(c *fiber.Ctx) error {
	shareholders, err := h.Service.List(c.Context(), c.Query("search"))
	if err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Shareholders fetched successfully", shareholders, nil)
}

// Get GET /api/v1/shareholders/:id
func (h *Handlers) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid ID format (must be a valid UUID)", 400, nil)
	}
	shareholder, err := h.Service.Get(c.Context(), id)
	if err != nil {
		if err == ErrShareholderNotFound {
			return response.Error(c, err.Error(), 404, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Shareholder fetched successfully", shareholder, nil)
}

// Create POST /api/v1/shareholders
func (h *Handlers) Create(c *fiber.Ctx) error {
	var req ShareholderInput
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	if req.Name == "" {
		return response.Error(c, "name is required", 400, nil)
	}
	shareholder, err := h.Service.Create(c.Context(), req)
	if err != nil {
		switch err {
		case ErrInvalidIdentifier:
			return response.Error(c, err.Error(), 400, nil)
		case ErrIdentifierTaken:
			return response.Error(c, err.Error(), 409, nil)
		default:
			return response.Error(c, "Internal Server Error", 500, nil)
		}
	}
	return response.SuccessCreated(c, "Shareholder created successfully", shareholder, nil)
}

// Update PUT /api/v1/shareholders/:id
func (h *Handlers) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid ID format (must be a valid UUID)", 400, nil)
	}
	var req ShareholderInput
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	shareholder, err := h.Service.Update(c.Context(), id, req)
	if err != nil {
		if err == ErrShareholderNotFound {
			return response.Error(c, err.Error(), 404, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Shareholder updated successfully", shareholder, nil)
}

// Delete DELETE /api/v1/shareholders/:id
func (h *Handlers) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid ID format (must be a valid UUID)", 400, nil)
	}
	if err := h.Service.Delete(c.Context(), id); err != nil {
		if err == ErrShareholderNotFound {
			return response.Error(c, err.Error(), 404, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Shareholder deleted successfully", nil, nil)
}

// Holdings GET /api/v1/shareholders/:id/holdings
func (h *Handlers) Holdings(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid ID format (must be a valid UUID)", 400, nil)
	}
	holdings, err := h.Service.Holdings(c.Context(), id)
	if err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Holdings fetched successfully", holdings, nil)
}

type transactionRequest struct {
	ShareholderID   string              `json:"shareholder_id"`
	CompanyID       string              `json:"company_id"`
	TransactionDate string              `json:"transaction_date"`
	Description     string              `json:"description"`
	TransactionType string              `json:"transaction_type"`
	StockClass      string              `json:"stock_class"`
	ParValue        decimal.Decimal     `json:"par_value"`
	Quantity        int64               `json:"quantity"`
	Amount          decimal.NullDecimal `json:"amount"`
	Note            string              `json:"note"`
}

// RecordTransaction POST /api/v1/shareholders/transactions
func (h *Handlers) RecordTransaction(c *fiber.Ctx) error {
	var req transactionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	shareholderID, err := uuid.Parse(req.ShareholderID)
	if err != nil {
		return response.Error(c, "Invalid shareholder_id format (must be a valid UUID)", 400, nil)
	}
	companyID, err := uuid.Parse(req.CompanyID)
	if err != nil {
		return response.Error(c, "Invalid company_id format (must be a valid UUID)", 400, nil)
	}
	date, ok := validation.ParseDate(req.TransactionDate)
	if !ok {
		return response.Error(c, "Invalid transaction_date format (must be YYYY-MM-DD)", 400, nil)
	}

	record, err := h.Service.RecordTransaction(c.Context(), TransactionInput{
		ShareholderID:   shareholderID,
		CompanyID:       companyID,
		TransactionDate: date,
		Description:     req.Description,
		TransactionType: req.TransactionType,
		StockClass:      req.StockClass,
		ParValue:        req.ParValue,
		Quantity:        req.Quantity,
		Amount:          req.Amount,
		Note:            req.Note,
	})
	if err != nil {
		switch err {
		case ErrUnknownTxType, ErrUnknownStockClass, ErrZeroQuantity:
			return response.Error(c, err.Error(), 400, nil)
		case ErrShareholderNotFound:
			return response.Error(c, err.Error(), 404, nil)
		default:
			return response.Error(c, "Internal Server Error", 500, nil)
		}
	}
	return response.SuccessCreated(c, "Transaction recorded successfully", record, nil)
}

// RemoveTransaction DELETE /api/v1/shareholders/transactions/:id
func (h *Handlers) RemoveTransaction(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid ID format (must be a valid UUID)", 400, nil)
	}
	if err := h.Service.RemoveTransaction(c.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.Error(c, "Transaction not found", 404, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Transaction removed successfully", nil, nil)
}

// asOf parses an optional as_of query, defaulting to today.
func asOf(c *fiber.Ctx) (time.Time, bool) {
	raw := c.Query("as_of")
	if raw == "" {
		return time.Now(), true
	}
	return validation.ParseDate(raw)
}

// Balance GET /api/v1/shareholders/holdings/:id/balance?as_of=&stock_class=
func (h *Handlers) Balance(c *fiber.Ctx) error {
	holdingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid ID format (must be a valid UUID)", 400, nil)
	}
	date, ok := asOf(c)
	if !ok {
		return response.Error(c, "Invalid as_of format (must be YYYY-MM-DD)", 400, nil)
	}
	stockClass := c.Query("stock_class")
	if stockClass != "" && !models.ValidStockClass(stockClass) {
		return response.Error(c, ErrUnknownStockClass.Error(), 400, nil)
	}

	if _, err := h.Service.GetHolding(c.Context(), holdingID); err != nil {
		if err == ErrHoldingNotFound {
			return response.Error(c, err.Error(), 404, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}

	balance, err := h.Ledger.Balance(c.Context(), holdingID, date, stockClass)
	if err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Balance computed successfully", balance, nil)
}

// Roster GET /api/v1/shareholders/companies/:companyID/roster?as_of=
func (h *Handlers) Roster(c *fiber.Ctx) error {
	companyID, err := uuid.Parse(c.Params("companyID"))
	if err != nil {
		return response.Error(c, "Invalid ID format (must be a valid UUID)", 400, nil)
	}
	date, ok := asOf(c)
	if !ok {
		return response.Error(c, "Invalid as_of format (must be YYYY-MM-DD)", 400, nil)
	}
	roster, err := h.Ledger.CompanyRoster(c.Context(), companyID, date)
	if err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Roster computed successfully", roster, nil)
}

// History GET /api/v1/shareholders/holdings/:id/history
func (h *Handlers) History(c *fiber.Ctx) error {
	holdingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid ID format (must be a valid UUID)", 400, nil)
	}
	if _, err := h.Service.GetHolding(c.Context(), holdingID); err != nil {
		if err == ErrHoldingNotFound {
			return response.Error(c, err.Error(), 404, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	history, err := h.Ledger.TransactionHistory(c.Context(), holdingID)
	if err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "History computed successfully", history, nil)
}

// Timeline GET /api/v1/shareholders/companies/:companyID/timeline
func (h *Handlers) Timeline(c *fiber.Ctx) error {
	companyID, err := uuid.Parse(c.Params("companyID"))
	if err != nil {
		return response.Error(c, "Invalid ID format (must be a valid UUID)", 400, nil)
	}
	timeline, err := h.Ledger.CompanyTimeline(c.Context(), companyID)
	if err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Timeline computed successfully", timeline, nil)
}

// CheckConsistency GET /api/v1/shareholders/holdings/:id/consistency
func (h *Handlers) CheckConsistency(c *fiber.Ctx) error {
	holdingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid ID format (must be a valid UUID)", 400, nil)
	}
	if err := h.Ledger.CheckConsistency(c.Context(), holdingID); err != nil {
		if errors.Is(err, ledger.ErrInconsistentBalance) {
			return response.Error(c, "Holding has a negative running balance", 422, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Holding is consistent", fiber.Map{"consistent": true}, nil)
}
