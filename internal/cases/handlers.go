package cases

import (
	"github.com/joe700619/SmartFirm/internal/pkg/response"
	"github.com/joe700619/SmartFirm/internal/pkg/validation"
	"github.com/joe700619/SmartFirm/internal/sequence"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *Service
}

type createCaseRequest struct {
	CaseTypeID   string  `json:"case_type_id"`
	CompanyID    string  `json:"company_id"`
	FilingDate   string  `json:"filing_date"`
	ExpectedDays int     `json:"expected_days"`
	Status       string  `json:"status"`
	Notes        *string `json:"notes"`
}

// Create POST /api/v1/cases
func (h *Handlers) Create(c *fiber.Ctx) error {
	var req createCaseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	caseTypeID, err := uuid.Parse(req.CaseTypeID)
	if err != nil {
		return response.Error(c, "Invalid case_type_id format (must be a valid UUID)", 400, nil)
	}
	companyID, err := uuid.Parse(req.CompanyID)
	if err != nil {
		return response.Error(c, "Invalid company_id format (must be a valid UUID)", 400, nil)
	}
	filingDate, ok := validation.ParseDate(req.FilingDate)
	if !ok {
		return response.Error(c, "Invalid filing_date format (must be YYYY-MM-DD)", 400, nil)
	}

	view, err := h.Service.Create(c.Context(), CaseInput{
		CaseTypeID:   caseTypeID,
		CompanyID:    companyID,
		FilingDate:   filingDate,
		ExpectedDays: req.ExpectedDays,
		Status:       req.Status,
		Notes:        req.Notes,
	})
	if err != nil {
		switch err {
		case ErrUnknownStatus:
			return response.Error(c, err.Error(), 400, nil)
		case ErrCaseTypeNotFound:
			return response.Error(c, err.Error(), 404, nil)
		case sequence.ErrCodeCollision:
			return response.Error(c, "Case number allocation conflict, please retry", 409, nil)
		default:
			return response.Error(c, "Internal Server Error", 500, nil)
		}
	}
	return response.SuccessCreated(c, "Case created successfully", view, nil)
}

// List GET /api/v1/cases?status=&overdue=true
func (h *Handlers) List(c *fiber.Ctx) error {
	views, err := h.Service.List(c.Context(), c.Query("status"), c.QueryBool("overdue", false))
	if err != nil {
		if err == ErrUnknownStatus {
			return response.Error(c, err.Error(), 400, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Cases fetched successfully", views, nil)
}

// Get GET /api/v1/cases/:id
func (h *Handlers) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid ID format (must be a valid UUID)", 400, nil)
	}
	view, err := h.Service.Get(c.Context(), id)
	if err != nil {
		if err == ErrCaseNotFound {
			return response.Error(c, err.Error(), 404, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Case fetched successfully", view, nil)
}

type updateStatusRequest struct {
	Status string  `json:"status"`
	Notes  *string `json:"notes"`
}

// UpdateStatus PATCH /api/v1/cases/:id/status
func (h *Handlers) UpdateStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid ID format (must be a valid UUID)", 400, nil)
	}
	var req updateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	view, err := h.Service.UpdateStatus(c.Context(), id, req.Status, req.Notes)
	if err != nil {
		switch err {
		case ErrUnknownStatus:
			return response.Error(c, err.Error(), 400, nil)
		case ErrCaseNotFound:
			return response.Error(c, err.Error(), 404, nil)
		default:
			return response.Error(c, "Internal Server Error", 500, nil)
		}
	}
	return response.Success(c, "Case status updated successfully", view, nil)
}

// Delete DELETE /api/v1/cases/:id
func (h *Handlers) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid ID format (must be a valid UUID)", 400, nil)
	}
	if err := h.Service.Delete(c.Context(), id); err != nil {
		if err == ErrCaseNotFound {
			return response.Error(c, err.Error(), 404, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Case deleted successfully", nil, nil)
}
