package customerchanges

import (
	"github.com/joe700619/SmartFirm/internal/pkg/response"
	"github.com/joe700619/SmartFirm/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *Service
}

type changeRequest struct {
	CompanyID           string `json:"company_id"`
	CompanyName         string `json:"company_name"`
	AccountingAssistant string `json:"accounting_assistant"`
	OverdueDays         int    `json:"overdue_days"`
	EstablishmentDate   string `json:"establishment_date"`
	ChangeType          string `json:"change_type"`
	InvoiceQuantity     bool   `json:"invoice_quantity"`
	IDCopy              bool   `json:"id_copy"`
	LeaseAndTax         bool   `json:"lease_and_tax"`
}

func (r changeRequest) toInput() (ChangeInput, string) {
	date, ok := validation.ParseDate(r.EstablishmentDate)
	if !ok {
		return ChangeInput{}, "Invalid establishment_date format (must be YYYY-MM-DD)"
	}
	return ChangeInput{
		CompanyID:           r.CompanyID,
		CompanyName:         r.CompanyName,
		AccountingAssistant: r.AccountingAssistant,
		OverdueDays:         r.OverdueDays,
		EstablishmentDate:   date,
		ChangeType:          r.ChangeType,
		InvoiceQuantity:     r.InvoiceQuantity,
		IDCopy:              r.IDCopy,
		LeaseAndTax:         r.LeaseAndTax,
	}, ""
}

// List GET /api/v1/customer-changes?change_type=
func (h *Handlers) List(c *fiber.Ctx) error {
	changes, err := h.Service.List(c.Context(), c.Query("change_type"))
	if err != nil {
		if err == ErrUnknownChangeType {
			return response.Error(c, err.Error(), 400, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Customer changes fetched successfully", changes, nil)
}

// Get GET /api/v1/customer-changes/:id
func (h *Handlers) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid ID format (must be a valid UUID)", 400, nil)
	}
	change, err := h.Service.Get(c.Context(), id)
	if err != nil {
		if err == ErrChangeNotFound {
			return response.Error(c, err.Error(), 404, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Customer change fetched successfully", change, nil)
}

// Create POST /api/v1/customer-changes
func (h *Handlers) Create(c *fiber.Ctx) error {
	var req changeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	in, msg := req.toInput()
	if msg != "" {
		return response.Error(c, msg, 400, nil)
	}
	change, err := h.Service.Create(c.Context(), in)
	if err != nil {
		if err == ErrUnknownChangeType {
			return response.Error(c, err.Error(), 400, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.SuccessCreated(c, "Customer change created successfully", change, nil)
}

// Update PUT /api/v1/customer-changes/:id
func (h *Handlers) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid ID format (must be a valid UUID)", 400, nil)
	}
	var req changeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	in, msg := req.toInput()
	if msg != "" {
		return response.Error(c, msg, 400, nil)
	}
	change, err := h.Service.Update(c.Context(), id, in)
	if err != nil {
		switch err {
		case ErrUnknownChangeType:
			return response.Error(c, err.Error(), 400, nil)
		case ErrChangeNotFound:
			return response.Error(c, err.Error(), 404, nil)
		default:
			return response.Error(c, "Internal Server Error", 500, nil)
		}
	}
	return response.Success(c, "Customer change updated successfully", change, nil)
}

// Delete DELETE /api/v1/customer-changes/:id
func (h *Handlers) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid ID format (must be a valid UUID)", 400, nil)
	}
	if err := h.Service.Delete(c.Context(), id); err != nil {
		if err == ErrChangeNotFound {
			return response.Error(c, err.Error(), 404, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Customer change deleted successfully", nil, nil)
}
