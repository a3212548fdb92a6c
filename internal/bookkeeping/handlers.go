package bookkeeping

import (
	"github.com/joe700619/SmartFirm/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *Service
}

// List GET /api/v1/bookkeeping?period=&company_id=
func (h *Handlers) List(c *fiber.Ctx) error {
	views, err := h.Service.List(c.Context(), c.Query("period"), c.Query("company_id"))
	if err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Checklists fetched successfully", views, nil)
}

// Get GET /api/v1/bookkeeping/:id
func (h *Handlers) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid ID format (must be a valid UUID)", 400, nil)
	}
	view, err := h.Service.Get(c.Context(), id)
	if err != nil {
		if err == ErrChecklistNotFound {
			return response.Error(c, err.Error(), 404, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Checklist fetched successfully", view, nil)
}

// Create POST /api/v1/bookkeeping
func (h *Handlers) Create(c *fiber.Ctx) error {
	var req ChecklistInput
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	if req.CompanyID == "" || req.CheckPeriod == "" {
		return response.Error(c, "company_id and check_period are required", 400, nil)
	}
	view, err := h.Service.Create(c.Context(), req)
	if err != nil {
		if err == ErrUnknownStatus {
			return response.Error(c, err.Error(), 400, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.SuccessCreated(c, "Checklist created successfully", view, nil)
}

// Update PUT /api/v1/bookkeeping/:id
func (h *Handlers) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid ID format (must be a valid UUID)", 400, nil)
	}
	var req ChecklistInput
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	view, err := h.Service.Update(c.Context(), id, req)
	if err != nil {
		switch err {
		case ErrUnknownStatus:
			return response.Error(c, err.Error(), 400, nil)
		case ErrChecklistNotFound:
			return response.Error(c, err.Error(), 404, nil)
		default:
			return response.Error(c, "Internal Server Error", 500, nil)
		}
	}
	return response.Success(c, "Checklist updated successfully", view, nil)
}

// Delete DELETE /api/v1/bookkeeping/:id
func (h *Handlers) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid ID format (must be a valid UUID)", 400, nil)
	}
	if err := h.Service.Delete(c.Context(), id); err != nil {
		if err == ErrChecklistNotFound {
			return response.Error(c, err.Error(), 404, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Checklist deleted successfully", nil, nil)
}
