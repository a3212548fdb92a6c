package vatchecks

import (
	"github.com/joe700619/SmartFirm/internal/pkg/response"
	"github.com/joe700619/SmartFirm/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *Service
}

type checkRequest struct {
	Date        string      `json:"date"`
	CheckPeriod string      `json:"check_period"`
	Inspector   string      `json:"inspector"`
	Inspectee   string      `json:"inspectee"`
	Status      string      `json:"status"`
	Items       []ItemInput `json:"items"`
}

// List GET /api/v1/vat-checks?period=
func (h *Handlers) List(c *fiber.Ctx) error {
	checks, err := h.Service.List(c.Context(), c.Query("period"))
	if err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "VAT checks fetched successfully", checks, nil)
}

// Get GET /api/v1/vat-checks/:id
func (h *Handlers) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid ID format (must be a valid UUID)", 400, nil)
	}
	check, err := h.Service.Get(c.Context(), id)
	if err != nil {
		if err == ErrCheckNotFound {
			return response.Error(c, err.Error(), 404, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "VAT check fetched successfully", check, nil)
}

// Create POST /api/v1/vat-checks
func (h *Handlers) Create(c *fiber.Ctx) error {
	var req checkRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	date, ok := validation.ParseDate(req.Date)
	if !ok {
		return response.Error(c, "Invalid date format (must be YYYY-MM-DD)", 400, nil)
	}

	check, err := h.Service.Create(c.Context(), CheckInput{
		Date:        date,
		CheckPeriod: req.CheckPeriod,
		Inspector:   req.Inspector,
		Inspectee:   req.Inspectee,
		Status:      req.Status,
		Items:       req.Items,
	})
	if err != nil {
		if err == ErrUnknownStatus {
			return response.Error(c, err.Error(), 400, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.SuccessCreated(c, "VAT check created successfully", check, nil)
}

// Update PUT /api/v1/vat-checks/:id
func (h *Handlers) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid ID format (must be a valid UUID)", 400, nil)
	}
	var req checkRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	date, ok := validation.ParseDate(req.Date)
	if !ok {
		return response.Error(c, "Invalid date format (must be YYYY-MM-DD)", 400, nil)
	}

	check, err := h.Service.Update(c.Context(), id, CheckInput{
		Date:        date,
		CheckPeriod: req.CheckPeriod,
		Inspector:   req.Inspector,
		Inspectee:   req.Inspectee,
		Status:      req.Status,
		Items:       req.Items,
	})
	if err != nil {
		switch err {
		case ErrUnknownStatus:
			return response.Error(c, err.Error(), 400, nil)
		case ErrCheckNotFound:
			return response.Error(c, err.Error(), 404, nil)
		default:
			return response.Error(c, "Internal Server Error", 500, nil)
		}
	}
	return response.Success(c, "VAT check updated successfully", check, nil)
}

// Delete DELETE /api/v1/vat-checks/:id
func (h *Handlers) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid ID format (must be a valid UUID)", 400, nil)
	}
	if err := h.Service.Delete(c.Context(), id); err != nil {
		if err == ErrCheckNotFound {
			return response.Error(c, err.Error(), 404, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "VAT check deleted successfully", nil, nil)
}
