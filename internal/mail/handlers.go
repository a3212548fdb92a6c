package mail

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

type createRequest struct {
	Date  string      `json:"date"`
	Items []ItemInput `json:"items"`
}

// Create POST /api/v1/mail
func (h *Handlers) Create(c *fiber.Ctx) error {
	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	date, ok := validation.ParseDate(req.Date)
	if !ok {
		return response.Error(c, "Invalid date format (must be YYYY-MM-DD)", 400, nil)
	}

	record, err := h.Service.Create(c.Context(), CreateInput{Date: date, Items: req.Items})
	if err != nil {
		switch err {
		case ErrNoItems, ErrUnknownContentType:
			return response.Error(c, err.Error(), 400, nil)
		case sequence.ErrCodeCollision:
			return response.Error(c, "Serial number allocation conflict, please retry", 409, nil)
		default:
			return response.Error(c, "Internal Server Error", 500, nil)
		}
	}
	return response.SuccessCreated(c, "Mail record created successfully", record, nil)
}

// List GET /api/v1/mail?from=&to=
func (h *Handlers) List(c *fiber.Ctx) error {
	var filter ListFilter
	if from := c.Query("from"); from != "" {
		t, ok := validation.ParseDate(from)
		if !ok {
			return response.Error(c, "Invalid date format (must be YYYY-MM-DD)", 400, nil)
		}
		filter.From = &t
	}
	if to := c.Query("to"); to != "" {
		t, ok := validation.ParseDate(to)
		if !ok {
			return response.Error(c, "Invalid date format (must be YYYY-MM-DD)", 400, nil)
		}
		filter.To = &t
	}

	records, err := h.Service.List(c.Context(), filter)
	if err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Mail records fetched successfully", records, nil)
}

// Get GET /api/v1/mail/:id
func (h *Handlers) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid ID format (must be a valid UUID)", 400, nil)
	}
	record, err := h.Service.Get(c.Context(), id)
	if err != nil {
		if err == ErrMailNotFound {
			return response.Error(c, err.Error(), 404, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Mail record fetched successfully", record, nil)
}

type updateItemsRequest struct {
	Items []ItemInput `json:"items"`
}

// UpdateItems PUT /api/v1/mail/:id/items
func (h *Handlers) UpdateItems(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid ID format (must be a valid UUID)", 400, nil)
	}
	var req updateItemsRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	record, err := h.Service.UpdateItems(c.Context(), id, req.Items)
	if err != nil {
		switch err {
		case ErrNoItems, ErrUnknownContentType:
			return response.Error(c, err.Error(), 400, nil)
		case ErrMailNotFound:
			return response.Error(c, err.Error(), 404, nil)
		default:
			return response.Error(c, "Internal Server Error", 500, nil)
		}
	}
	return response.Success(c, "Mail record updated successfully", record, nil)
}

// Delete DELETE /api/v1/mail/:id
func (h *Handlers) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid ID format (must be a valid UUID)", 400, nil)
	}
	if err := h.Service.Delete(c.Context(), id); err != nil {
		if err == ErrMailNotFound {
			return response.Error(c, err.Error(), 404, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Mail record deleted successfully", nil, nil)
}
