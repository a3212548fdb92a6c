package contacts

import (
	"github.com/joe700619/SmartFirm/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *Service
}

// List GET /api/v1/contacts?search=
func (h *Handlers) List(c *fiber.Ctx) error {
	contacts, err := h.Service.List(c.Context(), c.Query("search"))
	if err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Contacts fetched successfully", contacts, nil)
}

// Get GET /api/v1/contacts/:id
func (h *Handlers) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid ID format (must be a valid UUID)", 400, nil)
	}
	contact, err := h.Service.Get(c.Context(), id)
	if err != nil {
		if err == ErrContactNotFound {
			return response.Error(c, err.Error(), 404, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Contact fetched successfully", contact, nil)
}

// Create POST /api/v1/contacts
func (h *Handlers) Create(c *fiber.Ctx) error {
	var req ContactInput
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	if req.Name == "" || req.CompanyName == "" {
		return response.Error(c, "name and company_name are required", 400, nil)
	}
	contact, err := h.Service.Create(c.Context(), req)
	if err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.SuccessCreated(c, "Contact created successfully", contact, nil)
}

// Update PUT /api/v1/contacts/:id
func (h *Handlers) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid ID format (must be a valid UUID)", 400, nil)
	}
	var req ContactInput
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	contact, err := h.Service.Update(c.Context(), id, req)
	if err != nil {
		if err == ErrContactNotFound {
			return response.Error(c, err.Error(), 404, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Contact updated successfully", contact, nil)
}

// Delete DELETE /api/v1/contacts/:id
func (h *Handlers) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid ID format (must be a valid UUID)", 400, nil)
	}
	if err := h.Service.Delete(c.Context(), id); err != nil {
		if err == ErrContactNotFound {
			return response.Error(c, err.Error(), 404, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Contact deleted successfully", nil, nil)
}
