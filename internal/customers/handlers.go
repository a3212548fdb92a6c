package customers

import (
	"github.com/joe700619/SmartFirm/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Handlers bundles customer master handlers.
type Handlers struct {
	Service *Service
}

// List GET /api/v1/customers?search=&page=&page_size=
func (h *Handlers) List(c *fiber.Ctx) error {
	search := c.Query("search")
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", 20)

	result, err := h.Service.List(c.Context(), search, page, pageSize)
	if err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Customers fetched successfully", result.Companies, fiber.Map{
		"total":     result.Total,
		"page":      result.Page,
		"page_size": result.PageSize,
	})
}

// Get GET /api/v1/customers/:id
func (h *Handlers) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid ID format (must be a valid UUID)", 400, nil)
	}
	company, err := h.Service.Get(c.Context(), id)
	if err != nil {
		if err == ErrCompanyNotFound {
			return response.Error(c, err.Error(), 404, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Customer fetched successfully", company, nil)
}

// Create POST /api/v1/customers
func (h *Handlers) Create(c *fiber.Ctx) error {
	var req CompanyInput
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	if req.CompanyName == "" || req.RegistrationAddress == "" {
		return response.Error(c, "company_name and registration_address are required", 400, nil)
	}

	company, err := h.Service.Create(c.Context(), req)
	if err != nil {
		switch err {
		case ErrInvalidCompanyID:
			return response.Error(c, err.Error(), 400, nil)
		case ErrCompanyIDTaken:
			return response.Error(c, err.Error(), 409, nil)
		default:
			return response.Error(c, "Internal Server Error", 500, nil)
		}
	}
	return response.SuccessCreated(c, "Customer created successfully", company, nil)
}

// Update PUT /api/v1/customers/:id
func (h *Handlers) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid ID format (must be a valid UUID)", 400, nil)
	}
	var req CompanyInput
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}

	company, err := h.Service.Update(c.Context(), id, req)
	if err != nil {
		if err == ErrCompanyNotFound {
			return response.Error(c, err.Error(), 404, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Customer updated successfully", company, nil)
}

// Delete DELETE /api/v1/customers/:id
func (h *Handlers) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid ID format (must be a valid UUID)", 400, nil)
	}
	if err := h.Service.Delete(c.Context(), id); err != nil {
		if err == ErrCompanyNotFound {
			return response.Error(c, err.Error(), 404, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Customer deleted successfully", nil, nil)
}
