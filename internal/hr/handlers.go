package hr

import (
	"github.com/joe700619/SmartFirm/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *Service
}

// List GET /api/v1/hr/employees?status=&group=
func (h *Handlers) List(c *fiber.Ctx) error {
	employees, err := h.Service.List(c.Context(), c.Query("status"), c.Query("group"))
	if err != nil {
		if err == ErrUnknownStatus {
			return response.Error(c, err.Error(), 400, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Employees fetched successfully", employees, nil)
}

// Get GET /api/v1/hr/employees/:id
func (h *Handlers) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid ID format (must be a valid UUID)", 400, nil)
	}
	employee, err := h.Service.Get(c.Context(), id)
	if err != nil {
		if err == ErrEmployeeNotFound {
			return response.Error(c, err.Error(), 404, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Employee fetched successfully", employee, nil)
}

// Create POST /api/v1/hr/employees
func (h *Handlers) Create(c *fiber.Ctx) error {
	var req EmployeeInput
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	if req.EmployeeID == "" || req.Name == "" || req.IDNumber == "" {
		return response.Error(c, "employee_id, name and id_number are required", 400, nil)
	}
	employee, err := h.Service.Create(c.Context(), req)
	if err != nil {
		switch err {
		case ErrUnknownStatus:
			return response.Error(c, err.Error(), 400, nil)
		case ErrEmployeeIDTaken, ErrIDNumberTaken:
			return response.Error(c, err.Error(), 409, nil)
		default:
			return response.Error(c, "Internal Server Error", 500, nil)
		}
	}
	return response.SuccessCreated(c, "Employee created successfully", employee, nil)
}

// Update PUT /api/v1/hr/employees/:id
func (h *Handlers) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid ID format (must be a valid UUID)", 400, nil)
	}
	var req EmployeeInput
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	employee, err := h.Service.Update(c.Context(), id, req)
	if err != nil {
		switch err {
		case ErrUnknownStatus:
			return response.Error(c, err.Error(), 400, nil)
		case ErrEmployeeNotFound:
			return response.Error(c, err.Error(), 404, nil)
		default:
			return response.Error(c, "Internal Server Error", 500, nil)
		}
	}
	return response.Success(c, "Employee updated successfully", employee, nil)
}

// Delete DELETE /api/v1/hr/employees/:id
func (h *Handlers) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid ID format (must be a valid UUID)", 400, nil)
	}
	if err := h.Service.Delete(c.Context(), id); err != nil {
		if err == ErrEmployeeNotFound {
			return response.Error(c, err.Error(), 404, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Employee deleted successfully", nil, nil)
}
