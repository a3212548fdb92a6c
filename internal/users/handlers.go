package users

import (
	"github.com/joe700619/SmartFirm/internal/auth"
	"github.com/joe700619/SmartFirm/internal/middleware"
	"github.com/joe700619/SmartFirm/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *Service
}

// List GET /api/v1/users
func (h *Handlers) List(c *fiber.Ctx) error {
	staff, err := h.Service.List(c.Context())
	if err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Users fetched successfully", staff, nil)
}

// Create POST /api/v1/users
func (h *Handlers) Create(c *fiber.Ctx) error {
	var req CreateInput
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	if req.Fullname == "" || req.Email == "" || req.Password == "" {
		return response.Error(c, "fullname, email and password are required", 400, nil)
	}
	user, err := h.Service.Create(c.Context(), req)
	if err != nil {
		switch err {
		case ErrInvalidEmail, ErrWeakPassword, ErrUnknownRole:
			return response.Error(c, err.Error(), 400, nil)
		case ErrEmailTaken:
			return response.Error(c, err.Error(), 409, nil)
		default:
			return response.Error(c, "Internal Server Error", 500, nil)
		}
	}
	return response.SuccessCreated(c, "User created successfully", user, nil)
}

type updateRoleRequest struct {
	Role string `json:"role"`
}

// UpdateRole PATCH /api/v1/users/:id/role
func (h *Handlers) UpdateRole(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid ID format (must be a valid UUID)", 400, nil)
	}
	var req updateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	user, err := h.Service.UpdateRole(c.Context(), id, req.Role)
	if err != nil {
		switch err {
		case ErrUnknownRole:
			return response.Error(c, err.Error(), 400, nil)
		case ErrUserNotFound:
			return response.Error(c, err.Error(), 404, nil)
		default:
			return response.Error(c, "Internal Server Error", 500, nil)
		}
	}
	return response.Success(c, "User role updated successfully", user, nil)
}

// Delete DELETE /api/v1/users/:id
func (h *Handlers) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid ID format (must be a valid UUID)", 400, nil)
	}

	caller, err2 := auth.VerifyUser(middleware.GetUser(c))
	if err2 != nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	callerID, err2 := uuid.Parse(caller.UserID)
	if err2 != nil {
		return response.Error(c, "Authorization error", 500, nil)
	}

	if err := h.Service.Delete(c.Context(), id, callerID); err != nil {
		switch err {
		case ErrSelfDeactivated:
			return response.Error(c, err.Error(), 400, nil)
		case ErrUserNotFound:
			return response.Error(c, err.Error(), 404, nil)
		default:
			return response.Error(c, "Internal Server Error", 500, nil)
		}
	}
	return response.Success(c, "User deleted successfully", nil, nil)
}
