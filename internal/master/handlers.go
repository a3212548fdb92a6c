package master

import (
	"github.com/joe700619/SmartFirm/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *Service
}

// ListServiceItems GET /api/v1/master/service-items?department=
func (h *Handlers) ListServiceItems(c *fiber.Ctx) error {
	items, err := h.Service.ListServiceItems(c.Context(), c.Query("department"))
	if err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Service items fetched successfully", items, nil)
}

// CreateServiceItem POST /api/v1/master/service-items
func (h *Handlers) CreateServiceItem(c *fiber.Ctx) error {
	var req ServiceItemInput
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	if req.ServiceCode == "" || req.ServiceName == "" {
		return response.Error(c, "service_code and service_name are required", 400, nil)
	}
	item, err := h.Service.CreateServiceItem(c.Context(), req)
	if err != nil {
		if err == ErrServiceCodeTaken {
			return response.Error(c, err.Error(), 409, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.SuccessCreated(c, "Service item created successfully", item, nil)
}

// UpdateServiceItem PUT /api/v1/master/service-items/:id
func (h *Handlers) UpdateServiceItem(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid ID format (must be a valid UUID)", 400, nil)
	}
	var req ServiceItemInput
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	item, err := h.Service.UpdateServiceItem(c.Context(), id, req)
	if err != nil {
		if err == ErrServiceItemNotFound {
			return response.Error(c, err.Error(), 404, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Service item updated successfully", item, nil)
}

// DeleteServiceItem DELETE /api/v1/master/service-items/:id
func (h *Handlers) DeleteServiceItem(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid ID format (must be a valid UUID)", 400, nil)
	}
	if err := h.Service.DeleteServiceItem(c.Context(), id); err != nil {
		if err == ErrServiceItemNotFound {
			return response.Error(c, err.Error(), 404, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Service item deleted successfully", nil, nil)
}

// ListCaseTypes GET /api/v1/master/case-types
func (h *Handlers) ListCaseTypes(c *fiber.Ctx) error {
	types, err := h.Service.ListCaseTypes(c.Context())
	if err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Case types fetched successfully", types, nil)
}

type caseTypeRequest struct {
	Name string `json:"name"`
}

// CreateCaseType POST /api/v1/master/case-types
func (h *Handlers) CreateCaseType(c *fiber.Ctx) error {
	var req caseTypeRequest
	if err := c.BodyParser(&req); err != nil || req.Name == "" {
		return response.Error(c, "name is required", 400, nil)
	}
	caseType, err := h.Service.CreateCaseType(c.Context(), req.Name)
	if err != nil {
		if err == ErrCaseTypeNameTaken {
			return response.Error(c, err.Error(), 409, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.SuccessCreated(c, "Case type created successfully", caseType, nil)
}

// DeleteCaseType DELETE /api/v1/master/case-types/:id
func (h *Handlers) DeleteCaseType(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid ID format (must be a valid UUID)", 400, nil)
	}
	if err := h.Service.DeleteCaseType(c.Context(), id); err != nil {
		if err == ErrCaseTypeNotFound {
			return response.Error(c, err.Error(), 404, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Case type deleted successfully", nil, nil)
}

// ListKnowledgeNotes GET /api/v1/master/knowledge-notes?search=
func (h *Handlers) ListKnowledgeNotes(c *fiber.Ctx) error {
	notes, err := h.Service.ListKnowledgeNotes(c.Context(), c.Query("search"))
	if err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Knowledge notes fetched successfully", notes, nil)
}

// CreateKnowledgeNote POST /api/v1/master/knowledge-notes
func (h *Handlers) CreateKnowledgeNote(c *fiber.Ctx) error {
	var req KnowledgeNoteInput
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	if req.Title == "" {
		return response.Error(c, "title is required", 400, nil)
	}
	note, err := h.Service.CreateKnowledgeNote(c.Context(), req)
	if err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.SuccessCreated(c, "Knowledge note created successfully", note, nil)
}

// UpdateKnowledgeNote PUT /api/v1/master/knowledge-notes/:id
func (h *Handlers) UpdateKnowledgeNote(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid ID format (must be a valid UUID)", 400, nil)
	}
	var req KnowledgeNoteInput
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	note, err := h.Service.UpdateKnowledgeNote(c.Context(), id, req)
	if err != nil {
		if err == ErrNoteNotFound {
			return response.Error(c, err.Error(), 404, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Knowledge note updated successfully", note, nil)
}

// DeleteKnowledgeNote DELETE /api/v1/master/knowledge-notes/:id
func (h *Handlers) DeleteKnowledgeNote(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid ID format (must be a valid UUID)", 400, nil)
	}
	if err := h.Service.DeleteKnowledgeNote(c.Context(), id); err != nil {
		if err == ErrNoteNotFound {
			return response.Error(c, err.Error(), 404, nil)
		}
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "Knowledge note deleted successfully", nil, nil)
}

// GetSystemParameter GET /api/v1/master/system-parameters
func (h *Handlers) GetSystemParameter(c *fiber.Ctx) error {
	param, err := h.Service.GetSystemParameter(c.Context())
	if err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "System parameters fetched successfully", param, nil)
}

// UpdateSystemParameter PATCH /api/v1/master/system-parameters
func (h *Handlers) UpdateSystemParameter(c *fiber.Ctx) error {
	var req SystemParameterInput
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", 400, nil)
	}
	param, err := h.Service.UpdateSystemParameter(c.Context(), req)
	if err != nil {
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "System parameters updated successfully", param, nil)
}
