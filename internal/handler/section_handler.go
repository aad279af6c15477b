package handler

import (
	"context"
	"encoding/json"

	"github.com/noah-isme/attendance-bridge/internal/models"
)

type sectionService interface {
	List(ctx context.Context, teacherID string, role models.UserRole) ([]models.Section, error)
	Add(ctx context.Context, role models.UserRole, data models.SectionData) (*models.Section, error)
	Update(ctx context.Context, id string, role models.UserRole, data models.SectionData) (*models.Section, error)
	Delete(ctx context.Context, id string, role models.UserRole) error
}

// SectionHandler wires section operations onto the bridge.
type SectionHandler struct {
	service sectionService
}

// NewSectionHandler creates a new handler.
func NewSectionHandler(svc sectionService) *SectionHandler {
	return &SectionHandler{service: svc}
}

// Mount registers the section operations.
func (h *SectionHandler) Mount(d *Dispatcher) {
	d.Register("sections:get", h.List)
	d.Register("sections:add", h.Add)
	d.Register("sections:update", h.Update)
	d.Register("sections:delete", h.Delete)
}

// List handles sections:get.
func (h *SectionHandler) List(ctx context.Context, payload json.RawMessage) (interface{}, error) {
	var req struct {
		TeacherID string          `json:"teacher_id"`
		UserRole  models.UserRole `json:"user_role"`
	}
	if err := decode(payload, &req); err != nil {
		return nil, err
	}
	return h.service.List(ctx, req.TeacherID, req.UserRole)
}

// Add handles sections:add.
func (h *SectionHandler) Add(ctx context.Context, payload json.RawMessage) (interface{}, error) {
	var req struct {
		SectionData models.SectionData `json:"section_data"`
		UserRole    models.UserRole    `json:"user_role"`
	}
	if err := decode(payload, &req); err != nil {
		return nil, err
	}
	return h.service.Add(ctx, req.UserRole, req.SectionData)
}

// Update handles sections:update.
func (h *SectionHandler) Update(ctx context.Context, payload json.RawMessage) (interface{}, error) {
	var req struct {
		ID          string             `json:"id"`
		SectionData models.SectionData `json:"section_data"`
		UserRole    models.UserRole    `json:"user_role"`
	}
	if err := decode(payload, &req); err != nil {
		return nil, err
	}
	return h.service.Update(ctx, req.ID, req.UserRole, req.SectionData)
}

// Delete handles sections:delete.
func (h *SectionHandler) Delete(ctx context.Context, payload json.RawMessage) (interface{}, error) {
	var req struct {
		ID       string          `json:"id"`
		UserRole models.UserRole `json:"user_role"`
	}
	if err := decode(payload, &req); err != nil {
		return nil, err
	}
	return nil, h.service.Delete(ctx, req.ID, req.UserRole)
}
