package handler

import (
	"context"
	"encoding/json"

	"github.com/noah-isme/attendance-bridge/internal/models"
)

type studentService interface {
	List(ctx context.Context, teacherID string) ([]models.StudentDetail, error)
	Add(ctx context.Context, teacherID string, data models.StudentData) (*models.Student, error)
	Update(ctx context.Context, id, teacherID string, data models.StudentData) error
	Delete(ctx context.Context, id, teacherID string) error
}

// StudentHandler wires roster operations onto the bridge.
type StudentHandler struct {
	service studentService
}

// NewStudentHandler creates a new handler.
func NewStudentHandler(svc studentService) *StudentHandler {
	return &StudentHandler{service: svc}
}

// Mount registers the student operations.
func (h *StudentHandler) Mount(d *Dispatcher) {
	d.Register("students:get", h.List)
	d.Register("students:add", h.Add)
	d.Register("students:update", h.Update)
	d.Register("students:delete", h.Delete)
}

// List handles students:get.
func (h *StudentHandler) List(ctx context.Context, payload json.RawMessage) (interface{}, error) {
	var req struct {
		TeacherID string `json:"teacher_id"`
	}
	if err := decode(payload, &req); err != nil {
		return nil, err
	}
	return h.service.List(ctx, req.TeacherID)
}

// Add handles students:add.
func (h *StudentHandler) Add(ctx context.Context, payload json.RawMessage) (interface{}, error) {
	var req struct {
		StudentData models.StudentData `json:"student_data"`
		TeacherID   string             `json:"teacher_id"`
	}
	if err := decode(payload, &req); err != nil {
		return nil, err
	}
	return h.service.Add(ctx, req.TeacherID, req.StudentData)
}

// Update handles students:update.
func (h *StudentHandler) Update(ctx context.Context, payload json.RawMessage) (interface{}, error) {
	var req struct {
		ID          string             `json:"id"`
		StudentData models.StudentData `json:"student_data"`
		TeacherID   string             `json:"teacher_id"`
	}
	if err := decode(payload, &req); err != nil {
		return nil, err
	}
	return nil, h.service.Update(ctx, req.ID, req.TeacherID, req.StudentData)
}

// Delete handles students:delete.
func (h *StudentHandler) Delete(ctx context.Context, payload json.RawMessage) (interface{}, error) {
	var req struct {
		ID        string `json:"id"`
		TeacherID string `json:"teacher_id"`
	}
	if err := decode(payload, &req); err != nil {
		return nil, err
	}
	return nil, h.service.Delete(ctx, req.ID, req.TeacherID)
}
