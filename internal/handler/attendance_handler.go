package handler

import (
	"context"
	"encoding/json"

	"github.com/noah-isme/attendance-bridge/internal/models"
)

type attendanceService interface {
	Get(ctx context.Context, month, year string, sectionID *string, teacherID string) ([]models.AttendanceEntry, error)
	GetByDateRange(ctx context.Context, startDate, endDate string, sectionID *string, teacherID string) ([]models.AttendanceEntry, error)
	Mark(ctx context.Context, teacherID string, marks []models.AttendanceMark) error
	Summary(ctx context.Context, studentID, teacherID string) (*models.StudentSummary, error)
}

// AttendanceHandler wires ledger operations onto the bridge.
type AttendanceHandler struct {
	service attendanceService
}

// NewAttendanceHandler creates a new handler.
func NewAttendanceHandler(svc attendanceService) *AttendanceHandler {
	return &AttendanceHandler{service: svc}
}

// Mount registers the attendance operations.
func (h *AttendanceHandler) Mount(d *Dispatcher) {
	d.Register("attendance:get", h.Get)
	d.Register("attendance:getByDateRange", h.GetByDateRange)
	d.Register("attendance:mark", h.Mark)
	d.Register("attendance:summary", h.Summary)
}

// Get handles attendance:get.
func (h *AttendanceHandler) Get(ctx context.Context, payload json.RawMessage) (interface{}, error) {
	var req struct {
		Month     string  `json:"month"`
		Year      string  `json:"year"`
		SectionID *string `json:"section_id"`
		TeacherID string  `json:"teacher_id"`
	}
	if err := decode(payload, &req); err != nil {
		return nil, err
	}
	return h.service.Get(ctx, req.Month, req.Year, req.SectionID, req.TeacherID)
}

// GetByDateRange handles attendance:getByDateRange.
func (h *AttendanceHandler) GetByDateRange(ctx context.Context, payload json.RawMessage) (interface{}, error) {
	var req struct {
		StartDate string  `json:"start_date"`
		EndDate   string  `json:"end_date"`
		SectionID *string `json:"section_id"`
		TeacherID string  `json:"teacher_id"`
	}
	if err := decode(payload, &req); err != nil {
		return nil, err
	}
	return h.service.GetByDateRange(ctx, req.StartDate, req.EndDate, req.SectionID, req.TeacherID)
}

// Mark handles attendance:mark.
func (h *AttendanceHandler) Mark(ctx context.Context, payload json.RawMessage) (interface{}, error) {
	var req struct {
		AttendanceData []models.AttendanceMark `json:"attendance_data"`
		TeacherID      string                  `json:"teacher_id"`
	}
	if err := decode(payload, &req); err != nil {
		return nil, err
	}
	return nil, h.service.Mark(ctx, req.TeacherID, req.AttendanceData)
}

// Summary handles attendance:summary.
func (h *AttendanceHandler) Summary(ctx context.Context, payload json.RawMessage) (interface{}, error) {
	var req struct {
		StudentID string `json:"student_id"`
		TeacherID string `json:"teacher_id"`
	}
	if err := decode(payload, &req); err != nil {
		return nil, err
	}
	return h.service.Summary(ctx, req.StudentID, req.TeacherID)
}
