package handler

import (
	"context"
	"encoding/json"

	"github.com/noah-isme/attendance-bridge/internal/service"
)

type exportService interface {
	Monthly(ctx context.Context, teacherID, month, year string, sectionID *string, format service.ExportFormat) (*service.ExportResult, error)
}

// ReportHandler wires report export onto the bridge.
type ReportHandler struct {
	service exportService
}

// NewReportHandler creates a new handler.
func NewReportHandler(svc exportService) *ReportHandler {
	return &ReportHandler{service: svc}
}

// Mount registers the report operations.
func (h *ReportHandler) Mount(d *Dispatcher) {
	d.Register("reports:export", h.Export)
}

// Export handles reports:export.
func (h *ReportHandler) Export(ctx context.Context, payload json.RawMessage) (interface{}, error) {
	var req struct {
		TeacherID string  `json:"teacher_id"`
		Month     string  `json:"month"`
		Year      string  `json:"year"`
		SectionID *string `json:"section_id"`
		Format    string  `json:"format"`
	}
	if err := decode(payload, &req); err != nil {
		return nil, err
	}
	return h.service.Monthly(ctx, req.TeacherID, req.Month, req.Year, req.SectionID, service.ExportFormat(req.Format))
}
