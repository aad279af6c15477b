package handler

import (
	"context"
	"encoding/json"

	"github.com/noah-isme/attendance-bridge/internal/models"
)

type dashboardService interface {
	Stats(ctx context.Context, teacherID string) (*models.Stats, error)
}

// DashboardHandler wires the dashboard operation onto the bridge.
type DashboardHandler struct {
	service dashboardService
}

// NewDashboardHandler creates a new handler.
func NewDashboardHandler(svc dashboardService) *DashboardHandler {
	return &DashboardHandler{service: svc}
}

// Mount registers the dashboard operation.
func (h *DashboardHandler) Mount(d *Dispatcher) {
	d.Register("dashboard:getData", h.GetData)
}

// GetData handles dashboard:getData.
func (h *DashboardHandler) GetData(ctx context.Context, payload json.RawMessage) (interface{}, error) {
	var req struct {
		TeacherID string `json:"teacher_id"`
	}
	if err := decode(payload, &req); err != nil {
		return nil, err
	}
	return h.service.Stats(ctx, req.TeacherID)
}
