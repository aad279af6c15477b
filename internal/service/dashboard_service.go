package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/attendance-bridge/internal/models"
	appErrors "github.com/noah-isme/attendance-bridge/pkg/errors"
)

// historyDays is the rolling window shown on the dashboard.
const historyDays = 30

type dashboardRepository interface {
	CountStudents(ctx context.Context, teacherID string) (int, error)
	CountSections(ctx context.Context, teacherID string) (int, error)
	DayCounts(ctx context.Context, teacherID, date string) (*models.DailyCount, error)
	History(ctx context.Context, teacherID, fromDate, toDate string) ([]models.DailyCount, error)
}

// DashboardService computes dashboard statistics. Nothing is cached; every
// call recomputes from the store.
type DashboardService struct {
	repo   dashboardRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(repo dashboardRepository, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{repo: repo, logger: logger, now: time.Now}
}

// Stats rolls up roster totals, today's marks and a 30-day history for the
// teacher's students.
func (s *DashboardService) Stats(ctx context.Context, teacherID string) (*models.Stats, error) {
	if teacherID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "teacher_id is required")
	}

	students, err := s.repo.CountStudents(ctx, teacherID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count students")
	}
	sections, err := s.repo.CountSections(ctx, teacherID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count sections")
	}

	today := s.now().UTC().Format(models.DateLayout)
	todayCounts, err := s.repo.DayCounts(ctx, teacherID, today)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count today's marks")
	}

	from := s.now().UTC().AddDate(0, 0, -(historyDays - 1)).Format(models.DateLayout)
	history, err := s.repo.History(ctx, teacherID, from, today)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load history")
	}
	if history == nil {
		history = []models.DailyCount{}
	}

	return &models.Stats{
		TotalStudents: students,
		TotalSections: sections,
		PresentToday:  todayCounts.Present,
		AbsentToday:   todayCounts.Absent,
		History:       history,
	}, nil
}
