package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/attendance-bridge/internal/models"
	appErrors "github.com/noah-isme/attendance-bridge/pkg/errors"
)

type mockDashboardRepo struct {
	students  int
	sections  int
	today     *models.DailyCount
	history   []models.DailyCount
	gotDate   string
	gotFrom   string
	gotTo     string
}

func (m *mockDashboardRepo) CountStudents(ctx context.Context, teacherID string) (int, error) {
	return m.students, nil
}

func (m *mockDashboardRepo) CountSections(ctx context.Context, teacherID string) (int, error) {
	return m.sections, nil
}

func (m *mockDashboardRepo) DayCounts(ctx context.Context, teacherID, date string) (*models.DailyCount, error) {
	m.gotDate = date
	return m.today, nil
}

func (m *mockDashboardRepo) History(ctx context.Context, teacherID, fromDate, toDate string) ([]models.DailyCount, error) {
	m.gotFrom = fromDate
	m.gotTo = toDate
	return m.history, nil
}

func TestDashboardStats(t *testing.T) {
	repo := &mockDashboardRepo{
		students: 25,
		sections: 3,
		today:    &models.DailyCount{Date: "2026-03-02", Present: 20, Absent: 5},
		history:  []models.DailyCount{{Date: "2026-03-02", Present: 20, Absent: 5}},
	}
	svc := NewDashboardService(repo, zap.NewNop())
	svc.now = func() time.Time {
		return time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)
	}

	stats, err := svc.Stats(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, 25, stats.TotalStudents)
	assert.Equal(t, 3, stats.TotalSections)
	assert.Equal(t, 20, stats.PresentToday)
	assert.Equal(t, 5, stats.AbsentToday)
	assert.Equal(t, "2026-03-02", repo.gotDate)
	assert.Equal(t, "2026-02-01", repo.gotFrom)
	assert.Equal(t, "2026-03-02", repo.gotTo)
}

func TestDashboardStatsEmptyHistoryIsNotNil(t *testing.T) {
	repo := &mockDashboardRepo{today: &models.DailyCount{Date: "2026-03-02"}}
	svc := NewDashboardService(repo, zap.NewNop())
	svc.now = func() time.Time {
		return time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)
	}

	stats, err := svc.Stats(context.Background(), "t1")
	require.NoError(t, err)
	assert.NotNil(t, stats.History)
	assert.Empty(t, stats.History)
}

func TestDashboardStatsRequiresTeacher(t *testing.T) {
	svc := NewDashboardService(&mockDashboardRepo{}, zap.NewNop())

	_, err := svc.Stats(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
