package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/attendance-bridge/internal/models"
	"github.com/noah-isme/attendance-bridge/internal/repository"
	appErrors "github.com/noah-isme/attendance-bridge/pkg/errors"
)

type attendanceRepository interface {
	ListByMonth(ctx context.Context, month, year string, sectionID *string, teacherID string) ([]models.AttendanceEntry, error)
	ListByDateRange(ctx context.Context, startDate, endDate string, sectionID *string, teacherID string) ([]models.AttendanceEntry, error)
	MarkBulk(ctx context.Context, teacherID string, marks []models.AttendanceMark) error
	StudentSummary(ctx context.Context, studentID string) (*models.StudentSummary, error)
}

// AttendanceService owns the daily presence ledger.
type AttendanceService struct {
	repo      attendanceRepository
	students  ownershipChecker
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAttendanceService constructs an AttendanceService.
func NewAttendanceService(repo attendanceRepository, students ownershipChecker, validate *validator.Validate, logger *zap.Logger) *AttendanceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AttendanceService{repo: repo, students: students, validator: validate, logger: logger}
}

// Get returns a month of the teacher's attendance entries.
func (s *AttendanceService) Get(ctx context.Context, month, year string, sectionID *string, teacherID string) ([]models.AttendanceEntry, error) {
	if teacherID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "teacher_id is required")
	}
	normalised, err := normaliseMonth(month, year)
	if err != nil {
		return nil, err
	}

	entries, err := s.repo.ListByMonth(ctx, normalised, year, sectionID, teacherID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list attendance")
	}
	if entries == nil {
		entries = []models.AttendanceEntry{}
	}
	return entries, nil
}

// GetByDateRange returns entries between two inclusive dates.
func (s *AttendanceService) GetByDateRange(ctx context.Context, startDate, endDate string, sectionID *string, teacherID string) ([]models.AttendanceEntry, error) {
	if teacherID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "teacher_id is required")
	}
	for _, date := range []string{startDate, endDate} {
		if _, err := time.Parse(models.DateLayout, date); err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", date))
		}
	}
	if startDate > endDate {
		return nil, appErrors.Clone(appErrors.ErrValidation, "start_date must not be after end_date")
	}

	entries, err := s.repo.ListByDateRange(ctx, startDate, endDate, sectionID, teacherID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list attendance")
	}
	if entries == nil {
		entries = []models.AttendanceEntry{}
	}
	return entries, nil
}

// Mark writes a batch of presence marks atomically. Either every mark lands
// or none do; a mark for a student outside the caller's roster fails the
// whole batch.
func (s *AttendanceService) Mark(ctx context.Context, teacherID string, marks []models.AttendanceMark) error {
	if teacherID == "" {
		return appErrors.Clone(appErrors.ErrValidation, "teacher_id is required")
	}
	if len(marks) == 0 {
		return appErrors.Clone(appErrors.ErrValidation, "attendance_data must not be empty")
	}
	for _, mark := range marks {
		if err := s.validator.Struct(mark); err != nil {
			return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid attendance mark")
		}
		if _, err := time.Parse(models.DateLayout, mark.Date); err != nil {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", mark.Date))
		}
	}

	if err := s.repo.MarkBulk(ctx, teacherID, marks); err != nil {
		if errors.Is(err, repository.ErrNotOwned) {
			return appErrors.Clone(appErrors.ErrUnauthorized, "student not found or access denied")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to mark attendance")
	}
	return nil
}

// Summary returns total and present day counts for one owned student.
func (s *AttendanceService) Summary(ctx context.Context, studentID, teacherID string) (*models.StudentSummary, error) {
	if err := requireOwnership(ctx, s.students, studentID, teacherID); err != nil {
		return nil, err
	}
	summary, err := s.repo.StudentSummary(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to summarise attendance")
	}
	return summary, nil
}

// normaliseMonth validates and zero-pads the month, and sanity-checks the year.
func normaliseMonth(month, year string) (string, error) {
	if len(month) == 1 {
		month = "0" + month
	}
	if _, err := time.Parse("01", month); err != nil {
		return "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid month %q", month))
	}
	if _, err := time.Parse("2006", year); err != nil {
		return "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid year %q", year))
	}
	return month, nil
}
