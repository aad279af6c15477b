package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/attendance-bridge/internal/models"
	appErrors "github.com/noah-isme/attendance-bridge/pkg/errors"
)

type studentRepository interface {
	ListByTeacher(ctx context.Context, teacherID string) ([]models.StudentDetail, error)
	FindByID(ctx context.Context, id string) (*models.Student, error)
	OwnedBy(ctx context.Context, id, teacherID string) (bool, error)
	ExistsByCode(ctx context.Context, code, excludeID string) (bool, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id, teacherID string) error
}

// StudentService provides roster operations scoped to the owning teacher.
type StudentService struct {
	repo      studentRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs a StudentService.
func NewStudentService(repo studentRepository, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &StudentService{repo: repo, validator: validate, logger: logger}
}

// List returns the teacher's students with section details joined.
func (s *StudentService) List(ctx context.Context, teacherID string) ([]models.StudentDetail, error) {
	if teacherID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "teacher_id is required")
	}
	students, err := s.repo.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}
	if students == nil {
		students = []models.StudentDetail{}
	}
	return students, nil
}

// Add registers a student under the given teacher.
func (s *StudentService) Add(ctx context.Context, teacherID string, data models.StudentData) (*models.Student, error) {
	if teacherID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "teacher_id is required")
	}
	if err := s.validator.Struct(data); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}

	taken, err := s.repo.ExistsByCode(ctx, data.Code, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check student code")
	}
	if taken {
		return nil, appErrors.Clone(appErrors.ErrValidation, "this student ID is already registered")
	}

	student := &models.Student{
		Code:      data.Code,
		Name:      data.Name,
		SectionID: data.SectionID,
		TeacherID: teacherID,
		Schedule:  data.Schedule,
	}
	if err := s.repo.Create(ctx, student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create student")
	}
	return student, nil
}

// Update modifies a student after verifying the caller owns it.
func (s *StudentService) Update(ctx context.Context, id, teacherID string, data models.StudentData) error {
	if err := requireOwnership(ctx, s.repo, id, teacherID); err != nil {
		return err
	}
	if err := s.validator.Struct(data); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}

	taken, err := s.repo.ExistsByCode(ctx, data.Code, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check student code")
	}
	if taken {
		return appErrors.Clone(appErrors.ErrValidation, "this student ID is already registered")
	}

	student := &models.Student{
		ID:        id,
		Code:      data.Code,
		Name:      data.Name,
		SectionID: data.SectionID,
		TeacherID: teacherID,
		Schedule:  data.Schedule,
	}
	if err := s.repo.Update(ctx, student); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrUnauthorized, "student not found or access denied")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update student")
	}
	return nil
}

// Delete removes a student after verifying the caller owns it.
func (s *StudentService) Delete(ctx context.Context, id, teacherID string) error {
	if err := requireOwnership(ctx, s.repo, id, teacherID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id, teacherID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrUnauthorized, "student not found or access denied")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete student")
	}
	return nil
}
