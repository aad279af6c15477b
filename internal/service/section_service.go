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

type sectionRepository interface {
	List(ctx context.Context) ([]models.Section, error)
	ListForTeacher(ctx context.Context, teacherID string) ([]models.Section, error)
	FindByID(ctx context.Context, id string) (*models.Section, error)
	Create(ctx context.Context, section *models.Section) error
	Update(ctx context.Context, section *models.Section) error
	Delete(ctx context.Context, id string) error
}

// SectionService provides section CRUD. Writes are admin only.
type SectionService struct {
	repo      sectionRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSectionService constructs a SectionService.
func NewSectionService(repo sectionRepository, validate *validator.Validate, logger *zap.Logger) *SectionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &SectionService{repo: repo, validator: validate, logger: logger}
}

// List returns the sections visible to the caller: admins see everything,
// teachers see the sections their students belong to.
func (s *SectionService) List(ctx context.Context, teacherID string, role models.UserRole) ([]models.Section, error) {
	var (
		sections []models.Section
		err      error
	)
	if role == models.RoleAdmin {
		sections, err = s.repo.List(ctx)
	} else {
		sections, err = s.repo.ListForTeacher(ctx, teacherID)
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list sections")
	}
	if sections == nil {
		sections = []models.Section{}
	}
	return sections, nil
}

// Add creates a section.
func (s *SectionService) Add(ctx context.Context, role models.UserRole, data models.SectionData) (*models.Section, error) {
	if err := requireAdmin(role); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(data); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid section payload")
	}

	section := &models.Section{Name: data.Name, Schedule: data.Schedule}
	if err := s.repo.Create(ctx, section); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create section")
	}
	return section, nil
}

// Update modifies a section.
func (s *SectionService) Update(ctx context.Context, id string, role models.UserRole, data models.SectionData) (*models.Section, error) {
	if err := requireAdmin(role); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(data); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid section payload")
	}

	section, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "section not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load section")
	}

	section.Name = data.Name
	section.Schedule = data.Schedule
	if err := s.repo.Update(ctx, section); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "section not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update section")
	}
	return section, nil
}

// Delete removes a section. Students referencing it keep their rows; the
// schema nulls out the link.
func (s *SectionService) Delete(ctx context.Context, id string, role models.UserRole) error {
	if err := requireAdmin(role); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "section not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete section")
	}
	return nil
}
