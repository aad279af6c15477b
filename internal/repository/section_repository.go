package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/noah-isme/attendance-bridge/internal/models"
	"github.com/noah-isme/attendance-bridge/pkg/store"
)

// SectionRepository manages persistence for sections.
type SectionRepository struct {
	store *store.Store
}

// NewSectionRepository constructs a SectionRepository.
func NewSectionRepository(s *store.Store) *SectionRepository {
	return &SectionRepository{store: s}
}

// List returns every section ordered by name.
func (r *SectionRepository) List(ctx context.Context) ([]models.Section, error) {
	var sections []models.Section
	if err := r.store.DB().SelectContext(ctx, &sections,
		`SELECT id, name, schedule, created_at, updated_at FROM sections ORDER BY name`); err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
	}
	return sections, nil
}

// ListForTeacher returns the sections that the teacher's students belong to.
func (r *SectionRepository) ListForTeacher(ctx context.Context, teacherID string) ([]models.Section, error) {
	var sections []models.Section
	if err := r.store.DB().SelectContext(ctx, &sections,
		`SELECT DISTINCT sec.id, sec.name, sec.schedule, sec.created_at, sec.updated_at
		FROM sections sec
		JOIN students st ON st.section_id = sec.id
		WHERE st.teacher_id = ?
		ORDER BY sec.name`, teacherID); err != nil {
		return nil, fmt.Errorf("list sections for teacher: %w", err)
	}
	return sections, nil
}

// FindByID fetches a section by ID.
func (r *SectionRepository) FindByID(ctx context.Context, id string) (*models.Section, error) {
	var section models.Section
	if err := r.store.DB().GetContext(ctx, &section,
		`SELECT id, name, schedule, created_at, updated_at FROM sections WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return &section, nil
}

// Create inserts a new section.
func (r *SectionRepository) Create(ctx context.Context, section *models.Section) error {
	if section.ID == "" {
		section.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if section.CreatedAt.IsZero() {
		section.CreatedAt = now
	}
	section.UpdatedAt = now
	const query = `INSERT INTO sections (id, name, schedule, created_at, updated_at)
		VALUES (:id, :name, :schedule, :created_at, :updated_at)`
	if _, err := r.store.DB().NamedExecContext(ctx, query, section); err != nil {
		return fmt.Errorf("create section: %w", err)
	}
	return nil
}

// Update modifies an existing section.
func (r *SectionRepository) Update(ctx context.Context, section *models.Section) error {
	section.UpdatedAt = time.Now().UTC()
	const query = `UPDATE sections SET name = :name, schedule = :schedule, updated_at = :updated_at WHERE id = :id`
	res, err := r.store.DB().NamedExecContext(ctx, query, section)
	if err != nil {
		return fmt.Errorf("update section: %w", err)
	}
	return requireRowAffected(res)
}

// Delete removes a section. Referencing students keep their rows with the
// section link nulled out by the schema.
func (r *SectionRepository) Delete(ctx context.Context, id string) error {
	res, err := r.store.DB().ExecContext(ctx, `DELETE FROM sections WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete section: %w", err)
	}
	return requireRowAffected(res)
}
