package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/noah-isme/attendance-bridge/internal/models"
	"github.com/noah-isme/attendance-bridge/pkg/store"
)

// StudentRepository manages persistence for student records.
type StudentRepository struct {
	store *store.Store
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(s *store.Store) *StudentRepository {
	return &StudentRepository{store: s}
}

// ListByTeacher returns the teacher's students with section metadata joined.
func (r *StudentRepository) ListByTeacher(ctx context.Context, teacherID string) ([]models.StudentDetail, error) {
	const query = `SELECT st.id, st.code, st.name, st.section_id, st.teacher_id, st.schedule, st.created_at, st.updated_at,
		sec.name AS section_name, sec.schedule AS section_schedule
		FROM students st
		LEFT JOIN sections sec ON sec.id = st.section_id
		WHERE st.teacher_id = ?
		ORDER BY st.created_at DESC`
	var students []models.StudentDetail
	if err := r.store.DB().SelectContext(ctx, &students, query, teacherID); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// FindByID fetches a student by ID.
func (r *StudentRepository) FindByID(ctx context.Context, id string) (*models.Student, error) {
	var student models.Student
	if err := r.store.DB().GetContext(ctx, &student,
		`SELECT id, code, name, section_id, teacher_id, schedule, created_at, updated_at
		FROM students WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return &student, nil
}

// OwnedBy reports whether the student exists and belongs to the teacher.
func (r *StudentRepository) OwnedBy(ctx context.Context, id, teacherID string) (bool, error) {
	var one int
	if err := r.store.DB().GetContext(ctx, &one,
		`SELECT 1 FROM students WHERE id = ? AND teacher_id = ? LIMIT 1`, id, teacherID); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check student owner: %w", err)
	}
	return true, nil
}

// ExistsByCode checks if a student with the given code exists, optionally
// excluding an ID during updates.
func (r *StudentRepository) ExistsByCode(ctx context.Context, code, excludeID string) (bool, error) {
	query := `SELECT 1 FROM students WHERE code = ?`
	args := []interface{}{code}
	if excludeID != "" {
		query += ` AND id <> ?`
		args = append(args, excludeID)
	}
	var one int
	if err := r.store.DB().GetContext(ctx, &one, query+` LIMIT 1`, args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check student code: %w", err)
	}
	return true, nil
}

// Create inserts a new student record.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	if student.ID == "" {
		student.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if student.CreatedAt.IsZero() {
		student.CreatedAt = now
	}
	student.UpdatedAt = now
	const query = `INSERT INTO students (id, code, name, section_id, teacher_id, schedule, created_at, updated_at)
		VALUES (:id, :code, :name, :section_id, :teacher_id, :schedule, :created_at, :updated_at)`
	if _, err := r.store.DB().NamedExecContext(ctx, query, student); err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

// Update modifies a student, scoped to the owning teacher.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	student.UpdatedAt = time.Now().UTC()
	const query = `UPDATE students SET code = :code, name = :name, section_id = :section_id, schedule = :schedule, updated_at = :updated_at
		WHERE id = :id AND teacher_id = :teacher_id`
	res, err := r.store.DB().NamedExecContext(ctx, query, student)
	if err != nil {
		return fmt.Errorf("update student: %w", err)
	}
	return requireRowAffected(res)
}

// Delete removes a student, scoped to the owning teacher.
func (r *StudentRepository) Delete(ctx context.Context, id, teacherID string) error {
	res, err := r.store.DB().ExecContext(ctx,
		`DELETE FROM students WHERE id = ? AND teacher_id = ?`, id, teacherID)
	if err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	return requireRowAffected(res)
}

// requireRowAffected converts a zero-row write into sql.ErrNoRows so the
// service layer can surface NotFound instead of silently no-opping.
func requireRowAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
