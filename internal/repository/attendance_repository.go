package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/attendance-bridge/internal/models"
	"github.com/noah-isme/attendance-bridge/pkg/store"
)

// ErrNotOwned aborts a bulk write when a mark references a student outside
// the caller's roster.
var ErrNotOwned = errors.New("student not owned by teacher")

// AttendanceRepository handles persistence for attendance marks and the
// aggregate dashboard queries.
type AttendanceRepository struct {
	store *store.Store
}

// NewAttendanceRepository constructs the repository.
func NewAttendanceRepository(s *store.Store) *AttendanceRepository {
	return &AttendanceRepository{store: s}
}

const entrySelect = `SELECT a.id, a.student_id, a.date, a.present, a.created_at, a.updated_at,
	st.code AS student_code, st.name AS student_name, st.section_id, sec.name AS section_name
	FROM attendance a
	JOIN students st ON st.id = a.student_id
	LEFT JOIN sections sec ON sec.id = st.section_id`

// ListByMonth returns the teacher's attendance entries for a calendar month,
// optionally narrowed to one section. Ordered date descending then student
// name ascending.
func (r *AttendanceRepository) ListByMonth(ctx context.Context, month, year string, sectionID *string, teacherID string) ([]models.AttendanceEntry, error) {
	where := []string{"st.teacher_id = ?", "strftime('%m', a.date) = ?", "strftime('%Y', a.date) = ?"}
	args := []interface{}{teacherID, month, year}
	if sectionID != nil && *sectionID != "" {
		where = append(where, "st.section_id = ?")
		args = append(args, *sectionID)
	}
	query := fmt.Sprintf("%s WHERE %s ORDER BY a.date DESC, st.name ASC", entrySelect, strings.Join(where, " AND "))

	var entries []models.AttendanceEntry
	if err := r.store.DB().SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, fmt.Errorf("list attendance by month: %w", err)
	}
	return entries, nil
}

// ListByDateRange returns entries between two inclusive dates.
func (r *AttendanceRepository) ListByDateRange(ctx context.Context, startDate, endDate string, sectionID *string, teacherID string) ([]models.AttendanceEntry, error) {
	where := []string{"st.teacher_id = ?", "a.date >= ?", "a.date <= ?"}
	args := []interface{}{teacherID, startDate, endDate}
	if sectionID != nil && *sectionID != "" {
		where = append(where, "st.section_id = ?")
		args = append(args, *sectionID)
	}
	query := fmt.Sprintf("%s WHERE %s ORDER BY a.date DESC, st.name ASC", entrySelect, strings.Join(where, " AND "))

	var entries []models.AttendanceEntry
	if err := r.store.DB().SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, fmt.Errorf("list attendance by range: %w", err)
	}
	return entries, nil
}

// MarkBulk persists a batch of marks as one all-or-nothing unit. Every
// student is ownership-checked inside the transaction; the first violation
// rolls back the whole batch with ErrNotOwned.
func (r *AttendanceRepository) MarkBulk(ctx context.Context, teacherID string, marks []models.AttendanceMark) error {
	if len(marks) == 0 {
		return nil
	}
	return r.store.InTx(ctx, func(tx *sqlx.Tx) error {
		now := time.Now().UTC()
		const upsert = `INSERT INTO attendance (id, student_id, date, present, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT (student_id, date)
			DO UPDATE SET present = excluded.present, updated_at = excluded.updated_at`
		for _, mark := range marks {
			var one int
			if err := tx.GetContext(ctx, &one,
				`SELECT 1 FROM students WHERE id = ? AND teacher_id = ? LIMIT 1`,
				mark.StudentID, teacherID); err != nil {
				if err == sql.ErrNoRows {
					return fmt.Errorf("mark for student %s: %w", mark.StudentID, ErrNotOwned)
				}
				return fmt.Errorf("check mark owner: %w", err)
			}
			if _, err := tx.ExecContext(ctx, upsert,
				uuid.NewString(), mark.StudentID, mark.Date, mark.Present, now, now); err != nil {
				return fmt.Errorf("upsert attendance: %w", err)
			}
		}
		return nil
	})
}

// StudentSummary counts total and present days for one student.
func (r *AttendanceRepository) StudentSummary(ctx context.Context, studentID string) (*models.StudentSummary, error) {
	const query = `SELECT COUNT(*) AS total_days, COALESCE(SUM(present), 0) AS present_days
		FROM attendance WHERE student_id = ?`
	var summary models.StudentSummary
	if err := r.store.DB().GetContext(ctx, &summary, query, studentID); err != nil {
		return nil, fmt.Errorf("student summary: %w", err)
	}
	return &summary, nil
}

// CountStudents returns the teacher's roster size.
func (r *AttendanceRepository) CountStudents(ctx context.Context, teacherID string) (int, error) {
	var count int
	if err := r.store.DB().GetContext(ctx, &count,
		`SELECT COUNT(*) FROM students WHERE teacher_id = ?`, teacherID); err != nil {
		return 0, fmt.Errorf("count students: %w", err)
	}
	return count, nil
}

// CountSections returns how many distinct sections the teacher's students span.
func (r *AttendanceRepository) CountSections(ctx context.Context, teacherID string) (int, error) {
	var count int
	if err := r.store.DB().GetContext(ctx, &count,
		`SELECT COUNT(DISTINCT section_id) FROM students WHERE teacher_id = ? AND section_id IS NOT NULL`,
		teacherID); err != nil {
		return 0, fmt.Errorf("count sections: %w", err)
	}
	return count, nil
}

// DayCounts returns present/absent totals for the teacher's students on one date.
func (r *AttendanceRepository) DayCounts(ctx context.Context, teacherID, date string) (*models.DailyCount, error) {
	const query = `SELECT a.date, COALESCE(SUM(a.present), 0) AS present, COALESCE(SUM(1 - a.present), 0) AS absent
		FROM attendance a
		JOIN students st ON st.id = a.student_id
		WHERE st.teacher_id = ? AND a.date = ?
		GROUP BY a.date`
	var count models.DailyCount
	if err := r.store.DB().GetContext(ctx, &count, query, teacherID, date); err != nil {
		if err == sql.ErrNoRows {
			return &models.DailyCount{Date: date}, nil
		}
		return nil, fmt.Errorf("day counts: %w", err)
	}
	return &count, nil
}

// History returns per-day present/absent counts between two inclusive dates,
// newest first.
func (r *AttendanceRepository) History(ctx context.Context, teacherID, fromDate, toDate string) ([]models.DailyCount, error) {
	const query = `SELECT a.date, COALESCE(SUM(a.present), 0) AS present, COALESCE(SUM(1 - a.present), 0) AS absent
		FROM attendance a
		JOIN students st ON st.id = a.student_id
		WHERE st.teacher_id = ? AND a.date >= ? AND a.date <= ?
		GROUP BY a.date
		ORDER BY a.date DESC`
	var history []models.DailyCount
	if err := r.store.DB().SelectContext(ctx, &history, query, teacherID, fromDate, toDate); err != nil {
		return nil, fmt.Errorf("attendance history: %w", err)
	}
	return history, nil
}
