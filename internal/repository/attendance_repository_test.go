package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/attendance-bridge/internal/models"
)

func entryRows(now time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "student_id", "date", "present", "created_at", "updated_at", "student_code", "student_name", "section_id", "section_name"}).
		AddRow("a1", "s1", "2026-03-02", true, now, now, "2024-001", "Budi", "sec1", "Grade 7A").
		AddRow("a2", "s2", "2026-03-02", false, now, now, "2024-002", "Citra", nil, nil)
}

func TestAttendanceListByMonth(t *testing.T) {
	st, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(st)

	mock.ExpectQuery(`strftime\('%m', a\.date\)`).
		WithArgs("t1", "03", "2026").
		WillReturnRows(entryRows(time.Now()))

	entries, err := repo.ListByMonth(context.Background(), "03", "2026", nil, "t1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Budi", entries[0].StudentName)
	assert.True(t, entries[0].Present)
	assert.False(t, entries[1].Present)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceListByMonthSectionFilter(t *testing.T) {
	st, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(st)

	mock.ExpectQuery(`st\.section_id = \?`).
		WithArgs("t1", "03", "2026", "sec1").
		WillReturnRows(entryRows(time.Now()))

	section := "sec1"
	_, err := repo.ListByMonth(context.Background(), "03", "2026", &section, "t1")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkBulkCommits(t *testing.T) {
	st, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(st)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM students WHERE id = ? AND teacher_id = ? LIMIT 1")).
		WithArgs("s1", "t1").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectExec("INSERT INTO attendance").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := repo.MarkBulk(context.Background(), "t1", []models.AttendanceMark{
		{StudentID: "s1", Date: "2026-03-02", Present: true},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkBulkRollsBackOnForeignStudent(t *testing.T) {
	st, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(st)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM students WHERE id = ? AND teacher_id = ? LIMIT 1")).
		WithArgs("s1", "t1").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectExec("INSERT INTO attendance").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM students WHERE id = ? AND teacher_id = ? LIMIT 1")).
		WithArgs("s9", "t1").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	err := repo.MarkBulk(context.Background(), "t1", []models.AttendanceMark{
		{StudentID: "s1", Date: "2026-03-02", Present: true},
		{StudentID: "s9", Date: "2026-03-02", Present: false},
	})
	assert.ErrorIs(t, err, ErrNotOwned)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkBulkEmptyIsNoop(t *testing.T) {
	st, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(st)

	err := repo.MarkBulk(context.Background(), "t1", nil)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentSummaryCounts(t *testing.T) {
	st, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(st)

	rows := sqlmock.NewRows([]string{"total_days", "present_days"}).AddRow(20, 18)
	mock.ExpectQuery(`COUNT\(\*\) AS total_days`).
		WithArgs("s1").
		WillReturnRows(rows)

	summary, err := repo.StudentSummary(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, 20, summary.TotalDays)
	assert.Equal(t, 18, summary.PresentDays)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDayCountsNoMarks(t *testing.T) {
	st, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(st)

	mock.ExpectQuery(`GROUP BY a\.date`).
		WithArgs("t1", "2026-03-02").
		WillReturnError(sql.ErrNoRows)

	counts, err := repo.DayCounts(context.Background(), "t1", "2026-03-02")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-02", counts.Date)
	assert.Zero(t, counts.Present)
	assert.Zero(t, counts.Absent)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHistoryOrdering(t *testing.T) {
	st, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(st)

	rows := sqlmock.NewRows([]string{"date", "present", "absent"}).
		AddRow("2026-03-02", 18, 2).
		AddRow("2026-03-01", 17, 3)
	mock.ExpectQuery(`ORDER BY a\.date DESC`).
		WithArgs("t1", "2026-02-01", "2026-03-02").
		WillReturnRows(rows)

	history, err := repo.History(context.Background(), "t1", "2026-02-01", "2026-03-02")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "2026-03-02", history[0].Date)
	assert.Equal(t, 18, history[0].Present)
	assert.NoError(t, mock.ExpectationsWereMet())
}
