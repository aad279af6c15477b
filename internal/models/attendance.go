package models

import "time"

// DateLayout is the calendar date format used across attendance rows.
const DateLayout = "2006-01-02"

// AttendanceRecord is a single per-student per-day presence mark.
// At most one row exists per (student, date) pair.
type AttendanceRecord struct {
	ID        string    `db:"id" json:"id"`
	StudentID string    `db:"student_id" json:"student_id"`
	Date      string    `db:"date" json:"date"`
	Present   bool      `db:"present" json:"present"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// AttendanceEntry extends a record with student metadata for display.
type AttendanceEntry struct {
	AttendanceRecord
	StudentCode string  `db:"student_code" json:"student_code"`
	StudentName string  `db:"student_name" json:"student_name"`
	SectionID   *string `db:"section_id" json:"section_id,omitempty"`
	SectionName *string `db:"section_name" json:"section_name,omitempty"`
}

// AttendanceMark is one element of the attendance:mark batch.
type AttendanceMark struct {
	StudentID string `json:"student_id" validate:"required"`
	Date      string `json:"date" validate:"required"`
	Present   bool   `json:"present"`
}

// StudentSummary aggregates attendance counts for one student.
type StudentSummary struct {
	TotalDays   int `db:"total_days" json:"total_days"`
	PresentDays int `db:"present_days" json:"present_days"`
}

// DailyCount is one day of the dashboard history.
type DailyCount struct {
	Date    string `db:"date" json:"date"`
	Present int    `db:"present" json:"present"`
	Absent  int    `db:"absent" json:"absent"`
}

// Stats is the dashboard payload, recomputed on every call.
type Stats struct {
	TotalStudents int          `json:"total_students"`
	TotalSections int          `json:"total_sections"`
	PresentToday  int          `json:"present_today"`
	AbsentToday   int          `json:"absent_today"`
	History       []DailyCount `json:"history"`
}
