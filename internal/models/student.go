package models

import "time"

// Student is a learner owned by exactly one teacher. The section link is
// optional and survives section deletion (nulled out, never cascaded).
type Student struct {
	ID        string    `db:"id" json:"id"`
	Code      string    `db:"code" json:"student_id"`
	Name      string    `db:"name" json:"name"`
	SectionID *string   `db:"section_id" json:"section_id,omitempty"`
	TeacherID string    `db:"teacher_id" json:"teacher_id"`
	Schedule  *string   `db:"schedule" json:"schedule,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// StudentDetail joins the section name and schedule for display.
type StudentDetail struct {
	Student
	SectionName     *string `db:"section_name" json:"section_name,omitempty"`
	SectionSchedule *string `db:"section_schedule" json:"section_schedule,omitempty"`
}

// StudentData carries the mutable student fields.
type StudentData struct {
	Code      string  `json:"student_id" validate:"required,min=1,max=64"`
	Name      string  `json:"name" validate:"required,min=1,max=128"`
	SectionID *string `json:"section_id"`
	Schedule  *string `json:"schedule"`
}
