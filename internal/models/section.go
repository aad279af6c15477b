package models

import "time"

// Section is a named, scheduled grouping of students.
type Section struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Schedule  string    `db:"schedule" json:"schedule"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// SectionData carries the mutable section fields.
type SectionData struct {
	Name     string `json:"name" validate:"required,min=1,max=128"`
	Schedule string `json:"schedule" validate:"required,min=1,max=256"`
}
