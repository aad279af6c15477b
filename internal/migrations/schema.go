package migrations

// Migration is one versioned, additive schema step.
type Migration struct {
	Version    string
	Name       string
	Statements []string
}

// All returns the migration set in application order.
func All() []Migration {
	return []Migration{
		{
			Version: "001",
			Name:    "init",
			Statements: []string{
				`CREATE TABLE IF NOT EXISTS users (
					id TEXT PRIMARY KEY,
					username TEXT NOT NULL UNIQUE,
					email TEXT NOT NULL UNIQUE,
					password_hash TEXT NOT NULL,
					role TEXT NOT NULL DEFAULT 'teacher',
					last_login TIMESTAMP,
					created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
					updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE TABLE IF NOT EXISTS sections (
					id TEXT PRIMARY KEY,
					name TEXT NOT NULL,
					schedule TEXT NOT NULL,
					created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
					updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE TABLE IF NOT EXISTS students (
					id TEXT PRIMARY KEY,
					code TEXT NOT NULL UNIQUE,
					name TEXT NOT NULL,
					section_id TEXT REFERENCES sections(id) ON DELETE SET NULL,
					teacher_id TEXT NOT NULL REFERENCES users(id),
					schedule TEXT,
					created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
					updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE TABLE IF NOT EXISTS attendance (
					id TEXT PRIMARY KEY,
					student_id TEXT NOT NULL REFERENCES students(id) ON DELETE CASCADE,
					date TEXT NOT NULL,
					present INTEGER NOT NULL DEFAULT 0,
					created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
					updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
					UNIQUE (student_id, date)
				)`,
			},
		},
		{
			Version: "002",
			Name:    "indexes",
			Statements: []string{
				`CREATE INDEX IF NOT EXISTS idx_students_teacher ON students (teacher_id)`,
				`CREATE INDEX IF NOT EXISTS idx_attendance_date ON attendance (date)`,
			},
		},
	}
}

// TableNames lists the owned tables, children first. Used by the
// development reset command.
func TableNames() []string {
	return []string{"attendance", "students", "sections", "users", "schema_migrations"}
}
