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

// UserRepository manages persistence for user accounts.
type UserRepository struct {
	store *store.Store
}

// NewUserRepository constructs a UserRepository.
func NewUserRepository(s *store.Store) *UserRepository {
	return &UserRepository{store: s}
}

// FindByID fetches a user by ID.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.store.DB().GetContext(ctx, &user,
		`SELECT id, username, email, password_hash, role, last_login, created_at, updated_at
		FROM users WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail fetches a user by email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.store.DB().GetContext(ctx, &user,
		`SELECT id, username, email, password_hash, role, last_login, created_at, updated_at
		FROM users WHERE email = ?`, email); err != nil {
		return nil, err
	}
	return &user, nil
}

// ExistsByEmail checks whether an email is already registered, optionally
// excluding an ID during profile updates.
func (r *UserRepository) ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error) {
	query := `SELECT 1 FROM users WHERE email = ?`
	args := []interface{}{email}
	if excludeID != "" {
		query += ` AND id <> ?`
		args = append(args, excludeID)
	}
	var one int
	if err := r.store.DB().GetContext(ctx, &one, query+` LIMIT 1`, args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check email: %w", err)
	}
	return true, nil
}

// ExistsByUsername checks whether a username is already taken, optionally
// excluding an ID during profile updates.
func (r *UserRepository) ExistsByUsername(ctx context.Context, username, excludeID string) (bool, error) {
	query := `SELECT 1 FROM users WHERE username = ?`
	args := []interface{}{username}
	if excludeID != "" {
		query += ` AND id <> ?`
		args = append(args, excludeID)
	}
	var one int
	if err := r.store.DB().GetContext(ctx, &one, query+` LIMIT 1`, args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check username: %w", err)
	}
	return true, nil
}

// Create inserts a new user record.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now
	const query = `INSERT INTO users (id, username, email, password_hash, role, created_at, updated_at)
		VALUES (:id, :username, :email, :password_hash, :role, :created_at, :updated_at)`
	if _, err := r.store.DB().NamedExecContext(ctx, query, user); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// UpdateLastLogin stamps the most recent successful login.
func (r *UserRepository) UpdateLastLogin(ctx context.Context, id string, ts time.Time) error {
	if _, err := r.store.DB().ExecContext(ctx,
		`UPDATE users SET last_login = ?, updated_at = ? WHERE id = ?`, ts, ts, id); err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	return nil
}

// UpdatePassword replaces the stored password hash.
func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string, updatedAt time.Time) error {
	if _, err := r.store.DB().ExecContext(ctx,
		`UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`, passwordHash, updatedAt, id); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// UpdateProfile updates username and email for a user.
func (r *UserRepository) UpdateProfile(ctx context.Context, id, username, email string, updatedAt time.Time) error {
	if _, err := r.store.DB().ExecContext(ctx,
		`UPDATE users SET username = ?, email = ?, updated_at = ? WHERE id = ?`, username, email, updatedAt, id); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}
