package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/attendance-bridge/internal/migrations"
	"github.com/noah-isme/attendance-bridge/internal/models"
	"github.com/noah-isme/attendance-bridge/pkg/config"
	"github.com/noah-isme/attendance-bridge/pkg/store"
)

// Admin inserts the configured administrator account when no admin exists.
// Idempotent across restarts.
func Admin(ctx context.Context, s *store.Store, cfg config.AdminConfig, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	var count int
	if err := s.DB().GetContext(ctx, &count,
		`SELECT COUNT(*) FROM users WHERE role = ?`, models.RoleAdmin); err != nil {
		return fmt.Errorf("count admins: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	now := time.Now().UTC()
	return s.InTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO users (id, username, email, password_hash, role, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			uuid.NewString(), cfg.Username, cfg.Email, string(hash), models.RoleAdmin, now, now); err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
		logger.Info("seeded administrator account", zap.String("email", cfg.Email))
		return nil
	})
}

// Reset drops every owned table and replays migrations plus the admin seed.
// Development tooling only; callers must refuse it in production.
func Reset(ctx context.Context, s *store.Store, cfg config.AdminConfig, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	err := s.InTx(ctx, func(tx *sqlx.Tx) error {
		for _, table := range migrations.TableNames() {
			if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
				return fmt.Errorf("drop %s: %w", table, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	logger.Warn("store wiped for reseeding")

	if err := migrations.NewMigrator(s, logger).Up(ctx); err != nil {
		return err
	}
	return Admin(ctx, s, cfg, logger)
}
