package migrations

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/noah-isme/attendance-bridge/pkg/store"
)

// Migrator applies versioned schema changes additively. Tables are never
// dropped here; the destructive reset lives behind an explicit command.
type Migrator struct {
	store  *store.Store
	logger *zap.Logger
}

// NewMigrator constructs a Migrator.
func NewMigrator(s *store.Store, logger *zap.Logger) *Migrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Migrator{store: s, logger: logger}
}

// Up applies every pending migration in order.
func (m *Migrator) Up(ctx context.Context) error {
	if err := m.ensureVersionTable(ctx); err != nil {
		return err
	}

	applied, err := m.appliedVersions(ctx)
	if err != nil {
		return err
	}

	for _, mig := range All() {
		if applied[mig.Version] {
			continue
		}
		err := m.store.InTx(ctx, func(tx *sqlx.Tx) error {
			for _, stmt := range mig.Statements {
				if _, err := tx.ExecContext(ctx, stmt); err != nil {
					return fmt.Errorf("apply migration %s: %w", mig.Version, err)
				}
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO schema_migrations (version, applied_at) VALUES (?, CURRENT_TIMESTAMP)`,
				mig.Version); err != nil {
				return fmt.Errorf("record migration %s: %w", mig.Version, err)
			}
			return nil
		})
		if err != nil {
			return err
		}
		m.logger.Info("migration applied", zap.String("version", mig.Version), zap.String("name", mig.Name))
	}
	return nil
}

func (m *Migrator) ensureVersionTable(ctx context.Context) error {
	const ddl = `CREATE TABLE IF NOT EXISTS schema_migrations (
		version TEXT PRIMARY KEY,
		applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`
	if _, err := m.store.DB().ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}
	return nil
}

func (m *Migrator) appliedVersions(ctx context.Context) (map[string]bool, error) {
	var versions []string
	if err := m.store.DB().SelectContext(ctx, &versions, `SELECT version FROM schema_migrations`); err != nil {
		return nil, fmt.Errorf("read schema_migrations: %w", err)
	}
	applied := make(map[string]bool, len(versions))
	for _, v := range versions {
		applied[v] = true
	}
	return applied, nil
}
