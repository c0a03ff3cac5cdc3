package migration

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// RunMigrations executes all necessary database migrations on startup
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	log := logrus.WithField("component", "migration")
	log.Info("Starting database migrations")

	for _, m := range migrations {
		if err := m.Up(ctx, pool); err != nil {
			log.WithError(err).WithField("name", m.Name).Error("Migration failed")
			return errors.Wrapf(err, "migration %s", m.Name)
		}
		log.WithField("name", m.Name).Info("Migration completed")
	}

	log.Info("All migrations completed successfully")
	return nil
}

// Migration represents a database migration
type Migration struct {
	Name string
	Up   func(ctx context.Context, pool *pgxpool.Pool) error
}

var migrations = []Migration{
	{Name: "create_uploaded_files", Up: execStatement(createUploadedFiles)},
	{Name: "index_uploaded_files_expires_at", Up: execStatement(indexExpiresAt)},
}

const createUploadedFiles = `
	CREATE TABLE IF NOT EXISTS uploaded_files (
		id         UUID PRIMARY KEY,
		name       TEXT NOT NULL,
		content    TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		expires_at TIMESTAMPTZ NOT NULL
	);
`

const indexExpiresAt = `
	CREATE INDEX IF NOT EXISTS uploaded_files_expires_at_idx
	ON uploaded_files (expires_at);
`

func execStatement(query string) func(ctx context.Context, pool *pgxpool.Pool) error {
	return func(ctx context.Context, pool *pgxpool.Pool) error {
		_, err := pool.Exec(ctx, query)
		return err
	}
}
