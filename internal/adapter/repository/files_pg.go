package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/pkg/errors"

	"resumetuner/internal/domain"
)

// PostgresFileStore keeps uploads in the uploaded_files table.
type PostgresFileStore struct {
	pool *pgxpool.Pool
	ttl  time.Duration
}

func NewPostgresFileStore(pool *pgxpool.Pool, ttl time.Duration) *PostgresFileStore {
	return &PostgresFileStore{pool: pool, ttl: ttl}
}

func (r *PostgresFileStore) Put(ctx context.Context, name, content string) (domain.StoredFile, error) {
	now := time.Now().UTC()
	f := domain.StoredFile{
		ID:        uuid.New(),
		Name:      name,
		Content:   content,
		CreatedAt: now,
		ExpiresAt: now.Add(r.ttl),
	}
	_, err := r.pool.Exec(ctx, `INSERT INTO uploaded_files (id, name, content, created_at, expires_at)
		VALUES ($1,$2,$3,$4,$5)`,
		f.ID, f.Name, f.Content, f.CreatedAt, f.ExpiresAt)
	if err != nil {
		return domain.StoredFile{}, errors.Wrap(err, "failed to insert uploaded file")
	}
	return f, nil
}

func (r *PostgresFileStore) Get(ctx context.Context, id uuid.UUID) (domain.StoredFile, error) {
	f := domain.StoredFile{ID: id}
	err := r.pool.QueryRow(ctx, `SELECT name, content, created_at, expires_at
		FROM uploaded_files WHERE id = $1 AND expires_at > now()`, id).
		Scan(&f.Name, &f.Content, &f.CreatedAt, &f.ExpiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.StoredFile{}, domain.Fail(domain.ErrNotFound, "file not found", nil)
	}
	if err != nil {
		return domain.StoredFile{}, errors.Wrap(err, "failed to load uploaded file")
	}
	return f, nil
}

// Sweep deletes expired rows.
func (r *PostgresFileStore) Sweep(ctx context.Context) (int, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM uploaded_files WHERE expires_at <= now()`)
	if err != nil {
		return 0, errors.Wrap(err, "failed to sweep uploaded files")
	}
	return int(tag.RowsAffected()), nil
}
