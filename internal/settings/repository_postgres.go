package settings

import (
	"context"
	"database/sql"
)

// PostgresRepository implements Repository against the `site_settings` table.
type PostgresRepository struct {
	db *sql.DB
}

const (
	getSettingQuery    = `SELECT value FROM site_settings WHERE key = $1`
	upsertSettingQuery = `
		INSERT INTO site_settings (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, getSettingQuery, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (r *PostgresRepository) Upsert(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, upsertSettingQuery, key, value)
	return err
}
