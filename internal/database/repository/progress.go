package repository

import (
	"context"
	"database/sql"
	"errors"
)

// ProgressRepo stores lesson progress as key/value rows. It satisfies
// progress.Store.
type ProgressRepo struct {
	db *sql.DB
}

func NewProgressRepo(db *sql.DB) *ProgressRepo { return &ProgressRepo{db: db} }

func (r *ProgressRepo) Get(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM progress_kv WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (r *ProgressRepo) Set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO progress_kv(key, value, updated_at)
	VALUES (?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(key) DO UPDATE SET
	 value=excluded.value,
	 updated_at=CURRENT_TIMESTAMP;
	`, key, value)
	return err
}

// List returns every entry whose key starts with prefix, ordered by key.
func (r *ProgressRepo) List(ctx context.Context, prefix string) ([]ProgressEntry, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value, updated_at FROM progress_kv WHERE instr(key, ?) = 1 ORDER BY key`, prefix)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []ProgressEntry
	for rows.Next() {
		var e ProgressEntry
		if err := rows.Scan(&e.Key, &e.Value, &e.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
