package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type pathRepo struct {
	db *sql.DB
}

func (r *pathRepo) Save(ctx context.Context, rec *PathRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO learning_paths (id, username, name, data, created_at) VALUES (?, ?, ?, ?, ?)`,
		rec.ID, rec.Username, rec.Name, string(rec.Data), rec.CreatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("save learning path %s: %w", rec.ID, err)
	}
	return nil
}

func (r *pathRepo) Get(ctx context.Context, id string) (*PathRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, username, name, data, created_at FROM learning_paths WHERE id = ?`, id)
	rec, err := scanPath(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return rec, err
}

func (r *pathRepo) ListByUser(ctx context.Context, username string, limit int) ([]PathRecord, error) {
	q := `SELECT id, username, name, data, created_at FROM learning_paths
		WHERE username = ? ORDER BY created_at DESC, rowid DESC`
	args := []any{username}
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list learning paths: %w", err)
	}
	defer rows.Close()

	var out []PathRecord
	for rows.Next() {
		rec, err := scanPath(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

func scanPath(s rowScanner) (*PathRecord, error) {
	var rec PathRecord
	var data string
	var created int64
	if err := s.Scan(&rec.ID, &rec.Username, &rec.Name, &data, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan learning path: %w", err)
	}
	rec.Data = []byte(data)
	rec.CreatedAt = time.UnixMilli(created).UTC()
	return &rec, nil
}
