package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type quizRepo struct {
	db *sql.DB
}

func (r *quizRepo) Save(ctx context.Context, rec *QuizRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	if rec.Status == "" {
		rec.Status = QuizStatusGenerated
	}
	_, err := r.db.ExecContext(ctx, `INSERT INTO quizzes
		(id, username, topic, title, difficulty, status, data, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Username, rec.Topic, rec.Title, rec.Difficulty, rec.Status,
		string(rec.Data), rec.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save quiz %s: %w", rec.ID, err)
	}
	return nil
}

const quizColumns = `id, username, topic, title, difficulty, status, data, created_at, completed_at`

func (r *quizRepo) Get(ctx context.Context, id string) (*QuizRecord, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+quizColumns+" FROM quizzes WHERE id = ?", id)
	rec, err := scanQuiz(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return rec, err
}

func (r *quizRepo) MarkCompleted(ctx context.Context, id string, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE quizzes SET status = ?, completed_at = ? WHERE id = ?`,
		QuizStatusCompleted, at.UnixMilli(), id)
	if err != nil {
		return fmt.Errorf("complete quiz %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("complete quiz %s: not found", id)
	}
	return nil
}

func (r *quizRepo) ListByUser(ctx context.Context, username string, limit int) ([]QuizRecord, error) {
	q := "SELECT " + quizColumns + " FROM quizzes WHERE username = ? ORDER BY created_at DESC, rowid DESC"
	args := []any{username}
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	defer rows.Close()

	var out []QuizRecord
	for rows.Next() {
		rec, err := scanQuiz(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

func scanQuiz(s rowScanner) (*QuizRecord, error) {
	var rec QuizRecord
	var data string
	var created int64
	var completed sql.NullInt64
	err := s.Scan(&rec.ID, &rec.Username, &rec.Topic, &rec.Title, &rec.Difficulty,
		&rec.Status, &data, &created, &completed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan quiz: %w", err)
	}
	rec.Data = []byte(data)
	rec.CreatedAt = time.UnixMilli(created).UTC()
	if completed.Valid {
		t := time.UnixMilli(completed.Int64).UTC()
		rec.CompletedAt = &t
	}
	return &rec, nil
}
