package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type resultRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *resultRepo) Append(ctx context.Context, rec *ResultRecord) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}
	rec.Sequence = seqNum
	if rec.SubmittedAt.IsZero() {
		rec.SubmittedAt = time.Now().UTC()
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO quiz_results
		(id, sequence, quiz_id, username, quiz_title, score, correct, total, data, submitted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Sequence, rec.QuizID, rec.Username, rec.QuizTitle, rec.Score,
		rec.Correct, rec.Total, string(rec.Data), rec.SubmittedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("append result %s: %w", rec.ID, err)
	}
	return nil
}

func (r *resultRepo) ListByUser(ctx context.Context, username string, limit int) ([]ResultRecord, error) {
	q := `SELECT id, sequence, quiz_id, username, quiz_title, score, correct, total, data, submitted_at
		FROM quiz_results WHERE username = ? ORDER BY sequence DESC`
	args := []any{username}
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	defer rows.Close()

	var out []ResultRecord
	for rows.Next() {
		var rec ResultRecord
		var data string
		var submitted int64
		if err := rows.Scan(&rec.ID, &rec.Sequence, &rec.QuizID, &rec.Username, &rec.QuizTitle,
			&rec.Score, &rec.Correct, &rec.Total, &data, &submitted); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		rec.Data = []byte(data)
		rec.SubmittedAt = time.UnixMilli(submitted).UTC()
		out = append(out, rec)
	}
	return out, rows.Err()
}
