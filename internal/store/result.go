package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nikhilr/prepmock/internal/exam"
)

type resultRepo struct {
	db *sql.DB
}

func (r *resultRepo) Save(ctx context.Context, result *exam.TestResult) error {
	responses, err := json.Marshal(result.Responses)
	if err != nil {
		return fmt.Errorf("marshal responses: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO results
			(mode, total, attempted, correct, wrong, score, accuracy, elapsed_seconds, responses, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		string(result.Config.Mode), result.TotalQuestions, result.Attempted,
		result.Correct, result.Wrong, result.Score, result.Accuracy,
		result.ElapsedSeconds, string(responses), result.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("save result: %w", err)
	}
	return nil
}

func (r *resultRepo) List(ctx context.Context, limit int) ([]*exam.TestResult, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT mode, total, attempted, correct, wrong, score, accuracy, elapsed_seconds, responses, created_at
		FROM results ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var out []*exam.TestResult
	for rows.Next() {
		res, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

func scanResult(rows *sql.Rows) (*exam.TestResult, error) {
	var res exam.TestResult
	var mode, responses string
	var createdAt time.Time
	if err := rows.Scan(
		&mode, &res.TotalQuestions, &res.Attempted, &res.Correct, &res.Wrong,
		&res.Score, &res.Accuracy, &res.ElapsedSeconds, &responses, &createdAt,
	); err != nil {
		return nil, fmt.Errorf("scan result: %w", err)
	}
	if err := json.Unmarshal([]byte(responses), &res.Responses); err != nil {
		return nil, fmt.Errorf("unmarshal responses: %w", err)
	}
	res.Config.Mode = exam.Mode(mode)
	res.CreatedAt = createdAt
	return &res, nil
}
