package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nikhilr/prepmock/internal/exam"
)

type questionCacheRepo struct {
	db *sql.DB
}

func (r *questionCacheRepo) Put(ctx context.Context, questions []exam.Question) error {
	if len(questions) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO question_cache
			(id, prompt, options, answer_index, subject, topic, difficulty, explanation, source_tag, hint)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET hint = excluded.hint`)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for _, q := range questions {
		opts, err := json.Marshal(q.Options)
		if err != nil {
			return fmt.Errorf("marshal options: %w", err)
		}
		if _, err := stmt.ExecContext(ctx,
			q.ID, q.Prompt, string(opts), q.AnswerIndex,
			string(q.Subject), q.Topic, string(q.Difficulty),
			q.Explanation, q.SourceTag, q.Hint,
		); err != nil {
			return fmt.Errorf("upsert question %s: %w", q.ID, err)
		}
	}

	return tx.Commit()
}

func (r *questionCacheRepo) GetUpTo(ctx context.Context, limit int, subjects []exam.Subject, exclude map[string]bool) ([]exam.Question, error) {
	if limit <= 0 {
		return nil, nil
	}

	query := `SELECT id, prompt, options, answer_index, subject, topic, difficulty, explanation, source_tag, hint
		FROM question_cache`
	var args []any
	if len(subjects) > 0 {
		placeholders := strings.TrimRight(strings.Repeat("?,", len(subjects)), ",")
		query += " WHERE subject IN (" + placeholders + ")"
		for _, s := range subjects {
			args = append(args, string(s))
		}
	}
	// Over-fetch so exclusions don't starve the result.
	query += " LIMIT ?"
	args = append(args, limit+len(exclude))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query cache: %w", err)
	}
	defer rows.Close()

	var out []exam.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		if exclude[q.ID] {
			continue
		}
		out = append(out, q)
		if len(out) == limit {
			break
		}
	}
	return out, rows.Err()
}

func (r *questionCacheRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM question_cache").Scan(&n)
	return n, err
}

func (r *questionCacheRepo) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM question_cache")
	return err
}

func scanQuestion(rows *sql.Rows) (exam.Question, error) {
	var q exam.Question
	var options, subject, difficulty string
	if err := rows.Scan(
		&q.ID, &q.Prompt, &options, &q.AnswerIndex,
		&subject, &q.Topic, &difficulty,
		&q.Explanation, &q.SourceTag, &q.Hint,
	); err != nil {
		return q, fmt.Errorf("scan question: %w", err)
	}
	if err := json.Unmarshal([]byte(options), &q.Options); err != nil {
		return q, fmt.Errorf("unmarshal options for %s: %w", q.ID, err)
	}
	q.Subject = exam.Subject(subject)
	q.Difficulty = exam.Difficulty(difficulty)
	return q, nil
}
