package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

type snapshotRepo struct {
	db *sql.DB
}

func (r *snapshotRepo) Save(ctx context.Context, snap *SessionSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO session_snapshot (id, data, saved_at) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET data = excluded.data, saved_at = excluded.saved_at`,
		string(data), snap.SavedAt.UTC())
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (r *snapshotRepo) Load(ctx context.Context, maxAge time.Duration) (*SessionSnapshot, error) {
	var data string
	var savedAt time.Time
	err := r.db.QueryRowContext(ctx,
		"SELECT data, saved_at FROM session_snapshot WHERE id = 1").Scan(&data, &savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	if time.Since(savedAt) > maxAge {
		// Stale snapshots are discarded, not offered.
		if err := r.Delete(ctx); err != nil {
			return nil, err
		}
		return nil, nil
	}

	var snap SessionSnapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return &snap, nil
}

func (r *snapshotRepo) Delete(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM session_snapshot WHERE id = 1")
	return err
}
