package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type progressRepo struct {
	db *sql.DB
}

func (r *progressRepo) Load(ctx context.Context, learnerID string) (ProgressRecord, bool, error) {
	var (
		rec     ProgressRecord
		correct int64
		total   int64
		updated int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT correct, total, updated_at FROM learner_progress WHERE learner_id = ?`, learnerID,
	).Scan(&correct, &total, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return ProgressRecord{}, false, nil
	}
	if err != nil {
		return ProgressRecord{}, false, fmt.Errorf("load progress: %w", err)
	}

	rec.Correct = uint64(correct)
	rec.Total = uint64(total)
	rec.UpdatedAt = time.Unix(0, updated).UTC()
	return rec, true, nil
}

func (r *progressRepo) Increment(ctx context.Context, learnerID string, isCorrect bool) (ProgressRecord, error) {
	var inc int64
	if isCorrect {
		inc = 1
	}

	var correct, total, updated int64
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO learner_progress (learner_id, correct, total, updated_at)
		VALUES (?, ?, 1, ?)
		ON CONFLICT(learner_id) DO UPDATE SET
			correct = correct + excluded.correct,
			total = total + 1,
			updated_at = excluded.updated_at
		RETURNING correct, total, updated_at`,
		learnerID, inc, time.Now().UTC().UnixNano(),
	).Scan(&correct, &total, &updated)
	if err != nil {
		return ProgressRecord{}, fmt.Errorf("increment progress: %w", err)
	}
	return ProgressRecord{
		Correct:   uint64(correct),
		Total:     uint64(total),
		UpdatedAt: time.Unix(0, updated).UTC(),
	}, nil
}

func (r *progressRepo) Delete(ctx context.Context, learnerID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM learner_progress WHERE learner_id = ?`, learnerID); err != nil {
		return fmt.Errorf("delete progress: %w", err)
	}
	return nil
}
