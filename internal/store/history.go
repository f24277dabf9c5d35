package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type historyRepo struct {
	db *sql.DB
}

func (r *historyRepo) SaveMessage(ctx context.Context, userID, message string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO chat_messages (user_id, created_at, message) VALUES (?, ?, ?)`,
		userID, time.Now().UTC().UnixNano(), message)
	if err != nil {
		return fmt.Errorf("save chat message: %w", err)
	}
	return nil
}

func (r *historyRepo) History(ctx context.Context, userID string) ([]HistoryEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT created_at, message FROM chat_messages WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("query chat history: %w", err)
	}
	defer rows.Close()

	entries := []HistoryEntry{}
	for rows.Next() {
		var (
			created int64
			e       HistoryEntry
		)
		if err := rows.Scan(&created, &e.Message); err != nil {
			return nil, fmt.Errorf("scan chat message: %w", err)
		}
		e.Timestamp = time.Unix(0, created).UTC()
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *historyRepo) ClearHistory(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM chat_messages WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("clear chat history: %w", err)
	}
	return nil
}
