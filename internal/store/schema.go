package store

import (
	"context"
	"database/sql"
	"fmt"
)

// schema is applied on every Open; statements must stay idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS llm_request_events (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at    INTEGER NOT NULL,
		provider      TEXT    NOT NULL,
		model         TEXT    NOT NULL,
		purpose       TEXT    NOT NULL,
		input_tokens  INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms    INTEGER NOT NULL DEFAULT 0,
		success       INTEGER NOT NULL,
		error_message TEXT    NOT NULL DEFAULT '',
		request_body  TEXT    NOT NULL DEFAULT '',
		response_body TEXT    NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_llm_events_purpose ON llm_request_events(purpose)`,

	`CREATE TABLE IF NOT EXISTS chat_messages (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id    TEXT    NOT NULL,
		created_at INTEGER NOT NULL,
		message    TEXT    NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_chat_messages_user ON chat_messages(user_id, id)`,

	`CREATE TABLE IF NOT EXISTS learner_progress (
		learner_id TEXT    PRIMARY KEY,
		correct    INTEGER NOT NULL,
		total      INTEGER NOT NULL,
		updated_at INTEGER NOT NULL,
		CHECK (correct <= total)
	)`,
}

func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
