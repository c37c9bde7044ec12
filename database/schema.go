package database

import (
	"context"
	"database/sql"
	"fmt"
)

// ActiveSlotIndex is the partial unique index that keeps at most one active
// appointment per provider and hour.
const ActiveSlotIndex = "appointments_active_slot_idx"

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS files (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		path TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		provider BOOLEAN NOT NULL DEFAULT FALSE,
		avatar_id UUID REFERENCES files (id) ON DELETE SET NULL
	)`,
	`CREATE TABLE IF NOT EXISTS appointments (
		id UUID PRIMARY KEY,
		booker_id UUID NOT NULL REFERENCES users (id),
		provider_id UUID NOT NULL REFERENCES users (id),
		date TIMESTAMPTZ NOT NULL,
		canceled_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ` + ActiveSlotIndex + ` ON appointments (provider_id, date) WHERE canceled_at IS NULL`,
	`CREATE INDEX IF NOT EXISTS appointments_booker_idx ON appointments (booker_id, date) WHERE canceled_at IS NULL`,
	`CREATE TABLE IF NOT EXISTS notifications (
		id UUID PRIMARY KEY,
		recipient_id UUID NOT NULL REFERENCES users (id),
		content TEXT NOT NULL,
		read_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS notifications_recipient_idx ON notifications (recipient_id, created_at DESC)`,
}

// Migrate creates the schema inside a single transaction. Every statement is
// idempotent so it is safe to run on each start.
func Migrate(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range migrations {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
