package notification

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const columns = `id, recipient_id, content, read_at, created_at`

func (a *Accessor) CreateNotification(ctx context.Context, recipientID uuid.UUID, content string) (*Notification, error) {
	if recipientID == uuid.Nil {
		return nil, errors.New("recipient ID is required")
	}
	if content == "" {
		return nil, errors.New("content is required")
	}

	n := Notification{
		ID:          uuid.New(),
		RecipientID: recipientID,
		Content:     content,
		CreatedAt:   a.now().UTC(),
	}

	query := `INSERT INTO notifications (` + columns + `) VALUES ($1, $2, $3, NULL, $4)`
	if _, err := a.db.ExecContext(ctx, query, n.ID, n.RecipientID, n.Content, n.CreatedAt); err != nil {
		return nil, fmt.Errorf("exec context: %w", err)
	}

	return &n, nil
}

// ListInbox returns the newest notifications addressed to recipientID.
func (a *Accessor) ListInbox(ctx context.Context, recipientID uuid.UUID) ([]Notification, error) {
	query := `SELECT ` + columns + ` FROM notifications WHERE recipient_id = $1 ORDER BY created_at DESC LIMIT $2`
	rows, err := a.db.QueryContext(ctx, query, recipientID, InboxSize)
	if err != nil {
		return nil, fmt.Errorf("query context: %w", err)
	}
	defer rows.Close()

	notifications := []Notification{}
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return notifications, nil
}

// MarkRead stamps read_at on a notification owned by recipientID. Already read
// notifications keep their original timestamp. Returns nil when the
// notification does not exist or belongs to someone else.
func (a *Accessor) MarkRead(ctx context.Context, id, recipientID uuid.UUID, at time.Time) (*Notification, error) {
	query := `UPDATE notifications SET read_at = COALESCE(read_at, $3) WHERE id = $1 AND recipient_id = $2 RETURNING ` + columns
	n, err := scanNotification(a.db.QueryRowContext(ctx, query, id, recipientID, at.UTC()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan: %w", err)
	}
	return &n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanNotification(s scanner) (Notification, error) {
	var (
		n      Notification
		readAt sql.NullTime
	)
	if err := s.Scan(&n.ID, &n.RecipientID, &n.Content, &readAt, &n.CreatedAt); err != nil {
		return Notification{}, err
	}
	n.CreatedAt = n.CreatedAt.UTC()
	if readAt.Valid {
		t := readAt.Time.UTC()
		n.ReadAt = &t
	}
	return n, nil
}
