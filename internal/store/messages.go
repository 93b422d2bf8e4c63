// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/intravvel/console-go/internal/model"
)

const listMessages = `
SELECT id, name, email, subject, message, status, created_at
FROM messages ORDER BY created_at DESC
`

// ListMessages returns all contact messages, newest first.
func (q *Queries) ListMessages(ctx context.Context) ([]model.Message, error) {
	rows, err := q.db.QueryContext(ctx, listMessages)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []model.Message
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

const getMessage = `
SELECT id, name, email, subject, message, status, created_at
FROM messages WHERE id = ?
`

// GetMessage fetches a single contact message by ID.
func (q *Queries) GetMessage(ctx context.Context, id string) (model.Message, error) {
	return scanMessage(q.db.QueryRowContext(ctx, getMessage, id))
}

const createMessage = `
INSERT INTO messages (id, name, email, subject, message, status, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
RETURNING id, name, email, subject, message, status, created_at
`

// CreateMessageParams holds the input for CreateMessage.
type CreateMessageParams struct {
	ID        string
	Name      string
	Email     string
	Subject   string
	Body      string
	Status    string
	CreatedAt time.Time
}

// CreateMessage stores an incoming contact form submission.
func (q *Queries) CreateMessage(ctx context.Context, arg CreateMessageParams) (model.Message, error) {
	row := q.db.QueryRowContext(ctx, createMessage,
		arg.ID, arg.Name, arg.Email, arg.Subject, arg.Body, arg.Status, arg.CreatedAt)
	return scanMessage(row)
}

const updateMessageStatus = `
UPDATE messages SET status = ? WHERE id = ?
RETURNING id, name, email, subject, message, status, created_at
`

// UpdateMessageStatus sets the triage status of a message.
func (q *Queries) UpdateMessageStatus(ctx context.Context, id, status string) (model.Message, error) {
	return scanMessage(q.db.QueryRowContext(ctx, updateMessageStatus, status, id))
}

const deleteMessage = `DELETE FROM messages WHERE id = ?`

// DeleteMessage removes a contact message. Returns the number of rows deleted.
func (q *Queries) DeleteMessage(ctx context.Context, id string) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteMessage, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const countMessagesByStatus = `SELECT COUNT(*) FROM messages WHERE status = ?`

// CountMessagesByStatus returns the number of messages with the given status.
func (q *Queries) CountMessagesByStatus(ctx context.Context, status string) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countMessagesByStatus, status).Scan(&n)
	return n, err
}

func scanMessage(row rowScanner) (model.Message, error) {
	var m model.Message
	err := row.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Body, &m.Status, &m.CreatedAt)
	return m, err
}
