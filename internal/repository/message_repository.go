package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/room-reservation/internal/model"
)

// MessageRepo persists user-to-user messages.
type MessageRepo struct{ DB *sql.DB }

func NewMessageRepo(db *sql.DB) *MessageRepo { return &MessageRepo{DB: db} }

const messageCols = "id, sender_id, receiver_id, subject, body, sent_at"

// Create inserts a message and populates the generated ID.
func (r *MessageRepo) Create(ctx context.Context, m *model.Message) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO messages (sender_id, receiver_id, subject, body) VALUES (?,?,?,?)",
		m.SenderID, m.ReceiverID, m.Subject, m.Body)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	return nil
}

// GetByID fetches a message by id.
func (r *MessageRepo) GetByID(ctx context.Context, id uint64) (model.Message, error) {
	var m model.Message
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+messageCols+" FROM messages WHERE id=? LIMIT 1", id).
		Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Subject, &m.Body, &m.SentAt)
	return m, err
}

// ListForUser returns every message a user sent or received, newest
// first.
func (r *MessageRepo) ListForUser(ctx context.Context, userID uint64) ([]model.Message, error) {
	return r.list(ctx,
		"SELECT "+messageCols+" FROM messages WHERE sender_id=? OR receiver_id=? ORDER BY sent_at DESC",
		userID, userID)
}

// ListAll returns every message, newest first.
func (r *MessageRepo) ListAll(ctx context.Context) ([]model.Message, error) {
	return r.list(ctx, "SELECT "+messageCols+" FROM messages ORDER BY sent_at DESC")
}

func (r *MessageRepo) list(ctx context.Context, q string, args ...any) ([]model.Message, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	msgs := make([]model.Message, 0)
	for rows.Next() {
		var m model.Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Subject, &m.Body, &m.SentAt); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}
