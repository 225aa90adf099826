package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/room-reservation/internal/auth"
	"github.com/iliyamo/room-reservation/internal/model"
	"github.com/iliyamo/room-reservation/internal/repository"
)

// MessageService handles user-to-user messages. A user sees messages
// they sent or received; administrators see everything.
type MessageService struct {
	Messages *repository.MessageRepo
	Users    *repository.UserRepo
}

func NewMessageService(messages *repository.MessageRepo, users *repository.UserRepo) *MessageService {
	return &MessageService{Messages: messages, Users: users}
}

// Send stores a message from the calling identity. The sender is always
// the caller. Receivers are addressed by username, not id; an unknown
// name is a dependency error.
func (s *MessageService) Send(ctx context.Context, id auth.Identity, receiverUsername string, m *model.Message) error {
	m.SenderID = id.UserID
	if receiverUsername == "" {
		return fmt.Errorf("%w: receiver_username is required", ErrValidation)
	}
	if m.Body == "" {
		return fmt.Errorf("%w: body is required", ErrValidation)
	}
	receiver, err := s.Users.GetByUsername(ctx, receiverUsername)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: no user named %q", ErrDependency, receiverUsername)
		}
		return fmt.Errorf("load receiver: %w", err)
	}
	m.ReceiverID = receiver.ID
	if err := s.Messages.Create(ctx, m); err != nil {
		return fmt.Errorf("store message: %w", err)
	}
	return nil
}

// ListForCaller returns every message for administrators and the
// caller's sent-or-received messages otherwise.
func (s *MessageService) ListForCaller(ctx context.Context, id auth.Identity) ([]model.Message, error) {
	if id.IsAdmin() {
		return s.Messages.ListAll(ctx)
	}
	return s.Messages.ListForUser(ctx, id.UserID)
}
