package service

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/room-reservation/internal/auth"
	"github.com/iliyamo/room-reservation/internal/model"
	"github.com/iliyamo/room-reservation/internal/repository"
)

func newMessageService(t *testing.T) (*MessageService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewMessageService(repository.NewMessageRepo(db), repository.NewUserRepo(db)), mock
}

const userSelectByName = "SELECT id, username, email, password_hash, role_id, registration_date FROM users WHERE username=?"

func TestMessageSendResolvesReceiverByUsername(t *testing.T) {
	svc, mock := newMessageService(t)
	sender := auth.Identity{UserID: 42, Role: auth.RoleRegisteredUser}

	// Addressing is case-insensitive: the lookup runs on the normalized name.
	mock.ExpectQuery(regexp.QuoteMeta(userSelectByName)).
		WithArgs("bob").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "role_id", "registration_date"}).
			AddRow(7, "bob", "bob@example.com", "hash", uint8(2), time.Now().UTC()))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO messages")).
		WithArgs(uint64(42), uint64(7), "hi", "see you at 9").
		WillReturnResult(sqlmock.NewResult(3, 1))

	m := model.Message{Subject: "hi", Body: "see you at 9"}
	require.NoError(t, svc.Send(context.Background(), sender, "Bob", &m))

	assert.Equal(t, uint64(42), m.SenderID)
	assert.Equal(t, uint64(7), m.ReceiverID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageSendUnknownReceiver(t *testing.T) {
	svc, mock := newMessageService(t)
	sender := auth.Identity{UserID: 42, Role: auth.RoleRegisteredUser}

	mock.ExpectQuery(regexp.QuoteMeta(userSelectByName)).
		WithArgs("nobody").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	err := svc.Send(context.Background(), sender, "nobody", &model.Message{Body: "hello"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDependency))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageSendRequiresReceiverAndBody(t *testing.T) {
	svc, _ := newMessageService(t)
	sender := auth.Identity{UserID: 42, Role: auth.RoleRegisteredUser}

	err := svc.Send(context.Background(), sender, "", &model.Message{Body: "hello"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))

	err = svc.Send(context.Background(), sender, "bob", &model.Message{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
}
