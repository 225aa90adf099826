package handler

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/room-reservation/internal/config"
	"github.com/iliyamo/room-reservation/internal/repository"
)

func TestUserListResolvesRolesOnce(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	h := NewUserHandler(config.Config{}, repository.NewUserRepo(db), repository.NewRoleRepo(db))

	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, username, email, password_hash, role_id, registration_date FROM users")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "role_id", "registration_date"}).
			AddRow(1, "admin", "admin@example.com", "hash", uint8(1), now).
			AddRow(2, "alice", "alice@example.com", "hash", uint8(2), now).
			AddRow(3, "bob", "bob@example.com", "hash", uint8(2), now))
	// One roles query for the whole listing, regardless of row count.
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name FROM roles ORDER BY id")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(uint8(1), "Administrator").
			AddRow(uint8(2), "Registered User"))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/admin/users", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.List(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"Registered User"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}
