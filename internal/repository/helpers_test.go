package repository

import (
	"time"

	"github.com/iliyamo/room-reservation/internal/model"
)

func testUser(username, email string) model.User {
	return model.User{
		Username:         username,
		Email:            email,
		PasswordHash:     "hash",
		RoleID:           2,
		RegistrationDate: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	}
}
