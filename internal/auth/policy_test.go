package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr(v uint64) *uint64 { return &v }

func TestAuthorize(t *testing.T) {
	admin := Identity{UserID: 1, Role: RoleAdministrator}
	alice := Identity{UserID: 42, Role: RoleRegisteredUser}

	both := []Role{RoleAdministrator, RoleRegisteredUser}

	tests := []struct {
		name    string
		id      Identity
		owner   *uint64
		allowed []Role
		want    bool
	}{
		{"admin on any owner", admin, ptr(42), both, true},
		{"admin on nil owner", admin, nil, both, true},
		{"owner on own resource", alice, ptr(42), both, true},
		{"user on foreign resource", alice, ptr(7), both, false},
		{"user on nil owner", alice, nil, both, false},
		{"user on admin-only op", alice, ptr(42), []Role{RoleAdministrator}, false},
		{"admin on admin-only op", admin, nil, []Role{RoleAdministrator}, true},
		{"empty allowed set denies everyone", admin, nil, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Authorize(tt.id, tt.owner, tt.allowed...))
		})
	}
}

func TestParseRole(t *testing.T) {
	r, ok := ParseRole("Administrator")
	assert.True(t, ok)
	assert.Equal(t, RoleAdministrator, r)

	r, ok = ParseRole("Registered User")
	assert.True(t, ok)
	assert.Equal(t, RoleRegisteredUser, r)

	_, ok = ParseRole("Unauthenticated User")
	assert.False(t, ok)
	_, ok = ParseRole("")
	assert.False(t, ok)
}
