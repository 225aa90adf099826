package model

import "time"

// User represents an application user record as stored in the `users`
// table. The password hash never leaves the repository/handler boundary;
// handlers expose a separate response type without it.
//
// Fields:
//
//	ID               - primary key identifier of the user.
//	Username         - unique login name.
//	Email            - contact email address.
//	PasswordHash     - bcrypt hashed password.
//	RoleID           - foreign key into the roles table.
//	RegistrationDate - timestamp of account creation (UTC).
type User struct {
	ID               uint64    // users.id
	Username         string    // users.username
	Email            string    // users.email
	PasswordHash     string    // users.password_hash
	RoleID           uint8     // users.role_id (references roles.id)
	RegistrationDate time.Time // users.registration_date
}

// Role represents a row in the `roles` table. It maps a small integer ID
// to a role name. The two names the policy layer understands are
// "Administrator" and "Registered User".
type Role struct {
	ID   uint8  // roles.id
	Name string // roles.name
}

// RefreshToken models an entry in the `refresh_tokens` table. Each
// refresh token belongs to a user and contains metadata for expiry
// and revocation. The plain token is not stored; only its SHA-256 hash.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
