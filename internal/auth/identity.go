// Package auth defines the identity context carried through every request
// and the pure access decision applied before any booking, invoice or file
// touches storage. Token issuing and verification live elsewhere (utils and
// middleware); this package only consumes their result.
package auth

// Role is the closed set of roles the policy understands. Stored role
// names are mapped onto it at the identity boundary; anything outside the
// set never reaches a decision.
type Role string

const (
	// RoleAdministrator may read and write every resource.
	RoleAdministrator Role = "Administrator"
	// RoleRegisteredUser may read and write only resources it owns.
	RoleRegisteredUser Role = "Registered User"
)

// ParseRole maps a stored role name onto the closed Role set. The second
// return value is false for unknown names.
func ParseRole(name string) (Role, bool) {
	switch name {
	case string(RoleAdministrator):
		return RoleAdministrator, true
	case string(RoleRegisteredUser):
		return RoleRegisteredUser, true
	}
	return "", false
}

// Identity is the verified (user id, role) pair derived from a session
// token. It is passed explicitly into every service operation; no
// operation reads ambient request state.
type Identity struct {
	UserID uint64
	Role   Role
}

// IsAdmin reports whether the identity carries the administrator role.
func (i Identity) IsAdmin() bool { return i.Role == RoleAdministrator }
