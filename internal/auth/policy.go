package auth

// Authorize decides whether an identity may act on a resource. It is a
// pure function with no side effects and no storage access.
//
// ownerID is the user id recorded on the resource, or nil for
// collection-level and admin-only operations that have no single owner.
// allowed is the set of roles permitted to even attempt the action.
//
// Decision rule, in order:
//  1. Deny when the identity's role is not in allowed.
//  2. Allow administrators unconditionally.
//  3. Allow when the resource owner equals the caller.
//  4. Deny otherwise.
//
// Every booking, invoice and file operation routes through this function
// before touching the repository layer.
func Authorize(id Identity, ownerID *uint64, allowed ...Role) bool {
	ok := false
	for _, r := range allowed {
		if id.Role == r {
			ok = true
			break
		}
	}
	if !ok {
		return false
	}
	if id.Role == RoleAdministrator {
		return true
	}
	return ownerID != nil && *ownerID == id.UserID
}
