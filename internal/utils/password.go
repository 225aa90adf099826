package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes a plaintext password for storage at registration.
// A cost outside bcrypt's valid range falls back to the library default
// so a misconfigured BCRYPT_COST cannot weaken hashes or break signup.
func HashPassword(plain string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword reports whether plain matches the stored hash. Login
// treats a false result exactly like an unknown username so the two
// cases are indistinguishable to a caller probing for accounts.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
