package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes a registration password with bcrypt at the given
// cost (BCRYPT_COST in config). The hash is computed once at registration
// and never rewritten.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword reports whether plain matches the stored bcrypt hash.
// It never reveals why a comparison failed; login treats every failure
// the same way.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
