package auth

import "golang.org/x/crypto/bcrypt"

const bcryptCost = 12

// HashPassword produces a salted bcrypt hash. The salt is random, so hashing
// the same password twice yields different strings.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword verifies a plaintext password against a stored bcrypt hash.
// Any internal error (malformed hash, cost mismatch) counts as a failed
// verification so the caller cannot distinguish failure modes.
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
