package v1

import "golang.org/x/crypto/bcrypt"

// PasswordHasher hashes and compares passwords.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Matches(plaintext, hash string) bool
}

// BcryptHasher is the production PasswordHasher.
type BcryptHasher struct {
	// Cost is the bcrypt work factor; zero means bcrypt.DefaultCost.
	Cost int
}

// Hash returns the bcrypt hash of plaintext.
func (h BcryptHasher) Hash(plaintext string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Matches reports whether plaintext hashes to hash. Any comparison error,
// including a malformed hash, counts as a mismatch.
func (h BcryptHasher) Matches(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
