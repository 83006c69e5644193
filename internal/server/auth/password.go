package auth

import "golang.org/x/crypto/bcrypt"

// MaxPasswordLength is the longest input bcrypt accepts, in bytes.
const MaxPasswordLength = 72

// HashPassword returns the bcrypt hash of plaintext. cost outside bcrypt's
// accepted range falls back to bcrypt.DefaultCost.
func HashPassword(plaintext string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether plaintext matches hash.
func CheckPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
