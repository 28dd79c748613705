package service

import "golang.org/x/crypto/bcrypt"

const bcryptCost = 12

// HashPassword derives a one-way hash of the plaintext. A failure here
// is a library-level fault, not bad user input.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether plaintext hashes to the stored value.
// bcrypt's comparison is constant-time over the digest.
func VerifyPassword(plaintext string, passwordHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(plaintext)) == nil
}
