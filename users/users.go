// Package users holds the user model, the credential-store contract and the
// password hashing helpers.
package users

import (
	"golang.org/x/crypto/bcrypt"
)

// User is an account record. Contrasena is the bcrypt hash of the password,
// never the plaintext.
type User struct {
	ID     int64  `json:"id,omitempty"`
	Nombre string `json:"nombre"`
	Correo string `json:"correo"`
	// Contrasena is never serialized.
	Contrasena string `json:"-"`
}

// HashPassword hashes a plaintext password with bcrypt at the given cost.
// bcrypt is memory-hard enough for this contract and salts internally.
func HashPassword(password string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return string(bytes), err
}

// CheckPasswordHash compares a plaintext password against a stored hash.
// bcrypt's comparison is constant-time.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
