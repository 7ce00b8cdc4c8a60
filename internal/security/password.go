// Package security provides password hashing helpers backed by Argon2id.
package security

import (
	"github.com/matthewhartstonge/argon2"
)

// HashPassword derives a one-way Argon2id hash from a plaintext password.
// The plaintext is never stored.
func HashPassword(password string) (string, error) {
	argon := argon2.DefaultConfig()

	encoded, err := argon.HashEncoded([]byte(password))
	if err != nil {
		return "", err
	}

	return string(encoded), nil
}

// VerifyPassword reports whether the plaintext password matches the encoded hash.
func VerifyPassword(password, encodedHash string) (bool, error) {
	return argon2.VerifyEncoded([]byte(password), []byte(encodedHash))
}
