// Package security wraps password hashing so that every code path that
// changes a password goes through the same argon2 configuration.
package security

import "github.com/matthewhartstonge/argon2"

// HashPassword derives a salted argon2id hash in encoded form. The plaintext
// is never stored.
func HashPassword(password string) (string, error) {
	cfg := argon2.DefaultConfig()

	encoded, err := cfg.HashEncoded([]byte(password))
	if err != nil {
		return "", err
	}

	return string(encoded), nil
}

// VerifyPassword reports whether the plaintext matches the encoded hash.
// The underlying comparison is constant-time.
func VerifyPassword(password, encodedHash string) (bool, error) {
	return argon2.VerifyEncoded([]byte(password), []byte(encodedHash))
}
