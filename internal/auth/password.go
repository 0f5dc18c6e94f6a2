package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/argon2"
)

const (
	saltLength = 16
	hashLength = 32

	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
)

// HashPassword derives an argon2id hash of password under a fresh random
// salt. The salt is returned alongside the hash so the caller can store both.
func HashPassword(password string) (hash, salt []byte, err error) {
	salt = make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	hash = argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, hashLength)
	return hash, salt, nil
}

// CheckPassword recomputes the hash of password under the stored salt and
// compares it to expectedHash in constant time. Malformed stored values are a
// mismatch, never a panic.
func CheckPassword(password string, salt, expectedHash []byte) bool {
	if len(salt) == 0 || len(expectedHash) == 0 {
		return false
	}

	hash := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, uint32(len(expectedHash)))
	return subtle.ConstantTimeCompare(hash, expectedHash) == 1
}
