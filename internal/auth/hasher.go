// Package auth implements credential registration, password hashing and the
// two-scope session lifecycle.
package auth

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hasher produces a stable fingerprint of a plaintext password. The same
// input must always yield the same digest, since verification recomputes the
// digest and compares it to the stored one.
type Hasher interface {
	Hash(plaintext string) string
}

// SHA256Hasher digests passwords to lowercase hex. Digests carry no per-user
// salt and no stretching, so stored hashes stay comparable across runs.
//
// TODO: introduce salted, stretched hashing behind a credential migration
// that rehashes on next successful login.
type SHA256Hasher struct{}

func (SHA256Hasher) Hash(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}
