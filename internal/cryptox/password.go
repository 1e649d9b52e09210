// Package cryptox implements password hashing for the session core.
//
// Two hashers exist. LegacyHasher reproduces the historical scheme (a plain
// unsalted SHA-256 digest as lowercase hex) so previously stored digests
// keep verifying. Argon2Hasher is the default for new accounts: per-account
// random salt and a memory-hard KDF.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"

	"github.com/moneta-app/moneta/internal/common"
)

// PasswordHasher derives a one-way digest from a raw password and verifies
// candidates against a stored digest. Deterministic per stored encoding, no
// side effects.
type PasswordHasher interface {
	Hash(raw []byte) (string, error)
	Verify(raw []byte, encoded string) (bool, error)
}

// LegacyHasher is the historical unsalted SHA-256 scheme. Do not use for
// new credentials; kept only so existing stored digests remain valid.
type LegacyHasher struct{}

func (LegacyHasher) Hash(raw []byte) (string, error) {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}

func (h LegacyHasher) Verify(raw []byte, encoded string) (bool, error) {
	candidate, err := h.Hash(raw)
	if err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(encoded)) == 1, nil
}

// Argon2id parameters.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	argonSaltLen = 16

	argonPrefix = "argon2id"
)

// Argon2Hasher derives Argon2id digests with a fresh random salt per hash.
// Encoded form: "argon2id$<hex salt>$<hex key>".
type Argon2Hasher struct{}

func (Argon2Hasher) Hash(raw []byte) (string, error) {
	salt := common.GenerateRandBytes(argonSaltLen)
	key := argon2.IDKey(raw, salt, argonTime, argonMemory, argonThreads, argonKeyLen)
	return fmt.Sprintf("%s$%s$%s", argonPrefix,
		hex.EncodeToString(salt), hex.EncodeToString(key)), nil
}

func (Argon2Hasher) Verify(raw []byte, encoded string) (bool, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 3 || parts[0] != argonPrefix {
		return false, fmt.Errorf("malformed argon2id digest")
	}
	salt, err := hex.DecodeString(parts[1])
	if err != nil {
		return false, fmt.Errorf("malformed argon2id salt: %w", err)
	}
	key, err := hex.DecodeString(parts[2])
	if err != nil {
		return false, fmt.Errorf("malformed argon2id key: %w", err)
	}

	candidate := argon2.IDKey(raw, salt, argonTime, argonMemory, argonThreads, argonKeyLen)
	return subtle.ConstantTimeCompare(candidate, key) == 1, nil
}
