package common

import "crypto/rand"

// GenerateRandBytes returns size cryptographically random bytes.
// It panics if the system random source fails, which is not recoverable.
func GenerateRandBytes(size int) []byte {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return b
}

// WipeByteArray overwrites the slice with zeros. Used to remove raw
// passwords from memory after hashing. A nil slice is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
