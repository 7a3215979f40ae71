package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestHasher_HashPassword ensures the digest is deterministic and peppered.
func TestHasher_HashPassword(t *testing.T) {
	hasher := NewHasher("test-pepper")
	password := "mySecretPassword123"

	digest := hasher.HashPassword(password)

	assert.NotEqual(t, password, digest, "Digest should not equal the plaintext")
	assert.Len(t, digest, 64, "Digest should be a hex SHA-256")

	// Deterministic: comparison is re-hash-and-compare.
	assert.Equal(t, digest, hasher.HashPassword(password))

	// A different pepper must produce a different digest.
	otherHasher := NewHasher("other-pepper")
	assert.NotEqual(t, digest, otherHasher.HashPassword(password),
		"Digests must not be portable across deployments")

	// A different password must produce a different digest.
	assert.NotEqual(t, digest, hasher.HashPassword("notMyPassword"))
}
