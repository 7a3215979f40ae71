package service

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hasher produces the storable password digest. The digest is deterministic on
// purpose: login looks users up by the (email, digest) pair, so comparison is
// re-hash-and-compare, never decode. The pepper keeps digests from being
// portable across deployments.
type Hasher struct {
	pepper string
}

func NewHasher(pepper string) *Hasher {
	return &Hasher{pepper: pepper}
}

// HashPassword returns the hex SHA-256 digest of the plaintext plus pepper.
func (h *Hasher) HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password + h.pepper))
	return hex.EncodeToString(sum[:])
}
