package core

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Equals checks if two hashes are equal
func (h Hash) Equals(other Hash) bool {
	return h == other
}

// RequestKey is the content-addressed identity of an analysis request.
// Identical input groups always map to the same RequestKey.
type RequestKey Hash

// String returns the string representation
func (k RequestKey) String() string { return Hash(k).String() }

// ComputeRequestKey derives a deterministic key from pre-serialized parts.
// Parts must already be in a canonical order; the key is order-sensitive
// because swapping the groups is a different analysis.
func ComputeRequestKey(parts ...string) RequestKey {
	var data strings.Builder
	for _, p := range parts {
		data.WriteString(p)
		data.WriteByte(0)
	}
	return RequestKey(NewHash([]byte(data.String())))
}
