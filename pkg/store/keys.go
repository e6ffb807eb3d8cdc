package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/matzehuels/srgsearch/pkg/srg"
)

// keyVersion is bumped whenever the stored document layout changes.
const keyVersion = 1

// SolutionKey returns the store key for a search: the hex SHA-256 of the
// parameters and seed rows. Seeds are part of the key because a stored
// solution must start with them.
func SolutionKey(spec srg.Spec, seeds srg.RowSet) string {
	return hashParts(keyVersion, spec, seeds.Ints())
}

// hashParts hashes the JSON encoding of parts.
func hashParts(parts ...any) string {
	data, _ := json.Marshal(parts)
	return Hash(data)
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
