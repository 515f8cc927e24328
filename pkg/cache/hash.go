package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// hashKey builds a cache key of the form "prefix:<sha256 hex>". Components
// are JSON-encoded first so option structs hash deterministically.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(data)
	return prefix + ":" + hex.EncodeToString(sum[:])
}

// Hash returns the hex-encoded SHA-256 of data. Dataset, color mapping, and
// spec content hashes all go through here so every pipeline stage agrees on
// content identity.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
