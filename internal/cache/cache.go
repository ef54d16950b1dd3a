// Package cache provides the byte caches used for rewrite responses,
// fetched pages and guideline lookups.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key builds a namespaced cache key from the given parts. Parts are hashed
// together, so the key is filename-safe regardless of the input text.
func Key(kind string, parts ...string) string {
	hash := sha256.Sum256([]byte(strings.Join(parts, "\x1f")))
	return "aclarador-v1-" + kind + "-" + hex.EncodeToString(hash[:])
}
