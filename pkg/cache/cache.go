// Package cache provides byte-oriented caching with pluggable backends.
//
// The airfoil database client stores downloaded coordinate files and
// directory listings through the [Cache] interface. [FileCache] persists
// entries on disk for CLI usage; [NullCache] disables caching entirely,
// which is what the --no-cache flag wires in.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache stores opaque byte values under string keys with an optional TTL.
type Cache interface {
	// Get retrieves a value. The second return is false on a miss; expired
	// entries count as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. ttl <= 0 means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Key builds a namespaced cache key from a prefix and hashed parts, so
// arbitrary strings (URLs, profile names) produce safe, collision-free
// keys. Parts are length-delimited before hashing, so ("ab","c") and
// ("a","bc") yield different keys.
func Key(prefix string, parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte{byte(len(p)), byte(len(p) >> 8)})
		h.Write([]byte(p))
	}
	return prefix + ":" + hex.EncodeToString(h.Sum(nil))
}

// hashString maps an arbitrary key to a fixed-length hex form safe to use
// as a filename.
func hashString(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
