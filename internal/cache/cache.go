package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching generative backend payloads.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a cache key from a backend prompt. Identical prompts over
// the same corpus hash to the same key, so repeated queries do not
// re-spend backend quota.
func Key(prompt string) string {
	hash := sha256.Sum256([]byte(prompt))
	return "crts:v1:" + hex.EncodeToString(hash[:])
}
