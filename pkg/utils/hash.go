package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HashString returns a hex sha256 digest of input.
func HashString(input string) string {
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])
}

// CacheKey joins a namespace with a digest of the case-folded, trimmed parts,
// so "Kowdiar " and "kowdiar" share an entry.
func CacheKey(namespace string, parts ...string) string {
	normalized := make([]string, len(parts))
	for i, p := range parts {
		normalized[i] = strings.ToLower(strings.TrimSpace(p))
	}
	return namespace + ":" + HashString(strings.Join(normalized, "\x1f"))
}
