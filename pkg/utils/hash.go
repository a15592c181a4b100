package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HashString returns a short, log-safe SHA-256 fingerprint of the input.
// Addresses are lowercased first so the same person always hashes the same way.
func HashString(input string) string {
	h := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(input))))
	return hex.EncodeToString(h[:])[:16]
}
