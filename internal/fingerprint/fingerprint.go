// Package fingerprint computes content hashes used for document
// identity and change detection.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
)

// documentIDLength is the hex-character prefix of the hash used as a
// document ID. 128 bits keeps IDs short while staying collision-safe.
const documentIDLength = 32

// Sum returns the hex-encoded SHA-256 digest of data.
// Deterministic and side-effect free; two different files practically
// never collide.
func Sum(data []byte) string {
	digest := sha256.Sum256(data)
	return hex.EncodeToString(digest[:])
}

// DocumentID derives a stable document identifier from a content hash.
func DocumentID(hash string) string {
	if len(hash) <= documentIDLength {
		return hash
	}
	return hash[:documentIDLength]
}
