package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// SumSHA256Hex returns the hex-encoded SHA-256 checksum, suitable for
// content-addressed object keys.
func SumSHA256Hex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
