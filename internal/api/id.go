package api

import (
	"crypto/sha256"
	"fmt"
	"time"
)

// NewJobID derives a UUID-shaped identifier from the job's first target and
// creation time, so identical submissions still get distinct ids.
func NewJobID(seed string, created time.Time) string {
	input := fmt.Sprintf("%s|%d", seed, created.UnixNano())
	sum := sha256.Sum256([]byte(input))
	b := make([]byte, 16)
	copy(b, sum[:])
	b[6] = (b[6] & 0x0f) | 0x40 // UUID version 4 variant bits
	b[8] = (b[8] & 0x3f) | 0x80
	return fmt.Sprintf("%x-%x-%x-%x-%x", b[0:4], b[4:6], b[6:8], b[8:10], b[10:16])
}
