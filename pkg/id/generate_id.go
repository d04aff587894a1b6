package id

import (
	"crypto/rand"
	"encoding/hex"
	"io"
)

var reader io.Reader = rand.Reader

// NewID32 returns a 128-bit random id rendered as exactly 32 lowercase
// hex characters (no separators/prefixes), the public-id format used
// across the API.
func NewID32() string {
	var b [16]byte
	if _, err := io.ReadFull(reader, b[:]); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b[:])
}
