package ports

import (
	"crypto/rand"
	"encoding/base32"
	"encoding/binary"
	"strings"
	"time"
)

type IDGenerator interface {
	NewID() string
}

// RandomIDGenerator generates URL-safe identifiers from UUIDv4 bytes encoded
// as base32 (RFC 4648) with no padding: 26 characters, lowercase, safe for
// file paths and JSON keys.
type RandomIDGenerator struct{}

func (RandomIDGenerator) NewID() string {
	var raw [16]byte
	if _, err := rand.Read(raw[:]); err != nil {
		// crypto/rand never fails on supported platforms; fall back to a
		// timestamp so NewID stays total.
		binary.BigEndian.PutUint64(raw[:8], uint64(time.Now().UnixNano()))
	}

	// RFC 4122 variant and version bits for a v4 UUID.
	raw[6] = (raw[6] & 0x0f) | 0x40
	raw[8] = (raw[8] & 0x3f) | 0x80

	encoded := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(raw[:])
	return strings.ToLower(encoded)
}
