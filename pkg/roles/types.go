package roles

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// ID is a fixed-width opaque role identifier.
type ID [32]byte

// Root is the sentinel role with no administrator of its own: it administers
// itself and is the default admin for any role without a configured hierarchy.
var Root ID

// Named derives a role ID from a human-readable name. The derivation is
// stable, so the same name always yields the same ID.
func Named(name string) ID {
	return sha256.Sum256([]byte(name))
}

// String returns the hex encoding of the ID.
func (id ID) String() string {
	return hex.EncodeToString(id[:])
}

// IsRoot reports whether the ID is the Root sentinel.
func (id ID) IsRoot() bool {
	return id == Root
}

// ParseID decodes a hex-encoded role ID, e.g. one produced by String.
func ParseID(s string) (ID, error) {
	var id ID
	b, err := hex.DecodeString(s)
	if err != nil {
		return ID{}, fmt.Errorf("roles: invalid role id %q: %w", s, err)
	}
	if len(b) != len(id) {
		return ID{}, fmt.Errorf("roles: invalid role id %q: want %d bytes, got %d", s, len(id), len(b))
	}
	copy(id[:], b)
	return id, nil
}
