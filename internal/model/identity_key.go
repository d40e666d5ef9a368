package model

import (
	"crypto/sha256"
	"crypto/subtle"
	"database/sql/driver"
	"encoding/hex"
	"fmt"
)

// IdentityKey is the serialized long-term public key identifying a
// conversation partner. It is immutable for the lifetime of the record that
// holds it; a different key value always produces a new record.
type IdentityKey struct {
	bytes []byte
}

func NewIdentityKey(b []byte) (IdentityKey, error) {
	if len(b) == 0 {
		return IdentityKey{}, fmt.Errorf("identity key must not be empty")
	}
	key := make([]byte, len(b))
	copy(key, b)
	return IdentityKey{bytes: key}, nil
}

func (k IdentityKey) IsZero() bool { return len(k.bytes) == 0 }

// Bytes returns a copy of the serialized key.
func (k IdentityKey) Bytes() []byte {
	b := make([]byte, len(k.bytes))
	copy(b, k.bytes)
	return b
}

// Equal compares keys in constant time.
func (k IdentityKey) Equal(other IdentityKey) bool {
	return subtle.ConstantTimeCompare(k.bytes, other.bytes) == 1
}

// Fingerprint returns a short stable digest of the key, safe for logs.
func (k IdentityKey) Fingerprint() string {
	digest := sha256.Sum256(k.bytes)
	return hex.EncodeToString(digest[:8])
}

func (k IdentityKey) String() string { return k.Fingerprint() }

func (k IdentityKey) Value() (driver.Value, error) { return k.Bytes(), nil }

func (k *IdentityKey) Scan(src any) error {
	switch src := src.(type) {
	case []byte:
		key, err := NewIdentityKey(src)
		if err != nil {
			return err
		}
		*k = key
		return nil
	default:
		return fmt.Errorf("cannot scan %T into IdentityKey", src)
	}
}
