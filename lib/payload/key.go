// Copyright 2026 The Wavemark Authors
// SPDX-License-Identifier: Apache-2.0

package payload

// Well-known metadata keys. These are fixed protocol names with typed
// builder setters and frame accessors; every other key is a custom key
// validated through ParseKey.
var (
	KeyAccountID = Key{name: "account_id"}
	KeySessionID = Key{name: "session_id"}
	KeyContentID = Key{name: "content_id"}
	KeyIssuedAt  = Key{name: "issued_at"}
	KeyExpiresAt = Key{name: "expires_at"}
)

// keyCharAllowed is the set of characters permitted in metadata keys:
// lowercase ASCII letters, digits, '.', and '_'.
var keyCharAllowed [256]bool

func init() {
	for c := byte('a'); c <= 'z'; c++ {
		keyCharAllowed[c] = true
	}
	for c := byte('0'); c <= '9'; c++ {
		keyCharAllowed[c] = true
	}
	keyCharAllowed['.'] = true
	keyCharAllowed['_'] = true
}

// Key is a validated metadata key. The zero value is invalid; construct
// keys with ParseKey or use the well-known package vars.
type Key struct {
	name string
}

// ParseKey validates a candidate key name. Keys must be non-empty, at
// most MaxKeyBytes (64) bytes, and restricted to a-z, 0-9, '.', '_'.
func ParseKey(name string) (Key, error) {
	if name == "" {
		return Key{}, &Error{Code: CodeInvalidKey, Reason: "key is empty"}
	}
	if len(name) > maxKeyNameBytes {
		return Key{}, &Error{
			Code:   CodeInvalidKey,
			Key:    name,
			Reason: "key exceeds 64 bytes",
		}
	}
	for i := 0; i < len(name); i++ {
		if !keyCharAllowed[name[i]] {
			return Key{}, &Error{
				Code:   CodeInvalidKey,
				Key:    name,
				Reason: "keys are limited to lowercase ASCII letters, digits, '.', and '_'",
			}
		}
	}
	return Key{name: name}, nil
}

// maxKeyNameBytes caps key names independently of Limits so that a Key
// value is always transportable. Limits.MaxKeyBytes may only tighten
// this bound, never exceed it.
const maxKeyNameBytes = 64

// String returns the canonical wire name of the key.
func (k Key) String() string { return k.name }

// IsZero reports whether the key is the invalid zero value.
func (k Key) IsZero() bool { return k.name == "" }

// isWellKnown reports whether the key is one of the fixed protocol
// names with a dedicated accessor.
func (k Key) isWellKnown() bool {
	switch k.name {
	case KeyAccountID.name, KeySessionID.name, KeyContentID.name,
		KeyIssuedAt.name, KeyExpiresAt.name:
		return true
	}
	return false
}
