// Copyright 2026 The Wavemark Authors
// SPDX-License-Identifier: Apache-2.0

package payload

// Limits caps the size and shape of a metadata frame so payloads stay
// within the byte budget a carrier signal can realistically hold. The
// builder enforces these limits at assembly time and the codec
// re-enforces them when decoding recovered bytes — the two sides must
// always agree.
type Limits struct {
	// MaxFields caps the number of distinct keys in a frame.
	MaxFields int

	// MaxKeyBytes caps the byte length of a key name. May only
	// tighten the package-wide 64-byte key bound.
	MaxKeyBytes int

	// MaxTextBytes caps the byte length of a text value.
	MaxTextBytes int

	// MaxBinaryBytes caps the byte length of a binary value.
	MaxBinaryBytes int
}

// DefaultLimits returns the standard payload limits: 32 fields, 64-byte
// keys, 512-byte text values, 1024-byte binary values.
func DefaultLimits() Limits {
	return Limits{
		MaxFields:      32,
		MaxKeyBytes:    64,
		MaxTextBytes:   512,
		MaxBinaryBytes: 1024,
	}
}

// normalized returns the limits with any non-positive field replaced by
// its default, so a zero Limits behaves like DefaultLimits.
func (l Limits) normalized() Limits {
	defaults := DefaultLimits()
	if l.MaxFields <= 0 {
		l.MaxFields = defaults.MaxFields
	}
	if l.MaxKeyBytes <= 0 {
		l.MaxKeyBytes = defaults.MaxKeyBytes
	}
	if l.MaxTextBytes <= 0 {
		l.MaxTextBytes = defaults.MaxTextBytes
	}
	if l.MaxBinaryBytes <= 0 {
		l.MaxBinaryBytes = defaults.MaxBinaryBytes
	}
	return l
}
