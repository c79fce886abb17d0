// Copyright 2026 The Wavemark Authors
// SPDX-License-Identifier: Apache-2.0

package payload

import "bytes"

// Kind tags the variant held by a Value. The numeric values are wire
// constants — the codec writes them as per-field type tags, so changing
// them breaks payload format compatibility.
type Kind uint8

const (
	KindAccount   Kind = 0x01
	KindTimestamp Kind = 0x02
	KindText      Kind = 0x10
	KindInteger   Kind = 0x11
	KindBool      Kind = 0x12
	KindBinary    Kind = 0x13
)

// String returns the human-readable name of a kind.
func (k Kind) String() string {
	switch k {
	case KindAccount:
		return "account"
	case KindTimestamp:
		return "timestamp"
	case KindText:
		return "text"
	case KindInteger:
		return "integer"
	case KindBool:
		return "bool"
	case KindBinary:
		return "binary"
	default:
		return "unknown"
	}
}

// Value is a typed metadata value. Values are immutable once
// constructed: binary contents are copied on the way in and on the way
// out. The zero value has no kind and is rejected by the builder.
type Value struct {
	kind    Kind
	text    string
	integer int64
	boolean bool
	binary  []byte
}

// NewText wraps a UTF-8 string value.
func NewText(text string) Value {
	return Value{kind: KindText, text: text}
}

// NewInt wraps a 64-bit signed integer value.
func NewInt(value int64) Value {
	return Value{kind: KindInteger, integer: value}
}

// NewBool wraps a boolean value.
func NewBool(value bool) Value {
	return Value{kind: KindBool, boolean: value}
}

// NewBinary wraps raw bytes. The input slice is copied.
func NewBinary(data []byte) Value {
	return Value{kind: KindBinary, binary: bytes.Clone(data)}
}

// NewAccount wraps a validated account identifier.
func NewAccount(account AccountID) Value {
	return Value{kind: KindAccount, text: account.id}
}

// NewTimestamp wraps a validated timestamp.
func NewTimestamp(ts Timestamp) Value {
	return Value{kind: KindTimestamp, integer: ts.seconds}
}

// Kind returns the variant tag.
func (v Value) Kind() Kind { return v.kind }

// Text returns the string contents when the value is a text variant.
func (v Value) Text() (string, bool) {
	return v.text, v.kind == KindText
}

// Int returns the integer contents when the value is an integer
// variant.
func (v Value) Int() (int64, bool) {
	return v.integer, v.kind == KindInteger
}

// Bool returns the boolean contents when the value is a bool variant.
func (v Value) Bool() (bool, bool) {
	return v.boolean, v.kind == KindBool
}

// Binary returns a copy of the byte contents when the value is a
// binary variant.
func (v Value) Binary() ([]byte, bool) {
	if v.kind != KindBinary {
		return nil, false
	}
	return bytes.Clone(v.binary), true
}

// Account returns the account identifier when the value is an account
// variant.
func (v Value) Account() (AccountID, bool) {
	if v.kind != KindAccount {
		return AccountID{}, false
	}
	return AccountID{id: v.text}, true
}

// Timestamp returns the timestamp when the value is a timestamp
// variant.
func (v Value) Timestamp() (Timestamp, bool) {
	if v.kind != KindTimestamp {
		return Timestamp{}, false
	}
	return Timestamp{seconds: v.integer}, true
}

// Equal reports whether two values hold the same variant and contents.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindBinary:
		return bytes.Equal(v.binary, other.binary)
	default:
		return v.text == other.text && v.integer == other.integer && v.boolean == other.boolean
	}
}

// contentSize is the byte count checked against the text/binary size
// limits. Fixed-width variants report zero — they cannot be oversized.
func (v Value) contentSize() int {
	switch v.kind {
	case KindText:
		return len(v.text)
	case KindBinary:
		return len(v.binary)
	default:
		return 0
	}
}
