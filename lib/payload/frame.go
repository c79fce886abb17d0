// Copyright 2026 The Wavemark Authors
// SPDX-License-Identifier: Apache-2.0

package payload

import (
	"sort"
	"strconv"
)

// Field ties a key to a typed value.
type Field struct {
	Key   Key
	Value Value
}

// Frame is an immutable collection of metadata fields with unique keys.
// Frames are produced by Builder.Build on the encode path and by the
// codec on the decode path; they are never mutated after construction.
type Frame struct {
	fields map[string]Field
}

// NewFrame validates fields against the given limits and assembles a
// frame. Unlike Builder.Build, no default fields are injected — the
// frame holds exactly the fields passed in. Duplicate keys resolve to
// the last occurrence. The codec uses this on decode so that recovered
// frames reproduce the encoded fields bit-for-bit.
func NewFrame(fields []Field, limits Limits) (*Frame, error) {
	limits = limits.normalized()
	collected := make(map[string]Field, len(fields))
	for _, field := range fields {
		if err := validateField(field, limits); err != nil {
			return nil, err
		}
		if _, exists := collected[field.Key.name]; !exists && len(collected) >= limits.MaxFields {
			return nil, &Error{
				Code:   CodeTooManyFields,
				Key:    field.Key.name,
				Reason: "frame already holds the maximum of " + strconv.Itoa(limits.MaxFields) + " fields",
			}
		}
		collected[field.Key.name] = field
	}
	return &Frame{fields: collected}, nil
}

// Len returns the number of fields in the frame.
func (f *Frame) Len() int { return len(f.fields) }

// Get returns the value stored under key.
func (f *Frame) Get(key Key) (Value, bool) {
	field, ok := f.fields[key.name]
	return field.Value, ok
}

// Fields returns the frame's fields sorted by key name. The slice is
// freshly allocated; mutating it does not affect the frame.
func (f *Frame) Fields() []Field {
	fields := make([]Field, 0, len(f.fields))
	for _, field := range f.fields {
		fields = append(fields, field)
	}
	sort.Slice(fields, func(i, j int) bool {
		return fields[i].Key.name < fields[j].Key.name
	})
	return fields
}

// AccountID returns the well-known account identifier field.
func (f *Frame) AccountID() (AccountID, bool) {
	value, ok := f.Get(KeyAccountID)
	if !ok {
		return AccountID{}, false
	}
	return value.Account()
}

// SessionID returns the well-known session identifier field.
func (f *Frame) SessionID() (string, bool) {
	value, ok := f.Get(KeySessionID)
	if !ok {
		return "", false
	}
	return value.Text()
}

// ContentID returns the well-known content identifier field.
func (f *Frame) ContentID() (string, bool) {
	value, ok := f.Get(KeyContentID)
	if !ok {
		return "", false
	}
	return value.Text()
}

// IssuedAt returns the issuance timestamp. Frames built through the
// Builder always carry one.
func (f *Frame) IssuedAt() (Timestamp, bool) {
	value, ok := f.Get(KeyIssuedAt)
	if !ok {
		return Timestamp{}, false
	}
	return value.Timestamp()
}

// ExpiresAt returns the expiration timestamp, if one was set. There is
// no default — absence means the payload does not expire.
func (f *Frame) ExpiresAt() (Timestamp, bool) {
	value, ok := f.Get(KeyExpiresAt)
	if !ok {
		return Timestamp{}, false
	}
	return value.Timestamp()
}

// Equal reports whether two frames hold the same fields with equal
// values.
func (f *Frame) Equal(other *Frame) bool {
	if f == nil || other == nil {
		return f == other
	}
	if len(f.fields) != len(other.fields) {
		return false
	}
	for name, field := range f.fields {
		otherField, ok := other.fields[name]
		if !ok || !field.Value.Equal(otherField.Value) {
			return false
		}
	}
	return true
}

// validateField checks a single field against the schema rules and
// limits. Well-known keys additionally require the matching value kind.
func validateField(field Field, limits Limits) error {
	key := field.Key
	if key.IsZero() {
		return &Error{Code: CodeInvalidKey, Reason: "key is empty"}
	}
	if len(key.name) > limits.MaxKeyBytes {
		return &Error{
			Code:   CodeInvalidKey,
			Key:    key.name,
			Reason: "key exceeds the " + strconv.Itoa(limits.MaxKeyBytes) + "-byte limit",
		}
	}

	value := field.Value
	switch key.name {
	case KeyAccountID.name:
		if value.kind != KindAccount {
			return &Error{Code: CodeInvalidKey, Key: key.name, Reason: "account_id requires an account value"}
		}
	case KeyIssuedAt.name, KeyExpiresAt.name:
		if value.kind != KindTimestamp {
			return &Error{Code: CodeInvalidKey, Key: key.name, Reason: "timestamp field requires a timestamp value"}
		}
	case KeySessionID.name, KeyContentID.name:
		if value.kind != KindText {
			return &Error{Code: CodeInvalidKey, Key: key.name, Reason: "identifier field requires a text value"}
		}
	}

	switch value.kind {
	case 0:
		return &Error{Code: CodeInvalidKey, Key: key.name, Reason: "value has no kind"}
	case KindText:
		if value.contentSize() > limits.MaxTextBytes {
			return &Error{
				Code:   CodeOversizedValue,
				Key:    key.name,
				Reason: "text value exceeds " + strconv.Itoa(limits.MaxTextBytes) + " bytes",
			}
		}
	case KindBinary:
		if value.contentSize() > limits.MaxBinaryBytes {
			return &Error{
				Code:   CodeOversizedValue,
				Key:    key.name,
				Reason: "binary value exceeds " + strconv.Itoa(limits.MaxBinaryBytes) + " bytes",
			}
		}
	case KindTimestamp:
		if value.integer < minTimestampSeconds || value.integer > maxTimestampSeconds {
			return &Error{
				Code:   CodeInvalidTimestamp,
				Key:    key.name,
				Reason: "timestamp is outside the supported range",
			}
		}
	}
	return nil
}
