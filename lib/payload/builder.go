// Copyright 2026 The Wavemark Authors
// SPDX-License-Identifier: Apache-2.0

package payload

import (
	"github.com/wavemark-audio/wavemark/lib/clock"
)

// Builder assembles a metadata frame while enforcing the schema rules.
// Setters chain and short-circuit: the first validation failure is
// recorded and every later setter becomes a no-op, so a chain can be
// written without intermediate error checks and the failure surfaces
// from Build (or earlier, via Err).
//
// Build is repeatable. When the caller never set issued_at explicitly,
// each Build stamps the frame with the wall-clock time of that call;
// an explicit issued_at is pinned and reused.
//
// A Builder is not safe for concurrent use — each build session belongs
// to one goroutine.
type Builder struct {
	clock  clock.Clock
	limits Limits
	fields map[string]Field
	err    error
}

// NewBuilder returns a builder with the default limits and the real
// wall clock.
func NewBuilder() *Builder {
	return NewBuilderWithLimits(DefaultLimits())
}

// NewBuilderWithLimits returns a builder enforcing custom limits. The
// zero value of any limit falls back to its default.
func NewBuilderWithLimits(limits Limits) *Builder {
	return &Builder{
		clock:  clock.Real(),
		limits: limits.normalized(),
		fields: make(map[string]Field),
	}
}

// WithClock replaces the clock used to stamp the default issued_at
// field. Tests inject a fake clock here.
func (b *Builder) WithClock(c clock.Clock) *Builder {
	b.clock = c
	return b
}

// Err returns the first validation failure recorded by a setter, or
// nil. Build returns the same error.
func (b *Builder) Err() error { return b.err }

// AccountID sets the well-known account identifier field, validating
// the identifier.
func (b *Builder) AccountID(id string) *Builder {
	if b.err != nil {
		return b
	}
	account, err := ParseAccountID(id)
	if err != nil {
		b.err = err
		return b
	}
	return b.Put(KeyAccountID, NewAccount(account))
}

// SessionID sets the well-known session identifier field.
func (b *Builder) SessionID(id string) *Builder {
	return b.Put(KeySessionID, NewText(id))
}

// ContentID sets the well-known content identifier field.
func (b *Builder) ContentID(id string) *Builder {
	return b.Put(KeyContentID, NewText(id))
}

// IssuedAt pins the issuance timestamp, overriding the default stamped
// at build time.
func (b *Builder) IssuedAt(ts Timestamp) *Builder {
	return b.Put(KeyIssuedAt, NewTimestamp(ts))
}

// ExpiresAt sets the expiration timestamp. There is no default — a
// frame without this field does not expire.
func (b *Builder) ExpiresAt(ts Timestamp) *Builder {
	return b.Put(KeyExpiresAt, NewTimestamp(ts))
}

// TextField sets a custom UTF-8 field. The key is validated against the
// charset rules.
func (b *Builder) TextField(key string, value string) *Builder {
	return b.putNamed(key, NewText(value))
}

// IntField sets a custom 64-bit integer field.
func (b *Builder) IntField(key string, value int64) *Builder {
	return b.putNamed(key, NewInt(value))
}

// BoolField sets a custom boolean field.
func (b *Builder) BoolField(key string, value bool) *Builder {
	return b.putNamed(key, NewBool(value))
}

// TimestampField sets a custom timestamp field.
func (b *Builder) TimestampField(key string, ts Timestamp) *Builder {
	return b.putNamed(key, NewTimestamp(ts))
}

// BinaryField sets a custom raw-bytes field. The value is copied.
func (b *Builder) BinaryField(key string, value []byte) *Builder {
	return b.putNamed(key, NewBinary(value))
}

// Put inserts a pre-built key/value pair. Setting an existing key
// replaces its value (last write wins) and does not count against the
// field cap.
func (b *Builder) Put(key Key, value Value) *Builder {
	if b.err != nil {
		return b
	}
	field := Field{Key: key, Value: value}
	if err := validateField(field, b.limits); err != nil {
		b.err = err
		return b
	}
	if _, exists := b.fields[key.name]; !exists && len(b.fields) >= b.limits.MaxFields {
		b.err = &Error{
			Code:   CodeTooManyFields,
			Key:    key.name,
			Reason: "frame already holds the maximum number of fields",
		}
		return b
	}
	b.fields[key.name] = field
	return b
}

// Fields inserts multiple pre-built fields, stopping at the first
// validation failure.
func (b *Builder) Fields(fields ...Field) *Builder {
	for _, field := range fields {
		b.Put(field.Key, field.Value)
		if b.err != nil {
			break
		}
	}
	return b
}

// Build finalizes the builder into an immutable frame, or returns the
// first validation failure. The builder remains usable afterwards; the
// returned frame is independent of later mutations.
func (b *Builder) Build() (*Frame, error) {
	if b.err != nil {
		return nil, b.err
	}

	fields := make(map[string]Field, len(b.fields)+1)
	for name, field := range b.fields {
		fields[name] = field
	}

	// Stamp issued_at when the caller has not pinned one, so every
	// frame carries an issuance time. The clock reading goes through
	// the same range validation as an explicit timestamp — a frame
	// must never leave the builder carrying a value decode would
	// reject.
	if _, present := fields[KeyIssuedAt.name]; !present {
		stamped, err := FromTime(b.clock.Now())
		if err != nil {
			return nil, err
		}
		fields[KeyIssuedAt.name] = Field{
			Key:   KeyIssuedAt,
			Value: NewTimestamp(stamped),
		}
	}

	if len(fields) > b.limits.MaxFields {
		return nil, &Error{
			Code:   CodeTooManyFields,
			Reason: "frame exceeds the maximum number of fields",
		}
	}

	return &Frame{fields: fields}, nil
}

func (b *Builder) putNamed(name string, value Value) *Builder {
	if b.err != nil {
		return b
	}
	key, err := ParseKey(name)
	if err != nil {
		b.err = err
		return b
	}
	return b.Put(key, value)
}
