// Copyright 2026 The Wavemark Authors
// SPDX-License-Identifier: Apache-2.0

package format

import (
	"github.com/wavemark-audio/wavemark/lib/clock"
	"github.com/wavemark-audio/wavemark/lib/codec"
	"github.com/wavemark-audio/wavemark/lib/payload"
	"github.com/wavemark-audio/wavemark/lib/sealing"
)

// Output is a fully assembled watermark payload.
type Output struct {
	// Frame is the logical frame that was serialized, including any
	// defaults stamped at build time.
	Frame *payload.Frame

	// Bytes is the encoded wire frame, sealed per the builder's mode.
	Bytes []byte
}

// Builder assembles a watermark payload end to end. The zero mode is
// plaintext; call EncryptionMode to seal. Like the payload builder it
// wraps, a Builder belongs to one goroutine.
type Builder struct {
	payload *payload.Builder
	codec   *codec.Codec
	mode    sealing.Mode
	context sealing.Context
}

// NewBuilder returns a builder over a codec with default options.
func NewBuilder() *Builder {
	return NewBuilderWithOptions(codec.Options{})
}

// NewBuilderWithOptions returns a builder whose codec uses the given
// options (version, limits, compression, message cap).
func NewBuilderWithOptions(options codec.Options) *Builder {
	return &Builder{
		payload: payload.NewBuilderWithLimits(options.Limits),
		codec:   codec.New(options),
	}
}

// Payload exposes the underlying payload builder for setters not
// mirrored here.
func (b *Builder) Payload() *payload.Builder { return b.payload }

// WithClock replaces the clock used for the default issued_at stamp.
func (b *Builder) WithClock(c clock.Clock) *Builder {
	b.payload.WithClock(c)
	return b
}

// AccountID sets the well-known account identifier field.
func (b *Builder) AccountID(id string) *Builder {
	b.payload.AccountID(id)
	return b
}

// SessionID sets the well-known session identifier field.
func (b *Builder) SessionID(id string) *Builder {
	b.payload.SessionID(id)
	return b
}

// ContentID sets the well-known content identifier field.
func (b *Builder) ContentID(id string) *Builder {
	b.payload.ContentID(id)
	return b
}

// IssuedAt pins the issuance timestamp.
func (b *Builder) IssuedAt(ts payload.Timestamp) *Builder {
	b.payload.IssuedAt(ts)
	return b
}

// ExpiresAt sets the expiration timestamp.
func (b *Builder) ExpiresAt(ts payload.Timestamp) *Builder {
	b.payload.ExpiresAt(ts)
	return b
}

// TextField sets a custom UTF-8 field.
func (b *Builder) TextField(key, value string) *Builder {
	b.payload.TextField(key, value)
	return b
}

// IntField sets a custom integer field.
func (b *Builder) IntField(key string, value int64) *Builder {
	b.payload.IntField(key, value)
	return b
}

// BoolField sets a custom boolean field.
func (b *Builder) BoolField(key string, value bool) *Builder {
	b.payload.BoolField(key, value)
	return b
}

// BinaryField sets a custom raw-bytes field.
func (b *Builder) BinaryField(key string, value []byte) *Builder {
	b.payload.BinaryField(key, value)
	return b
}

// Field inserts a pre-built key/value pair.
func (b *Builder) Field(key payload.Key, value payload.Value) *Builder {
	b.payload.Put(key, value)
	return b
}

// Fields inserts multiple pre-built fields.
func (b *Builder) Fields(fields ...payload.Field) *Builder {
	b.payload.Fields(fields...)
	return b
}

// EncryptionMode selects how the payload is sealed. Default is
// plaintext.
func (b *Builder) EncryptionMode(mode sealing.Mode) *Builder {
	b.mode = mode
	return b
}

// EncryptionContext sets the context the payload is sealed for. A
// decoder must present the same context. Ignored in plaintext mode.
func (b *Builder) EncryptionContext(ctx sealing.Context) *Builder {
	b.context = ctx
	return b
}

// Build finalizes the fields and encodes them: finalize, serialize,
// seal, frame, in that order. Every failure surfaces as a *codec.Error;
// field validation failures carry codec.CodePayload with the
// *payload.Error reachable through Unwrap.
func (b *Builder) Build() (Output, error) {
	frame, err := b.payload.Build()
	if err != nil {
		return Output{}, &codec.Error{
			Code:   codec.CodePayload,
			Reason: "assembling payload fields",
			Err:    err,
		}
	}
	encoded, err := b.codec.Encode(frame, b.mode, b.context)
	if err != nil {
		return Output{}, err
	}
	return Output{Frame: frame, Bytes: encoded}, nil
}
