// Copyright 2026 The Wavemark Authors
// SPDX-License-Identifier: Apache-2.0

package sealing

import (
	"bytes"
	"encoding/binary"
)

// Context binds sealed bytes to their usage context. It is supplied by
// the caller at seal time and must be presented unchanged at open time;
// it is never serialized into the payload itself, so any out-of-band
// store of sealed bytes must also retain the context.
type Context struct {
	// ChannelID identifies the distribution channel or session the
	// payload is sealed for (domain separation — prevents replaying
	// sealed bytes across channels).
	ChannelID string

	// AssociatedData is additional caller state mixed into
	// authentication. Optional.
	AssociatedData []byte
}

// Artifacts carries the output of Seal and the input to Open. The
// codec transports the three slices verbatim; their interpretation is
// strategy-specific and opaque to everything else.
type Artifacts struct {
	// Sealed replaces the plaintext payload on the wire. For
	// authentication-only strategies this is the plaintext itself.
	Sealed []byte

	// Tag is a detached authentication tag or digest, when the
	// strategy produces one.
	Tag []byte

	// Metadata is strategy-specific material needed by Open (a nonce,
	// for one). Authenticated by the strategy where applicable.
	Metadata []byte
}

// Strategy seals and opens payload bytes. Implementations hold
// configuration only — no per-call mutable state — and must be safe
// for concurrent use from multiple encode/decode operations.
type Strategy interface {
	// Seal applies the strategy's protection to plaintext, binding it
	// to the given context.
	Seal(plaintext []byte, ctx Context) (Artifacts, error)

	// Open reverses Seal, verifying integrity and context binding,
	// and returns the original plaintext. Any tampering with the
	// artifacts or a mismatched context fails with CodeIntegrity.
	Open(artifacts Artifacts, ctx Context) ([]byte, error)

	// SchemeName is a human-readable identifier for diagnostics.
	SchemeName() string
}

// HashStrategy is a Strategy with a stable wire-level algorithm
// identifier, letting a decoder select the matching implementation from
// a Registry without prior knowledge of how the payload was sealed.
type HashStrategy interface {
	Strategy

	// AlgorithmID returns the wire discriminator written into the
	// frame header. Changing it breaks decode compatibility.
	AlgorithmID() string
}

// Configurable is an optional refinement for strategies that accept a
// per-mode key identifier or caller-supplied nonce. The codec calls
// Configure when a Mode carries either; strategies that do not
// implement it reject such modes with a configuration error.
type Configurable interface {
	// Configure returns a derived strategy bound to the given key id
	// and nonce. A nil nonce keeps the strategy's own nonce handling.
	Configure(keyID string, nonce []byte) (HashStrategy, error)
}

// appendLengthPrefixed appends a u16 length prefix and the data to dst.
// Used when folding variable-length context pieces into authentication
// input so that ("ab","c") and ("a","bc") never collide.
func appendLengthPrefixed(dst []byte, data []byte) []byte {
	dst = binary.LittleEndian.AppendUint16(dst, uint16(len(data)))
	return append(dst, data...)
}

// contextBinding serializes a domain tag and context into canonical
// authentication input shared by the built-in strategies.
func contextBinding(domain string, ctx Context, extra ...[]byte) []byte {
	bound := appendLengthPrefixed(nil, []byte(domain))
	bound = appendLengthPrefixed(bound, []byte(ctx.ChannelID))
	bound = appendLengthPrefixed(bound, ctx.AssociatedData)
	for _, piece := range extra {
		bound = appendLengthPrefixed(bound, piece)
	}
	return bound
}

// cloneBytes copies a byte slice, mapping nil to nil.
func cloneBytes(data []byte) []byte {
	return bytes.Clone(data)
}
