// Copyright 2026 The Wavemark Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec serializes payload frames to the versioned wavemark
// wire format and back.
//
// Wire layout (all integers little-endian):
//
//	[0..1]  magic "WM"
//	[2]     major version
//	[3]     minor version
//	[4]     compression tag (0 none, 1 lz4, 2 zstd)
//	[5]     reserved, zero on encode and ignored on decode
//	[6]     algorithm id length (u8)
//	[7..]   algorithm id ("plaintext" or a sealing algorithm id)
//	u32     body size before compression
//	u32+    sealed-or-plain body (length-prefixed)
//	u16+    detached tag (length-prefixed)
//	u16+    strategy metadata (length-prefixed)
//
// The body is the frame's fields as deterministic CBOR (RFC 8949 §4.2
// core deterministic encoding), so the same frame always serializes to
// identical bytes under the same options. The pipeline is CBOR, then
// optional compression, then sealing; decode runs it in reverse with
// the version gate applied before any unsealing work.
//
// A major version mismatch fails decode outright; minor version
// differences are accepted, which is what lets the format grow
// additive fields without breaking deployed decoders.
package codec
