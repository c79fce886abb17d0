// Copyright 2026 The Wavemark Authors
// SPDX-License-Identifier: Apache-2.0

// Package sealing defines the authenticated-encryption extension point
// for watermark payloads and the built-in strategies.
//
// A Strategy transforms canonical payload bytes into sealed bytes plus
// detached Artifacts, and reverses the transform while verifying
// integrity. The codec selects a strategy at encode time through a Mode
// and at decode time through an algorithm-id-keyed Registry, so a
// decoder needs no prior knowledge of which strategy sealed a payload.
//
// Strategies are long-lived, stateless configuration: one instance is
// shared across every encode and decode operation in the process, and
// Seal/Open must be safe to call concurrently.
//
// Built-in strategies:
//   - Passthrough: the identity transform backing plaintext mode.
//   - XChaCha20: XChaCha20-Poly1305 AEAD with per-channel HKDF key
//     derivation; provides confidentiality and integrity.
//   - KeyedBLAKE3: keyed-hash authentication without confidentiality;
//     the payload travels in the clear with a detached 32-byte tag.
//   - AgeX25519: asymmetric sealing to age recipients, for deployments
//     where the embedder must not hold the opening key.
//
// Context binding: callers pass a Context (channel identifier plus
// associated data) to Seal and must present the same Context to Open.
// Every built-in strategy except Passthrough mixes the context into
// authentication, so sealed bytes replayed on a different channel fail
// to open.
package sealing
