// Copyright 2026 The Wavemark Authors
// SPDX-License-Identifier: Apache-2.0

package sealing

// Passthrough is the identity strategy: sealed bytes equal plaintext
// bytes, no tag, no metadata, and the context is ignored. It backs
// plaintext mode inside the codec and is useful as a stand-in in tests.
type Passthrough struct{}

// Seal returns the plaintext unchanged.
func (Passthrough) Seal(plaintext []byte, _ Context) (Artifacts, error) {
	return Artifacts{Sealed: cloneBytes(plaintext)}, nil
}

// Open returns the sealed bytes unchanged. Nothing is verified.
func (Passthrough) Open(artifacts Artifacts, _ Context) ([]byte, error) {
	return cloneBytes(artifacts.Sealed), nil
}

// SchemeName implements Strategy.
func (Passthrough) SchemeName() string { return plaintextAlgorithmID }
