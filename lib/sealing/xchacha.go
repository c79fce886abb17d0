// Copyright 2026 The Wavemark Authors
// SPDX-License-Identifier: Apache-2.0

package sealing

import (
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"

	"github.com/wavemark-audio/wavemark/lib/secret"
)

const (
	xchachaSchemeName  = "xchacha20poly1305"
	xchachaAlgorithmID = "xchacha20poly1305.v1"

	// xchachaDomain separates this strategy's key derivation and AAD
	// from any other use of the same master key.
	xchachaDomain = "wavemark/xchacha20poly1305.v1"

	xchachaKeySize = chacha20poly1305.KeySize
)

// XChaCha20 seals payloads with XChaCha20-Poly1305. The master key
// never encrypts directly: a per-channel key is derived with
// HKDF-SHA256 over the channel identifier, so sealed bytes from one
// channel reveal nothing about another even under key compromise of a
// single derived key.
//
// The wire artifacts are a detached 16-byte Poly1305 tag and metadata
// holding the selected key id and the 24-byte nonce. The key id,
// channel, and associated data are all bound through the AEAD's
// additional data, so none of them can be swapped without failing Open.
type XChaCha20 struct {
	keys  map[string]*secret.Buffer
	keyID string
	nonce []byte
}

// NewXChaCha20 returns a strategy with a single unnamed 32-byte master
// key. The strategy borrows the buffer; the caller keeps ownership and
// must not Close it while the strategy is in use.
func NewXChaCha20(key *secret.Buffer) (*XChaCha20, error) {
	return NewXChaCha20Keyring(map[string]*secret.Buffer{"": key}, "")
}

// NewXChaCha20Keyring returns a strategy holding several named master
// keys, sealing with defaultKeyID unless a mode override selects
// another. Every key must be exactly 32 bytes.
func NewXChaCha20Keyring(keys map[string]*secret.Buffer, defaultKeyID string) (*XChaCha20, error) {
	if len(keys) == 0 {
		return nil, configurationError(xchachaSchemeName, "no master keys supplied")
	}
	for keyID, key := range keys {
		if key == nil {
			return nil, configurationError(xchachaSchemeName,
				fmt.Sprintf("master key %q is nil", keyID))
		}
		if key.Len() != xchachaKeySize {
			return nil, configurationError(xchachaSchemeName,
				fmt.Sprintf("master key %q is %d bytes, want %d", keyID, key.Len(), xchachaKeySize))
		}
	}
	if _, ok := keys[defaultKeyID]; !ok {
		return nil, configurationError(xchachaSchemeName,
			fmt.Sprintf("default key id %q not in keyring", defaultKeyID))
	}
	return &XChaCha20{keys: keys, keyID: defaultKeyID}, nil
}

// Configure implements Configurable: keyID selects a keyring entry and
// a non-nil nonce fixes the AEAD nonce (24 bytes) instead of random
// generation. A fixed nonce must never be reused under the same key and
// channel.
func (x *XChaCha20) Configure(keyID string, nonce []byte) (HashStrategy, error) {
	configured := *x
	if keyID != "" {
		if _, ok := x.keys[keyID]; !ok {
			return nil, configurationError(xchachaSchemeName,
				fmt.Sprintf("key id %q not in keyring", keyID))
		}
		configured.keyID = keyID
	}
	if nonce != nil {
		if len(nonce) != chacha20poly1305.NonceSizeX {
			return nil, configurationError(xchachaSchemeName,
				fmt.Sprintf("nonce is %d bytes, want %d", len(nonce), chacha20poly1305.NonceSizeX))
		}
		configured.nonce = cloneBytes(nonce)
	}
	return &configured, nil
}

// Seal implements Strategy.
func (x *XChaCha20) Seal(plaintext []byte, ctx Context) (Artifacts, error) {
	aead, derivedKey, err := x.channelAEAD(x.keyID, ctx.ChannelID)
	if err != nil {
		return Artifacts{}, err
	}
	defer secret.Zero(derivedKey)

	nonce := x.nonce
	if nonce == nil {
		nonce = make([]byte, chacha20poly1305.NonceSizeX)
		if _, err := rand.Read(nonce); err != nil {
			return Artifacts{}, &Error{
				Code: CodeConfiguration, Scheme: xchachaSchemeName,
				Reason: "reading random nonce", Err: err,
			}
		}
	}

	additionalData := contextBinding(xchachaDomain, ctx, []byte(x.keyID))
	combined := aead.Seal(nil, nonce, plaintext, additionalData)
	boundary := len(combined) - aead.Overhead()

	metadata := appendLengthPrefixed(nil, []byte(x.keyID))
	metadata = append(metadata, nonce...)

	return Artifacts{
		Sealed:   combined[:boundary],
		Tag:      combined[boundary:],
		Metadata: metadata,
	}, nil
}

// Open implements Strategy.
func (x *XChaCha20) Open(artifacts Artifacts, ctx Context) ([]byte, error) {
	keyID, nonce, err := x.parseMetadata(artifacts.Metadata)
	if err != nil {
		return nil, err
	}
	if len(artifacts.Tag) != chacha20poly1305.Overhead {
		return nil, integrityError(xchachaSchemeName,
			fmt.Sprintf("tag is %d bytes, want %d", len(artifacts.Tag), chacha20poly1305.Overhead), nil)
	}
	if _, ok := x.keys[keyID]; !ok {
		return nil, configurationError(xchachaSchemeName,
			fmt.Sprintf("payload sealed with unknown key id %q", keyID))
	}

	aead, derivedKey, err := x.channelAEAD(keyID, ctx.ChannelID)
	if err != nil {
		return nil, err
	}
	defer secret.Zero(derivedKey)

	combined := make([]byte, 0, len(artifacts.Sealed)+len(artifacts.Tag))
	combined = append(combined, artifacts.Sealed...)
	combined = append(combined, artifacts.Tag...)

	additionalData := contextBinding(xchachaDomain, ctx, []byte(keyID))
	plaintext, err := aead.Open(nil, nonce, combined, additionalData)
	if err != nil {
		return nil, integrityError(xchachaSchemeName, "authentication failed", err)
	}
	return plaintext, nil
}

// SchemeName implements Strategy.
func (x *XChaCha20) SchemeName() string { return xchachaSchemeName }

// AlgorithmID implements HashStrategy.
func (x *XChaCha20) AlgorithmID() string { return xchachaAlgorithmID }

// channelAEAD derives the per-channel key for keyID and returns the
// AEAD over it. The caller must zero the returned key bytes after use.
func (x *XChaCha20) channelAEAD(keyID, channelID string) (cipher.AEAD, []byte, error) {
	masterKey, ok := x.keys[keyID]
	if !ok {
		return nil, nil, configurationError(xchachaSchemeName,
			fmt.Sprintf("key id %q not in keyring", keyID))
	}

	info := xchachaDomain + "/channel/" + channelID
	derivedKey := make([]byte, xchachaKeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, masterKey.Bytes(), nil, []byte(info)), derivedKey); err != nil {
		return nil, nil, &Error{
			Code: CodeConfiguration, Scheme: xchachaSchemeName,
			Reason: "deriving channel key", Err: err,
		}
	}

	aead, err := chacha20poly1305.NewX(derivedKey)
	if err != nil {
		secret.Zero(derivedKey)
		return nil, nil, &Error{
			Code: CodeConfiguration, Scheme: xchachaSchemeName,
			Reason: "constructing AEAD", Err: err,
		}
	}
	return aead, derivedKey, nil
}

// parseMetadata splits artifact metadata into the key id and nonce.
func (x *XChaCha20) parseMetadata(metadata []byte) (keyID string, nonce []byte, err error) {
	if len(metadata) < 2 {
		return "", nil, integrityError(xchachaSchemeName, "metadata truncated", nil)
	}
	keyIDLength := int(binary.LittleEndian.Uint16(metadata))
	rest := metadata[2:]
	if len(rest) != keyIDLength+chacha20poly1305.NonceSizeX {
		return "", nil, integrityError(xchachaSchemeName,
			fmt.Sprintf("metadata is %d bytes, want %d", len(metadata),
				2+keyIDLength+chacha20poly1305.NonceSizeX), nil)
	}
	return string(rest[:keyIDLength]), rest[keyIDLength:], nil
}
