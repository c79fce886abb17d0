// Copyright 2026 The Wavemark Authors
// SPDX-License-Identifier: Apache-2.0

package sealing

import (
	"crypto/subtle"
	"encoding/binary"
	"fmt"

	"github.com/zeebo/blake3"

	"github.com/wavemark-audio/wavemark/lib/secret"
)

const (
	blake3SchemeName  = "blake3-keyed"
	blake3AlgorithmID = "blake3-keyed.v1"
	blake3Domain      = "wavemark/blake3-keyed.v1"
	blake3KeySize     = 32
	blake3TagSize     = 32
)

// KeyedBLAKE3 authenticates payloads without encrypting them: the
// payload travels in the clear and a 32-byte keyed-BLAKE3 tag over the
// context binding and payload travels detached. Use it where receivers
// must read the payload without key material but the embedder wants
// tamper evidence for holders of the key.
type KeyedBLAKE3 struct {
	keys  map[string]*secret.Buffer
	keyID string
}

// NewKeyedBLAKE3 returns a strategy with a single unnamed 32-byte key.
// The strategy borrows the buffer; the caller keeps ownership.
func NewKeyedBLAKE3(key *secret.Buffer) (*KeyedBLAKE3, error) {
	return NewKeyedBLAKE3Keyring(map[string]*secret.Buffer{"": key}, "")
}

// NewKeyedBLAKE3Keyring returns a strategy holding several named keys,
// tagging with defaultKeyID unless a mode override selects another.
func NewKeyedBLAKE3Keyring(keys map[string]*secret.Buffer, defaultKeyID string) (*KeyedBLAKE3, error) {
	if len(keys) == 0 {
		return nil, configurationError(blake3SchemeName, "no keys supplied")
	}
	for keyID, key := range keys {
		if key == nil {
			return nil, configurationError(blake3SchemeName,
				fmt.Sprintf("key %q is nil", keyID))
		}
		if key.Len() != blake3KeySize {
			return nil, configurationError(blake3SchemeName,
				fmt.Sprintf("key %q is %d bytes, want %d", keyID, key.Len(), blake3KeySize))
		}
	}
	if _, ok := keys[defaultKeyID]; !ok {
		return nil, configurationError(blake3SchemeName,
			fmt.Sprintf("default key id %q not in keyring", defaultKeyID))
	}
	return &KeyedBLAKE3{keys: keys, keyID: defaultKeyID}, nil
}

// Configure implements Configurable. Only a key id override is
// meaningful; the strategy has no nonce.
func (k *KeyedBLAKE3) Configure(keyID string, nonce []byte) (HashStrategy, error) {
	if nonce != nil {
		return nil, configurationError(blake3SchemeName, "strategy does not accept a nonce")
	}
	if keyID == "" {
		return k, nil
	}
	if _, ok := k.keys[keyID]; !ok {
		return nil, configurationError(blake3SchemeName,
			fmt.Sprintf("key id %q not in keyring", keyID))
	}
	configured := *k
	configured.keyID = keyID
	return &configured, nil
}

// Seal implements Strategy. Sealed output is the plaintext itself.
func (k *KeyedBLAKE3) Seal(plaintext []byte, ctx Context) (Artifacts, error) {
	tag, err := k.computeTag(k.keyID, plaintext, ctx)
	if err != nil {
		return Artifacts{}, err
	}
	return Artifacts{
		Sealed:   cloneBytes(plaintext),
		Tag:      tag,
		Metadata: appendLengthPrefixed(nil, []byte(k.keyID)),
	}, nil
}

// Open implements Strategy. Tag comparison is constant-time.
func (k *KeyedBLAKE3) Open(artifacts Artifacts, ctx Context) ([]byte, error) {
	keyID, err := k.parseMetadata(artifacts.Metadata)
	if err != nil {
		return nil, err
	}
	if _, ok := k.keys[keyID]; !ok {
		return nil, configurationError(blake3SchemeName,
			fmt.Sprintf("payload tagged with unknown key id %q", keyID))
	}
	if len(artifacts.Tag) != blake3TagSize {
		return nil, integrityError(blake3SchemeName,
			fmt.Sprintf("tag is %d bytes, want %d", len(artifacts.Tag), blake3TagSize), nil)
	}

	expected, err := k.computeTag(keyID, artifacts.Sealed, ctx)
	if err != nil {
		return nil, err
	}
	if subtle.ConstantTimeCompare(expected, artifacts.Tag) != 1 {
		return nil, integrityError(blake3SchemeName, "tag mismatch", nil)
	}
	return cloneBytes(artifacts.Sealed), nil
}

// SchemeName implements Strategy.
func (k *KeyedBLAKE3) SchemeName() string { return blake3SchemeName }

// AlgorithmID implements HashStrategy.
func (k *KeyedBLAKE3) AlgorithmID() string { return blake3AlgorithmID }

func (k *KeyedBLAKE3) computeTag(keyID string, payload []byte, ctx Context) ([]byte, error) {
	key, ok := k.keys[keyID]
	if !ok {
		return nil, configurationError(blake3SchemeName,
			fmt.Sprintf("key id %q not in keyring", keyID))
	}
	hasher, err := blake3.NewKeyed(key.Bytes())
	if err != nil {
		return nil, &Error{
			Code: CodeConfiguration, Scheme: blake3SchemeName,
			Reason: "constructing keyed hasher", Err: err,
		}
	}
	hasher.Write(contextBinding(blake3Domain, ctx, []byte(keyID)))
	hasher.Write(payload)
	return hasher.Sum(nil)[:blake3TagSize], nil
}

func (k *KeyedBLAKE3) parseMetadata(metadata []byte) (string, error) {
	if len(metadata) < 2 {
		return "", integrityError(blake3SchemeName, "metadata truncated", nil)
	}
	keyIDLength := int(binary.LittleEndian.Uint16(metadata))
	rest := metadata[2:]
	if len(rest) != keyIDLength {
		return "", integrityError(blake3SchemeName,
			fmt.Sprintf("metadata is %d bytes, want %d", len(metadata), 2+keyIDLength), nil)
	}
	return string(rest), nil
}
