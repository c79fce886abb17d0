// Copyright 2026 The Wavemark Authors
// SPDX-License-Identifier: Apache-2.0

package sealing

// Config parameterizes an encrypted-hash mode: the strategy plus
// optional per-encode overrides.
type Config struct {
	// Strategy performs the sealing. Required.
	Strategy HashStrategy

	// KeyID selects a named key when the strategy manages several.
	// Strategies that do not implement Configurable reject a non-empty
	// KeyID.
	KeyID string

	// Nonce fixes the strategy's nonce instead of random generation.
	// Intended for deterministic-output tests; reusing a nonce across
	// payloads under the same key destroys AEAD security. Strategies
	// that do not implement Configurable reject a non-nil Nonce.
	Nonce []byte
}

// Mode is the encode-time choice between plaintext and sealed output.
// The zero Mode is plaintext.
type Mode struct {
	config *Config
}

// Plaintext returns the mode that writes the payload unencrypted with
// no authentication beyond the frame structure itself.
func Plaintext() Mode {
	return Mode{}
}

// EncryptedHash returns the mode that seals the payload with the
// configured strategy.
func EncryptedHash(config Config) Mode {
	configCopy := config
	configCopy.Nonce = cloneBytes(config.Nonce)
	return Mode{config: &configCopy}
}

// IsPlaintext reports whether the mode writes unencrypted output.
func (m Mode) IsPlaintext() bool {
	return m.config == nil
}

// Resolve returns the strategy to seal with, applying the mode's KeyID
// and Nonce overrides through the Configurable interface when present.
// Plaintext modes resolve to nil.
func (m Mode) Resolve() (HashStrategy, error) {
	if m.config == nil {
		return nil, nil
	}
	strategy := m.config.Strategy
	if strategy == nil {
		return nil, configurationError("mode", "encrypted-hash mode has no strategy")
	}
	if m.config.KeyID == "" && m.config.Nonce == nil {
		return strategy, nil
	}
	configurable, ok := strategy.(Configurable)
	if !ok {
		return nil, configurationError(strategy.SchemeName(),
			"strategy does not accept a key id or nonce override")
	}
	return configurable.Configure(m.config.KeyID, m.config.Nonce)
}
