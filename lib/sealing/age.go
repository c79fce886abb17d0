// Copyright 2026 The Wavemark Authors
// SPDX-License-Identifier: Apache-2.0

package sealing

import (
	"bytes"
	"fmt"
	"io"

	"filippo.io/age"

	"github.com/wavemark-audio/wavemark/lib/secret"
)

const (
	ageSchemeName  = "age-x25519"
	ageAlgorithmID = "age-x25519.v1"
	ageDomain      = "wavemark/age-x25519.v1"
)

// AgeX25519 seals payloads asymmetrically to a set of age X25519
// recipients. The embedding side needs only public recipient strings;
// the opening key stays with whoever holds the identity. Suited to
// deployments where watermark embedders run in environments that must
// not hold a decryption key.
//
// age's format authenticates the ciphertext, and the context travels
// as a preamble inside the encrypted envelope, so replaying sealed
// bytes on another channel fails at Open.
type AgeX25519 struct {
	recipients []age.Recipient
	identity   *age.X25519Identity
}

// NewAgeX25519 returns a strategy sealing to the given recipient
// strings ("age1..."). The identity buffer holds the Bech32-encoded
// secret key ("AGE-SECRET-KEY-1...") and may be nil on encode-only
// instances; Open then fails with a configuration error.
func NewAgeX25519(recipients []string, identity *secret.Buffer) (*AgeX25519, error) {
	strategy := &AgeX25519{}
	for _, encoded := range recipients {
		recipient, err := age.ParseX25519Recipient(encoded)
		if err != nil {
			return nil, &Error{
				Code: CodeConfiguration, Scheme: ageSchemeName,
				Reason: fmt.Sprintf("parsing recipient %q", encoded), Err: err,
			}
		}
		strategy.recipients = append(strategy.recipients, recipient)
	}
	if identity != nil {
		parsed, err := age.ParseX25519Identity(identity.String())
		if err != nil {
			return nil, &Error{
				Code: CodeConfiguration, Scheme: ageSchemeName,
				Reason: "parsing identity", Err: err,
			}
		}
		strategy.identity = parsed
	}
	return strategy, nil
}

// Seal implements Strategy.
func (a *AgeX25519) Seal(plaintext []byte, ctx Context) (Artifacts, error) {
	if len(a.recipients) == 0 {
		return Artifacts{}, configurationError(ageSchemeName, "no recipients configured")
	}

	var sealed bytes.Buffer
	writer, err := age.Encrypt(&sealed, a.recipients...)
	if err != nil {
		return Artifacts{}, &Error{
			Code: CodeConfiguration, Scheme: ageSchemeName,
			Reason: "starting encryption", Err: err,
		}
	}
	envelope := append(contextBinding(ageDomain, ctx), plaintext...)
	if _, err := writer.Write(envelope); err != nil {
		return Artifacts{}, &Error{
			Code: CodeConfiguration, Scheme: ageSchemeName,
			Reason: "writing envelope", Err: err,
		}
	}
	if err := writer.Close(); err != nil {
		return Artifacts{}, &Error{
			Code: CodeConfiguration, Scheme: ageSchemeName,
			Reason: "finalizing encryption", Err: err,
		}
	}
	return Artifacts{Sealed: sealed.Bytes()}, nil
}

// Open implements Strategy.
func (a *AgeX25519) Open(artifacts Artifacts, ctx Context) ([]byte, error) {
	if a.identity == nil {
		return nil, configurationError(ageSchemeName, "no identity configured")
	}

	reader, err := age.Decrypt(bytes.NewReader(artifacts.Sealed), a.identity)
	if err != nil {
		return nil, integrityError(ageSchemeName, "decryption failed", err)
	}
	envelope, err := io.ReadAll(reader)
	if err != nil {
		return nil, integrityError(ageSchemeName, "reading envelope", err)
	}

	preamble := contextBinding(ageDomain, ctx)
	if !bytes.HasPrefix(envelope, preamble) {
		return nil, integrityError(ageSchemeName, "context mismatch", nil)
	}
	return envelope[len(preamble):], nil
}

// SchemeName implements Strategy.
func (a *AgeX25519) SchemeName() string { return ageSchemeName }

// AlgorithmID implements HashStrategy.
func (a *AgeX25519) AlgorithmID() string { return ageAlgorithmID }
