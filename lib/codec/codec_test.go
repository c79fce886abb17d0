// Copyright 2026 The Wavemark Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"strings"
	"testing"

	"github.com/wavemark-audio/wavemark/lib/payload"
	"github.com/wavemark-audio/wavemark/lib/sealing"
	"github.com/wavemark-audio/wavemark/lib/secret"
)

// testFrame builds a representative frame with a pinned issued_at so
// encoded bytes are reproducible across calls.
func testFrame(t *testing.T) *payload.Frame {
	t.Helper()
	issued, err := payload.FromUnix(1_700_000_000)
	if err != nil {
		t.Fatalf("FromUnix: %v", err)
	}
	frame, err := payload.NewBuilder().
		AccountID("acct_demo").
		ContentID("track-42").
		IssuedAt(issued).
		TextField("content.title", "Demo Track").
		IntField("content.duration_seconds", 185).
		BoolField("content.preview", true).
		BinaryField("content.digest", []byte{0xde, 0xad, 0xbe, 0xef}).
		Build()
	if err != nil {
		t.Fatalf("building frame: %v", err)
	}
	return frame
}

// testStrategy returns an XChaCha20 strategy over a throwaway key.
func testStrategy(t *testing.T) *sealing.XChaCha20 {
	t.Helper()
	key, err := secret.NewFromBytes(bytes.Repeat([]byte{0x42}, 32))
	if err != nil {
		t.Fatalf("allocating key: %v", err)
	}
	t.Cleanup(func() { key.Close() })
	strategy, err := sealing.NewXChaCha20(key)
	if err != nil {
		t.Fatalf("NewXChaCha20: %v", err)
	}
	return strategy
}

func TestPlaintextRoundtrip(t *testing.T) {
	codec := New(Options{})
	frame := testFrame(t)

	encoded, err := codec.Encode(frame, sealing.Plaintext(), sealing.Context{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if string(encoded[:2]) != "WM" {
		t.Errorf("magic = %q", encoded[:2])
	}
	if encoded[2] != 1 || encoded[3] != 0 {
		t.Errorf("version bytes = %d.%d, want 1.0", encoded[2], encoded[3])
	}

	decoded, err := codec.Decode(encoded, sealing.Context{})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !frame.Equal(decoded) {
		t.Error("decoded frame differs from the original")
	}
}

func TestEncodeIsDeterministic(t *testing.T) {
	codec := New(Options{})
	frame := testFrame(t)

	first, err := codec.Encode(frame, sealing.Plaintext(), sealing.Context{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	second, err := codec.Encode(frame, sealing.Plaintext(), sealing.Context{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("identical frames encoded to different bytes")
	}
}

func TestSealedRoundtrip(t *testing.T) {
	strategy := testStrategy(t)
	registry := sealing.NewRegistry()
	if err := registry.Register(strategy); err != nil {
		t.Fatalf("Register: %v", err)
	}
	codec := New(Options{Strategies: registry})
	frame := testFrame(t)
	ctx := sealing.Context{ChannelID: "session-01"}

	encoded, err := codec.Encode(frame, sealing.EncryptedHash(sealing.Config{Strategy: strategy}), ctx)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	decoded, err := codec.Decode(encoded, ctx)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !frame.Equal(decoded) {
		t.Error("decoded frame differs from the original")
	}

	// A decoder presenting the wrong channel must fail integrity, not
	// produce a frame.
	_, err = codec.Decode(encoded, sealing.Context{ChannelID: "session-02"})
	if !IsCode(err, CodeEncryption) {
		t.Errorf("wrong channel: error = %v, want code %s", err, CodeEncryption)
	}
	// The sealing error survives the codec wrapping.
	if !sealing.IsCode(err, sealing.CodeIntegrity) {
		t.Errorf("underlying error = %v, want sealing code %s", err, sealing.CodeIntegrity)
	}
}

func TestSealedFrameTamperDetection(t *testing.T) {
	strategy := testStrategy(t)
	registry := sealing.NewRegistry()
	if err := registry.Register(strategy); err != nil {
		t.Fatalf("Register: %v", err)
	}
	codec := New(Options{Strategies: registry})
	ctx := sealing.Context{ChannelID: "session-01"}

	encoded, err := codec.Encode(testFrame(t), sealing.EncryptedHash(sealing.Config{Strategy: strategy}), ctx)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	// Flip one byte in the sealed body region (past the fixed header
	// and algorithm id).
	tampered := bytes.Clone(encoded)
	tampered[len(tampered)/2] ^= 0x01
	if _, err := codec.Decode(tampered, ctx); err == nil {
		t.Error("tampered frame decoded successfully")
	}
}

func TestUnknownAlgorithm(t *testing.T) {
	strategy := testStrategy(t)
	encoder := New(Options{})
	ctx := sealing.Context{ChannelID: "session-01"}
	encoded, err := encoder.Encode(testFrame(t), sealing.EncryptedHash(sealing.Config{Strategy: strategy}), ctx)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	// Decoder with an empty registry cannot resolve the strategy.
	decoder := New(Options{})
	if _, err := decoder.Decode(encoded, ctx); !IsCode(err, CodeUnknownAlgorithm) {
		t.Errorf("error = %v, want code %s", err, CodeUnknownAlgorithm)
	}
}

func TestMajorVersionGate(t *testing.T) {
	codec := New(Options{})
	encoded, err := codec.Encode(testFrame(t), sealing.Plaintext(), sealing.Context{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	wrongMajor := bytes.Clone(encoded)
	wrongMajor[2] = 2
	if _, err := codec.Decode(wrongMajor, sealing.Context{}); !IsCode(err, CodeUnsupportedVersion) {
		t.Errorf("major mismatch: error = %v, want code %s", err, CodeUnsupportedVersion)
	}

	// Minor revisions are additive; a newer minor must still decode.
	newerMinor := bytes.Clone(encoded)
	newerMinor[3] = 9
	if _, err := codec.Decode(newerMinor, sealing.Context{}); err != nil {
		t.Errorf("minor mismatch rejected: %v", err)
	}
}

func TestCompressionRoundtrip(t *testing.T) {
	// A long repetitive text value compresses well under both
	// algorithms.
	frame, err := payload.NewBuilder().
		AccountID("acct_demo").
		TextField("notes", strings.Repeat("la", 250)).
		Build()
	if err != nil {
		t.Fatalf("building frame: %v", err)
	}

	for _, tag := range []CompressionTag{CompressionLZ4, CompressionZstd} {
		t.Run(tag.String(), func(t *testing.T) {
			codec := New(Options{Compression: tag})
			encoded, err := codec.Encode(frame, sealing.Plaintext(), sealing.Context{})
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			if CompressionTag(encoded[4]) != tag {
				t.Errorf("header compression tag = %d, want %d", encoded[4], tag)
			}

			decoded, err := codec.Decode(encoded, sealing.Context{})
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if !frame.Equal(decoded) {
				t.Error("decoded frame differs from the original")
			}
		})
	}
}

func TestIncompressibleBodyFallsBackToNone(t *testing.T) {
	// A tiny frame will not shrink under compression; the header must
	// record none so decoders skip decompression.
	frame, err := payload.NewBuilder().AccountID("a").Build()
	if err != nil {
		t.Fatalf("building frame: %v", err)
	}

	codec := New(Options{Compression: CompressionLZ4})
	encoded, err := codec.Encode(frame, sealing.Plaintext(), sealing.Context{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if CompressionTag(encoded[4]) != CompressionNone {
		t.Errorf("header compression tag = %d, want fallback to none", encoded[4])
	}
	if _, err := codec.Decode(encoded, sealing.Context{}); err != nil {
		t.Fatalf("Decode: %v", err)
	}
}

func TestTruncatedInput(t *testing.T) {
	codec := New(Options{})
	encoded, err := codec.Encode(testFrame(t), sealing.Plaintext(), sealing.Context{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	// Every proper prefix must fail cleanly, never panic or decode.
	for length := 0; length < len(encoded); length++ {
		if _, err := codec.Decode(encoded[:length], sealing.Context{}); err == nil {
			t.Errorf("prefix of %d bytes decoded successfully", length)
		}
	}

	if _, err := codec.Decode(encoded[:5], sealing.Context{}); !IsCode(err, CodeTruncated) {
		t.Errorf("5-byte prefix: error = %v, want code %s", err, CodeTruncated)
	}
}

func TestTrailingBytesTolerated(t *testing.T) {
	codec := New(Options{})
	frame := testFrame(t)
	encoded, err := codec.Encode(frame, sealing.Plaintext(), sealing.Context{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	padded := append(bytes.Clone(encoded), 0x00, 0x00, 0x00)
	decoded, err := codec.Decode(padded, sealing.Context{})
	if err != nil {
		t.Fatalf("Decode with trailing padding: %v", err)
	}
	if !frame.Equal(decoded) {
		t.Error("decoded frame differs from the original")
	}
}

func TestBadMagic(t *testing.T) {
	codec := New(Options{})
	encoded, err := codec.Encode(testFrame(t), sealing.Plaintext(), sealing.Context{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	encoded[0] = 'X'
	if _, err := codec.Decode(encoded, sealing.Context{}); !IsCode(err, CodeInvalidHeader) {
		t.Errorf("error = %v, want code %s", err, CodeInvalidHeader)
	}
}

func TestMessageSizeCap(t *testing.T) {
	small := New(Options{MaxMessageBytes: 16})
	big := New(Options{})
	encoded, err := big.Encode(testFrame(t), sealing.Plaintext(), sealing.Context{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if _, err := small.Decode(encoded, sealing.Context{}); !IsCode(err, CodeOversized) {
		t.Errorf("error = %v, want code %s", err, CodeOversized)
	}
}

func TestRequireSealedRejectsPlaintext(t *testing.T) {
	strict := New(Options{RequireSealed: true})
	relaxed := New(Options{})
	encoded, err := relaxed.Encode(testFrame(t), sealing.Plaintext(), sealing.Context{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if _, err := strict.Decode(encoded, sealing.Context{}); !IsCode(err, CodeEncryption) {
		t.Errorf("error = %v, want code %s", err, CodeEncryption)
	}
}

func TestDecodeReenforcesLimits(t *testing.T) {
	// A frame legal under loose limits must be rejected by a decoder
	// running the defaults.
	looseLimits := payload.Limits{MaxTextBytes: 2048}
	frame, err := payload.NewBuilderWithLimits(looseLimits).
		AccountID("acct_demo").
		TextField("notes", strings.Repeat("x", 1000)).
		Build()
	if err != nil {
		t.Fatalf("building frame: %v", err)
	}

	loose := New(Options{Limits: looseLimits})
	encoded, err := loose.Encode(frame, sealing.Plaintext(), sealing.Context{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	strict := New(Options{})
	_, decodeErr := strict.Decode(encoded, sealing.Context{})
	if !IsCode(decodeErr, CodePayload) {
		t.Errorf("error = %v, want code %s", decodeErr, CodePayload)
	}
	// The payload error is reachable through the codec error.
	if !payload.IsCode(decodeErr, payload.CodeOversizedValue) {
		t.Errorf("underlying error = %v, want payload code %s", decodeErr, payload.CodeOversizedValue)
	}
}

func TestEncodeRejectsFrameOverCodecLimits(t *testing.T) {
	looseLimits := payload.Limits{MaxTextBytes: 2048}
	frame, err := payload.NewBuilderWithLimits(looseLimits).
		AccountID("acct_demo").
		TextField("notes", strings.Repeat("x", 1000)).
		Build()
	if err != nil {
		t.Fatalf("building frame: %v", err)
	}

	strict := New(Options{})
	if _, err := strict.Encode(frame, sealing.Plaintext(), sealing.Context{}); !IsCode(err, CodePayload) {
		t.Errorf("error = %v, want code %s", err, CodePayload)
	}
}
