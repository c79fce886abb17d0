// Copyright 2026 The Wavemark Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/wavemark-audio/wavemark/lib/payload"
	"github.com/wavemark-audio/wavemark/lib/sealing"
)

// frameMagic opens every encoded frame.
const frameMagic = "WM"

// plaintextAlgorithmID is the algorithm id written for unsealed frames.
const plaintextAlgorithmID = "plaintext"

// DefaultMaxMessageBytes caps decode input size (and the declared
// uncompressed body size) when Options.MaxMessageBytes is zero.
const DefaultMaxMessageBytes = 64 << 10

// Options configures a Codec. The zero value is usable: latest
// version, default payload limits, no registered strategies, 64 KiB
// message cap, no compression.
type Options struct {
	// Version is the wire version written by Encode.
	Version Version

	// Limits are the payload bounds enforced on both encode and
	// decode. Zero fields fall back to payload.DefaultLimits.
	Limits payload.Limits

	// Strategies resolves algorithm ids to strategies during decode.
	// A nil registry decodes plaintext frames only.
	Strategies *sealing.Registry

	// MaxMessageBytes rejects oversized input before any parsing, and
	// bounds the declared uncompressed body size against decompression
	// bombs. Zero means DefaultMaxMessageBytes.
	MaxMessageBytes int

	// Compression is applied to the body on encode. Incompressible
	// bodies silently fall back to none; the header records what was
	// actually applied.
	Compression CompressionTag

	// RequireSealed makes Decode reject plaintext frames. For
	// deployments where an unsealed watermark is a policy violation,
	// not a degraded mode.
	RequireSealed bool
}

// Codec encodes and decodes watermark frames. Safe for concurrent use.
type Codec struct {
	options Options
}

// New returns a codec with zero option fields replaced by defaults.
func New(options Options) *Codec {
	if options.Version == (Version{}) {
		options.Version = Latest
	}
	// Zero Limits fields are normalized to defaults inside
	// payload.NewFrame on both paths.
	if options.Strategies == nil {
		options.Strategies = sealing.NewRegistry()
	}
	if options.MaxMessageBytes <= 0 {
		options.MaxMessageBytes = DefaultMaxMessageBytes
	}
	return &Codec{options: options}
}

// Encode serializes the frame, sealing it per mode. The context is
// required for sealed modes and ignored for plaintext.
func (c *Codec) Encode(frame *payload.Frame, mode sealing.Mode, ctx sealing.Context) ([]byte, error) {
	if frame == nil {
		return nil, &Error{Code: CodePayload, Reason: "nil frame"}
	}
	// Revalidate under the codec's limits: a frame built with looser
	// limits must not reach the wire.
	if _, err := payload.NewFrame(frame.Fields(), c.options.Limits); err != nil {
		return nil, &Error{Code: CodePayload, Reason: "frame violates codec limits", Err: err}
	}

	body, err := marshalBody(frame)
	if err != nil {
		return nil, &Error{Code: CodeInvalidBody, Reason: "serializing body", Err: err}
	}
	plainSize := len(body)

	compressed, appliedTag, err := compressBody(body, c.options.Compression)
	if err != nil {
		return nil, &Error{Code: CodeInvalidHeader, Reason: "compressing body", Err: err}
	}

	algorithmID := plaintextAlgorithmID
	artifacts := sealing.Artifacts{Sealed: compressed}
	if !mode.IsPlaintext() {
		strategy, err := mode.Resolve()
		if err != nil {
			return nil, &Error{Code: CodeEncryption, Reason: "resolving sealing mode", Err: err}
		}
		algorithmID = strategy.AlgorithmID()
		artifacts, err = strategy.Seal(compressed, ctx)
		if err != nil {
			return nil, &Error{Code: CodeEncryption, Reason: "sealing body", Err: err}
		}
	}

	return assemble(c.options.Version, appliedTag, algorithmID, plainSize, artifacts)
}

// Decode parses and validates an encoded frame, unsealing it when the
// header names a registered strategy. The context must match the one
// the frame was sealed with.
func (c *Codec) Decode(data []byte, ctx sealing.Context) (*payload.Frame, error) {
	if len(data) > c.options.MaxMessageBytes {
		return nil, &Error{Code: CodeOversized,
			Reason: fmt.Sprintf("input is %d bytes, cap is %d", len(data), c.options.MaxMessageBytes)}
	}

	header, err := parseHeader(data)
	if err != nil {
		return nil, err
	}

	// The version gate comes before any unsealing: a frame from an
	// incompatible major revision must not reach key material.
	if header.version.Major != c.options.Version.Major {
		return nil, &Error{Code: CodeUnsupportedVersion,
			Reason: fmt.Sprintf("frame version %s, decoder handles major %d",
				header.version, c.options.Version.Major)}
	}
	if header.plainSize > c.options.MaxMessageBytes {
		return nil, &Error{Code: CodeOversized,
			Reason: fmt.Sprintf("declared body size %d exceeds cap %d",
				header.plainSize, c.options.MaxMessageBytes)}
	}

	var compressed []byte
	if header.algorithmID == plaintextAlgorithmID {
		if c.options.RequireSealed {
			return nil, &Error{Code: CodeEncryption, Reason: "plaintext frame rejected, sealing required"}
		}
		compressed = header.artifacts.Sealed
	} else {
		strategy, ok := c.options.Strategies.Lookup(header.algorithmID)
		if !ok {
			return nil, &Error{Code: CodeUnknownAlgorithm,
				Reason: fmt.Sprintf("no strategy registered for %q", header.algorithmID)}
		}
		compressed, err = strategy.Open(header.artifacts, ctx)
		if err != nil {
			return nil, &Error{Code: CodeEncryption, Reason: "unsealing body", Err: err}
		}
	}

	body, err := decompressBody(compressed, header.compression, header.plainSize)
	if err != nil {
		return nil, &Error{Code: CodeInvalidBody, Reason: "decompressing body", Err: err}
	}

	fields, err := unmarshalBody(body)
	if err != nil {
		return nil, err
	}
	frame, err := payload.NewFrame(fields, c.options.Limits)
	if err != nil {
		return nil, &Error{Code: CodePayload, Reason: "decoded fields violate payload invariants", Err: err}
	}
	return frame, nil
}

// wireField is one field record in the CBOR body. The value lives in
// the member matching the kind tag; the others stay at their zero
// value and are dropped by omitempty.
type wireField struct {
	Key     string `cbor:"k"`
	Kind    uint8  `cbor:"t"`
	Text    string `cbor:"s,omitempty"`
	Integer int64  `cbor:"i,omitempty"`
	Bool    bool   `cbor:"b,omitempty"`
	Binary  []byte `cbor:"d,omitempty"`
}

func marshalBody(frame *payload.Frame) ([]byte, error) {
	records := make([]wireField, 0, frame.Len())
	for _, field := range frame.Fields() {
		record := wireField{Key: field.Key.String(), Kind: uint8(field.Value.Kind())}
		switch field.Value.Kind() {
		case payload.KindText:
			record.Text, _ = field.Value.Text()
		case payload.KindAccount:
			account, _ := field.Value.Account()
			record.Text = account.String()
		case payload.KindInteger:
			record.Integer, _ = field.Value.Int()
		case payload.KindTimestamp:
			ts, _ := field.Value.Timestamp()
			record.Integer = ts.Unix()
		case payload.KindBool:
			record.Bool, _ = field.Value.Bool()
		case payload.KindBinary:
			record.Binary, _ = field.Value.Binary()
		default:
			return nil, fmt.Errorf("field %q has unknown kind %d", record.Key, record.Kind)
		}
		records = append(records, record)
	}
	return encMode.Marshal(records)
}

func unmarshalBody(body []byte) ([]payload.Field, error) {
	var records []wireField
	if err := decMode.Unmarshal(body, &records); err != nil {
		return nil, &Error{Code: CodeInvalidBody, Reason: "parsing body", Err: err}
	}

	fields := make([]payload.Field, 0, len(records))
	for _, record := range records {
		key, err := payload.ParseKey(record.Key)
		if err != nil {
			return nil, &Error{Code: CodePayload,
				Reason: fmt.Sprintf("field key %q", record.Key), Err: err}
		}

		var value payload.Value
		switch payload.Kind(record.Kind) {
		case payload.KindText:
			value = payload.NewText(record.Text)
		case payload.KindAccount:
			account, err := payload.ParseAccountID(record.Text)
			if err != nil {
				return nil, &Error{Code: CodePayload,
					Reason: fmt.Sprintf("field %q account value", record.Key), Err: err}
			}
			value = payload.NewAccount(account)
		case payload.KindInteger:
			value = payload.NewInt(record.Integer)
		case payload.KindTimestamp:
			ts, err := payload.FromUnix(record.Integer)
			if err != nil {
				return nil, &Error{Code: CodePayload,
					Reason: fmt.Sprintf("field %q timestamp value", record.Key), Err: err}
			}
			value = payload.NewTimestamp(ts)
		case payload.KindBool:
			value = payload.NewBool(record.Bool)
		case payload.KindBinary:
			value = payload.NewBinary(record.Binary)
		default:
			return nil, &Error{Code: CodeInvalidBody,
				Reason: fmt.Sprintf("field %q has unknown kind tag %d", record.Key, record.Kind)}
		}
		fields = append(fields, payload.Field{Key: key, Value: value})
	}
	return fields, nil
}

// assemble lays out the final frame bytes.
func assemble(version Version, compression CompressionTag, algorithmID string, plainSize int, artifacts sealing.Artifacts) ([]byte, error) {
	if len(algorithmID) > math.MaxUint8 {
		return nil, &Error{Code: CodeInvalidHeader,
			Reason: fmt.Sprintf("algorithm id is %d bytes, max %d", len(algorithmID), math.MaxUint8)}
	}
	if uint64(len(artifacts.Sealed)) > math.MaxUint32 || uint64(plainSize) > math.MaxUint32 {
		return nil, &Error{Code: CodeOversized, Reason: "body exceeds u32 size field"}
	}
	if len(artifacts.Tag) > math.MaxUint16 {
		return nil, &Error{Code: CodeOversized, Reason: "tag exceeds u16 size field"}
	}
	if len(artifacts.Metadata) > math.MaxUint16 {
		return nil, &Error{Code: CodeOversized, Reason: "metadata exceeds u16 size field"}
	}

	var out bytes.Buffer
	out.WriteString(frameMagic)
	out.WriteByte(version.Major)
	out.WriteByte(version.Minor)
	out.WriteByte(byte(compression))
	out.WriteByte(0) // reserved
	out.WriteByte(byte(len(algorithmID)))
	out.WriteString(algorithmID)

	var scratch [4]byte
	binary.LittleEndian.PutUint32(scratch[:], uint32(plainSize))
	out.Write(scratch[:])

	binary.LittleEndian.PutUint32(scratch[:], uint32(len(artifacts.Sealed)))
	out.Write(scratch[:])
	out.Write(artifacts.Sealed)

	binary.LittleEndian.PutUint16(scratch[:2], uint16(len(artifacts.Tag)))
	out.Write(scratch[:2])
	out.Write(artifacts.Tag)

	binary.LittleEndian.PutUint16(scratch[:2], uint16(len(artifacts.Metadata)))
	out.Write(scratch[:2])
	out.Write(artifacts.Metadata)

	return out.Bytes(), nil
}

// parsedHeader is the fully parsed wire frame.
type parsedHeader struct {
	version     Version
	compression CompressionTag
	algorithmID string
	plainSize   int
	artifacts   sealing.Artifacts
}

func parseHeader(data []byte) (parsedHeader, error) {
	var header parsedHeader

	// Fixed prefix through the algorithm id length byte.
	if len(data) < 7 {
		return header, &Error{Code: CodeTruncated, Reason: "input shorter than fixed header"}
	}
	if string(data[:2]) != frameMagic {
		return header, &Error{Code: CodeInvalidHeader,
			Reason: fmt.Sprintf("bad magic %q", data[:2])}
	}
	header.version = Version{Major: data[2], Minor: data[3]}
	header.compression = CompressionTag(data[4])
	switch header.compression {
	case CompressionNone, CompressionLZ4, CompressionZstd:
	default:
		return header, &Error{Code: CodeInvalidHeader,
			Reason: fmt.Sprintf("unknown compression tag %d", data[4])}
	}

	algorithmIDLength := int(data[6])
	cursor := 7
	if len(data) < cursor+algorithmIDLength {
		return header, &Error{Code: CodeTruncated, Reason: "input ends inside algorithm id"}
	}
	header.algorithmID = string(data[cursor : cursor+algorithmIDLength])
	if header.algorithmID == "" {
		return header, &Error{Code: CodeInvalidHeader, Reason: "empty algorithm id"}
	}
	cursor += algorithmIDLength

	if len(data) < cursor+8 {
		return header, &Error{Code: CodeTruncated, Reason: "input ends inside size fields"}
	}
	header.plainSize = int(binary.LittleEndian.Uint32(data[cursor:]))
	cursor += 4

	sealedLength := int(binary.LittleEndian.Uint32(data[cursor:]))
	cursor += 4
	if len(data) < cursor+sealedLength {
		return header, &Error{Code: CodeTruncated, Reason: "input ends inside sealed body"}
	}
	header.artifacts.Sealed = data[cursor : cursor+sealedLength]
	cursor += sealedLength

	if len(data) < cursor+2 {
		return header, &Error{Code: CodeTruncated, Reason: "input ends before tag length"}
	}
	tagLength := int(binary.LittleEndian.Uint16(data[cursor:]))
	cursor += 2
	if len(data) < cursor+tagLength {
		return header, &Error{Code: CodeTruncated, Reason: "input ends inside tag"}
	}
	header.artifacts.Tag = data[cursor : cursor+tagLength]
	cursor += tagLength

	if len(data) < cursor+2 {
		return header, &Error{Code: CodeTruncated, Reason: "input ends before metadata length"}
	}
	metadataLength := int(binary.LittleEndian.Uint16(data[cursor:]))
	cursor += 2
	if len(data) < cursor+metadataLength {
		return header, &Error{Code: CodeTruncated, Reason: "input ends inside metadata"}
	}
	header.artifacts.Metadata = data[cursor : cursor+metadataLength]

	// Trailing bytes after the frame are tolerated: carriers may pad
	// the embedding slot.
	return header, nil
}
