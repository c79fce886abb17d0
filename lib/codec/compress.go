// Copyright 2026 The Wavemark Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// CompressionTag identifies the compression applied to the frame body.
// The tag travels in the header (1 byte); changing a value breaks wire
// compatibility.
type CompressionTag uint8

const (
	// CompressionNone leaves the body uncompressed. Watermark bodies
	// are small; this is the default.
	CompressionNone CompressionTag = 0

	// CompressionLZ4 applies LZ4 block compression. Cheap enough to
	// run on every encode when capacity in the carrier is tight.
	CompressionLZ4 CompressionTag = 1

	// CompressionZstd applies zstd at the default level. Better ratio
	// on text-heavy payloads.
	CompressionZstd CompressionTag = 2
)

// String returns the human-readable name of a compression tag.
func (tag CompressionTag) String() string {
	switch tag {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZstd:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", tag)
	}
}

// ParseCompressionTag parses a compression tag from its string
// representation.
func ParseCompressionTag(name string) (CompressionTag, error) {
	switch name {
	case "none":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd":
		return CompressionZstd, nil
	default:
		return 0, fmt.Errorf("unknown compression tag: %q", name)
	}
}

// errIncompressible signals that compression would not shrink the
// body; the caller falls back to CompressionNone.
var errIncompressible = errors.New("codec: body is incompressible")

// zstdEncoder and zstdDecoder are reused across calls. Both are safe
// for concurrent use.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("codec: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("codec: zstd decoder initialization failed: " + err.Error())
	}
}

// compressBody compresses the body with the requested tag, falling
// back to CompressionNone when the output would not shrink. Returns
// the body to put on the wire and the tag actually applied.
func compressBody(body []byte, tag CompressionTag) ([]byte, CompressionTag, error) {
	switch tag {
	case CompressionNone:
		return body, CompressionNone, nil

	case CompressionLZ4:
		compressed, err := compressLZ4(body)
		if errors.Is(err, errIncompressible) {
			return body, CompressionNone, nil
		}
		if err != nil {
			return nil, 0, err
		}
		return compressed, CompressionLZ4, nil

	case CompressionZstd:
		compressed := zstdEncoder.EncodeAll(body, nil)
		if len(compressed) >= len(body) {
			return body, CompressionNone, nil
		}
		return compressed, CompressionZstd, nil

	default:
		return nil, 0, fmt.Errorf("unsupported compression tag: %d", tag)
	}
}

// decompressBody reverses compressBody. The uncompressedSize comes
// from the frame header and must match the output length exactly.
func decompressBody(compressed []byte, tag CompressionTag, uncompressedSize int) ([]byte, error) {
	switch tag {
	case CompressionNone:
		if len(compressed) != uncompressedSize {
			return nil, fmt.Errorf("uncompressed body: size %d does not match declared %d",
				len(compressed), uncompressedSize)
		}
		return compressed, nil

	case CompressionLZ4:
		return decompressLZ4(compressed, uncompressedSize)

	case CompressionZstd:
		result, err := zstdDecoder.DecodeAll(compressed, make([]byte, 0, uncompressedSize))
		if err != nil {
			return nil, fmt.Errorf("zstd decompress: %w", err)
		}
		if len(result) != uncompressedSize {
			return nil, fmt.Errorf("zstd decompress: got %d bytes, expected %d",
				len(result), uncompressedSize)
		}
		return result, nil

	default:
		return nil, fmt.Errorf("unsupported compression tag: %d", tag)
	}
}

func compressLZ4(body []byte) ([]byte, error) {
	destination := make([]byte, lz4.CompressBlockBound(len(body)))
	written, err := lz4.CompressBlock(body, destination, nil)
	if err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}
	// CompressBlock returns 0 when the data is incompressible; also
	// fall back when the output would not actually shrink.
	if written == 0 || written >= len(body) {
		return nil, errIncompressible
	}
	return destination[:written], nil
}

func decompressLZ4(compressed []byte, uncompressedSize int) ([]byte, error) {
	destination := make([]byte, uncompressedSize)
	read, err := lz4.UncompressBlock(compressed, destination)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompress: %w", err)
	}
	if read != uncompressedSize {
		return nil, fmt.Errorf("lz4 decompress: got %d bytes, expected %d", read, uncompressedSize)
	}
	return destination, nil
}
