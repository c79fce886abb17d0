// Copyright 2026 The Wavemark Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"errors"
	"fmt"
)

// ErrorCode classifies codec failures.
type ErrorCode string

const (
	// CodeTruncated: the input ended before a complete frame.
	CodeTruncated ErrorCode = "truncated"

	// CodeInvalidHeader: the magic, reserved byte, compression tag, or
	// algorithm id field is malformed.
	CodeInvalidHeader ErrorCode = "invalid_header"

	// CodeInvalidBody: the body is not well-formed CBOR or carries an
	// unknown value kind.
	CodeInvalidBody ErrorCode = "invalid_body"

	// CodeUnsupportedVersion: the frame's major version differs from
	// the decoder's. Raised before any unsealing work.
	CodeUnsupportedVersion ErrorCode = "unsupported_version"

	// CodeUnknownAlgorithm: no strategy is registered for the frame's
	// algorithm id.
	CodeUnknownAlgorithm ErrorCode = "unknown_algorithm"

	// CodeOversized: the input or its declared body size exceeds the
	// configured message cap.
	CodeOversized ErrorCode = "oversized"

	// CodeEncryption: sealing or unsealing failed. The underlying
	// *sealing.Error is reachable through Unwrap.
	CodeEncryption ErrorCode = "encryption"

	// CodePayload: the decoded fields violate payload invariants, or
	// the frame handed to Encode does under the codec's limits. The
	// underlying *payload.Error is reachable through Unwrap.
	CodePayload ErrorCode = "payload"
)

// Error is the single error type returned by Encode and Decode.
type Error struct {
	Code   ErrorCode
	Reason string
	Err    error
}

func (e *Error) Error() string {
	message := fmt.Sprintf("codec: %s: %s", e.Code, e.Reason)
	if e.Err != nil {
		message += ": " + e.Err.Error()
	}
	return message
}

func (e *Error) Unwrap() error { return e.Err }

// IsCode reports whether err is a *codec.Error with the given code.
func IsCode(err error, code ErrorCode) bool {
	var codecErr *Error
	if errors.As(err, &codecErr) {
		return codecErr.Code == code
	}
	return false
}
