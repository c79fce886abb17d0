// Copyright 2026 The Wavemark Authors
// SPDX-License-Identifier: Apache-2.0

package sealing

import (
	"errors"
	"fmt"
)

// ErrorCode classifies sealing failures.
type ErrorCode string

const (
	// CodeConfiguration: required key material or configuration is
	// missing or malformed. Surfaced at Seal time (or when a Mode is
	// resolved); retrying without fixing the configuration cannot
	// succeed.
	CodeConfiguration ErrorCode = "configuration"

	// CodeIntegrity: the sealed bytes, artifacts, or context failed
	// authentication at Open time. Any tampering — a single flipped
	// bit anywhere — produces this code, never a silently wrong
	// payload.
	CodeIntegrity ErrorCode = "integrity"

	// CodeRejectedPayload: the strategy refused the input payload
	// itself (size or shape).
	CodeRejectedPayload ErrorCode = "rejected_payload"
)

// Error is the single error type returned by sealing strategies.
type Error struct {
	Code   ErrorCode
	Scheme string
	Reason string
	Err    error
}

func (e *Error) Error() string {
	message := fmt.Sprintf("sealing: %s: %s: %s", e.Scheme, e.Code, e.Reason)
	if e.Err != nil {
		message += ": " + e.Err.Error()
	}
	return message
}

func (e *Error) Unwrap() error { return e.Err }

// IsCode reports whether err is a *sealing.Error with the given code.
func IsCode(err error, code ErrorCode) bool {
	var sealingErr *Error
	if errors.As(err, &sealingErr) {
		return sealingErr.Code == code
	}
	return false
}

func configurationError(scheme, reason string) *Error {
	return &Error{Code: CodeConfiguration, Scheme: scheme, Reason: reason}
}

func integrityError(scheme, reason string, cause error) *Error {
	return &Error{Code: CodeIntegrity, Scheme: scheme, Reason: reason, Err: cause}
}
