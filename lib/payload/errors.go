// Copyright 2026 The Wavemark Authors
// SPDX-License-Identifier: Apache-2.0

package payload

import (
	"errors"
	"fmt"
)

// ErrorCode classifies schema violations. Callers extract the code via
// errors.As or the IsCode helper:
//
//	var payloadErr *payload.Error
//	if errors.As(err, &payloadErr) {
//	    if payloadErr.Code == payload.CodeTooManyFields { ... }
//	}
type ErrorCode string

const (
	// CodeInvalidKey: the key is empty, too long, outside the allowed
	// charset, or carries a value of the wrong kind for a well-known
	// field.
	CodeInvalidKey ErrorCode = "invalid_key"

	// CodeTooManyFields: inserting a new key would exceed the frame's
	// field cap.
	CodeTooManyFields ErrorCode = "too_many_fields"

	// CodeOversizedValue: a text or binary value exceeds the configured
	// size limit.
	CodeOversizedValue ErrorCode = "oversized_value"

	// CodeInvalidAccountID: the account identifier is empty, too long,
	// or contains characters outside A-Za-z0-9_-.
	CodeInvalidAccountID ErrorCode = "invalid_account_id"

	// CodeInvalidTimestamp: the epoch-second value falls outside the
	// representable range.
	CodeInvalidTimestamp ErrorCode = "invalid_timestamp"
)

// Error is the single error type returned by schema validation. The
// offending key is included when known.
type Error struct {
	Code   ErrorCode
	Key    string
	Reason string
}

func (e *Error) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("payload: %s: key %q: %s", e.Code, e.Key, e.Reason)
	}
	return fmt.Sprintf("payload: %s: %s", e.Code, e.Reason)
}

// IsCode reports whether err is a *payload.Error with the given code.
func IsCode(err error, code ErrorCode) bool {
	var payloadErr *Error
	if errors.As(err, &payloadErr) {
		return payloadErr.Code == code
	}
	return false
}
