// Copyright 2026 The Wavemark Authors
// SPDX-License-Identifier: Apache-2.0

package payload

import "fmt"

// maxAccountIDBytes caps account identifiers. Protocol constant.
const maxAccountIDBytes = 64

// AccountID identifies the watermark operator account a payload was
// issued for. The zero value is invalid; construct with ParseAccountID.
type AccountID struct {
	id string
}

// ParseAccountID validates an account identifier: non-empty, at most 64
// bytes, characters restricted to ASCII letters, digits, '_', and '-'.
func ParseAccountID(id string) (AccountID, error) {
	if id == "" {
		return AccountID{}, &Error{
			Code:   CodeInvalidAccountID,
			Reason: "account identifier is empty",
		}
	}
	if len(id) > maxAccountIDBytes {
		return AccountID{}, &Error{
			Code:   CodeInvalidAccountID,
			Reason: fmt.Sprintf("account identifier is %d bytes, maximum is %d", len(id), maxAccountIDBytes),
		}
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '_' || c == '-':
		default:
			return AccountID{}, &Error{
				Code:   CodeInvalidAccountID,
				Reason: fmt.Sprintf("invalid character %q at position %d (allowed: A-Za-z0-9_-)", c, i),
			}
		}
	}
	return AccountID{id: id}, nil
}

// String returns the identifier.
func (a AccountID) String() string { return a.id }

// IsZero reports whether the account ID is the invalid zero value.
func (a AccountID) IsZero() bool { return a.id == "" }
