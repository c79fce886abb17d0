// Copyright 2026 The Wavemark Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import "time"

// Clock abstracts wall-clock capture for testability. Every production
// code path that needs the current time accepts a Clock (or sits on a
// struct holding one) instead of calling time.Now directly.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}
