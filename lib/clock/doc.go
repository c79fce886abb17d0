// Copyright 2026 The Wavemark Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable wall-clock abstraction.
//
// The payload builder stamps frames with an issued-at timestamp when the
// caller does not supply one. Capturing that time through a Clock instead
// of calling time.Now directly lets tests pin the clock and assert exact
// timestamp values.
//
// Production code injects Real(); tests inject Fake() and drive it with
// Set or Advance:
//
//	c := clock.Fake(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
//	builder := payload.NewBuilder().WithClock(c)
package clock
