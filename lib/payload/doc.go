// Copyright 2026 The Wavemark Authors
// SPDX-License-Identifier: Apache-2.0

// Package payload defines the logical metadata carried inside a
// watermark payload: validated keys, typed values, and the immutable
// frame that collects them.
//
// Application code assembles a frame through a Builder. Setters are
// chainable and record the first validation failure; Build surfaces it:
//
//	frame, err := payload.NewBuilder().
//		AccountID("acct_demo").
//		TextField("content.title", "Demo Track").
//		IntField("content.duration_seconds", 185).
//		Build()
//
// Build injects a default issued_at timestamp when the caller has not
// set one, so downstream consumers can rely on the field being present.
//
// The types here carry no encoding or cryptographic detail — that lives
// in lib/codec and lib/sealing.
package payload
