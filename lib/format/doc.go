// Copyright 2026 The Wavemark Authors
// SPDX-License-Identifier: Apache-2.0

// Package format assembles complete watermark payloads: it ties the
// payload builder, the sealing mode, and the frame codec into one
// pipeline that runs in a fixed order — finalize fields, serialize,
// seal, frame.
//
// Typical use:
//
//	output, err := format.NewBuilder().
//		AccountID("acct_demo").
//		TextField("content.title", "Demo Track").
//		EncryptionMode(sealing.EncryptedHash(sealing.Config{Strategy: strategy})).
//		EncryptionContext(sealing.Context{ChannelID: "session-01"}).
//		Build()
//
// output.Bytes is ready to hand to an embedder; output.Frame is the
// logical frame that was serialized, for logging or inspection before
// the bytes disappear into a carrier signal.
package format
