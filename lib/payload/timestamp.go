// Copyright 2026 The Wavemark Authors
// SPDX-License-Identifier: Apache-2.0

package payload

import (
	"fmt"
	"time"

	"github.com/wavemark-audio/wavemark/lib/clock"
)

// Timestamp range accepted by the payload format: roughly 100 years
// before the Unix epoch up to the year 9999. These are protocol
// constants — both the builder and the codec's decode path enforce them.
const (
	minTimestampSeconds = -3_155_760_000
	maxTimestampSeconds = 253_402_300_800
)

// Timestamp is a validated second count relative to the Unix epoch.
// The zero value is the epoch itself.
type Timestamp struct {
	seconds int64
}

// Now captures the current wall-clock time from the given clock,
// truncated to whole seconds.
func Now(c clock.Clock) Timestamp {
	return Timestamp{seconds: c.Now().Unix()}
}

// FromUnix constructs a timestamp from epoch seconds, rejecting values
// outside the supported range.
func FromUnix(seconds int64) (Timestamp, error) {
	if seconds < minTimestampSeconds || seconds > maxTimestampSeconds {
		return Timestamp{}, &Error{
			Code:   CodeInvalidTimestamp,
			Reason: fmt.Sprintf("%d seconds is outside the supported range [%d, %d]", seconds, int64(minTimestampSeconds), int64(maxTimestampSeconds)),
		}
	}
	return Timestamp{seconds: seconds}, nil
}

// FromTime constructs a timestamp from a time.Time, truncated to whole
// seconds.
func FromTime(t time.Time) (Timestamp, error) {
	return FromUnix(t.Unix())
}

// Unix returns the epoch-second value.
func (t Timestamp) Unix() int64 { return t.seconds }

// Time returns the timestamp as a UTC time.Time.
func (t Timestamp) Time() time.Time { return time.Unix(t.seconds, 0).UTC() }

// Before reports whether t precedes other.
func (t Timestamp) Before(other Timestamp) bool { return t.seconds < other.seconds }

// After reports whether t follows other.
func (t Timestamp) After(other Timestamp) bool { return t.seconds > other.seconds }

func (t Timestamp) String() string { return t.Time().Format(time.RFC3339) }
