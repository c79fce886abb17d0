// Copyright 2026 The Wavemark Authors
// SPDX-License-Identifier: Apache-2.0

package payload

import (
	"testing"
	"time"

	"github.com/wavemark-audio/wavemark/lib/clock"
)

func TestFromUnixRange(t *testing.T) {
	accepted := []int64{0, 1_700_000_000, minTimestampSeconds, maxTimestampSeconds, -1}
	for _, seconds := range accepted {
		ts, err := FromUnix(seconds)
		if err != nil {
			t.Errorf("FromUnix(%d): %v", seconds, err)
			continue
		}
		if ts.Unix() != seconds {
			t.Errorf("FromUnix(%d).Unix() = %d", seconds, ts.Unix())
		}
	}

	rejected := []int64{minTimestampSeconds - 1, maxTimestampSeconds + 1}
	for _, seconds := range rejected {
		if _, err := FromUnix(seconds); err == nil {
			t.Errorf("FromUnix(%d) succeeded, want error", seconds)
		} else if !IsCode(err, CodeInvalidTimestamp) {
			t.Errorf("FromUnix(%d) error = %v, want code %s", seconds, err, CodeInvalidTimestamp)
		}
	}
}

func TestNowUsesInjectedClock(t *testing.T) {
	pinned := time.Date(2026, 3, 1, 12, 0, 0, 500_000_000, time.UTC)
	ts := Now(clock.Fake(pinned))

	if ts.Unix() != pinned.Unix() {
		t.Errorf("Now().Unix() = %d, want %d", ts.Unix(), pinned.Unix())
	}
}

func TestTimestampTimeRoundtrip(t *testing.T) {
	ts, err := FromUnix(1_700_000_000)
	if err != nil {
		t.Fatalf("FromUnix: %v", err)
	}
	back, err := FromTime(ts.Time())
	if err != nil {
		t.Fatalf("FromTime: %v", err)
	}
	if back != ts {
		t.Errorf("roundtrip mismatch: %v vs %v", back, ts)
	}
}

func TestTimestampOrdering(t *testing.T) {
	earlier, _ := FromUnix(100)
	later, _ := FromUnix(200)

	if !earlier.Before(later) {
		t.Error("earlier.Before(later) = false")
	}
	if !later.After(earlier) {
		t.Error("later.After(earlier) = false")
	}
	if earlier.After(later) || later.Before(earlier) {
		t.Error("ordering inverted")
	}
}
