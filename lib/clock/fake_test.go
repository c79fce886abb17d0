// Copyright 2026 The Wavemark Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"testing"
	"time"
)

func TestFakeClockStandsStill(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c := Fake(start)

	if !c.Now().Equal(start) {
		t.Errorf("Now() = %v, want %v", c.Now(), start)
	}
	if !c.Now().Equal(start) {
		t.Error("fake clock moved between calls")
	}
}

func TestFakeClockAdvance(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c := Fake(start)

	c.Advance(90 * time.Second)

	want := start.Add(90 * time.Second)
	if !c.Now().Equal(want) {
		t.Errorf("Now() after Advance = %v, want %v", c.Now(), want)
	}
}

func TestFakeClockSet(t *testing.T) {
	c := Fake(time.Unix(0, 0))
	target := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	c.Set(target)

	if !c.Now().Equal(target) {
		t.Errorf("Now() after Set = %v, want %v", c.Now(), target)
	}
}

func TestRealClockTracksWallTime(t *testing.T) {
	before := time.Now()
	observed := Real().Now()
	after := time.Now()

	if observed.Before(before) || observed.After(after) {
		t.Errorf("Real().Now() = %v, want within [%v, %v]", observed, before, after)
	}
}
