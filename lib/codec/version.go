// Copyright 2026 The Wavemark Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import "fmt"

// Version identifies the wire format revision. Major bumps break
// compatibility; minor bumps are additive and tolerated by older
// decoders.
type Version struct {
	Major uint8
	Minor uint8
}

// Latest is the wire version this package emits by default.
var Latest = Version{Major: 1, Minor: 0}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}
