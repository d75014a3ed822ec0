// Copyright 2016 Daniel C. Brotsky.  All rights reserved.

package puzzle

import (
	"testing"
)

func TestDirectionNames(t *testing.T) {
	type testcase struct {
		d    Direction
		name string
	}
	tcs := []testcase{
		{Up, "up"},
		{Down, "down"},
		{Left, "left"},
		{Right, "right"},
	}
	for _, tc := range tcs {
		if s := tc.d.String(); s != tc.name {
			t.Errorf("%v prints as %q, expected %q", int(tc.d), s, tc.name)
		}
		d, ok := ParseDirection(tc.name)
		if !ok || d != tc.d {
			t.Errorf("ParseDirection(%q) gave %v, %v", tc.name, d, ok)
		}
	}
	if s := Direction(12).String(); s == "" {
		t.Errorf("Out-of-range direction prints as an empty string")
	}
	if _, ok := ParseDirection("UP"); ok {
		t.Errorf("Direction names are lowercase, %q should not parse", "UP")
	}
	if _, ok := ParseDirection("sideways"); ok {
		t.Errorf("ParseDirection accepted %q", "sideways")
	}
}
