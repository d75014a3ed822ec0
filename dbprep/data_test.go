// taquin.go - a web-based sliding-tile puzzle and solving tool.
// Copyright (C) 2016 Daniel C. Brotsky.
//
// This program is free software; you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation; either version 2 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License along
// with this program; if not, write to the Free Software Foundation, Inc.,
// 51 Franklin Street, Fifth Floor, Boston, MA 02110-1301 USA.
// Licensed under the LGPL v3.  See the LICENSE file for details

package dbprep

import (
	"strings"
	"testing"
)

// make sure string case invariants are met
func TestSampleData(t *testing.T) {
	for i, id := range sampleIds {
		if id != strings.ToUpper(id) {
			t.Errorf("Id %d (%s) contains a non-uppercase letter.", i, id)
		}
		if len(id) != 16 {
			t.Errorf("Id %d (%s) is not 16 hex digits.", i, id)
		}
	}
	for i, sample := range samplePuzzles {
		if sample.name != strings.ToLower(sample.name) {
			t.Errorf("Name %d (%s) contains a non-lowercase letter.", i, sample.name)
		}
	}
}

// the samples must be distinct puzzles with distinct names, all
// starting at level 0
func TestSampleUniqueness(t *testing.T) {
	ids := make(map[string]int)
	names := make(map[string]int)
	for i, sample := range samplePuzzles {
		if prior, ok := ids[sampleIds[i]]; ok {
			t.Errorf("Samples %d and %d share an id.", prior, i)
		}
		ids[sampleIds[i]] = i
		if prior, ok := names[sample.name]; ok {
			t.Errorf("Samples %d and %d share a name.", prior, i)
		}
		names[sample.name] = i
		if samplePointers[i].Level() != 0 {
			t.Errorf("Sample %d starts at level %d, expected 0.", i, samplePointers[i].Level())
		}
	}
}
