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

package puzzle

import (
	"strings"
	"testing"
)

/*

line encoding

*/

func TestLineRoundTrip(t *testing.T) {
	lines := []string{
		"0 0",
		"0 1 2 3 0",
		"3 1 2 3 4 5 0 7 8 6",
		"-2 0 1 2 3", // a negative level is a caller's history marker
		"120 8 7 6 5 4 3 2 1 0",
	}
	for _, line := range lines {
		p := helperParse(t, line)
		if l := p.Line(); l != line {
			t.Errorf("Round trip of %q gave %q", line, l)
		}
	}
}

func TestLineOfNew(t *testing.T) {
	type testcase struct {
		sidelen int
		line    string
	}
	tcs := []testcase{
		{1, "0 0"},
		{2, "0 1 2 3 0"},
		{3, "0 1 2 3 4 5 6 7 8 0"},
	}
	for _, tc := range tcs {
		p, _ := New(tc.sidelen)
		if l := p.Line(); l != tc.line {
			t.Errorf("Side-%d solved line is %q, expected %q", tc.sidelen, l, tc.line)
		}
	}
}

// whitespace between tokens is free-form on the way in, single
// spaces on the way out
func TestParseLooseWhitespace(t *testing.T) {
	p := helperParse(t, "  0\t 1  2\n3 0 ")
	if el, l := "0 1 2 3 0", p.Line(); l != el {
		t.Errorf("Reencoded loose line as %q, expected %q", l, el)
	}
}

// a worked side-2 scenario: parse, move left, move right
func TestParseMoveScenario(t *testing.T) {
	p := helperParse(t, "0 1 2 3 0")
	if p.BlankRow() != 1 || p.BlankCol() != 1 {
		t.Fatalf("Blank at (%d,%d), expected (1,1)", p.BlankRow(), p.BlankCol())
	}
	left, err := p.Moved(Left)
	if err != nil {
		t.Fatalf("Moved(Left) failed: %v", err)
	}
	if el, l := "1 1 2 0 3", left.Line(); l != el {
		t.Errorf("After left: got %q, expected %q", l, el)
	}
	if left.IsSolved() {
		t.Errorf("After left the puzzle claims to be solved")
	}
	right, err := p.Moved(Right)
	if err == nil {
		t.Errorf("Moved(Right) with the blank on the right edge gave %q", right.Line())
	}
	back, err := left.Moved(Right)
	if err != nil {
		t.Fatalf("Moved(Right) failed: %v", err)
	}
	if el, l := "2 1 2 3 0", back.Line(); l != el {
		t.Errorf("After left, right: got %q, expected %q", l, el)
	}
	if !back.IsSolved() {
		t.Errorf("After left, right the puzzle is not solved:\n%v", back)
	}
}

type parseErrorTestcase struct {
	line      string
	condition ErrorCondition
}

func TestParseErrors(t *testing.T) {
	tcs := []parseErrorTestcase{
		{"", WrongValueCountCondition},
		{"   ", WrongValueCountCondition},
		{"0", WrongValueCountCondition},
		{"zero 1 2 3 0", UnparsableValueCondition}, // bad level token
		{"0 1 2 3 four", UnparsableValueCondition}, // bad tile token
		{"0 1 2 3 0 4", NonSquareCondition},        // 5 tiles
		{"0 1 1 2 0", DuplicateValueCondition},
		{"0 1 2 3 7", TooLargeCondition},  // 7 can't appear on a side-2 board
		{"0 1 2 3 -1", TooSmallCondition}, // negative tiles can't appear at all
	}
	for i, tc := range tcs {
		p, err := Parse(tc.line)
		if p != nil || err == nil {
			t.Fatalf("test %d: Parse of %q gave %v, %v", i, tc.line, p, err)
		}
		e, ok := err.(Error)
		if !ok {
			t.Fatalf("test %d: Parse of %q gave non-Error %v", i, tc.line, err)
		}
		if e.Scope != EncodingScope {
			t.Errorf("test %d: Parse of %q gave scope %v, expected %v",
				i, tc.line, e.Scope, EncodingScope)
		}
		if e.Condition != tc.condition {
			t.Errorf("test %d: Parse of %q gave condition %v, expected %v",
				i, tc.line, e.Condition, tc.condition)
		}
		if e.Error() == "" {
			t.Errorf("test %d: empty message for %q", i, tc.line)
		}
	}
}

func TestParseHugeSide(t *testing.T) {
	// (maxSideLength+1)² tiles is a perfect square, but the board
	// is too big to build
	count := (maxSideLength + 1) * (maxSideLength + 1)
	tokens := make([]string, count+1)
	for i := range tokens {
		tokens[i] = "0"
	}
	_, err := Parse(strings.Join(tokens, " "))
	if err == nil {
		t.Fatalf("Parse of a side-%d board did not fail", maxSideLength+1)
	}
	if e := err.(Error); e.Attribute != SideLengthAttribute {
		t.Errorf("Parse of an oversized board gave %+v", e)
	}
}

/*

pretty printing

*/

func TestString(t *testing.T) {
	p, _ := New(2)
	expected := "Level 0\n" +
		"1 2\n" +
		"3 _\n"
	if s := p.String(); s != expected {
		t.Errorf("Printed side-2 solved puzzle as:\n%vexpected:\n%v", s, expected)
	}
}

func TestStringWideValues(t *testing.T) {
	p := helperParse(t, "7 1 2 3 4 5 6 7 8 9 10 11 12 13 14 0 15")
	expected := "Level 7\n" +
		" 1  2  3  4\n" +
		" 5  6  7  8\n" +
		" 9 10 11 12\n" +
		"13 14  _ 15\n"
	if s := p.String(); s != expected {
		t.Errorf("Printed side-4 puzzle as:\n%vexpected:\n%v", s, expected)
	}
}

func TestStringNil(t *testing.T) {
	if s := (*Puzzle)(nil).String(); s != "" {
		t.Errorf("Printed nil puzzle as %q", s)
	}
}
