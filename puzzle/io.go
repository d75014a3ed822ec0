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
	"fmt"
	"strconv"
	"strings"
)

/*

The line encoding

This is the only persisted form of a puzzle: the level, then the
row-major tile values, all space-separated.  A board of side N
always encodes to exactly N²+1 tokens, and Parse(Line(p)) gives
back p exactly, level included.

*/

// Line returns the puzzle's line encoding.
func (p *Puzzle) Line() string {
	var sb strings.Builder
	sb.WriteString(strconv.Itoa(p.level))
	for r := 0; r < p.sidelen; r++ {
		for c := 0; c < p.sidelen; c++ {
			sb.WriteByte(' ')
			sb.WriteString(strconv.Itoa(p.board.get(r, c)))
		}
	}
	return sb.String()
}

// Parse builds a puzzle from its line encoding.  The first
// whitespace-separated token is the level; it may be any integer
// (including a negative one - it's a caller-supplied history
// marker, so we don't second-guess it).  The remaining token
// count must be a perfect square, and the tokens must be a
// permutation of 0..count-1.  Anything else gets an
// EncodingScope Error, and no partial result is ever returned.
func Parse(line string) (*Puzzle, error) {
	tokens := strings.Fields(line)
	if len(tokens) < 2 {
		return nil, lineError(WrongValueCountCondition, len(tokens))
	}
	level, err := strconv.Atoi(tokens[0])
	if err != nil {
		return nil, encodingError(UnparsableValueCondition, 0, tokens[0])
	}
	count := len(tokens) - 1
	sidelen, ok := findIntSquareRoot(count)
	if !ok {
		return nil, lineError(NonSquareCondition, count)
	}
	if sidelen > maxSideLength {
		return nil, rangeError(SideLengthAttribute, sidelen, 1, maxSideLength)
	}
	values := make([]int, count)
	for i, token := range tokens[1:] {
		val, err := strconv.Atoi(token)
		if err != nil {
			return nil, encodingError(UnparsableValueCondition, i+1, token)
		}
		values[i] = val
	}
	return fromValues(sidelen, level, values)
}

// lineError reports a structural problem with a whole line.
func lineError(cond ErrorCondition, vals ...interface{}) Error {
	return Error{
		Scope:     EncodingScope,
		Structure: AttributeValueStructure,
		Attribute: LineAttribute,
		Condition: cond,
		Values:    ErrorData(vals),
	}
}

// Find the integer square root of val, if it exists.
func findIntSquareRoot(val int) (int, bool) {
	var i int
	for i = 1; i*i <= val; i++ {
		if i*i == val {
			return i, true
		}
	}
	return i - 1, false
}

/*

Pretty-printed puzzles in strings, for debugging.

*/

// String gives a pretty-printed view of a puzzle: the level
// label, then one board row per line with the blank shown as an
// underscore.  This form is for eyes and logs only; persistence
// goes through Line.
func (p *Puzzle) String() (result string) {
	if p == nil {
		return
	}
	width := len(strconv.Itoa(p.sidelen*p.sidelen - 1))
	result += fmt.Sprintf("Level %d\n", p.level)
	for r := 0; r < p.sidelen; r++ {
		for c := 0; c < p.sidelen; c++ {
			if c > 0 {
				result += " "
			}
			if v := p.board.get(r, c); v == 0 {
				result += fmt.Sprintf("%*s", width, "_")
			} else {
				result += fmt.Sprintf("%*d", width, v)
			}
		}
		result += "\n"
	}
	return
}
