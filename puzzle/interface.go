// Copyright 2016 Daniel C. Brotsky.  All rights reserved.

// Package puzzle provides a model for sliding-tile puzzles (the
// generalized 15-puzzle family) and operations on them.  It
// supports both a golang interface and a web interface to the
// puzzles.
//
// In this package, a puzzle is a square board of side-length N
// whose cells hold every tile value from 0 to N²-1 exactly once.
// The 0 value is the blank: the empty slot that adjacent tiles
// slide into.  Cells are designated by a (row, column) pair,
// each 0-based and increasing left-to-right, top-to-bottom
// (English reading order).  A puzzle is solved when the tiles
// appear in reading order with the blank in the last cell.
//
// Moves are named for the travel of the blank: moving Up swaps
// the blank with the tile above it, and so on.  A move that
// would push the blank off the board fails with an Error that
// callers should treat as an expected outcome; it is how
// unavailable directions are discovered and pruned.
//
// Every puzzle carries a move counter (its "level"): the number
// of moves applied since the puzzle's origin.  The level is
// history, not identity.  Equal and Hash consider only the side
// length and the tile layout, so two puzzles that reached the
// same configuration by different paths collapse to a single
// entry in any deduplication structure (a visited set or a
// transposition table).
//
// Puzzles serialize to a one-line text form (the level followed
// by the row-major tile values, space-separated) that
// round-trips through Parse.  That line encoding is the only
// persisted format; the Summary form exists for JSON transport
// between servers and clients.
package puzzle

import (
	"fmt"
)

/*

Directions

*/

// A Direction names one of the four moves of the blank.
type Direction int

// Constants for the four directions.  LegalMoves explores them
// in this order.
const (
	Up Direction = iota
	Down
	Left
	Right
)

var directionNames = []string{"up", "down", "left", "right"}

// Directions implement Stringer
func (d Direction) String() string {
	if d < Up || d > Right {
		return fmt.Sprintf("<direction %d>", int(d))
	}
	return directionNames[d]
}

// ParseDirection is how the web handlers look up directions.
// There's a boolean return value to tell you if the name is a
// known direction, similar to a map lookup.
func ParseDirection(name string) (Direction, bool) {
	for i, dn := range directionNames {
		if dn == name {
			return Direction(i), true
		}
	}
	return Up, false
}

/*

Summaries

*/

// A Summary is the JSON-transportable form of a puzzle: the side
// length, the level (move count), and the row-major tile values.
// It is what the web handlers send to clients; storage persists
// the line encoding instead.
type Summary struct {
	SideLength int   `json:"sidelen"`
	Level      int   `json:"level"`
	Values     []int `json:"values"`
}

// FromSummary either returns a Puzzle with the given side
// length, level, and values or an error (if the values are not a
// permutation of the cells of a board with that side length).
//
// When an error is returned from this function, it will always
// contain an Error value.
func FromSummary(sum *Summary) (*Puzzle, error) {
	if sum == nil {
		return nil, Error{
			Scope:     ArgumentScope,
			Structure: AttributeStructure,
			Attribute: SummaryAttribute,
			Condition: GeneralCondition,
			Values:    ErrorData{"no summary given"},
		}
	}
	if sum.SideLength < 1 || sum.SideLength > maxSideLength {
		return nil, rangeError(SideLengthAttribute, sum.SideLength, 1, maxSideLength)
	}
	if len(sum.Values) != sum.SideLength*sum.SideLength {
		return nil, Error{
			Scope:     EncodingScope,
			Structure: AttributeValueStructure,
			Attribute: SummaryAttribute,
			Condition: WrongValueCountCondition,
			Values:    ErrorData{len(sum.Values), sum.SideLength},
		}
	}
	return fromValues(sum.SideLength, sum.Level, sum.Values)
}
