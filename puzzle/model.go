package puzzle

/*

Sliding-tile puzzle representation

*/

import (
	"encoding/binary"
	"hash/fnv"
)

// maxSideLength bounds the boards we'll build.  Nobody solves
// boards anywhere near this big; the bound just keeps sizes and
// tile values comfortably inside int32 range.
const maxSideLength = 255

/*

Boards

*/

// A board holds the tile values of a puzzle.  There are exactly
// two implementations, chosen at construction time: a packed
// integer for small boards and a dense slice for everything
// else.  Neither does bounds checking; the puzzle wrapper
// validates coordinates before they get here.
type board interface {
	get(row, col int) int
	set(row, col, val int)
	clone() board
}

// A gridBoard stores tile values in a dense row-major slice.
// It works for any side length.
type gridBoard struct {
	sidelen int
	cells   []int
}

func newGridBoard(sidelen int) *gridBoard {
	return &gridBoard{sidelen: sidelen, cells: make([]int, sidelen*sidelen)}
}

func (b *gridBoard) get(row, col int) int {
	return b.cells[row*b.sidelen+col]
}

func (b *gridBoard) set(row, col, val int) {
	b.cells[row*b.sidelen+col] = val
}

func (b *gridBoard) clone() board {
	cells := make([]int, len(b.cells))
	copy(cells, b.cells)
	return &gridBoard{sidelen: b.sidelen, cells: cells}
}

// A packedBoard stores the whole board in one uint64, one nibble
// per cell from the low bits up.  A 4x4 board has 16 cells with
// values 0-15, so it exactly fills the word; anything smaller
// fits with room to spare.  This makes copying a successor state
// a single word copy, which matters to search engines that
// explore millions of edges.
type packedBoard struct {
	sidelen int
	cells   uint64
}

// maxPackedSideLength is the largest side length a packedBoard
// can hold: nibble values cap tiles at 15 and a uint64 caps the
// cell count at 16.
const maxPackedSideLength = 4

func (b *packedBoard) get(row, col int) int {
	shift := uint(row*b.sidelen+col) * 4
	return int((b.cells >> shift) & 0xf)
}

func (b *packedBoard) set(row, col, val int) {
	shift := uint(row*b.sidelen+col) * 4
	b.cells = (b.cells &^ (0xf << shift)) | (uint64(val) << shift)
}

func (b *packedBoard) clone() board {
	return &packedBoard{sidelen: b.sidelen, cells: b.cells}
}

// newBoard picks the storage variant for a side length.
func newBoard(sidelen int) board {
	if sidelen <= maxPackedSideLength {
		return &packedBoard{sidelen: sidelen}
	}
	return newGridBoard(sidelen)
}

/*

Puzzles

*/

// A Puzzle is our representation of a sliding-tile board: the
// tile storage, the side length, the cached location of the
// blank, and the level (count of moves applied since the
// puzzle's origin).  The blank location always agrees with the
// cell holding 0; it is cached so moves don't have to scan for
// it.
//
// A Puzzle is an independently owned value: no operation shares
// storage between two puzzles, so Copy (and the pure move form)
// can be used freely to branch independent lineages.  No
// internal synchronization is done; once a puzzle has been
// published to other goroutines it must be treated as read-only.
type Puzzle struct {
	board    board
	sidelen  int
	blankRow int
	blankCol int
	level    int
}

// New returns the solved puzzle with the given side length: the
// tiles in reading order with the blank in the last cell, at
// level 0.  Returns an Error if the side length is out of range.
func New(sidelen int) (*Puzzle, error) {
	if sidelen < 1 || sidelen > maxSideLength {
		return nil, rangeError(SideLengthAttribute, sidelen, 1, maxSideLength)
	}
	p := &Puzzle{
		board:    newBoard(sidelen),
		sidelen:  sidelen,
		blankRow: sidelen - 1,
		blankCol: sidelen - 1,
	}
	for r := 0; r < sidelen; r++ {
		for c := 0; c < sidelen; c++ {
			if r == sidelen-1 && c == sidelen-1 {
				p.board.set(r, c, 0)
			} else {
				p.board.set(r, c, r*sidelen+c+1)
			}
		}
	}
	return p, nil
}

// fromValues builds a puzzle from a row-major value slice,
// enforcing that the values are a permutation of 0..sidelen²-1.
// The caller has already checked the side length and the value
// count.  Shared by Parse and FromSummary, so validation errors
// carry the 1-based token position of the offending value.
func fromValues(sidelen, level int, values []int) (*Puzzle, error) {
	p := &Puzzle{
		board:   newBoard(sidelen),
		sidelen: sidelen,
		level:   level,
	}
	seen := make([]bool, sidelen*sidelen)
	for i, val := range values {
		if val < 0 {
			return nil, encodingError(TooSmallCondition, i+1, val, 0)
		}
		if val >= sidelen*sidelen {
			return nil, encodingError(TooLargeCondition, i+1, val, sidelen*sidelen-1)
		}
		if seen[val] {
			return nil, encodingError(DuplicateValueCondition, i+1, val)
		}
		seen[val] = true
		row, col := i/sidelen, i%sidelen
		p.board.set(row, col, val)
		if val == 0 {
			p.blankRow, p.blankCol = row, col
		}
	}
	return p, nil
}

/*

Interface entries: if you call these with a nil puzzle pointer,
you will panic.  A nil puzzle is a constructor failure the
caller should have handled.

*/

// Copy returns a deep copy of the puzzle: same side length, tile
// layout, blank location, and level, with no shared storage.
func (p *Puzzle) Copy() *Puzzle {
	return &Puzzle{
		board:    p.board.clone(),
		sidelen:  p.sidelen,
		blankRow: p.blankRow,
		blankCol: p.blankCol,
		level:    p.level,
	}
}

// SideLength returns the board dimension N of the N×N puzzle.
func (p *Puzzle) SideLength() int {
	return p.sidelen
}

// BlankRow returns the row of the blank cell.
func (p *Puzzle) BlankRow() int {
	return p.blankRow
}

// BlankCol returns the column of the blank cell.
func (p *Puzzle) BlankCol() int {
	return p.blankCol
}

// Level returns the puzzle's move count: the number of moves
// applied since the puzzle's origin.  The level is excluded from
// Equal and Hash.
func (p *Puzzle) Level() int {
	return p.level
}

// Value returns the tile value at the given cell, or an Error if
// the coordinates are off the board.
func (p *Puzzle) Value(row, col int) (int, error) {
	if row < 0 || row >= p.sidelen {
		return 0, rangeError(RowAttribute, row, 0, p.sidelen-1)
	}
	if col < 0 || col >= p.sidelen {
		return 0, rangeError(ColumnAttribute, col, 0, p.sidelen-1)
	}
	return p.board.get(row, col), nil
}

// SetValue puts a tile value into a cell, validating the
// coordinates and the value range but nothing more.  This is a
// deliberate low-level primitive: it does not keep the board a
// permutation, does not maintain the blank location, and exists
// so callers building a board cell-by-cell can do so before the
// whole-board invariants can possibly hold.  After any sequence
// of SetValue calls, the caller owns restoring those invariants.
func (p *Puzzle) SetValue(val, row, col int) error {
	if row < 0 || row >= p.sidelen {
		return rangeError(RowAttribute, row, 0, p.sidelen-1)
	}
	if col < 0 || col >= p.sidelen {
		return rangeError(ColumnAttribute, col, 0, p.sidelen-1)
	}
	if val < 0 || val >= p.sidelen*p.sidelen {
		return rangeError(ValueAttribute, val, 0, p.sidelen*p.sidelen-1)
	}
	p.board.set(row, col, val)
	return nil
}

// swapCells exchanges the values of two cells.  It does not
// adjust the cached blank location; the move entries that swap
// with the blank do that themselves.
func (p *Puzzle) swapCells(r1, c1, r2, c2 int) {
	v1, v2 := p.board.get(r1, c1), p.board.get(r2, c2)
	p.board.set(r1, c1, v2)
	p.board.set(r2, c2, v1)
}

/*

Moves

*/

// blankDelta returns the blank's row and column travel for a
// direction.
func blankDelta(d Direction) (dr, dc int) {
	switch d {
	case Up:
		return -1, 0
	case Down:
		return 1, 0
	case Left:
		return 0, -1
	case Right:
		return 0, 1
	}
	return 0, 0
}

// canMove reports whether the blank can travel in the given
// direction without leaving the board.
func (p *Puzzle) canMove(d Direction) bool {
	switch d {
	case Up:
		return p.blankRow > 0
	case Down:
		return p.blankRow < p.sidelen-1
	case Left:
		return p.blankCol > 0
	case Right:
		return p.blankCol < p.sidelen-1
	}
	return false
}

// Move slides the blank one cell in the given direction,
// mutating the receiver: the blank swaps with the neighboring
// tile and the level goes up by one.  If the blank is already on
// that boundary, Move returns an Error and the puzzle is
// completely untouched - the legality check comes before any
// mutation.
func (p *Puzzle) Move(d Direction) error {
	if d < Up || d > Right {
		return Error{
			Scope:     ArgumentScope,
			Structure: AttributeValueStructure,
			Attribute: DirectionAttribute,
			Condition: UnknownDirectionCondition,
			Values:    ErrorData{int(d)},
		}
	}
	if !p.canMove(d) {
		return moveError(d)
	}
	dr, dc := blankDelta(d)
	p.swapCells(p.blankRow, p.blankCol, p.blankRow+dr, p.blankCol+dc)
	p.blankRow += dr
	p.blankCol += dc
	p.level++
	return nil
}

// Moved is the pure form of Move: the receiver is left
// unmodified and a moved deep copy is returned.  This is the
// branching path a search engine uses, so each candidate
// successor is an independent value; budget for the O(N²) copy
// per explored edge.
func (p *Puzzle) Moved(d Direction) (*Puzzle, error) {
	if d >= Up && d <= Right && !p.canMove(d) {
		return nil, moveError(d)
	}
	moved := p.Copy()
	if err := moved.Move(d); err != nil {
		return nil, err
	}
	return moved, nil
}

// LegalMoves returns a moved copy of the puzzle for every
// direction the blank can travel, always in Up, Down, Left,
// Right order.  The blank's position determines the count: a
// corner blank gives 2, an edge blank 3, an interior blank 4.  A
// 1x1 puzzle has no legal moves at all.  We check the boundary
// conditions directly rather than attempting each move and
// discarding the failures.
func (p *Puzzle) LegalMoves() []*Puzzle {
	var moves []*Puzzle
	for d := Up; d <= Right; d++ {
		if !p.canMove(d) {
			continue
		}
		moved := p.Copy()
		dr, dc := blankDelta(d)
		moved.swapCells(moved.blankRow, moved.blankCol, moved.blankRow+dr, moved.blankCol+dc)
		moved.blankRow += dr
		moved.blankCol += dc
		moved.level++
		moves = append(moves, moved)
	}
	return moves
}

/*

Canonical form

*/

// IsSolved reports whether every tile is in its reading-order
// cell with the blank last.
func (p *Puzzle) IsSolved() bool {
	for r := 0; r < p.sidelen; r++ {
		for c := 0; c < p.sidelen; c++ {
			if r == p.sidelen-1 && c == p.sidelen-1 {
				return p.board.get(r, c) == 0
			}
			if p.board.get(r, c) != r*p.sidelen+c+1 {
				return false
			}
		}
	}
	return true
}

// Equal reports whether two puzzles are the same board
// configuration: same side length and same tile in every cell.
// The level is deliberately excluded, so puzzles with different
// histories compare equal when their tiles agree.  Any visited
// set or transposition table must use this equality (with Hash)
// so that configurations reached by different paths collapse.
func (p *Puzzle) Equal(o *Puzzle) bool {
	if p == nil || o == nil {
		return p == o
	}
	if p.sidelen != o.sidelen {
		return false
	}
	for r := 0; r < p.sidelen; r++ {
		for c := 0; c < p.sidelen; c++ {
			if p.board.get(r, c) != o.board.get(r, c) {
				return false
			}
		}
	}
	return true
}

// Hash returns a 64-bit FNV-1a hash of the side length and the
// row-major tile values.  It is a pure function of the board
// configuration, so it is consistent with Equal, identical
// across runs and processes, and independent of the level and of
// the storage variant underneath.
func (p *Puzzle) Hash() uint64 {
	h := fnv.New64a()
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(p.sidelen))
	h.Write(buf[:])
	for r := 0; r < p.sidelen; r++ {
		for c := 0; c < p.sidelen; c++ {
			binary.BigEndian.PutUint32(buf[:], uint32(p.board.get(r, c)))
			h.Write(buf[:])
		}
	}
	return h.Sum64()
}

// Summary returns the JSON-transportable form of the puzzle.
// The returned value shares no storage with the puzzle.
func (p *Puzzle) Summary() *Summary {
	values := make([]int, 0, p.sidelen*p.sidelen)
	for r := 0; r < p.sidelen; r++ {
		for c := 0; c < p.sidelen; c++ {
			values = append(values, p.board.get(r, c))
		}
	}
	return &Summary{SideLength: p.sidelen, Level: p.level, Values: values}
}
