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

package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ancientHacker/taquin.go/puzzle"
	"github.com/gomodule/redigo/redis"
	"github.com/jackc/pgx"
)

/*

puzzle identifiers

*/

// PuzzleID: compute the stored ID for a puzzle.  The ID is the
// configuration hash in fixed-width uppercase hex, so two
// puzzles get the same ID exactly when they are Equal.
func PuzzleID(p *puzzle.Puzzle) string {
	return fmt.Sprintf("%016X", p.Hash())
}

/*

puzzle entries

*/

// A puzzleEntry represents the stored form of a starting-point
// puzzle.  It is JSON serializable so it can go into the cache
// as well as the database.  The board itself is carried only as
// its line encoding.
type puzzleEntry struct {
	PuzzleId   string // configuration hash, see PuzzleID
	Name       string // user-facing name of the puzzle
	SideLength int32
	Line       string // line encoding of the starting position
}

// loadPuzzleEntry first checks the cache, then the database, to
// find the puzzle's entry.  If it loads from the database, it
// caches the result.  Panics if there is no such stored entry.
func loadPuzzleEntry(id string) *puzzleEntry {
	pe := &puzzleEntry{PuzzleId: id}
	if pe.cacheLoad() {
		return pe
	}
	// cache miss, load from database and save to cache
	pe.databaseLoad()
	pe.cacheInsert()
	return pe
}

// findPuzzleEntry is the non-panicking lookup: it reports
// whether a stored entry with the given id exists, checking the
// cache first and falling back to the database.
func findPuzzleEntry(id string) (*puzzleEntry, bool) {
	pe := &puzzleEntry{PuzzleId: id}
	if pe.cacheLoad() {
		return pe, true
	}
	found := false
	body := func(tx *pgx.Tx) error {
		row := tx.QueryRow(
			"SELECT name, sideLength, line FROM puzzles "+
				"WHERE puzzleId = $1", pe.PuzzleId)
		switch err := row.Scan(&pe.Name, &pe.SideLength, &pe.Line); err {
		case nil:
			found = true
			return nil
		case pgx.ErrNoRows:
			return nil
		default:
			return fmt.Errorf("Failure looking up puzzle %q: %v", pe.PuzzleId, err)
		}
	}
	pgExecute(body)
	if found {
		pe.cacheInsert()
	}
	return pe, found
}

// makePuzzle: make the puzzle described in a puzzle entry
func (pe *puzzleEntry) makePuzzle() *puzzle.Puzzle {
	p, e := puzzle.Parse(pe.Line)
	if e != nil {
		panic(fmt.Errorf("Failed to create puzzle %q: %v", pe.PuzzleId, e))
	}
	return p
}

// key: compute the cache key for a puzzleEntry.
func (pe *puzzleEntry) key() string {
	return "PID:" + pe.PuzzleId
}

// cacheLoad: load an already cached puzzle entry.  Returns
// whether the entry was found in the cache.
func (pe *puzzleEntry) cacheLoad() bool {
	var bytes []byte
	body := func(tx redis.Conn) (err error) {
		bytes, err = redis.Bytes(tx.Do("GET", pe.key()))
		if err == redis.ErrNil {
			return nil
		}
		if err != nil {
			err = fmt.Errorf("Cache failure loading puzzleEntry %q: %v", pe.PuzzleId, err)
		}
		return
	}
	rdExecute(body)
	if len(bytes) == 0 {
		return false
	}
	var spe *puzzleEntry
	err := json.Unmarshal(bytes, &spe)
	if err != nil {
		panic(fmt.Errorf("Failed to unmarshal puzzleEntry %q: %v", pe.PuzzleId, err))
	}
	if spe.PuzzleId != pe.PuzzleId {
		panic(fmt.Errorf("Cached puzzleEntry (id: %q) found for puzzle %q!",
			spe.PuzzleId, pe.PuzzleId))
	}
	*pe = *spe
	return true
}

// databaseLoad: load a puzzle entry from the database.  Panics
// if there is no saved entry with the given id.
func (pe *puzzleEntry) databaseLoad() {
	body := func(tx *pgx.Tx) error {
		row := tx.QueryRow(
			"SELECT name, sideLength, line FROM puzzles "+
				"WHERE puzzleId = $1", pe.PuzzleId)
		if err := row.Scan(&pe.Name, &pe.SideLength, &pe.Line); err != nil {
			return fmt.Errorf("Failure looking up puzzle %q: %v", pe.PuzzleId, err)
		}
		return nil
	}
	pgExecute(body)
}

// databaseLoadByName: load a puzzle entry by its user-facing
// name.  Panics if there is no saved entry with the given name.
func (pe *puzzleEntry) databaseLoadByName(name string) {
	body := func(tx *pgx.Tx) error {
		row := tx.QueryRow(
			"SELECT puzzleId, name, sideLength, line FROM puzzles "+
				"WHERE name = $1", name)
		if err := row.Scan(&pe.PuzzleId, &pe.Name, &pe.SideLength, &pe.Line); err != nil {
			return fmt.Errorf("Failure looking up puzzle named %q: %v", name, err)
		}
		return nil
	}
	pgExecute(body)
}

// cacheInsert: insert a puzzle entry into the cache. Replaces
// any existing entry with the same id.
func (pe *puzzleEntry) cacheInsert() {
	bytes, e := json.Marshal(pe)
	if e != nil {
		panic(fmt.Errorf("Failed to marshal puzzleEntry %q: %v", pe.PuzzleId, e))
	}
	body := func(tx redis.Conn) (err error) {
		_, err = tx.Do("SET", pe.key(), bytes)
		if err != nil {
			err = fmt.Errorf("Cache failure saving puzzle entry %q: %v", pe.PuzzleId, err)
		}
		return
	}
	rdExecute(body)
}

// databaseInsert: insert a new puzzle entry into the database.
// Panics if there is already a saved entry with the given id.
func (pe *puzzleEntry) databaseInsert() {
	body := func(tx *pgx.Tx) (err error) {
		_, err = tx.Exec(
			"INSERT INTO puzzles (puzzleId, name, sideLength, line, created) "+
				"VALUES ($1, $2, $3, $4, $5)",
			pe.PuzzleId, pe.Name, pe.SideLength, pe.Line, time.Now())
		if err != nil {
			err = fmt.Errorf("Database error saving puzzle entry %q: %v", pe.PuzzleId, err)
		}
		return
	}
	pgExecute(body)
}

/*

exported puzzle operations

*/

// SavePuzzle: store a named starting position.  The puzzle's
// configuration hash becomes its ID; saving a configuration
// that's already stored (under any name) is a no-op, so repeat
// saves are harmless.  Returns the ID.
func SavePuzzle(name string, p *puzzle.Puzzle) string {
	id := PuzzleID(p)
	if _, ok := findPuzzleEntry(id); ok {
		return id
	}
	pe := &puzzleEntry{
		PuzzleId:   id,
		Name:       name,
		SideLength: int32(p.SideLength()),
		Line:       p.Line(),
	}
	pe.databaseInsert()
	pe.cacheInsert()
	return id
}

// LoadPuzzle: fetch the stored puzzle with the given ID.
// Returns the puzzle and its user-facing name, or false if no
// such puzzle is stored.
func LoadPuzzle(id string) (*puzzle.Puzzle, string, bool) {
	pe, ok := findPuzzleEntry(id)
	if !ok {
		return nil, "", false
	}
	return pe.makePuzzle(), pe.Name, true
}

/*

puzzle info

*/

// A PuzzleInfo is the exported description of a stored puzzle:
// everything a client needs to pick one without fetching its
// board.
type PuzzleInfo struct {
	PuzzleId   string // unique ID for this puzzle
	Name       string // user-facing name of the puzzle
	SideLength int    // puzzle size
	Created    time.Time
}

// ListPuzzles: describe all the stored puzzles, in name order.
func ListPuzzles() []*PuzzleInfo {
	var infos []*PuzzleInfo
	body := func(tx *pgx.Tx) error {
		rows, err := tx.Query(
			"SELECT puzzleId, name, sideLength, created FROM puzzles ORDER BY name")
		if err != nil {
			return fmt.Errorf("Failure listing puzzles: %v", err)
		}
		defer rows.Close()
		for rows.Next() {
			pi := &PuzzleInfo{}
			var sidelen int32
			if err := rows.Scan(&pi.PuzzleId, &pi.Name, &sidelen, &pi.Created); err != nil {
				return fmt.Errorf("Failure reading puzzle list: %v", err)
			}
			pi.SideLength = int(sidelen)
			infos = append(infos, pi)
		}
		return rows.Err()
	}
	pgExecute(body)
	return infos
}
