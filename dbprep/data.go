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
	"fmt"
	"os"
	"time"

	"github.com/ancientHacker/taquin.go/puzzle"
	"github.com/jackc/pgx"
)

/*

entries

*/

type dataFunction func(*pgx.Tx) error

var (
	upFunctions = []dataFunction{
		insertSamples,
	}
	downFunctions = []dataFunction{
		deleteSamples,
	}
)

// DataUp: load the sample data into the database.  You should do
// this after you get the schema up!
func DataUp() error {
	return applyFunctions(upFunctions)
}

// DataDown: remove the sample data from the database.  You
// should do this before you tear the schema down!
func DataDown() error {
	return applyFunctions(downFunctions)
}

// apply dataFunctions to the database.  Each is applied in a
// separate transaction, so later ones can rely on the effect of
// earlier ones having been committed.
func applyFunctions(fns []dataFunction) error {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		url = "postgres://localhost/taquin?sslmode=disable"
	}

	// open the database, defer the close
	cfg, err := pgx.ParseURI(url)
	if err != nil {
		return err
	}
	conn, err := pgx.Connect(cfg)
	if err != nil {
		return err
	}
	defer conn.Close()

	// helper that runs each function inside a transaction, and
	// ensures that any problems are rolled back.
	runFunc := func(fn dataFunction) error {
		tx, err := conn.Begin()
		if err != nil {
			return err
		}
		defer func() {
			if e := recover(); e != nil {
				tx.Rollback()
				panic(e)
			}
		}()
		if err := fn(tx); err != nil {
			tx.Rollback()
			return err
		}
		return tx.Commit()
	}

	// run the functions
	for _, fn := range fns {
		if err := runFunc(fn); err != nil {
			return fmt.Errorf("%v failed: %v", fn, err)
		}
	}
	return nil
}

/*

insert sample puzzles

*/

// The sample starting positions every installation gets.  Each
// is a valid line encoding at level 0; the names are what the
// session layer and the web client show.
type samplePuzzle struct {
	name string
	line string
}

var (
	samplePuzzles = []samplePuzzle{
		{"starter-2x2", "0 1 2 0 3"},
		{"classic-3x3", "0 7 2 4 5 0 6 8 3 1"},
		{"solved-3x3", "0 1 2 3 4 5 6 7 8 0"},
		{"classic-4x4", "0 5 1 4 8 2 7 3 11 9 6 12 15 13 14 10 0"},
		{"big-5x5", "0 1 2 3 4 5 6 7 8 9 10 11 12 0 14 15 13 17 18 19 20 16 21 22 23 24"},
	}
	sampleIds      []string // see init
	samplePointers []*puzzle.Puzzle
)

// initialize the ids from the sample puzzle lines
func init() {
	sampleIds = make([]string, len(samplePuzzles))
	samplePointers = make([]*puzzle.Puzzle, len(samplePuzzles))
	for i, sample := range samplePuzzles {
		p, err := puzzle.Parse(sample.line)
		if err != nil {
			panic(fmt.Errorf("Can't happen! Sample puzzle %d is invalid: %v", i, err))
		}
		samplePointers[i] = p
		sampleIds[i] = fmt.Sprintf("%016X", p.Hash())
	}
}

// Create and insert the sample puzzles
func insertSamples(tx *pgx.Tx) error {
	// idempotency: if the first sample already exists, we are done
	var count int64
	row := tx.QueryRow("SELECT COUNT(*) FROM puzzles "+
		"WHERE puzzleId = $1", sampleIds[0])
	if err := row.Scan(&count); err != nil {
		return fmt.Errorf("Database error looking for sample puzzles: %v", err)
	}
	if count > 0 {
		return nil
	}

	// get the timestamp of this load
	now := time.Now()

	for i, sample := range samplePuzzles {
		_, err := tx.Exec(
			"INSERT INTO puzzles (puzzleId, name, sideLength, line, created) "+
				"VALUES ($1, $2, $3, $4, $5)",
			sampleIds[i], sample.name, int32(samplePointers[i].SideLength()), sample.line, now)
		if err != nil {
			return fmt.Errorf("Database error saving sample puzzle %d: %v", i, err)
		}
	}
	return nil
}

// Delete the sample puzzles
func deleteSamples(tx *pgx.Tx) error {
	for i, id := range sampleIds {
		_, err := tx.Exec(
			"DELETE from puzzles where puzzleId = $1", id)
		if err != nil {
			return fmt.Errorf("Database error deleting sample puzzle %d: %v", i, err)
		}
	}
	return nil
}
