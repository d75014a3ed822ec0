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
	"log"
	"time"

	"github.com/ancientHacker/taquin.go/puzzle"
	"github.com/gomodule/redigo/redis"
)

// defaultPuzzleName is the seeded puzzle a session falls back to
// when asked to start an unknown one.
const defaultPuzzleName = "classic-3x3"

// A Session tracks the user's current step in the solution of
// his current puzzle.  Behind the scenes, we persist all the
// prior steps the user has taken in this solution, so he can go
// back (undo) prior moves.  Each step is persisted as the line
// encoding of the puzzle at that step.
type Session struct {
	// these elements are persisted as part of the session
	SID     string // session ID
	PID     string // ID of puzzle being solved
	Step    int    // current step
	Created string // RFC3339 time when the session was created
	Saved   string // RFC3339 time when the session was last saved

	// the current step's puzzle is persisted in the step list
	Puzzle *puzzle.Puzzle `redis:"-"`
}

/*

session manipulation

*/

// StartPuzzle: set the puzzle ID for the current session and
// clear any existing solver steps for that puzzle ID.  If the
// given puzzle ID is empty, try using the session's current
// puzzle ID.  If the given puzzle ID is the special value
// "default" (or unknown), use the default puzzle.
func (session *Session) StartPuzzle(pid string) {
	// change to the given pid, making sure it's valid
	if pid == "" {
		pid = session.PID
	}
	var pe *puzzleEntry
	if pid != "" && pid != "default" {
		if found, ok := findPuzzleEntry(pid); ok {
			pe = found
		}
	}
	if pe == nil {
		pe = &puzzleEntry{}
		pe.databaseLoadByName(defaultPuzzleName)
	}
	session.PID = pe.PuzzleId
	session.Puzzle = pe.makePuzzle()

	// update the cache
	session.Saved = time.Now().Format(time.RFC3339)
	if session.Created == "" {
		session.Created = session.Saved
	}
	session.Step = 1
	line := session.Puzzle.Line()
	body := func(tx redis.Conn) (err error) {
		tx.Send("HMSET", redis.Args{}.Add(session.key()).AddFlat(session)...)
		tx.Send("DEL", session.stepsKey())
		_, err = tx.Do("RPUSH", session.stepsKey(), line)
		if err != nil {
			log.Printf("Redis error on save of session %q after reset: %v", session.SID, err)
		}
		return
	}
	rdExecute(body)
	log.Printf("Reset session %v to start solving puzzle %q.", session.SID, session.PID)
}

// AddStep: add a new current step with the current puzzle.
// Callers apply a move to session.Puzzle and then record it
// here.
func (session *Session) AddStep() {
	// update the cache
	session.Saved = time.Now().Format(time.RFC3339)
	session.Step++
	line := session.Puzzle.Line()
	body := func(tx redis.Conn) (err error) {
		tx.Send("HMSET", redis.Args{}.Add(session.key()).AddFlat(session)...)
		_, err = tx.Do("RPUSH", session.stepsKey(), line)
		if err != nil {
			log.Printf("Redis error on save of %s:%q step %d: %v",
				session.SID, session.PID, session.Step, err)
		}
		return
	}
	rdExecute(body)
	log.Printf("Added session %v:%v step %d.", session.SID, session.PID, session.Step)
}

// RemoveStep: remove the last step and restore the prior step's
// puzzle.
func (session *Session) RemoveStep() {
	if session.Step <= 1 {
		// nothing to do
		return
	}

	// load the puzzle from the cache
	var bytes []byte
	session.Saved = time.Now().Format(time.RFC3339)
	session.Step--
	body := func(tx redis.Conn) (err error) {
		tx.Send("HMSET", redis.Args{}.Add(session.key()).AddFlat(session)...)
		tx.Send("LTRIM", session.stepsKey(), 0, -2)
		bytes, err = redis.Bytes(tx.Do("LINDEX", session.stepsKey(), -1))
		if err != nil {
			log.Printf("Error on remove to %s:%q step %d: %v",
				session.SID, session.PID, session.Step, err)
		}
		return
	}
	rdExecute(body)
	session.unmarshalStep(bytes)
	log.Printf("Reverted session %v:%v to step %d.", session.SID, session.PID, session.Step)
}

// Lookup: lookup a session for an ID
func (session *Session) Lookup() (found bool) {
	body := func(tx redis.Conn) error {
		vals, err := redis.Values(tx.Do("HGETALL", session.key()))
		if len(vals) > 0 {
			if err := redis.ScanStruct(vals, session); err != nil {
				log.Printf("Redis error on parse of saved session %q: %v", session.SID, err)
				return err
			}
			found = true
			return nil
		}
		if err != nil {
			log.Printf("Redis error on GET of session %q pid: %v", session.SID, err)
			return err
		}
		log.Printf("No redis saved state for session %q", session.SID)
		return nil
	}
	rdExecute(body)
	return
}

// LoadStep: load the current step from the saved step list
func (session *Session) LoadStep() {
	var bytes []byte
	body := func(tx redis.Conn) (err error) {
		bytes, err = redis.Bytes(tx.Do("LINDEX", session.stepsKey(), -1))
		if err != nil {
			log.Printf("Error on load of %s:%q step %d: %v",
				session.SID, session.PID, session.Step, err)
		}
		return
	}
	rdExecute(body)
	session.unmarshalStep(bytes)
}

/*

serialization of puzzle state into and out of the cache

*/

// unmarshalStep - get the puzzle for a saved step line
func (session *Session) unmarshalStep(bytes []byte) {
	p, err := puzzle.Parse(string(bytes))
	if err != nil {
		log.Printf("Failed to parse saved line of %s:%q step %d: %v",
			session.SID, session.PID, session.Step, err)
		panic(err)
	}
	session.Puzzle = p
}

/*

session key generation

*/

// key - returns the session key
func (session *Session) key() string {
	return rdEnv + ":SID:" + session.SID
}

// stepsKey - returns the key for the session's step array
func (session *Session) stepsKey() string {
	return session.key() + ":Steps"
}
