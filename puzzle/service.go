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
	"encoding/json"
	"fmt"
	"net/http"
)

/*

Puzzle Creation

*/

// NewHandler is a POST handler that reads a JSON-encoded Summary
// value from the request body and calls FromSummary on it to
// create a new Puzzle.  The new Puzzle's Summary is sent as a
// 200 response, and the new puzzle itself is returned to the
// golang caller.  If the return value from FromSummary is an
// error, then the error is sent as a 400 response and also
// returned to the caller.
//
// If we can't decode the posted Summary, we send a 400 reponse
// and return the error to the caller.
//
// If we can't encode the response to the client (which should
// never happen), then the client gets an error response and the
// golang caller gets both the puzzle and the encoding Error (as
// a signal that the client didn't get the correct response).
func NewHandler(w http.ResponseWriter, r *http.Request) (*Puzzle, error) {
	dec := json.NewDecoder(r.Body)
	var summary Summary
	e := dec.Decode(&summary)
	if e != nil {
		return nil, writeError(requestDecodingError, ErrorData{e.Error()}, w, r)
	}
	p, e := FromSummary(&summary)
	if e != nil {
		err, ok := e.(Error)
		if !ok {
			return nil, writeError(errorFormatError, ErrorData{"NewHandler", e.Error()}, w, r)
		}
		err.Message = err.Error()
		return nil, writeJSON(err, http.StatusBadRequest, w, r)
	}
	return p, p.SummaryHandler(w, r)
}

/*

Puzzle Download Methods

*/

// SummaryHandler responds with the Puzzle's Summary.  If we
// can't encode the response to the client successfully, we give
// both the client and the golang caller an Error response.
func (p *Puzzle) SummaryHandler(w http.ResponseWriter, r *http.Request) error {
	if p == nil {
		return writeError(noPuzzleError, ErrorData{r.URL.Path, "No puzzle"}, w, r)
	}
	return writeJSON(p.Summary(), http.StatusOK, w, r)
}

// MovesHandler responds with a Summary for every legal successor
// of the Puzzle, in Up, Down, Left, Right order.  If we can't
// encode the response to the client successfully, we give both
// the client and the golang caller an Error response.
func (p *Puzzle) MovesHandler(w http.ResponseWriter, r *http.Request) error {
	if p == nil {
		return writeError(noPuzzleError, ErrorData{r.URL.Path, "No puzzle"}, w, r)
	}
	moves := p.LegalMoves()
	summaries := make([]*Summary, len(moves))
	for i, m := range moves {
		summaries[i] = m.Summary()
	}
	return writeJSON(summaries, http.StatusOK, w, r)
}

/*

Puzzle Updates

*/

// A MoveRequest names a requested travel of the blank, for
// posting.
type MoveRequest struct {
	Direction string `json:"direction"`
}

// MoveHandler is a POST handler that applies a posted direction
// to a puzzle.  The poster and the caller both get the moved
// puzzle's Summary (or the error; a blocked move is a 400, and
// clients should expect them as the normal way of probing
// unavailable directions).
//
// If we can't decode the posted direction, we send a 400
// reponse and return the error to the caller.
//
// If we can't encode the response to the client (which should
// never happen), then the client gets an error response and the
// golang caller gets both the update and the encoding Error (as
// a signal that the client didn't get the update).
func (p *Puzzle) MoveHandler(w http.ResponseWriter, r *http.Request) (*Summary, error) {
	if p == nil {
		return nil, writeError(noPuzzleError, ErrorData{r.URL.Path, "No puzzle"}, w, r)
	}
	dec := json.NewDecoder(r.Body)
	var req MoveRequest
	e := dec.Decode(&req)
	if e != nil {
		return nil, writeError(requestDecodingError, ErrorData{e.Error()}, w, r)
	}
	d, ok := ParseDirection(req.Direction)
	if !ok {
		err := Error{
			Scope:     RequestScope,
			Structure: AttributeValueStructure,
			Attribute: DirectionAttribute,
			Condition: UnknownDirectionCondition,
			Values:    ErrorData{req.Direction},
		}
		err.Message = err.Error()
		return nil, writeJSON(err, http.StatusBadRequest, w, r)
	}
	e = p.Move(d)
	if e != nil {
		err, ok := e.(Error)
		if !ok {
			return nil, writeError(errorFormatError, ErrorData{"MoveHandler", e.Error()}, w, r)
		}
		err.Message = err.Error()
		return nil, writeJSON(err, http.StatusBadRequest, w, r)
	}
	summary := p.Summary()
	return summary, writeJSON(summary, http.StatusOK, w, r)
}

/*

Utilities

*/

type handlerError int

const (
	requestDecodingError handlerError = iota
	responseEncodingError
	noPuzzleError
	errorFormatError
)

// writeError sends back a server error of the given type, sort
// of like http.Error, but it sends the JSON form of an
// appropriate Error.
func writeError(et handlerError, ed ErrorData,
	w http.ResponseWriter, r *http.Request) error {
	var err Error
	var status int
	switch et {
	case requestDecodingError:
		status = http.StatusBadRequest
		err = Error{
			Scope:     RequestScope,
			Structure: AttributeStructure,
			Attribute: DecodeAttribute,
			Condition: GeneralCondition,
			Values:    ed,
		}
	case responseEncodingError:
		status = http.StatusInternalServerError
		err = Error{
			Scope:     InternalScope,
			Structure: AttributeStructure,
			Attribute: EncodeAttribute,
			Condition: GeneralCondition,
			Values:    ed,
		}
	case noPuzzleError:
		status = http.StatusNotFound
		err = Error{
			Scope:     RequestScope,
			Structure: AttributeValueStructure,
			Attribute: URLAttribute,
			Condition: GeneralCondition,
			Values:    ed,
		}
	case errorFormatError:
		status = http.StatusInternalServerError
		err = Error{
			Scope:     InternalScope,
			Structure: AttributeStructure,
			Attribute: LocationAttribute,
			Condition: GeneralCondition,
			Values:    ed,
		}
	default:
		status = http.StatusInternalServerError
		err = Error{
			Scope:     InternalScope,
			Structure: AttributeStructure,
			Attribute: LocationAttribute,
			Condition: GeneralCondition,
			Values: ErrorData{
				"writeError",
				fmt.Sprintf("Unknown handler error type (%v)", et),
			},
		}
	}
	err.Message = err.Error()
	return writeJSON(err, status, w, r)
}

// writeJSON is called by handlers to encode and send the client
// response.  It returns an appropriate error status for the
// handler to return to its caller, as follows:
//
// 1. If writeJSON encounters an encoding error sending the
// response, it will create an Error object describing the
// failure, encode that Error as a 500-series response to the
// client, and return that Error to the handler.
//
// 2. If no encoding error occurs, but the handler is sending an
// Error object as the response to the client, writeJSON will
// return that same Error to the handler.
//
// 3. If no encoding error occurs, and the handler is sending a
// non-Error object as the response to the client, writeJSON will
// return nil to the handler.
func writeJSON(obj interface{}, status int, w http.ResponseWriter, r *http.Request) error {
	err, isErr := obj.(Error)
	bytes, e := json.Marshal(obj)
	if e != nil {
		if isErr && err.Scope == InternalScope && err.Attribute == EncodeAttribute {
			// We just failed to encode an Encoding error.  This
			// should never happen!!  If it did, it almost
			// certainly means that the JSON encoding system is
			// dead, so pseudo-encode the error by hand by
			// returning the Error's summary as a quoted string.
			status = http.StatusInternalServerError // probably was already!
			bytes = []byte(fmt.Sprintf("%q", err.Error()))
		} else {
			// generate, send, and return an encoding error
			return writeError(responseEncodingError, ErrorData{e.Error()}, w, r)
		}
	}
	hs := w.Header()
	hs.Add("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(bytes)
	if isErr {
		return err
	}
	return nil
}
