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

// The taquin web server: sliding-tile puzzles over a JSON API,
// with sessions and step history in storage.
package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ancientHacker/taquin.go/storage"
)

const cookieName = "taquinID"
const cookiePath = "/"

var startTime = time.Now()

// getCookie gets the session cookie, or sets a new one.  It
// returns the session ID associated with the cookie.
//
// Browser tabs which use different source protocols must get
// different sessions even if they submit the same cookie, so the
// protocol (as forwarded by the router, when there is one) is
// part of the session ID.
func getCookie(w http.ResponseWriter, r *http.Request) string {
	proto := "httpx" // absent other indicators, protocol is unknown

	// router-transported protocols are specified in a header
	if forwardedProtocol := r.Header.Get("X-Forwarded-Proto"); forwardedProtocol != "" {
		proto = forwardedProtocol
	}

	// check for an existing cookie whose value matches the protocol
	if sc, e := r.Cookie(cookieName); e == nil {
		if m, e := regexp.MatchString(proto+"-[0-9a-z]{3,}", sc.Value); e == nil && m {
			return sc.Value
		}
	}

	// no session cookie or not a valid session cookie,
	// start a new session with a new cookie
	sid := proto + "-" + strconv.FormatInt(int64(time.Now().Sub(startTime)), 36)
	sc := &http.Cookie{Name: cookieName, Value: sid, Path: cookiePath}
	http.SetCookie(w, sc)
	return sid
}

// sessionSelect finds the stored session for the request's
// cookie, or starts a new one on the default puzzle.
func sessionSelect(w http.ResponseWriter, r *http.Request) *storage.Session {
	session := &storage.Session{SID: getCookie(w, r)}
	if session.Lookup() {
		session.LoadStep()
		return session
	}
	session.StartPuzzle("default")
	return session
}

// apiHandler routes the JSON API: current state, legal
// successors, posted moves, and undo.
func apiHandler(session *storage.Session, w http.ResponseWriter, r *http.Request) {
	switch {
	case strings.HasPrefix(r.URL.Path, "/api/state"):
		session.Puzzle.SummaryHandler(w, r)
		log.Printf("Returned current state.")
	case strings.HasPrefix(r.URL.Path, "/api/moves"):
		session.Puzzle.MovesHandler(w, r)
		log.Printf("Returned legal moves.")
	case strings.HasPrefix(r.URL.Path, "/api/move"):
		if r.Method != "POST" {
			log.Printf("%s unexpected; no action taken.", r.Method)
			http.Error(w, "move must be a POST", http.StatusMethodNotAllowed)
			return
		}
		_, e := session.Puzzle.MoveHandler(w, r)
		if e != nil {
			log.Printf("Move failed, returned error, no session change.")
		} else {
			log.Printf("Move succeeded, returned update.")
			session.AddStep()
		}
	case strings.HasPrefix(r.URL.Path, "/api/back"):
		session.RemoveStep()
		session.Puzzle.SummaryHandler(w, r)
	case strings.HasPrefix(r.URL.Path, "/api/puzzles"):
		infos := storage.ListPuzzles()
		w.Header().Add("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(infos); err != nil {
			log.Printf("Failed to encode puzzle list: %v", err)
		}
	default:
		http.NotFound(w, r)
	}
}

// safely wraps a handler against panics out of the storage
// layer, which signal lost backing services rather than bad
// requests.
func safely(handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if e := recover(); e != nil {
				log.Printf("Storage failure handling %s %s: %v", r.Method, r.URL.Path, e)
				http.Error(w, "storage failure", http.StatusInternalServerError)
			}
		}()
		handler(w, r)
	}
}

func main() {
	if _, _, err := storage.Connect(); err != nil {
		log.Fatalf("Couldn't connect to storage: %v", err)
	}
	defer storage.Close()

	http.HandleFunc("/", safely(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("Handling %s %s...", r.Method, r.URL.Path)
		session := sessionSelect(w, r)
		switch {
		case strings.HasPrefix(r.URL.Path, "/reset/"):
			if len(r.URL.Path) > len("/reset/") {
				session.StartPuzzle(r.URL.Path[len("/reset/"):])
			} else {
				session.StartPuzzle("")
			}
			session.Puzzle.SummaryHandler(w, r)
		case strings.HasPrefix(r.URL.Path, "/api/"):
			apiHandler(session, w, r)
		default:
			http.Redirect(w, r, "/api/state", http.StatusFound)
		}
	}))

	// environment port sensing
	port := os.Getenv("PORT")
	if port == "" {
		// running locally in dev mode
		port = "localhost:8080"
	} else {
		// running as a true server
		port = ":" + port
	}

	log.Printf("Listening on %s...", port)
	err := http.ListenAndServe(port, nil)
	if err != nil {
		log.Fatal("Listener failure: ", err)
	}
}
