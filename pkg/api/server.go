// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package api serves parsed register maps over HTTP, so that other debugger
// tooling can query them without re-parsing the .per files.  All maps are
// parsed up-front and immutable thereafter, hence safe for concurrent
// readers.
package api

import (
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"

	"github.com/consensys/go-permap/pkg/per"
	"github.com/consensys/go-permap/pkg/regmap"
)

// RegisterMap is the fully parsed form of one .per file.
type RegisterMap struct {
	// File this map was parsed from (base name only).
	File string `json:"file"`
	// CPU identifier the conditional blocks were resolved against, or ""
	// when no filtering was applied.
	CPU string `json:"cpu,omitempty"`
	// Resolved register entries, in file order.
	Registers []per.Entry `json:"registers"`
	// Entries grouped into peripherals.
	Peripherals []regmap.Peripheral `json:"peripherals"`
}

// NewRegisterMap assembles a register map from parsed entries.
func NewRegisterMap(filename string, cpu string, entries []per.Entry) *RegisterMap {
	return &RegisterMap{
		File:        filepath.Base(filename),
		CPU:         cpu,
		Registers:   entries,
		Peripherals: regmap.Group(entries),
	}
}

// Server is the HTTP API server over a set of register maps.
type Server struct {
	router chi.Router
	maps   map[string]*RegisterMap
	// File names in load order.
	files []string
}

// NewServer creates and configures the HTTP server.
func NewServer(maps []*RegisterMap) *Server {
	s := &Server{maps: make(map[string]*RegisterMap)}
	//
	for _, m := range maps {
		s.maps[m.File] = m
		s.files = append(s.files, m.File)
	}
	//
	s.setupRoutes()
	//
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/health", s.handleHealth)
	r.Get("/api/files", s.handleFiles)
	r.Get("/api/files/{file}/registers", s.handleRegisters)
	r.Get("/api/files/{file}/peripherals", s.handlePeripherals)
	r.Get("/api/files/{file}/lookup", s.handleLookup)

	s.router = r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Debugf("%s %s (%v)", r.Method, r.URL.Path, time.Since(start))
	})
}
