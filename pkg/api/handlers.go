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
package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/consensys/go-permap/pkg/regmap"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// handleFiles lists the loaded register maps.
func (s *Server) handleFiles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{"files": s.files})
}

// handleRegisters returns the resolved entries of one file, in file order.
func (s *Server) handleRegisters(w http.ResponseWriter, r *http.Request) {
	m, ok := s.maps[chi.URLParam(r, "file")]
	if !ok {
		jsonError(w, "unknown file", http.StatusNotFound)
		return
	}
	//
	writeJSON(w, map[string]any{"file": m.File, "cpu": m.CPU, "registers": m.Registers})
}

// handlePeripherals returns the grouped peripherals of one file.
func (s *Server) handlePeripherals(w http.ResponseWriter, r *http.Request) {
	m, ok := s.maps[chi.URLParam(r, "file")]
	if !ok {
		jsonError(w, "unknown file", http.StatusNotFound)
		return
	}
	//
	writeJSON(w, map[string]any{"file": m.File, "cpu": m.CPU, "peripherals": m.Peripherals})
}

// handleLookup resolves an address (e.g. ?addr=0x40001000) to the peripheral
// covering it.
func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	m, ok := s.maps[chi.URLParam(r, "file")]
	if !ok {
		jsonError(w, "unknown file", http.StatusNotFound)
		return
	}
	//
	address, err := strconv.ParseUint(r.URL.Query().Get("addr"), 0, 64)
	if err != nil {
		jsonError(w, "addr query parameter must be a hex or decimal address", http.StatusBadRequest)
		return
	}
	//
	peripheral, ok := regmap.Covering(m.Peripherals, address)
	if !ok {
		jsonError(w, "no peripheral covers this address", http.StatusNotFound)
		return
	}
	//
	writeJSON(w, peripheral)
}

func writeJSON(w http.ResponseWriter, val any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(val)
}

func jsonError(w http.ResponseWriter, msg string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
