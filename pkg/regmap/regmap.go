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

// Package regmap aggregates parsed register entries into peripherals.  A
// peripheral is identified by the trailing segment of an entry's tree context
// and occupies the address span from its lowest register to one register
// width past its highest.
package regmap

import (
	"strings"

	"github.com/consensys/go-permap/pkg/per"
)

// RegisterWidth is the assumed width of every register, in bytes.
const RegisterWidth = 4

// SuspiciousSize bounds how large a peripheral can plausibly be, in bytes.
// Anything beyond this usually means entries resolved against the wrong base
// address.
const SuspiciousSize uint64 = 1000000

// Peripheral is a group of registers sharing a peripheral name, along with
// the address span they occupy.
type Peripheral struct {
	// Peripheral name (trailing tree segment), e.g. "UART0".
	Name string `json:"name"`
	// Lowest register address.
	Start uint64 `json:"start"`
	// One register width past the highest register address.
	End uint64 `json:"end"`
	// Registers belonging to this peripheral, in file order.
	Registers []per.Entry `json:"registers"`
}

// Size returns the peripheral's address span in bytes.
func (p *Peripheral) Size() uint64 {
	return p.End - p.Start
}

// Suspicious checks whether this peripheral's span is implausibly large.
func (p *Peripheral) Suspicious() bool {
	return p.Size() > SuspiciousSize
}

// Contains checks whether the given address falls within this peripheral's
// span.
func (p *Peripheral) Contains(address uint64) bool {
	return address >= p.Start && address < p.End
}

// Group partitions entries by peripheral name, preserving the order in which
// peripherals first appear.
func Group(entries []per.Entry) []Peripheral {
	var (
		peripherals []Peripheral
		index       = make(map[string]int)
	)
	//
	for _, entry := range entries {
		name := PeripheralName(entry.Tree)
		//
		i, ok := index[name]
		if !ok {
			i = len(peripherals)
			index[name] = i
			peripherals = append(peripherals, Peripheral{
				Name:  name,
				Start: entry.Address,
				End:   entry.Address + RegisterWidth,
			})
		}
		//
		p := &peripherals[i]
		p.Registers = append(p.Registers, entry)
		p.Start = min(p.Start, entry.Address)
		p.End = max(p.End, entry.Address+RegisterWidth)
	}
	//
	return peripherals
}

// PeripheralName extracts the peripheral name from a tree context: the
// trailing path segment, so "Peripherals: UART0: " yields "UART0".  Entries
// with no tree context map to "".
func PeripheralName(tree string) string {
	segments := strings.Split(strings.Trim(tree, ": "), ":")
	//
	return strings.TrimSpace(segments[len(segments)-1])
}

// Covering returns the peripheral whose span contains the given address, if
// any.  With overlapping spans, the first (in grouping order) wins.
func Covering(peripherals []Peripheral, address uint64) (Peripheral, bool) {
	for _, p := range peripherals {
		if p.Contains(address) {
			return p, true
		}
	}
	//
	return Peripheral{}, false
}
