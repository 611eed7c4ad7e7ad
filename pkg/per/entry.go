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
package per

import "fmt"

// Entry represents a single resolved register declaration extracted from a
// .per file.  Entries are immutable once created, and appear in the output
// sequence in the order their declarations appear in the file.
type Entry struct {
	// Absolute address of the register group.
	Address uint64 `json:"address"`
	// Type tag from the group declaration (e.g. "LONG").
	Type string `json:"type"`
	// Name of the register group.
	Name string `json:"name"`
	// Tree context under which the declaration appeared, as a qualified
	// path such as "Peripherals: UART0: ", or "" at the top level.  This
	// is a snapshot taken when the entry was created, not a live view of
	// the tree stack.
	Tree string `json:"tree"`
}

func (e Entry) String() string {
	return fmt.Sprintf("0x%x %s %s%s", e.Address, e.Type, e.Tree, e.Name)
}
