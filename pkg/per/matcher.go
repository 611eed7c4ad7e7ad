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

import (
	"regexp"
	"strings"

	"github.com/consensys/go-permap/pkg/util"
)

// This file defines one matcher per kind of line the scanner recognises.
// Every matcher anchors at the start of the (already trimmed) line and
// returns a structured match, so callers never handle raw capture groups.
// The patterns themselves are deliberately permissive: .per files are
// externally authored and lines which fail to match are simply skipped.

var (
	// tree "<name>"
	treeRegex = regexp.MustCompile(`^tree\s+"([^"]+)"`)
	// base <anything> 0x<hex>, capturing the last hex literal on the line.
	baseRegex = regexp.MustCompile(`^base.*(0x[0-9A-Fa-f]+)`)
	// group.<type> [(] [0x<hex>+] <offset> [)] ++<size> ["<name>"]
	groupRegex = regexp.MustCompile(
		`^group\.(?P<type>\w+) \(?(?P<baseAddr>0x[0-9A-Fa-f]+)*?\+?(?P<offset>[.x:a-fA-F0-9]+)\)?\+\+(?:0x[A-Fa-f0-9]+)( "(?P<name>[^"]+)")?`)
	// line.<label> <offset> "<name>"
	lineNameRegex = regexp.MustCompile(`^line\.(?:\w+)\s+[xa-fA-F0-9]+ "(.+)"`)
)

var (
	groupTypeIndex   = groupRegex.SubexpIndex("type")
	groupBaseIndex   = groupRegex.SubexpIndex("baseAddr")
	groupOffsetIndex = groupRegex.SubexpIndex("offset")
	groupNameIndex   = groupRegex.SubexpIndex("name")
)

// GroupMatch captures the components of a register group declaration line.
type GroupMatch struct {
	// Declared type tag (the token following "group.").
	Type string
	// Inline base address literal, or "" when the declaration resolves
	// against the tracked base address.
	BaseAddr string
	// Offset token, as written: hex (with or without an 0x prefix),
	// decimal with a trailing dot, or label-qualified (e.g. "AHB:0x100").
	Offset string
	// Inline quoted name, or "" when the name follows on the next line.
	Name string
}

// Directive identifies a conditional preprocessor keyword.
type Directive int

// The recognised conditional keywords.  DirectiveNone marks a line which is
// not a conditional keyword at all.
const (
	DirectiveNone Directive = iota
	DirectiveSif
	DirectiveElif
	DirectiveElse
	DirectiveEndif
)

// MatchDirective classifies a conditional keyword line, also returning the
// condition string for sif and elif.
func MatchDirective(line string) (Directive, string) {
	switch {
	case strings.HasPrefix(line, "sif "):
		return DirectiveSif, strings.TrimSpace(line[4:])
	case strings.HasPrefix(line, "elif "):
		return DirectiveElif, strings.TrimSpace(line[5:])
	case strings.HasPrefix(line, "else"):
		return DirectiveElse, ""
	case strings.HasPrefix(line, "endif"):
		return DirectiveEndif, ""
	}
	//
	return DirectiveNone, ""
}

// MatchTree attempts to match a tree declaration, returning the declared
// tree name.
func MatchTree(line string) util.Option[string] {
	if m := treeRegex.FindStringSubmatch(line); m != nil {
		return util.Some(m[1])
	}
	//
	return util.None[string]()
}

// IsTreeEnd checks whether a line closes the current tree scope.
func IsTreeEnd(line string) bool {
	return strings.HasPrefix(line, "tree") && strings.Contains(line, "tree.end")
}

// MatchBase attempts to match a base address declaration, returning the hex
// literal as written (e.g. "0x40000000").
func MatchBase(line string) util.Option[string] {
	if m := baseRegex.FindStringSubmatch(line); m != nil {
		return util.Some(m[1])
	}
	//
	return util.None[string]()
}

// MatchGroup attempts to match a register group declaration.
func MatchGroup(line string) util.Option[GroupMatch] {
	m := groupRegex.FindStringSubmatch(line)
	if m == nil {
		return util.None[GroupMatch]()
	}
	//
	return util.Some(GroupMatch{
		Type:     m[groupTypeIndex],
		BaseAddr: m[groupBaseIndex],
		Offset:   m[groupOffsetIndex],
		Name:     m[groupNameIndex],
	})
}

// MatchLineName attempts to match a register line declaration of the form
// `line.<label> <offset> "<name>"`, returning the quoted name.  Group
// declarations without an inline name are followed by one of these.
func MatchLineName(line string) util.Option[string] {
	if m := lineNameRegex.FindStringSubmatch(line); m != nil {
		return util.Some(m[1])
	}
	//
	return util.None[string]()
}
