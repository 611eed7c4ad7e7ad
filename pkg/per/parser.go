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
	"fmt"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/consensys/go-permap/pkg/util/collection/stack"
)

// Parser extracts register declarations from a single .per source file.  A
// parser owns all of its scanning state (tree stack, base address, condition
// stack, output), so distinct parses never share state and parsing the same
// file twice yields identical results.
type Parser struct {
	src *SourceFile
	// Target CPU identifier, or "" to include every conditional branch.
	cpu string
	// Most recently seen base address literal (e.g. "0x40000000"), or ""
	// before any base declaration.  This is scan-wide state: it is not
	// scoped to tree or conditional nesting.
	baseAddr string
	// Currently open tree scopes, innermost on top.
	trees *stack.Stack[string]
	// Currently open conditional blocks.
	conds *conditions
	// Entries resolved so far, in file order.
	entries []Entry
}

// NewParser constructs a parser for the given source file.  An empty cpu
// disables CPU filtering, so every reachable conditional branch is included.
func NewParser(src *SourceFile, cpu string) *Parser {
	return &Parser{
		src:   src,
		cpu:   cpu,
		trees: stack.NewStack[string](),
		conds: newConditions(),
	}
}

// ParseFile reads and parses the .per file at the given path.  An unreadable
// file is the only fatal condition; malformed content within the file is
// skipped on a best-effort basis, and an empty result simply means the file
// contained no extractable register declarations.
func ParseFile(filename string, cpu string) ([]Entry, error) {
	src, err := ReadSourceFile(filename)
	if err != nil {
		return nil, err
	}
	//
	return NewParser(src, cpu).Parse(), nil
}

// Parse scans the file and returns the resolved entries in file order.
func (p *Parser) Parse() []Entry {
	p.reset()
	//
	for index := 0; index < p.src.Len(); index++ {
		p.scanLine(index, p.src.Line(index))
	}
	//
	return p.entries
}

func (p *Parser) reset() {
	p.baseAddr = ""
	p.trees.Clear()
	p.conds = newConditions()
	p.entries = nil
}

// scanLine processes a single line of the file.  Tree and base-address
// tracking run on every line regardless of conditional state; conditional
// keywords update the block stack; any other line is offered to the extractor
// when the enclosing blocks are active.
func (p *Parser) scanLine(index int, line string) {
	p.trackTree(line)
	p.trackBase(line)
	//
	directive, cond := MatchDirective(line)
	//
	switch directive {
	case DirectiveSif:
		p.conds.enter(EvaluateCondition(cond, p.cpu))
	case DirectiveElif:
		p.conds.branch(func() bool { return EvaluateCondition(cond, p.cpu) })
	case DirectiveElse:
		p.conds.alternative()
	case DirectiveEndif:
		p.conds.exit()
	default:
		if p.considered() {
			if entry, ok := p.extract(index, line); ok {
				p.entries = append(p.entries, entry)
			}
		}
	}
}

// considered determines whether the current line's enclosing conditional
// blocks are active.  An empty CPU disables conditional gating entirely, so
// that every reachable branch (including elif and else bodies) contributes
// entries; the block stack is still maintained so nesting stays balanced.
func (p *Parser) considered() bool {
	return p.cpu == "" || p.conds.considered
}

// trackTree updates the tree stack.  Closing an already empty scope is
// tolerated silently, since malformed nesting must not abort the scan.
func (p *Parser) trackTree(line string) {
	if IsTreeEnd(line) {
		p.trees.Pop()
	} else if name := MatchTree(line); name.HasValue() {
		p.trees.Push(name.Unwrap())
	}
}

// trackBase updates the running base address, overwriting any previous value.
func (p *Parser) trackBase(line string) {
	if addr := MatchBase(line); addr.HasValue() {
		p.baseAddr = addr.Unwrap()
	}
}

// extract attempts to interpret a line as a register group declaration,
// consulting the following line for the name when the declaration does not
// carry one inline.  Declarations whose name cannot be found, or whose
// address fails to resolve, are dropped.
func (p *Parser) extract(index int, line string) (Entry, bool) {
	match := MatchGroup(line)
	if match.IsEmpty() {
		return Entry{}, false
	}
	//
	group := match.Unwrap()
	name := group.Name
	// Look ahead to the next line for the name
	if name == "" && index+1 < p.src.Len() {
		name = MatchLineName(p.src.Line(index + 1)).UnwrapOr("")
	}
	// On rare occasion no name is found at all.  Usually an error in the
	// .per file itself.
	if name == "" {
		log.Debugf("%s:%d: no name found for %q", p.src.Filename(), index+1, line)
		return Entry{}, false
	}
	//
	baseAddr, offset := group.BaseAddr, group.Offset
	if baseAddr == "" {
		baseAddr = p.baseAddr
	}
	// With no base address in play at all, the offset itself must be the
	// base address.
	if baseAddr == "" {
		baseAddr, offset = offset, "0x0"
	}
	// Strip any "label:" qualifier.
	offset = afterLastColon(offset)
	baseAddr = afterLastColon(baseAddr)
	//
	address, err := ResolveAddress(baseAddr, offset)
	if err != nil {
		log.Warnf("%s:%d: %v", p.src.Filename(), index+1, err)
		return Entry{}, false
	}
	//
	return Entry{address, group.Type, strings.TrimSpace(name), p.treePath()}, true
}

// treePath returns the current tree context as a qualified path, e.g.
// "Peripherals: UART0: ", or "" when no tree scope is open.
func (p *Parser) treePath() string {
	if p.trees.IsEmpty() {
		return ""
	}
	//
	return strings.Join(p.trees.Elements(), ": ") + ": "
}

// ResolveAddress computes an absolute address from a base address literal and
// an offset token.  The base address is always hexadecimal (with or without
// an 0x prefix).  The offset is hexadecimal when prefixed with "0x"; decimal
// when written with a trailing dot (Lauterbach decimal notation); otherwise
// decimal.
func ResolveAddress(baseAddr string, offset string) (uint64, error) {
	var (
		off uint64
		err error
	)
	//
	base, err := strconv.ParseUint(strings.TrimPrefix(baseAddr, "0x"), 16, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid base address %q", baseAddr)
	}
	//
	switch {
	case strings.HasPrefix(offset, "0x"):
		off, err = strconv.ParseUint(offset[2:], 16, 64)
	case strings.Contains(offset, "."):
		off, err = strconv.ParseUint(strings.TrimRight(offset, "."), 10, 64)
	default:
		off, err = strconv.ParseUint(offset, 10, 64)
	}
	//
	if err != nil {
		return 0, fmt.Errorf("invalid offset %q", offset)
	}
	//
	return base + off, nil
}

// afterLastColon keeps only the substring following the last colon, leaving
// strings without a colon untouched.
func afterLastColon(s string) string {
	return s[strings.LastIndexByte(s, ':')+1:]
}
