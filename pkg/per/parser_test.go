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
	"path/filepath"
	"reflect"
	"testing"
)

// ============================================================================
// Address resolution
// ============================================================================

func TestResolve_HexOffset(t *testing.T) {
	CheckAddress(t, "0x1000", "0x10", 0x1010)
}

func TestResolve_DottedDecimalOffset(t *testing.T) {
	CheckAddress(t, "0x1000", "4.", 0x1004)
}

func TestResolve_DecimalOffset(t *testing.T) {
	CheckAddress(t, "0x1000", "4", 0x1004)
}

func TestResolve_UnprefixedBase(t *testing.T) {
	CheckAddress(t, "4000", "8", 0x4008)
}

func TestResolve_ZeroAddress(t *testing.T) {
	// A genuine zero address resolves; only parse failures drop entries.
	CheckAddress(t, "0x0", "0", 0x0)
}

func TestResolve_BadBase(t *testing.T) {
	if _, err := ResolveAddress("64.", "0x0"); err == nil {
		t.Errorf("expected error for base \"64.\"")
	}
}

func TestResolve_BadOffset(t *testing.T) {
	if _, err := ResolveAddress("0x1000", "0x10x0"); err == nil {
		t.Errorf("expected error for offset \"0x10x0\"")
	}
}

// ============================================================================
// Basic extraction
// ============================================================================

func TestParse_Empty(t *testing.T) {
	CheckEntries(t, "", "")
}

func TestParse_TrackedBase(t *testing.T) {
	CheckEntries(t, `
base 0x1000
group.LONG 0x10++0x03 "REG"
`, "", Entry{0x1010, "LONG", "REG", ""})
}

func TestParse_BaseOverwrite(t *testing.T) {
	CheckEntries(t, `
base 0x1000
group.LONG 0x10++0x03 "R1"
base 0x2000
group.LONG 0x10++0x03 "R2"
`, "",
		Entry{0x1010, "LONG", "R1", ""},
		Entry{0x2010, "LONG", "R2", ""})
}

func TestParse_InlineBase(t *testing.T) {
	CheckEntries(t, `
base 0x1000
group.LONG (0x4000+0x8)++0x03 "REG"
`, "", Entry{0x4008, "LONG", "REG", ""})
}

func TestParse_OffsetAsBase(t *testing.T) {
	// No base address anywhere, so the offset is the base address.
	CheckEntries(t, `group.LONG 0x2000++0x03 "REG"`, "",
		Entry{0x2000, "LONG", "REG", ""})
}

func TestParse_LabelQualifiedOffsetAsBase(t *testing.T) {
	CheckEntries(t, `group.LONG D:0x3000++0x03 "REG"`, "",
		Entry{0x3000, "LONG", "REG", ""})
}

func TestParse_LabelQualifiedOffset(t *testing.T) {
	CheckEntries(t, `
base 0x1000
group.LONG D:0x30++0x03 "REG"
`, "", Entry{0x1030, "LONG", "REG", ""})
}

func TestParse_DottedDecimalOffset(t *testing.T) {
	CheckEntries(t, `
base 0x1000
group.SHORT 8.++0x03 "REG"
`, "", Entry{0x1008, "SHORT", "REG", ""})
}

func TestParse_LookaheadName(t *testing.T) {
	CheckEntries(t, `
base 0x1000
group.SHORT 8.++0x03
line.SHORT 0x08 "TCR Timer Control Register"
`, "", Entry{0x1008, "SHORT", "TCR Timer Control Register", ""})
}

func TestParse_MissingName(t *testing.T) {
	// No inline name and no name on the following line: dropped.
	CheckEntries(t, `
base 0x1000
group.SHORT 8.++0x03
base 0x2000
`, "")
}

func TestParse_MissingNameAtEof(t *testing.T) {
	CheckEntries(t, "base 0x1000\ngroup.SHORT 8.++0x03", "")
}

func TestParse_BadOffsetDropped(t *testing.T) {
	CheckEntries(t, `
base 0x1000
group.LONG 0x10x0++0x03 "BAD"
group.LONG 0x10++0x03 "GOOD"
`, "", Entry{0x1010, "LONG", "GOOD", ""})
}

// ============================================================================
// Tree tracking
// ============================================================================

func TestParse_TreePath(t *testing.T) {
	CheckEntries(t, `
tree "A"
tree "B"
group.LONG 0x1000++0x03 "R1"
tree.end
group.LONG 0x2000++0x03 "R2"
tree.end
group.LONG 0x3000++0x03 "R3"
`, "",
		Entry{0x1000, "LONG", "R1", "A: B: "},
		Entry{0x2000, "LONG", "R2", "A: "},
		Entry{0x3000, "LONG", "R3", ""})
}

func TestParse_TreeEndUnderflow(t *testing.T) {
	// Popping an empty tree stack is tolerated silently.
	CheckEntries(t, `
tree.end
tree "A"
group.LONG 0x1000++0x03 "R1"
`, "", Entry{0x1000, "LONG", "R1", "A: "})
}

// ============================================================================
// Conditional blocks
// ============================================================================

func TestParse_SifTaken(t *testing.T) {
	CheckEntries(t, sifElseInput, "X", Entry{0x1010, "LONG", "E1", ""})
}

func TestParse_ElseTaken(t *testing.T) {
	CheckEntries(t, sifElseInput, "Y", Entry{0x1020, "LONG", "E2", ""})
}

func TestParse_NoCpuTakesAllBranches(t *testing.T) {
	CheckEntries(t, sifElseInput, "",
		Entry{0x1010, "LONG", "E1", ""},
		Entry{0x1020, "LONG", "E2", ""})
}

func TestParse_ElifTaken(t *testing.T) {
	CheckEntries(t, elifChainInput, "B", Entry{0x1020, "LONG", "E2", ""})
}

func TestParse_ElifChainFallsThrough(t *testing.T) {
	CheckEntries(t, elifChainInput, "Z", Entry{0x1030, "LONG", "E3", ""})
}

func TestParse_ElifSkippedOnceMatched(t *testing.T) {
	CheckEntries(t, `
base 0x1000
sif (cpu()=="A")
group.LONG 0x10++0x03 "E1"
elif (cpu()=="A")
group.LONG 0x20++0x03 "E2"
endif
`, "A", Entry{0x1010, "LONG", "E1", ""})
}

func TestParse_NestedInactiveOuter(t *testing.T) {
	// An inner block can never reactivate an inactive outer scope.
	CheckEntries(t, `
base 0x1000
sif (cpu()=="A")
sif (cpu()=="B")
group.LONG 0x10++0x03 "E1"
endif
group.LONG 0x20++0x03 "E2"
endif
group.LONG 0x30++0x03 "E3"
`, "B", Entry{0x1030, "LONG", "E3", ""})
}

func TestParse_NestedActive(t *testing.T) {
	CheckEntries(t, `
base 0x1000
sif (cpu()=="A"||cpu()=="B")
sif (cpu()=="B")
group.LONG 0x10++0x03 "E1"
endif
group.LONG 0x20++0x03 "E2"
endif
`, "B",
		Entry{0x1010, "LONG", "E1", ""},
		Entry{0x1020, "LONG", "E2", ""})
}

func TestParse_StrayDirectives(t *testing.T) {
	// Stray elif/else/endif with no open block leave the scan untouched.
	CheckEntries(t, `
base 0x1000
elif (cpu()=="A")
group.LONG 0x10++0x03 "R1"
else
group.LONG 0x20++0x03 "R2"
endif
group.LONG 0x30++0x03 "R3"
`, "Z",
		Entry{0x1010, "LONG", "R1", ""},
		Entry{0x1020, "LONG", "R2", ""},
		Entry{0x1030, "LONG", "R3", ""})
}

func TestParse_BalancedConditionStack(t *testing.T) {
	p := parserFor(elifChainInput, "B")
	p.Parse()
	//
	if depth := p.conds.depth(); depth != 0 {
		t.Errorf("expected empty condition stack, got depth %d", depth)
	}
}

func TestParse_UnbalancedConditionStack(t *testing.T) {
	p := parserFor("sif (cpu()==\"A\")\nsif (cpu()==\"B\")\nendif", "A")
	p.Parse()
	//
	if depth := p.conds.depth(); depth != 1 {
		t.Errorf("expected condition stack depth 1, got %d", depth)
	}
}

// ============================================================================
// Whole files
// ============================================================================

func TestParse_File(t *testing.T) {
	entries, err := ParseFile(filepath.Join("..", "..", "testdata", "lpc288x.per"), "LPC2888")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	//
	expected := []Entry{
		{0x80101000, "LONG", "RBR Receiver Buffer Register", "UART: "},
		{0x80101004, "LONG", "THR Transmit Holding Register", "UART: "},
		{0x80101008, "SHORT", "TCR Timer Control Register", "TIMER0: "},
		{0x8010100C, "SHORT", "PR Prescale Register", "TIMER0: "},
	}
	//
	if !reflect.DeepEqual(entries, expected) {
		t.Errorf("got %v, expected %v", entries, expected)
	}
}

func TestParse_FileOtherCpu(t *testing.T) {
	entries, err := ParseFile(filepath.Join("..", "..", "testdata", "lpc288x.per"), "LPC2104")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	//
	if len(entries) != 3 || entries[0].Name != "ALT Alternate Register" {
		t.Errorf("unexpected entries: %v", entries)
	}
}

func TestParse_FileIdempotent(t *testing.T) {
	filename := filepath.Join("..", "..", "testdata", "lpc288x.per")
	//
	first, err := ParseFile(filename, "LPC2880")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	//
	second, err := ParseFile(filename, "LPC2880")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	//
	if !reflect.DeepEqual(first, second) {
		t.Errorf("parse not idempotent: %v vs %v", first, second)
	}
}

func TestParse_MissingFile(t *testing.T) {
	if _, err := ParseFile(filepath.Join("..", "..", "testdata", "no_such.per"), ""); err == nil {
		t.Errorf("expected error for missing file")
	}
}

// ============================================================================
// Helpers
// ============================================================================

const sifElseInput = `
base 0x1000
sif (cpu()=="X")
group.LONG 0x10++0x03 "E1"
else
group.LONG 0x20++0x03 "E2"
endif
`

const elifChainInput = `
base 0x1000
sif (cpu()=="A")
group.LONG 0x10++0x03 "E1"
elif (cpu()=="B")
group.LONG 0x20++0x03 "E2"
else
group.LONG 0x30++0x03 "E3"
endif
`

func parserFor(input string, cpu string) *Parser {
	return NewParser(NewSourceFile("test.per", []byte(input)), cpu)
}

// CheckEntries parses the given input with the given CPU identifier and
// checks the resolved entries against those expected.
func CheckEntries(t *testing.T, input string, cpu string, expected ...Entry) {
	t.Helper()
	//
	actual := parserFor(input, cpu).Parse()
	//
	if len(actual) != len(expected) {
		t.Errorf("parsing with cpu %q: got %v, expected %v", cpu, actual, expected)
	} else if len(expected) > 0 && !reflect.DeepEqual(actual, expected) {
		t.Errorf("parsing with cpu %q: got %v, expected %v", cpu, actual, expected)
	}
}

// CheckAddress checks the resolution of a single base/offset pair.
func CheckAddress(t *testing.T, baseAddr string, offset string, expected uint64) {
	t.Helper()
	//
	actual, err := ResolveAddress(baseAddr, offset)
	if err != nil {
		t.Errorf("resolving %q + %q: unexpected error: %v", baseAddr, offset, err)
	} else if actual != expected {
		t.Errorf("resolving %q + %q: got 0x%x, expected 0x%x", baseAddr, offset, actual, expected)
	}
}
