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
	"os"
	"strings"
)

// SourceFile represents the contents of a .per file, materialised as an
// ordered sequence of whitespace-trimmed lines.  The extractor requires one
// line of lookahead when resolving names, hence every line is held in memory
// rather than streamed.
type SourceFile struct {
	// File name for this source file.
	filename string
	// Trimmed lines of this file.
	lines []string
}

// NewSourceFile constructs a new source file from a given byte array.
func NewSourceFile(filename string, bytes []byte) *SourceFile {
	rawLines := strings.Split(string(bytes), "\n")
	lines := make([]string, len(rawLines))
	//
	for i, line := range rawLines {
		lines[i] = strings.TrimSpace(line)
	}
	//
	return &SourceFile{filename, lines}
}

// ReadSourceFile reads a .per file from disk.
func ReadSourceFile(filename string) (*SourceFile, error) {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	//
	return NewSourceFile(filename, bytes), nil
}

// Filename returns the filename associated with this source file.
func (s *SourceFile) Filename() string {
	return s.filename
}

// Len returns the number of lines in this source file.
func (s *SourceFile) Len() int {
	return len(s.lines)
}

// Line returns the ith line of this source file.
func (s *SourceFile) Line(index int) string {
	return s.lines[index]
}
