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
	"github.com/consensys/go-permap/pkg/util/collection/stack"
)

// frame records the state of one open sif block: whether any branch of the
// block has matched so far, and whether the branch currently being scanned is
// the chosen one.
type frame struct {
	matched bool
	active  bool
}

// conditions tracks the nested sif/elif/else/endif blocks during a scan.  The
// externally visible considered flag equals the conjunction of active over
// every open frame: a line is considered only when every enclosing block is
// active.
//
// The flag is maintained incrementally on the entry keywords (sif combines
// with the running value, elif/else replace it with the state of their own
// branch) and recomputed over the whole stack only on endif, which must
// restore the parent scope's true state after a child block closes.  The
// asymmetry matters for nested blocks under an inactive parent and must not
// be collapsed into a single strategy.
type conditions struct {
	frames     *stack.Stack[frame]
	considered bool
}

func newConditions() *conditions {
	return &conditions{stack.NewStack[frame](), true}
}

// enter opens a new sif block whose condition evaluated to active.  A sif
// inside an inactive outer block still pushes a frame, keeping stack depth in
// step with block nesting, but can never reactivate the outer scope since the
// considered flag only ever ANDs in.
func (c *conditions) enter(active bool) {
	c.frames.Push(frame{active, active})
	c.considered = c.considered && active
}

// branch handles elif.  The condition is evaluated lazily: once an earlier
// branch of the block has matched, remaining branches are skipped without
// evaluation.  A stray elif with no open block leaves everything untouched.
func (c *conditions) branch(eval func() bool) {
	top, ok := c.frames.Pop()
	if !ok {
		return
	}
	//
	if top.matched {
		c.frames.Push(frame{true, false})
		c.considered = false

		return
	}
	//
	active := eval()
	c.frames.Push(frame{active, active})
	c.considered = active
}

// alternative handles else, which is chosen exactly when no earlier branch of
// the block matched.  Same stray-keyword tolerance as branch.
func (c *conditions) alternative() {
	top, ok := c.frames.Pop()
	if !ok {
		return
	}
	//
	if top.matched {
		c.frames.Push(frame{true, false})
		c.considered = false
	} else {
		c.frames.Push(frame{true, true})
		c.considered = true
	}
}

// exit handles endif, closing the innermost block.  The considered flag is
// recomputed over the remaining frames here.
func (c *conditions) exit() {
	c.frames.Pop()
	//
	c.considered = true
	for _, f := range c.frames.Elements() {
		c.considered = c.considered && f.active
	}
}

// depth returns the number of currently open blocks.
func (c *conditions) depth() uint {
	return c.frames.Len()
}
