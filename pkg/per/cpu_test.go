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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateCondition_EmptyCpu(t *testing.T) {
	// An empty CPU identifier means no filtering: everything holds.
	assert.True(t, EvaluateCondition(`(cpu()=="LPC2880")`, ""))
	assert.True(t, EvaluateCondition(`nonsense`, ""))
	assert.True(t, EvaluateCondition(``, ""))
}

func TestEvaluateCondition_SingleMatch(t *testing.T) {
	assert.True(t, EvaluateCondition(`(cpu()=="LPC2880")`, "LPC2880"))
	assert.False(t, EvaluateCondition(`(cpu()=="LPC2880")`, "LPC2104"))
}

func TestEvaluateCondition_OrChain(t *testing.T) {
	cond := `(cpu()=="LPC2880"||cpu()=="LPC2888")`
	assert.True(t, EvaluateCondition(cond, "LPC2880"))
	assert.True(t, EvaluateCondition(cond, "LPC2888"))
	assert.False(t, EvaluateCondition(cond, "LPC2468"))
}

func TestEvaluateCondition_AndTreatedAsOr(t *testing.T) {
	// && is deliberately conflated with ||: any comparison naming the CPU
	// satisfies the condition.
	cond := `(cpu()=="LPC2880"&&cpu()=="LPC2888")`
	assert.True(t, EvaluateCondition(cond, "LPC2888"))
	assert.True(t, EvaluateCondition(cond, "LPC2880"))
	assert.False(t, EvaluateCondition(cond, "LPC2104"))
}

func TestEvaluateCondition_SlashedIdentifier(t *testing.T) {
	assert.True(t, EvaluateCondition(`(cpu()=="MPC5554/GPIO")`, "MPC5554/GPIO"))
}

func TestEvaluateCondition_NoComparisons(t *testing.T) {
	// A condition with no recognisable comparisons never holds for a
	// concrete CPU.
	assert.False(t, EvaluateCondition(`(data.long(D:0x0)==0x1)`, "LPC2880"))
}
