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

import "regexp"

// Matches one CPU identity comparison, e.g. cpu()=="LPC2888".
var cpuRegex = regexp.MustCompile(`cpu\(\)=="([A-Za-z0-9/]+)"`)

// EvaluateCondition determines whether a conditional block guarded by the
// given condition applies to the given CPU identifier.
//
// Conditions take forms such as (cpu()=="LPC2880"||cpu()=="LPC2888").  Every
// cpu()=="..." comparison in the condition is extracted and the condition
// holds iff any comparison names the given CPU.  Comparisons joined with &&
// are treated exactly like || ones: .per files use these conditions as
// CPU-family alternation lists, and full boolean evaluation is deliberately
// not attempted.
//
// An empty CPU identifier disables filtering altogether, so every condition
// holds.
func EvaluateCondition(cond string, cpu string) bool {
	if cpu == "" {
		return true
	}
	//
	for _, m := range cpuRegex.FindAllStringSubmatch(cond, -1) {
		if m[1] == cpu {
			return true
		}
	}
	//
	return false
}
