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
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/consensys/go-permap/pkg/per"
	"github.com/consensys/go-permap/pkg/util/termio"
)

var registersCmd = &cobra.Command{
	Use:   "registers [flags] per_file",
	Short: "print resolved register declarations.",
	Long: `Parse a .per file and print every register declaration
	which resolved to an absolute address, in file order.  Conditional
	blocks are resolved against the given CPU identifier; with no CPU,
	every reachable branch is included.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		// Configure log level
		configureLogging(cmd)
		//
		cpu := GetString(cmd, "cpu")
		textWidth := GetUint(cmd, "textwidth")
		// Parse the file
		entries := readPerFile(args[0], cpu)
		//
		if GetFlag(cmd, "json") {
			printJSON(entries)
		} else {
			printRegisters(entries, textWidth)
		}
	},
}

func init() {
	rootCmd.AddCommand(registersCmd)
	registersCmd.Flags().String("cpu", "", "CPU identifier used to resolve conditional blocks (empty includes all)")
	registersCmd.Flags().Bool("json", false, "print entries as JSON")
	registersCmd.Flags().Uint("textwidth", 0, "set maximum textwidth to use (0 = terminal width)")
}

func printRegisters(entries []per.Entry, textWidth uint) {
	if textWidth == 0 {
		textWidth = termio.TerminalWidth()
	}
	//
	tp := termio.NewTablePrinter(4)
	tp.AddRow("ADDRESS", "TYPE", "TREE", "NAME")
	//
	for _, e := range entries {
		tp.AddRow(fmt.Sprintf("0x%08x", e.Address), e.Type, e.Tree, e.Name)
	}
	// Never let a single column swallow the whole terminal.
	tp.SetMaxWidths(max(16, textWidth/4))
	tp.Print()
	//
	fmt.Printf("%d registers\n", len(entries))
}
