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

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/consensys/go-permap/pkg/regmap"
	"github.com/consensys/go-permap/pkg/util/termio"
)

var peripheralsCmd = &cobra.Command{
	Use:   "peripherals [flags] per_file",
	Short: "print peripherals with their address spans.",
	Long: `Parse a .per file and group the resolved registers into
	peripherals, reporting each peripheral's address span.  Registers
	are assumed four bytes wide, so a peripheral spans from its lowest
	register address to four bytes past its highest.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		// Configure log level
		configureLogging(cmd)
		//
		cpu := GetString(cmd, "cpu")
		// Parse the file and group into peripherals
		entries := readPerFile(args[0], cpu)
		peripherals := regmap.Group(entries)
		// Flag implausible spans.  These normally mean entries resolved
		// against the wrong base address.
		for _, p := range peripherals {
			if p.Suspicious() {
				log.Warnf("implausible size %d bytes for peripheral %q", p.Size(), p.Name)
			}
		}
		//
		if GetFlag(cmd, "json") {
			printJSON(peripherals)
		} else {
			printPeripherals(peripherals)
		}
	},
}

func init() {
	rootCmd.AddCommand(peripheralsCmd)
	peripheralsCmd.Flags().String("cpu", "", "CPU identifier used to resolve conditional blocks (empty includes all)")
	peripheralsCmd.Flags().Bool("json", false, "print peripherals as JSON")
}

func printPeripherals(peripherals []regmap.Peripheral) {
	tp := termio.NewTablePrinter(5)
	tp.AddRow("PERIPHERAL", "START", "END", "SIZE", "REGISTERS")
	//
	for _, p := range peripherals {
		tp.AddRow(p.Name,
			fmt.Sprintf("0x%08x", p.Start),
			fmt.Sprintf("0x%08x", p.End),
			fmt.Sprintf("%d", p.Size()),
			fmt.Sprintf("%d", len(p.Registers)))
	}
	//
	tp.Print()
}
