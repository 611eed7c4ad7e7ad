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
	"net/http"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/consensys/go-permap/pkg/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve [flags] per_file...",
	Short: "serve parsed register maps over HTTP.",
	Long: `Parse one or more .per files and serve the resulting
	register maps as a JSON API.  Each file is parsed once at startup;
	the served maps are immutable thereafter.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) < 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		// Configure log level
		configureLogging(cmd)
		//
		cpu := GetString(cmd, "cpu")
		port := GetUint(cmd, "port")
		// Parse each file up-front
		maps := make([]*api.RegisterMap, len(args))
		for i, filename := range args {
			maps[i] = api.NewRegisterMap(filename, cpu, readPerFile(filename, cpu))
			log.Infof("loaded %d registers from %s", len(maps[i].Registers), filename)
		}
		//
		addr := fmt.Sprintf(":%d", port)
		log.Infof("serving register maps on %s", addr)
		//
		if err := http.ListenAndServe(addr, api.NewServer(maps)); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("cpu", "", "CPU identifier used to resolve conditional blocks (empty includes all)")
	serveCmd.Flags().Uint("port", 8350, "port to listen on")
}
