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

	"github.com/consensys/go-gwconvert/pkg/resolve"
	"github.com/consensys/go-gwconvert/pkg/util/termio"
	"github.com/spf13/cobra"
)

// classifyCmd represents the classify command
var classifyCmd = &cobra.Command{
	Use:   "classify [flags] samples_file",
	Short: "Classify the system described by a given samples file.",
	Long: `Classify the system described by a given samples file.  That is, determine
	whether it is precessing, whether it is a neutron star black hole binary,
	whether it carries tidal information and which remnant fits would be used.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		configureLogging(cmd)
		//
		var (
			config  = readConfig(cmd)
			tbl, md = readSamplesFile(args[0])
		)
		// Precession parameters are derived on demand
		lazy, err := resolve.NewLazy(tbl, config, resolve.WithMetadata(md))
		if err != nil {
			exitWithError(err)
		}
		//
		var (
			classifier = lazy.Classification()
			settings   = lazy.Settings()
			tp         = termio.NewTablePrinter(2, 4)
		)
		//
		tp.SetRow(0, "precessing", fmt.Sprintf("%t", classifier.IsPrecessing()))
		tp.SetRow(1, "nsbh", fmt.Sprintf("%t", classifier.IsNSBH()))
		tp.SetRow(2, "tidal", fmt.Sprintf("%t", classifier.HasTidal()))
		tp.SetRow(3, "remnant fits", classifier.RemnantFamily(settings.RemnantFits, settings.ForceBBHRemnant))
		//
		for i := range uint(4) {
			tp.SetEscape(0, i, termio.BoldAnsiEscape().Build())
		}
		//
		tp.AnsiEscapes(termio.IsTerminal(os.Stdout))
		tp.Print(os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(classifyCmd)
	addConfigFlags(classifyCmd.Flags())
}
