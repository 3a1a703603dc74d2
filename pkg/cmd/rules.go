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
	"strings"

	"github.com/consensys/go-gwconvert/pkg/rules"
	"github.com/consensys/go-gwconvert/pkg/util/termio"
	"github.com/spf13/cobra"
)

// rulesCmd represents the rules command
var rulesCmd = &cobra.Command{
	Use:   "rules [flags] [parameter(s)]",
	Short: "List the rules available for deriving parameters.",
	Long: `List the rules available for deriving parameters, in the order they are tried.
	When parameters are given, only rules producing them are listed.`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			registry = rules.Default()
			selected []*rules.Rule
		)
		//
		if len(args) == 0 {
			selected = registry.Rules()
		} else {
			for _, name := range args {
				if !registry.Knows(name) {
					fmt.Printf("no rules for %s\n", name)
					os.Exit(1)
				}
				//
				selected = append(selected, registry.RulesFor(name)...)
			}
		}
		//
		tp := termio.NewTablePrinter(4, uint(len(selected))+1)
		tp.SetRow(0, "rule", "targets", "requires", "guarded")
		//
		for i := range uint(4) {
			tp.SetEscape(i, 0, termio.BoldAnsiEscape().Build())
		}
		//
		for i, r := range selected {
			guarded := ""
			//
			if r.When != nil {
				guarded = "yes"
			}
			//
			tp.SetRow(uint(i)+1, r.Name, strings.Join(r.Targets, ","), strings.Join(r.Requires, ","), guarded)
		}
		//
		tp.SetMaxWidths(GetUint(cmd, "width"))
		tp.AnsiEscapes(termio.IsTerminal(os.Stdout))
		tp.Print(os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(rulesCmd)
	rulesCmd.Flags().Uint("width", 80, "maximum width of any column")
}
