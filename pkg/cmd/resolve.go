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
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/consensys/go-gwconvert/pkg/diag"
	"github.com/consensys/go-gwconvert/pkg/resolve"
	"github.com/consensys/go-gwconvert/pkg/table"
	"github.com/consensys/go-gwconvert/pkg/util/termio"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// resolveCmd represents the resolve command
var resolveCmd = &cobra.Command{
	Use:   "resolve [flags] samples_file",
	Short: "Derive all possible parameters from a given samples file.",
	Long: `Derive all possible parameters from a given samples file.  Samples are given
	as JSON, either as a mapping of parameter names to samples, or as an object
	with "parameters" and "samples" fields.  Alternatively, only the parameters
	given with --param are derived (on demand).`,
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
			params  = GetStringArray(cmd, "param")
			output  = GetString(cmd, "output")
			tbl, md = readSamplesFile(args[0])
			result  *table.Table
			resmd   table.Metadata
			records []diag.Record
		)
		//
		if len(params) > 0 {
			result, resmd, records = resolveLazy(tbl, md, config, params)
		} else {
			result, resmd, records = resolveEager(tbl, md, config)
		}
		//
		if GetFlag(cmd, "diagnostics") {
			printDiagnostics(records)
		}
		//
		if output != "" {
			writeSamplesFile(output, result, resmd)
		} else {
			printSummary(tbl, result)
		}
	},
}

func resolveEager(tbl *table.Table, md table.Metadata, config resolve.Config) (*table.Table, table.Metadata,
	[]diag.Record) {
	eager, err := resolve.NewEager(tbl, config, resolve.WithMetadata(md))
	if err != nil {
		exitWithError(err)
	}
	//
	stats := eager.Stats()
	log.Infof("derived %d parameters using %d rules (%d failed)", stats.ColumnsDerived, stats.RulesApplied,
		stats.RulesFailed)
	//
	return eager.Table(), eager.Metadata(), eager.Diagnostics()
}

func resolveLazy(tbl *table.Table, md table.Metadata, config resolve.Config, params []string) (*table.Table,
	table.Metadata, []diag.Record) {
	lazy, err := resolve.NewLazy(tbl, config, resolve.WithMetadata(md))
	if err != nil {
		exitWithError(err)
	}
	//
	for _, p := range params {
		if _, err := lazy.Get(p); err != nil {
			log.Warn(err)
		}
	}
	//
	return lazy.Table(), lazy.Metadata(), lazy.Diagnostics()
}

func exitWithError(err error) {
	switch {
	case errors.Is(err, resolve.ErrInvalidConfig):
		fmt.Println(err)
		os.Exit(2)
	case errors.Is(err, resolve.ErrNoSamples):
		fmt.Println("no samples remain after removing unphysical samples")
		os.Exit(3)
	default:
		fmt.Println(err)
		os.Exit(4)
	}
}

func writeSamplesFile(filename string, tbl *table.Table, md table.Metadata) {
	bytes, err := table.ToJson(tbl, md)
	//
	if err == nil {
		err = os.WriteFile(filename, bytes, 0644)
	}
	//
	if err != nil {
		fmt.Println(err)
		os.Exit(4)
	}
	//
	log.Infof("wrote %d samples of %d parameters to %s", tbl.Height(), tbl.Width(), filename)
}

// Print a summary of every parameter in a table, distinguishing those which
// were derived from those given originally.
func printSummary(original *table.Table, tbl *table.Table) {
	var (
		names   = tbl.Names()
		tp      = termio.NewTablePrinter(5, uint(len(names))+1)
		bold    = termio.BoldAnsiEscape().Build()
		derived = termio.NewAnsiEscape().FgColour(termio.TERM_GREEN).Build()
	)
	//
	tp.SetRow(0, "parameter", "5%", "median", "95%", "")
	//
	for i := range uint(5) {
		tp.SetEscape(i, 0, bold)
	}
	//
	for i, name := range names {
		var (
			row     = uint(i) + 1
			data, _ = tbl.Column(name)
			sorted  = slices.Clone(data)
			source  = "given"
		)
		//
		slices.Sort(sorted)
		//
		if !original.Has(name) {
			source = "derived"
			//
			tp.SetEscape(0, row, derived)
			tp.SetEscape(4, row, derived)
		}
		//
		tp.SetRow(row, name, formatFloat(quantile(sorted, 0.05)), formatFloat(quantile(sorted, 0.5)),
			formatFloat(quantile(sorted, 0.95)), source)
	}
	//
	tp.AnsiEscapes(termio.IsTerminal(os.Stdout))
	tp.Print(os.Stdout)
}

func printDiagnostics(records []diag.Record) {
	for _, r := range records {
		fmt.Println(r)
	}
}

// quantile of some sorted data, using the nearest rank.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	//
	index := int(q * float64(len(sorted)-1))
	//
	return sorted[index]
}

func init() {
	rootCmd.AddCommand(resolveCmd)
	addConfigFlags(resolveCmd.Flags())
	resolveCmd.Flags().StringArrayP("param", "p", nil, "only derive the given parameter(s)")
	resolveCmd.Flags().StringP("output", "o", "", "write resolved samples to a given JSON file")
	resolveCmd.Flags().Bool("diagnostics", false, "print all diagnostics reported")
}
