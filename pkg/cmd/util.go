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
	"strconv"

	"github.com/consensys/go-gwconvert/pkg/resolve"
	"github.com/consensys/go-gwconvert/pkg/table"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// GetFlag gets an expected flag, or panic if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetUint gets an expected unsigned integer, or panic if an error arises.
func GetUint(cmd *cobra.Command, flag string) uint {
	r, err := cmd.Flags().GetUint(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetFloat gets an expected floating point number, or panic if an error arises.
func GetFloat(cmd *cobra.Command, flag string) float64 {
	r, err := cmd.Flags().GetFloat64(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetString gets an expected string, or panic if an error arises.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetStringArray gets an expected string array, or panic if an error arises.
func GetStringArray(cmd *cobra.Command, flag string) []string {
	r, err := cmd.Flags().GetStringArray(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// configureLogging sets the log level based on the verbosity flags.
func configureLogging(cmd *cobra.Command) {
	if GetFlag(cmd, "verbose") {
		log.SetLevel(log.DebugLevel)
	} else if GetFlag(cmd, "quiet") {
		log.SetLevel(log.ErrorLevel)
	}
}

// Read a samples file given in JSON notation.
func readSamplesFile(filename string) (*table.Table, table.Metadata) {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	tbl, md, err := table.FromJson(bytes)
	if err != nil {
		fmt.Printf("%s: %s\n", filename, err)
		os.Exit(2)
	}
	//
	log.Debugf("read %d samples of %d parameters from %s", tbl.Height(), tbl.Width(), filename)
	//
	return tbl, md
}

// addConfigFlags registers the flags controlling a resolution.  These can
// override values given in a configuration file.
func addConfigFlags(flags *pflag.FlagSet) {
	flags.String("config", "", "read configuration from a YAML file")
	flags.Float64("f-low", resolve.DEFAULT_F_LOW, "low frequency cutoff (Hz)")
	flags.Float64("f-ref", resolve.DEFAULT_F_REF, "reference frequency (Hz)")
	flags.Float64("f-final", resolve.DEFAULT_F_FINAL, "high frequency cutoff (Hz)")
	flags.Float64("delta-f", resolve.DEFAULT_DELTA_F, "frequency resolution (Hz)")
	flags.String("approximant", "", "waveform approximant used to generate the samples")
	flags.String("evolve-spins-forwards", "", "evolve spins to a given velocity (ISCO or a number in (0,1))")
	flags.String("evolve-spins-backwards", "", "evolve spins to infinite separation using a given method")
	flags.Bool("nrsur-fits", false, "use NRSur7dq4 fits for remnant properties")
	flags.Bool("waveform-fits", false, "use waveform specific fits for remnant properties")
	flags.String("redshift-method", "approx", "method for computing redshifts (approx or exact)")
	flags.String("cosmology", resolve.DEFAULT_COSMOLOGY, "cosmology for computing redshifts")
	flags.Bool("force-non-evolved", false, "use non-evolved spins for remnant properties")
	flags.Bool("force-bbh-remnant", false, "use binary black hole fits even for NSBH systems")
	flags.Bool("force-bh-spin-evolution", false, "evolve spins even for NSBH systems")
	flags.Bool("disable-remnant", false, "disable remnant calculations")
	flags.Bool("add-zero-spin", false, "assume zero spin when no spin information is present")
	flags.StringArray("regenerate", nil, "drop and recompute a given parameter")
	flags.StringArray("only-generate", nil, "only keep the given derived parameters")
	flags.String("resume-file", "", "write a checkpoint to a given file")
	flags.Bool("restart-from-checkpoint", false, "resume from the checkpoint file (if one exists)")
	flags.Uint("npool", 1, "number of go-routines for expensive computations")
}

// readConfig constructs the configuration for a resolution.  Flags given
// explicitly take precedence over the configuration file (if any).
func readConfig(cmd *cobra.Command) resolve.Config {
	var (
		config = resolve.DefaultConfig()
		err    error
	)
	//
	if filename := GetString(cmd, "config"); filename != "" {
		if config, err = resolve.LoadConfig(filename); err != nil {
			fmt.Printf("%s: %s\n", filename, err)
			os.Exit(2)
		}
	}
	// Only flags set explicitly are applied
	cmd.Flags().Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "f-low":
			config.FLow = ptr(GetFloat(cmd, f.Name))
		case "f-ref":
			config.FRef = ptr(GetFloat(cmd, f.Name))
		case "f-final":
			config.FFinal = ptr(GetFloat(cmd, f.Name))
		case "delta-f":
			config.DeltaF = ptr(GetFloat(cmd, f.Name))
		case "approximant":
			config.Approximant = GetString(cmd, f.Name)
		case "evolve-spins-forwards":
			config.EvolveSpinsForwards = GetString(cmd, f.Name)
		case "evolve-spins-backwards":
			config.EvolveSpinsBackwards = GetString(cmd, f.Name)
		case "nrsur-fits":
			config.NRSurFits = GetFlag(cmd, f.Name)
		case "waveform-fits":
			config.WaveformFits = GetFlag(cmd, f.Name)
		case "redshift-method":
			config.RedshiftMethod = GetString(cmd, f.Name)
		case "cosmology":
			config.Cosmology = GetString(cmd, f.Name)
		case "force-non-evolved":
			config.ForceNonEvolved = GetFlag(cmd, f.Name)
		case "force-bbh-remnant":
			config.ForceBBHRemnant = GetFlag(cmd, f.Name)
		case "force-bh-spin-evolution":
			config.ForceBHSpinEvolution = GetFlag(cmd, f.Name)
		case "disable-remnant":
			config.DisableRemnant = GetFlag(cmd, f.Name)
		case "add-zero-spin":
			config.AddZeroSpin = GetFlag(cmd, f.Name)
		case "regenerate":
			config.Regenerate = GetStringArray(cmd, f.Name)
		case "only-generate":
			config.OnlyGenerate = GetStringArray(cmd, f.Name)
		case "resume-file":
			config.ResumeFile = GetString(cmd, f.Name)
		case "restart-from-checkpoint":
			config.RestartFromCheckpoint = GetFlag(cmd, f.Name)
		case "npool":
			config.NPool = GetUint(cmd, f.Name)
		}
	})
	//
	return config
}

func ptr(f float64) *float64 {
	return &f
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', 6, 64)
}
