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
package resolve

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/consensys/go-gwconvert/pkg/diag"
	"github.com/consensys/go-gwconvert/pkg/physics"
	"github.com/consensys/go-gwconvert/pkg/rules"
	"github.com/consensys/go-gwconvert/pkg/table"
	"gopkg.in/yaml.v3"
)

// DEFAULT_F_LOW is the low frequency cutoff (Hz) used when none is given.
const DEFAULT_F_LOW = 20.0

// DEFAULT_F_REF is the reference frequency (Hz) used when none is given.
const DEFAULT_F_REF = 20.0

// DEFAULT_F_FINAL is the high frequency cutoff (Hz) used when none is given.
const DEFAULT_F_FINAL = 1024.0

// DEFAULT_DELTA_F is the frequency resolution (Hz) used when none is given.
const DEFAULT_DELTA_F = 1.0 / 256

// DEFAULT_COSMOLOGY is the cosmology used when none is given.
const DEFAULT_COSMOLOGY = "Planck15"

// Config captures all options which control a resolution.  A configuration
// can be loaded from YAML, or constructed from DefaultConfig() using the
// builder methods below.  Frequencies are pointers so that an absent value
// (which falls back on the table metadata) is distinguishable from zero.
type Config struct {
	FLow   *float64 `yaml:"f_low,omitempty" json:"f_low,omitempty"`
	FRef   *float64 `yaml:"f_ref,omitempty" json:"f_ref,omitempty"`
	FFinal *float64 `yaml:"f_final,omitempty" json:"f_final,omitempty"`
	DeltaF *float64 `yaml:"delta_f,omitempty" json:"delta_f,omitempty"`
	// Waveform approximant used to generate the samples
	Approximant string `yaml:"approximant,omitempty" json:"approximant,omitempty"`
	// Terminal velocity for forwards evolution (ISCO or a number in (0,1))
	EvolveSpinsForwards string `yaml:"evolve_spins_forwards,omitempty" json:"evolve_spins_forwards,omitempty"`
	// Method for evolving spins back to infinite separation
	EvolveSpinsBackwards string `yaml:"evolve_spins_backwards,omitempty" json:"evolve_spins_backwards,omitempty"`
	NRSurFits            bool   `yaml:"nrsur_fits,omitempty" json:"nrsur_fits,omitempty"`
	WaveformFits         bool   `yaml:"waveform_fits,omitempty" json:"waveform_fits,omitempty"`
	// Either "approx" or "exact"
	RedshiftMethod       string `yaml:"redshift_method,omitempty" json:"redshift_method,omitempty"`
	Cosmology            string `yaml:"cosmology,omitempty" json:"cosmology,omitempty"`
	ForceNonEvolved      bool   `yaml:"force_non_evolved,omitempty" json:"force_non_evolved,omitempty"`
	ForceBBHRemnant      bool   `yaml:"force_bbh_remnant_computation,omitempty" json:"force_bbh_remnant_computation,omitempty"`
	ForceBHSpinEvolution bool   `yaml:"force_bh_spin_evolution,omitempty" json:"force_bh_spin_evolution,omitempty"`
	DisableRemnant       bool   `yaml:"disable_remnant,omitempty" json:"disable_remnant,omitempty"`
	// Add zero spins when the table carries no spin information at all
	AddZeroSpin bool                   `yaml:"add_zero_spin,omitempty" json:"add_zero_spin,omitempty"`
	PSD         map[string]physics.PSD `yaml:"psd,omitempty" json:"psd,omitempty"`
	PSDDefault  *physics.PSD           `yaml:"psd_default,omitempty" json:"psd_default,omitempty"`
	// Parameters to drop and recompute
	Regenerate []string `yaml:"regenerate,omitempty" json:"regenerate,omitempty"`
	// Restricts which derived parameters are kept (empty means all)
	OnlyGenerate []string `yaml:"only_generate,omitempty" json:"only_generate,omitempty"`
	// Checkpoint file, written after resolution when set
	ResumeFile            string `yaml:"resume_file,omitempty" json:"-"`
	RestartFromCheckpoint bool   `yaml:"restart_from_checkpoint,omitempty" json:"-"`
	// Number of go-routines for expensive computations
	NPool uint `yaml:"npool,omitempty" json:"-"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		RedshiftMethod: rules.REDSHIFT_APPROX,
		Cosmology:      DEFAULT_COSMOLOGY,
		NPool:          1,
	}
}

// LoadConfig reads a configuration from a YAML file.  Any option not given in
// the file takes its default value.
func LoadConfig(filename string) (Config, error) {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, err
	}
	//
	return ParseConfig(bytes)
}

// ParseConfig parses a configuration from YAML formatted bytes.
func ParseConfig(bytes []byte) (Config, error) {
	config := DefaultConfig()
	//
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return Config{}, fmt.Errorf("malformed configuration: %w", err)
	}
	//
	return config, nil
}

// WithFrequencies sets the low, reference and final frequencies.
func (p Config) WithFrequencies(fLow, fRef, fFinal float64) Config {
	p.FLow, p.FRef, p.FFinal = &fLow, &fRef, &fFinal
	return p
}

// WithDeltaF sets the frequency resolution.
func (p Config) WithDeltaF(deltaF float64) Config {
	p.DeltaF = &deltaF
	return p
}

// WithApproximant sets the waveform approximant.
func (p Config) WithApproximant(approximant string) Config {
	p.Approximant = approximant
	return p
}

// WithCosmology sets the cosmology used for redshifts.
func (p Config) WithCosmology(name string) Config {
	p.Cosmology = name
	return p
}

// WithRedshiftMethod sets the method used for redshifts.
func (p Config) WithRedshiftMethod(method string) Config {
	p.RedshiftMethod = method
	return p
}

// WithEvolution sets the forwards and backwards spin evolution methods.  An
// empty string disables the corresponding evolution.
func (p Config) WithEvolution(forwards string, backwards string) Config {
	p.EvolveSpinsForwards = forwards
	p.EvolveSpinsBackwards = backwards
	//
	return p
}

// WithRemnantFits selects NRSur7dq4 and/or waveform specific remnant fits.
func (p Config) WithRemnantFits(nrsur bool, waveform bool) Config {
	p.NRSurFits = nrsur
	p.WaveformFits = waveform
	//
	return p
}

// WithRemnantDisabled disables all remnant calculations.
func (p Config) WithRemnantDisabled(flag bool) Config {
	p.DisableRemnant = flag
	return p
}

// WithZeroSpin enables the addition of zero spins.
func (p Config) WithZeroSpin(flag bool) Config {
	p.AddZeroSpin = flag
	return p
}

// WithPSD sets the power spectral density for a given detector.
func (p Config) WithPSD(ifo string, psd physics.PSD) Config {
	psds := make(map[string]physics.PSD, len(p.PSD)+1)
	//
	for k, v := range p.PSD {
		psds[k] = v
	}
	//
	psds[ifo] = psd
	p.PSD = psds
	//
	return p
}

// WithRegenerate sets the parameters to be dropped and recomputed.
func (p Config) WithRegenerate(names ...string) Config {
	p.Regenerate = names
	return p
}

// WithOnlyGenerate restricts which derived parameters are kept.
func (p Config) WithOnlyGenerate(names ...string) Config {
	p.OnlyGenerate = names
	return p
}

// WithCheckpoint sets the checkpoint file, and whether an existing checkpoint
// should be resumed from.
func (p Config) WithCheckpoint(filename string, restart bool) Config {
	p.ResumeFile = filename
	p.RestartFromCheckpoint = restart
	//
	return p
}

// WithNPool sets the number of go-routines for expensive computations.
func (p Config) WithNPool(npool uint) Config {
	p.NPool = npool
	return p
}

// Fingerprint returns a deterministic digest of every option which affects
// the outcome of a resolution.  Options which only affect how a resolution is
// carried out (e.g. the checkpoint file, or the pool size) are excluded.
func (p Config) Fingerprint() string {
	bytes, err := json.Marshal(p)
	if err != nil {
		panic(err)
	}
	//
	digest := sha256.Sum256(bytes)
	//
	return hex.EncodeToString(digest[:])
}

// Normalise checks this configuration for consistency, and converts it into
// the settings consulted by rules.  Contradictory or unsupported options are
// errors, whilst options made redundant by others are disabled (and reported).
// Frequencies absent from the configuration are taken from the metadata, and
// otherwise fall back on defaults.  Chosen frequencies are written back into
// the metadata.
func (p Config) Normalise(md *table.Metadata, report *diag.Report) (rules.Settings, error) {
	var settings rules.Settings
	//
	if p.NRSurFits && p.WaveformFits {
		return settings, &ConfigError{[]string{"nrsur_fits", "waveform_fits"}, "cannot use both families of remnant fits", nil}
	} else if p.WaveformFits && p.Approximant == "" {
		return settings, &ConfigError{[]string{"waveform_fits", "approximant"}, "waveform fits require an approximant", nil}
	}
	// Remnant options are irrelevant when remnants are disabled.
	if p.DisableRemnant {
		var disabled []string
		//
		if p.NRSurFits {
			disabled, p.NRSurFits = append(disabled, "nrsur_fits"), false
		}
		//
		if p.WaveformFits {
			disabled, p.WaveformFits = append(disabled, "waveform_fits"), false
		}
		//
		if p.ForceBBHRemnant {
			disabled, p.ForceBBHRemnant = append(disabled, "force_bbh_remnant_computation"), false
		}
		//
		if p.ForceNonEvolved {
			disabled, p.ForceNonEvolved = append(disabled, "force_non_evolved"), false
		}
		//
		if len(disabled) > 0 {
			report.Warn(diag.CONFIG_ADJUSTED, disabled, "remnant calculations disabled, ignoring %s",
				strings.Join(disabled, ", "))
		}
	}
	// Non-evolved spins make forwards evolution redundant
	if p.ForceNonEvolved && p.EvolveSpinsForwards != "" {
		report.Warn(diag.CONFIG_ADJUSTED, []string{"evolve_spins_forwards"},
			"non-evolved spins forced, ignoring forwards evolution to %s", p.EvolveSpinsForwards)
		//
		p.EvolveSpinsForwards = ""
	}
	//
	if p.EvolveSpinsForwards != "" {
		if _, err := physics.FinalVelocity(p.EvolveSpinsForwards); err != nil {
			return settings, &ConfigError{[]string{"evolve_spins_forwards"}, "unsupported evolution", err}
		}
	}
	//
	if p.EvolveSpinsBackwards != "" {
		if err := physics.CheckBackwardsMethod(p.EvolveSpinsBackwards); err != nil {
			return settings, &ConfigError{[]string{"evolve_spins_backwards"}, "unsupported evolution", err}
		}
	}
	// Redshift
	switch p.RedshiftMethod {
	case "":
		p.RedshiftMethod = rules.REDSHIFT_APPROX
	case rules.REDSHIFT_APPROX, rules.REDSHIFT_EXACT:
	default:
		return settings, &ConfigError{[]string{"redshift_method"},
			fmt.Sprintf("expected %s or %s", rules.REDSHIFT_APPROX, rules.REDSHIFT_EXACT),
			physics.NewMethodError("redshift", p.RedshiftMethod)}
	}
	//
	if p.Cosmology == "" {
		p.Cosmology = DEFAULT_COSMOLOGY
	}
	//
	cosmology, err := physics.LookupCosmology(p.Cosmology)
	if err != nil {
		return settings, &ConfigError{[]string{"cosmology"},
			fmt.Sprintf("expected one of %s", strings.Join(physics.Cosmologies(), ", ")), err}
	}
	//
	for ifo, psd := range p.PSD {
		if _, err := physics.NewPSD(psd.Frequencies, psd.Values); err != nil {
			return settings, &ConfigError{[]string{"psd"}, fmt.Sprintf("invalid PSD for %s", ifo), err}
		}
	}
	//
	if p.PSDDefault != nil {
		if _, err := physics.NewPSD(p.PSDDefault.Frequencies, p.PSDDefault.Values); err != nil {
			return settings, &ConfigError{[]string{"psd_default"}, "invalid PSD", err}
		}
	}
	//
	settings = rules.Settings{
		FLow:                 frequency("f_low", p.FLow, DEFAULT_F_LOW, md, report),
		FRef:                 frequency("f_ref", p.FRef, DEFAULT_F_REF, md, report),
		FFinal:               frequency("f_final", p.FFinal, DEFAULT_F_FINAL, md, report),
		DeltaF:               frequency("delta_f", p.DeltaF, DEFAULT_DELTA_F, md, report),
		Approximant:          p.Approximant,
		EvolveForwards:       p.EvolveSpinsForwards,
		EvolveBackwards:      p.EvolveSpinsBackwards,
		RemnantFits:          p.remnantFits(),
		RedshiftMethod:       p.RedshiftMethod,
		Cosmology:            cosmology,
		ForceNonEvolved:      p.ForceNonEvolved,
		ForceBBHRemnant:      p.ForceBBHRemnant,
		ForceBHSpinEvolution: p.ForceBHSpinEvolution,
		DisableRemnant:       p.DisableRemnant,
		PSD:                  p.PSD,
		PSDDefault:           p.PSDDefault,
		NPool:                max(p.NPool, 1),
	}
	//
	return settings, nil
}

func (p Config) remnantFits() string {
	switch {
	case p.NRSurFits:
		return physics.NRSUR_FITS
	case p.WaveformFits:
		return physics.WAVEFORM_FITS
	default:
		return ""
	}
}

// Determine a frequency, falling back on the metadata and then on a default.
func frequency(key string, value *float64, fallback float64, md *table.Metadata, report *diag.Report) float64 {
	if value != nil {
		md.SetFloat(key, *value)
		return *value
	} else if f, ok := md.Float(key); ok {
		return f
	}
	//
	report.Warn(diag.DEFAULT_VALUE, []string{key}, "no %s given, assuming %g Hz", key, fallback)
	md.SetFloat(key, fallback)
	//
	return fallback
}
