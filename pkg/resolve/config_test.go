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
	"errors"
	"testing"

	"github.com/consensys/go-gwconvert/pkg/diag"
	"github.com/consensys/go-gwconvert/pkg/physics"
	"github.com/consensys/go-gwconvert/pkg/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Config_01(t *testing.T) {
	config, err := ParseConfig([]byte(`
f_low: 25
approximant: IMRPhenomXPHM
waveform_fits: true
cosmology: Planck18
regenerate: [chirp_mass]
psd:
  H1:
    frequencies: [10, 100, 1000]
    values: [1.0e-46, 1.0e-47, 1.0e-46]
`))
	//
	require.NoError(t, err)
	require.NotNil(t, config.FLow)
	assert.Equal(t, 25.0, *config.FLow)
	assert.Nil(t, config.FRef)
	assert.Equal(t, "IMRPhenomXPHM", config.Approximant)
	assert.True(t, config.WaveformFits)
	assert.Equal(t, "Planck18", config.Cosmology)
	assert.Equal(t, []string{"chirp_mass"}, config.Regenerate)
	assert.Len(t, config.PSD["H1"].Values, 3)
	// Defaults retained for unspecified options
	assert.Equal(t, DefaultConfig().RedshiftMethod, config.RedshiftMethod)
	//
	_, err = ParseConfig([]byte("f_low: [1, 2"))
	assert.Error(t, err)
}

func Test_Config_02(t *testing.T) {
	base := DefaultConfig()
	// Builders never modify the receiver.
	changed := base.WithCosmology("WMAP9").WithRegenerate("mass_ratio")
	//
	assert.Equal(t, DEFAULT_COSMOLOGY, base.Cosmology)
	assert.Empty(t, base.Regenerate)
	assert.Equal(t, "WMAP9", changed.Cosmology)
	//
	psd := physics.PSD{Frequencies: []float64{1, 2}, Values: []float64{1, 1}}
	withH1 := base.WithPSD("H1", psd)
	withL1 := withH1.WithPSD("L1", psd)
	//
	assert.Len(t, withH1.PSD, 1)
	assert.Len(t, withL1.PSD, 2)
}

func Test_Config_03(t *testing.T) {
	base := DefaultConfig().WithFrequencies(20, 20, 1024)
	// Options affecting the outcome change the fingerprint, others do not.
	assert.Equal(t, base.Fingerprint(), base.Fingerprint())
	assert.Equal(t, base.Fingerprint(), base.WithNPool(8).WithCheckpoint("run.ckpt", true).Fingerprint())
	assert.NotEqual(t, base.Fingerprint(), base.WithCosmology("Planck18").Fingerprint())
	assert.NotEqual(t, base.Fingerprint(), base.WithFrequencies(20, 50, 1024).Fingerprint())
}

func Test_Normalise_01(t *testing.T) {
	checkConfigError(t, DefaultConfig().WithRemnantFits(true, true), nil)
	checkConfigError(t, DefaultConfig().WithRemnantFits(false, true), nil)
	checkConfigError(t, DefaultConfig().WithCosmology("Flat"), physics.ErrUnknownMethod)
	checkConfigError(t, DefaultConfig().WithRedshiftMethod("guess"), physics.ErrUnknownMethod)
	checkConfigError(t, DefaultConfig().WithEvolution("sideways", ""), physics.ErrUnknownMethod)
	checkConfigError(t, DefaultConfig().WithEvolution("", "sideways"), physics.ErrUnknownMethod)
	checkConfigError(t, DefaultConfig().WithPSD("H1", physics.PSD{Frequencies: []float64{1}, Values: []float64{1}}), nil)
}

func Test_Normalise_02(t *testing.T) {
	var (
		md     = table.NewMetadata(nil)
		report = diag.NewReport(nil)
		config = DefaultConfig().WithRemnantDisabled(true).WithRemnantFits(true, false)
	)
	//
	settings, err := config.Normalise(&md, report)
	//
	require.NoError(t, err)
	assert.True(t, settings.DisableRemnant)
	assert.Empty(t, settings.RemnantFits)
	//
	records := report.Filter(diag.CONFIG_ADJUSTED)
	require.Len(t, records, 1)
	assert.Equal(t, []string{"nrsur_fits"}, records[0].Params)
	// Receiver unchanged
	assert.True(t, config.NRSurFits)
}

func Test_Normalise_03(t *testing.T) {
	var (
		md     = table.NewMetadata(nil)
		report = diag.NewReport(nil)
		config = DefaultConfig().WithEvolution(physics.ISCO, "")
	)
	//
	config.ForceNonEvolved = true
	settings, err := config.Normalise(&md, report)
	//
	require.NoError(t, err)
	assert.Empty(t, settings.EvolveForwards)
	assert.Len(t, report.Filter(diag.CONFIG_ADJUSTED), 1)
}

func Test_Normalise_04(t *testing.T) {
	var (
		md     = table.NewMetadata(map[string]any{"f_ref": 50.0})
		report = diag.NewReport(nil)
	)
	//
	settings, err := DefaultConfig().Normalise(&md, report)
	//
	require.NoError(t, err)
	assert.Equal(t, DEFAULT_F_LOW, settings.FLow)
	assert.Equal(t, 50.0, settings.FRef)
	assert.Equal(t, DEFAULT_F_FINAL, settings.FFinal)
	assert.Equal(t, DEFAULT_DELTA_F, settings.DeltaF)
	// One warning per defaulted frequency
	assert.Len(t, report.Filter(diag.DEFAULT_VALUE), 3)
	// Chosen values are written back
	fLow, ok := md.Float("f_low")
	assert.True(t, ok)
	assert.Equal(t, DEFAULT_F_LOW, fLow)
}

func Test_Normalise_05(t *testing.T) {
	var (
		md     = table.NewMetadata(map[string]any{"f_ref": 50.0})
		report = diag.NewReport(nil)
		config = DefaultConfig().WithFrequencies(10, 30, 2048).WithDeltaF(0.125)
	)
	//
	settings, err := config.Normalise(&md, report)
	//
	require.NoError(t, err)
	// Configuration takes precedence over metadata
	assert.Equal(t, 30.0, settings.FRef)
	assert.Equal(t, 0.125, settings.DeltaF)
	assert.Empty(t, report.Filter(diag.DEFAULT_VALUE))
	//
	fRef, _ := md.Float("f_ref")
	assert.Equal(t, 30.0, fRef)
}

func Test_Normalise_06(t *testing.T) {
	var (
		md     = table.NewMetadata(nil)
		config = DefaultConfig().WithRedshiftMethod("").WithCosmology("planck18").WithNPool(0)
	)
	//
	settings, err := config.Normalise(&md, diag.NewReport(nil))
	//
	require.NoError(t, err)
	assert.Equal(t, "approx", settings.RedshiftMethod)
	assert.Equal(t, "Planck18", settings.Cosmology.Name)
	assert.Equal(t, uint(1), settings.NPool)
}

func checkConfigError(t *testing.T, config Config, cause error) {
	t.Helper()
	//
	md := table.NewMetadata(nil)
	_, err := config.Normalise(&md, diag.NewReport(nil))
	//
	var cerr *ConfigError
	//
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.True(t, errors.As(err, &cerr))
	assert.NotEmpty(t, cerr.Options)
	//
	if cause != nil {
		assert.ErrorIs(t, err, cause)
	}
}
