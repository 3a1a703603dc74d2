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
	"github.com/consensys/go-gwconvert/pkg/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Lazy_01(t *testing.T) {
	lazy := newLazy(t, fromMap(t, map[string][]float64{"mass_1": {30}, "mass_2": {20}}), DefaultConfig())
	//
	first, err := lazy.Get("chirp_mass")
	require.NoError(t, err)
	assert.InDelta(t, chirpMass(30, 20), first[0], 1e-9)
	//
	stats := lazy.Stats()
	second, err := lazy.Get("chirp_mass")
	require.NoError(t, err)
	// Memoised, so the identical column is returned without further work.
	assert.Same(t, &first[0], &second[0])
	assert.Equal(t, stats, lazy.Stats())
	assert.Equal(t, uint(1), stats.RulesApplied)
	// Nothing else was derived
	assert.Equal(t, []string{"mass_1", "mass_2", "chirp_mass"}, lazy.Keys())
}

func Test_Lazy_02(t *testing.T) {
	lazy := newLazy(t, fromMap(t, map[string][]float64{"chirp_mass": {chirpMass(30, 20)}, "mass_ratio": {2.0 / 3}}),
		DefaultConfig())
	//
	m1, err := lazy.Get("mass_1")
	require.NoError(t, err)
	assert.InDelta(t, 30, m1[0], 1e-6)
	//
	m2, err := lazy.Get("mass_2")
	require.NoError(t, err)
	assert.InDelta(t, 20, m2[0], 1e-6)
}

func Test_Lazy_03(t *testing.T) {
	lazy := newLazy(t, fromMap(t, map[string][]float64{"mass_1": {30}}), DefaultConfig())
	// Parameters derivable from each other, but neither present.
	_, err := lazy.Get("mass_ratio")
	assert.ErrorIs(t, err, ErrNotFound)
	//
	_, err = lazy.Get("not_a_parameter")
	//
	var lerr *LookupError
	//
	require.True(t, errors.As(err, &lerr))
	assert.Equal(t, "not_a_parameter", lerr.Name)
	assert.False(t, lazy.Has("not_a_parameter"))
}

func Test_Lazy_04(t *testing.T) {
	input := fromMap(t, map[string][]float64{"mass_1": {30}, "mass_2": {20}, "chirp_mass": {999}})
	lazy := newLazy(t, input, DefaultConfig())
	//
	stale, err := lazy.Get("chirp_mass")
	require.NoError(t, err)
	assert.Equal(t, 999.0, stale[0])
	//
	fresh, err := lazy.Get("chirp_mass", Regenerate())
	require.NoError(t, err)
	assert.InDelta(t, chirpMass(30, 20), fresh[0], 1e-9)
	assert.NotEmpty(t, filter(lazy.Diagnostics(), diag.REGENERATE))
}

func Test_Lazy_05(t *testing.T) {
	input := fromMap(t, map[string][]float64{"mass_1": {30}, "mass_2": {20}, "symmetric_mass_ratio": {0.2}})
	lazy := newLazy(t, input, DefaultConfig())
	//
	q, err := lazy.Get("mass_ratio")
	require.NoError(t, err)
	assert.InDelta(t, 2.0/3, q[0], 1e-9)
}

func Test_Lazy_06(t *testing.T) {
	lazy := newLazy(t, precessingTable(t), DefaultConfig())
	// Upstream parameters derived recursively
	chiP, err := lazy.Get("chi_p")
	require.NoError(t, err)
	assert.Len(t, chiP, 2)
	assert.True(t, lazy.Classification().IsPrecessing())
	// Final mass requires the mass ratio only indirectly.
	_, err = lazy.Get("final_mass")
	require.NoError(t, err)
	//
	md := lazy.Metadata()
	spins, _ := md.Provenance("final_mass", "spins")
	assert.Equal(t, "non_evolved", spins)
}

func Test_Lazy_07(t *testing.T) {
	lazy := newLazy(t, fromMap(t, map[string][]float64{"mass_1": {30}, "mass_2": {20}}),
		DefaultConfig().WithZeroSpin(true))
	//
	chiEff, err := lazy.Get("chi_eff")
	require.NoError(t, err)
	assert.Equal(t, 0.0, chiEff[0])
	assert.False(t, lazy.Classification().IsPrecessing())
}

func Test_Lazy_08(t *testing.T) {
	lazy := newLazy(t, fromMap(t, map[string][]float64{"mass_1": {30}, "mass_2": {20}}),
		DefaultConfig().WithOnlyGenerate("chirp_mass"))
	//
	_, err := lazy.Get("total_mass")
	assert.ErrorIs(t, err, ErrNotFound)
	//
	_, err = lazy.Get("chirp_mass")
	assert.NoError(t, err)
}

func Test_Lazy_09(t *testing.T) {
	_, err := NewLazy(table.NewTable(), DefaultConfig(), WithSink(nil))
	assert.ErrorIs(t, err, ErrNoSamples)
	//
	_, err = NewLazy(fromMap(t, map[string][]float64{"mass_1": {1}}), DefaultConfig().WithCosmology("Flat"),
		WithSink(nil))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func Test_Lazy_10(t *testing.T) {
	input := fromMap(t, map[string][]float64{"mass_1": {5, 30}, "mass_2": {10, 20}, "mass_ratio": {2, 1.5}})
	lazy := newLazy(t, input, DefaultConfig())
	// Samples are brought into canonical form on construction.
	m1, _ := lazy.Get("mass_1")
	q, _ := lazy.Get("mass_ratio")
	//
	assert.Equal(t, []float64{10, 30}, m1)
	assert.Equal(t, []float64{0.5, 1 / 1.5}, q)
}

func Test_Lazy_11(t *testing.T) {
	// Source frame masses in the opposite order
	input := fromMap(t, map[string][]float64{"mass_1_source": {10}, "mass_2_source": {20}, "redshift": {0.1}})
	lazy := newLazy(t, input, DefaultConfig())
	//
	q, err := lazy.Get("mass_ratio")
	require.NoError(t, err)
	assert.InDelta(t, 0.5, q[0], 1e-9)
	//
	inv, err := lazy.Get("inverted_mass_ratio")
	require.NoError(t, err)
	assert.InDelta(t, 2, inv[0], 1e-9)
	//
	checkColumn(t, lazy.Table(), "mass_1", 22)
	checkColumn(t, lazy.Table(), "mass_2", 11)
}

func Test_Lazy_12(t *testing.T) {
	input := fromMap(t, map[string][]float64{"mass_1": {10}, "x": {20}})
	lazy, err := NewLazy(input, DefaultConfig(), WithRegistry(exchangingRegistry(t)), WithSink(nil))
	require.NoError(t, err)
	//
	excess, err := lazy.Get("excess")
	require.NoError(t, err)
	assert.Equal(t, []float64{-10}, excess)
	// Deriving mass_2 exchanges the bodies, discarding excess
	m2, err := lazy.Get("mass_2")
	require.NoError(t, err)
	assert.Equal(t, []float64{10}, m2)
	assert.False(t, lazy.Has("excess"))
	//
	excess, err = lazy.Get("excess")
	require.NoError(t, err)
	assert.Equal(t, []float64{0}, excess)
	checkColumn(t, lazy.Table(), "mass_1", 20)
}

func Test_Lazy_13(t *testing.T) {
	lazy := newLazy(t, precessingTable(t), DefaultConfig().WithOnlyGenerate("final_spin"))
	//
	_, err := lazy.Get("final_spin")
	require.NoError(t, err)
	_, err = lazy.Get("final_mass")
	assert.ErrorIs(t, err, ErrNotFound)
	//
	md := lazy.Metadata()
	_, ok := md.Provenance("final_spin", "spins")
	assert.True(t, ok)
	_, ok = md.Provenance("final_mass", "spins")
	assert.False(t, ok)
}

func newLazy(t *testing.T, tbl *table.Table, config Config) *Lazy {
	t.Helper()
	//
	lazy, err := NewLazy(tbl, config, WithSink(nil))
	require.NoError(t, err)
	//
	return lazy
}
