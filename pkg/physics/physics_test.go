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
package physics

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Cosmology_01(t *testing.T) {
	for _, name := range Cosmologies() {
		cosmo, err := LookupCosmology(name)
		require.NoError(t, err)
		//
		var (
			zs        = []float64{0.01, 0.1, 0.5, 1.2}
			distances = LuminosityDistances(cosmo, zs)
		)
		// Distances increase with redshift
		for i := 1; i < len(distances); i++ {
			assert.Greater(t, distances[i], distances[i-1])
		}
		//
		assert.InDeltaSlice(t, zs, RedshiftExact(cosmo, distances, 2), 1e-6)
		assert.InDeltaSlice(t, zs, RedshiftApprox(cosmo, distances), 1e-3)
	}
}

func Test_Cosmology_02(t *testing.T) {
	cosmo, err := LookupCosmology("planck18")
	require.NoError(t, err)
	assert.Equal(t, "Planck18", cosmo.Name)
	//
	_, err = LookupCosmology("Einstein-de-Sitter")
	assert.ErrorIs(t, err, ErrUnknownMethod)
	//
	var merr *MethodError
	require.True(t, errors.As(err, &merr))
	assert.Equal(t, "cosmology", merr.Kind)
}

func Test_Cosmology_03(t *testing.T) {
	cosmo, _ := LookupCosmology("Planck15")
	// Hubble law holds at small redshift
	z := 0.001
	assert.InEpsilon(t, SPEED_OF_LIGHT*z/cosmo.H0, cosmo.ComovingDistance(z), 1e-3)
	assert.Equal(t, 0.0, cosmo.ComovingDistance(0))
}

func Test_Remnant_01(t *testing.T) {
	var (
		m1    = []float64{36, 30, 20}
		m2    = []float64{29, 10, 19}
		a1    = []float64{0.3, 0.9, 0}
		a2    = []float64{0.5, 0.1, 0}
		tilt1 = []float64{0.5, 2.5, 0}
		tilt2 = []float64{1.5, 0.1, 0}
	)
	//
	for _, family := range []string{AVERAGE_FITS, NRSUR_FITS} {
		rem, err := BBHRemnant(family, "", m1, m2, a1, a2, tilt1, tilt2, 2)
		require.NoError(t, err)
		//
		for i := range m1 {
			assert.Less(t, rem.FinalMass[i], m1[i]+m2[i])
			assert.Greater(t, rem.FinalMass[i], 0.8*(m1[i]+m2[i]))
			assert.GreaterOrEqual(t, rem.FinalSpin[i], 0.0)
			assert.LessOrEqual(t, rem.FinalSpin[i], 1.0)
			assert.InDelta(t, m1[i]+m2[i], rem.FinalMass[i]+rem.RadiatedEnergy[i], 1e-9)
		}
		// Only NRSur fits provide a kick
		assert.Equal(t, family == NRSUR_FITS, rem.FinalKick != nil)
	}
}

func Test_Remnant_02(t *testing.T) {
	var (
		m     = []float64{30}
		zero  = []float64{0}
		a     = []float64{0.2}
		tilts = []float64{0.3}
	)
	//
	_, err := BBHRemnant(WAVEFORM_FITS, "NotAnApproximant", m, m, a, a, tilts, tilts, 1)
	assert.ErrorIs(t, err, ErrUnknownMethod)
	//
	_, err = BBHRemnant("unknown", "", m, m, a, a, tilts, tilts, 1)
	assert.ErrorIs(t, err, ErrUnknownMethod)
	//
	rem, err := BBHRemnant(WAVEFORM_FITS, "IMRPhenomXPHM", m, m, zero, zero, zero, zero, 1)
	require.NoError(t, err)
	// Non-spinning equal mass binary gives a remnant spin of about 0.69
	assert.InDelta(t, 0.69, rem.FinalSpin[0], 0.03)
	assert.True(t, KnownApproximant("IMRPhenomXPHM"))
	assert.False(t, KnownApproximant("NotAnApproximant"))
}

func Test_Remnant_03(t *testing.T) {
	var (
		m1      = []float64{8}
		m2      = []float64{1.4}
		spin1z  = []float64{0.5}
		lambda2 = []float64{400}
	)
	//
	nsbh := NSBHRemnant(m1, m2, spin1z, lambda2)
	bbh, err := BBHRemnant(AVERAGE_FITS, "", m1, m2, spin1z, []float64{0}, []float64{0}, []float64{0}, 1)
	require.NoError(t, err)
	// Matter left outside the black hole cannot increase its mass
	assert.LessOrEqual(t, nsbh.FinalMass[0], bbh.FinalMass[0]+1e-6)
	assert.Nil(t, nsbh.FinalKick)
}

func Test_Evolve_01(t *testing.T) {
	v, err := FinalVelocity(ISCO)
	require.NoError(t, err)
	assert.InDelta(t, 1/math.Sqrt(6), v, 1e-15)
	//
	v, err = FinalVelocity("0.3")
	require.NoError(t, err)
	assert.Equal(t, 0.3, v)
	//
	for _, method := range []string{"1.5", "0", "sideways"} {
		_, err = FinalVelocity(method)
		assert.ErrorIs(t, err, ErrUnknownMethod, method)
	}
	//
	assert.NoError(t, CheckBackwardsMethod(PRECESSION_AVERAGED))
	assert.NoError(t, CheckBackwardsMethod(HYBRID_ORBIT_AVERAGED))
	assert.ErrorIs(t, CheckBackwardsMethod("orbit_averaged"), ErrUnknownMethod)
}

func Test_Evolve_02(t *testing.T) {
	var (
		m1    = []float64{30, 12}
		m2    = []float64{20, 11}
		a1    = []float64{0.7, 0.2}
		a2    = []float64{0.4, 0.9}
		tilt1 = []float64{0.4, 2.1}
		tilt2 = []float64{2.0, 0.7}
		phi12 = []float64{1.0, 4.0}
	)
	// The effective aligned spin is conserved by the evolution
	chiEff := ChiEff(m1, m2, a1, a2, tilt1, tilt2)
	//
	t1, t2, err := EvolveSpinsBackwards(PRECESSION_AVERAGED, m1, m2, a1, a2, tilt1, tilt2, 20, 2)
	require.NoError(t, err)
	assert.InDeltaSlice(t, chiEff, ChiEff(m1, m2, a1, a2, t1, t2), 1e-9)
	//
	t1, t2, p, err := EvolveSpinsForwards(m1, m2, a1, a2, tilt1, tilt2, phi12, 20, 1/math.Sqrt(6), 1)
	require.NoError(t, err)
	assert.InDeltaSlice(t, chiEff, ChiEff(m1, m2, a1, a2, t1, t2), 1e-9)
	//
	for _, phi := range p {
		assert.GreaterOrEqual(t, phi, 0.0)
		assert.Less(t, phi, 2*math.Pi)
	}
	// A terminal velocity of zero is rejected rather than dividing through
	for _, v := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, _, _, err = EvolveSpinsForwards(m1, m2, a1, a2, tilt1, tilt2, phi12, 20, v, 2)
		assert.Error(t, err, "terminal velocity %g", v)
	}
}

func Test_Tidal_01(t *testing.T) {
	var (
		l1 = []float64{300, 100}
		l2 = []float64{600, 1000}
		m1 = []float64{1.5, 1.8}
		m2 = []float64{1.2, 1.1}
	)
	//
	lt := LambdaTilde(l1, l2, m1, m2)
	dl := DeltaLambda(l1, l2, m1, m2)
	n1, n2 := ComponentLambdas(lt, dl, m1, m2)
	//
	assert.InDeltaSlice(t, l1, n1, 1e-6)
	assert.InDeltaSlice(t, l2, n2, 1e-6)
	// Equal masses and deformabilities
	assert.InDelta(t, 400.0, LambdaTilde([]float64{400}, []float64{400}, []float64{1.4}, []float64{1.4})[0], 1e-9)
}

func Test_Tidal_02(t *testing.T) {
	c := Compactness([]float64{400, 0, -1})
	//
	assert.Greater(t, c[0], 0.1)
	assert.Less(t, c[0], 0.25)
	assert.True(t, math.IsNaN(c[1]))
	assert.True(t, math.IsNaN(c[2]))
	assert.Greater(t, BaryonicMass([]float64{1.4}, c[:1])[0], 1.4)
}

func Test_SNR_01(t *testing.T) {
	_, err := NewPSD([]float64{10, 20}, []float64{1})
	assert.Error(t, err)
	_, err = NewPSD([]float64{20, 10}, []float64{1, 1})
	assert.Error(t, err)
	//
	psd, err := NewPSD([]float64{10, 2048}, []float64{1e-46, 1e-46})
	require.NoError(t, err)
	assert.True(t, math.IsInf(psd.At(5), 1))
	assert.Equal(t, 1e-46, psd.At(100))
	//
	var (
		mc   = []float64{30, 30}
		dist = []float64{400, 800}
		snr  = OptimalSNR(psd, mc, dist, 20, 1024, 1.0/4, 2)
	)
	// SNR is inversely proportional to distance
	assert.Greater(t, snr[0], 0.0)
	assert.InEpsilon(t, snr[0], 2*snr[1], 1e-12)
	assert.InDeltaSlice(t, []float64{5}, NetworkSNR([]float64{3}, []float64{4}), 1e-12)
}
