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
	"math"
	"testing"
)

func Test_Masses_01(t *testing.T) {
	checkMassRoundTrip(t, 30, 20)
}

func Test_Masses_02(t *testing.T) {
	checkMassRoundTrip(t, 1.4, 1.2)
}

func Test_Masses_03(t *testing.T) {
	checkMassRoundTrip(t, 80, 8)
}

func Test_Masses_04(t *testing.T) {
	checkMassRoundTrip(t, 10, 10)
}

func Test_MassRatio_01(t *testing.T) {
	m1 := []float64{30, 10}
	m2 := []float64{20, 10}
	q := MassRatio(m1, m2)
	//
	checkClose(t, "mass_ratio", q, []float64{2.0 / 3, 1}, 1e-12)
	checkClose(t, "mass_ratio", MassRatioFromEta(SymmetricMassRatio(m1, m2)), q, 1e-6)
	checkClose(t, "inverted_mass_ratio", InvertMassRatio(q), []float64{1.5, 1}, 1e-12)
}

func Test_SymmetricMassRatio_01(t *testing.T) {
	eta := SymmetricMassRatio([]float64{10}, []float64{10})
	// Equal masses give the maximum
	checkClose(t, "symmetric_mass_ratio", eta, []float64{0.25}, 1e-15)
	// Rounding above 1/4 must not give NaN
	checkClose(t, "mass_ratio", MassRatioFromEta([]float64{0.25 + 1e-17}), []float64{1}, 1e-6)
}

func Test_SourceFrame_01(t *testing.T) {
	m := []float64{30, 40}
	z := []float64{0.1, 0.5}
	//
	checkClose(t, "mass_1", DetectorFrame(SourceFrame(m, z), z), m, 1e-12)
}

// Derive the component masses via the chirp mass, and via the total mass,
// checking both recover the originals.
func checkMassRoundTrip(t *testing.T, mass1 float64, mass2 float64) {
	var (
		m1  = []float64{mass1}
		m2  = []float64{mass2}
		q   = MassRatio(m1, m2)
		mc  = ChirpMass(m1, m2)
		mt  = TotalMass(m1, m2)
		eta = SymmetricMassRatio(m1, m2)
	)
	//
	n1, n2 := ComponentMassesFromChirpMass(mc, q)
	checkClose(t, "mass_1", n1, m1, 1e-6)
	checkClose(t, "mass_2", n2, m2, 1e-6)
	//
	n1, n2 = ComponentMassesFromTotalMass(mt, q)
	checkClose(t, "mass_1", n1, m1, 1e-6)
	checkClose(t, "mass_2", n2, m2, 1e-6)
	//
	checkClose(t, "total_mass", TotalMassFromChirpMass(mc, eta), mt, 1e-6)
	checkClose(t, "chirp_mass", ChirpMassFromTotalMass(mt, q), mc, 1e-6)
	checkClose(t, "mass_2", Mass2FromMass1(m1, q), m2, 1e-9)
	checkClose(t, "mass_1", Mass1FromMass2(m2, q), m1, 1e-9)
}

func checkClose(t *testing.T, name string, actual []float64, expected []float64, tolerance float64) {
	t.Helper()
	//
	if len(actual) != len(expected) {
		t.Fatalf("%s has %d samples, expected %d", name, len(actual), len(expected))
	}
	//
	for i := range actual {
		if math.Abs(actual[i]-expected[i]) > tolerance*math.Max(1, math.Abs(expected[i])) {
			t.Errorf("%s[%d] = %v, expected %v", name, i, actual[i], expected[i])
		}
	}
}
