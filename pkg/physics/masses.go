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

import "math"

// MassRatio computes the mass ratio q = m2/m1 from the component masses.
func MassRatio(mass1, mass2 []float64) []float64 {
	return Vectorise(func(x ...float64) float64 { return x[1] / x[0] }, mass1, mass2)
}

// MassRatioFromEta computes the mass ratio q <= 1 from the symmetric mass
// ratio.
func MassRatioFromEta(eta []float64) []float64 {
	return Vectorise(func(x ...float64) float64 { return qFromEta(x[0]) }, eta)
}

// InvertMassRatio computes 1/q.
func InvertMassRatio(q []float64) []float64 {
	return Vectorise(func(x ...float64) float64 { return 1 / x[0] }, q)
}

// SymmetricMassRatio computes eta = m1*m2/(m1+m2)^2 from the component masses.
func SymmetricMassRatio(mass1, mass2 []float64) []float64 {
	return Vectorise(func(x ...float64) float64 { return etaFromMasses(x[0], x[1]) }, mass1, mass2)
}

// SymmetricMassRatioFromQ computes eta from the mass ratio.
func SymmetricMassRatioFromQ(q []float64) []float64 {
	return Vectorise(func(x ...float64) float64 { return etaFromQ(x[0]) }, q)
}

// TotalMass computes m1+m2.
func TotalMass(mass1, mass2 []float64) []float64 {
	return Vectorise(func(x ...float64) float64 { return x[0] + x[1] }, mass1, mass2)
}

// ChirpMass computes (m1*m2)^(3/5) / (m1+m2)^(1/5).
func ChirpMass(mass1, mass2 []float64) []float64 {
	return Vectorise(func(x ...float64) float64 {
		return math.Pow(x[0]*x[1], 0.6) / math.Pow(x[0]+x[1], 0.2)
	}, mass1, mass2)
}

// ChirpMassFromTotalMass computes the chirp mass from the total mass and the
// mass ratio.
func ChirpMassFromTotalMass(total, q []float64) []float64 {
	return Vectorise(func(x ...float64) float64 {
		return x[0] * math.Pow(etaFromQ(x[1]), 0.6)
	}, total, q)
}

// TotalMassFromChirpMass computes the total mass from the chirp mass and the
// symmetric mass ratio.
func TotalMassFromChirpMass(mchirp, eta []float64) []float64 {
	return Vectorise(func(x ...float64) float64 {
		return x[0] * math.Pow(x[1], -0.6)
	}, mchirp, eta)
}

// ComponentMassesFromChirpMass computes (m1, m2) from the chirp mass and the
// mass ratio.
func ComponentMassesFromChirpMass(mchirp, q []float64) ([]float64, []float64) {
	m1 := Vectorise(func(x ...float64) float64 {
		return x[0] * math.Pow(1+x[1], 0.2) / math.Pow(x[1], 0.6)
	}, mchirp, q)
	m2 := Vectorise(func(x ...float64) float64 { return x[0] * x[1] }, m1, q)
	//
	return m1, m2
}

// ComponentMassesFromTotalMass computes (m1, m2) from the total mass and the
// mass ratio.
func ComponentMassesFromTotalMass(total, q []float64) ([]float64, []float64) {
	m1 := Vectorise(func(x ...float64) float64 { return x[0] / (1 + x[1]) }, total, q)
	m2 := Vectorise(func(x ...float64) float64 { return x[0] * x[1] / (1 + x[1]) }, total, q)
	//
	return m1, m2
}

// Mass2FromMass1 computes m2 = q * m1.
func Mass2FromMass1(mass1, q []float64) []float64 {
	return Vectorise(func(x ...float64) float64 { return x[0] * x[1] }, mass1, q)
}

// Mass1FromMass2 computes m1 = m2 / q.
func Mass1FromMass2(mass2, q []float64) []float64 {
	return Vectorise(func(x ...float64) float64 { return x[0] / x[1] }, mass2, q)
}

// SourceFrame converts a detector frame quantity into the source frame.
func SourceFrame(mass, redshift []float64) []float64 {
	return Vectorise(func(x ...float64) float64 { return x[0] / (1 + x[1]) }, mass, redshift)
}

// DetectorFrame converts a source frame quantity into the detector frame.
func DetectorFrame(mass, redshift []float64) []float64 {
	return Vectorise(func(x ...float64) float64 { return x[0] * (1 + x[1]) }, mass, redshift)
}

func etaFromMasses(m1, m2 float64) float64 {
	return m1 * m2 / ((m1 + m2) * (m1 + m2))
}

func etaFromQ(q float64) float64 {
	return q / ((1 + q) * (1 + q))
}

func qFromEta(eta float64) float64 {
	// Guard against rounding pushing eta just above 1/4
	disc := math.Max(1-4*eta, 0)
	//
	return ((1 - 2*eta) - math.Sqrt(disc)) / (2 * eta)
}
