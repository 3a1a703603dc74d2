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

// LambdaTilde computes the combined dimensionless tidal deformability from the
// component deformabilities and masses.
func LambdaTilde(lambda1, lambda2, mass1, mass2 []float64) []float64 {
	return Vectorise(func(x ...float64) float64 {
		a, b, _, _ := tidalCoefficients(etaFromMasses(x[2], x[3]))
		//
		return a*(x[0]+x[1]) + b*(x[0]-x[1])
	}, lambda1, lambda2, mass1, mass2)
}

// DeltaLambda computes the asymmetric tidal deformability correction from the
// component deformabilities and masses.
func DeltaLambda(lambda1, lambda2, mass1, mass2 []float64) []float64 {
	return Vectorise(func(x ...float64) float64 {
		_, _, c, d := tidalCoefficients(etaFromMasses(x[2], x[3]))
		//
		return c*(x[0]+x[1]) + d*(x[0]-x[1])
	}, lambda1, lambda2, mass1, mass2)
}

// ComponentLambdas inverts LambdaTilde and DeltaLambda to recover the
// component deformabilities (lambda1, lambda2).
func ComponentLambdas(lambdaTilde, deltaLambda, mass1, mass2 []float64) ([]float64, []float64) {
	var (
		n  = len(lambdaTilde)
		l1 = make([]float64, n)
		l2 = make([]float64, n)
	)
	//
	for i := 0; i < n; i++ {
		a, b, c, d := tidalCoefficients(etaFromMasses(mass1[i], mass2[i]))
		det := a*d - b*c
		sum := (d*lambdaTilde[i] - b*deltaLambda[i]) / det
		diff := (a*deltaLambda[i] - c*lambdaTilde[i]) / det
		l1[i] = 0.5 * (sum + diff)
		l2[i] = 0.5 * (sum - diff)
	}
	//
	return l1, l2
}

// tidalCoefficients returns the coefficients expressing lambda_tilde and
// delta_lambda as linear combinations of (lambda1+lambda2) and
// (lambda1-lambda2).
func tidalCoefficients(eta float64) (float64, float64, float64, float64) {
	var (
		s  = math.Sqrt(math.Max(1-4*eta, 0))
		e2 = eta * eta
		e3 = e2 * eta
		a  = 8.0 / 13 * (1 + 7*eta - 31*e2)
		b  = 8.0 / 13 * s * (1 + 9*eta - 11*e2)
		c  = 0.5 * s * (1 - 13272.0/1319*eta + 8944.0/1319*e2)
		d  = 0.5 * (1 - 15910.0/1319*eta + 32850.0/1319*e2 + 3380.0/1319*e3)
	)
	//
	return a, b, c, d
}

// Compactness estimates the compactness of a neutron star from its tidal
// deformability using a quasi-universal relation.  Non-positive
// deformabilities give NaN.
func Compactness(lambda []float64) []float64 {
	return Vectorise(func(x ...float64) float64 {
		if x[0] <= 0 {
			return math.NaN()
		}
		//
		l := math.Log(x[0])
		//
		return 0.371 - 0.0391*l + 0.001056*l*l
	}, lambda)
}

// BaryonicMass estimates the baryonic mass of a neutron star from its
// gravitational mass and compactness.
func BaryonicMass(mass, compactness []float64) []float64 {
	return Vectorise(func(x ...float64) float64 {
		return x[0] * (1 + 0.6*x[1]/(1-0.5*x[1]))
	}, mass, compactness)
}

// TorusMass estimates the baryonic mass remaining outside the black hole
// following a neutron star black hole merger.  The aligned spin of the black
// hole enters through the radius of its innermost stable circular orbit.
func TorusMass(mass1, mass2, spin1z, compactness2, baryonicMass2 []float64) []float64 {
	const (
		alpha = 0.406
		beta  = 0.139
		gamma = 0.255
		delta = 1.761
	)
	//
	return Vectorise(func(x ...float64) float64 {
		var (
			q   = x[0] / x[1]
			eta = q / ((1 + q) * (1 + q))
			c   = x[3]
			r   = iscoRadius(x[2])
			f   = alpha*(1-2*c)/math.Cbrt(eta) - beta*r*c/eta + gamma
		)
		//
		if f <= 0 || math.IsNaN(f) {
			return 0
		}
		//
		return x[4] * math.Pow(f, delta)
	}, mass1, mass2, spin1z, compactness2, baryonicMass2)
}

// iscoRadius computes the radius (in units of the mass) of the innermost stable
// circular orbit for a black hole with a given aligned spin.
func iscoRadius(chi float64) float64 {
	var (
		z1 = 1 + math.Cbrt(1-chi*chi)*(math.Cbrt(1+chi)+math.Cbrt(1-chi))
		z2 = math.Sqrt(3*chi*chi + z1*z1)
	)
	//
	if chi >= 0 {
		return 3 + z2 - math.Sqrt((3-z1)*(3+z1+2*z2))
	}
	//
	return 3 + z2 + math.Sqrt((3-z1)*(3+z1+2*z2))
}
