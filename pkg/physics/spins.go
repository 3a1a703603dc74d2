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

// ChiEff computes the effective aligned spin from the component masses, the
// spin magnitudes and the tilt angles.
func ChiEff(mass1, mass2, a1, a2, tilt1, tilt2 []float64) []float64 {
	return Vectorise(func(x ...float64) float64 {
		return (x[0]*x[2]*math.Cos(x[4]) + x[1]*x[3]*math.Cos(x[5])) / (x[0] + x[1])
	}, mass1, mass2, a1, a2, tilt1, tilt2)
}

// ChiEffFromAligned computes the effective aligned spin from the component
// masses and the aligned spin components.
func ChiEffFromAligned(mass1, mass2, spin1z, spin2z []float64) []float64 {
	return Vectorise(func(x ...float64) float64 {
		return (x[0]*x[2] + x[1]*x[3]) / (x[0] + x[1])
	}, mass1, mass2, spin1z, spin2z)
}

// ChiP computes the effective precessing spin from the component masses, the
// spin magnitudes and the tilt angles.  This assumes m1 >= m2.
func ChiP(mass1, mass2, a1, a2, tilt1, tilt2 []float64) []float64 {
	return Vectorise(func(x ...float64) float64 {
		q := x[1] / x[0]
		b1 := x[2] * math.Sin(x[4])
		b2 := (4*q + 3) / (4 + 3*q) * q * x[3] * math.Sin(x[5])
		//
		return math.Max(b1, b2)
	}, mass1, mass2, a1, a2, tilt1, tilt2)
}

// Cos computes the element-wise cosine of an angle.
func Cos(angle []float64) []float64 {
	return Vectorise(func(x ...float64) float64 { return math.Cos(x[0]) }, angle)
}

// Arccos computes the element-wise inverse cosine.
func Arccos(cosine []float64) []float64 {
	return Vectorise(func(x ...float64) float64 { return math.Acos(x[0]) }, cosine)
}

// AlignedComponent computes the component of a spin along the orbital angular
// momentum, a*cos(tilt).
func AlignedComponent(a, tilt []float64) []float64 {
	return Vectorise(func(x ...float64) float64 { return x[0] * math.Cos(x[1]) }, a, tilt)
}

// AlignedSpinAngles converts an aligned spin component into a spin magnitude,
// and a tilt which is exactly 0 or pi.
func AlignedSpinAngles(spinz []float64) ([]float64, []float64) {
	a := Vectorise(func(x ...float64) float64 { return math.Abs(x[0]) }, spinz)
	tilt := Vectorise(func(x ...float64) float64 {
		if x[0] < 0 {
			return math.Pi
		}
		//
		return 0
	}, spinz)
	//
	return a, tilt
}

// ComponentSpins converts spin magnitudes and angles into cartesian
// components in the frame where the orbital angular momentum lies along z, and
// the in-plane component of the first spin lies along x.  The result is given
// in the order (s1x, s1y, s1z, s2x, s2y, s2z).
func ComponentSpins(a1, a2, tilt1, tilt2, phi12 []float64) [][]float64 {
	s1x := Vectorise(func(x ...float64) float64 { return x[0] * math.Sin(x[1]) }, a1, tilt1)
	s1y := make([]float64, len(a1))
	s1z := AlignedComponent(a1, tilt1)
	s2x := Vectorise(func(x ...float64) float64 { return x[0] * math.Sin(x[1]) * math.Cos(x[2]) }, a2, tilt2, phi12)
	s2y := Vectorise(func(x ...float64) float64 { return x[0] * math.Sin(x[1]) * math.Sin(x[2]) }, a2, tilt2, phi12)
	s2z := AlignedComponent(a2, tilt2)
	//
	return [][]float64{s1x, s1y, s1z, s2x, s2y, s2z}
}

// SpinAngles converts cartesian spin components into (a1, a2, tilt1, tilt2,
// phi12).  Tilts of zero-magnitude spins are taken to be zero.
func SpinAngles(s1x, s1y, s1z, s2x, s2y, s2z []float64) [][]float64 {
	a1 := Vectorise(norm3, s1x, s1y, s1z)
	a2 := Vectorise(norm3, s2x, s2y, s2z)
	tilt1 := Vectorise(tilt, a1, s1z)
	tilt2 := Vectorise(tilt, a2, s2z)
	phi12 := Vectorise(func(x ...float64) float64 {
		phi := math.Atan2(x[3], x[2]) - math.Atan2(x[1], x[0])
		//
		return wrapAngle(phi)
	}, s1x, s1y, s2x, s2y)
	//
	return [][]float64{a1, a2, tilt1, tilt2, phi12}
}

func norm3(x ...float64) float64 {
	return math.Sqrt(x[0]*x[0] + x[1]*x[1] + x[2]*x[2])
}

func tilt(x ...float64) float64 {
	if x[0] == 0 {
		return 0
	}
	// Clamp to account for rounding
	return math.Acos(math.Max(-1, math.Min(1, x[1]/x[0])))
}

// wrapAngle maps an angle into [0, 2pi).
func wrapAngle(phi float64) float64 {
	phi = math.Mod(phi, 2*math.Pi)
	if phi < 0 {
		phi += 2 * math.Pi
	}
	//
	return phi
}

// Identity returns a copy of the given column.  This is useful for quantities
// which coincide under certain assumptions (e.g. iota and theta_jn for
// non-precessing systems).
func Identity(col []float64) []float64 {
	ncol := make([]float64, len(col))
	copy(ncol, col)
	//
	return ncol
}
