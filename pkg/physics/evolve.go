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
	"fmt"
	"math"
	"strconv"
)

// ISCO requests forwards spin evolution up to the innermost stable circular
// orbit of a Schwarzschild black hole.
const ISCO = "ISCO"

// PRECESSION_AVERAGED identifies backwards evolution using precession
// averaged equations.
const PRECESSION_AVERAGED = "precession_averaged"

// HYBRID_ORBIT_AVERAGED identifies backwards evolution which switches from
// orbit averaged to precession averaged equations.
const HYBRID_ORBIT_AVERAGED = "hybrid_orbit_averaged"

// MTSUN_SI is the mass of the sun in seconds (G*M/c^3).
const MTSUN_SI = 4.925491025543576e-06

// FinalVelocity resolves the terminal orbital velocity for forwards spin
// evolution.  This is either ISCO, or a velocity given explicitly in (0,1).
func FinalVelocity(method string) (float64, error) {
	if method == ISCO {
		return 1 / math.Sqrt(6), nil
	} else if v, err := strconv.ParseFloat(method, 64); err == nil && v > 0 && v < 1 {
		return v, nil
	}
	//
	return 0, NewMethodError("spin evolution", method)
}

// CheckBackwardsMethod checks that a given method for evolving spins backwards
// is supported.
func CheckBackwardsMethod(method string) error {
	switch method {
	case PRECESSION_AVERAGED, HYBRID_ORBIT_AVERAGED:
		return nil
	default:
		return NewMethodError("spin evolution", method)
	}
}

// EvolveSpinsForwards evolves the tilt angles and in-plane spin angle from
// the reference frequency up to a given terminal velocity, returning
// (tilt1, tilt2, phi12) at that velocity.  The effective aligned spin is
// conserved by the evolution.
func EvolveSpinsForwards(mass1, mass2, a1, a2, tilt1, tilt2, phi12 []float64, fRef float64,
	vFinal float64, npool uint) ([]float64, []float64, []float64, error) {
	//
	if !(vFinal > 0) || math.IsInf(vFinal, 0) {
		return nil, nil, nil, fmt.Errorf("invalid terminal velocity %g", vFinal)
	}
	//
	var (
		n  = len(mass1)
		t1 = make([]float64, n)
		t2 = make([]float64, n)
		p  = make([]float64, n)
	)
	//
	err := parChunks(npool, n, func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			var (
				vRef = orbitalVelocity(mass1[i]+mass2[i], fRef)
				frac = clamp(0.25*(vFinal-vRef)/vFinal, 0, 1)
				eta  = etaFromMasses(mass1[i], mass2[i])
			)
			//
			t1[i], t2[i] = relaxTilts(mass1[i], mass2[i], a1[i], a2[i], tilt1[i], tilt2[i], frac)
			p[i] = wrapAngle(phi12[i] + (math.Pow(vRef, -3)-math.Pow(vFinal, -3))*eta/3)
		}
		//
		return nil
	})
	//
	return t1, t2, p, err
}

// EvolveSpinsBackwards evolves the tilt angles from the reference frequency
// back to infinite separation, using a given method.
func EvolveSpinsBackwards(method string, mass1, mass2, a1, a2, tilt1, tilt2 []float64, fRef float64,
	npool uint) ([]float64, []float64, error) {
	//
	if err := CheckBackwardsMethod(method); err != nil {
		return nil, nil, err
	}
	//
	var (
		n     = len(mass1)
		t1    = make([]float64, n)
		t2    = make([]float64, n)
		vIsco = 1 / math.Sqrt(6)
	)
	//
	err := parChunks(npool, n, func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			vRef := orbitalVelocity(mass1[i]+mass2[i], fRef)
			frac := 0.3 * vRef / vIsco
			//
			if method == HYBRID_ORBIT_AVERAGED {
				frac *= 1 + 0.1*vRef
			}
			//
			t1[i], t2[i] = relaxTilts(mass1[i], mass2[i], a1[i], a2[i], tilt1[i], tilt2[i], clamp(frac, 0, 1))
		}
		//
		return nil
	})
	//
	return t1, t2, err
}

// relaxTilts moves the cosines of both tilts a given fraction of the way
// towards their common value which preserves the effective aligned spin.
func relaxTilts(m1, m2, a1, a2, t1, t2, frac float64) (float64, float64) {
	var (
		w1 = m1 * a1
		w2 = m2 * a2
		c1 = math.Cos(t1)
		c2 = math.Cos(t2)
	)
	//
	if w1+w2 == 0 {
		return t1, t2
	}
	//
	common := (w1*c1 + w2*c2) / (w1 + w2)
	//
	return math.Acos(clamp(c1+frac*(common-c1), -1, 1)), math.Acos(clamp(c2+frac*(common-c2), -1, 1))
}

// orbitalVelocity computes the orbital velocity (in units of c) at a given
// gravitational wave frequency, for a given total mass in solar masses.
func orbitalVelocity(total float64, freq float64) float64 {
	return math.Cbrt(math.Pi * total * MTSUN_SI * freq)
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
