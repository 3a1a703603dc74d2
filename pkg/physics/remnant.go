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
)

// AVERAGE_FITS identifies the default family of remnant fits, which averages
// over several binary black hole fits.
const AVERAGE_FITS = "average"

// NRSUR_FITS identifies remnant fits calibrated against the NRSur7dq4
// surrogate.  This is the only family which provides a recoil kick.
const NRSUR_FITS = "NRSur7dq4Remnant"

// WAVEFORM_FITS identifies remnant fits tied to a given waveform approximant.
const WAVEFORM_FITS = "waveform"

// NSBH_FITS identifies remnant fits for neutron star black hole systems.
const NSBH_FITS = "NSBH"

// NRSUR_MIN_MASS_RATIO is the smallest mass ratio for which the NRSur7dq4
// fits are calibrated.
const NRSUR_MIN_MASS_RATIO = 1.0 / 6

// Remnant holds the properties of the remnant black hole following a merger.
// Not every fit family provides every quantity, in which case the
// corresponding field is nil.
type Remnant struct {
	FinalMass      []float64
	FinalSpin      []float64
	RadiatedEnergy []float64
	PeakLuminosity []float64
	FinalKick      []float64
}

// approximant families supported for waveform specific fits.
var approximantFits = map[string]string{
	"IMRPhenomPv2":  "precessing",
	"IMRPhenomPv3":  "precessing",
	"IMRPhenomXP":   "precessing",
	"IMRPhenomXPHM": "precessing",
	"IMRPhenomD":    "bkl",
	"IMRPhenomXAS":  "bkl",
	"IMRPhenomXHM":  "bkl",
	"SEOBNRv4":      "rezzolla",
	"SEOBNRv4HM":    "rezzolla",
	"SEOBNRv4PHM":   "rezzolla",
	"SEOBNRv4_ROM":  "rezzolla",
}

// KnownApproximant returns true if the given approximant has known remnant fits.
func KnownApproximant(approximant string) bool {
	_, ok := approximantFits[approximant]
	return ok
}

// BBHRemnant computes the remnant properties for a binary black hole merger
// using a given fit family.  The approximant is only relevant for the
// waveform family.  Work is split across npool go-routines.
func BBHRemnant(family string, approximant string, mass1, mass2, a1, a2, tilt1, tilt2 []float64,
	npool uint) (Remnant, error) {
	//
	var spin func(m1, m2, a1, a2, t1, t2 float64) float64
	//
	switch family {
	case AVERAGE_FITS:
		spin = func(m1, m2, a1, a2, t1, t2 float64) float64 {
			r := precessingSpin(rezzollaSpin, m1, m2, a1, a2, t1, t2)
			b := precessingSpin(bklSpin, m1, m2, a1, a2, t1, t2)
			//
			return 0.5 * (r + b)
		}
	case NRSUR_FITS:
		spin = func(m1, m2, a1, a2, t1, t2 float64) float64 {
			return precessingSpin(rezzollaSpin, m1, m2, a1, a2, t1, t2)
		}
	case WAVEFORM_FITS:
		kind, ok := approximantFits[approximant]
		if !ok {
			return Remnant{}, NewMethodError("approximant", approximant)
		}
		//
		spin = waveformSpin(kind)
	default:
		return Remnant{}, NewMethodError("remnant fit", family)
	}
	//
	var (
		n   = len(mass1)
		rem = Remnant{
			FinalMass:      make([]float64, n),
			FinalSpin:      make([]float64, n),
			RadiatedEnergy: make([]float64, n),
			PeakLuminosity: make([]float64, n),
		}
	)
	//
	if family == NRSUR_FITS {
		rem.FinalKick = make([]float64, n)
	}
	//
	err := parChunks(npool, n, func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			var (
				m1, m2 = mass1[i], mass2[i]
				total  = m1 + m2
				eta    = etaFromMasses(m1, m2)
				erad   = radiatedEnergy(m1, m2, a1[i]*math.Cos(tilt1[i]), a2[i]*math.Cos(tilt2[i]))
			)
			//
			rem.FinalSpin[i] = spin(m1, m2, a1[i], a2[i], tilt1[i], tilt2[i])
			rem.RadiatedEnergy[i] = erad * total
			rem.FinalMass[i] = total * (1 - erad)
			rem.PeakLuminosity[i] = peakLuminosity(eta, (m1*a1[i]*math.Cos(tilt1[i])+m2*a2[i]*math.Cos(tilt2[i]))/total)
			//
			if rem.FinalKick != nil {
				rem.FinalKick[i] = recoilKick(eta)
			}
		}
		//
		return nil
	})
	//
	return rem, err
}

// NSBHRemnant computes the remnant properties for a neutron star black hole
// merger, where the secondary is the neutron star.  Some fraction of the
// neutron star may be left outside the remnant (in a torus) which reduces
// both the final mass and final spin compared with a binary black hole.
func NSBHRemnant(mass1, mass2, spin1z, lambda2 []float64) Remnant {
	var (
		n     = len(mass1)
		comp  = Compactness(lambda2)
		bmass = BaryonicMass(mass2, comp)
		torus = TorusMass(mass1, mass2, spin1z, comp, bmass)
		rem   = Remnant{
			FinalMass:      make([]float64, n),
			FinalSpin:      make([]float64, n),
			RadiatedEnergy: make([]float64, n),
		}
	)
	//
	for i := 0; i < n; i++ {
		var (
			m1, m2 = mass1[i], mass2[i]
			total  = m1 + m2
			erad   = radiatedEnergy(m1, m2, spin1z[i], 0)
			bbh    = rezzollaSpin(m1, m2, spin1z[i], 0)
		)
		//
		rem.RadiatedEnergy[i] = erad * total
		rem.FinalMass[i] = math.Max(total*(1-erad)-torus[i], 0)
		rem.FinalSpin[i] = bbh * (1 - torus[i]/total)
	}
	//
	return rem
}

func waveformSpin(kind string) func(m1, m2, a1, a2, t1, t2 float64) float64 {
	switch kind {
	case "precessing":
		return func(m1, m2, a1, a2, t1, t2 float64) float64 {
			return precessingSpin(rezzollaSpin, m1, m2, a1, a2, t1, t2)
		}
	case "bkl":
		return func(m1, m2, a1, a2, t1, t2 float64) float64 {
			return math.Abs(bklSpin(m1, m2, a1*math.Cos(t1), a2*math.Cos(t2)))
		}
	default:
		return func(m1, m2, a1, a2, t1, t2 float64) float64 {
			return math.Abs(rezzollaSpin(m1, m2, a1*math.Cos(t1), a2*math.Cos(t2)))
		}
	}
}

// precessingSpin augments an aligned spin fit with the contribution of the
// in-plane spin components.
func precessingSpin(aligned func(m1, m2, chi1, chi2 float64) float64, m1, m2, a1, a2, t1, t2 float64) float64 {
	var (
		total = m1 + m2
		par   = aligned(m1, m2, a1*math.Cos(t1), a2*math.Cos(t2))
		perp  = (m1*m1*a1*math.Sin(t1) + m2*m2*a2*math.Sin(t2)) / (total * total)
	)
	//
	return math.Min(math.Sqrt(par*par+perp*perp), 1)
}

// rezzollaSpin is an aligned spin fit for the final spin.
func rezzollaSpin(m1, m2, chi1, chi2 float64) float64 {
	const (
		s4 = -0.1229
		s5 = 0.4537
		t0 = -2.8904
		t2 = -3.5171
		t3 = 2.5763
	)
	//
	var (
		q   = m2 / m1
		eta = etaFromMasses(m1, m2)
		a   = (chi1 + chi2*q*q) / ((1 + q) * (1 + q))
	)
	//
	return a + s4*a*a*eta + s5*a*eta*eta + t0*a*eta + 2*math.Sqrt(3)*eta + t2*eta*eta + t3*eta*eta*eta
}

// bklSpin is an aligned spin fit for the final spin, obtained by iterating the
// orbital angular momentum at the innermost stable circular orbit.
func bklSpin(m1, m2, chi1, chi2 float64) float64 {
	var (
		total = m1 + m2
		eta   = etaFromMasses(m1, m2)
		s     = (m1*m1*chi1 + m2*m2*chi2) / (total * total)
		af    = s
	)
	//
	for i := 0; i < 50; i++ {
		af = math.Max(-0.998, math.Min(0.998, s+eta*orbitalAngularMomentum(af)))
	}
	//
	return af
}

// orbitalAngularMomentum computes the specific orbital angular momentum at the
// innermost stable circular orbit of a black hole with spin a.
func orbitalAngularMomentum(a float64) float64 {
	var (
		r  = iscoRadius(a)
		sr = math.Sqrt(r)
	)
	//
	return (r*r - 2*a*sr + a*a) / (math.Pow(r, 0.75) * math.Sqrt(r*sr-3*sr+2*a))
}

// radiatedEnergy computes the fraction of the total mass radiated.
func radiatedEnergy(m1, m2, chi1, chi2 float64) float64 {
	const (
		p0 = 0.04827
		p1 = 0.01707
	)
	//
	var (
		q    = m2 / m1
		eta  = etaFromMasses(m1, m2)
		a    = (chi1 + chi2*q*q) / ((1 + q) * (1 + q))
		eisc = math.Sqrt(1 - 2/(3*iscoRadius(math.Max(-1, math.Min(1, a)))))
	)
	//
	return (1-eisc)*eta + 4*eta*eta*(4*p0+16*p1*a*(a+1)+eisc-1)
}

// peakLuminosity estimates the peak gravitational wave luminosity in units of
// 1e56 erg/s.
func peakLuminosity(eta float64, chiEff float64) float64 {
	return math.Max(3.6*16*eta*eta*(1+0.5*chiEff), 0)
}

// recoilKick estimates the mass-asymmetry recoil velocity in km/s.
func recoilKick(eta float64) float64 {
	return 1.2e4 * eta * eta * math.Sqrt(math.Max(1-4*eta, 0)) * (1 - 0.93*eta)
}
