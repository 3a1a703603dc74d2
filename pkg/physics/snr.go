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
)

// MPC_SI is one megaparsec in metres.
const MPC_SI = 3.085677581491367e+22

// C_SI is the speed of light in m/s.
const C_SI = 299792458.0

// PSD is a one-sided power spectral density sampled at a set of (increasing)
// frequencies.
type PSD struct {
	Frequencies []float64 `yaml:"frequencies" json:"frequencies"`
	Values      []float64 `yaml:"values" json:"values"`
}

// NewPSD constructs a power spectral density, checking that it is well
// formed.
func NewPSD(frequencies []float64, values []float64) (PSD, error) {
	if len(frequencies) != len(values) {
		return PSD{}, errors.New("psd frequencies and values differ in length")
	} else if len(frequencies) < 2 {
		return PSD{}, errors.New("psd requires at least two points")
	}
	//
	for i := 1; i < len(frequencies); i++ {
		if frequencies[i] <= frequencies[i-1] {
			return PSD{}, errors.New("psd frequencies must be strictly increasing")
		}
	}
	//
	return PSD{frequencies, values}, nil
}

// At returns the (linearly interpolated) value of this PSD at a given
// frequency.  Frequencies outside the sampled band give +Inf, meaning they do
// not contribute to any SNR.
func (p PSD) At(freq float64) float64 {
	if len(p.Frequencies) == 0 || freq < p.Frequencies[0] || freq > p.Frequencies[len(p.Frequencies)-1] {
		return math.Inf(1)
	}
	//
	return interpolate(p.Frequencies, p.Values, freq)
}

// NetworkSNR combines per-detector SNRs in quadrature.
func NetworkSNR(snrs ...[]float64) []float64 {
	return Vectorise(func(x ...float64) float64 {
		var sum float64
		//
		for _, v := range x {
			sum += v * v
		}
		//
		return math.Sqrt(sum)
	}, snrs...)
}

// OptimalSNR computes the optimal SNR of the inspiral for an optimally
// oriented source with a given (detector frame) chirp mass and luminosity
// distance.  The overlap integral is evaluated between fLow and fFinal at a
// spacing of deltaF.  Work is split across npool go-routines.
func OptimalSNR(psd PSD, mchirp, distance []float64, fLow, fFinal, deltaF float64, npool uint) []float64 {
	var (
		integral float64
		// Amplitude prefactor, sqrt(5/24) pi^(-2/3).
		prefactor = math.Sqrt(5.0/24) * math.Pow(math.Pi, -2.0/3)
	)
	// The frequency integral is common to all samples
	for f := fLow; f <= fFinal; f += deltaF {
		integral += math.Pow(f, -7.0/3) / psd.At(f) * deltaF
	}
	//
	return parVectorise(npool, func(x ...float64) float64 {
		var (
			tchirp = x[0] * MTSUN_SI
			dist   = x[1] * MPC_SI
			amp    = prefactor * math.Pow(tchirp, 5.0/6) * C_SI / dist
		)
		//
		return amp * math.Sqrt(4*integral)
	}, mchirp, distance)
}
