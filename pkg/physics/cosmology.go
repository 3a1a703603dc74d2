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
	"sort"
	"strings"
)

// SPEED_OF_LIGHT in km/s.
const SPEED_OF_LIGHT = 299792.458

// Cosmology describes a flat Lambda-CDM cosmology.
type Cosmology struct {
	// Name of the cosmology (e.g. "Planck15")
	Name string
	// Hubble constant in km/s/Mpc
	H0 float64
	// Matter density parameter
	Om0 float64
}

var cosmologies = []Cosmology{
	{"Planck15", 67.74, 0.3075},
	{"Planck18", 67.66, 0.30966},
	{"WMAP9", 69.32, 0.2865},
}

// Cosmologies returns the names of all available cosmologies.
func Cosmologies() []string {
	names := make([]string, len(cosmologies))
	//
	for i, c := range cosmologies {
		names[i] = c.Name
	}
	//
	return names
}

// LookupCosmology finds a cosmology by (case-insensitive) name.
func LookupCosmology(name string) (Cosmology, error) {
	for _, c := range cosmologies {
		if strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}
	//
	return Cosmology{}, NewMethodError("cosmology", name)
}

// ComovingDistance computes the line-of-sight comoving distance (in Mpc) to a
// given redshift, using Simpson's rule.
func (c Cosmology) ComovingDistance(z float64) float64 {
	const n = 256
	//
	if z <= 0 {
		return 0
	}
	//
	var (
		h   = z / n
		sum = c.invE(0) + c.invE(z)
	)
	//
	for i := 1; i < n; i++ {
		w := 2.0
		if i%2 == 1 {
			w = 4.0
		}
		//
		sum += w * c.invE(float64(i)*h)
	}
	//
	return SPEED_OF_LIGHT / c.H0 * sum * h / 3
}

// LuminosityDistance computes the luminosity distance (in Mpc) to a given
// redshift.
func (c Cosmology) LuminosityDistance(z float64) float64 {
	return (1 + z) * c.ComovingDistance(z)
}

func (c Cosmology) invE(z float64) float64 {
	zp := 1 + z
	//
	return 1 / math.Sqrt(c.Om0*zp*zp*zp+(1-c.Om0))
}

// RedshiftExact computes the redshift for each luminosity distance by
// numerically inverting the distance-redshift relation.  Work is split across
// npool go-routines.
func RedshiftExact(cosmo Cosmology, distance []float64, npool uint) []float64 {
	return parVectorise(npool, func(x ...float64) float64 {
		return cosmo.redshift(x[0])
	}, distance)
}

// RedshiftApprox computes the redshift for each luminosity distance by
// interpolating over a fixed grid.  This is faster, but less accurate, than
// RedshiftExact.
func RedshiftApprox(cosmo Cosmology, distance []float64) []float64 {
	var (
		maxDist = 0.0
		zs      []float64
		dls     []float64
	)
	//
	for _, d := range distance {
		maxDist = math.Max(maxDist, d)
	}
	// Build grid which covers the largest distance
	zmax := cosmo.redshift(maxDist) * 1.01
	//
	for i := 0; i <= 500; i++ {
		z := zmax * float64(i) / 500
		zs = append(zs, z)
		dls = append(dls, cosmo.LuminosityDistance(z))
	}
	//
	return Vectorise(func(x ...float64) float64 {
		return interpolate(dls, zs, x[0])
	}, distance)
}

// ComovingFromLuminosity converts luminosity distance to comoving distance.
func ComovingFromLuminosity(distance, redshift []float64) []float64 {
	return Vectorise(func(x ...float64) float64 { return x[0] / (1 + x[1]) }, distance, redshift)
}

// LuminosityDistances computes the luminosity distance for each redshift.
func LuminosityDistances(cosmo Cosmology, redshift []float64) []float64 {
	return Vectorise(func(x ...float64) float64 { return cosmo.LuminosityDistance(x[0]) }, redshift)
}

// Invert the luminosity distance by bisection.
func (c Cosmology) redshift(distance float64) float64 {
	if distance <= 0 {
		return 0
	}
	//
	lo, hi := 0.0, 1.0
	// Expand the bracket
	for c.LuminosityDistance(hi) < distance && hi < 1e4 {
		lo, hi = hi, 2*hi
	}
	//
	for i := 0; i < 80; i++ {
		mid := 0.5 * (lo + hi)
		if c.LuminosityDistance(mid) < distance {
			lo = mid
		} else {
			hi = mid
		}
	}
	//
	return 0.5 * (lo + hi)
}

// interpolate linearly interpolates y(x) at a given point, where xs is sorted.
// Points outside the grid are clamped to its ends.
func interpolate(xs []float64, ys []float64, x float64) float64 {
	i := sort.SearchFloat64s(xs, x)
	//
	switch {
	case i == 0:
		return ys[0]
	case i >= len(xs):
		return ys[len(ys)-1]
	}
	//
	t := (x - xs[i-1]) / (xs[i] - xs[i-1])
	//
	return ys[i-1] + t*(ys[i]-ys[i-1])
}
