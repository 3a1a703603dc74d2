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
	"math"
	"slices"

	"github.com/consensys/go-gwconvert/pkg/diag"
	"github.com/consensys/go-gwconvert/pkg/table"
)

// POSITIVE identifies parameters which must be strictly positive.  Samples
// violating this are considered unphysical, and are removed.
var POSITIVE = []string{
	"mass_1", "mass_2", "total_mass", "chirp_mass",
	"mass_1_source", "mass_2_source", "total_mass_source", "chirp_mass_source",
	"final_mass", "final_mass_source",
}

// NON_NEGATIVE identifies parameters which must not be negative.  Samples
// violating this are considered unphysical, and are removed.
var NON_NEGATIVE = []string{
	"mass_ratio", "symmetric_mass_ratio", "inverted_mass_ratio",
	"a_1", "a_2", "luminosity_distance", "comoving_distance", "redshift",
	"lambda_1", "lambda_2", "lambda_tilde",
}

// PAIRED identifies parameters describing the primary and secondary bodies
// respectively.  These are exchanged together whenever the secondary is found
// to be the heavier.
var PAIRED = [][2]string{
	{"mass_1", "mass_2"},
	{"mass_1_source", "mass_2_source"},
	{"a_1", "a_2"},
	{"tilt_1", "tilt_2"},
	{"cos_tilt_1", "cos_tilt_2"},
	{"spin_1x", "spin_2x"},
	{"spin_1y", "spin_2y"},
	{"spin_1z", "spin_2z"},
	{"lambda_1", "lambda_2"},
	{"tilt_1_infinity", "tilt_2_infinity"},
	{"tilt_1_evolved", "tilt_2_evolved"},
}

// SPINS identifies parameters which carry spin information.  A table without
// any of these is considered to have no spin information at all.
var SPINS = []string{
	"a_1", "a_2", "spin_1x", "spin_1y", "spin_1z", "spin_2x", "spin_2y", "spin_2z",
	"chi_eff", "chi_p", "tilt_1", "tilt_2", "cos_tilt_1", "cos_tilt_2",
}

// CheckSamples brings a table into canonical form.  Unphysical samples are
// removed, the mass ratio is made to be at most one and the primary is made to
// be the heavier body.  Optionally, zero spins are added for tables which
// carry no spin information.  An error is returned if no samples remain.
func CheckSamples(tbl *table.Table, report *diag.Report, addZeroSpin bool) error {
	if tbl.Height() == 0 {
		return ErrNoSamples
	}
	//
	FilterUnphysical(tbl, report)
	//
	if tbl.Height() == 0 {
		return ErrNoSamples
	}
	//
	CanonicaliseMassOrdering(tbl, report)
	CanonicaliseMassRatio(tbl, report)
	//
	if addZeroSpin {
		AddZeroSpin(tbl, report)
	}
	//
	return nil
}

// FilterUnphysical removes every sample which violates the bounds given by
// POSITIVE or NON_NEGATIVE, and returns the number removed.  NaN values are
// not considered to violate any bound.
func FilterUnphysical(tbl *table.Table, report *diag.Report) uint {
	var (
		mask    = make([]bool, tbl.Height())
		removed uint
	)
	//
	for i := range mask {
		mask[i] = true
	}
	//
	filter := func(name string, bad func(float64) bool, bound string) {
		col, ok := tbl.Column(name)
		if !ok {
			return
		}
		//
		var count uint
		//
		for i, v := range col {
			if mask[i] && bad(v) {
				mask[i] = false
				count++
			}
		}
		//
		if count > 0 {
			report.Warn(diag.ROWS_REMOVED, []string{name}, "removed %d samples with %s %s", count, name, bound)
		}
	}
	//
	for _, name := range POSITIVE {
		filter(name, func(v float64) bool { return v <= 0 }, "<= 0")
	}
	//
	for _, name := range NON_NEGATIVE {
		filter(name, func(v float64) bool { return v < 0 }, "< 0")
	}
	//
	removed = tbl.KeepRows(mask)
	//
	if removed > 0 {
		report.Info(diag.ROWS_REMOVED, nil, "removed %d unphysical samples, %d remain", removed, tbl.Height())
	}
	//
	return removed
}

// CanonicaliseMassRatio ensures the mass ratio is no larger than one.  If the
// median exceeds one, the mass ratio is assumed to follow the opposite
// convention and the whole column is inverted.  Any individual samples still
// exceeding one are then inverted on their own.  Returns the number of samples
// changed.
func CanonicaliseMassRatio(tbl *table.Table, report *diag.Report) uint {
	q, ok := tbl.Column("mass_ratio")
	if !ok || len(q) == 0 {
		return 0
	}
	//
	nq := make([]float64, len(q))
	copy(nq, q)
	//
	if median(q) > 1 {
		for i, v := range nq {
			nq[i] = 1 / v
		}
		//
		report.Info(diag.MASS_RATIO_INVERT, []string{"mass_ratio"}, "mass ratio median exceeds one, inverting all samples")
	}
	//
	var count uint
	//
	for i, v := range nq {
		if v > 1 {
			nq[i] = 1 / v
			count++
		}
	}
	//
	if count > 0 {
		report.Warn(diag.MASS_RATIO_INVERT, []string{"mass_ratio"}, "inverted %d samples with mass ratio exceeding one", count)
	}
	//
	var changed uint
	//
	for i := range nq {
		if nq[i] != q[i] && !(math.IsNaN(nq[i]) && math.IsNaN(q[i])) {
			changed++
		}
	}
	//
	if changed > 0 {
		if err := tbl.Set("mass_ratio", nq); err != nil {
			panic(err)
		}
	}
	//
	return changed
}

// CanonicaliseMassOrdering ensures mass_1 >= mass_2 for every sample.  For
// any sample where this fails, every pair of parameters in PAIRED is exchanged
// (a missing partner is first created, filled with zeros) and the in-plane
// spin angle is reflected.  Source frame masses decide the ordering when
// detector frame masses are absent.  Returns the number of samples exchanged.
func CanonicaliseMassOrdering(tbl *table.Table, report *diag.Report) uint {
	first, second := "mass_1", "mass_2"
	//
	if !tbl.HasAll(first, second) {
		first, second = "mass_1_source", "mass_2_source"
	}
	//
	m1, ok1 := tbl.Column(first)
	m2, ok2 := tbl.Column(second)
	//
	if !ok1 || !ok2 {
		return 0
	}
	//
	var (
		mask    = make([]bool, len(m1))
		count   uint
		swapped []string
	)
	//
	for i := range m1 {
		if m2[i] > m1[i] {
			mask[i] = true
			count++
		}
	}
	//
	if count == 0 {
		return 0
	}
	//
	for _, pair := range PAIRED {
		left, right := tbl.Has(pair[0]), tbl.Has(pair[1])
		//
		if !left && !right {
			continue
		} else if !left {
			addZeros(tbl, pair[0])
		} else if !right {
			addZeros(tbl, pair[1])
		}
		//
		tbl.SwapRows(pair[0], pair[1], mask)
		swapped = append(swapped, pair[0], pair[1])
	}
	// Exchanging the bodies reflects the in-plane spin angle.
	if phi, ok := tbl.Column("phi_12"); ok {
		nphi := make([]float64, len(phi))
		//
		for i, v := range phi {
			if mask[i] {
				nphi[i] = math.Mod(2*math.Pi-v, 2*math.Pi)
			} else {
				nphi[i] = v
			}
		}
		//
		if err := tbl.Set("phi_12", nphi); err != nil {
			panic(err)
		}
		//
		swapped = append(swapped, "phi_12")
	}
	//
	report.Warn(diag.MASS_SWAP, swapped, "%s exceeds %s for %d samples, exchanging primary and secondary",
		second, first, count)
	//
	return count
}

// AddZeroSpin adds zero aligned spins to a table carrying no spin
// information at all.  Returns true if spins were added.
func AddZeroSpin(tbl *table.Table, report *diag.Report) bool {
	for _, name := range SPINS {
		if tbl.Has(name) {
			return false
		}
	}
	//
	addZeros(tbl, "spin_1z")
	addZeros(tbl, "spin_2z")
	//
	report.Info(diag.ZERO_SPIN_ADDED, []string{"spin_1z", "spin_2z"}, "no spin information found, assuming zero spin")
	//
	return true
}

func addZeros(tbl *table.Table, name string) {
	if err := tbl.Add(name, make([]float64, tbl.Height())); err != nil {
		panic(err)
	}
}

func median(data []float64) float64 {
	sorted := make([]float64, len(data))
	copy(sorted, data)
	slices.Sort(sorted)
	//
	n := len(sorted)
	//
	if n%2 == 1 {
		return sorted[n/2]
	}
	//
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
