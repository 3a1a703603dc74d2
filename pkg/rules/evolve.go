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
package rules

import (
	"strconv"

	"github.com/consensys/go-gwconvert/pkg/physics"
)

// Spins are only evolved for binary black holes, unless this is forced.
func evolvable(ctx *Context) bool {
	return !ctx.Class.IsNSBH() || ctx.Settings.ForceBHSpinEvolution
}

func evolutionRules() []*Rule {
	return []*Rule{
		{
			Name:     "spins_at_infinity",
			Targets:  []string{"tilt_1_infinity", "tilt_2_infinity"},
			Requires: tilts,
			When: func(ctx *Context) bool {
				return ctx.Settings.EvolveBackwards != "" && evolvable(ctx)
			},
			Apply: func(ctx *Context, in [][]float64) ([][]float64, error) {
				method := ctx.Settings.EvolveBackwards
				// Without precession, the tilts are constant.
				if !ctx.Class.IsPrecessing() {
					recordEvolution(ctx, []string{"tilt_1_infinity", "tilt_2_infinity"}, "non-precessing")
					return [][]float64{physics.Identity(in[4]), physics.Identity(in[5])}, nil
				}
				//
				t1, t2, err := physics.EvolveSpinsBackwards(method, in[0], in[1], in[2], in[3], in[4], in[5],
					ctx.Settings.FRef, ctx.Settings.NPool)
				if err != nil {
					return nil, err
				}
				//
				recordEvolution(ctx, []string{"tilt_1_infinity", "tilt_2_infinity"}, method)
				//
				return [][]float64{t1, t2}, nil
			},
		},
		{
			Name:     "chi_p_infinity",
			Targets:  []string{"chi_p_infinity"},
			Requires: []string{"mass_1", "mass_2", "a_1", "a_2", "tilt_1_infinity", "tilt_2_infinity"},
			Apply: func(_ *Context, in [][]float64) ([][]float64, error) {
				return [][]float64{physics.ChiP(in[0], in[1], in[2], in[3], in[4], in[5])}, nil
			},
		},
		{
			Name:     "evolved_spins",
			Targets:  []string{"tilt_1_evolved", "tilt_2_evolved", "phi_12_evolved"},
			Requires: append(tilts[:len(tilts):len(tilts)], "phi_12"),
			When: func(ctx *Context) bool {
				return ctx.Settings.EvolveForwards != "" && evolvable(ctx)
			},
			Apply: func(ctx *Context, in [][]float64) ([][]float64, error) {
				targets := []string{"tilt_1_evolved", "tilt_2_evolved", "phi_12_evolved"}
				//
				if !ctx.Class.IsPrecessing() {
					recordEvolution(ctx, targets, "non-precessing")
					//
					return [][]float64{physics.Identity(in[4]), physics.Identity(in[5]), physics.Identity(in[6])}, nil
				}
				//
				vFinal, err := physics.FinalVelocity(ctx.Settings.EvolveForwards)
				if err != nil {
					return nil, err
				}
				//
				t1, t2, phi, err := physics.EvolveSpinsForwards(in[0], in[1], in[2], in[3], in[4], in[5], in[6],
					ctx.Settings.FRef, vFinal, ctx.Settings.NPool)
				if err != nil {
					return nil, err
				}
				//
				recordEvolution(ctx, targets, ctx.Settings.EvolveForwards)
				//
				return [][]float64{t1, t2, phi}, nil
			},
		},
	}
}

func recordEvolution(ctx *Context, params []string, method string) {
	fref := strconv.FormatFloat(ctx.Settings.FRef, 'g', -1, 64)
	//
	for _, p := range params {
		ctx.RecordProvenance(p, "method", method)
		ctx.RecordProvenance(p, "f_ref", fref)
	}
}
