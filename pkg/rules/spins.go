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
	"github.com/consensys/go-gwconvert/pkg/physics"
)

var spinComponents = []string{"spin_1x", "spin_1y", "spin_1z", "spin_2x", "spin_2y", "spin_2z"}

var spinAngles = []string{"a_1", "a_2", "tilt_1", "tilt_2", "phi_12"}

var tilts = []string{"mass_1", "mass_2", "a_1", "a_2", "tilt_1", "tilt_2"}

func spinRules() []*Rule {
	return []*Rule{
		{
			Name:     "spin_angles_from_components",
			Targets:  spinAngles,
			Requires: spinComponents,
			Apply: func(_ *Context, in [][]float64) ([][]float64, error) {
				return physics.SpinAngles(in[0], in[1], in[2], in[3], in[4], in[5]), nil
			},
		},
		alignedSpin("aligned_spin_1", "a_1", "tilt_1", "spin_1z", "spin_1x", "spin_1y"),
		alignedSpin("aligned_spin_2", "a_2", "tilt_2", "spin_2z", "spin_2x", "spin_2y"),
		{
			Name:     "spin_components",
			Targets:  spinComponents,
			Requires: spinAngles,
			Apply: func(_ *Context, in [][]float64) ([][]float64, error) {
				return physics.ComponentSpins(in[0], in[1], in[2], in[3], in[4]), nil
			},
		},
		Binary("spin_1z", "spin_1z", "a_1", "tilt_1", physics.AlignedComponent),
		Binary("spin_2z", "spin_2z", "a_2", "tilt_2", physics.AlignedComponent),
		Unary("cos_tilt_1", "cos_tilt_1", "tilt_1", physics.Cos),
		Unary("cos_tilt_2", "cos_tilt_2", "tilt_2", physics.Cos),
		Unary("tilt_1_from_cos_tilt_1", "tilt_1", "cos_tilt_1", physics.Arccos),
		Unary("tilt_2_from_cos_tilt_2", "tilt_2", "cos_tilt_2", physics.Arccos),
		{
			Name:     "chi_eff",
			Targets:  []string{"chi_eff"},
			Requires: tilts,
			Apply: func(_ *Context, in [][]float64) ([][]float64, error) {
				return [][]float64{physics.ChiEff(in[0], in[1], in[2], in[3], in[4], in[5])}, nil
			},
		},
		{
			Name:     "chi_eff_from_aligned_spins",
			Targets:  []string{"chi_eff"},
			Requires: []string{"mass_1", "mass_2", "spin_1z", "spin_2z"},
			Apply: func(_ *Context, in [][]float64) ([][]float64, error) {
				return [][]float64{physics.ChiEffFromAligned(in[0], in[1], in[2], in[3])}, nil
			},
		},
		{
			Name:     "chi_p",
			Targets:  []string{"chi_p"},
			Requires: tilts,
			Apply: func(_ *Context, in [][]float64) ([][]float64, error) {
				return [][]float64{physics.ChiP(in[0], in[1], in[2], in[3], in[4], in[5])}, nil
			},
		},
		// The inclination and the angle between the total angular momentum and
		// the line of sight coincide only in the absence of precession.
		Unary("iota_from_theta_jn", "iota", "theta_jn", physics.Identity).Guarded(NotPrecessing),
		Unary("theta_jn_from_iota", "theta_jn", "iota", physics.Identity).Guarded(NotPrecessing),
		Unary("cos_theta_jn", "cos_theta_jn", "theta_jn", physics.Cos),
		Unary("cos_iota", "cos_iota", "iota", physics.Cos),
	}
}

// alignedSpin constructs a rule for the magnitude and tilt of a spin which is
// only known along the orbital angular momentum.  This applies only when no
// in-plane components are present.
func alignedSpin(name, a, tilt, spinz, spinx, spiny string) *Rule {
	return &Rule{
		Name:     name,
		Targets:  []string{a, tilt},
		Requires: []string{spinz},
		When: func(ctx *Context) bool {
			return !ctx.Table.Has(spinx) && !ctx.Table.Has(spiny)
		},
		Apply: func(_ *Context, in [][]float64) ([][]float64, error) {
			mag, angle := physics.AlignedSpinAngles(in[0])
			return [][]float64{mag, angle}, nil
		},
	}
}
