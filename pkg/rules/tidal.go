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

func tidalRules() []*Rule {
	return []*Rule{
		{
			Name:     "tidal_from_components",
			Targets:  []string{"lambda_tilde", "delta_lambda"},
			Requires: []string{"lambda_1", "lambda_2", "mass_1", "mass_2"},
			Apply: func(_ *Context, in [][]float64) ([][]float64, error) {
				return [][]float64{
					physics.LambdaTilde(in[0], in[1], in[2], in[3]),
					physics.DeltaLambda(in[0], in[1], in[2], in[3]),
				}, nil
			},
		},
		{
			// For a neutron star black hole binary, the primary has no tidal
			// deformability.
			Name:     "tidal_from_secondary",
			Targets:  []string{"lambda_tilde", "delta_lambda"},
			Requires: []string{"lambda_2", "mass_1", "mass_2"},
			When:     NSBH,
			Apply: func(ctx *Context, in [][]float64) ([][]float64, error) {
				zero := make([]float64, len(in[0]))
				//
				ctx.RecordProvenance("lambda_tilde", "lambda_1", "zero")
				ctx.RecordProvenance("delta_lambda", "lambda_1", "zero")
				//
				return [][]float64{
					physics.LambdaTilde(zero, in[0], in[1], in[2]),
					physics.DeltaLambda(zero, in[0], in[1], in[2]),
				}, nil
			},
		},
		{
			Name:     "component_lambdas",
			Targets:  []string{"lambda_1", "lambda_2"},
			Requires: []string{"lambda_tilde", "delta_lambda", "mass_1", "mass_2"},
			Apply: func(_ *Context, in [][]float64) ([][]float64, error) {
				l1, l2 := physics.ComponentLambdas(in[0], in[1], in[2], in[3])
				return [][]float64{l1, l2}, nil
			},
		},
		Unary("compactness_2", "compactness_2", "lambda_2", physics.Compactness).Guarded(NSBH),
		Binary("baryonic_mass_2", "baryonic_mass_2", "mass_2", "compactness_2", physics.BaryonicMass),
		{
			Name:     "baryonic_torus_mass",
			Targets:  []string{"baryonic_torus_mass"},
			Requires: []string{"mass_1", "mass_2", "spin_1z", "compactness_2", "baryonic_mass_2"},
			When:     NSBH,
			Apply: func(_ *Context, in [][]float64) ([][]float64, error) {
				return [][]float64{physics.TorusMass(in[0], in[1], in[2], in[3], in[4])}, nil
			},
		},
	}
}
