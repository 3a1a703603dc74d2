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

func cosmologyRules() []*Rule {
	return []*Rule{
		{
			Name:     "redshift_from_luminosity_distance",
			Targets:  []string{"redshift"},
			Requires: []string{"luminosity_distance"},
			Apply: func(ctx *Context, in [][]float64) ([][]float64, error) {
				var (
					z      []float64
					cosmo  = ctx.Settings.Cosmology
					method = ctx.Settings.RedshiftMethod
				)
				//
				if method == REDSHIFT_EXACT {
					z = physics.RedshiftExact(cosmo, in[0], ctx.Settings.NPool)
				} else {
					method = REDSHIFT_APPROX
					z = physics.RedshiftApprox(cosmo, in[0])
				}
				//
				ctx.RecordProvenance("redshift", "cosmology", cosmo.Name)
				ctx.RecordProvenance("redshift", "method", method)
				//
				return [][]float64{z}, nil
			},
		},
		{
			Name:     "luminosity_distance_from_redshift",
			Targets:  []string{"luminosity_distance"},
			Requires: []string{"redshift"},
			Apply: func(ctx *Context, in [][]float64) ([][]float64, error) {
				cosmo := ctx.Settings.Cosmology
				ctx.RecordProvenance("luminosity_distance", "cosmology", cosmo.Name)
				//
				return [][]float64{physics.LuminosityDistances(cosmo, in[0])}, nil
			},
		},
		Binary("comoving_distance", "comoving_distance", "luminosity_distance", "redshift",
			physics.ComovingFromLuminosity),
		Binary("mass_1_source", "mass_1_source", "mass_1", "redshift", physics.SourceFrame),
		Binary("mass_2_source", "mass_2_source", "mass_2", "redshift", physics.SourceFrame),
		Binary("total_mass_source", "total_mass_source", "total_mass", "redshift", physics.SourceFrame),
		Binary("chirp_mass_source", "chirp_mass_source", "chirp_mass", "redshift", physics.SourceFrame),
	}
}
