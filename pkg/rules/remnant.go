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
	"github.com/consensys/go-gwconvert/pkg/diag"
	"github.com/consensys/go-gwconvert/pkg/physics"
)

var bbhRemnant = []string{"final_mass", "final_spin", "radiated_energy", "peak_luminosity"}

// Remnant properties are computed unless explicitly disabled.
func remnantEnabled(ctx *Context) bool {
	return !ctx.Settings.DisableRemnant
}

// Binary black hole fits apply unless this is a neutron star black hole system
// (though they can be forced).
func bbhFits(ctx *Context) bool {
	return remnantEnabled(ctx) && (!ctx.Class.IsNSBH() || ctx.Settings.ForceBBHRemnant)
}

func remnantFamily(ctx *Context) string {
	return ctx.Class.RemnantFamily(ctx.Settings.RemnantFits, ctx.Settings.ForceBBHRemnant)
}

func remnantRules() []*Rule {
	return []*Rule{
		{
			Name:     "nrsur_remnant",
			Targets:  append(bbhRemnant[:len(bbhRemnant):len(bbhRemnant)], "final_kick"),
			Requires: tilts,
			When: func(ctx *Context) bool {
				return bbhFits(ctx) && remnantFamily(ctx) == physics.NRSUR_FITS
			},
			Apply: func(ctx *Context, in [][]float64) ([][]float64, error) {
				q := physics.MassRatio(in[0], in[1])
				//
				for _, v := range q {
					if v < physics.NRSUR_MIN_MASS_RATIO {
						ctx.Report.Warn(diag.FIT_EXTRAPOLATION, []string{"mass_ratio"},
							"mass ratio below %.3f, NRSur7dq4Remnant fits are being extrapolated",
							physics.NRSUR_MIN_MASS_RATIO)
						//
						break
					}
				}
				//
				rem, err := physics.BBHRemnant(physics.NRSUR_FITS, "", in[0], in[1], in[2], in[3], in[4], in[5],
					ctx.Settings.NPool)
				if err != nil {
					return nil, err
				}
				//
				recordRemnant(ctx, append(bbhRemnant, "final_kick"), physics.NRSUR_FITS, false)
				//
				return [][]float64{rem.FinalMass, rem.FinalSpin, rem.RadiatedEnergy, rem.PeakLuminosity,
					rem.FinalKick}, nil
			},
		},
		bbhRemnantRule("bbh_remnant_evolved", []string{"mass_1", "mass_2", "a_1", "a_2", "tilt_1_evolved",
			"tilt_2_evolved"}, true),
		bbhRemnantRule("bbh_remnant", tilts, false),
		{
			Name:     "nsbh_remnant",
			Targets:  []string{"final_mass", "final_spin", "radiated_energy"},
			Requires: []string{"mass_1", "mass_2", "spin_1z", "lambda_2"},
			When: func(ctx *Context) bool {
				return remnantEnabled(ctx) && remnantFamily(ctx) == physics.NSBH_FITS
			},
			Apply: func(ctx *Context, in [][]float64) ([][]float64, error) {
				rem := physics.NSBHRemnant(in[0], in[1], in[2], in[3])
				recordRemnant(ctx, []string{"final_mass", "final_spin", "radiated_energy"}, physics.NSBH_FITS, false)
				//
				return [][]float64{rem.FinalMass, rem.FinalSpin, rem.RadiatedEnergy}, nil
			},
		},
		Binary("final_mass_source", "final_mass_source", "final_mass", "redshift", physics.SourceFrame),
	}
}

func bbhRemnantRule(name string, requires []string, evolved bool) *Rule {
	return &Rule{
		Name:     name,
		Targets:  bbhRemnant,
		Requires: requires,
		When: func(ctx *Context) bool {
			if !bbhFits(ctx) || remnantFamily(ctx) == physics.NRSUR_FITS {
				return false
			} else if evolved {
				return !ctx.Settings.ForceNonEvolved && ctx.Class.IsPrecessing()
			}
			//
			return true
		},
		Apply: func(ctx *Context, in [][]float64) ([][]float64, error) {
			family := remnantFamily(ctx)
			//
			rem, err := physics.BBHRemnant(family, ctx.Settings.Approximant, in[0], in[1], in[2], in[3], in[4],
				in[5], ctx.Settings.NPool)
			if err != nil {
				return nil, err
			}
			//
			recordRemnant(ctx, bbhRemnant, family, evolved)
			//
			return [][]float64{rem.FinalMass, rem.FinalSpin, rem.RadiatedEnergy, rem.PeakLuminosity}, nil
		},
	}
}

func recordRemnant(ctx *Context, params []string, family string, evolved bool) {
	spins := "non_evolved"
	if evolved {
		spins = "evolved"
	}
	//
	for _, p := range params {
		ctx.RecordProvenance(p, "fits", family)
		ctx.RecordProvenance(p, "spins", spins)
		//
		if family == physics.WAVEFORM_FITS {
			ctx.RecordProvenance(p, "approximant", ctx.Settings.Approximant)
		}
	}
}
