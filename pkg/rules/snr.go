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
	"strings"

	"github.com/consensys/go-gwconvert/pkg/physics"
)

// DETECTORS for which per-detector SNRs are recognised.
var DETECTORS = []string{"H1", "L1", "V1"}

func snrRules() []*Rule {
	var rules []*Rule
	//
	for _, ifo := range DETECTORS {
		rules = append(rules, optimalSNR(ifo))
	}
	//
	rules = append(rules, networkSNR("optimal_snr")...)
	rules = append(rules, networkSNR("matched_filter_snr")...)
	//
	return rules
}

// optimalSNR constructs a rule computing the optimal SNR in a given detector,
// which applies only when a PSD is available for it.
func optimalSNR(ifo string) *Rule {
	target := ifo + "_optimal_snr"
	//
	return &Rule{
		Name:     target,
		Targets:  []string{target},
		Requires: []string{"chirp_mass", "luminosity_distance"},
		When: func(ctx *Context) bool {
			_, ok := ctx.Settings.PSDFor(ifo)
			return ok
		},
		Apply: func(ctx *Context, in [][]float64) ([][]float64, error) {
			var (
				s      = &ctx.Settings
				psd, _ = s.PSDFor(ifo)
				source = ifo
			)
			//
			if _, ok := s.PSD[ifo]; !ok {
				source = "default"
			}
			//
			ctx.RecordProvenance(target, "psd", source)
			//
			return [][]float64{physics.OptimalSNR(psd, in[0], in[1], s.FLow, s.FFinal, s.DeltaF, s.NPool)}, nil
		},
	}
}

// networkSNR constructs rules combining per-detector SNRs into a network SNR,
// preferring the largest network available.
func networkSNR(suffix string) []*Rule {
	var (
		rules    []*Rule
		target   = "network_" + suffix
		networks = [][]string{{"H1", "L1", "V1"}, {"H1", "L1"}, {"H1", "V1"}, {"L1", "V1"}}
	)
	//
	for _, network := range networks {
		var requires []string
		//
		for _, ifo := range network {
			requires = append(requires, ifo+"_"+suffix)
		}
		//
		rules = append(rules, &Rule{
			Name:     target + "_" + strings.Join(network, ""),
			Targets:  []string{target},
			Requires: requires,
			Apply: func(_ *Context, in [][]float64) ([][]float64, error) {
				return [][]float64{physics.NetworkSNR(in...)}, nil
			},
		})
	}
	//
	return rules
}
