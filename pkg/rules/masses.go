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

// Rules relating the various mass parameters.  The order matters: where more
// than one rule for the same target applies, the first declared is used.  In
// particular, the mass ratio is taken from the component masses in preference
// to the symmetric mass ratio, since the latter cannot distinguish q from 1/q.
func massRules() []*Rule {
	return []*Rule{
		Binary("mass_ratio_from_masses", "mass_ratio", "mass_1", "mass_2", physics.MassRatio),
		Unary("mass_ratio_from_symmetric_mass_ratio", "mass_ratio", "symmetric_mass_ratio", physics.MassRatioFromEta),
		Unary("mass_ratio_from_inverted_mass_ratio", "mass_ratio", "inverted_mass_ratio", physics.InvertMassRatio),
		Unary("inverted_mass_ratio", "inverted_mass_ratio", "mass_ratio", physics.InvertMassRatio),
		Binary("symmetric_mass_ratio_from_masses", "symmetric_mass_ratio", "mass_1", "mass_2",
			physics.SymmetricMassRatio),
		Unary("symmetric_mass_ratio_from_mass_ratio", "symmetric_mass_ratio", "mass_ratio",
			physics.SymmetricMassRatioFromQ),
		Binary("total_mass_from_masses", "total_mass", "mass_1", "mass_2", physics.TotalMass),
		Binary("total_mass_from_chirp_mass", "total_mass", "chirp_mass", "symmetric_mass_ratio",
			physics.TotalMassFromChirpMass),
		Binary("chirp_mass_from_masses", "chirp_mass", "mass_1", "mass_2", physics.ChirpMass),
		Binary("chirp_mass_from_total_mass", "chirp_mass", "total_mass", "mass_ratio", physics.ChirpMassFromTotalMass),
		Pair("component_masses_from_chirp_mass", [2]string{"mass_1", "mass_2"}, "chirp_mass", "mass_ratio",
			physics.ComponentMassesFromChirpMass),
		Pair("component_masses_from_total_mass", [2]string{"mass_1", "mass_2"}, "total_mass", "mass_ratio",
			physics.ComponentMassesFromTotalMass),
		Binary("mass_1_from_mass_2", "mass_1", "mass_2", "mass_ratio", physics.Mass1FromMass2),
		Binary("mass_2_from_mass_1", "mass_2", "mass_1", "mass_ratio", physics.Mass2FromMass1),
		Binary("mass_1_from_source_frame", "mass_1", "mass_1_source", "redshift", physics.DetectorFrame),
		Binary("mass_2_from_source_frame", "mass_2", "mass_2_source", "redshift", physics.DetectorFrame),
	}
}
