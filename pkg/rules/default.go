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

import "sync"

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the registry of all built-in rules.  This is constructed
// once, and is immutable thereafter.  The declaration order (masses, then
// cosmology, spins, tidal, spin evolution, remnant and finally SNR) is the
// order in which an eager resolver visits targets.
func Default() *Registry {
	defaultOnce.Do(func() {
		var all []*Rule
		//
		all = append(all, massRules()...)
		all = append(all, cosmologyRules()...)
		all = append(all, spinRules()...)
		all = append(all, tidalRules()...)
		all = append(all, evolutionRules()...)
		all = append(all, remnantRules()...)
		all = append(all, snrRules()...)
		//
		registry, err := NewRegistry(all...)
		if err != nil {
			panic(err)
		}
		//
		defaultRegistry = registry
	})
	//
	return defaultRegistry
}
