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
	"github.com/consensys/go-gwconvert/pkg/classify"
	"github.com/consensys/go-gwconvert/pkg/diag"
	"github.com/consensys/go-gwconvert/pkg/physics"
	"github.com/consensys/go-gwconvert/pkg/table"
)

// REDSHIFT_APPROX selects redshift computation by interpolation.
const REDSHIFT_APPROX = "approx"

// REDSHIFT_EXACT selects redshift computation by numerical inversion.
const REDSHIFT_EXACT = "exact"

// Settings holds the (normalised) configuration values which rules may
// consult.  This is a fixed set of named fields, rather than an open ended
// map.
type Settings struct {
	// Frequency bounds (Hz)
	FLow, FRef, FFinal, DeltaF float64
	// Waveform approximant (for waveform specific remnant fits)
	Approximant string
	// Terminal velocity for forwards spin evolution, or "" when disabled
	EvolveForwards string
	// Method for backwards spin evolution, or "" when disabled
	EvolveBackwards string
	// Requested family of remnant fits ("" for the default)
	RemnantFits string
	// Method used for computing redshifts
	RedshiftMethod string
	// Cosmology used for computing redshifts
	Cosmology physics.Cosmology
	// Use non-evolved spins for remnant properties
	ForceNonEvolved bool
	// Use binary black hole fits, even for neutron star black hole systems
	ForceBBHRemnant bool
	// Evolve spins, even for neutron star black hole systems
	ForceBHSpinEvolution bool
	// Disable all remnant properties
	DisableRemnant bool
	// Power spectral density for each detector
	PSD map[string]physics.PSD
	// Power spectral density used for detectors without their own
	PSDDefault *physics.PSD
	// Number of go-routines made available to expensive computations
	NPool uint
}

// PSDFor returns the power spectral density to use for a given detector, if
// there is one.
func (s *Settings) PSDFor(ifo string) (physics.PSD, bool) {
	if psd, ok := s.PSD[ifo]; ok {
		return psd, true
	} else if s.PSDDefault != nil {
		return *s.PSDDefault, true
	}
	//
	return physics.PSD{}, false
}

// Context is passed to every rule, and provides access to the table being
// resolved along with everything a rule may need to know about it.
type Context struct {
	// Table being resolved
	Table *table.Table
	// Metadata travelling with the table, where provenance is recorded
	Metadata *table.Metadata
	// Configuration values
	Settings Settings
	// Classification of the system described by the table
	Class *classify.Classifier
	// Diagnostics sink
	Report *diag.Report
	// Used to request derivation of upstream parameters
	deriver func(string) bool
	// Provenance recorded for parameters not yet written
	pending map[string][][2]string
}

// NewContext constructs a new context.  The deriver is used to request that a
// missing parameter be derived (if possible), and returns whether or not it is
// present afterwards.
func NewContext(tbl *table.Table, md *table.Metadata, settings Settings, report *diag.Report,
	deriver func(string) bool) *Context {
	ctx := &Context{tbl, md, settings, nil, report, deriver, make(map[string][][2]string)}
	ctx.Class = classify.NewClassifier(tbl, report, classify.DeriverFunc(ctx.Resolve))
	//
	return ctx
}

// Resolve requests that a given parameter be made available, returning true
// if it is present afterwards.
func (c *Context) Resolve(name string) bool {
	if c.Table.Has(name) {
		return true
	} else if c.deriver == nil {
		return false
	}
	//
	return c.deriver(name)
}

// RecordProvenance notes how a given parameter is being derived.  This only
// reaches the metadata once the parameter is committed, since a rule's outputs
// may yet be rejected.
func (c *Context) RecordProvenance(param string, key string, val string) {
	c.pending[param] = append(c.pending[param], [2]string{key, val})
}

// Commit transfers the provenance recorded for each of the given (written)
// parameters into the metadata.
func (c *Context) Commit(params ...string) {
	for _, p := range params {
		for _, kv := range c.pending[p] {
			c.Metadata.RecordProvenance(p, kv[0], kv[1])
		}
		//
		delete(c.pending, p)
	}
}

// Discard drops any provenance recorded for the given parameters.
func (c *Context) Discard(params ...string) {
	for _, p := range params {
		delete(c.pending, p)
	}
}

// Precessing is a guard which holds for precessing systems.
func Precessing(ctx *Context) bool {
	return ctx.Class.IsPrecessing()
}

// NotPrecessing is a guard which holds for non-precessing systems.
func NotPrecessing(ctx *Context) bool {
	return !ctx.Class.IsPrecessing()
}

// NSBH is a guard which holds for neutron star black hole systems.
func NSBH(ctx *Context) bool {
	return ctx.Class.IsNSBH()
}
