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
package classify

import (
	"math"

	"github.com/consensys/go-gwconvert/pkg/diag"
	"github.com/consensys/go-gwconvert/pkg/physics"
	"github.com/consensys/go-gwconvert/pkg/table"
)

// PRECESSION_PARAMS are those parameters which are only non-trivial for
// precessing systems.
var PRECESSION_PARAMS = []string{"tilt_1", "tilt_2", "phi_12", "phi_jl", "spin_1x", "spin_1y", "spin_2x", "spin_2y"}

// TIDAL_PARAMS are the tidal deformability parameters.
var TIDAL_PARAMS = []string{"lambda_1", "lambda_2", "lambda_tilde", "delta_lambda"}

// Deriver is used by the classifier to attempt to produce a missing column
// before inspecting it.  It returns true if the column is present afterwards.
type Deriver interface {
	Derive(name string) bool
}

// DeriverFunc adapts a function into a Deriver.
type DeriverFunc func(string) bool

// Derive calls the underlying function.
func (f DeriverFunc) Derive(name string) bool {
	return f(name)
}

// Classifier determines the physical regime of the system described by a
// table: whether it is precessing, whether it is a neutron star black hole
// binary, and whether it carries tidal information.  Each answer is computed
// once and then cached.  Classification never fails, though it may report
// diagnostics explaining a decision.
type Classifier struct {
	tbl     *table.Table
	report  *diag.Report
	deriver Deriver
	// Cached answers
	precessing, nsbh, tidal cached
	// Set whilst precession parameters are being derived
	inspecting bool
}

type cached struct {
	known bool
	value bool
}

// NewClassifier constructs a classifier for a given table.  The deriver is
// optional, and used to attempt producing precession parameters which are not
// present in the table.
func NewClassifier(tbl *table.Table, report *diag.Report, deriver Deriver) *Classifier {
	return &Classifier{tbl: tbl, report: report, deriver: deriver}
}

// Reset forgets all cached answers, for example after the table has changed.
func (p *Classifier) Reset() {
	p.precessing, p.nsbh, p.tidal = cached{}, cached{}, cached{}
}

// IsPrecessing determines whether the system is precessing.  This is true
// unless no precession parameters are present (or derivable), or all of those
// present are exactly zero (with tilts which are exactly zero or pi).
func (p *Classifier) IsPrecessing() bool {
	if p.inspecting {
		// A rule consulted during derivation of the precession parameters
		// sees the system as non-precessing.
		return false
	} else if !p.precessing.known {
		p.inspecting = true
		value := p.isPrecessing()
		p.inspecting = false
		p.precessing = cached{true, value}
	}
	//
	return p.precessing.value
}

func (p *Classifier) isPrecessing() bool {
	var present uint
	//
	for _, name := range PRECESSION_PARAMS {
		if !p.tbl.Has(name) && p.deriver != nil {
			p.deriver.Derive(name)
		}
		//
		col, ok := p.tbl.Column(name)
		if !ok {
			continue
		}
		//
		present++
		//
		if name == "tilt_1" || name == "tilt_2" {
			if !allAligned(col) {
				return true
			}
		} else if !allZero(col) {
			return true
		}
	}
	//
	if present == 0 {
		p.debug("no precession parameters found, treating as non-precessing")
	} else {
		p.debug("all precession parameters are zero, treating as non-precessing")
	}
	//
	return false
}

// IsNSBH determines whether the system is a neutron star black hole binary.
// This is the case when lambda_2 is present and non-zero, whilst lambda_1 is
// either absent or zero.
func (p *Classifier) IsNSBH() bool {
	if !p.nsbh.known {
		p.nsbh = cached{true, p.isNSBH()}
	}
	//
	return p.nsbh.value
}

func (p *Classifier) isNSBH() bool {
	lambda2, ok := p.tbl.Column("lambda_2")
	//
	if !ok {
		return false
	} else if allZero(lambda2) {
		if p.report != nil {
			p.report.Warn(diag.NSBH_RECLASSIFIED, []string{"lambda_2"},
				"found lambda_2 but it is always zero, treating as a binary black hole")
		}
		//
		return false
	}
	//
	lambda1, ok := p.tbl.Column("lambda_1")
	//
	return !ok || allZero(lambda1)
}

// HasTidal determines whether any tidal deformability parameter is present and
// not uniformly zero.
func (p *Classifier) HasTidal() bool {
	if !p.tidal.known {
		p.tidal = cached{true, p.hasTidal()}
	}
	//
	return p.tidal.value
}

func (p *Classifier) hasTidal() bool {
	for _, name := range TIDAL_PARAMS {
		if col, ok := p.tbl.Column(name); ok && !allZero(col) {
			return true
		}
	}
	//
	return false
}

// RemnantFamily determines which family of remnant fits applies.  Neutron
// star black hole systems use dedicated fits, unless binary black hole fits
// are forced.  Otherwise, the requested family is used (defaulting to the
// average of several binary black hole fits).
func (p *Classifier) RemnantFamily(requested string, forceBBH bool) string {
	if p.IsNSBH() && !forceBBH {
		return physics.NSBH_FITS
	} else if requested == "" {
		return physics.AVERAGE_FITS
	}
	//
	return requested
}

func (p *Classifier) debug(msg string) {
	if p.report != nil {
		p.report.Debug(diag.CLASSIFICATION, PRECESSION_PARAMS, "%s", msg)
	}
}

func allZero(col []float64) bool {
	for _, v := range col {
		if v != 0 {
			return false
		}
	}
	//
	return true
}

func allAligned(col []float64) bool {
	for _, v := range col {
		if v != 0 && v != math.Pi {
			return false
		}
	}
	//
	return true
}
