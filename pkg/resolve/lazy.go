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
package resolve

import (
	"slices"

	"github.com/consensys/go-gwconvert/pkg/classify"
	"github.com/consensys/go-gwconvert/pkg/diag"
	"github.com/consensys/go-gwconvert/pkg/table"
)

// Lazy resolves parameters on demand.  A requested parameter is derived using
// the first declared rule whose inputs are present (or can themselves be
// derived), and is then cached such that later requests are free.
type Lazy struct {
	*core
	// Parameters whose derivation is currently underway
	inProgress map[string]bool
	// Rules which failed, and are not tried again
	failed map[string]bool
}

// GetOption customises a single lookup.
type GetOption func(*getOptions)

type getOptions struct {
	regenerate bool
}

// Regenerate discards any cached value before resolving, such that the
// parameter is computed afresh.
func Regenerate() GetOption {
	return func(o *getOptions) {
		o.regenerate = true
	}
}

// NewLazy constructs a lazy resolver for a given table.  The given table is
// not modified.  Samples are checked (and brought into canonical form) once,
// here.
func NewLazy(tbl *table.Table, config Config, opts ...Option) (*Lazy, error) {
	c, err := newCore(tbl, config, opts)
	if err != nil {
		return nil, err
	}
	//
	l := &Lazy{core: c, inProgress: make(map[string]bool), failed: make(map[string]bool)}
	//
	l.regenerate(config.Regenerate...)
	//
	if err := CheckSamples(l.table, l.report, config.AddZeroSpin); err != nil {
		return nil, err
	}
	//
	l.bind(l.derive)
	l.markSupplied()
	//
	return l, nil
}

// Get returns the samples of a given parameter, deriving it if necessary.  The
// returned slice is shared with the resolver, and should not be modified.  A
// *LookupError is returned if the parameter is neither present nor derivable.
func (p *Lazy) Get(name string, opts ...GetOption) ([]float64, error) {
	var options getOptions
	//
	for _, opt := range opts {
		opt(&options)
	}
	//
	if options.regenerate && p.table.Has(name) {
		p.regenerate(name)
		// Classification may depend upon the dropped parameter
		if slices.Contains(classify.PRECESSION_PARAMS, name) || slices.Contains(classify.TIDAL_PARAMS, name) {
			p.ctx.Class.Reset()
		}
	}
	//
	if col, ok := p.table.Column(name); ok {
		return col, nil
	} else if p.derive(name) {
		col, _ := p.table.Column(name)
		return col, nil
	}
	//
	return nil, &LookupError{name}
}

// Has checks whether a given parameter is currently present (i.e. supplied or
// already derived).  This does not attempt to derive it.
func (p *Lazy) Has(name string) bool {
	return p.table.Has(name)
}

// Keys returns the names of all parameters currently present.
func (p *Lazy) Keys() []string {
	return p.table.Names()
}

// Table returns the underlying table, holding all parameters derived so far.
func (p *Lazy) Table() *table.Table {
	return p.table
}

// Metadata returns the metadata accompanying the table.
func (p *Lazy) Metadata() table.Metadata {
	return p.metadata
}

// Diagnostics returns every diagnostic reported so far.
func (p *Lazy) Diagnostics() []diag.Record {
	return p.report.Records()
}

// Stats returns a summary of the work carried out so far.
func (p *Lazy) Stats() Stats {
	return p.stats
}

// derive attempts to produce a given parameter by trying each candidate rule
// in declared order, recursively deriving any missing inputs.  A parameter
// whose derivation is already underway is treated as unavailable, which
// breaks cycles such as mass_ratio <- (mass_1, mass_2) <- mass_ratio.
func (p *Lazy) derive(name string) bool {
	if p.table.Has(name) {
		return true
	} else if p.inProgress[name] || !p.allowed(name) {
		return false
	}
	//
	p.inProgress[name] = true
	defer delete(p.inProgress, name)
	//
	for i, rule := range p.registry.RulesFor(name) {
		if p.failed[rule.Name] || !rule.Admits(p.ctx) || !p.inputs(rule.Requires) {
			continue
		}
		//
		if i > 0 {
			p.report.Debug(diag.RULE_CHOICE, []string{name}, "using %s for %s", rule.Name, name)
		}
		//
		if !p.apply(rule) {
			p.failed[rule.Name] = true
			continue
		} else if p.canonicalised {
			// Anything derived before the bodies were exchanged is stale
			p.discardDerived(rule.Targets...)
		}
		//
		if p.table.Has(name) {
			return true
		}
	}
	//
	return false
}

// inputs ensures all of the given parameters are present, deriving them as
// necessary.  Deriving one input can exchange the bodies, discarding another
// derived earlier, hence a second attempt.
func (p *Lazy) inputs(names []string) bool {
	for range 2 {
		for _, n := range names {
			if !p.derive(n) {
				return false
			}
		}
		//
		if p.table.HasAll(names...) {
			return true
		}
	}
	//
	return false
}
