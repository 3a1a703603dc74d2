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
	"errors"
	"fmt"
	"io/fs"
	"slices"

	"github.com/consensys/go-gwconvert/pkg/checkpoint"
	"github.com/consensys/go-gwconvert/pkg/diag"
	"github.com/consensys/go-gwconvert/pkg/rules"
	"github.com/consensys/go-gwconvert/pkg/table"
	"github.com/consensys/go-gwconvert/pkg/util"
)

// Eager resolves every derivable parameter at construction time.  Rules are
// visited in their declared order, repeatedly, until no further parameters
// can be derived.  Each rule is attempted at most once per pass, which
// guarantees termination even though parameters can be derived from each
// other in either direction.  A second pass follows only when the bodies were
// exchanged (or the mass ratio inverted) after derivation began.
type Eager struct {
	*core
	// Rules attempted so far
	attempted map[string]bool
	// Set when restored from a checkpoint
	resumed bool
	// Identifies the checkpoint written or restored (if any)
	state *checkpoint.State
}

// NewEager constructs an eager resolver for a given table, and resolves
// everything which can be derived from it.  The given table is not modified.
// Errors arise only from invalid configuration, or when no samples remain
// after unphysical samples are removed.  Failing to derive any particular
// parameter is never an error.
func NewEager(tbl *table.Table, config Config, opts ...Option) (*Eager, error) {
	c, err := newCore(tbl, config, opts)
	if err != nil {
		return nil, err
	}
	//
	e := &Eager{core: c, attempted: make(map[string]bool)}
	// Attempt to resume from an earlier run
	if config.RestartFromCheckpoint && config.ResumeFile != "" && e.resume() {
		return e, nil
	}
	//
	stats := util.NewPerfStats()
	//
	if err := e.resolve(); err != nil {
		return nil, err
	}
	//
	stats.Log("Resolution")
	//
	if config.ResumeFile != "" {
		if err := e.save(); err != nil {
			return nil, err
		}
	}
	//
	return e, nil
}

// Table returns the resolved table.  This should not be modified.
func (p *Eager) Table() *table.Table {
	return p.table
}

// Metadata returns the metadata accompanying the resolved table.
func (p *Eager) Metadata() table.Metadata {
	return p.metadata
}

// Diagnostics returns every diagnostic reported during resolution.
func (p *Eager) Diagnostics() []diag.Record {
	return p.report.Records()
}

// Stats returns a summary of the work carried out during resolution.  For a
// resolver restored from a checkpoint, this covers the original resolution.
func (p *Eager) Stats() Stats {
	return p.stats
}

// Resumed indicates whether this resolver was restored from a checkpoint.
func (p *Eager) Resumed() bool {
	return p.resumed
}

// Attempted returns the names of all rules attempted, in sorted order.
func (p *Eager) Attempted() []string {
	names := make([]string, 0, len(p.attempted))
	//
	for name := range p.attempted {
		names = append(names, name)
	}
	//
	slices.Sort(names)
	//
	return names
}

// ToMap returns the resolved table as a mapping of names to samples.
func (p *Eager) ToMap() map[string][]float64 {
	return p.table.ToMap()
}

// ToMatrix returns the resolved table as names, and one row per sample.
func (p *Eager) ToMatrix() ([]string, [][]float64) {
	return p.table.ToMatrix()
}

func (p *Eager) resolve() error {
	p.regenerate(p.config.Regenerate...)
	//
	if err := CheckSamples(p.table, p.report, p.config.AddZeroSpin); err != nil {
		return err
	}
	//
	p.bind(p.deriveOne)
	p.markSupplied()
	//
	for pass := 0; ; pass++ {
		p.fixedPoint()
		// Derived quantities are subject to the same bounds as inputs.
		if FilterUnphysical(p.table, p.report) > 0 {
			p.ctx.Class.Reset()
		}
		//
		if p.table.Height() == 0 {
			return ErrNoSamples
		}
		//
		changed := CanonicaliseMassOrdering(p.table, p.report) + CanonicaliseMassRatio(p.table, p.report)
		// Anything derived before the bodies were exchanged is derived once more
		if pass > 0 || (changed == 0 && !p.canonicalised) {
			return nil
		}
		//
		p.discardDerived()
		clear(p.attempted)
	}
}

// fixedPoint visits every target in declared order, repeatedly, until nothing
// further can be derived.
func (p *Eager) fixedPoint() {
	for changed := true; changed; {
		changed = false
		//
		for _, target := range p.registry.Targets() {
			if !p.table.Has(target) && p.allowed(target) && p.deriveOne(target) {
				changed = true
			}
		}
	}
}

// deriveOne attempts to derive a given parameter using the first applicable
// rule not yet attempted, falling back on later candidates should it fail.
// This does not recursively derive missing inputs.  Returns true if the
// parameter is present afterwards.
func (p *Eager) deriveOne(target string) bool {
	if p.table.Has(target) {
		return true
	} else if !p.allowed(target) {
		return false
	}
	//
	skip := func(r *rules.Rule) bool { return p.attempted[r.Name] }
	//
	for {
		rule, alternatives := p.registry.Select(p.ctx, target, skip)
		//
		if rule == nil {
			return false
		}
		//
		if len(alternatives) > 0 {
			p.report.Debug(diag.RULE_CHOICE, []string{target}, "using %s for %s (also applicable: %s)",
				rule.Name, target, ruleNames(alternatives))
		}
		//
		p.attempted[rule.Name] = true
		//
		if p.apply(rule) && p.table.Has(target) {
			return true
		}
	}
}

// resume attempts to restore state from the checkpoint file.  Returns false
// if there is no checkpoint, or it cannot be used.
func (p *Eager) resume() bool {
	filename := p.config.ResumeFile
	//
	state, err := checkpoint.Read(filename)
	//
	if errors.Is(err, fs.ErrNotExist) {
		return false
	} else if err != nil {
		p.report.Warn(diag.CHECKPOINT, nil, "ignoring unreadable checkpoint %s: %v", filename, err)
		return false
	} else if state.Fingerprint != p.config.Fingerprint() {
		p.report.Warn(diag.CHECKPOINT, nil, "ignoring checkpoint %s written with a different configuration", filename)
		return false
	}
	//
	md, err := state.TableMetadata()
	if err != nil {
		p.report.Warn(diag.CHECKPOINT, nil, "ignoring checkpoint %s with malformed metadata: %v", filename, err)
		return false
	}
	//
	p.table = state.Table
	p.metadata = md
	p.stats = Stats{state.Applied, state.Failed, state.Derived}
	p.resumed = true
	p.state = &state
	//
	for _, name := range state.Attempted {
		p.attempted[name] = true
	}
	// Diagnostics from the original run are kept, but not emitted again.
	p.report.Restore(state.Diagnostics)
	//
	p.bind(func(string) bool { return false })
	p.report.Info(diag.CHECKPOINT, nil, "resumed run %s from %s", state.RunID, filename)
	//
	return true
}

func (p *Eager) save() error {
	state, err := checkpoint.NewState(p.config.Fingerprint(), p.table, p.metadata)
	if err != nil {
		return err
	}
	//
	state.Attempted = p.Attempted()
	state.Applied = p.stats.RulesApplied
	state.Failed = p.stats.RulesFailed
	state.Derived = p.stats.ColumnsDerived
	state.Diagnostics = p.report.Records()
	//
	if err := checkpoint.Write(p.config.ResumeFile, state); err != nil {
		return fmt.Errorf("writing checkpoint %s: %w", p.config.ResumeFile, err)
	}
	//
	p.state = &state
	p.report.Debug(diag.CHECKPOINT, nil, "checkpoint for run %s written to %s", state.RunID, p.config.ResumeFile)
	//
	return nil
}

// RunID returns the identifier of the checkpoint written or restored, if any.
func (p *Eager) RunID() (string, bool) {
	if p.state == nil {
		return "", false
	}
	//
	return p.state.RunID.String(), true
}

func ruleNames(candidates []*rules.Rule) string {
	names := make([]string, len(candidates))
	//
	for i, r := range candidates {
		names[i] = r.Name
	}
	//
	return fmt.Sprint(names)
}
