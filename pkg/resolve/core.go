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
	"slices"
	"strings"

	"github.com/consensys/go-gwconvert/pkg/classify"
	"github.com/consensys/go-gwconvert/pkg/diag"
	"github.com/consensys/go-gwconvert/pkg/physics"
	"github.com/consensys/go-gwconvert/pkg/rules"
	"github.com/consensys/go-gwconvert/pkg/table"
)

// Option customises the construction of a resolver.
type Option func(*core)

// WithRegistry resolves using a given registry, rather than the default.
func WithRegistry(registry *rules.Registry) Option {
	return func(c *core) {
		c.registry = registry
	}
}

// WithSink forwards diagnostics to a given sink, rather than logrus.  A nil
// sink means diagnostics are only accumulated.
func WithSink(sink diag.Sink) Option {
	return func(c *core) {
		c.report = diag.NewReport(sink)
	}
}

// WithMetadata supplies the metadata travelling with the table being resolved.
func WithMetadata(md table.Metadata) Option {
	return func(c *core) {
		c.metadata = md.Clone()
	}
}

// Stats summarises the work carried out by a resolver.
type Stats struct {
	// Rules successfully applied
	RulesApplied uint
	// Rules which failed, or declined to apply
	RulesFailed uint
	// Columns written by rules
	ColumnsDerived uint
}

// core holds the state shared by both eager and lazy resolution.
type core struct {
	registry *rules.Registry
	config   Config
	settings rules.Settings
	table    *table.Table
	metadata table.Metadata
	report   *diag.Report
	ctx      *rules.Context
	stats    Stats
	// Parameters present once samples were checked
	supplied map[string]bool
	// Set when a rule's outputs caused the bodies to be exchanged, or the mass
	// ratio to be inverted
	canonicalised bool
}

// newCore constructs the shared resolver state, taking a private copy of the
// table and normalising the configuration.
func newCore(tbl *table.Table, config Config, opts []Option) (*core, error) {
	c := &core{
		registry: nil,
		config:   config,
		table:    tbl.Clone(),
		metadata: table.NewMetadata(nil),
		report:   diag.NewReport(diag.NewLogrusSink(nil)),
	}
	//
	for _, opt := range opts {
		opt(c)
	}
	//
	if c.registry == nil {
		c.registry = rules.Default()
	}
	//
	settings, err := config.Normalise(&c.metadata, c.report)
	if err != nil {
		return nil, err
	}
	//
	c.settings = settings
	//
	return c, nil
}

// bind constructs the rule context, with a given function used to derive
// parameters requested by rules or the classifier.
func (c *core) bind(deriver func(string) bool) {
	c.ctx = rules.NewContext(c.table, &c.metadata, c.settings, c.report, deriver)
}

// Classification returns the classifier for the table being resolved.
func (c *core) Classification() *classify.Classifier {
	return c.ctx.Class
}

// Settings returns the normalised configuration consulted by rules.
func (c *core) Settings() rules.Settings {
	return c.settings
}

// markSupplied records the parameters present before any rule is applied.
func (c *core) markSupplied() {
	c.supplied = make(map[string]bool)
	//
	for _, name := range c.table.Names() {
		c.supplied[name] = true
	}
}

// regenerate drops the given parameters (and their provenance), such that they
// are recomputed.
func (c *core) regenerate(names ...string) {
	var dropped []string
	//
	for _, name := range names {
		if c.table.Remove(name) {
			dropped = append(dropped, name)
		}
		//
		c.metadata.ForgetProvenance(name)
		delete(c.supplied, name)
	}
	//
	if len(dropped) > 0 {
		c.report.Info(diag.REGENERATE, dropped, "dropped %s for regeneration", strings.Join(dropped, ", "))
	}
}

// allowed determines whether a given parameter may be written to the table.
func (c *core) allowed(name string) bool {
	return len(c.config.OnlyGenerate) == 0 || slices.Contains(c.config.OnlyGenerate, name)
}

// canonicalise restores the mass conventions after a rule has written any
// masses or the mass ratio.
func (c *core) canonicalise(written []string) {
	var changed uint
	//
	for _, name := range written {
		switch name {
		case "mass_1", "mass_2", "mass_1_source", "mass_2_source":
			changed += CanonicaliseMassOrdering(c.table, c.report)
		case "mass_ratio":
			changed += CanonicaliseMassRatio(c.table, c.report)
		}
	}
	//
	if changed > 0 {
		c.canonicalised = true
		c.ctx.Class.Reset()
	}
}

// discardDerived drops every derived parameter, except those given, such that
// anything computed before the bodies were exchanged is computed afresh.
// Parameters describing a single body were exchanged along with the masses,
// and are kept.
func (c *core) discardDerived(keep ...string) {
	var stale []string
	//
	for _, name := range c.table.Names() {
		if !c.supplied[name] && !slices.Contains(keep, name) && !exchanged(name) {
			stale = append(stale, name)
		}
	}
	//
	c.canonicalised = false
	//
	if len(stale) > 0 {
		c.regenerate(stale...)
		c.ctx.Class.Reset()
	}
}

// exchanged determines whether a given parameter is brought into canonical
// form along with the masses.
func exchanged(name string) bool {
	if name == "phi_12" || name == "mass_ratio" {
		return true
	}
	//
	for _, pair := range PAIRED {
		if pair[0] == name || pair[1] == name {
			return true
		}
	}
	//
	return false
}

// apply runs a given rule, writing any targets not already present.  Failures
// are reported but never propagated: one family failing leaves every other
// family unaffected.  Provenance recorded by the rule is kept only for the
// targets written.  Returns true if the rule completed.
func (c *core) apply(rule *rules.Rule) bool {
	defer c.ctx.Discard(rule.Targets...)
	//
	outputs, err := rule.Run(c.ctx)
	//
	switch {
	case errors.Is(err, physics.ErrUnknownMethod):
		c.stats.RulesFailed++
		c.report.Warn(diag.UNKNOWN_METHOD, rule.Targets, "unable to compute %s using %s: %v",
			strings.Join(rule.Targets, ", "), rule.Name, err)
		//
		return false
	case errors.Is(err, rules.ErrNotApplicable):
		c.stats.RulesFailed++
		c.report.Debug(diag.RULE_FAILED, rule.Targets, "rule %s not applicable", rule.Name)
		//
		return false
	case err != nil:
		c.stats.RulesFailed++
		c.report.Error(diag.RULE_FAILED, rule.Targets, "rule %s failed: %v", rule.Name, err)
		//
		return false
	}
	// Sanity check heights before writing anything
	for i, col := range outputs {
		if uint(len(col)) != c.table.Height() {
			c.stats.RulesFailed++
			c.report.Error(diag.RULE_FAILED, rule.Targets, "rule %s produced %d samples for %s, expected %d",
				rule.Name, len(col), rule.Targets[i], c.table.Height())
			//
			return false
		}
	}
	//
	var written []string
	//
	for i, target := range rule.Targets {
		if !c.table.Has(target) && c.allowed(target) {
			if err := c.table.Add(target, outputs[i]); err != nil {
				panic(err)
			}
			//
			written = append(written, target)
		}
	}
	//
	c.ctx.Commit(written...)
	c.stats.ColumnsDerived += uint(len(written))
	c.stats.RulesApplied++
	c.canonicalise(written)
	//
	return true
}
