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
	"errors"
	"fmt"
	"strings"

	"github.com/consensys/go-gwconvert/pkg/table"
)

// ErrNotApplicable is returned by a rule which, having inspected its inputs or
// the resolver context at run time, declines to produce its targets.  This is
// not a failure: the resolver simply moves on to the next candidate rule.
var ErrNotApplicable = errors.New("rule not applicable")

// ApplyFn computes the targets of a rule from its required inputs, which are
// given in the order declared by the rule.  The result must hold one column
// per target, in the order declared.
type ApplyFn func(ctx *Context, inputs [][]float64) ([][]float64, error)

// Rule declares how one or more target parameters can be derived from a given
// set of required input parameters.  Rules are immutable once the registry
// holding them is constructed.
type Rule struct {
	// Unique name of this rule.
	Name string
	// Parameters produced by this rule.
	Targets []string
	// Parameters which must be present for this rule to apply.
	Requires []string
	// Optional guard, evaluated at run time, which determines whether this
	// rule is applicable to the system (e.g. only for precessing systems).
	When func(*Context) bool
	// Computation itself.
	Apply ApplyFn
}

// Produces checks whether this rule has a given parameter amongst its targets.
func (r *Rule) Produces(name string) bool {
	for _, t := range r.Targets {
		if t == name {
			return true
		}
	}
	//
	return false
}

// Satisfied checks whether all required inputs of this rule are present in a
// given table.
func (r *Rule) Satisfied(tbl *table.Table) bool {
	return tbl.HasAll(r.Requires...)
}

// Admits determines whether the guard of this rule (if any) holds for a given
// context.
func (r *Rule) Admits(ctx *Context) bool {
	return r.When == nil || r.When(ctx)
}

// Run the rule against the current table of a given context.  All required
// inputs must be present.
func (r *Rule) Run(ctx *Context) ([][]float64, error) {
	inputs := make([][]float64, len(r.Requires))
	//
	for i, name := range r.Requires {
		col, ok := ctx.Table.Column(name)
		if !ok {
			return nil, fmt.Errorf("rule %s missing input %s", r.Name, name)
		}
		//
		inputs[i] = col
	}
	//
	outputs, err := r.Apply(ctx, inputs)
	//
	if err != nil {
		return nil, err
	} else if len(outputs) != len(r.Targets) {
		return nil, fmt.Errorf("rule %s produced %d columns, expected %d", r.Name, len(outputs), len(r.Targets))
	}
	//
	return outputs, nil
}

func (r *Rule) String() string {
	return fmt.Sprintf("%s: (%s) <- (%s)", r.Name, strings.Join(r.Targets, ","), strings.Join(r.Requires, ","))
}

// ===================================================================
// Constructors
// ===================================================================

// Unary constructs a rule deriving a single target from a single input using a
// pure function.
func Unary(name string, target string, input string, fn func([]float64) []float64) *Rule {
	return &Rule{name, []string{target}, []string{input}, nil,
		func(_ *Context, in [][]float64) ([][]float64, error) {
			return [][]float64{fn(in[0])}, nil
		}}
}

// Binary constructs a rule deriving a single target from two inputs using a
// pure function.
func Binary(name string, target string, left string, right string, fn func([]float64, []float64) []float64) *Rule {
	return &Rule{name, []string{target}, []string{left, right}, nil,
		func(_ *Context, in [][]float64) ([][]float64, error) {
			return [][]float64{fn(in[0], in[1])}, nil
		}}
}

// Pair constructs a rule deriving two targets from two inputs using a pure
// function.
func Pair(name string, targets [2]string, left string, right string,
	fn func([]float64, []float64) ([]float64, []float64)) *Rule {
	return &Rule{name, targets[:], []string{left, right}, nil,
		func(_ *Context, in [][]float64) ([][]float64, error) {
			x, y := fn(in[0], in[1])
			return [][]float64{x, y}, nil
		}}
}

// Guarded returns a copy of this rule with a given guard.
func (r *Rule) Guarded(when func(*Context) bool) *Rule {
	nr := *r
	nr.When = when
	//
	return &nr
}
