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
	"fmt"
	"slices"
)

// Registry maps each derivable parameter to the ordered list of candidate
// rules which can produce it.  Candidates for a given parameter are tried in
// declaration order, and the first whose inputs are available wins.  No
// attempt is made to detect overlapping candidates ahead of time, since which
// rules apply depends upon which columns are present at run time.
type Registry struct {
	// All rules in declaration order
	rules []*Rule
	// Targets in order of first declaration
	targets []string
	// Candidate rules for each target
	index map[string][]*Rule
}

// NewRegistry constructs a registry from a given list of rules, in priority
// order.  An error is returned for duplicate rule names, rules which require
// one of their own targets, or rules which are malformed.
func NewRegistry(rules ...*Rule) (*Registry, error) {
	var (
		names = make(map[string]bool)
		index = make(map[string][]*Rule)
		order []string
	)
	//
	for _, r := range rules {
		if err := checkRule(r); err != nil {
			return nil, err
		} else if names[r.Name] {
			return nil, fmt.Errorf("duplicate rule %s", r.Name)
		}
		//
		names[r.Name] = true
		//
		for _, t := range r.Targets {
			if _, ok := index[t]; !ok {
				order = append(order, t)
			}
			//
			index[t] = append(index[t], r)
		}
	}
	//
	return &Registry{rules, order, index}, nil
}

func checkRule(r *Rule) error {
	if r.Name == "" {
		return fmt.Errorf("rule without name")
	} else if len(r.Targets) == 0 {
		return fmt.Errorf("rule %s has no targets", r.Name)
	} else if r.Apply == nil {
		return fmt.Errorf("rule %s has no computation", r.Name)
	}
	//
	for _, req := range r.Requires {
		if slices.Contains(r.Targets, req) {
			return fmt.Errorf("rule %s requires its own target %s", r.Name, req)
		}
	}
	//
	return nil
}

// RulesFor returns the candidate rules for a given parameter, in priority
// order.  This is empty for parameters which cannot be derived.
func (p *Registry) RulesFor(name string) []*Rule {
	return p.index[name]
}

// Knows checks whether a given parameter can be derived by any rule.
func (p *Registry) Knows(name string) bool {
	_, ok := p.index[name]
	return ok
}

// Targets returns every derivable parameter in order of first declaration.
// This is the order in which an eager resolver visits them.
func (p *Registry) Targets() []string {
	return p.targets
}

// Rules returns all rules in declaration order.
func (p *Registry) Rules() []*Rule {
	return p.rules
}

// Rule looks up a rule by name.
func (p *Registry) Rule(name string) (*Rule, bool) {
	for _, r := range p.rules {
		if r.Name == name {
			return r, true
		}
	}
	//
	return nil, false
}

// Select returns the first candidate rule for a given target which is both
// admitted by its guard and satisfied by the current table, along with any
// other candidates which would also have applied.  The alternatives are
// reported so that the choice made between equally viable rules is visible.
func (p *Registry) Select(ctx *Context, target string, skip func(*Rule) bool) (*Rule, []*Rule) {
	var (
		chosen       *Rule
		alternatives []*Rule
	)
	//
	for _, r := range p.index[target] {
		if (skip != nil && skip(r)) || !r.Satisfied(ctx.Table) || !r.Admits(ctx) {
			continue
		} else if chosen == nil {
			chosen = r
		} else {
			alternatives = append(alternatives, r)
		}
	}
	//
	return chosen, alternatives
}
