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
package table

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Table is an ordered set of named columns of floating point samples.  Every
// column in a table has the same height, which is the number of samples.  The
// height can shrink (i.e. when rows are removed) but never changes for a single
// column on its own.
type Table struct {
	// Holds the number of samples in every column
	height uint
	// Holds the columns in insertion order
	columns []*Column
}

// NewTable constructs an empty table into which column data can be added.
func NewTable() *Table {
	p := new(Table)
	// Initially empty columns
	p.columns = make([]*Column, 0)
	// done
	return p
}

// FromMap constructs a table from a mapping of parameter names to sample
// arrays.  Since maps carry no order, columns are ordered by name.  An error is
// returned if the arrays do not all have the same length.
func FromMap(data map[string][]float64) (*Table, error) {
	names := make([]string, 0, len(data))
	//
	for name := range data {
		names = append(names, name)
	}
	// Sort for determinism
	sort.Strings(names)
	//
	tbl := NewTable()
	//
	for _, name := range names {
		if err := tbl.Add(name, data[name]); err != nil {
			return nil, err
		}
	}
	//
	return tbl, nil
}

// FromMatrix constructs a table from an ordered list of parameter names, and a
// list of samples where each sample holds one value per parameter.
func FromMatrix(names []string, samples [][]float64) (*Table, error) {
	cols := make([][]float64, len(names))
	//
	for i := range cols {
		cols[i] = make([]float64, len(samples))
	}
	//
	for row, sample := range samples {
		if len(sample) != len(names) {
			return nil, fmt.Errorf("sample %d has %d values, expected %d", row, len(sample), len(names))
		}
		//
		for i, v := range sample {
			cols[i][row] = v
		}
	}
	//
	tbl := NewTable()
	//
	for i, name := range names {
		if err := tbl.Add(name, cols[i]); err != nil {
			return nil, err
		}
	}
	//
	return tbl, nil
}

// Height returns the number of samples held in this table.
func (p *Table) Height() uint {
	return p.height
}

// Width returns the number of columns in this table.
func (p *Table) Width() uint {
	return uint(len(p.columns))
}

// Names returns the names of all columns in this table, in order.
func (p *Table) Names() []string {
	names := make([]string, len(p.columns))
	//
	for i, c := range p.columns {
		names[i] = c.name
	}
	//
	return names
}

// Has checks whether the table has a given column or not.
func (p *Table) Has(name string) bool {
	_, ok := p.index(name)
	return ok
}

// HasAll checks whether the table has every one of the given columns.
func (p *Table) HasAll(names ...string) bool {
	for _, n := range names {
		if !p.Has(n) {
			return false
		}
	}
	//
	return true
}

// Column looks up the data of a column based on its name.  Observe that the
// returned slice is shared with the table, and should not be modified.
func (p *Table) Column(name string) ([]float64, bool) {
	if i, ok := p.index(name); ok {
		return p.columns[i].data, true
	}
	//
	return nil, false
}

// Add a new column of data to this table.  The first column added to an empty
// table determines its height.  It is an error to add a column which already
// exists, or whose height differs from the table.
func (p *Table) Add(name string, data []float64) error {
	if p.Has(name) {
		return fmt.Errorf("column %s already exists", name)
	} else if len(p.columns) > 0 && uint(len(data)) != p.height {
		return fmt.Errorf("column %s has %d samples, expected %d", name, len(data), p.height)
	}
	// Construct new column
	p.columns = append(p.columns, &Column{name, data})
	p.height = uint(len(data))
	//
	return nil
}

// Set assigns the data for a given column, replacing it if it already exists.
func (p *Table) Set(name string, data []float64) error {
	i, ok := p.index(name)
	if !ok {
		return p.Add(name, data)
	} else if uint(len(data)) != p.height {
		return fmt.Errorf("column %s has %d samples, expected %d", name, len(data), p.height)
	}
	//
	p.columns[i].data = data
	//
	return nil
}

// Remove a column from this table, returning true if it existed.
func (p *Table) Remove(name string) bool {
	i, ok := p.index(name)
	if !ok {
		return false
	}
	//
	p.columns = append(p.columns[:i], p.columns[i+1:]...)
	// An empty table has no height
	if len(p.columns) == 0 {
		p.height = 0
	}
	//
	return true
}

// KeepRows retains only those rows whose corresponding entry in the mask is
// true, removing all others from every column.  The number of rows removed is
// returned.
func (p *Table) KeepRows(mask []bool) uint {
	if uint(len(mask)) != p.height {
		panic("incorrect mask height")
	}
	//
	var kept uint
	//
	for _, c := range p.columns {
		ndata := make([]float64, 0, len(c.data))
		//
		for i, v := range c.data {
			if mask[i] {
				ndata = append(ndata, v)
			}
		}
		//
		c.data = ndata
		kept = uint(len(ndata))
	}
	//
	if len(p.columns) == 0 {
		return 0
	}
	//
	removed := p.height - kept
	p.height = kept
	//
	return removed
}

// SwapRows exchanges the values of two columns for those rows indicated by the
// mask.  Both columns must exist.
func (p *Table) SwapRows(left string, right string, mask []bool) {
	l, lok := p.Column(left)
	r, rok := p.Column(right)
	//
	if !lok || !rok {
		panic(fmt.Sprintf("cannot swap missing columns %s and %s", left, right))
	}
	// Copy before writing, so that shared slices are never mutated.
	nl, nr := clone(l), clone(r)
	//
	for i, swap := range mask {
		if swap {
			nl[i], nr[i] = r[i], l[i]
		}
	}
	//
	p.columns[p.mustIndex(left)].data = nl
	p.columns[p.mustIndex(right)].data = nr
}

// Clone creates an identical clone of this table.
func (p *Table) Clone() *Table {
	ntable := new(Table)
	ntable.columns = make([]*Column, len(p.columns))
	ntable.height = p.height
	//
	for i, c := range p.columns {
		ntable.columns[i] = &Column{c.name, clone(c.data)}
	}
	// done
	return ntable
}

// Equal determines whether two tables hold the same columns in the same order
// with bit-for-bit identical data.
func (p *Table) Equal(other *Table) bool {
	if p.height != other.height || len(p.columns) != len(other.columns) {
		return false
	}
	//
	for i, c := range p.columns {
		o := other.columns[i]
		//
		if c.name != o.name || len(c.data) != len(o.data) {
			return false
		}
		//
		for j := range c.data {
			if math.Float64bits(c.data[j]) != math.Float64bits(o.data[j]) {
				return false
			}
		}
	}
	//
	return true
}

// ToMap returns the contents of this table as a mapping from parameter name to
// samples.
func (p *Table) ToMap() map[string][]float64 {
	m := make(map[string][]float64, len(p.columns))
	//
	for _, c := range p.columns {
		m[c.name] = clone(c.data)
	}
	//
	return m
}

// ToMatrix returns the contents of this table as an ordered list of parameter
// names, and a list of samples (one value per parameter).
func (p *Table) ToMatrix() ([]string, [][]float64) {
	samples := make([][]float64, p.height)
	//
	for row := range samples {
		samples[row] = make([]float64, len(p.columns))
		//
		for i, c := range p.columns {
			samples[row][i] = c.data[row]
		}
	}
	//
	return p.Names(), samples
}

func (p *Table) String() string {
	var id strings.Builder
	//
	id.WriteString("{")
	//
	for i, c := range p.columns {
		if i != 0 {
			id.WriteString(",")
		}
		//
		id.WriteString(c.name)
		id.WriteString("={")
		//
		for j, v := range c.data {
			if j != 0 {
				id.WriteString(",")
			}
			//
			id.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		}
		//
		id.WriteString("}")
	}
	//
	id.WriteString("}")
	//
	return id.String()
}

func (p *Table) index(name string) (int, bool) {
	for i, c := range p.columns {
		if c.name == name {
			return i, true
		}
	}
	// Column does not exist
	return 0, false
}

func (p *Table) mustIndex(name string) int {
	if i, ok := p.index(name); ok {
		return i
	}
	//
	panic(fmt.Sprintf("unknown column %s", name))
}

// ===================================================================
// Column
// ===================================================================

// Column represents a named column of samples within a table.
type Column struct {
	// Holds the name of this column
	name string
	// Holds the raw data making up this column
	data []float64
}

// Name returns the name of the given column.
func (p *Column) Name() string {
	return p.name
}

// Data returns the data for the given column.
func (p *Column) Data() []float64 {
	return p.data
}

func clone(data []float64) []float64 {
	ndata := make([]float64, len(data))
	copy(ndata, data)
	//
	return ndata
}
