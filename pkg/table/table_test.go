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
	"math"
	"slices"
	"testing"
)

func Test_Table_01(t *testing.T) {
	tbl, err := FromMap(map[string][]float64{"y": {1, 2}, "x": {3, 4}})
	//
	if err != nil {
		t.Fatal(err)
	} else if !slices.Equal(tbl.Names(), []string{"x", "y"}) {
		t.Errorf("unexpected column order %v", tbl.Names())
	} else if tbl.Height() != 2 || tbl.Width() != 2 {
		t.Errorf("unexpected dimensions %dx%d", tbl.Width(), tbl.Height())
	}
}

func Test_Table_02(t *testing.T) {
	if _, err := FromMap(map[string][]float64{"x": {1, 2}, "y": {1}}); err == nil {
		t.Errorf("columns of unequal height accepted")
	}
	//
	if _, err := FromMatrix([]string{"x", "y"}, [][]float64{{1, 2}, {3}}); err == nil {
		t.Errorf("ragged samples accepted")
	}
}

func Test_Table_03(t *testing.T) {
	tbl, err := FromMatrix([]string{"b", "a"}, [][]float64{{1, 2}, {3, 4}, {5, 6}})
	if err != nil {
		t.Fatal(err)
	}
	//
	names, samples := tbl.ToMatrix()
	//
	if !slices.Equal(names, []string{"b", "a"}) {
		t.Errorf("unexpected names %v", names)
	}
	//
	if a, _ := tbl.Column("a"); !slices.Equal(a, []float64{2, 4, 6}) {
		t.Errorf("unexpected column a = %v", a)
	}
	//
	if !slices.Equal(samples[2], []float64{5, 6}) {
		t.Errorf("unexpected sample %v", samples[2])
	}
}

func Test_Table_04(t *testing.T) {
	tbl := NewTable()
	//
	if err := tbl.Add("x", []float64{1, 2, 3}); err != nil {
		t.Fatal(err)
	} else if err := tbl.Add("x", []float64{1, 2, 3}); err == nil {
		t.Errorf("duplicate column accepted")
	} else if err := tbl.Add("y", []float64{1, 2}); err == nil {
		t.Errorf("column of wrong height accepted")
	} else if err := tbl.Set("x", []float64{4, 5, 6}); err != nil {
		t.Error(err)
	} else if !tbl.Remove("x") || tbl.Remove("x") {
		t.Errorf("incorrect removal")
	} else if tbl.Height() != 0 {
		t.Errorf("empty table has height %d", tbl.Height())
	}
}

func Test_Table_05(t *testing.T) {
	tbl, _ := FromMap(map[string][]float64{"x": {1, -1, 2, -2}, "y": {5, 6, 7, 8}})
	//
	removed := tbl.KeepRows([]bool{true, false, true, false})
	//
	if removed != 2 || tbl.Height() != 2 {
		t.Errorf("removed %d rows, height %d", removed, tbl.Height())
	}
	//
	if y, _ := tbl.Column("y"); !slices.Equal(y, []float64{5, 7}) {
		t.Errorf("unexpected column y = %v", y)
	}
}

func Test_Table_06(t *testing.T) {
	tbl, _ := FromMap(map[string][]float64{"x": {1, 2, 3}, "y": {4, 5, 6}})
	before, _ := tbl.Column("x")
	//
	tbl.SwapRows("x", "y", []bool{false, true, true})
	//
	x, _ := tbl.Column("x")
	y, _ := tbl.Column("y")
	//
	if !slices.Equal(x, []float64{1, 5, 6}) || !slices.Equal(y, []float64{4, 2, 3}) {
		t.Errorf("unexpected swap %v, %v", x, y)
	} else if !slices.Equal(before, []float64{1, 2, 3}) {
		t.Errorf("swap modified shared column %v", before)
	}
}

func Test_Table_07(t *testing.T) {
	tbl, _ := FromMap(map[string][]float64{"x": {1, math.NaN(), 3}})
	clone := tbl.Clone()
	//
	if !tbl.Equal(clone) {
		t.Errorf("clone differs from original")
	}
	//
	_ = clone.Set("x", []float64{1, math.NaN(), 3.0000000001})
	//
	if tbl.Equal(clone) {
		t.Errorf("tables with different data are equal")
	}
}

func Test_Metadata_01(t *testing.T) {
	md := NewMetadata(nil)
	md.SetFloat("f_ref", 20)
	md.SetString("approximant", "IMRPhenomXPHM")
	md.RecordProvenance("final_mass", "fits", "NRSur7dq4Remnant")
	//
	bytes, err := md.ToJson()
	if err != nil {
		t.Fatal(err)
	}
	//
	other, err := MetadataFromJson(bytes)
	if err != nil {
		t.Fatal(err)
	}
	//
	if f, ok := other.Float("f_ref"); !ok || f != 20 {
		t.Errorf("unexpected f_ref %v", f)
	} else if s, ok := other.String("approximant"); !ok || s != "IMRPhenomXPHM" {
		t.Errorf("unexpected approximant %v", s)
	} else if p, ok := other.Provenance("final_mass", "fits"); !ok || p != "NRSur7dq4Remnant" {
		t.Errorf("unexpected provenance %v", p)
	}
	//
	other.ForgetProvenance("final_mass")
	//
	if _, ok := other.Provenance("final_mass", "fits"); ok {
		t.Errorf("provenance not forgotten")
	} else if _, ok := md.Provenance("final_mass", "fits"); !ok {
		t.Errorf("provenance forgotten in original")
	}
}

func Test_Json_01(t *testing.T) {
	checkJson(t, `{"parameters": ["mass_1", "mass_2"], "samples": [[30, 20], [35, 25]], "metadata": {"f_ref": 20}}`)
}

func Test_Json_02(t *testing.T) {
	checkJson(t, `{"mass_1": [30, 35], "mass_2": [20, 25]}`)
}

func Test_Json_03(t *testing.T) {
	if _, _, err := FromJson([]byte(`[1, 2, 3]`)); err == nil {
		t.Errorf("malformed samples accepted")
	}
}

func checkJson(t *testing.T, input string) {
	tbl, md, err := FromJson([]byte(input))
	if err != nil {
		t.Fatal(err)
	}
	//
	if m2, _ := tbl.Column("mass_2"); !slices.Equal(m2, []float64{20, 25}) {
		t.Errorf("unexpected mass_2 = %v", m2)
	}
	// Round trip
	bytes, err := ToJson(tbl, md)
	if err != nil {
		t.Fatal(err)
	}
	//
	other, _, err := FromJson(bytes)
	if err != nil {
		t.Fatal(err)
	} else if !tbl.Equal(other) {
		t.Errorf("round trip failed: %s != %s", tbl, other)
	}
}
