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
	"testing"

	"github.com/consensys/go-gwconvert/pkg/diag"
	"github.com/consensys/go-gwconvert/pkg/physics"
	"github.com/consensys/go-gwconvert/pkg/table"
)

func Test_Precessing_01(t *testing.T) {
	checkPrecessing(t, map[string][]float64{"mass_1": {30, 35}}, false)
}

func Test_Precessing_02(t *testing.T) {
	checkPrecessing(t, map[string][]float64{"tilt_1": {0, math.Pi}, "tilt_2": {math.Pi, 0}}, false)
}

func Test_Precessing_03(t *testing.T) {
	checkPrecessing(t, map[string][]float64{"tilt_1": {0, 0.3}}, true)
}

func Test_Precessing_04(t *testing.T) {
	checkPrecessing(t, map[string][]float64{"tilt_1": {0, 0}, "phi_jl": {0, 0}, "spin_1x": {0, 0}}, false)
}

func Test_Precessing_05(t *testing.T) {
	checkPrecessing(t, map[string][]float64{"tilt_1": {0, 0}, "spin_2y": {0, 0.1}}, true)
}

// The deriver is asked for missing precession parameters.
func Test_Precessing_06(t *testing.T) {
	var (
		tbl, _    = table.FromMap(map[string][]float64{"mass_1": {30}})
		requested []string
	)
	//
	deriver := DeriverFunc(func(name string) bool {
		requested = append(requested, name)
		//
		if name == "tilt_2" {
			return tbl.Add(name, []float64{1.0}) == nil
		}
		//
		return false
	})
	//
	c := NewClassifier(tbl, diag.NewReport(nil), deriver)
	//
	if !c.IsPrecessing() {
		t.Errorf("derived tilt should make system precessing")
	} else if len(requested) != 2 || requested[0] != "tilt_1" || requested[1] != "tilt_2" {
		t.Errorf("unexpected requests %v", requested)
	}
	// Answers are cached
	c.IsPrecessing()
	//
	if len(requested) != 2 {
		t.Errorf("classification not cached, requests %v", requested)
	}
}

// A rule consulted whilst the precession parameters are being derived sees the
// system as non-precessing, rather than recursing.
func Test_Precessing_07(t *testing.T) {
	var (
		tbl, _ = table.FromMap(map[string][]float64{"mass_1": {30}})
		c      *Classifier
		inner  []bool
	)
	//
	c = NewClassifier(tbl, nil, DeriverFunc(func(name string) bool {
		inner = append(inner, c.IsPrecessing())
		return false
	}))
	//
	if c.IsPrecessing() {
		t.Errorf("system without precession parameters is precessing")
	} else if len(inner) != len(PRECESSION_PARAMS) {
		t.Errorf("unexpected derivation requests %v", inner)
	}
	//
	for _, v := range inner {
		if v {
			t.Errorf("re-entrant classification reported precessing")
		}
	}
}

func Test_NSBH_01(t *testing.T) {
	tbl, _ := table.FromMap(map[string][]float64{"lambda_2": {0, 0, 0}})
	report := diag.NewReport(nil)
	c := NewClassifier(tbl, report, nil)
	//
	if c.IsNSBH() {
		t.Errorf("zero lambda_2 classified as NSBH")
	} else if len(report.Filter(diag.NSBH_RECLASSIFIED)) != 1 {
		t.Errorf("expected reclassification warning, got %v", report.Records())
	} else if c.RemnantFamily("", false) != physics.AVERAGE_FITS {
		t.Errorf("unexpected remnant family %s", c.RemnantFamily("", false))
	}
}

func Test_NSBH_02(t *testing.T) {
	tbl, _ := table.FromMap(map[string][]float64{"lambda_2": {200, 300}})
	report := diag.NewReport(nil)
	c := NewClassifier(tbl, report, nil)
	//
	if !c.IsNSBH() {
		t.Errorf("non-zero lambda_2 not classified as NSBH")
	} else if len(report.Records()) != 0 {
		t.Errorf("unexpected diagnostics %v", report.Records())
	} else if c.RemnantFamily(physics.NRSUR_FITS, false) != physics.NSBH_FITS {
		t.Errorf("unexpected remnant family %s", c.RemnantFamily(physics.NRSUR_FITS, false))
	} else if c.RemnantFamily(physics.NRSUR_FITS, true) != physics.NRSUR_FITS {
		t.Errorf("forced BBH remnant ignored")
	} else if !c.HasTidal() {
		t.Errorf("tidal information missed")
	}
}

func Test_NSBH_03(t *testing.T) {
	// Binary neutron star
	tbl, _ := table.FromMap(map[string][]float64{"lambda_1": {100, 150}, "lambda_2": {200, 300}})
	c := NewClassifier(tbl, nil, nil)
	//
	if c.IsNSBH() {
		t.Errorf("binary neutron star classified as NSBH")
	}
}

func Test_Tidal_01(t *testing.T) {
	tbl, _ := table.FromMap(map[string][]float64{"lambda_tilde": {0, 0}})
	c := NewClassifier(tbl, nil, nil)
	//
	if c.HasTidal() {
		t.Errorf("zero lambda_tilde considered tidal")
	}
	//
	_ = tbl.Set("lambda_tilde", []float64{0, 10})
	//
	if c.HasTidal() {
		t.Errorf("classification not cached")
	}
	//
	c.Reset()
	//
	if !c.HasTidal() {
		t.Errorf("classification not reset")
	}
}

func checkPrecessing(t *testing.T, columns map[string][]float64, expected bool) {
	tbl, err := table.FromMap(columns)
	if err != nil {
		t.Fatal(err)
	}
	//
	c := NewClassifier(tbl, diag.NewReport(nil), nil)
	//
	if c.IsPrecessing() != expected {
		t.Errorf("expected precessing = %t for %s", expected, tbl)
	}
}

func Test_Precessing_08(t *testing.T) {
	tbl, _ := table.FromMap(map[string][]float64{"mass_1": {30, 35}})
	report := diag.NewReport(nil)
	c := NewClassifier(tbl, report, nil)
	//
	if c.IsPrecessing() {
		t.Fatalf("aligned table classified as precessing")
	}
	//
	records := report.Filter(diag.CLASSIFICATION)
	//
	if len(records) != 1 {
		t.Fatalf("expected one classification record, got %v", report.Records())
	} else if records[0].Level != diag.DEBUG {
		t.Errorf("unexpected level %s", records[0].Level)
	} else if records[0].Message != "no precession parameters found, treating as non-precessing" {
		t.Errorf("unexpected message %q", records[0].Message)
	}
}
