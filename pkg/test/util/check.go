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
package util

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"testing"

	"github.com/consensys/go-gwconvert/pkg/diag"
	"github.com/consensys/go-gwconvert/pkg/resolve"
	"github.com/consensys/go-gwconvert/pkg/table"
)

// TestDir determines the (relative) location of the test directory.  That is
// where the sample files, their (optional) configurations and the
// corresponding expectations are found.
const TestDir = "../../testdata"

// Expected captures the outcome expected from resolving a given sample file.
type Expected struct {
	// Expected number of samples remaining (if given)
	Height *uint `json:"height,omitempty"`
	// Absolute tolerance when comparing columns
	Tolerance float64 `json:"tolerance"`
	// Columns whose values are known
	Columns map[string][]float64 `json:"columns"`
	// Columns which must be derived, though their values are not checked
	Present []string `json:"present"`
	// Columns which must not be derived
	Absent []string `json:"absent"`
	// Diagnostic codes which must be reported
	Diagnostics []string `json:"diagnostics"`
	// Error expected (either "invalid-config" or "no-samples")
	Error string `json:"error"`
}

// Check resolves a given sample file both eagerly and lazily, and compares the
// outcome against that expected.  Samples are read from "test.json", the
// configuration (if any) from "test.yaml" and the expectation from
// "test.expected.json".
func Check(t *testing.T, test string) {
	var (
		filename        = fmt.Sprintf("%s/%s", TestDir, test)
		tbl, md         = readSamplesFile(t, filename+".json")
		config          = readConfigFile(t, filename+".yaml")
		expected        = readExpectedFile(t, filename+".expected.json")
		eager, errEager = resolve.NewEager(tbl, config, resolve.WithSink(nil), resolve.WithMetadata(md))
		lazy, errLazy   = resolve.NewLazy(tbl, config, resolve.WithSink(nil), resolve.WithMetadata(md))
	)
	// Check errors first
	if expected.Error != "" {
		checkError(t, test, expected.Error, errEager)
		checkError(t, test, expected.Error, errLazy)
		//
		return
	} else if errEager != nil || errLazy != nil {
		t.Fatalf("%s: unexpected error (%v, %v)", test, errEager, errLazy)
	}
	//
	if expected.Height != nil && eager.Table().Height() != *expected.Height {
		t.Errorf("%s: expected %d samples, got %d", test, *expected.Height, eager.Table().Height())
	}
	// Check known columns
	for name, values := range expected.Columns {
		col, ok := eager.Table().Column(name)
		checkColumn(t, test+" (eager)", name, col, ok, values, expected.Tolerance)
		//
		col, err := lazy.Get(name)
		checkColumn(t, test+" (lazy)", name, col, err == nil, values, expected.Tolerance)
	}
	// Check presence and absence
	for _, name := range expected.Present {
		if !eager.Table().Has(name) {
			t.Errorf("%s (eager): %s not derived", test, name)
		}
		//
		if _, err := lazy.Get(name); err != nil {
			t.Errorf("%s (lazy): %v", test, err)
		}
	}
	//
	for _, name := range expected.Absent {
		if eager.Table().Has(name) {
			t.Errorf("%s (eager): %s unexpectedly derived", test, name)
		}
		//
		if _, err := lazy.Get(name); !errors.Is(err, resolve.ErrNotFound) {
			t.Errorf("%s (lazy): %s unexpectedly derived", test, name)
		}
	}
	// Check diagnostics
	for _, code := range expected.Diagnostics {
		checkDiagnostic(t, test+" (eager)", code, eager.Diagnostics())
		checkDiagnostic(t, test+" (lazy)", code, lazy.Diagnostics())
	}
}

func checkError(t *testing.T, test string, expected string, err error) {
	var target error
	//
	switch expected {
	case "invalid-config":
		target = resolve.ErrInvalidConfig
	case "no-samples":
		target = resolve.ErrNoSamples
	default:
		t.Fatalf("%s: unknown error kind %s", test, expected)
	}
	//
	if !errors.Is(err, target) {
		t.Errorf("%s: expected %s error, got %v", test, expected, err)
	}
}

func checkColumn(t *testing.T, test string, name string, col []float64, ok bool, expected []float64,
	tolerance float64) {
	//
	if !ok {
		t.Errorf("%s: missing %s", test, name)
		return
	} else if len(col) != len(expected) {
		t.Errorf("%s: %s has %d samples, expected %d", test, name, len(col), len(expected))
		return
	}
	//
	for i := range col {
		if math.Abs(col[i]-expected[i]) > tolerance {
			t.Errorf("%s: %s[%d] is %v, expected %v", test, name, i, col[i], expected[i])
		}
	}
}

func checkDiagnostic(t *testing.T, test string, code string, records []diag.Record) {
	for _, r := range records {
		if r.Code == code {
			return
		}
	}
	//
	t.Errorf("%s: no %s diagnostic reported", test, code)
}

func readSamplesFile(t *testing.T, filename string) (*table.Table, table.Metadata) {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		t.Fatal(err)
	}
	//
	tbl, md, err := table.FromJson(bytes)
	if err != nil {
		t.Fatalf("%s: %v", filename, err)
	}
	//
	return tbl, md
}

// The configuration file is optional.
func readConfigFile(t *testing.T, filename string) resolve.Config {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return resolve.DefaultConfig()
	}
	//
	config, err := resolve.LoadConfig(filename)
	if err != nil {
		t.Fatalf("%s: %v", filename, err)
	}
	//
	return config
}

func readExpectedFile(t *testing.T, filename string) Expected {
	var expected Expected
	//
	bytes, err := os.ReadFile(filename)
	if err != nil {
		t.Fatal(err)
	} else if err := json.Unmarshal(bytes, &expected); err != nil {
		t.Fatalf("%s: %v", filename, err)
	}
	//
	return expected
}
