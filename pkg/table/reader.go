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
	"encoding/json"
	"errors"
)

// matrixFile is the JSON layout of a table given as parameters and samples.
type matrixFile struct {
	Parameters []string       `json:"parameters"`
	Samples    [][]float64    `json:"samples"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// FromJson parses a table expressed in JSON notation.  Two layouts are
// accepted.  The first is {"parameters": ["x","y"], "samples": [[0,1]]},
// which may optionally carry a "metadata" object.  The second is a plain
// mapping such as {"x": [0], "y": [1]}.
func FromJson(data []byte) (*Table, Metadata, error) {
	var (
		mf      matrixFile
		columns map[string][]float64
	)
	// Attempt the parameters / samples layout first.
	if err := json.Unmarshal(data, &mf); err == nil && mf.Parameters != nil {
		tbl, err := FromMatrix(mf.Parameters, mf.Samples)
		//
		return tbl, NewMetadata(mf.Metadata), err
	}
	// Failed, so try and fall back on the mapping layout.
	if err := json.Unmarshal(data, &columns); err != nil {
		return nil, Metadata{}, errors.New("samples must be either a mapping of columns, or parameters and samples")
	}
	//
	tbl, err := FromMap(columns)
	//
	return tbl, NewMetadata(nil), err
}

// ToJson writes a table (and its metadata) in the parameters / samples layout.
func ToJson(tbl *Table, md Metadata) ([]byte, error) {
	names, samples := tbl.ToMatrix()
	//
	return json.MarshalIndent(matrixFile{names, samples, md.items}, "", " ")
}
