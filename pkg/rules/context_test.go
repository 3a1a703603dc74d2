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
	"testing"

	"github.com/consensys/go-gwconvert/pkg/diag"
	"github.com/consensys/go-gwconvert/pkg/table"
	"github.com/stretchr/testify/assert"
)

func Test_Context_01(t *testing.T) {
	var (
		tbl, _ = table.FromMap(map[string][]float64{"mass_1": {30}})
		md     = table.NewMetadata(nil)
		ctx    = NewContext(tbl, &md, Settings{}, diag.NewReport(nil), nil)
	)
	//
	ctx.RecordProvenance("final_mass", "fits", "average")
	ctx.RecordProvenance("final_spin", "fits", "average")
	// Nothing reaches the metadata until committed
	_, ok := md.Provenance("final_mass", "fits")
	assert.False(t, ok)
	//
	ctx.Commit("final_spin")
	ctx.Discard("final_mass", "final_spin")
	//
	fits, ok := md.Provenance("final_spin", "fits")
	assert.True(t, ok)
	assert.Equal(t, "average", fits)
	// Discarded provenance is never committed
	ctx.Commit("final_mass")
	//
	_, ok = md.Provenance("final_mass", "fits")
	assert.False(t, ok)
}
