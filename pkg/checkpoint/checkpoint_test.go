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
package checkpoint

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/consensys/go-gwconvert/pkg/diag"
	"github.com/consensys/go-gwconvert/pkg/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Checkpoint_01(t *testing.T) {
	tbl, err := table.FromMap(map[string][]float64{
		"mass_1":     {30, 35.123456789012345, 1e-300},
		"mass_2":     {20, math.NaN(), math.Inf(1)},
		"chirp_mass": {21.2, 0.1 + 0.2, -0},
	})
	require.NoError(t, err)
	//
	md := table.NewMetadata(nil)
	md.SetFloat("f_ref", 20)
	md.RecordProvenance("chirp_mass", "method", "exact")
	//
	state, err := NewState("abc123", tbl, md)
	require.NoError(t, err)
	//
	state.Attempted = []string{"chirp_mass_from_masses"}
	state.Applied = 1
	state.Failed = 2
	state.Derived = 3
	state.Diagnostics = []diag.Record{{Level: diag.WARNING, Code: diag.ROWS_REMOVED, Message: "removed 1", Params: []string{"mass_1"}}}
	//
	filename := filepath.Join(t.TempDir(), "resume.ckpt")
	require.NoError(t, Write(filename, state))
	//
	restored, err := Read(filename)
	require.NoError(t, err)
	// Samples survive exactly
	assert.True(t, tbl.Equal(restored.Table))
	assert.Equal(t, state.Fingerprint, restored.Fingerprint)
	assert.Equal(t, state.RunID, restored.RunID)
	assert.Equal(t, state.Attempted, restored.Attempted)
	assert.Equal(t, state.Applied, restored.Applied)
	assert.Equal(t, state.Failed, restored.Failed)
	assert.Equal(t, state.Derived, restored.Derived)
	assert.Equal(t, state.Diagnostics, restored.Diagnostics)
	//
	rmd, err := restored.TableMetadata()
	require.NoError(t, err)
	//
	f, ok := rmd.Float("f_ref")
	assert.True(t, ok)
	assert.Equal(t, 20.0, f)
	//
	p, ok := rmd.Provenance("chirp_mass", "method")
	assert.True(t, ok)
	assert.Equal(t, "exact", p)
}

func Test_Checkpoint_02(t *testing.T) {
	tbl, _ := table.FromMap(map[string][]float64{"x": {1}})
	state, err := NewState("fp", tbl, table.NewMetadata(nil))
	require.NoError(t, err)
	//
	bytes, err := MarshalState(state)
	require.NoError(t, err)
	assert.True(t, IsCheckpoint(bytes))
	assert.False(t, IsCheckpoint([]byte("gwckpt")))
	assert.False(t, IsCheckpoint([]byte(`{"x": [1]}`)))
	// Truncated files are rejected
	for _, n := range []int{4, 12, len(bytes) - 1} {
		_, err := UnmarshalState(bytes[:n])
		assert.Error(t, err, "truncated at %d", n)
	}
}

func Test_Checkpoint_03(t *testing.T) {
	tbl, _ := table.FromMap(map[string][]float64{"x": {1}})
	state, _ := NewState("fp", tbl, table.NewMetadata(nil))
	bytes, err := MarshalState(state)
	require.NoError(t, err)
	// Bump the major version
	bytes[9]++
	//
	_, err = UnmarshalState(bytes)
	assert.ErrorContains(t, err, "incompatible")
}

func Test_Checkpoint_04(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "missing.ckpt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func Test_Checkpoint_05(t *testing.T) {
	tbl, _ := table.FromMap(map[string][]float64{"x": {1}})
	state, _ := NewState("fp", tbl, table.NewMetadata(nil))
	header := NewHeader()
	require.NoError(t, header.SetMetaData(state))
	//
	bytes, err := header.MarshalBinary()
	require.NoError(t, err)
	// Column count far exceeding the remaining bytes
	for _, ncols := range []uint32{math.MaxUint32, 1 << 28, 2} {
		data := binary.BigEndian.AppendUint32(append([]byte{}, bytes...), ncols)
		data = append(data, 0, 1, 'x')
		//
		_, err := UnmarshalState(data)
		assert.ErrorContains(t, err, "malformed", "column count %d", ncols)
	}
}
