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
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/consensys/go-gwconvert/pkg/diag"
	"github.com/consensys/go-gwconvert/pkg/table"
	"github.com/google/uuid"
)

// State captures everything needed to restore a completed resolution without
// invoking any rules.
type State struct {
	// Fingerprint of the configuration used for the resolution
	Fingerprint string `json:"fingerprint"`
	// Identifies the run which produced this checkpoint
	RunID uuid.UUID `json:"run_id"`
	// Time at which this checkpoint was written
	Created time.Time `json:"created"`
	// Rules attempted during the resolution
	Attempted []string `json:"attempted"`
	// Number of rules successfully applied during the resolution
	Applied uint `json:"applied"`
	// Number of rules which failed during the resolution
	Failed uint `json:"failed"`
	// Number of columns derived during the resolution
	Derived uint `json:"derived"`
	// Metadata of the resolved table (JSON)
	Metadata json.RawMessage `json:"metadata"`
	// Diagnostics reported during the resolution
	Diagnostics []diag.Record `json:"diagnostics"`
	// Resolved table
	Table *table.Table `json:"-"`
}

// NewState constructs a new state with a fresh run identifier.
func NewState(fingerprint string, tbl *table.Table, md table.Metadata) (State, error) {
	bytes, err := md.ToJson()
	if err != nil {
		return State{}, err
	}
	//
	return State{
		Fingerprint: fingerprint,
		RunID:       uuid.New(),
		Created:     time.Now().UTC(),
		Metadata:    bytes,
		Table:       tbl,
	}, nil
}

// TableMetadata returns the metadata of the resolved table.
func (p *State) TableMetadata() (table.Metadata, error) {
	return table.MetadataFromJson(p.Metadata)
}

// IsCheckpoint checks whether the given data begins with the checkpoint
// identifier.
func IsCheckpoint(data []byte) bool {
	var (
		identifier [8]byte
		buffer     = bytes.NewBuffer(data)
	)
	//
	if _, err := io.ReadFull(buffer, identifier[:]); err != nil {
		return false
	}
	//
	return identifier == IDENTIFIER
}

// Write a state to a given file.  The file is written alongside the target
// and then renamed over it, such that an interrupted write never leaves a
// truncated checkpoint behind.
func Write(filename string, state State) error {
	bytes, err := MarshalState(state)
	if err != nil {
		return err
	}
	//
	tmp, err := os.CreateTemp(filepath.Dir(filename), filepath.Base(filename)+".*")
	if err != nil {
		return err
	}
	//
	if _, err = tmp.Write(bytes); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		//
		return err
	} else if err = tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	//
	return os.Rename(tmp.Name(), filename)
}

// Read a state from a given file.
func Read(filename string) (State, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return State{}, err
	}
	//
	return UnmarshalState(data)
}

// MarshalState converts a state into a sequence of bytes.  Sample values are
// written as their raw IEEE 754 bits, and therefore survive exactly.
func MarshalState(state State) ([]byte, error) {
	var (
		buffer bytes.Buffer
		header = NewHeader()
	)
	//
	if state.Table == nil {
		return nil, errors.New("checkpoint without table")
	} else if err := header.SetMetaData(state); err != nil {
		return nil, err
	}
	//
	headerBytes, err := header.MarshalBinary()
	if err != nil {
		return nil, err
	}
	//
	buffer.Write(headerBytes)
	//
	if err := writeColumns(state.Table, &buffer); err != nil {
		return nil, err
	}
	//
	return buffer.Bytes(), nil
}

// UnmarshalState initialises a state from a given sequence of bytes.  This
// should match exactly the encoding above.
func UnmarshalState(data []byte) (State, error) {
	var (
		buffer = bytes.NewBuffer(data)
		header Header
		state  State
	)
	//
	if err := header.UnmarshalBinary(buffer); err != nil {
		return State{}, err
	} else if !header.IsCompatible() {
		return State{}, fmt.Errorf("incompatible checkpoint (version %d.%d)", header.MajorVersion, header.MinorVersion)
	} else if err := header.GetMetaData(&state); err != nil {
		return State{}, err
	}
	//
	tbl, err := readColumns(buffer)
	if err != nil {
		return State{}, err
	}
	//
	state.Table = tbl
	//
	return state, nil
}

func writeColumns(tbl *table.Table, buf io.Writer) error {
	names := tbl.Names()
	// Write column count
	if err := binary.Write(buf, binary.BigEndian, uint32(len(names))); err != nil {
		return err
	}
	// Write column names and lengths
	for _, name := range names {
		nameBytes := []byte(name)
		//
		if err := binary.Write(buf, binary.BigEndian, uint16(len(nameBytes))); err != nil {
			return err
		} else if _, err := buf.Write(nameBytes); err != nil {
			return err
		} else if err := binary.Write(buf, binary.BigEndian, uint32(tbl.Height())); err != nil {
			return err
		}
	}
	// Write column data
	for _, name := range names {
		data, _ := tbl.Column(name)
		bits := make([]uint64, len(data))
		//
		for i, v := range data {
			bits[i] = math.Float64bits(v)
		}
		//
		if err := binary.Write(buf, binary.BigEndian, bits); err != nil {
			return err
		}
	}
	//
	return nil
}

func readColumns(buf *bytes.Buffer) (*table.Table, error) {
	var ncols uint32
	//
	if err := binary.Read(buf, binary.BigEndian, &ncols); err != nil {
		return nil, errMalformed
	} else if uint64(ncols)*6 > uint64(buf.Len()) {
		// Each column entry occupies at least six bytes
		return nil, errMalformed
	}
	//
	var (
		names   = make([]string, ncols)
		lengths = make([]uint32, ncols)
	)
	//
	for i := range names {
		var nameLen uint16
		//
		if err := binary.Read(buf, binary.BigEndian, &nameLen); err != nil {
			return nil, errMalformed
		}
		//
		nameBytes := make([]byte, nameLen)
		//
		if err := readFull(buf, nameBytes); err != nil {
			return nil, err
		} else if err := binary.Read(buf, binary.BigEndian, &lengths[i]); err != nil {
			return nil, errMalformed
		}
		//
		names[i] = string(nameBytes)
	}
	//
	tbl := table.NewTable()
	//
	for i, name := range names {
		if uint64(lengths[i])*8 > uint64(buf.Len()) {
			return nil, errMalformed
		}
		//
		bits := make([]uint64, lengths[i])
		//
		if err := binary.Read(buf, binary.BigEndian, bits); err != nil {
			return nil, errMalformed
		}
		//
		data := make([]float64, len(bits))
		//
		for j, b := range bits {
			data[j] = math.Float64frombits(b)
		}
		//
		if err := tbl.Add(name, data); err != nil {
			return nil, err
		}
	}
	//
	return tbl, nil
}
