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
	"io"
)

// IDENTIFIER is the 8-byte identifier which begins every checkpoint file.
var IDENTIFIER [8]byte = [8]byte{'g', 'w', 'c', 'k', 'p', 't', '0', '0'}

// MAJOR_VERSION of the checkpoint format.  Files with a different major
// version cannot be read.
const MAJOR_VERSION uint16 = 1

// MINOR_VERSION of the checkpoint format.  Files with a smaller (or equal)
// minor version can be read.
const MINOR_VERSION uint16 = 0

var errMalformed = errors.New("malformed checkpoint file")

// Header provides a structured header for the checkpoint file format.  In
// particular, it supports versioning and embedded (JSON) metadata describing
// the resolution which was checkpointed.
type Header struct {
	Identifier   [8]byte
	MajorVersion uint16
	MinorVersion uint16
	MetaData     []byte
}

// NewHeader constructs a header for the current version of the format.
func NewHeader() Header {
	return Header{IDENTIFIER, MAJOR_VERSION, MINOR_VERSION, nil}
}

// GetMetaData unmarshals the metadata bytes as JSON into the given value.
func (p *Header) GetMetaData(value any) error {
	if len(p.MetaData) == 0 {
		return errors.New("checkpoint missing metadata")
	}
	//
	return json.Unmarshal(p.MetaData, value)
}

// SetMetaData sets the metadata bytes for this header, using a JSON encoding
// of the given value.  If this fails, the metadata bytes are unaffected.
func (p *Header) SetMetaData(value any) error {
	bytes, err := json.Marshal(value)
	// Check for error
	if err != nil {
		return err
	}
	// success
	p.MetaData = bytes
	//
	return nil
}

// MarshalBinary converts the header into a sequence of bytes.
func (p *Header) MarshalBinary() ([]byte, error) {
	var (
		buffer     bytes.Buffer
		majorBytes [2]byte
		minorBytes [2]byte
		metaLength [4]byte
	)
	// Marshall version numbers
	binary.BigEndian.PutUint16(majorBytes[:], p.MajorVersion)
	binary.BigEndian.PutUint16(minorBytes[:], p.MinorVersion)
	binary.BigEndian.PutUint32(metaLength[:], uint32(len(p.MetaData)))
	// Write identifier
	buffer.Write(p.Identifier[:])
	buffer.Write(majorBytes[:])
	buffer.Write(minorBytes[:])
	buffer.Write(metaLength[:])
	buffer.Write(p.MetaData)
	// Done
	return buffer.Bytes(), nil
}

// UnmarshalBinary initialises this header from a given buffer.  This should
// match exactly the encoding above.
func (p *Header) UnmarshalBinary(buffer *bytes.Buffer) error {
	var (
		majorBytes      [2]byte
		minorBytes      [2]byte
		metaLengthBytes [4]byte
	)
	//
	if err := readFull(buffer, p.Identifier[:]); err != nil {
		return err
	} else if err := readFull(buffer, majorBytes[:]); err != nil {
		return err
	} else if err := readFull(buffer, minorBytes[:]); err != nil {
		return err
	} else if err := readFull(buffer, metaLengthBytes[:]); err != nil {
		return err
	}
	//
	metaLength := binary.BigEndian.Uint32(metaLengthBytes[:])
	//
	if uint64(metaLength) > uint64(buffer.Len()) {
		return errMalformed
	}
	//
	metaBytes := make([]byte, metaLength)
	//
	if err := readFull(buffer, metaBytes); err != nil {
		return err
	}
	// Finally assign everything over
	p.MajorVersion = binary.BigEndian.Uint16(majorBytes[:])
	p.MinorVersion = binary.BigEndian.Uint16(minorBytes[:])
	p.MetaData = metaBytes
	// Done
	return nil
}

// IsCompatible determines whether a checkpoint with this header can be read
// by this version.
func (p *Header) IsCompatible() bool {
	return p.Identifier == IDENTIFIER &&
		p.MajorVersion == MAJOR_VERSION &&
		p.MinorVersion <= MINOR_VERSION
}

func readFull(buffer *bytes.Buffer, data []byte) error {
	if _, err := io.ReadFull(buffer, data); err != nil {
		return errMalformed
	}
	//
	return nil
}
