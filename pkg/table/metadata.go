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
	"slices"
)

// PROVENANCE is the metadata key under which derivation provenance is held.
const PROVENANCE = "provenance"

// Metadata is a side mapping of scalar configuration values which travels
// alongside a table, such as the reference frequency or the cosmology used.
// It also records provenance, namely which fit or method produced a given
// derived column.  Values are restricted to those which survive a round trip
// through JSON.
type Metadata struct {
	items map[string]any
}

// NewMetadata constructs a new metadata map wrapping the given items.
func NewMetadata(items map[string]any) Metadata {
	if items == nil {
		items = make(map[string]any)
	}
	//
	return Metadata{items}
}

// MetadataFromJson attempts to construct metadata from an array of JSON
// formatted bytes.
func MetadataFromJson(js []byte) (Metadata, error) {
	var jsonMap map[string]any
	//
	if len(js) == 0 {
		return NewMetadata(nil), nil
	} else if err := json.Unmarshal(js, &jsonMap); err != nil {
		return Metadata{nil}, err
	}
	//
	return NewMetadata(jsonMap), nil
}

// ToJson converts this metadata into an array of JSON formatted bytes.
func (p *Metadata) ToJson() ([]byte, error) {
	return json.Marshal(p.items)
}

// IsEmpty checks whether this metadata is empty or not.
func (p *Metadata) IsEmpty() bool {
	return len(p.items) == 0
}

// Keys returns the (sorted) list of keys in this map.
func (p *Metadata) Keys() []string {
	var keys []string
	//
	for k := range p.items {
		keys = append(keys, k)
	}
	// Sort keys for determinism
	slices.Sort(keys)
	//
	return keys
}

// Has checks whether a given key is present.
func (p *Metadata) Has(key string) bool {
	_, ok := p.items[key]
	return ok
}

// String attempts to retrieve an item as a string.  This can fail in two ways:
// either no such item exists; or, an item exists but has the wrong type.
func (p *Metadata) String(key string) (string, bool) {
	if val, ok := p.items[key]; ok {
		sval, ok := val.(string)
		return sval, ok
	}
	// Failure
	return "", false
}

// Float attempts to retrieve an item as a floating point number.
func (p *Metadata) Float(key string) (float64, bool) {
	if val, ok := p.items[key]; ok {
		switch v := val.(type) {
		case float64:
			return v, true
		case int:
			return float64(v), true
		}
	}
	// Failure
	return 0, false
}

// SetString assigns a string value.
func (p *Metadata) SetString(key string, val string) {
	p.ensure()
	p.items[key] = val
}

// SetFloat assigns a floating point value.
func (p *Metadata) SetFloat(key string, val float64) {
	p.ensure()
	p.items[key] = val
}

// RecordProvenance records how a given parameter was derived, for example
// which numerical relativity fit was used.
func (p *Metadata) RecordProvenance(param string, key string, val string) {
	p.ensure()
	//
	prov, ok := p.items[PROVENANCE].(map[string]any)
	if !ok {
		prov = make(map[string]any)
		p.items[PROVENANCE] = prov
	}
	//
	entry, ok := prov[param].(map[string]any)
	if !ok {
		entry = make(map[string]any)
		prov[param] = entry
	}
	//
	entry[key] = val
}

// Provenance returns the provenance entry recorded for a given key of a given
// parameter, if one exists.
func (p *Metadata) Provenance(param string, key string) (string, bool) {
	if prov, ok := p.items[PROVENANCE].(map[string]any); ok {
		if entry, ok := prov[param].(map[string]any); ok {
			val, ok := entry[key].(string)
			return val, ok
		}
	}
	//
	return "", false
}

// ForgetProvenance removes any provenance recorded for a given parameter.
func (p *Metadata) ForgetProvenance(param string) {
	if prov, ok := p.items[PROVENANCE].(map[string]any); ok {
		delete(prov, param)
	}
}

// Clone returns a deep copy of this metadata, obtained via JSON.
func (p *Metadata) Clone() Metadata {
	bytes, err := p.ToJson()
	if err != nil {
		panic(err)
	}
	//
	md, err := MetadataFromJson(bytes)
	if err != nil {
		panic(err)
	}
	//
	return md
}

func (p *Metadata) ensure() {
	if p.items == nil {
		p.items = make(map[string]any)
	}
}
