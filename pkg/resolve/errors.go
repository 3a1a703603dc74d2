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
package resolve

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is matched by every lookup failure, whether a parameter was
// never supplied or simply cannot be derived.
var ErrNotFound = errors.New("parameter not found")

// ErrInvalidConfig is matched by every configuration error.
var ErrInvalidConfig = errors.New("invalid configuration")

// ErrNoSamples is returned when a table has (or is left with) no samples.
var ErrNoSamples = errors.New("no samples remain")

// LookupError is returned when a parameter is neither present nor derivable.
type LookupError struct {
	Name string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("unknown parameter %s", e.Name)
}

// Is allows a lookup error to be matched against ErrNotFound.
func (e *LookupError) Is(target error) bool {
	return target == ErrNotFound
}

// ConfigError identifies a set of configuration options which cannot be used
// together (or which are unsupported).
type ConfigError struct {
	// Options involved
	Options []string
	// Explanation
	Reason string
	// Underlying cause (if any)
	Cause error
}

func (e *ConfigError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid configuration (%s): %s: %v", strings.Join(e.Options, ", "), e.Reason, e.Cause)
	}
	//
	return fmt.Sprintf("invalid configuration (%s): %s", strings.Join(e.Options, ", "), e.Reason)
}

// Unwrap returns both the generic configuration error, and the underlying
// cause (if any).
func (e *ConfigError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrInvalidConfig, e.Cause}
	}
	//
	return []error{ErrInvalidConfig}
}
