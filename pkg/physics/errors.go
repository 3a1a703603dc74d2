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
package physics

import (
	"errors"
	"fmt"
)

// ErrUnknownMethod is returned when a named method (e.g. a spin evolution
// scheme or a waveform approximant) is not supported.  Callers performing
// best-effort derivations can detect this with errors.Is, and skip only the
// affected family of quantities.
var ErrUnknownMethod = errors.New("unknown method")

// MethodError identifies which kind of method was not recognised.
type MethodError struct {
	// Kind of method (e.g. "spin evolution", "approximant")
	Kind string
	// Name of the method requested
	Method string
}

// NewMethodError constructs a new error for an unknown method of a given kind.
func NewMethodError(kind string, method string) *MethodError {
	return &MethodError{kind, method}
}

func (e *MethodError) Error() string {
	return fmt.Sprintf("unknown %s method \"%s\"", e.Kind, e.Method)
}

// Unwrap allows this error to be matched against ErrUnknownMethod.
func (e *MethodError) Unwrap() error {
	return ErrUnknownMethod
}
