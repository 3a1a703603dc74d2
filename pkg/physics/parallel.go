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
	"golang.org/x/sync/errgroup"
)

// Vectorise applies a given (scalar) function element-wise over one or more
// equal-length inputs.
func Vectorise(fn func(args ...float64) float64, inputs ...[]float64) []float64 {
	if len(inputs) == 0 {
		return nil
	}
	//
	var (
		n    = len(inputs[0])
		out  = make([]float64, n)
		args = make([]float64, len(inputs))
	)
	//
	for i := 0; i < n; i++ {
		for j, col := range inputs {
			args[j] = col[i]
		}
		//
		out[i] = fn(args...)
	}
	//
	return out
}

// parChunks splits the range [0,n) into (at most) npool contiguous chunks and
// processes each on its own go-routine.  With npool <= 1 everything happens on
// the calling go-routine.
func parChunks(npool uint, n int, fn func(lo, hi int) error) error {
	if npool <= 1 || n < 2 {
		return fn(0, n)
	}
	//
	var (
		g     errgroup.Group
		width = (n + int(npool) - 1) / int(npool)
	)
	//
	g.SetLimit(int(npool))
	//
	for lo := 0; lo < n; lo += width {
		hi := min(lo+width, n)
		//
		g.Go(func() error {
			return fn(lo, hi)
		})
	}
	//
	return g.Wait()
}

// parVectorise is the parallel analogue of Vectorise.
func parVectorise(npool uint, fn func(args ...float64) float64, inputs ...[]float64) []float64 {
	n := len(inputs[0])
	out := make([]float64, n)
	//
	_ = parChunks(npool, n, func(lo, hi int) error {
		args := make([]float64, len(inputs))
		//
		for i := lo; i < hi; i++ {
			for j, col := range inputs {
				args[j] = col[i]
			}
			//
			out[i] = fn(args...)
		}
		//
		return nil
	})
	//
	return out
}
