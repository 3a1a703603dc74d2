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
package termio

import (
	"bytes"
	"strings"
	"testing"
)

func Test_TablePrinter_01(t *testing.T) {
	var (
		buf bytes.Buffer
		tp  = NewTablePrinter(2, 2)
	)
	//
	tp.Set(0, 0, "a")
	tp.Set(1, 0, "1")
	tp.SetRow(1, "bbb", "22")
	tp.SetEscape(0, 0, NewAnsiEscape().FgColour(TERM_RED).Build())
	tp.AnsiEscapes(false)
	tp.Print(&buf)
	//
	if expected := "   a |  1 |\n bbb | 22 |\n"; buf.String() != expected {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func Test_TablePrinter_02(t *testing.T) {
	var (
		buf bytes.Buffer
		tp  = NewTablePrinter(1, 1)
	)
	//
	tp.Set(0, 0, "parameter")
	tp.SetMaxWidths(5)
	tp.SetEscape(0, 0, BoldAnsiEscape().Build())
	tp.Print(&buf)
	//
	out := buf.String()
	//
	if !strings.Contains(out, " par..") {
		t.Errorf("cell not truncated: %q", out)
	} else if !strings.HasPrefix(out, BoldAnsiEscape().Build()) {
		t.Errorf("escape not printed: %q", out)
	} else if tp.Get(0, 0) != "parameter" || tp.Height() != 1 {
		t.Errorf("cell contents modified")
	}
}
