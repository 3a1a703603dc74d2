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
package diag

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Level indicates the severity of a diagnostic.
type Level uint8

const (
	// DEBUG diagnostics record choices which are made silently by default.
	DEBUG Level = iota
	// INFO diagnostics record decisions which the user may wish to know.
	INFO
	// WARNING diagnostics record unexpected data or configuration which was
	// resolved automatically.
	WARNING
	// ERROR diagnostics record failures which prevented some quantity being
	// computed.
	ERROR
)

func (l Level) String() string {
	switch l {
	case DEBUG:
		return "debug"
	case INFO:
		return "info"
	case WARNING:
		return "warning"
	default:
		return "error"
	}
}

// Diagnostic codes used throughout.
const (
	RULE_CHOICE       = "rule-choice"
	RULE_FAILED       = "rule-failed"
	UNKNOWN_METHOD    = "unknown-method"
	ROWS_REMOVED      = "rows-removed"
	MASS_RATIO_INVERT = "mass-ratio-inverted"
	MASS_SWAP         = "mass-swap"
	NSBH_RECLASSIFIED = "nsbh-reclassified"
	CONFIG_ADJUSTED   = "config-adjusted"
	DEFAULT_VALUE     = "default-value"
	ZERO_SPIN_ADDED   = "zero-spin-added"
	FIT_EXTRAPOLATION = "fit-extrapolation"
	CHECKPOINT        = "checkpoint"
	REGENERATE        = "regenerate"
	CLASSIFICATION    = "classification"
)

// Record is a structured diagnostic naming the parameters it affects, and the
// decision which was taken.
type Record struct {
	Level   Level    `json:"level"`
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Params  []string `json:"params,omitempty"`
}

func (r Record) String() string {
	if len(r.Params) == 0 {
		return fmt.Sprintf("[%s] %s: %s", r.Level, r.Code, r.Message)
	}
	//
	return fmt.Sprintf("[%s] %s (%s): %s", r.Level, r.Code, strings.Join(r.Params, ","), r.Message)
}

// Sink receives diagnostics as they are reported.
type Sink interface {
	Emit(Record)
}

// Report accumulates diagnostics in the order they were reported, forwarding
// each to an optional sink.
type Report struct {
	records []Record
	sink    Sink
}

// NewReport constructs an empty report which forwards to a given sink (which
// may be nil).
func NewReport(sink Sink) *Report {
	return &Report{nil, sink}
}

// Add a diagnostic to this report.
func (p *Report) Add(level Level, code string, params []string, format string, args ...any) {
	r := Record{level, code, fmt.Sprintf(format, args...), params}
	p.records = append(p.records, r)
	//
	if p.sink != nil {
		p.sink.Emit(r)
	}
}

// Debug reports a debug diagnostic.
func (p *Report) Debug(code string, params []string, format string, args ...any) {
	p.Add(DEBUG, code, params, format, args...)
}

// Info reports an informational diagnostic.
func (p *Report) Info(code string, params []string, format string, args ...any) {
	p.Add(INFO, code, params, format, args...)
}

// Warn reports a warning diagnostic.
func (p *Report) Warn(code string, params []string, format string, args ...any) {
	p.Add(WARNING, code, params, format, args...)
}

// Error reports an error diagnostic.
func (p *Report) Error(code string, params []string, format string, args ...any) {
	p.Add(ERROR, code, params, format, args...)
}

// Restore appends previously reported diagnostics (e.g. from a checkpoint)
// without forwarding them to the sink.
func (p *Report) Restore(records []Record) {
	p.records = append(p.records, records...)
}

// Records returns all diagnostics reported so far.
func (p *Report) Records() []Record {
	return p.records
}

// Filter returns all diagnostics with a given code.
func (p *Report) Filter(code string) []Record {
	var records []Record
	//
	for _, r := range p.records {
		if r.Code == code {
			records = append(records, r)
		}
	}
	//
	return records
}

// ===================================================================
// Logrus Sink
// ===================================================================

// LogrusSink emits diagnostics through logrus, using structured fields for the
// code and affected parameters.
type LogrusSink struct {
	logger *log.Logger
}

// NewLogrusSink constructs a sink for a given logger.  A nil logger means the
// standard logrus logger.
func NewLogrusSink(logger *log.Logger) LogrusSink {
	if logger == nil {
		logger = log.StandardLogger()
	}
	//
	return LogrusSink{logger}
}

// Emit a diagnostic record.
func (s LogrusSink) Emit(r Record) {
	entry := s.logger.WithField("code", r.Code)
	//
	if len(r.Params) > 0 {
		entry = entry.WithField("params", strings.Join(r.Params, ","))
	}
	//
	switch r.Level {
	case DEBUG:
		entry.Debug(r.Message)
	case INFO:
		entry.Info(r.Message)
	case WARNING:
		entry.Warn(r.Message)
	default:
		entry.Error(r.Message)
	}
}
