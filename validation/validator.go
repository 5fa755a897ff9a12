// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package validation

import (
	"fmt"
	"iter"
	"log/slog"
	"time"

	"rivaas.dev/preflight/request"
)

const (
	opValidate        = "validate"
	opValidateOrFix   = "validate_or_fix"
	opValidateOrThrow = "validate_or_throw"
	opValidateBlocks  = "validate_blocks"

	outcomeValid   = "valid"
	outcomeInvalid = "invalid"
	outcomeFixed   = "fixed"
	outcomeAborted = "aborted"
)

// Validator checks requests against the platform limits and repairs long
// rich text on demand.
//
// A Validator holds only its immutable configuration and is safe for
// concurrent use by multiple goroutines.
//
// Example:
//
//	v := validation.MustNew(validation.WithLogger(logger))
//
//	res := v.Validate(page)
//	if res.HasErrors() {
//	    fmt.Println(res.Summary())
//	}
type Validator struct {
	cfg      Config
	logger   *slog.Logger
	recorder Recorder
}

// New creates a [Validator] with the given options.
//
// Example:
//
//	v, err := validation.New(
//	    validation.WithAutoSplitLongText(false),
//	    validation.WithRecorder(recorder),
//	)
//	if err != nil {
//	    return fmt.Errorf("failed to create validator: %w", err)
//	}
func New(opts ...Option) (*Validator, error) {
	cfg := newConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &Validator{
		cfg:      cfg.engine,
		logger:   cfg.logger,
		recorder: cfg.recorder,
	}, nil
}

// MustNew creates a [Validator] with the given options.
// Panics if configuration is invalid.
func MustNew(opts ...Option) *Validator {
	v, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("validation.MustNew: %v", err))
	}

	return v
}

// Config returns the validator's configuration.
func (v *Validator) Config() Config {
	return v.cfg
}

// Validate reports every violation in req without repairing anything. It
// never fails; a nil or unknown request has no fields and is valid.
func (v *Validator) Validate(req request.Request) *Result {
	start := time.Now()
	res := newResult(detect(Walk(req)))
	v.finish(opValidate, res.violations, start)

	return res
}

// ValidateBlocks reports every violation in a block list rooted at path.
func (v *Validator) ValidateBlocks(path string, blocks []request.Block) *Result {
	start := time.Now()
	res := newResult(detect(WalkBlocks(path, blocks)))
	v.finish(opValidateBlocks, res.violations, start)

	return res
}

// ValidateOrThrow fails with an [*Error] on the first violation of any
// kind in a block list rooted at path. Nothing is repaired.
//
// Example:
//
//	if err := v.ValidateOrThrow("children", blocks); err != nil {
//	    return err
//	}
func (v *Validator) ValidateOrThrow(path string, blocks []request.Block) error {
	start := time.Now()
	for f := range WalkBlocks(path, blocks) {
		if found := check(nil, f); len(found) > 0 {
			v.abort(opValidateOrThrow, found[0], start)
			return &Error{Violation: found[0]}
		}
	}
	v.recorder.RecordValidation(opValidateOrThrow, outcomeValid, nil, time.Since(start))

	return nil
}

func detect(fields iter.Seq[Field]) []Violation {
	var out []Violation
	for f := range fields {
		out = check(out, f)
	}

	return out
}

func (v *Validator) finish(op string, violations []Violation, start time.Time) {
	elapsed := time.Since(start)
	outcome := outcomeValid
	if len(violations) > 0 {
		outcome = outcomeInvalid
	}
	v.recorder.RecordValidation(op, outcome, violations, elapsed)
	v.logger.Debug("validation completed",
		"operation", op,
		"violations", len(violations),
		"duration", elapsed,
	)
}

func (v *Validator) abort(op string, viol Violation, start time.Time) {
	v.recorder.RecordValidation(op, outcomeAborted, []Violation{viol}, time.Since(start))
	v.logger.Warn("validation aborted",
		"operation", op,
		"field", viol.Field,
		"kind", viol.Kind.String(),
		"current", viol.CurrentValue,
		"limit", viol.Limit,
	)
}
