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
	"time"
	"unicode/utf8"

	"rivaas.dev/preflight/limits"
	"rivaas.dev/preflight/request"
)

// ValidateOrFix returns req unchanged when it has no violations. Otherwise
// it walks the violations in field order and fails with an [*Error] at the
// first one it may not repair; only ContentTooLong on rich text content
// is repairable, and only while AutoSplitLongText is on. When every
// violation is repairable it returns a deep copy of req with each long
// segment replaced in place by its splits. The caller's value is never
// modified.
//
// Example:
//
//	fixed, err := v.ValidateOrFix(page)
//	if err != nil {
//	    var verr *validation.Error
//	    if errors.As(err, &verr) {
//	        log.Printf("cannot send: %s", verr.Violation.Message)
//	    }
//	    return err
//	}
//	send(fixed)
func (v *Validator) ValidateOrFix(req request.Request) (request.Request, error) {
	start := time.Now()
	if req == nil {
		return nil, fmt.Errorf("%w: nil request", ErrUnsupportedRequest)
	}

	// Repair targets: walk position of the field -> segment indexes.
	var (
		violations []Violation
		targets    map[int][]int
	)
	limit := limits.Max(limits.RichTextContent)
	pos := 0
	for f := range Walk(req) {
		found := check(nil, f)
		for _, viol := range found {
			if !v.repairable(viol) {
				v.abort(opValidateOrFix, viol, start)
				return nil, &Error{Violation: viol}
			}
		}
		if len(found) > 0 {
			violations = append(violations, found...)
			if targets == nil {
				targets = make(map[int][]int)
			}
			targets[pos] = longSegments(f.RichText, limit)
		}
		pos++
	}
	if len(violations) == 0 {
		v.recorder.RecordValidation(opValidateOrFix, outcomeValid, nil, time.Since(start))
		return req, nil
	}

	fixed := req.CloneRequest()
	pos = 0
	for f := range Walk(fixed) {
		elems, ok := targets[pos]
		pos++
		if !ok {
			continue
		}
		list, splits, err := splitList(f.Path, f.RichText, elems, limit)
		if err != nil {
			return nil, err
		}
		*f.ref = list
		for _, sp := range splits {
			v.recorder.RecordSplit(sp.field, sp.segments)
			v.logger.Debug("rich text split", "field", sp.field, "segments", sp.segments)
		}
	}

	v.recorder.RecordValidation(opValidateOrFix, outcomeFixed, violations, time.Since(start))

	return fixed, nil
}

func (v *Validator) repairable(viol Violation) bool {
	return viol.Kind == ContentTooLong && viol.AutoFixAvailable && v.cfg.AutoSplitLongText
}

// longSegments returns the indexes of the text segments in list whose
// content exceeds limit.
func longSegments(list []request.RichText, limit int) []int {
	var out []int
	for i, seg := range list {
		if seg.IsText() && utf8.RuneCountInString(seg.Text.Content) > limit {
			out = append(out, i)
		}
	}

	return out
}

// Fix is [Validator.ValidateOrFix] for a concrete request type.
//
// Example:
//
//	page, err := validation.Fix(v, page)
func Fix[R request.Request](v *Validator, req R) (R, error) {
	out, err := v.ValidateOrFix(req)
	if err != nil {
		var zero R
		return zero, err
	}

	return out.(R), nil
}
