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

// Package validation checks write requests against the platform's
// structural limits before they are sent, and repairs what can be repaired
// mechanically.
//
// # Getting Started
//
// The package-level functions use a validator with [DefaultConfig]:
//
//	res := validation.Validate(page)
//	for _, v := range res.Violations() {
//		fmt.Printf("%s: %s\n", v.Field, v.Message)
//	}
//
// For more control, create a [Validator] with [New] or [MustNew]:
//
//	v := validation.MustNew(
//		validation.WithAutoSplitLongText(false),
//		validation.WithLogger(logger),
//	)
//
// # Modes
//
// [Validator.Validate] reports every violation and never fails.
//
// [Validator.ValidateOrFix] returns the request itself when it is valid.
// Rich text segments whose content is too long are split into segments
// within the limit, keeping formatting and links; any other violation
// fails the call with an [*Error] naming it.
//
// [Validator.ValidateOrThrow] checks a raw block list, as appended to an
// existing container, and fails on the first violation of any kind.
//
// # Field paths
//
// Violations name the offending value by path. Property names are used as
// is unless they contain path syntax, in which case they are quoted in
// brackets; wire keys are rendered in camelCase:
//
//	title.title[0]
//	Tags.multiSelect
//	["Site [old]"].url
//	children[3].paragraph.richText[1].href
//	children[0].toggle.children[2].quote.richText[0]
//
// Fields are visited in document order: property maps in insertion order
// and block trees depth-first, a block's subtree before its next sibling.
//
// # Error Handling
//
// Failures wrap [ErrValidation]:
//
//	_, err := v.ValidateOrFix(page)
//	if errors.Is(err, validation.ErrValidation) {
//		var verr *validation.Error
//		errors.As(err, &verr)
//		fmt.Println(verr.Violation.Field)
//	}
//
// [Error] implements HTTPStatus, Code and Details, the interfaces used by
// rivaas.dev/preflight/errors formatters.
//
// # Thread Safety
//
// [Validator] is safe for concurrent use.
package validation
