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
	"sync"

	"rivaas.dev/preflight/request"
)

// Package-level validator state for the convenience functions.
var (
	defaultValidator     *Validator
	defaultValidatorOnce sync.Once
)

// getDefaultValidator returns the default [Validator], creating it if necessary.
func getDefaultValidator() *Validator {
	defaultValidatorOnce.Do(func() {
		defaultValidator = MustNew()
	})

	return defaultValidator
}

// Validate reports the violations of req using a validator with
// [DefaultConfig].
func Validate(req request.Request) *Result {
	return getDefaultValidator().Validate(req)
}

// ValidateOrFix repairs req using a validator with [DefaultConfig].
func ValidateOrFix(req request.Request) (request.Request, error) {
	return getDefaultValidator().ValidateOrFix(req)
}

// ValidateOrThrow checks a block list using a validator with [DefaultConfig].
func ValidateOrThrow(path string, blocks []request.Block) error {
	return getDefaultValidator().ValidateOrThrow(path, blocks)
}
