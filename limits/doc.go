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

// Package limits is the catalog of structural limits enforced by the
// target platform on write requests.
//
// Thresholds are fixed by the platform and must match it exactly; a request
// that passes pre-flight validation against this catalog is accepted by the
// platform's own size checks. Character lengths are counted in Unicode code
// points.
//
//	if utf8.RuneCountInString(url) > limits.Max(limits.URL) {
//	    // too long
//	}
package limits
