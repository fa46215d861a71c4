// Copyright 2026 Conductor OSS
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.

package unmhtml

import "strings"

// resolveResource finds the payload a markup reference points at. References
// in the HTML rarely match Content-Location values exactly (relative paths
// against absolute URLs, query strings, fragments), so matching is tiered:
//
//  1. exact key match,
//  2. a key ending with the reference, or the reference ending with the
//     key's last path segment (matches ./style.css against a stored
//     https://example.com/css/style.css and vice versa),
//  3. exact key match after stripping any ?query suffix.
//
// The tiers are deliberately ordered narrow to broad; first match wins.
// This is a heuristic, not URL normalization, and short references can match
// an unrelated key's suffix on adversarial input.
func resolveResource(reference string, resources resourceIndex) ([]byte, bool) {
	if data, ok := resources.lookup(reference); ok {
		return data, true
	}

	for _, e := range resources {
		segment := e.location[strings.LastIndex(e.location, "/")+1:]
		if strings.HasSuffix(e.location, reference) ||
			(segment != "" && strings.HasSuffix(reference, segment)) {
			return e.data, true
		}
	}

	if i := strings.IndexByte(reference, '?'); i >= 0 {
		if data, ok := resources.lookup(reference[:i]); ok {
			return data, true
		}
	}

	return nil, false
}
