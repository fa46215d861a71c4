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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testIndex(entries ...resourceEntry) resourceIndex {
	return resourceIndex(entries)
}

func TestResolveResourceExactMatch(t *testing.T) {
	idx := testIndex(
		resourceEntry{location: "https://example.com/style.css", data: []byte("absolute")},
		resourceEntry{location: "style.css", data: []byte("relative")},
	)

	data, ok := resolveResource("https://example.com/style.css", idx)
	require.True(t, ok)
	assert.Equal(t, "absolute", string(data))

	data, ok = resolveResource("style.css", idx)
	require.True(t, ok)
	assert.Equal(t, "relative", string(data))
}

func TestResolveResourceSuffixMatch(t *testing.T) {
	idx := testIndex(
		resourceEntry{location: "https://example.com/images/logo.png", data: []byte("logo")},
	)

	// Key ends with the reference.
	data, ok := resolveResource("/images/logo.png", idx)
	require.True(t, ok)
	assert.Equal(t, "logo", string(data))

	// Reference ends with the key's basename.
	data, ok = resolveResource("./images/logo.png", idx)
	require.True(t, ok)
	assert.Equal(t, "logo", string(data))
}

func TestResolveResourceQueryStrip(t *testing.T) {
	idx := testIndex(
		resourceEntry{location: "https://example.com/app.css", data: []byte("css")},
	)

	data, ok := resolveResource("https://example.com/app.css?v=12", idx)
	require.True(t, ok)
	assert.Equal(t, "css", string(data))
}

func TestResolveResourceExactBeatsSuffix(t *testing.T) {
	idx := testIndex(
		resourceEntry{location: "https://cdn.example.com/a/main.css", data: []byte("fuzzy")},
		resourceEntry{location: "main.css", data: []byte("exact")},
	)

	data, ok := resolveResource("main.css", idx)
	require.True(t, ok)
	assert.Equal(t, "exact", string(data))
}

func TestResolveResourceFirstInsertionWinsOnTie(t *testing.T) {
	idx := testIndex(
		resourceEntry{location: "https://a.example.com/x/logo.png", data: []byte("first")},
		resourceEntry{location: "https://b.example.com/y/logo.png", data: []byte("second")},
	)

	data, ok := resolveResource("logo.png", idx)
	require.True(t, ok)
	assert.Equal(t, "first", string(data))
}

func TestResolveResourceMiss(t *testing.T) {
	idx := testIndex(
		resourceEntry{location: "https://example.com/style.css", data: []byte("css")},
	)

	_, ok := resolveResource("missing.png", idx)
	assert.False(t, ok)

	_, ok = resolveResource("anything", nil)
	assert.False(t, ok)
}
