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

// Package unmhtml converts MHTML web page archives into standalone HTML
// documents with every embedded resource inlined as a data URI, optionally
// stripping active content.
package unmhtml

import (
	"fmt"
	"os"
)

// Converter turns MHTML archives into standalone HTML. The zero-argument
// New() is secure by default: JavaScript, CSS exfiltration vectors, forms
// and redirect meta tags are all removed. A Converter holds no per-call
// state and is safe for concurrent use.
type Converter struct {
	removeJavaScript    bool
	sanitizeCSS         bool
	removeForms         bool
	removeMetaRedirects bool
}

// New creates a new Converter with the given options.
func New(opts ...Option) *Converter {
	c := &Converter{
		removeJavaScript:    true,
		sanitizeCSS:         true,
		removeForms:         true,
		removeMetaRedirects: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ConvertFile reads an MHTML file and converts it to standalone HTML.
// Read failures are reported as *FileError.
func (c *Converter) ConvertFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &FileError{Path: path, Err: err}
	}
	return c.Convert(string(data))
}

// Convert converts raw MHTML content to a standalone HTML string. It returns
// *InputError when the input is empty or no HTML document can be extracted,
// and *ConversionError when a rewrite pass fails unexpectedly.
func (c *Converter) Convert(raw string) (result string, err error) {
	if raw == "" {
		return "", &InputError{Reason: "empty input"}
	}

	defer func() {
		if r := recover(); r != nil {
			result = ""
			err = &ConversionError{Err: fmt.Errorf("%v", r)}
		}
	}()

	doc := decodeDocument(raw)

	// The decoder hands the raw input back when the archive is malformed;
	// both that and an empty document mean there is nothing to convert.
	if doc.mainHTML == "" || doc.mainHTML == raw {
		return "", &InputError{Reason: "No HTML content found in MHTML"}
	}

	resources := doc.resources
	if c.removeJavaScript {
		resources = filterJavaScriptResources(resources)
	}

	out := embedCSS(doc.mainHTML, resources)
	out = embedResources(out, resources)

	if c.removeJavaScript {
		out = stripScripts(out)
	}
	if c.sanitizeCSS {
		out = sanitizeCSS(out)
	}
	if c.removeForms {
		out = stripForms(out)
	}
	if c.removeMetaRedirects {
		out = stripMetaRedirects(out)
	}

	return out, nil
}
