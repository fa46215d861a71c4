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

// Option configures a Converter.
type Option func(*Converter)

// WithRemoveJavaScript configures whether JavaScript resources, script tags,
// event handlers and javascript: URLs are stripped (default: true).
func WithRemoveJavaScript(remove bool) Option {
	return func(c *Converter) {
		c.removeJavaScript = remove
	}
}

// WithSanitizeCSS configures whether CSS exfiltration vectors (external
// url() references, @import, behavior:) are removed (default: true).
func WithSanitizeCSS(sanitize bool) Option {
	return func(c *Converter) {
		c.sanitizeCSS = sanitize
	}
}

// WithRemoveForms configures whether form-related tags are stripped
// (default: true).
func WithRemoveForms(remove bool) Option {
	return func(c *Converter) {
		c.removeForms = remove
	}
}

// WithRemoveMetaRedirects configures whether refresh, set-cookie and
// dns-prefetch meta tags are stripped (default: true).
func WithRemoveMetaRedirects(remove bool) Option {
	return func(c *Converter) {
		c.removeMetaRedirects = remove
	}
}
