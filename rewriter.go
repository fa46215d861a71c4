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
	"encoding/base64"
	"html"
	"path"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Pattern-based rewriting instead of a DOM: adequate for well-formed
// link/src/url constructs, fragile against nested quotes or attributes split
// across lines. Each rule is named so a DOM-based rewriter could replace one
// without touching the others.
var (
	reLinkStylesheet = regexp.MustCompile(`(?i)<link\s+[^>]*rel\s*=\s*["']stylesheet["'][^>]*>`)
	reFaviconLink    = regexp.MustCompile(`(?i)<link\s+[^>]*rel\s*=\s*["'](?:icon|apple-touch-icon)["'][^>]*>`)
	reHrefValue      = regexp.MustCompile(`(?i)href\s*=\s*["']([^"']+)["']`)
	reSrcAttr        = regexp.MustCompile(`(?i)(src\s*=\s*["'])([^"']+)(["'])`)
	reHrefAttr       = regexp.MustCompile(`(?i)(href\s*=\s*["'])([^"']+)(["'])`)
	reRelStylesheet  = regexp.MustCompile(`(?i)rel\s*=\s*["']stylesheet["']`)
	reCSSURLRef      = regexp.MustCompile(`(?i)url\s*\(\s*["']?([^"')\s]+)["']?\s*\)`)
	reOpenTag        = regexp.MustCompile(`<[a-zA-Z][^>]*>`)
)

// embedCSS replaces every stylesheet <link> whose href resolves against the
// index with an inline <style> block holding the decoded CSS. Links with
// unresolved hrefs or non-stylesheet rel values stay untouched.
func embedCSS(htmlStr string, resources resourceIndex) string {
	return reLinkStylesheet.ReplaceAllStringFunc(htmlStr, func(link string) string {
		m := reHrefValue.FindStringSubmatch(link)
		if m == nil {
			return link
		}
		href := html.UnescapeString(m[1])
		data, ok := resolveResource(href, resources)
		if !ok {
			return link
		}
		return "<style type=\"text/css\">\n" + decodeText(data) + "\n</style>"
	})
}

// embedResources rewrites resolvable src, href and CSS url() references into
// base64 data URIs and drops favicon links that point outside the archive.
// The passes run in a fixed order, each over the previous one's output.
func embedResources(htmlStr string, resources resourceIndex) string {
	htmlStr = reSrcAttr.ReplaceAllStringFunc(htmlStr, func(attr string) string {
		m := reSrcAttr.FindStringSubmatch(attr)
		return rewriteAttrValue(attr, m[1], m[2], m[3], resources)
	})

	htmlStr = removeMissingFavicons(htmlStr, resources)

	// href attributes, skipping stylesheet links (those were either replaced
	// by embedCSS or left as-is with an unresolvable href).
	htmlStr = reOpenTag.ReplaceAllStringFunc(htmlStr, func(tag string) string {
		if reRelStylesheet.MatchString(tag) {
			return tag
		}
		return reHrefAttr.ReplaceAllStringFunc(tag, func(attr string) string {
			m := reHrefAttr.FindStringSubmatch(attr)
			return rewriteAttrValue(attr, m[1], m[2], m[3], resources)
		})
	})

	htmlStr = reCSSURLRef.ReplaceAllStringFunc(htmlStr, func(ref string) string {
		m := reCSSURLRef.FindStringSubmatch(ref)
		target := m[1]
		if strings.HasPrefix(target, "data:") {
			return ref
		}
		data, ok := resolveResource(target, resources)
		if !ok {
			return ref
		}
		return `url("` + dataURI(data, target) + `")`
	})

	return htmlStr
}

// rewriteAttrValue swaps an attribute value for a data URI when it resolves.
// Values that are already data URIs or miss the index pass through, which
// keeps the rewrite idempotent.
func rewriteAttrValue(attr, prefix, value, suffix string, resources resourceIndex) string {
	if strings.HasPrefix(value, "data:") {
		return attr
	}
	data, ok := resolveResource(value, resources)
	if !ok {
		return attr
	}
	return prefix + dataURI(data, value) + suffix
}

// removeMissingFavicons drops icon and apple-touch-icon links whose href has
// no match in the archive, so a browser never tries to fetch them.
func removeMissingFavicons(htmlStr string, resources resourceIndex) string {
	return reFaviconLink.ReplaceAllStringFunc(htmlStr, func(link string) string {
		m := reHrefValue.FindStringSubmatch(link)
		if m == nil || strings.HasPrefix(m[1], "data:") {
			return link
		}
		if _, ok := resolveResource(m[1], resources); ok {
			return link
		}
		return ""
	})
}

// dataURI encodes resource bytes as an inline data: URI.
func dataURI(data []byte, reference string) string {
	return "data:" + resourceMIMEType(reference, data) + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// extMIMETypes resolves MIME types from reference extensions. Web font and
// JavaScript entries override what generic tables report for them.
var extMIMETypes = map[string]string{
	".woff":  "font/woff",
	".woff2": "font/woff2",
	".ttf":   "font/ttf",
	".otf":   "font/otf",
	".js":    "text/javascript",
	".mjs":   "text/javascript",
	".css":   "text/css",
	".html":  "text/html",
	".htm":   "text/html",
	".png":   "image/png",
	".jpg":   "image/jpeg",
	".jpeg":  "image/jpeg",
	".gif":   "image/gif",
	".svg":   "image/svg+xml",
	".webp":  "image/webp",
	".avif":  "image/avif",
	".ico":   "image/vnd.microsoft.icon",
	".bmp":   "image/bmp",
	".json":  "application/json",
	".xml":   "text/xml",
	".txt":   "text/plain",
	".pdf":   "application/pdf",
	".mp3":   "audio/mpeg",
	".ogg":   "audio/ogg",
	".wav":   "audio/x-wav",
	".mp4":   "video/mp4",
	".webm":  "video/webm",
}

// resourceMIMEType picks the MIME type for a data URI: extension table
// first, content sniffing for unknown extensions, then octet-stream.
func resourceMIMEType(reference string, data []byte) string {
	clean := reference
	if i := strings.IndexAny(clean, "?#"); i >= 0 {
		clean = clean[:i]
	}
	if mt, ok := extMIMETypes[strings.ToLower(path.Ext(clean))]; ok {
		return mt
	}

	if len(data) > 0 {
		detected := mimetype.Detect(data).String()
		if i := strings.IndexByte(detected, ';'); i >= 0 {
			detected = detected[:i]
		}
		if plausibleMIMEType(detected) {
			return detected
		}
	}

	return "application/octet-stream"
}

// plausibleMIMEType rejects detector output from families that never occur
// as web page resources.
func plausibleMIMEType(mt string) bool {
	if mt == "" {
		return false
	}
	return !strings.HasPrefix(mt, "chemical/") && !strings.HasPrefix(mt, "model/")
}

// jsExtensions and jsContentTypes identify JavaScript resources that must
// never be inlined when JavaScript removal is active.
var (
	jsExtensions   = []string{".js", ".mjs", ".jsx", ".ts", ".tsx"}
	jsContentTypes = []string{
		"text/javascript",
		"application/javascript",
		"application/x-javascript",
		"text/ecmascript",
		"application/ecmascript",
	}
)

// isJavaScriptFile reports whether a resource is JavaScript, judged by its
// reference extension and, when known, its declared content type.
func isJavaScriptFile(reference, contentType string) bool {
	if reference == "" {
		return false
	}
	ref := strings.ToLower(reference)
	for _, ext := range jsExtensions {
		if strings.HasSuffix(ref, ext) {
			return true
		}
	}
	ct := strings.ToLower(contentType)
	if ct != "" {
		for _, jsType := range jsContentTypes {
			if strings.Contains(ct, jsType) {
				return true
			}
		}
	}
	return false
}

// filterJavaScriptResources returns the index without JavaScript entries.
// Their src attributes are left as literal text rather than rewritten.
func filterJavaScriptResources(resources resourceIndex) resourceIndex {
	filtered := make(resourceIndex, 0, len(resources))
	for _, e := range resources {
		if isJavaScriptFile(e.location, e.contentType) {
			continue
		}
		filtered = append(filtered, e)
	}
	return filtered
}
