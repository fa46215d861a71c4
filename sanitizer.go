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

import "regexp"

// Script execution vectors.
var (
	reScriptTags   = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	reNoscriptTags = regexp.MustCompile(`(?is)<noscript[^>]*>.*?</noscript>`)
	reSVGScript    = regexp.MustCompile(`(?is)<svg[^>]*>.*?<script[^>]*>.*?</script>.*?</svg>`)
	reJSHref       = regexp.MustCompile(`(?i)href\s*=\s*["']javascript:[^"']*["']`)
	reJSSrc        = regexp.MustCompile(`(?i)src\s*=\s*["']javascript:[^"']*["']`)
	reJSDataURI    = regexp.MustCompile(`(?i)(src|href)\s*=\s*["']data:[^"']*javascript[^"']*["']`)
	reExpression   = regexp.MustCompile(`(?i)expression\s*\([^)]*\)`)

	// Fixed, enumerated set of DOM event-handler attributes. Kept as one
	// alternation so the sanitizer stays deterministic and auditable.
	reEventHandlers = regexp.MustCompile(`(?i)\s+on(?:abort|beforeunload|blur|change|click|contextmenu|copy|cut|dblclick|drag|dragend|dragenter|dragleave|dragover|dragstart|drop|error|focus|hashchange|input|keydown|keypress|keyup|load|mousedown|mousemove|mouseout|mouseover|mouseup|mousewheel|offline|online|paste|reset|resize|scroll|select|storage|submit|unload|wheel)\s*=\s*["'][^"']*["']`)
)

// CSS exfiltration vectors.
var (
	reCSSImport = regexp.MustCompile(`(?i)@import\s+(?:url\([^)]*\)|["'][^"']*["'])[^;]*;?`)
	// Only external targets: scheme-relative, absolute-path, or http(s)://.
	// Purely relative url() references stay, including the data: URIs the
	// rewriter produced.
	reCSSURLExternal = regexp.MustCompile(`(?i)url\s*\(\s*["']?(?:https?://|//|/[^/])[^"')\s]*["']?\s*\)`)
	reCSSBehavior    = regexp.MustCompile(`(?i)behavior\s*:\s*[^;]+;?`)
	reInlineStyle    = regexp.MustCompile(`(?i)(style\s*=\s*["'])([^"']*)(["'])`)
)

// Form and meta tags.
var (
	reFormTags     = regexp.MustCompile(`(?is)<form[^>]*>.*?</form>`)
	reInputTags    = regexp.MustCompile(`(?i)<input[^>]*/?>`)
	reTextareaTags = regexp.MustCompile(`(?is)<textarea[^>]*>.*?</textarea>`)
	reSelectTags   = regexp.MustCompile(`(?is)<select[^>]*>.*?</select>`)
	reButtonTags   = regexp.MustCompile(`(?is)<button[^>]*>.*?</button>`)
	reFieldsetTags = regexp.MustCompile(`(?is)<fieldset[^>]*>.*?</fieldset>`)
	reLegendTags   = regexp.MustCompile(`(?is)<legend[^>]*>.*?</legend>`)
	reLabelTags    = regexp.MustCompile(`(?is)<label[^>]*>.*?</label>`)
	reDatalistTags = regexp.MustCompile(`(?is)<datalist[^>]*>.*?</datalist>`)

	reMetaRefresh     = regexp.MustCompile(`(?i)<meta[^>]*http-equiv\s*=\s*["']?refresh["']?[^>]*>`)
	reMetaSetCookie   = regexp.MustCompile(`(?i)<meta[^>]*http-equiv\s*=\s*["']?set-cookie["']?[^>]*>`)
	reMetaDNSPrefetch = regexp.MustCompile(`(?i)<meta[^>]*name\s*=\s*["']?dns-prefetch["']?[^>]*>`)
)

// stripScripts removes script execution vectors: script and noscript blocks,
// scripts nested in svg, event-handler attributes, javascript: URLs, data
// URIs carrying JavaScript and IE expression() CSS.
func stripScripts(htmlStr string) string {
	htmlStr = reScriptTags.ReplaceAllString(htmlStr, "")
	htmlStr = reNoscriptTags.ReplaceAllString(htmlStr, "")
	htmlStr = reSVGScript.ReplaceAllStringFunc(htmlStr, func(svg string) string {
		return reScriptTags.ReplaceAllString(svg, "")
	})
	htmlStr = reEventHandlers.ReplaceAllString(htmlStr, "")
	htmlStr = reJSHref.ReplaceAllString(htmlStr, `href="#"`)
	htmlStr = reJSSrc.ReplaceAllString(htmlStr, `src="#"`)
	htmlStr = reJSDataURI.ReplaceAllString(htmlStr, `${1}="#"`)
	htmlStr = reExpression.ReplaceAllString(htmlStr, "")
	return htmlStr
}

// sanitizeCSS removes CSS constructs that can reach the network or execute
// code: @import statements, url() references with external targets,
// expression() and behavior: declarations. The same removals are applied
// inside inline style attributes.
func sanitizeCSS(htmlStr string) string {
	htmlStr = reCSSImport.ReplaceAllString(htmlStr, "")
	htmlStr = reCSSURLExternal.ReplaceAllString(htmlStr, "")
	htmlStr = reExpression.ReplaceAllString(htmlStr, "")
	htmlStr = reCSSBehavior.ReplaceAllString(htmlStr, "")
	htmlStr = sanitizeInlineStyles(htmlStr)
	return htmlStr
}

// sanitizeInlineStyles applies the CSS removals to style="..." attribute
// values.
func sanitizeInlineStyles(htmlStr string) string {
	return reInlineStyle.ReplaceAllStringFunc(htmlStr, func(attr string) string {
		m := reInlineStyle.FindStringSubmatch(attr)
		style := m[2]
		style = reCSSImport.ReplaceAllString(style, "")
		style = reCSSURLExternal.ReplaceAllString(style, "")
		style = reExpression.ReplaceAllString(style, "")
		style = reCSSBehavior.ReplaceAllString(style, "")
		return m[1] + style + m[3]
	})
}

// stripForms removes form-related tags entirely, content included.
func stripForms(htmlStr string) string {
	for _, re := range []*regexp.Regexp{
		reFormTags,
		reInputTags,
		reTextareaTags,
		reSelectTags,
		reButtonTags,
		reFieldsetTags,
		reLegendTags,
		reLabelTags,
		reDatalistTags,
	} {
		htmlStr = re.ReplaceAllString(htmlStr, "")
	}
	return htmlStr
}

// stripMetaRedirects removes refresh, set-cookie and dns-prefetch meta tags
// regardless of attribute order within the tag.
func stripMetaRedirects(htmlStr string) string {
	htmlStr = reMetaRefresh.ReplaceAllString(htmlStr, "")
	htmlStr = reMetaSetCookie.ReplaceAllString(htmlStr, "")
	htmlStr = reMetaDNSPrefetch.ReplaceAllString(htmlStr, "")
	return htmlStr
}
