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
)

func TestStripScripts(t *testing.T) {
	tests := []struct {
		name           string
		input          string
		mustInclude    []string
		mustNotInclude []string
	}{
		{
			name:           "script tags",
			input:          `<html><body><script>alert("x")</script><p>Hello</p></body></html>`,
			mustInclude:    []string{"<p>Hello</p>"},
			mustNotInclude: []string{"<script>", "alert"},
		},
		{
			name:           "multiline script",
			input:          "<script type=\"text/javascript\">\nfunction f() {\n  alert(1);\n}\n</script><div>ok</div>",
			mustInclude:    []string{"<div>ok</div>"},
			mustNotInclude: []string{"function f"},
		},
		{
			name:           "noscript tags",
			input:          `<noscript><img src="https://tracker.example/p.gif"></noscript><p>x</p>`,
			mustInclude:    []string{"<p>x</p>"},
			mustNotInclude: []string{"noscript", "tracker"},
		},
		{
			name:           "svg script keeps svg",
			input:          `<svg viewBox="0 0 1 1"><script>alert(1)</script><circle r="1"/></svg>`,
			mustInclude:    []string{"<svg", `<circle r="1"/>`, "</svg>"},
			mustNotInclude: []string{"<script>"},
		},
		{
			name:           "event handlers",
			input:          `<div onclick="alert(1)" onload="bad()" class="keep">Hello</div>`,
			mustInclude:    []string{`class="keep"`, "Hello"},
			mustNotInclude: []string{"onclick", "onload"},
		},
		{
			name:           "javascript href",
			input:          `<a href="javascript:alert(1)">Link</a>`,
			mustInclude:    []string{`href="#"`, "Link"},
			mustNotInclude: []string{"javascript:"},
		},
		{
			name:           "javascript src",
			input:          `<img src="javascript:alert(1)">`,
			mustInclude:    []string{`src="#"`},
			mustNotInclude: []string{"javascript:"},
		},
		{
			name:           "javascript data uri",
			input:          `<a href="data:text/html;base64,javascript-payload">x</a>`,
			mustInclude:    []string{`href="#"`},
			mustNotInclude: []string{"data:"},
		},
		{
			name:           "css expression",
			input:          `<div style="width: expression(alert(1));">x</div>`,
			mustNotInclude: []string{"expression"},
		},
		{
			name:        "plain markup untouched",
			input:       `<h1>Title</h1><img src="image.png" alt="t"><a href="page.html">ok</a>`,
			mustInclude: []string{"<h1>Title</h1>", `src="image.png"`, `href="page.html"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := stripScripts(tt.input)
			for _, s := range tt.mustInclude {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.mustNotInclude {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestSanitizeCSS(t *testing.T) {
	tests := []struct {
		name           string
		input          string
		mustInclude    []string
		mustNotInclude []string
	}{
		{
			name:           "import url form",
			input:          `<style>@import url("https://evil.example/s.css"); p{margin:0}</style>`,
			mustInclude:    []string{"p{margin:0}"},
			mustNotInclude: []string{"@import", "evil.example"},
		},
		{
			name:           "import string form",
			input:          `<style>@import "extra.css"; h1{color:red}</style>`,
			mustInclude:    []string{"h1{color:red}"},
			mustNotInclude: []string{"@import"},
		},
		{
			name:           "external absolute url removed",
			input:          `<style>body{background:url(https://evil.example/bg.png)}</style>`,
			mustNotInclude: []string{"evil.example"},
		},
		{
			name:           "scheme relative url removed",
			input:          `<style>body{background:url(//cdn.example/bg.png)}</style>`,
			mustNotInclude: []string{"cdn.example"},
		},
		{
			name:           "absolute path url removed",
			input:          `<style>body{background:url("/assets/bg.png")}</style>`,
			mustNotInclude: []string{"/assets/bg.png"},
		},
		{
			name:        "relative url preserved",
			input:       `<style>body{background:url(bg.png)}</style>`,
			mustInclude: []string{"url(bg.png)"},
		},
		{
			name:        "data uri preserved",
			input:       `<style>body{background:url("data:image/png;base64,AAAA")}</style>`,
			mustInclude: []string{"data:image/png;base64,AAAA"},
		},
		{
			name:           "behavior removed",
			input:          `<style>div{behavior: url(#default#time2); color:red}</style>`,
			mustInclude:    []string{"color:red"},
			mustNotInclude: []string{"behavior"},
		},
		{
			name:           "expression removed",
			input:          `<style>div{width: expression(alert(1))}</style>`,
			mustNotInclude: []string{"expression"},
		},
		{
			name:           "inline style sanitized",
			input:          `<div style="background:url(https://evil.example/x.png); color:blue">x</div>`,
			mustInclude:    []string{"color:blue"},
			mustNotInclude: []string{"evil.example"},
		},
		{
			name:        "inline style relative url preserved",
			input:       `<div style="background:url(local.png)">x</div>`,
			mustInclude: []string{"url(local.png)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := sanitizeCSS(tt.input)
			for _, s := range tt.mustInclude {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.mustNotInclude {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestStripForms(t *testing.T) {
	input := `<div>before</div>` +
		`<form action="/s"><input type="text"><button>Go</button></form>` +
		`<input type="hidden" value="x">` +
		`<textarea rows="2">text</textarea>` +
		`<select><option>a</option></select>` +
		`<fieldset><legend>L</legend></fieldset>` +
		`<label for="i">label</label>` +
		`<datalist id="d"><option>x</option></datalist>` +
		`<div>after</div>`

	out := stripForms(input)

	assert.Contains(t, out, "<div>before</div>")
	assert.Contains(t, out, "<div>after</div>")
	for _, tag := range []string{"<form", "<input", "<button", "<textarea", "<select", "<fieldset", "<legend", "<label", "<datalist"} {
		assert.NotContains(t, out, tag)
	}
}

func TestStripMetaRedirects(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"refresh", `<meta http-equiv="refresh" content="0; url=https://evil.example">`},
		{"refresh attrs reordered", `<meta content="0; url=https://evil.example" http-equiv="refresh">`},
		{"refresh unquoted", `<meta http-equiv=refresh content="5">`},
		{"set-cookie", `<meta http-equiv="set-cookie" content="session=x">`},
		{"dns-prefetch", `<meta name="dns-prefetch" content="//evil.example">`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := stripMetaRedirects("<head>" + tt.input + `<meta charset="utf-8"></head>`)
			assert.NotContains(t, out, tt.input)
			assert.Contains(t, out, `<meta charset="utf-8">`, "unrelated meta tags stay")
		})
	}
}

func TestSanitizerPassesAreIdempotent(t *testing.T) {
	input := `<html><body>` +
		`<script>alert(1)</script>` +
		`<div onclick="x()" style="background:url(https://evil.example/x)">t</div>` +
		`<form><input></form>` +
		`<meta http-equiv="refresh" content="0">` +
		`</body></html>`

	once := stripMetaRedirects(stripForms(sanitizeCSS(stripScripts(input))))
	twice := stripMetaRedirects(stripForms(sanitizeCSS(stripScripts(once))))
	assert.Equal(t, once, twice)
}
