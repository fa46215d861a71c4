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

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	unmhtml "github.com/nicholasgasior/unmhtml-go"
)

var version = "dev"

func main() {
	var (
		output            string
		keepJavaScript    bool
		keepCSSURLs       bool
		keepForms         bool
		keepMetaRedirects bool
		printTitle        bool
		showVersion       bool
	)

	flag.StringVar(&output, "o", "", "Output file (default: stdout)")
	flag.StringVar(&output, "output", "", "Output file (default: stdout)")
	flag.BoolVar(&keepJavaScript, "keep-javascript", false, "Keep scripts, event handlers and javascript: URLs")
	flag.BoolVar(&keepCSSURLs, "keep-css-urls", false, "Keep external CSS url() and @import references")
	flag.BoolVar(&keepForms, "keep-forms", false, "Keep form-related tags")
	flag.BoolVar(&keepMetaRedirects, "keep-meta-redirects", false, "Keep refresh/set-cookie/dns-prefetch meta tags")
	flag.BoolVar(&printTitle, "title", false, "Print the document title instead of the HTML")
	flag.BoolVar(&showVersion, "v", false, "Show version")
	flag.BoolVar(&showVersion, "version", false, "Show version")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: unmhtml [flags] [source]\n\n")
		fmt.Fprintf(os.Stderr, "Convert MHTML archives to standalone HTML.\n\n")
		fmt.Fprintf(os.Stderr, "Arguments:\n")
		fmt.Fprintf(os.Stderr, "  source    MHTML file to convert (reads stdin if omitted)\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("unmhtml %s\n", version)
		os.Exit(0)
	}

	c := unmhtml.New(
		unmhtml.WithRemoveJavaScript(!keepJavaScript),
		unmhtml.WithSanitizeCSS(!keepCSSURLs),
		unmhtml.WithRemoveForms(!keepForms),
		unmhtml.WithRemoveMetaRedirects(!keepMetaRedirects),
	)

	var result string
	var err error

	if args := flag.Args(); len(args) == 0 {
		data, readErr := io.ReadAll(os.Stdin)
		if readErr != nil {
			fmt.Fprintf(os.Stderr, "Error reading stdin: %v\n", readErr)
			os.Exit(1)
		}
		result, err = c.Convert(string(data))
	} else {
		result, err = c.ConvertFile(args[0])
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if printTitle {
		fmt.Println(unmhtml.Title(result))
		return
	}

	if output != "" {
		dir := filepath.Dir(output)
		if dir != "." {
			os.MkdirAll(dir, 0o755)
		}
		if writeErr := os.WriteFile(output, []byte(result+"\n"), 0o644); writeErr != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", writeErr)
			os.Exit(1)
		}
	} else {
		fmt.Println(result)
	}
}
