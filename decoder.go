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
	"io"
	"strings"

	"github.com/emersion/go-message"
	"github.com/emersion/go-message/charset"
	"golang.org/x/text/encoding/charmap"
)

func init() {
	// Register additional charsets that are commonly declared by saved web pages
	charset.RegisterEncoding("windows-1252", charmap.Windows1252)
	charset.RegisterEncoding("iso-8859-1", charmap.ISO8859_1)
	charset.RegisterEncoding("iso-8859-15", charmap.ISO8859_15)
}

// resourceEntry is one addressable MIME part, keyed by its Content-Location.
type resourceEntry struct {
	location    string
	contentType string
	data        []byte
}

// resourceIndex maps Content-Location values to decoded payloads. Entries
// keep source-scan order because fuzzy lookups are resolved first-match-wins.
type resourceIndex []resourceEntry

// lookup returns the payload stored under the exact location string.
func (idx resourceIndex) lookup(location string) ([]byte, bool) {
	for _, e := range idx {
		if e.location == location {
			return e.data, true
		}
	}
	return nil, false
}

// insert adds an entry unless the location is already present (first
// occurrence wins when duplicate Content-Locations appear).
func (idx *resourceIndex) insert(location, contentType string, data []byte) {
	if _, ok := idx.lookup(location); ok {
		return
	}
	*idx = append(*idx, resourceEntry{location: location, contentType: contentType, data: data})
}

// parsedDocument is the result of decoding an MHTML archive. An empty
// mainHTML signals that no HTML part was found; when the archive is
// malformed, mainHTML carries the raw input verbatim instead.
type parsedDocument struct {
	mainHTML  string
	resources resourceIndex
}

// decodeDocument splits a raw MHTML blob into the main HTML document and its
// addressable resources. It never fails: malformed input degrades to a
// passthrough document whose mainHTML equals the raw input.
func decodeDocument(raw string) parsedDocument {
	ent, err := message.Read(strings.NewReader(raw))
	if err != nil && !message.IsUnknownCharset(err) && !message.IsUnknownEncoding(err) {
		return parsedDocument{mainHTML: raw}
	}
	if ent == nil {
		return parsedDocument{mainHTML: raw}
	}

	// Heuristic for "looks like MHTML": MIME headers present, or the literal
	// From: marker anywhere in the source (Chrome writes "From: <Saved by Blink>").
	looksLikeMHTML := ent.Header.Get("Mime-Version") != "" ||
		ent.Header.Get("Content-Type") != "" ||
		strings.Contains(raw, "From:")

	var doc parsedDocument
	if mr := ent.MultipartReader(); mr != nil {
		if !collectParts(mr, &doc) {
			return parsedDocument{mainHTML: raw}
		}
	} else if mediaType, _, _ := ent.Header.ContentType(); mediaType == "text/html" {
		doc.mainHTML = decodePartText(ent)
	}

	if doc.mainHTML == "" && len(doc.resources) == 0 && !looksLikeMHTML {
		return parsedDocument{mainHTML: raw}
	}
	return doc
}

// collectParts walks every leaf of a multipart tree. The first text/html
// leaf becomes the main document; any other leaf with a Content-Location is
// stored as a resource. Returns false when the structure is too broken to
// keep walking, which the caller turns into the passthrough fallback.
func collectParts(mr message.MultipartReader, doc *parsedDocument) bool {
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			return true
		}
		if err != nil && !message.IsUnknownCharset(err) && !message.IsUnknownEncoding(err) {
			return false
		}
		if part == nil {
			return false
		}

		if sub := part.MultipartReader(); sub != nil {
			if !collectParts(sub, doc) {
				return false
			}
			continue
		}

		mediaType, _, _ := part.Header.ContentType()
		location := part.Header.Get("Content-Location")
		switch {
		case mediaType == "text/html" && doc.mainHTML == "":
			doc.mainHTML = decodePartText(part)
		case location != "":
			if data, ok := decodePartBinary(part); ok {
				doc.resources.insert(location, mediaType, data)
			}
		}
	}
}

// decodePartText reads a part body as text. Transfer decoding (base64,
// quoted-printable) is applied by go-message; a broken payload yields an
// empty string rather than an error.
func decodePartText(part *message.Entity) string {
	data, err := io.ReadAll(part.Body)
	if err != nil {
		return ""
	}
	return decodeText(data)
}

// decodePartBinary reads a part body as raw bytes. A payload that fails
// transfer decoding reports no value so the caller can skip the resource.
func decodePartBinary(part *message.Entity) ([]byte, bool) {
	data, err := io.ReadAll(part.Body)
	if err != nil {
		return nil, false
	}
	return data, true
}
