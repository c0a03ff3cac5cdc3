package resume

import (
	"strings"
)

// Section is one canonical header with its body lines.
type Section struct {
	Header Header
	Body   []string
}

// Document is a preamble followed by sections in source order. A header may
// occur more than once; Split never merges.
type Document struct {
	Preamble []string
	Sections []Section
}

// Presence records which canonical headers a document contains.
type Presence map[Header]bool

// Has reports whether h was present.
func (p Presence) Has(h Header) bool { return p[h] }

// Strings renders the presence map with string keys. Keys are the canonical
// header names; every header is present, absent ones map to false.
func (p Presence) Strings() map[string]bool {
	out := make(map[string]bool, len(Headers))
	for _, h := range Headers {
		out[string(h)] = p[h]
	}
	return out
}

// Split scans text line by line. Lines before the first recognized header
// are the preamble; each recognized header starts a new section that runs
// until the next one.
func Split(text string) Document {
	var doc Document
	var cur *Section
	for _, line := range lines(text) {
		if h, ok := CanonicalizeHeader(line); ok {
			doc.Sections = append(doc.Sections, Section{Header: h})
			cur = &doc.Sections[len(doc.Sections)-1]
			continue
		}
		if cur == nil {
			doc.Preamble = append(doc.Preamble, line)
			continue
		}
		cur.Body = append(cur.Body, line)
	}
	return doc
}

// Join renders doc: the preamble, then every section as its canonical
// header followed by its body, with one blank line between blocks. Empty
// bodies produce a header-only block. The result ends with a single newline
// unless the document is empty.
func Join(doc Document) string {
	var blocks []string
	if pre := trimBlock(doc.Preamble); len(pre) > 0 {
		blocks = append(blocks, strings.Join(pre, "\n"))
	}
	for _, s := range doc.Sections {
		block := string(s.Header)
		if body := trimBlock(s.Body); len(body) > 0 {
			block += "\n" + strings.Join(body, "\n")
		}
		blocks = append(blocks, block)
	}
	if len(blocks) == 0 {
		return ""
	}
	return strings.Join(blocks, "\n\n") + "\n"
}

// PresenceMap splits text and marks every header that appears.
func PresenceMap(text string) Presence {
	p := Presence{}
	for _, s := range Split(text).Sections {
		p[s.Header] = true
	}
	return p
}

// Headers lists the headers of doc in order, duplicates included.
func (d Document) Headers() []Header {
	out := make([]Header, 0, len(d.Sections))
	for _, s := range d.Sections {
		out = append(out, s.Header)
	}
	return out
}

// Section returns the first section with header h.
func (d Document) Section(h Header) (Section, bool) {
	for _, s := range d.Sections {
		if s.Header == h {
			return s, true
		}
	}
	return Section{}, false
}

func lines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// trimBlock right-trims every line and drops leading and trailing blank
// lines. Interior blank lines are kept.
func trimBlock(in []string) []string {
	out := make([]string, 0, len(in))
	for _, l := range in {
		out = append(out, strings.TrimRight(l, " \t"))
	}
	start, end := 0, len(out)
	for start < end && out[start] == "" {
		start++
	}
	for end > start && out[end-1] == "" {
		end--
	}
	return out[start:end]
}
