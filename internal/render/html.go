// Package render turns a tailored plain-text resume into printable HTML.
package render

import (
	"bytes"
	"embed"
	"html/template"
	"strings"

	"github.com/pkg/errors"

	"resumetuner/internal/resume"
)

//go:embed templates/resume.html templates/style.css
var files embed.FS

var (
	tpl   = template.Must(template.ParseFS(files, "templates/resume.html"))
	style = mustRead("templates/style.css")
)

func mustRead(name string) string {
	b, err := files.ReadFile(name)
	if err != nil {
		panic(err)
	}
	return string(b)
}

// Page is the view model handed to the template.
type Page struct {
	Name     string
	Contact  []string
	Sections []Section
	Style    template.CSS
}

type Section struct {
	Title  string
	Blocks []Block
}

// Block is either a paragraph (Text) or a run of bullet Items.
type Block struct {
	Text  string
	Items []string
}

// NewPage builds the view model for text. The first non-blank preamble
// line is taken as the candidate's name, the rest as contact lines.
func NewPage(text string) Page {
	doc := resume.Split(text)
	p := Page{Style: template.CSS(style)}
	for _, l := range doc.Preamble {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		if p.Name == "" {
			p.Name = l
			continue
		}
		p.Contact = append(p.Contact, l)
	}
	for _, s := range doc.Sections {
		p.Sections = append(p.Sections, Section{
			Title:  title(s.Header),
			Blocks: blocks(s.Body),
		})
	}
	return p
}

// HTML renders text as a standalone HTML document.
func HTML(text string) (string, error) {
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, NewPage(text)); err != nil {
		return "", errors.Wrap(err, "failed to execute resume template")
	}
	return buf.String(), nil
}

func title(h resume.Header) string {
	s := strings.ToLower(string(h))
	return strings.ToUpper(s[:1]) + s[1:]
}

func blocks(body []string) []Block {
	var out []Block
	var items []string
	flush := func() {
		if len(items) > 0 {
			out = append(out, Block{Items: items})
			items = nil
		}
	}
	for _, l := range body {
		l = strings.TrimSpace(l)
		if l == "" {
			flush()
			continue
		}
		if item, ok := bullet(l); ok {
			items = append(items, item)
			continue
		}
		flush()
		out = append(out, Block{Text: l})
	}
	flush()
	return out
}

func bullet(l string) (string, bool) {
	for _, p := range []string{"- ", "* ", "• ", "· ", "– "} {
		if strings.HasPrefix(l, p) {
			return strings.TrimSpace(l[len(p):]), true
		}
	}
	return "", false
}
