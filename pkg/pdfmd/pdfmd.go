// Package pdfmd converts resume PDFs to lightweight Markdown.
package pdfmd

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pkg/errors"

	"resumetuner/internal/domain"
	"resumetuner/internal/resume"
)

var (
	spaces  = regexp.MustCompile(`[ \t\f\v\x{00A0}]+`)
	bullets = regexp.MustCompile(`^(?:[•●▪◦·‣∙*–-]|\x{F0B7})\s*`)
)

// Converter implements conversion with the package defaults.
type Converter struct{}

func (Converter) Convert(data []byte) (string, error) { return Convert(data) }

// Convert extracts the text of every page and formats it as Markdown.
// Unreadable documents fail with domain.ErrConversion, documents without
// extractable text with domain.ErrNoText.
func Convert(data []byte) (md string, err error) {
	defer func() {
		// the pdf reader panics on some malformed inputs
		if r := recover(); r != nil {
			md, err = "", domain.Fail(domain.ErrConversion, "failed to read PDF", fmt.Errorf("%v", r))
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", domain.Fail(domain.ErrConversion, "failed to read PDF", err)
	}

	var pages []string
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			return "", domain.Fail(domain.ErrConversion, fmt.Sprintf("failed to extract text from page %d", i), err)
		}
		if page := FormatText(text); page != "" {
			pages = append(pages, page)
		}
	}
	if len(pages) == 0 {
		return "", domain.Fail(domain.ErrNoText, "no text could be extracted from the PDF", errors.New("empty text layer"))
	}
	return strings.Join(pages, "\n\n") + "\n", nil
}

// FormatText turns one page of plain text into Markdown: resume section
// headings become "## HEADER", bullet glyphs become "- ", whitespace is
// collapsed and runs of blank lines shrink to one.
func FormatText(text string) string {
	text = strings.NewReplacer("\r\n", "\n", "\r", "\n").Replace(text)
	var out []string
	blank := false
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(spaces.ReplaceAllString(line, " "))
		if line == "" {
			blank = len(out) > 0
			continue
		}
		if h, ok := resume.CanonicalizeHeader(line); ok {
			if len(out) > 0 {
				out = append(out, "")
			}
			out = append(out, "## "+string(h))
			blank = false
			continue
		}
		if loc := bullets.FindStringIndex(line); loc != nil && loc[1] < len(line) {
			line = "- " + line[loc[1]:]
		}
		if blank {
			out = append(out, "")
		}
		out = append(out, line)
		blank = false
	}
	return strings.Join(out, "\n")
}
