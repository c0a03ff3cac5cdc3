// Package jobpage fetches a job posting page and reduces it to the job
// description as Markdown.
package jobpage

import (
	"bytes"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/microcosm-cc/bluemonday"
	"github.com/pkg/errors"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/net/publicsuffix"
)

var (
	// ErrFetch reports a page that could not be downloaded.
	ErrFetch = errors.New("job page fetch failed")
	// ErrNoJobBody reports a page without a usable job description.
	ErrNoJobBody = errors.New("no job description found on page")
)

// boardSelectors lists description containers of well-known job boards,
// keyed by registrable domain.
var boardSelectors = map[string][]string{
	"greenhouse.io":       {"div.job__description", "#content", "#app_body"},
	"lever.co":            {"div[data-qa=job-description]", "div.posting-page", "div.content"},
	"workable.com":        {"section[data-ui=job-description]", "div[data-ui=job-description]", "main"},
	"ashbyhq.com":         {"div#overview", "div.ashby-job-posting-right-pane"},
	"smartrecruiters.com": {"div[itemprop=description]", "div.job-sections"},
	"linkedin.com":        {"div.show-more-less-html__markup", "div.description__text"},
}

// Extractor picks the job description out of a page.
type Extractor struct {
	MinChars int
	policy   *bluemonday.Policy
	md       *converter.Converter
}

func NewExtractor(minChars int) *Extractor {
	return &Extractor{
		MinChars: minChars,
		policy:   bluemonday.UGCPolicy(),
		md: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
}

// Extract returns the description of the posting in page as Markdown.
// Containers are tried in order: the board-specific selectors for the
// page's domain, semantic landmarks, then the densest text block.
func (e *Extractor) Extract(page, pageURL string) (string, error) {
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return "", errors.Wrap(ErrNoJobBody, err.Error())
	}

	node := e.boardNode(doc, pageURL)
	if node == nil {
		node = e.landmarkNode(doc)
	}
	if node == nil {
		body := findByTag(doc, atom.Body)
		if body == nil {
			body = doc
		}
		node = findDensestNode(body, e.MinChars)
	}
	if node == nil {
		return "", ErrNoJobBody
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, node); err != nil {
		return "", errors.Wrap(err, "failed to render job container")
	}
	clean := e.policy.Sanitize(buf.String())

	md, err := e.md.ConvertString(clean, converter.WithDomain(pageURL))
	if err != nil {
		return "", errors.Wrap(err, "failed to convert job description to markdown")
	}
	md = strings.TrimSpace(md)
	if utf8.RuneCountInString(md) < e.MinChars {
		return "", ErrNoJobBody
	}
	return md, nil
}

func (e *Extractor) boardNode(doc *html.Node, pageURL string) *html.Node {
	u, err := url.Parse(pageURL)
	if err != nil || u.Hostname() == "" {
		return nil
	}
	domain, err := publicsuffix.EffectiveTLDPlusOne(strings.ToLower(u.Hostname()))
	if err != nil {
		return nil
	}
	for _, sel := range boardSelectors[domain] {
		for _, n := range querySelectorAll(doc, sel) {
			if textLen(n) >= e.MinChars {
				return n
			}
		}
	}
	return nil
}

func (e *Extractor) landmarkNode(doc *html.Node) *html.Node {
	for _, sel := range []string{"main", "article", "[role=main]"} {
		for _, n := range querySelectorAll(doc, sel) {
			if textLen(n) >= e.MinChars {
				return n
			}
		}
	}
	return nil
}
