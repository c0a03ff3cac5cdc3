package jobpage

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// selector is one simple CSS selector: tag, .class, #id, [attr] or
// [attr=val], optionally combined ("div.content", "section[data-ui=x]").
type selector struct {
	tag     string
	id      string
	class   string
	attrKey string
	attrVal string
}

func parseSelector(sel string) selector {
	var s selector
	if idx := strings.IndexByte(sel, '['); idx >= 0 {
		attr := strings.TrimRight(sel[idx+1:], "]")
		sel = sel[:idx]
		if eq := strings.IndexByte(attr, '='); eq >= 0 {
			s.attrKey = attr[:eq]
			s.attrVal = strings.Trim(attr[eq+1:], `"'`)
		} else {
			s.attrKey = attr
		}
	}
	if idx := strings.IndexByte(sel, '#'); idx >= 0 {
		s.id = sel[idx+1:]
		sel = sel[:idx]
	}
	if idx := strings.IndexByte(sel, '.'); idx >= 0 {
		s.class = sel[idx+1:]
		sel = sel[:idx]
	}
	s.tag = sel
	return s
}

func (s selector) matches(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	if s.tag != "" && n.Data != s.tag {
		return false
	}
	if s.id != "" && attr(n, "id") != s.id {
		return false
	}
	if s.class != "" && !hasClass(n, s.class) {
		return false
	}
	if s.attrKey != "" {
		v, ok := lookupAttr(n, s.attrKey)
		if !ok || (s.attrVal != "" && v != s.attrVal) {
			return false
		}
	}
	return true
}

// querySelectorAll returns nodes matching sel in document order.
func querySelectorAll(root *html.Node, sel string) []*html.Node {
	s := parseSelector(strings.TrimSpace(sel))
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if s.matches(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

func findByTag(root *html.Node, a atom.Atom) *html.Node {
	if root.Type == html.ElementNode && root.DataAtom == a {
		return root
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if n := findByTag(c, a); n != nil {
			return n
		}
	}
	return nil
}

func lookupAttr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func attr(n *html.Node, key string) string {
	v, _ := lookupAttr(n, key)
	return v
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// isBoilerplate reports page chrome that never holds a job description.
func isBoilerplate(n *html.Node) bool {
	switch n.DataAtom {
	case atom.Nav, atom.Footer, atom.Header, atom.Aside, atom.Script, atom.Style, atom.Noscript, atom.Form:
		return true
	}
	marker := strings.ToLower(attr(n, "id") + " " + attr(n, "class"))
	for _, w := range []string{"cookie", "navbar", "footer", "sidebar", "banner"} {
		if strings.Contains(marker, w) {
			return true
		}
	}
	return false
}

func isContentTag(a atom.Atom) bool {
	switch a {
	case atom.Div, atom.Section, atom.Article, atom.Main, atom.Td:
		return true
	}
	return false
}

// collectText joins the visible text under n with single spaces.
func collectText(n *html.Node, linksOnly bool) string {
	var sb strings.Builder
	var f func(*html.Node, bool)
	f = func(n *html.Node, inLink bool) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Script, atom.Style, atom.Noscript:
				return
			case atom.A:
				inLink = true
			}
		}
		if n.Type == html.TextNode && (inLink || !linksOnly) {
			if t := strings.TrimSpace(n.Data); t != "" {
				if sb.Len() > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(t)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			f(c, inLink)
		}
	}
	f(n, false)
	return sb.String()
}

func textLen(n *html.Node) int {
	return utf8.RuneCountInString(collectText(n, false))
}

// findDensestNode returns the content element with the best ratio of text
// to markup, discounting link-heavy blocks.
func findDensestNode(root *html.Node, minLen int) *html.Node {
	var best *html.Node
	var bestScore float64

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type != html.ElementNode && n.Type != html.DocumentNode {
			return
		}
		if n.Type == html.ElementNode && isBoilerplate(n) {
			return
		}
		if n.Type == html.ElementNode && isContentTag(n.DataAtom) {
			text := collectText(n, false)
			if tl := len(text); tl >= minLen {
				var buf bytes.Buffer
				_ = html.Render(&buf, n)
				markup := buf.Len()
				if markup == 0 {
					markup = 1
				}
				linkDens := float64(len(collectText(n, true))) / float64(tl)
				if linkDens <= 0.5 {
					score := float64(tl) / float64(markup) * logScale(tl) * (1 - linkDens)
					if score > bestScore {
						best, bestScore = n, score
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return best
}

func logScale(n int) float64 {
	scale := 1.0
	for v := n; v > 100; v /= 2 {
		scale++
	}
	return scale
}
