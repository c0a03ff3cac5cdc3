package resume

import (
	"regexp"
	"strings"
)

// sanitized lists the sections that are dropped when their body is nothing
// but a placeholder.
var sanitized = map[Header]bool{
	Education:      true,
	Certifications: true,
}

const bullet = `(?:[-*•·–]\s*)?`

// placeholders match a whole body line that stands in for missing data.
var placeholders = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^` + bullet + `(?:[a-z]+\s+)?(?:details|information|info)\s+(?:(?:is|are)\s+)?(?:available\s+)?(?:up)?on\s+request\.?$`),
	regexp.MustCompile(`(?i)^` + bullet + `(?:details\s+)?available\s+(?:up)?on\s+request\.?$`),
	regexp.MustCompile(`(?i)^` + bullet + `(?:to\s+be\s+)?provided\s+(?:up)?on\s+request\.?$`),
	regexp.MustCompile(`(?i)^` + bullet + `none\.?$`),
}

// IsPlaceholder reports whether line is a generic unavailability phrase.
func IsPlaceholder(line string) bool {
	s := strings.TrimSpace(line)
	for _, re := range placeholders {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

// Sanitize removes EDUCATION and CERTIFICATIONS sections whose body holds
// only placeholder lines, header included. Everything else is returned
// untouched; if nothing is removed the input comes back as is.
func Sanitize(text string) string {
	all := lines(text)

	type span struct {
		header     Header
		start, end int
	}
	var spans []span
	for i, line := range all {
		h, ok := CanonicalizeHeader(line)
		if !ok {
			continue
		}
		if n := len(spans); n > 0 {
			spans[n-1].end = i
		}
		spans = append(spans, span{header: h, start: i, end: len(all)})
	}

	drop := make([]bool, len(all))
	removed := false
	for _, sp := range spans {
		if !sanitized[sp.header] || !placeholderOnly(all[sp.start+1:sp.end]) {
			continue
		}
		for i := sp.start; i < sp.end; i++ {
			drop[i] = true
		}
		removed = true
	}
	if !removed {
		return text
	}

	kept := make([]string, 0, len(all))
	for i, line := range all {
		if !drop[i] {
			kept = append(kept, line)
		}
	}
	out := strings.Join(trimBlock(kept), "\n")
	if out == "" {
		return ""
	}
	return out + "\n"
}

func placeholderOnly(body []string) bool {
	seen := false
	for _, line := range body {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if !IsPlaceholder(line) {
			return false
		}
		seen = true
	}
	return seen
}
