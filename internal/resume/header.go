// Package resume models a resume as a preamble followed by canonical
// sections and enforces the section policies applied to generated drafts.
package resume

import (
	"strings"
)

// Header is a canonical section name.
type Header string

const (
	Summary        Header = "SUMMARY"
	Skills         Header = "SKILLS"
	Experience     Header = "EXPERIENCE"
	Education      Header = "EDUCATION"
	Certifications Header = "CERTIFICATIONS"
	Projects       Header = "PROJECTS"
)

// Headers is the closed set in canonical order.
var Headers = []Header{Summary, Skills, Experience, Education, Certifications, Projects}

// Mandatory headers appear in every enforced document.
var Mandatory = []Header{Summary, Skills, Experience, Education}

// Conditional headers survive enforcement only when the original had them.
var Conditional = []Header{Certifications, Projects}

// aliases maps a normalized heading (lower case, single spaces, no trailing
// colon) to its canonical header. It is the only source of truth for what
// counts as a section boundary.
var aliases = map[string]Header{
	"summary":                   Summary,
	"professional summary":      Summary,
	"career summary":            Summary,
	"executive summary":         Summary,
	"summary of qualifications": Summary,
	"profile":                   Summary,
	"professional profile":      Summary,
	"objective":                 Summary,
	"career objective":          Summary,
	"about me":                  Summary,

	"skills":                     Skills,
	"technical skills":           Skills,
	"key skills":                 Skills,
	"core skills":                Skills,
	"core competencies":          Skills,
	"competencies":               Skills,
	"core competencies / skills": Skills,
	"core competencies/skills":   Skills,
	"skills & competencies":      Skills,
	"skills and competencies":    Skills,
	"areas of expertise":         Skills,
	"technical proficiencies":    Skills,
	"skills summary":             Skills,

	"experience":              Experience,
	"professional experience": Experience,
	"work experience":         Experience,
	"relevant experience":     Experience,
	"employment history":      Experience,
	"employment":              Experience,
	"work history":            Experience,
	"career history":          Experience,
	"professional background": Experience,

	"education":                  Education,
	"education & training":       Education,
	"education and training":     Education,
	"academic background":        Education,
	"academic qualifications":    Education,
	"education & certifications": Education,

	"certifications":              Certifications,
	"certification":               Certifications,
	"certificates":                Certifications,
	"professional certifications": Certifications,
	"licenses & certifications":   Certifications,
	"licenses and certifications": Certifications,
	"certifications & licenses":   Certifications,
	"certifications and licenses": Certifications,

	"projects":           Projects,
	"key projects":       Projects,
	"selected projects":  Projects,
	"personal projects":  Projects,
	"notable projects":   Projects,
	"project experience": Projects,
}

// CanonicalizeHeader reports the canonical header a raw line names, if any.
// Markdown heading marks and bold wrappers are ignored; anything outside the
// alias table is not a header, including unknown all-caps lines.
func CanonicalizeHeader(line string) (Header, bool) {
	key := normalizeHeading(line)
	if key == "" {
		return "", false
	}
	h, ok := aliases[key]
	return h, ok
}

func normalizeHeading(line string) string {
	s := strings.TrimSpace(line)
	s = strings.TrimLeft(s, "#")
	s = strings.TrimSpace(s)
	for _, wrap := range []string{"**", "__"} {
		if len(s) > 2*len(wrap) && strings.HasPrefix(s, wrap) && strings.HasSuffix(s, wrap) {
			s = strings.TrimSpace(s[len(wrap) : len(s)-len(wrap)])
		}
	}
	s = strings.Join(strings.Fields(s), " ")
	s = strings.TrimSpace(strings.TrimSuffix(s, ":"))
	return strings.ToLower(s)
}

func isConditional(h Header) bool {
	for _, c := range Conditional {
		if c == h {
			return true
		}
	}
	return false
}
