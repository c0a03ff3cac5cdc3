package resume

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResume = `Jane Doe
jane@example.com | Berlin

Professional Summary
Backend engineer with eight years of Go.

Skills:
Go, PostgreSQL, Kubernetes

Work Experience
Senior Engineer, Acme (2019-2024)
- Built the billing pipeline.

AWARDS
- Hackathon winner

Education
BSc Computer Science, 2016
`

func TestSplit(t *testing.T) {
	doc := Split(sampleResume)

	assert.Equal(t, []string{"Jane Doe", "jane@example.com | Berlin", ""}, doc.Preamble)
	assert.Equal(t, []Header{Summary, Skills, Experience, Education}, doc.Headers())

	exp, ok := doc.Section(Experience)
	require.True(t, ok)
	assert.Contains(t, exp.Body, "AWARDS", "unknown all-caps headings stay in the body")
	assert.Contains(t, exp.Body, "- Hackathon winner")
}

func TestSplitKeepsDuplicates(t *testing.T) {
	doc := Split("EXPERIENCE\na\nSKILLS\nb\nExperience\nc\n")
	assert.Equal(t, []Header{Experience, Skills, Experience}, doc.Headers())
}

func TestSplitWithoutHeaders(t *testing.T) {
	doc := Split("just some text\nWITH CAPS\n")
	assert.Empty(t, doc.Sections)
	assert.Equal(t, []string{"just some text", "WITH CAPS", ""}, doc.Preamble)
	assert.Equal(t, "just some text\nWITH CAPS\n", Join(doc))
}

func TestJoin(t *testing.T) {
	doc := Document{
		Preamble: []string{"Jane Doe", ""},
		Sections: []Section{
			{Header: Summary, Body: []string{"", "Engineer.  ", ""}},
			{Header: Education},
			{Header: Skills, Body: []string{"Go", "", "SQL"}},
		},
	}
	want := "Jane Doe\n\nSUMMARY\nEngineer.\n\nEDUCATION\n\nSKILLS\nGo\n\nSQL\n"
	assert.Equal(t, want, Join(doc))
}

func TestJoinEmpty(t *testing.T) {
	assert.Equal(t, "", Join(Document{}))
	assert.Equal(t, "", Join(Split("")))
	assert.Equal(t, "", Join(Split("\n\n  \n")))
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		sampleResume,
		"SUMMARY\nx\n\nSKILLS\ny\n",
		"summary:\r\nx\r\n\r\n\r\nskills\r\ny",
		"Header line\n\n\n\nEXPERIENCE\n\n\n- a\n\n- b\n\n\n",
		"EDUCATION\nEXPERIENCE\nSKILLS\n",
	}
	for _, in := range inputs {
		once := Join(Split(in))
		assert.Equal(t, once, Join(Split(once)), "join(split) must be a fixed point after one pass")

		// No content line is lost or reordered.
		var want []string
		for _, l := range lines(in) {
			l = strings.TrimSpace(l)
			if l == "" {
				continue
			}
			if h, ok := CanonicalizeHeader(l); ok {
				l = string(h)
			}
			want = append(want, l)
		}
		var got []string
		for _, l := range lines(once) {
			if l = strings.TrimSpace(l); l != "" {
				got = append(got, l)
			}
		}
		assert.Equal(t, want, got)
	}
}

func TestPresenceMap(t *testing.T) {
	p := PresenceMap(sampleResume)
	assert.True(t, p.Has(Summary))
	assert.True(t, p.Has(Skills))
	assert.True(t, p.Has(Experience))
	assert.True(t, p.Has(Education))
	assert.False(t, p.Has(Certifications))
	assert.False(t, p.Has(Projects))

	assert.Equal(t, map[string]bool{
		"SUMMARY": true, "SKILLS": true, "EXPERIENCE": true,
		"EDUCATION": true, "CERTIFICATIONS": false, "PROJECTS": false,
	}, p.Strings())
}
