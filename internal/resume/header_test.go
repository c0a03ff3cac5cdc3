package resume

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalizeHeader(t *testing.T) {
	tests := []struct {
		line string
		want Header
		ok   bool
	}{
		{"Professional Experience", Experience, true},
		{"Work Experience", Experience, true},
		{"EXPERIENCE:", Experience, true},
		{"  experience  ", Experience, true},
		{"Work   Experience :", Experience, true},
		{"## Education", Education, true},
		{"**SKILLS**", Skills, true},
		{"Core Competencies / Skills", Skills, true},
		{"Licenses & Certifications", Certifications, true},
		{"Selected Projects", Projects, true},
		{"Professional Summary", Summary, true},
		{"VOLUNTEERING", "", false},
		{"AWARDS AND HONORS", "", false},
		{"Senior Engineer, Acme Corp", "", false},
		{"", "", false},
		{"   ", "", false},
		{"- Experience with Go", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, ok := CanonicalizeHeader(tt.line)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAliasTableCoversEveryHeader(t *testing.T) {
	for _, h := range Headers {
		got, ok := CanonicalizeHeader(string(h))
		assert.True(t, ok, "canonical spelling %s must resolve", h)
		assert.Equal(t, h, got)
	}
}
