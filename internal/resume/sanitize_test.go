package resume

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "education placeholder only",
			in:   "EDUCATION\nDetails available upon request.",
			want: "",
		},
		{
			name: "real education untouched",
			in:   "EDUCATION\nBS Computer Science, 2020",
			want: "EDUCATION\nBS Computer Science, 2020",
		},
		{
			name: "bulleted certifications placeholder",
			in:   "SUMMARY\nEngineer.\n\nCertifications:\n- Information available on request\n\nSKILLS\nGo\n",
			want: "SUMMARY\nEngineer.\n\nSKILLS\nGo\n",
		},
		{
			name: "none marker echoed back",
			in:   "EXPERIENCE\nAcme\n\nEDUCATION\nNONE\n",
			want: "EXPERIENCE\nAcme\n",
		},
		{
			name: "mixed body is kept",
			in:   "EDUCATION\nBSc, 2016\nFurther details available upon request.\n",
			want: "EDUCATION\nBSc, 2016\nFurther details available upon request.\n",
		},
		{
			name: "other sections never sanitized",
			in:   "PROJECTS\nDetails available upon request.\n",
			want: "PROJECTS\nDetails available upon request.\n",
		},
		{
			name: "empty body is left for the enforcer",
			in:   "EDUCATION\n\nSKILLS\nGo\n",
			want: "EDUCATION\n\nSKILLS\nGo\n",
		},
		{
			name: "no headers",
			in:   "Available upon request",
			want: "Available upon request",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.in))
		})
	}
}

func TestIsPlaceholder(t *testing.T) {
	for _, s := range []string{
		"Details available upon request.",
		"details available on request",
		"• Education details available upon request",
		"* Information is available upon request.",
		"Available upon request",
		"- Provided upon request",
		"None",
	} {
		assert.True(t, IsPlaceholder(s), s)
	}
	for _, s := range []string{
		"BS Computer Science, 2020",
		"References available upon request from Acme",
		"Certified Kubernetes Administrator",
		"",
	} {
		assert.False(t, IsPlaceholder(s), s)
	}
}

func TestSanitizeThenEnforceRestoresBlankEducation(t *testing.T) {
	generated := "SUMMARY\nx\n\nEDUCATION\nDetails available upon request.\n\nSKILLS\nGo\n\nEXPERIENCE\nAcme\n"
	out := Enforce(Sanitize(generated), "SUMMARY\nx\n")
	assert.Equal(t, "SUMMARY\nx\n\nSKILLS\nGo\n\nEXPERIENCE\nAcme\n\nEDUCATION\n", out)
}
